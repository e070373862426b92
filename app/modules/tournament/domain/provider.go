package tournamentdomain

import "context"

// Participant is a team as reported by the provider.
type Participant struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	CustomFields CustomFields `json:"custom_fields,omitempty"`
	Lineup       []Player     `json:"lineup"`
	CheckedIn    *bool        `json:"checked_in,omitempty"`
}

// MatchMetadata is the provider's view of a match group.
type MatchMetadata struct {
	ID             string
	GroupName      string
	ParticipantIDs []string
}

// Provider fetches tournament data from the external tournament service.
// A nil result (or empty list) means "not found"; a non-nil error is a
// transport failure.
type Provider interface {
	GetTournament(ctx context.Context, tournamentID string) (*ToornamentInfo, error)
	GetParticipants(ctx context.Context, tournamentID string) ([]Participant, error)
	GetParticipant(ctx context.Context, tournamentID, participantID string) (*Participant, error)
	GetMatch(ctx context.Context, tournamentID, matchID string) (*MatchMetadata, error)
}

func teamFromParticipant(p Participant) Team {
	return Team{
		ID:               p.ID,
		Name:             p.Name,
		CustomFields:     p.CustomFields,
		Lineup:           clonePlayers(p.Lineup),
		CheckedIn:        p.CheckedIn,
		ScoreSubmissions: []ScoreSubmission{},
	}
}

func clonePlayers(in []Player) []Player {
	out := make([]Player, len(in))
	copy(out, in)
	return out
}
