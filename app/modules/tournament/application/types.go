package tournamentservice

import (
	"time"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
)

// TournamentSummary is the list view of a tournament.
type TournamentSummary struct {
	Alias       string    `json:"alias"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Discipline  string    `json:"discipline"`
	URL         string    `json:"url"`
	Teams       int       `json:"teams"`
	LinkedTeams int       `json:"linked_teams"`
	Matches     int       `json:"matches"`
	CreatedAt   time.Time `json:"created_at"`
}

func summarize(t *tournamentdomain.Tournament) TournamentSummary {
	return TournamentSummary{
		Alias:       t.Alias,
		ID:          t.ID,
		Name:        t.Info.Name,
		Discipline:  t.Info.Discipline,
		URL:         t.URL,
		Teams:       len(t.Teams),
		LinkedTeams: t.CountLinkedTeams(),
		Matches:     len(t.Matches),
		CreatedAt:   t.CreatedAt,
	}
}

// CaptainChange describes a captaincy granted or revoked, with the role the
// chat adapter should add or remove.
type CaptainChange struct {
	Alias       string `json:"alias"`
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	UserID      string `json:"user_id"`
	CaptainRole string `json:"captain_role,omitempty"`
}

func captainChange(t *tournamentdomain.Tournament, team *tournamentdomain.Team, user string) CaptainChange {
	return CaptainChange{
		Alias:       t.Alias,
		TeamID:      team.ID,
		TeamName:    team.Name,
		UserID:      user,
		CaptainRole: t.CaptainRole,
	}
}

// CaptainAssignment is the outcome of an admin assigning a captain. Replaced
// is set when another user lost the team.
type CaptainAssignment struct {
	Linked   CaptainChange  `json:"linked"`
	Replaced *CaptainChange `json:"replaced,omitempty"`
}

// TeamChange is the outcome of resetting or removing a team. Unlinked is set
// when the team had a captain.
type TeamChange struct {
	Team     tournamentdomain.Team `json:"team"`
	Unlinked *CaptainChange        `json:"unlinked,omitempty"`
}

// CaptainStatus is a captain's own view: their team, its submissions and the
// matches it joined, passwords included.
type CaptainStatus struct {
	Alias          string                   `json:"alias"`
	TournamentName string                   `json:"tournament_name"`
	Team           tournamentdomain.Team    `json:"team"`
	Matches        []tournamentdomain.Match `json:"matches"`
}

// MatchScores lists the submissions of one match with points.
type MatchScores struct {
	Alias     string                      `json:"alias"`
	MatchName string                      `json:"match_name"`
	Rows      []tournamentdomain.ScoreRow `json:"rows"`
}

// MatchStarted is a started match with the notice for its captains.
type MatchStarted struct {
	Match  tournamentdomain.Match      `json:"match"`
	Notice tournamentdomain.MatchStart `json:"notice"`
}

// RefreshReport summarizes a refresh over every tournament.
type RefreshReport struct {
	Refreshed []string          `json:"refreshed"`
	Failed    map[string]string `json:"failed,omitempty"`
}
