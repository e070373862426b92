package tournamentdomain

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// NewTournament builds a tournament from the provider's metadata and
// participant list. Participants without an id are left out and returned by
// name in skipped.
func NewTournament(ctx context.Context, provider Provider, alias, tournamentID string, now time.Time) (t *Tournament, skipped []string, err error) {
	info, participants, skipped, err := fetchSnapshot(ctx, provider, tournamentID)
	if err != nil {
		return nil, nil, err
	}

	t = &Tournament{
		Alias:              alias,
		ID:                 tournamentID,
		URL:                TournamentURL(tournamentID),
		Info:               *info,
		AdministratorRoles: []string{},
		Channels:           []string{},
		Teams:              make([]Team, 0, len(participants)),
		Matches:            []Match{},
		CreatedAt:          now,
	}
	for _, p := range participants {
		if t.FindTeamByID(p.ID) != nil {
			continue
		}
		t.Teams = append(t.Teams, teamFromParticipant(p))
	}
	return t, skipped, nil
}

// RefreshTournament merges a fresh provider snapshot into t. Provider-owned
// team fields are overwritten, local annotations are kept and teams missing
// upstream are left in place. On error t is not modified. Participants
// without an id cannot be matched to a team; they are ignored and returned
// by name in skipped.
func RefreshTournament(ctx context.Context, t *Tournament, provider Provider) (skipped []string, err error) {
	info, participants, skipped, err := fetchSnapshot(ctx, provider, t.ID)
	if err != nil {
		return nil, err
	}

	t.Info = *info
	for _, p := range participants {
		team := t.FindTeamByID(p.ID)
		if team == nil {
			t.Teams = append(t.Teams, teamFromParticipant(p))
			continue
		}
		team.Name = p.Name
		team.Lineup = clonePlayers(p.Lineup)
		team.CheckedIn = p.CheckedIn
	}
	return skipped, nil
}

// ResetTournamentTeam returns one team to provider truth: the captain link is
// cleared and lineup, custom fields and check-in are re-fetched. The previous
// captain is returned so the caller can revoke chat roles.
func ResetTournamentTeam(ctx context.Context, t *Tournament, provider Provider, teamID string) (*Team, string, error) {
	team := t.FindTeamByID(teamID)
	if team == nil {
		return nil, "", fmt.Errorf("%w: %s in tournament %s", ErrTeamNotFound, teamID, t.Alias)
	}

	p, err := provider.GetParticipant(ctx, t.ID, teamID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrParticipantFetchFailed, providerError("get_participant", t.ID, teamID, err))
	}
	if p == nil {
		return nil, "", fmt.Errorf("%w: team %s in tournament %s", ErrParticipantFetchFailed, teamID, t.Alias)
	}

	previous := team.Captain
	team.Captain = ""
	team.Lineup = clonePlayers(p.Lineup)
	team.CustomFields = p.CustomFields
	team.CheckedIn = p.CheckedIn
	return team, previous, nil
}

// RefreshDiff lists how the local roster differs from the provider's.
type RefreshDiff struct {
	// Deleted are team ids held locally but no longer reported upstream.
	Deleted []string `json:"deleted"`
	// Added are participant ids reported upstream but not held locally.
	Added []string `json:"added"`
}

// DiffParticipants compares t's teams against a participant list.
func DiffParticipants(t *Tournament, participants []Participant) RefreshDiff {
	local := make(map[string]struct{}, len(t.Teams))
	for _, team := range t.Teams {
		local[team.ID] = struct{}{}
	}
	upstream := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		upstream[p.ID] = struct{}{}
	}

	diff := RefreshDiff{Deleted: []string{}, Added: []string{}}
	for id := range local {
		if _, ok := upstream[id]; !ok {
			diff.Deleted = append(diff.Deleted, id)
		}
	}
	for id := range upstream {
		if _, ok := local[id]; !ok {
			diff.Added = append(diff.Added, id)
		}
	}
	sort.Strings(diff.Deleted)
	sort.Strings(diff.Added)
	return diff
}

// RefreshStatus fetches the participant list and diffs it against t without
// modifying it.
func RefreshStatus(ctx context.Context, t *Tournament, provider Provider) (RefreshDiff, error) {
	participants, err := provider.GetParticipants(ctx, t.ID)
	if err != nil {
		return RefreshDiff{}, providerError("get_participants", t.ID, "", err)
	}
	return DiffParticipants(t, participants), nil
}

func fetchSnapshot(ctx context.Context, provider Provider, tournamentID string) (*ToornamentInfo, []Participant, []string, error) {
	info, err := provider.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, nil, providerError("get_tournament", tournamentID, "", err)
	}
	if info == nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrTournamentNotFoundUpstream, tournamentID)
	}

	participants, err := provider.GetParticipants(ctx, tournamentID)
	if err != nil {
		return nil, nil, nil, providerError("get_participants", tournamentID, "", err)
	}

	kept := make([]Participant, 0, len(participants))
	var skipped []string
	for _, p := range participants {
		if strings.TrimSpace(p.ID) == "" {
			skipped = append(skipped, p.Name)
			continue
		}
		kept = append(kept, p)
	}
	return info, kept, skipped, nil
}
