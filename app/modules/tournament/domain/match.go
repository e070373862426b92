package tournamentdomain

import (
	"context"
	"fmt"
	"time"
)

// CreateMatchParams describes a new match.
type CreateMatchParams struct {
	Name      string
	Password  string
	CreatedBy string
	// ProviderMatchID links the match to a provider match group. When set,
	// only that group's participants may join or submit.
	ProviderMatchID string
}

// CreateMatch appends a pending match to t.
func CreateMatch(ctx context.Context, t *Tournament, provider Provider, params CreateMatchParams, now time.Time) (*Match, error) {
	if t.FindMatch(params.Name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNameExists, params.Name)
	}

	match := Match{
		Name:            params.Name,
		ID:              params.ProviderMatchID,
		CreatedBy:       params.CreatedBy,
		CreatedAt:       now,
		Password:        params.Password,
		Status:          MatchStatusPending,
		TeamsRegistered: []string{},
		TeamsJoined:     []string{},
	}

	if params.ProviderMatchID != "" {
		meta, err := provider.GetMatch(ctx, t.ID, params.ProviderMatchID)
		if err != nil {
			return nil, providerError("get_match", t.ID, params.ProviderMatchID, err)
		}
		if meta == nil {
			return nil, fmt.Errorf("%w: %s", ErrMatchIDNotFound, params.ProviderMatchID)
		}
		match.GroupName = meta.GroupName
		match.TeamsRegistered = append(match.TeamsRegistered, meta.ParticipantIDs...)
	}

	t.Matches = append(t.Matches, match)
	return &t.Matches[len(t.Matches)-1], nil
}

// RemoveMatch deletes the named match.
func RemoveMatch(t *Tournament, name string) error {
	for i := range t.Matches {
		if t.Matches[i].Name == name {
			t.Matches = append(t.Matches[:i], t.Matches[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrMatchNotFound, name)
}

func getMatch(t *Tournament, name string) (*Match, error) {
	m := t.FindMatch(name)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, name)
	}
	return m, nil
}

// JoinMatch opts team into a pending match.
func JoinMatch(t *Tournament, matchName string, team *Team) (*Match, error) {
	m, err := getMatch(t, matchName)
	if err != nil {
		return nil, err
	}
	if !m.IsRegistered(team.ID) {
		return nil, fmt.Errorf("%w: team %s is not in match group %q", ErrTeamNotEligible, team.Name, m.GroupName)
	}
	if m.HasJoined(team.ID) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyJoined, team.Name)
	}
	if m.Status != MatchStatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrMatchNotPending, m.Status)
	}

	m.TeamsJoined = append(m.TeamsJoined, team.ID)
	return m, nil
}

// LeaveMatch withdraws team from a pending match it has joined.
func LeaveMatch(t *Tournament, matchName string, team *Team) (*Match, error) {
	m, err := getMatch(t, matchName)
	if err != nil {
		return nil, err
	}
	if !m.HasJoined(team.ID) {
		return nil, fmt.Errorf("%w: %s", ErrNotJoined, team.Name)
	}
	if m.Status != MatchStatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrMatchNotPending, m.Status)
	}

	m.TeamsJoined = remove(m.TeamsJoined, team.ID)
	return m, nil
}

// StartMatch moves a pending match to ONGOING.
func StartMatch(t *Tournament, matchName string) (*Match, error) {
	m, err := getMatch(t, matchName)
	if err != nil {
		return nil, err
	}
	if m.Status != MatchStatusPending {
		return nil, fmt.Errorf("%w: %s", ErrCannotStartFromStatus, m.Status)
	}
	m.Status = MatchStatusOngoing
	return m, nil
}

// EndMatch completes an ongoing match, freezing its score submissions. force
// skips the status check.
func EndMatch(t *Tournament, matchName string, force bool) (*Match, error) {
	m, err := getMatch(t, matchName)
	if err != nil {
		return nil, err
	}
	if m.Status != MatchStatusOngoing && !force {
		return nil, fmt.Errorf("%w: status is %s", ErrMatchNotOngoing, m.Status)
	}
	m.Status = MatchStatusCompleted
	return m, nil
}

// SetMatchStatus jumps to any status, bypassing the transition graph. It is
// the administrative correction path.
func SetMatchStatus(t *Tournament, matchName, status string) (*Match, error) {
	m, err := getMatch(t, matchName)
	if err != nil {
		return nil, err
	}
	s, err := ParseMatchStatus(status)
	if err != nil {
		return nil, err
	}
	m.Status = s
	return m, nil
}

// MatchStart describes who to notify when a match starts.
type MatchStart struct {
	Alias     string        `json:"alias"`
	MatchName string        `json:"match_name"`
	Password  string        `json:"password,omitempty"`
	Channels  []string      `json:"channels"`
	Captains  []TeamCaptain `json:"captains"`
}

// TeamCaptain pairs a team with its linked chat user.
type TeamCaptain struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Captain  string `json:"captain"`
}

// StartNotice collects the channels and joined captains of a match.
func StartNotice(t *Tournament, m *Match) MatchStart {
	notice := MatchStart{
		Alias:     t.Alias,
		MatchName: m.Name,
		Password:  m.Password,
		Channels:  append([]string{}, t.Channels...),
		Captains:  []TeamCaptain{},
	}
	for _, id := range m.TeamsJoined {
		team := t.FindTeamByID(id)
		if team == nil || !team.HasCaptain() {
			continue
		}
		notice.Captains = append(notice.Captains, TeamCaptain{TeamID: team.ID, TeamName: team.Name, Captain: team.Captain})
	}
	return notice
}

// MatchView returns a copy of m safe to show viewer. The password is only
// kept for tournament admins and captains of a joined team.
func MatchView(t *Tournament, m *Match, viewer Actor, authz Authorizer) Match {
	view := *m
	view.TeamsRegistered = append([]string{}, m.TeamsRegistered...)
	view.TeamsJoined = append([]string{}, m.TeamsJoined...)

	if authz.IsTournamentAdmin(viewer, t) {
		return view
	}
	if team := t.FindTeamByCaptain(viewer.ID); team != nil && m.HasJoined(team.ID) {
		return view
	}
	view.Password = ""
	return view
}

// TournamentView returns a copy of t safe to show viewer. Admins see
// everything. Everyone else loses captain ids other than their own, the
// team and player custom fields, player emails and the match passwords
// MatchView would hide.
func TournamentView(t *Tournament, viewer Actor, authz Authorizer) Tournament {
	view := *t
	view.Matches = make([]Match, len(t.Matches))
	for i := range t.Matches {
		view.Matches[i] = MatchView(t, &t.Matches[i], viewer, authz)
	}
	view.Teams = make([]Team, len(t.Teams))
	copy(view.Teams, t.Teams)
	if authz.IsTournamentAdmin(viewer, t) {
		return view
	}

	for i := range view.Teams {
		team := &view.Teams[i]
		if !IsTeamCaptain(viewer, team) {
			team.Captain = ""
		}
		team.CustomFields = nil
		lineup := make([]Player, len(team.Lineup))
		for j, p := range team.Lineup {
			lineup[j] = Player{Name: p.Name}
		}
		team.Lineup = lineup
	}
	return view
}
