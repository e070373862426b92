package tournamentdomain

import (
	"fmt"
	"slices"
	"strings"
)

// AddChannel restricts commands to channel, in addition to those already set.
func AddChannel(t *Tournament, channel string) error {
	if slices.Contains(t.Channels, channel) {
		return fmt.Errorf("%w: %s in %s", ErrChannelExists, channel, t.Alias)
	}
	t.Channels = append(t.Channels, channel)
	return nil
}

// RemoveChannel drops channel from the allowed list.
func RemoveChannel(t *Tournament, channel string) error {
	if !slices.Contains(t.Channels, channel) {
		return fmt.Errorf("%w: %s in %s", ErrChannelNotFound, channel, t.Alias)
	}
	t.Channels = remove(t.Channels, channel)
	return nil
}

// AddAdminRole grants role admin rights on t.
func AddAdminRole(t *Tournament, role string) error {
	if slices.Contains(t.AdministratorRoles, role) {
		return fmt.Errorf("%w: %s in %s", ErrRoleExists, role, t.Alias)
	}
	t.AdministratorRoles = append(t.AdministratorRoles, role)
	return nil
}

// RemoveAdminRole revokes the admin rights of role.
func RemoveAdminRole(t *Tournament, role string) error {
	if !slices.Contains(t.AdministratorRoles, role) {
		return fmt.Errorf("%w: %s in %s", ErrRoleNotFound, role, t.Alias)
	}
	t.AdministratorRoles = remove(t.AdministratorRoles, role)
	return nil
}

// SetCaptainRole sets the role granted to linked captains. An empty role clears it.
func SetCaptainRole(t *Tournament, role string) {
	t.CaptainRole = role
}

// LinkCaptain lets user claim the captaincy of the team named teamName.
// tournaments must be the whole store, t included, so global exclusivity can
// be checked.
func LinkCaptain(tournaments []*Tournament, t *Tournament, teamName, user string) (*Team, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if err := EnsureNotCaptainElsewhere(tournaments, user); err != nil {
		return nil, err
	}
	team := t.FindTeamByName(teamName)
	if team == nil {
		return nil, fmt.Errorf("%w: %q in tournament %s", ErrTeamNotFound, teamName, t.Alias)
	}
	if team.HasCaptain() {
		return nil, fmt.Errorf("%w: %s is registered to %s", ErrTeamCaptainExists, teamName, team.Captain)
	}
	team.Captain = user
	return team, nil
}

// AssignCaptain links user to the team with teamID, replacing any current
// captain. The replaced captain is returned.
func AssignCaptain(tournaments []*Tournament, t *Tournament, teamID, user string) (*Team, string, error) {
	if err := requireUser(user); err != nil {
		return nil, "", err
	}
	if err := EnsureNotCaptainElsewhere(tournaments, user); err != nil {
		return nil, "", err
	}
	team := t.FindTeamByID(teamID)
	if team == nil {
		return nil, "", fmt.Errorf("%w: %s in tournament %s", ErrTeamNotFound, teamID, t.Alias)
	}
	previous := team.Captain
	team.Captain = user
	return team, previous, nil
}

// requireUser rejects blank ids, which would read as "no captain".
func requireUser(user string) error {
	if strings.TrimSpace(user) == "" {
		return ErrInvalidCaptain
	}
	return nil
}

// UnlinkCaptain releases user from the team they captain in t. teamName must
// match the linked team as a confirmation.
func UnlinkCaptain(t *Tournament, user, teamName string) (*Team, error) {
	team := t.FindTeamByCaptain(user)
	if team == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotATeamCaptain, user)
	}
	if team.Name != teamName {
		return nil, fmt.Errorf("%w: linked to %q, got %q", ErrTeamNameMismatch, team.Name, teamName)
	}
	team.Captain = ""
	return team, nil
}

// RemoveTeam deletes the team with teamID and returns it.
func RemoveTeam(t *Tournament, teamID string) (*Team, error) {
	for i := range t.Teams {
		if t.Teams[i].ID != teamID {
			continue
		}
		removed := t.Teams[i]
		t.Teams = append(t.Teams[:i], t.Teams[i+1:]...)
		return &removed, nil
	}
	return nil, fmt.Errorf("%w: %s in tournament %s", ErrTeamNotFound, teamID, t.Alias)
}
