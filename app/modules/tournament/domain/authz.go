package tournamentdomain

import (
	"fmt"
	"slices"
	"strings"
)

// Actor is the chat user issuing a command.
type Actor struct {
	// ID is the user's global chat identity.
	ID string `json:"id"`
	// Roles are the role identifiers the user holds in the chat guild.
	Roles []string `json:"roles,omitempty"`
	// Channel is where the command was sent; empty for direct messages.
	Channel string `json:"channel,omitempty"`
}

// Direct reports whether the command came from a private message.
func (a Actor) Direct() bool {
	return a.Channel == ""
}

// Authorizer evaluates permission checks against a fixed superuser set.
type Authorizer struct {
	superusers map[string]struct{}
}

// NewAuthorizer returns an Authorizer treating superusers as global admins.
func NewAuthorizer(superusers []string) Authorizer {
	set := make(map[string]struct{}, len(superusers))
	for _, s := range superusers {
		if s = strings.TrimSpace(s); s != "" {
			set[s] = struct{}{}
		}
	}
	return Authorizer{superusers: set}
}

// IsSuperuser reports whether actor is a global admin.
func (a Authorizer) IsSuperuser(actor Actor) bool {
	_, ok := a.superusers[actor.ID]
	return ok
}

// Allowed is the single permission predicate: superusers pass, otherwise the
// actor must hold at least one of the capability roles.
func (a Authorizer) Allowed(actor Actor, capabilities ...string) bool {
	if a.IsSuperuser(actor) {
		return true
	}
	for _, role := range actor.Roles {
		if slices.Contains(capabilities, role) {
			return true
		}
	}
	return false
}

// IsTournamentAdmin reports whether actor may administer t.
func (a Authorizer) IsTournamentAdmin(actor Actor, t *Tournament) bool {
	return a.Allowed(actor, t.AdministratorRoles...)
}

// RequireAdmin returns ErrPermissionDenied unless actor administers t.
func (a Authorizer) RequireAdmin(actor Actor, t *Tournament) error {
	if !a.IsTournamentAdmin(actor, t) {
		return fmt.Errorf("%w: %s is not an administrator of %s", ErrPermissionDenied, actor.ID, t.Alias)
	}
	return nil
}

// IsTeamCaptain reports whether actor is linked to team.
func IsTeamCaptain(actor Actor, team *Team) bool {
	return team != nil && actor.ID != "" && team.Captain == actor.ID
}

// FindCaptain locates the team user captains across tournaments.
func FindCaptain(tournaments []*Tournament, user string) (*Tournament, *Team) {
	for _, t := range tournaments {
		if team := t.FindTeamByCaptain(user); team != nil {
			return t, team
		}
	}
	return nil, nil
}

// EnsureNotCaptainElsewhere enforces that a user captains at most one team in
// the whole store.
func EnsureNotCaptainElsewhere(tournaments []*Tournament, user string) error {
	if t, team := FindCaptain(tournaments, user); team != nil {
		return fmt.Errorf("%w: %s captains %s in %s", ErrAlreadyCaptainElsewhere, user, team.Name, t.Alias)
	}
	return nil
}

// SanitizeChannel strips chat mention brackets from a channel reference.
func SanitizeChannel(name string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(name)
}

// InTournamentChannel reports whether a command from actor may run for t.
// Private messages always may; otherwise the channel must be one of t's
// channels, when any are configured.
func InTournamentChannel(t *Tournament, actor Actor) bool {
	if actor.Direct() || len(t.Channels) == 0 {
		return true
	}
	room := SanitizeChannel(actor.Channel)
	for _, c := range t.Channels {
		if SanitizeChannel(c) == room {
			return true
		}
	}
	return false
}

// RequireChannel returns ErrChannelNotAllowed when InTournamentChannel fails.
func RequireChannel(t *Tournament, actor Actor) error {
	if !InTournamentChannel(t, actor) {
		return fmt.Errorf("%w: use a private message or one of %s", ErrChannelNotAllowed, strings.Join(t.Channels, " "))
	}
	return nil
}
