package tournamentservice

import (
	"context"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/tourney-bot/internal/results"
	"github.com/uptrace/bun"
)

// settingFunc edits one list-valued tournament setting and returns its new value.
type settingFunc func(t *tournamentdomain.Tournament) ([]string, error)

// adminSetting runs an admin-only settings change.
func (s *TournamentService) adminSetting(ctx context.Context, operation string, actor tournamentdomain.Actor, alias string, fn settingFunc) ([]string, error) {
	return unwrap(withTelemetry(s, ctx, operation, alias, func(ctx context.Context) (results.OperationResult[[]string, error], error) {
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) ([]string, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			return fn(t)
		})
	}))
}

// AddChannel allows commands for the tournament in channel.
func (s *TournamentService) AddChannel(ctx context.Context, actor tournamentdomain.Actor, alias, channel string) ([]string, error) {
	return s.adminSetting(ctx, "AddChannel", actor, alias, func(t *tournamentdomain.Tournament) ([]string, error) {
		if err := tournamentdomain.AddChannel(t, channel); err != nil {
			return nil, err
		}
		return t.Channels, nil
	})
}

// RemoveChannel stops accepting commands for the tournament in channel.
func (s *TournamentService) RemoveChannel(ctx context.Context, actor tournamentdomain.Actor, alias, channel string) ([]string, error) {
	return s.adminSetting(ctx, "RemoveChannel", actor, alias, func(t *tournamentdomain.Tournament) ([]string, error) {
		if err := tournamentdomain.RemoveChannel(t, channel); err != nil {
			return nil, err
		}
		return t.Channels, nil
	})
}

// AddAdminRole grants the tournament's administration to holders of role.
func (s *TournamentService) AddAdminRole(ctx context.Context, actor tournamentdomain.Actor, alias, role string) ([]string, error) {
	return s.adminSetting(ctx, "AddAdminRole", actor, alias, func(t *tournamentdomain.Tournament) ([]string, error) {
		if err := tournamentdomain.AddAdminRole(t, role); err != nil {
			return nil, err
		}
		return t.AdministratorRoles, nil
	})
}

// RemoveAdminRole revokes role's administration of the tournament.
func (s *TournamentService) RemoveAdminRole(ctx context.Context, actor tournamentdomain.Actor, alias, role string) ([]string, error) {
	return s.adminSetting(ctx, "RemoveAdminRole", actor, alias, func(t *tournamentdomain.Tournament) ([]string, error) {
		if err := tournamentdomain.RemoveAdminRole(t, role); err != nil {
			return nil, err
		}
		return t.AdministratorRoles, nil
	})
}

// SetCaptainRole sets the chat role given to linked captains. An empty role
// removes it.
func (s *TournamentService) SetCaptainRole(ctx context.Context, actor tournamentdomain.Actor, alias, role string) error {
	_, err := s.adminSetting(ctx, "SetCaptainRole", actor, alias, func(t *tournamentdomain.Tournament) ([]string, error) {
		tournamentdomain.SetCaptainRole(t, role)
		return nil, nil
	})
	return err
}
