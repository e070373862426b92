package tournamentservice

import (
	"context"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/tourney-bot/internal/results"
	"github.com/uptrace/bun"
)

// adminMatch runs an admin-only change on one match of alias.
func (s *TournamentService) adminMatch(
	ctx context.Context,
	operation string,
	actor tournamentdomain.Actor,
	alias string,
	fn func(ctx context.Context, t *tournamentdomain.Tournament) (*tournamentdomain.Match, error),
) (*tournamentdomain.Match, error) {
	return unwrap(withTelemetry(s, ctx, operation, alias, func(ctx context.Context) (results.OperationResult[*tournamentdomain.Match, error], error) {
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (*tournamentdomain.Match, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			m, err := fn(ctx, t)
			if err != nil {
				return nil, err
			}
			out := *m
			return &out, nil
		})
	}))
}

// CreateMatch adds a match. With a provider match id the match is restricted
// to that group's participants.
func (s *TournamentService) CreateMatch(ctx context.Context, actor tournamentdomain.Actor, alias string, params tournamentdomain.CreateMatchParams) (*tournamentdomain.Match, error) {
	params.CreatedBy = actor.ID
	return s.adminMatch(ctx, "CreateMatch", actor, alias, func(ctx context.Context, t *tournamentdomain.Tournament) (*tournamentdomain.Match, error) {
		return tournamentdomain.CreateMatch(ctx, t, s.provider, params, s.now().UTC())
	})
}

// RemoveMatch deletes a match.
func (s *TournamentService) RemoveMatch(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) error {
	_, err := unwrap(withTelemetry(s, ctx, "RemoveMatch", alias, func(ctx context.Context) (results.OperationResult[struct{}, error], error) {
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (struct{}, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, tournamentdomain.RemoveMatch(t, matchName)
		})
	}))
	return err
}

// captainMatch runs a change on behalf of the team actor captains, in
// whichever tournament that is.
func (s *TournamentService) captainMatch(
	ctx context.Context,
	operation string,
	actor tournamentdomain.Actor,
	fn func(t *tournamentdomain.Tournament, team *tournamentdomain.Team) (*tournamentdomain.Match, error),
) (*tournamentdomain.Match, error) {
	return unwrap(withTelemetry(s, ctx, operation, actor.ID, func(ctx context.Context) (results.OperationResult[*tournamentdomain.Match, error], error) {
		alias, err := s.captainTournament(ctx, actor)
		if err != nil {
			return domainFailure[*tournamentdomain.Match](err)
		}
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (*tournamentdomain.Match, error) {
			team, err := captainOf(t, actor)
			if err != nil {
				return nil, err
			}
			if err := tournamentdomain.RequireChannel(t, actor); err != nil {
				return nil, err
			}
			m, err := fn(t, team)
			if err != nil {
				return nil, err
			}
			out := *m
			return &out, nil
		})
	}))
}

// JoinMatch marks the actor's team ready for matchName.
func (s *TournamentService) JoinMatch(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.Match, error) {
	return s.captainMatch(ctx, "JoinMatch", actor, func(t *tournamentdomain.Tournament, team *tournamentdomain.Team) (*tournamentdomain.Match, error) {
		return tournamentdomain.JoinMatch(t, matchName, team)
	})
}

// LeaveMatch withdraws the actor's team from a pending match.
func (s *TournamentService) LeaveMatch(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.Match, error) {
	return s.captainMatch(ctx, "LeaveMatch", actor, func(t *tournamentdomain.Tournament, team *tournamentdomain.Team) (*tournamentdomain.Match, error) {
		return tournamentdomain.LeaveMatch(t, matchName, team)
	})
}

// StartMatch moves a pending match to ONGOING and returns the notice for its
// joined captains.
func (s *TournamentService) StartMatch(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*MatchStarted, error) {
	return unwrap(withTelemetry(s, ctx, "StartMatch", alias, func(ctx context.Context) (results.OperationResult[*MatchStarted, error], error) {
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (*MatchStarted, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			m, err := tournamentdomain.StartMatch(t, matchName)
			if err != nil {
				return nil, err
			}
			return &MatchStarted{Match: *m, Notice: tournamentdomain.StartNotice(t, m)}, nil
		})
	}))
}

// EndMatch completes a match. Without force the match must be ONGOING.
func (s *TournamentService) EndMatch(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string, force bool) (*tournamentdomain.Match, error) {
	return s.adminMatch(ctx, "EndMatch", actor, alias, func(ctx context.Context, t *tournamentdomain.Tournament) (*tournamentdomain.Match, error) {
		return tournamentdomain.EndMatch(t, matchName, force)
	})
}

// SetMatchStatus overrides a match status by name.
func (s *TournamentService) SetMatchStatus(ctx context.Context, actor tournamentdomain.Actor, alias, matchName, status string) (*tournamentdomain.Match, error) {
	return s.adminMatch(ctx, "SetMatchStatus", actor, alias, func(ctx context.Context, t *tournamentdomain.Tournament) (*tournamentdomain.Match, error) {
		return tournamentdomain.SetMatchStatus(t, matchName, status)
	})
}

// ShowMatch returns the match as viewer may see it.
func (s *TournamentService) ShowMatch(ctx context.Context, viewer tournamentdomain.Actor, alias, matchName string) (*tournamentdomain.Match, error) {
	return unwrap(withTelemetry(s, ctx, "ShowMatch", alias, func(ctx context.Context) (results.OperationResult[*tournamentdomain.Match, error], error) {
		return inspect(s, ctx, alias, func(ctx context.Context, t *tournamentdomain.Tournament) (*tournamentdomain.Match, error) {
			m := t.FindMatch(matchName)
			if m == nil {
				return nil, matchNotFound(t, matchName)
			}
			view := tournamentdomain.MatchView(t, m, viewer, s.authz)
			return &view, nil
		})
	}))
}
