package tournamentservice

import (
	"context"
	"sort"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/tourney-bot/internal/results"
	"github.com/uptrace/bun"
)

// ResetTeam restores a team from the provider and clears its captain.
func (s *TournamentService) ResetTeam(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*TeamChange, error) {
	return unwrap(withTelemetry(s, ctx, "ResetTeam", alias, func(ctx context.Context) (results.OperationResult[*TeamChange, error], error) {
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (*TeamChange, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			team, previous, err := tournamentdomain.ResetTournamentTeam(ctx, t, s.provider, teamID)
			if err != nil {
				return nil, err
			}
			return teamChange(t, team, previous), nil
		})
	}))
}

// RemoveTeam deletes a team from the tournament.
func (s *TournamentService) RemoveTeam(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*TeamChange, error) {
	return unwrap(withTelemetry(s, ctx, "RemoveTeam", alias, func(ctx context.Context) (results.OperationResult[*TeamChange, error], error) {
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (*TeamChange, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			removed, err := tournamentdomain.RemoveTeam(t, teamID)
			if err != nil {
				return nil, err
			}
			return teamChange(t, removed, removed.Captain), nil
		})
	}))
}

func teamChange(t *tournamentdomain.Tournament, team *tournamentdomain.Team, previous string) *TeamChange {
	out := &TeamChange{Team: *team}
	if previous != "" {
		change := captainChange(t, team, previous)
		out.Unlinked = &change
	}
	return out
}

// MissingTeams lists the teams nobody has linked yet, sorted by name.
func (s *TournamentService) MissingTeams(ctx context.Context, actor tournamentdomain.Actor, alias string) ([]tournamentdomain.Team, error) {
	return unwrap(withTelemetry(s, ctx, "MissingTeams", alias, func(ctx context.Context) (results.OperationResult[[]tournamentdomain.Team, error], error) {
		return inspect(s, ctx, alias, func(ctx context.Context, t *tournamentdomain.Tournament) ([]tournamentdomain.Team, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			missing := t.TeamsWithoutCaptain()
			if missing == nil {
				missing = []tournamentdomain.Team{}
			}
			sort.SliceStable(missing, func(i, j int) bool { return missing[i].Name < missing[j].Name })
			return missing, nil
		})
	}))
}

// LinkCaptain makes actor the captain of the team named teamName in alias.
func (s *TournamentService) LinkCaptain(ctx context.Context, actor tournamentdomain.Actor, alias, teamName string) (*CaptainChange, error) {
	return unwrap(withTelemetry(s, ctx, "LinkCaptain", alias, func(ctx context.Context) (results.OperationResult[*CaptainChange, error], error) {
		s.captainMu.Lock()
		defer s.captainMu.Unlock()
		return mutate(s, ctx, alias, func(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) (*CaptainChange, error) {
			if err := tournamentdomain.RequireChannel(t, actor); err != nil {
				return nil, err
			}
			store, err := s.storeWith(ctx, db, t)
			if err != nil {
				return nil, err
			}
			team, err := tournamentdomain.LinkCaptain(store, t, teamName, actor.ID)
			if err != nil {
				return nil, err
			}
			change := captainChange(t, team, actor.ID)
			return &change, nil
		})
	}))
}

// AssignCaptain lets an admin link userID to a team, replacing its captain.
func (s *TournamentService) AssignCaptain(ctx context.Context, actor tournamentdomain.Actor, alias, teamID, userID string) (*CaptainAssignment, error) {
	return unwrap(withTelemetry(s, ctx, "AssignCaptain", alias, func(ctx context.Context) (results.OperationResult[*CaptainAssignment, error], error) {
		s.captainMu.Lock()
		defer s.captainMu.Unlock()
		return mutate(s, ctx, alias, func(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) (*CaptainAssignment, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			store, err := s.storeWith(ctx, db, t)
			if err != nil {
				return nil, err
			}
			team, previous, err := tournamentdomain.AssignCaptain(store, t, teamID, userID)
			if err != nil {
				return nil, err
			}
			out := &CaptainAssignment{Linked: captainChange(t, team, userID)}
			if previous != "" {
				replaced := captainChange(t, team, previous)
				out.Replaced = &replaced
			}
			return out, nil
		})
	}))
}

// UnlinkCaptain releases actor from the team they captain. teamName must
// name that team.
func (s *TournamentService) UnlinkCaptain(ctx context.Context, actor tournamentdomain.Actor, teamName string) (*CaptainChange, error) {
	return unwrap(withTelemetry(s, ctx, "UnlinkCaptain", actor.ID, func(ctx context.Context) (results.OperationResult[*CaptainChange, error], error) {
		alias, err := s.captainTournament(ctx, actor)
		if err != nil {
			return domainFailure[*CaptainChange](err)
		}
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (*CaptainChange, error) {
			if err := tournamentdomain.RequireChannel(t, actor); err != nil {
				return nil, err
			}
			team, err := tournamentdomain.UnlinkCaptain(t, actor.ID, teamName)
			if err != nil {
				return nil, err
			}
			change := captainChange(t, team, actor.ID)
			return &change, nil
		})
	}))
}

// CaptainStatus shows actor their team, submissions and joined matches.
func (s *TournamentService) CaptainStatus(ctx context.Context, actor tournamentdomain.Actor) (*CaptainStatus, error) {
	return unwrap(withTelemetry(s, ctx, "CaptainStatus", actor.ID, func(ctx context.Context) (results.OperationResult[*CaptainStatus, error], error) {
		alias, err := s.captainTournament(ctx, actor)
		if err != nil {
			return domainFailure[*CaptainStatus](err)
		}
		return inspect(s, ctx, alias, func(ctx context.Context, t *tournamentdomain.Tournament) (*CaptainStatus, error) {
			team, err := captainOf(t, actor)
			if err != nil {
				return nil, err
			}
			matches := t.JoinedMatches(team.ID)
			if matches == nil {
				matches = []tournamentdomain.Match{}
			}
			return &CaptainStatus{
				Alias:          t.Alias,
				TournamentName: t.Info.Name,
				Team:           *team,
				Matches:        matches,
			}, nil
		})
	}))
}
