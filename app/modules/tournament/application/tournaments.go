package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"slices"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/tourney-bot/internal/results"
	"github.com/uptrace/bun"
)

// CreateTournament registers the provider tournament tournamentID under
// alias. Superusers and administrators of any existing tournament may create.
func (s *TournamentService) CreateTournament(ctx context.Context, actor tournamentdomain.Actor, alias, tournamentID string) (*TournamentSummary, error) {
	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*TournamentSummary, error], error) {
		return s.createTournamentLogic(ctx, db, actor, alias, tournamentID)
	}

	return unwrap(withTelemetry(s, ctx, "CreateTournament", alias, func(ctx context.Context) (results.OperationResult[*TournamentSummary, error], error) {
		unlock := s.locks.lock(alias)
		defer unlock()
		return runInTx(s, ctx, createTx)
	}))
}

func (s *TournamentService) createTournamentLogic(ctx context.Context, db bun.IDB, actor tournamentdomain.Actor, alias, tournamentID string) (results.OperationResult[*TournamentSummary, error], error) {
	all, err := s.repo.List(ctx, db)
	if err != nil {
		return results.OperationResult[*TournamentSummary, error]{}, fmt.Errorf("failed to list tournaments: %w", err)
	}

	var roles []string
	for _, t := range all {
		roles = append(roles, t.AdministratorRoles...)
	}
	if !s.authz.Allowed(actor, roles...) {
		return results.FailureResult[*TournamentSummary, error](fmt.Errorf("%w: %s may not create tournaments", tournamentdomain.ErrPermissionDenied, actor.ID)), nil
	}

	if slices.ContainsFunc(all, func(t *tournamentdomain.Tournament) bool { return t.Alias == alias }) {
		return results.FailureResult[*TournamentSummary, error](fmt.Errorf("%w: %s", tournamentdomain.ErrTournamentAliasExists, alias)), nil
	}

	t, skipped, err := tournamentdomain.NewTournament(ctx, s.provider, alias, tournamentID, s.now().UTC())
	if err != nil {
		return domainFailure[*TournamentSummary](err)
	}
	s.warnSkipped(ctx, alias, skipped)

	if err := s.repo.Create(ctx, db, t); err != nil {
		if errors.Is(err, tournamentdb.ErrAliasExists) {
			return results.FailureResult[*TournamentSummary, error](fmt.Errorf("%w: %s", tournamentdomain.ErrTournamentAliasExists, alias)), nil
		}
		return results.OperationResult[*TournamentSummary, error]{}, fmt.Errorf("failed to create tournament: %w", err)
	}

	summary := summarize(t)
	return results.SuccessResult[*TournamentSummary, error](&summary), nil
}

// RemoveTournament deletes the tournament. The captaincies it held are
// returned so their chat roles can be revoked.
func (s *TournamentService) RemoveTournament(ctx context.Context, actor tournamentdomain.Actor, alias string) ([]CaptainChange, error) {
	return unwrap(withTelemetry(s, ctx, "RemoveTournament", alias, func(ctx context.Context) (results.OperationResult[[]CaptainChange, error], error) {
		unlock := s.locks.lock(alias)
		defer unlock()
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]CaptainChange, error], error) {
			t, err := s.repo.Load(ctx, db, alias)
			if err != nil {
				return loadFailure[[]CaptainChange](alias, err)
			}
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return results.FailureResult[[]CaptainChange, error](err), nil
			}
			if err := s.repo.Delete(ctx, db, alias); err != nil {
				if errors.Is(err, tournamentdb.ErrNotFound) {
					return loadFailure[[]CaptainChange](alias, err)
				}
				return results.OperationResult[[]CaptainChange, error]{}, fmt.Errorf("failed to delete tournament: %w", err)
			}

			unlinked := []CaptainChange{}
			for i := range t.Teams {
				if t.Teams[i].HasCaptain() {
					unlinked = append(unlinked, captainChange(t, &t.Teams[i], t.Teams[i].Captain))
				}
			}
			return results.SuccessResult[[]CaptainChange, error](unlinked), nil
		})
	}))
}

// GetTournament returns the tournament as viewer may see it. Non-admins get
// the public view from tournamentdomain.TournamentView.
func (s *TournamentService) GetTournament(ctx context.Context, viewer tournamentdomain.Actor, alias string) (*tournamentdomain.Tournament, error) {
	return unwrap(withTelemetry(s, ctx, "GetTournament", alias, func(ctx context.Context) (results.OperationResult[*tournamentdomain.Tournament, error], error) {
		return inspect(s, ctx, alias, func(ctx context.Context, t *tournamentdomain.Tournament) (*tournamentdomain.Tournament, error) {
			view := tournamentdomain.TournamentView(t, viewer, s.authz)
			return &view, nil
		})
	}))
}

// ListTournaments returns a summary of every tournament, ordered by alias.
func (s *TournamentService) ListTournaments(ctx context.Context) ([]TournamentSummary, error) {
	return unwrap(withTelemetry(s, ctx, "ListTournaments", "", func(ctx context.Context) (results.OperationResult[[]TournamentSummary, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]TournamentSummary, error], error) {
			all, err := s.repo.List(ctx, db)
			if err != nil {
				return results.OperationResult[[]TournamentSummary, error]{}, fmt.Errorf("failed to list tournaments: %w", err)
			}
			out := make([]TournamentSummary, 0, len(all))
			for _, t := range all {
				out = append(out, summarize(t))
			}
			return results.SuccessResult[[]TournamentSummary, error](out), nil
		})
	}))
}

// RefreshTournament merges the provider's current snapshot into the tournament.
func (s *TournamentService) RefreshTournament(ctx context.Context, actor tournamentdomain.Actor, alias string) (*TournamentSummary, error) {
	return unwrap(withTelemetry(s, ctx, "RefreshTournament", alias, func(ctx context.Context) (results.OperationResult[*TournamentSummary, error], error) {
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (*TournamentSummary, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			return s.refresh(ctx, t)
		})
	}))
}

func (s *TournamentService) refresh(ctx context.Context, t *tournamentdomain.Tournament) (*TournamentSummary, error) {
	skipped, err := tournamentdomain.RefreshTournament(ctx, t, s.provider)
	if err != nil {
		return nil, err
	}
	s.warnSkipped(ctx, t.Alias, skipped)
	summary := summarize(t)
	return &summary, nil
}

func (s *TournamentService) warnSkipped(ctx context.Context, alias string, names []string) {
	if len(names) == 0 {
		return
	}
	s.logger.WarnContext(ctx, "Skipping participants without an id",
		attr.ExtractCorrelationID(ctx),
		attr.Alias(alias),
		attr.Int("count", len(names)),
		attr.Any("names", names),
	)
}

// RefreshStatus reports which teams were added or deleted upstream since the
// last refresh. Nothing is stored.
func (s *TournamentService) RefreshStatus(ctx context.Context, actor tournamentdomain.Actor, alias string) (*tournamentdomain.RefreshDiff, error) {
	return unwrap(withTelemetry(s, ctx, "RefreshStatus", alias, func(ctx context.Context) (results.OperationResult[*tournamentdomain.RefreshDiff, error], error) {
		return inspect(s, ctx, alias, func(ctx context.Context, t *tournamentdomain.Tournament) (*tournamentdomain.RefreshDiff, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			diff, err := tournamentdomain.RefreshStatus(ctx, t, s.provider)
			if err != nil {
				return nil, err
			}
			return &diff, nil
		})
	}))
}

// RefreshAll refreshes every tournament one alias at a time. Domain failures
// are collected in the report; the first infrastructure error stops the run.
func (s *TournamentService) RefreshAll(ctx context.Context) (*RefreshReport, error) {
	all, err := s.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	report := &RefreshReport{Refreshed: []string{}, Failed: map[string]string{}}
	for _, summary := range all {
		alias := summary.Alias
		_, err := unwrap(withTelemetry(s, ctx, "RefreshAll", alias, func(ctx context.Context) (results.OperationResult[*TournamentSummary, error], error) {
			return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (*TournamentSummary, error) {
				return s.refresh(ctx, t)
			})
		}))
		switch {
		case err == nil:
			report.Refreshed = append(report.Refreshed, alias)
		case tournamentdomain.IsDomainError(err):
			report.Failed[alias] = err.Error()
			s.logger.WarnContext(ctx, "Skipping tournament refresh", attr.Alias(alias), attr.Error(err))
		default:
			return report, err
		}
	}
	return report, nil
}
