package tournamentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/tourney-bot/internal/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "TournamentService"

// TournamentService implements the Service interface.
type TournamentService struct {
	repo     tournamentdb.Repository
	provider tournamentdomain.Provider
	authz    tournamentdomain.Authorizer
	logger   *slog.Logger
	metrics  metrics.Metrics
	tracer   trace.Tracer
	db       *bun.DB

	locks *aliasLocks
	// captainMu serializes commands that grant a captaincy, since the
	// one-team-per-captain rule spans aliases.
	captainMu sync.Mutex
	now       func() time.Time
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	provider tournamentdomain.Provider,
	authz tournamentdomain.Authorizer,
	logger *slog.Logger,
	metrics metrics.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TournamentService{
		repo:     repo,
		provider: provider,
		authz:    authz,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
		locks:    newAliasLocks(),
		now:      time.Now,
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *TournamentService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	// Start span
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Handle Infrastructure Error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Handle Domain Failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *TournamentService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// mutateFunc changes t in place. A domain error aborts the command and
// nothing is saved.
type mutateFunc[S any] func(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) (S, error)

// mutate runs fn as one locked read-modify-write of the tournament under
// alias: in-process lock, transaction, row-locking Load, fn, Save.
func mutate[S any](s *TournamentService, ctx context.Context, alias string, fn mutateFunc[S]) (results.OperationResult[S, error], error) {
	unlock := s.locks.lock(alias)
	defer unlock()

	return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error) {
		t, err := s.repo.Load(ctx, db, alias)
		if err != nil {
			return loadFailure[S](alias, err)
		}

		out, err := fn(ctx, db, t)
		if err != nil {
			return domainFailure[S](err)
		}

		if err := s.repo.Save(ctx, db, t); err != nil {
			return results.OperationResult[S, error]{}, fmt.Errorf("failed to save tournament: %w", err)
		}
		return results.SuccessResult[S, error](out), nil
	})
}

// inspect runs a read-only fn against the tournament under alias.
func inspect[S any](s *TournamentService, ctx context.Context, alias string, fn func(ctx context.Context, t *tournamentdomain.Tournament) (S, error)) (results.OperationResult[S, error], error) {
	return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error) {
		t, err := s.repo.Get(ctx, db, alias)
		if err != nil {
			return loadFailure[S](alias, err)
		}
		out, err := fn(ctx, t)
		if err != nil {
			return domainFailure[S](err)
		}
		return results.SuccessResult[S, error](out), nil
	})
}

// loadFailure maps repository errors to failures where the caller is at fault.
func loadFailure[S any](alias string, err error) (results.OperationResult[S, error], error) {
	switch {
	case errors.Is(err, tournamentdb.ErrNotFound):
		return results.FailureResult[S, error](fmt.Errorf("%w: %s", tournamentdomain.ErrTournamentNotFound, alias)), nil
	case errors.Is(err, tournamentdomain.ErrInvalidTournament):
		return results.FailureResult[S, error](err), nil
	default:
		return results.OperationResult[S, error]{}, fmt.Errorf("failed to load tournament: %w", err)
	}
}

// domainFailure turns typed domain errors into failure results and passes
// anything else through as an infrastructure error.
func domainFailure[S any](err error) (results.OperationResult[S, error], error) {
	if tournamentdomain.IsDomainError(err) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

// unwrap converts an operation result to the public (value, error) form.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	return *result.Success, nil
}

// captainTournament finds the tournament whose team actor captains. The
// answer is advisory: callers re-check it under the alias lock.
func (s *TournamentService) captainTournament(ctx context.Context, actor tournamentdomain.Actor) (string, error) {
	all, err := s.repo.List(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list tournaments: %w", err)
	}
	t, _ := tournamentdomain.FindCaptain(all, actor.ID)
	if t == nil {
		return "", fmt.Errorf("%w: %s", tournamentdomain.ErrNotATeamCaptain, actor.ID)
	}
	return t.Alias, nil
}

// captainOf returns the team actor captains in t.
func captainOf(t *tournamentdomain.Tournament, actor tournamentdomain.Actor) (*tournamentdomain.Team, error) {
	team := t.FindTeamByCaptain(actor.ID)
	if team == nil {
		return nil, fmt.Errorf("%w: %s in %s", tournamentdomain.ErrNotATeamCaptain, actor.ID, t.Alias)
	}
	return team, nil
}

// storeWith lists every tournament, substituting current for its stored copy.
func (s *TournamentService) storeWith(ctx context.Context, db bun.IDB, current *tournamentdomain.Tournament) ([]*tournamentdomain.Tournament, error) {
	all, err := s.repo.List(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	out := make([]*tournamentdomain.Tournament, 0, len(all)+1)
	out = append(out, current)
	for _, t := range all {
		if t.Alias != current.Alias {
			out = append(out, t)
		}
	}
	return out, nil
}
