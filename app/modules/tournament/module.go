package tournament

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tournamentservice "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentapi "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/api"
	tournamenthandlers "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/handlers"
	tournamentqueue "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/queue"
	tournamentdb "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/repositories"
	tournamentrouter "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/router"
	"github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/toornament"
	"github.com/Black-And-White-Club/tourney-bot/config"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the tournament module.
type Module struct {
	Service tournamentservice.Service
	Router  *tournamentrouter.TournamentRouter
	Queue   *tournamentqueue.Service
	HTTP    *http.Server
	logger  *slog.Logger
}

// NewTournamentModule wires the provider client, service, message handlers,
// refresh queue and HTTP API. subscriber and publisher are usually the same
// event bus.
func NewTournamentModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	subscriber message.Subscriber,
	publisher message.Publisher,
	router *message.Router,
) (*Module, error) {
	logger := obs.Provider.Logger.With(attr.String("module", "tournament"))
	tracer := obs.Provider.TracerProvider.Tracer("tournament")

	provider := toornament.NewClient(toornament.Config{
		APIURL:        cfg.Toornament.APIURL,
		APIKey:        cfg.Toornament.APIKey,
		ClientID:      cfg.Toornament.ClientID,
		ClientSecret:  cfg.Toornament.ClientSecret,
		RatePerSecond: cfg.Toornament.RatePerSecond,
		Burst:         cfg.Toornament.Burst,
		Timeout:       cfg.Toornament.Timeout,
	}, logger, obs.Metrics, tracer)

	authz := tournamentdomain.NewAuthorizer(cfg.Bot.Superusers)
	service := tournamentservice.NewTournamentService(
		tournamentdb.NewRepository(db), provider, authz, logger, obs.Metrics, tracer, db,
	)

	tournamentRouter := tournamentrouter.NewTournamentRouter(logger, router, subscriber, publisher, tracer, obs.Registry)
	if err := tournamentRouter.Configure(ctx, tournamenthandlers.NewTournamentHandlers(service, logger, tracer)); err != nil {
		return nil, fmt.Errorf("failed to configure tournament router: %w", err)
	}

	queue, err := tournamentqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, obs.Metrics, service, tournamentqueue.Config{
		Periodic: cfg.Refresh.Enabled,
		Interval: cfg.Refresh.Interval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament queue: %w", err)
	}

	api := tournamentapi.NewServer(
		tournamentapi.Config{RatePerSecond: cfg.HTTP.RatePerSecond, Burst: cfg.HTTP.Burst},
		service,
		queue,
		authz,
		tournamentapi.NewTokens(cfg.JWT.Secret),
		map[string]tournamentapi.HealthCheck{
			"postgres": func(ctx context.Context) error { return db.PingContext(ctx) },
			"queue":    queue.HealthCheck,
		},
		obs.Registry,
		logger,
		tracer,
	)

	return &Module{
		Service: service,
		Router:  tournamentRouter,
		Queue:   queue,
		HTTP: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           api.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}, nil
}

// Run starts the refresh queue and serves HTTP until ctx is done or the
// listener fails.
func (m *Module) Run(ctx context.Context) error {
	if err := m.Queue.Start(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		m.logger.Info("HTTP API listening", attr.String("address", m.HTTP.Addr))
		if err := m.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP API stopped: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the HTTP listener and the refresh queue.
func (m *Module) Close(ctx context.Context) error {
	m.logger.Info("Stopping tournament module")
	var errs []error
	if err := m.HTTP.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down HTTP API: %w", err))
	}
	if err := m.Queue.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
