package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/tourney-bot/app/eventbus"
	"github.com/Black-And-White-Club/tourney-bot/app/modules/tournament"
	"github.com/Black-And-White-Club/tourney-bot/config"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"golang.org/x/sync/errgroup"
)

// App holds the process-wide dependencies.
type App struct {
	Config     *config.Config
	Obs        *observability.Observability
	Logger     *slog.Logger
	DB         *bun.DB
	EventBus   eventbus.EventBus
	Router     *message.Router
	Tournament *tournament.Module
}

// NewApp connects Postgres and NATS, creates the streams and wires the
// tournament module onto a shared Watermill router.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.Init(ctx, config.ToObsConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Provider.Logger
	app := &App{Config: cfg, Obs: obs, Logger: logger}

	app.DB = bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN))), pgdialect.New())
	if err := app.DB.PingContext(ctx); err != nil {
		app.closeAll(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	app.EventBus, err = eventbus.NewEventBus(ctx, eventbus.Config{
		URL:        cfg.NATS.URL,
		QueueGroup: cfg.NATS.QueueGroup,
	}, logger)
	if err != nil {
		app.closeAll(ctx)
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	if err := eventbus.InitializeStreams(ctx, app.EventBus, logger); err != nil {
		app.closeAll(ctx)
		return nil, err
	}

	wmLogger := watermill.NewSlogLogger(logger)
	app.Router, err = message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, wmLogger)
	if err != nil {
		app.closeAll(ctx)
		return nil, fmt.Errorf("failed to create Watermill router: %w", err)
	}
	app.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			Multiplier:      2,
			Logger:          wmLogger,
		}.Middleware,
		middleware.Recoverer,
	)

	app.Tournament, err = tournament.NewTournamentModule(ctx, cfg, obs, app.DB, app.EventBus, app.EventBus, app.Router)
	if err != nil {
		app.closeAll(ctx)
		return nil, fmt.Errorf("failed to initialize tournament module: %w", err)
	}

	logger.InfoContext(ctx, "Application initialized", attr.String("version", config.Version))
	return app, nil
}

// Run processes messages and serves HTTP until ctx is canceled or a
// component fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Router.Run(ctx); err != nil {
			return fmt.Errorf("watermill router: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-a.Router.Running():
		case <-ctx.Done():
			return nil
		}
		return a.Tournament.Run(ctx)
	})
	return g.Wait()
}

// Close releases everything NewApp opened, in reverse order.
func (a *App) Close(ctx context.Context) error {
	return a.closeAll(ctx)
}

func (a *App) closeAll(ctx context.Context) error {
	var errs []error
	if a.Tournament != nil {
		if err := a.Tournament.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Router != nil {
		if err := a.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close router: %w", err))
		}
	}
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	if err := a.Obs.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
	}
	return errors.Join(errs...)
}
