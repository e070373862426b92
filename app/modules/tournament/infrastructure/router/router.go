package tournamentrouter

import (
	"context"
	"log/slog"

	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	tournamenthandlers "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/handlers"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// TournamentRouter handles Watermill handler registration for tournament events.
type TournamentRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	tracer     trace.Tracer
	// nil disables router metrics
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewTournamentRouter creates a new TournamentRouter. Handler metrics are
// registered on registry when it is not nil.
func NewTournamentRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	registry prometheus.Registerer,
) *TournamentRouter {
	var builder *metrics.PrometheusMetricsBuilder
	if registry != nil {
		b := metrics.NewPrometheusMetricsBuilder(registry, "tourney", "")
		builder = &b
	}
	return &TournamentRouter{
		logger:         logger,
		router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		tracer:         tracer,
		metricsBuilder: builder,
	}
}

// Configure sets up the router with handlers.
func (r *TournamentRouter) Configure(_ context.Context, handlers tournamenthandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware for Tournament")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.router)
	}
	r.registerHandlers(handlers)
	return nil
}

// handlerDeps bundles dependencies for handler registration.
type handlerDeps struct {
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandlers wires NATS topics to handler methods.
func (r *TournamentRouter) registerHandlers(h tournamenthandlers.Handlers) {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	r.logger.Info("Registering tournament module handlers",
		slog.String("stream_subject", tournamentevents.StreamSubject),
	)

	registerHandler(deps, tournamentevents.TournamentCreateRequestedV1, h.HandleCreateTournament)
	registerHandler(deps, tournamentevents.TournamentRemoveRequestedV1, h.HandleRemoveTournament)
	registerHandler(deps, tournamentevents.TournamentShowRequestedV1, h.HandleShowTournament)
	registerHandler(deps, tournamentevents.TournamentListRequestedV1, h.HandleListTournaments)
	registerHandler(deps, tournamentevents.TournamentRefreshRequestedV1, h.HandleRefreshTournament)
	registerHandler(deps, tournamentevents.TournamentRefreshStatusRequestedV1, h.HandleRefreshStatus)
	registerHandler(deps, tournamentevents.ChannelAddRequestedV1, h.HandleAddChannel)
	registerHandler(deps, tournamentevents.ChannelRemoveRequestedV1, h.HandleRemoveChannel)
	registerHandler(deps, tournamentevents.AdminRoleAddRequestedV1, h.HandleAddAdminRole)
	registerHandler(deps, tournamentevents.AdminRoleRemoveRequestedV1, h.HandleRemoveAdminRole)
	registerHandler(deps, tournamentevents.CaptainRoleSetRequestedV1, h.HandleSetCaptainRole)
	registerHandler(deps, tournamentevents.CaptainRoleRemoveRequestedV1, h.HandleRemoveCaptainRole)

	registerHandler(deps, tournamentevents.TeamResetRequestedV1, h.HandleResetTeam)
	registerHandler(deps, tournamentevents.TeamRemoveRequestedV1, h.HandleRemoveTeam)
	registerHandler(deps, tournamentevents.TeamsMissingRequestedV1, h.HandleMissingTeams)
	registerHandler(deps, tournamentevents.CaptainLinkRequestedV1, h.HandleLinkCaptain)
	registerHandler(deps, tournamentevents.CaptainAssignRequestedV1, h.HandleAssignCaptain)
	registerHandler(deps, tournamentevents.CaptainUnlinkRequestedV1, h.HandleUnlinkCaptain)
	registerHandler(deps, tournamentevents.CaptainStatusRequestedV1, h.HandleCaptainStatus)

	registerHandler(deps, tournamentevents.MatchCreateRequestedV1, h.HandleCreateMatch)
	registerHandler(deps, tournamentevents.MatchRemoveRequestedV1, h.HandleRemoveMatch)
	registerHandler(deps, tournamentevents.MatchJoinRequestedV1, h.HandleJoinMatch)
	registerHandler(deps, tournamentevents.MatchLeaveRequestedV1, h.HandleLeaveMatch)
	registerHandler(deps, tournamentevents.MatchStartRequestedV1, h.HandleStartMatch)
	registerHandler(deps, tournamentevents.MatchEndRequestedV1, h.HandleEndMatch)
	registerHandler(deps, tournamentevents.MatchStatusSetRequestedV1, h.HandleSetMatchStatus)
	registerHandler(deps, tournamentevents.MatchShowRequestedV1, h.HandleShowMatch)

	registerHandler(deps, tournamentevents.ScoreSubmitRequestedV1, h.HandleSubmitScore)
	registerHandler(deps, tournamentevents.ScreenshotAddRequestedV1, h.HandleAddScreenshot)
	registerHandler(deps, tournamentevents.ScoreRemoveRequestedV1, h.HandleRemoveScore)
	registerHandler(deps, tournamentevents.MatchScoresRequestedV1, h.HandleMatchScores)

	r.logger.Info("Tournament module handlers registered successfully")
}

// registerHandler is a generic function for type-safe Watermill handler registration.
// Results carry their own topic metadata, which the publisher honours.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "tournament." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			handler,
		),
	)
}

// Close shuts down the router.
func (r *TournamentRouter) Close() error {
	return r.router.Close()
}
