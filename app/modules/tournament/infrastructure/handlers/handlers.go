package tournamenthandlers

import (
	"context"
	"log/slog"

	tournamentservice "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// TournamentHandlers implements the Handlers interface.
type TournamentHandlers struct {
	service tournamentservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewTournamentHandlers creates a new TournamentHandlers instance.
func NewTournamentHandlers(
	service tournamentservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &TournamentHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// request identifies the command being answered.
type request struct {
	command string
	alias   string
	actor   tournamentdomain.Actor
}

// reply turns a service outcome into the answer for the sender. Domain
// failures become a CommandFailed result; anything else is returned so the
// message is redelivered.
func (h *TournamentHandlers) reply(ctx context.Context, req request, data any, err error) ([]handlerwrapper.Result, error) {
	if err != nil {
		if !tournamentdomain.IsDomainError(err) {
			return nil, err
		}
		h.logger.InfoContext(ctx, "Command rejected",
			attr.ExtractCorrelationID(ctx),
			attr.String("command", req.command),
			attr.Alias(req.alias),
			attr.String("actor", req.actor.ID),
			attr.String("code", tournamentdomain.ErrorCode(err)),
		)
		return []handlerwrapper.Result{{
			Topic: handlerwrapper.ReplyTopic(ctx, tournamentevents.CommandFailedV1),
			Payload: &tournamentevents.CommandFailedPayloadV1{
				Command: req.command,
				Alias:   req.alias,
				Actor:   req.actor,
				Code:    tournamentdomain.ErrorCode(err),
				Reason:  err.Error(),
			},
		}}, nil
	}

	return []handlerwrapper.Result{{
		Topic: handlerwrapper.ReplyTopic(ctx, tournamentevents.CommandSucceededV1),
		Payload: &tournamentevents.CommandSucceededPayloadV1{
			Command: req.command,
			Alias:   req.alias,
			Actor:   req.actor,
			Data:    data,
		},
	}}, nil
}

func (h *TournamentHandlers) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return h.tracer.Start(ctx, "TournamentHandlers."+name)
}

func captainResult(topic string, c *tournamentservice.CaptainChange) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: topic,
		Payload: &tournamentevents.CaptainChangedPayloadV1{
			Alias:       c.Alias,
			TeamID:      c.TeamID,
			TeamName:    c.TeamName,
			UserID:      c.UserID,
			CaptainRole: c.CaptainRole,
		},
	}
}

func unlinkedResults(changes []tournamentservice.CaptainChange) []handlerwrapper.Result {
	out := make([]handlerwrapper.Result, 0, len(changes))
	for i := range changes {
		out = append(out, captainResult(tournamentevents.CaptainUnlinkedV1, &changes[i]))
	}
	return out
}
