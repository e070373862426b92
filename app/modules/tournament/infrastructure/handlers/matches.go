package tournamenthandlers

import (
	"context"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
)

// HandleCreateMatch adds a match to a tournament.
func (h *TournamentHandlers) HandleCreateMatch(ctx context.Context, payload *tournamentevents.MatchCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleCreateMatch")
	defer span.End()

	m, err := h.service.CreateMatch(ctx, payload.Actor, payload.Alias, tournamentdomain.CreateMatchParams{
		Name:            payload.MatchName,
		Password:        payload.Password,
		ProviderMatchID: payload.ProviderMatchID,
	})
	return h.reply(ctx, request{tournamentevents.MatchCreateRequestedV1, payload.Alias, payload.Actor}, m, err)
}

// HandleRemoveMatch deletes a match.
func (h *TournamentHandlers) HandleRemoveMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleRemoveMatch")
	defer span.End()

	err := h.service.RemoveMatch(ctx, payload.Actor, payload.Alias, payload.MatchName)
	return h.reply(ctx, request{tournamentevents.MatchRemoveRequestedV1, payload.Alias, payload.Actor}, payload.MatchName, err)
}

// HandleJoinMatch registers the caller's team for a pending match.
func (h *TournamentHandlers) HandleJoinMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleJoinMatch")
	defer span.End()

	m, err := h.service.JoinMatch(ctx, payload.Actor, payload.MatchName)
	return h.reply(ctx, request{tournamentevents.MatchJoinRequestedV1, payload.Alias, payload.Actor}, maskMatch(m), err)
}

// HandleLeaveMatch withdraws the caller's team from a pending match.
func (h *TournamentHandlers) HandleLeaveMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleLeaveMatch")
	defer span.End()

	m, err := h.service.LeaveMatch(ctx, payload.Actor, payload.MatchName)
	return h.reply(ctx, request{tournamentevents.MatchLeaveRequestedV1, payload.Alias, payload.Actor}, maskMatch(m), err)
}

// HandleStartMatch starts a match. The channels get a public announcement
// and the joined captains a private notice with the lobby password.
func (h *TournamentHandlers) HandleStartMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleStartMatch")
	defer span.End()

	started, err := h.service.StartMatch(ctx, payload.Actor, payload.Alias, payload.MatchName)
	var data any
	if started != nil {
		data = started.Match
	}
	results, rerr := h.reply(ctx, request{tournamentevents.MatchStartRequestedV1, payload.Alias, payload.Actor}, data, err)
	if err != nil || started == nil {
		return results, rerr
	}

	h.logger.InfoContext(ctx, "Match started",
		attr.ExtractCorrelationID(ctx),
		attr.Alias(payload.Alias),
		attr.String("match", payload.MatchName),
		attr.Int("captains", len(started.Notice.Captains)),
	)
	notice := started.Notice
	return append(results,
		handlerwrapper.Result{
			Topic: tournamentevents.MatchStartedV1,
			Payload: &tournamentevents.MatchStartedPayloadV1{
				Alias:     notice.Alias,
				MatchName: notice.MatchName,
				Channels:  notice.Channels,
				Captains:  notice.Captains,
			},
		},
		handlerwrapper.Result{
			Topic: tournamentevents.MatchLobbyV1,
			Payload: &tournamentevents.MatchLobbyPayloadV1{
				Alias:     notice.Alias,
				MatchName: notice.MatchName,
				Password:  notice.Password,
				Captains:  notice.Captains,
			},
		},
	), nil
}

// HandleEndMatch completes an ongoing match, or any match when forced.
func (h *TournamentHandlers) HandleEndMatch(ctx context.Context, payload *tournamentevents.MatchEndRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleEndMatch")
	defer span.End()

	m, err := h.service.EndMatch(ctx, payload.Actor, payload.Alias, payload.MatchName, payload.Force)
	return h.reply(ctx, request{tournamentevents.MatchEndRequestedV1, payload.Alias, payload.Actor}, m, err)
}

// HandleSetMatchStatus overrides a match status.
func (h *TournamentHandlers) HandleSetMatchStatus(ctx context.Context, payload *tournamentevents.MatchStatusSetRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleSetMatchStatus")
	defer span.End()

	m, err := h.service.SetMatchStatus(ctx, payload.Actor, payload.Alias, payload.MatchName, payload.Status)
	return h.reply(ctx, request{tournamentevents.MatchStatusSetRequestedV1, payload.Alias, payload.Actor}, m, err)
}

// HandleShowMatch returns a match as the caller may see it.
func (h *TournamentHandlers) HandleShowMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleShowMatch")
	defer span.End()

	m, err := h.service.ShowMatch(ctx, payload.Actor, payload.Alias, payload.MatchName)
	return h.reply(ctx, request{tournamentevents.MatchShowRequestedV1, payload.Alias, payload.Actor}, m, err)
}

// maskMatch hides the lobby password from captain replies. Captains learn
// it from the start notice.
func maskMatch(m *tournamentdomain.Match) *tournamentdomain.Match {
	if m == nil {
		return nil
	}
	out := *m
	out.Password = ""
	return &out
}
