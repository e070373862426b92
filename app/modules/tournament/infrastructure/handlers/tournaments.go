package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
)

// HandleCreateTournament registers a provider tournament under an alias.
func (h *TournamentHandlers) HandleCreateTournament(ctx context.Context, payload *tournamentevents.TournamentCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleCreateTournament")
	defer span.End()

	h.logger.InfoContext(ctx, "Tournament create requested",
		attr.ExtractCorrelationID(ctx),
		attr.Alias(payload.Alias),
		attr.String("tournament_id", payload.TournamentID),
		attr.String("actor", payload.Actor.ID),
	)

	summary, err := h.service.CreateTournament(ctx, payload.Actor, payload.Alias, payload.TournamentID)
	return h.reply(ctx, request{tournamentevents.TournamentCreateRequestedV1, payload.Alias, payload.Actor}, summary, err)
}

// HandleRemoveTournament deletes a tournament and releases its captains.
func (h *TournamentHandlers) HandleRemoveTournament(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleRemoveTournament")
	defer span.End()

	released, err := h.service.RemoveTournament(ctx, payload.Actor, payload.Alias)
	results, rerr := h.reply(ctx, request{tournamentevents.TournamentRemoveRequestedV1, payload.Alias, payload.Actor}, nil, err)
	if err != nil || rerr != nil {
		return results, rerr
	}
	return append(results, unlinkedResults(released)...), nil
}

// HandleShowTournament returns a tournament as the caller may see it.
func (h *TournamentHandlers) HandleShowTournament(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleShowTournament")
	defer span.End()

	t, err := h.service.GetTournament(ctx, payload.Actor, payload.Alias)
	return h.reply(ctx, request{tournamentevents.TournamentShowRequestedV1, payload.Alias, payload.Actor}, t, err)
}

// HandleListTournaments summarizes every tournament.
func (h *TournamentHandlers) HandleListTournaments(ctx context.Context, payload *tournamentevents.ActorRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleListTournaments")
	defer span.End()

	list, err := h.service.ListTournaments(ctx)
	return h.reply(ctx, request{command: tournamentevents.TournamentListRequestedV1, actor: payload.Actor}, list, err)
}

// HandleRefreshTournament pulls fresh provider data into the tournament.
func (h *TournamentHandlers) HandleRefreshTournament(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleRefreshTournament")
	defer span.End()

	summary, err := h.service.RefreshTournament(ctx, payload.Actor, payload.Alias)
	return h.reply(ctx, request{tournamentevents.TournamentRefreshRequestedV1, payload.Alias, payload.Actor}, summary, err)
}

// HandleRefreshStatus reports what a refresh would add or delete.
func (h *TournamentHandlers) HandleRefreshStatus(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleRefreshStatus")
	defer span.End()

	diff, err := h.service.RefreshStatus(ctx, payload.Actor, payload.Alias)
	return h.reply(ctx, request{tournamentevents.TournamentRefreshStatusRequestedV1, payload.Alias, payload.Actor}, diff, err)
}

// HandleAddChannel allows commands from one more channel.
func (h *TournamentHandlers) HandleAddChannel(ctx context.Context, payload *tournamentevents.ChannelRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleAddChannel")
	defer span.End()

	channels, err := h.service.AddChannel(ctx, payload.Actor, payload.Alias, payload.Channel)
	return h.reply(ctx, request{tournamentevents.ChannelAddRequestedV1, payload.Alias, payload.Actor}, channels, err)
}

// HandleRemoveChannel stops accepting commands from a channel.
func (h *TournamentHandlers) HandleRemoveChannel(ctx context.Context, payload *tournamentevents.ChannelRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleRemoveChannel")
	defer span.End()

	channels, err := h.service.RemoveChannel(ctx, payload.Actor, payload.Alias, payload.Channel)
	return h.reply(ctx, request{tournamentevents.ChannelRemoveRequestedV1, payload.Alias, payload.Actor}, channels, err)
}

// HandleAddAdminRole grants a chat role admin rights.
func (h *TournamentHandlers) HandleAddAdminRole(ctx context.Context, payload *tournamentevents.RoleRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleAddAdminRole")
	defer span.End()

	roles, err := h.service.AddAdminRole(ctx, payload.Actor, payload.Alias, payload.Role)
	return h.reply(ctx, request{tournamentevents.AdminRoleAddRequestedV1, payload.Alias, payload.Actor}, roles, err)
}

// HandleRemoveAdminRole revokes a chat role's admin rights.
func (h *TournamentHandlers) HandleRemoveAdminRole(ctx context.Context, payload *tournamentevents.RoleRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleRemoveAdminRole")
	defer span.End()

	roles, err := h.service.RemoveAdminRole(ctx, payload.Actor, payload.Alias, payload.Role)
	return h.reply(ctx, request{tournamentevents.AdminRoleRemoveRequestedV1, payload.Alias, payload.Actor}, roles, err)
}

// HandleSetCaptainRole sets the role given to linked captains.
func (h *TournamentHandlers) HandleSetCaptainRole(ctx context.Context, payload *tournamentevents.RoleRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleSetCaptainRole")
	defer span.End()

	err := h.service.SetCaptainRole(ctx, payload.Actor, payload.Alias, payload.Role)
	return h.reply(ctx, request{tournamentevents.CaptainRoleSetRequestedV1, payload.Alias, payload.Actor}, payload.Role, err)
}

// HandleRemoveCaptainRole clears the captain role of a tournament.
func (h *TournamentHandlers) HandleRemoveCaptainRole(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleRemoveCaptainRole")
	defer span.End()

	err := h.service.SetCaptainRole(ctx, payload.Actor, payload.Alias, "")
	return h.reply(ctx, request{tournamentevents.CaptainRoleRemoveRequestedV1, payload.Alias, payload.Actor}, nil, err)
}
