package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
)

// HandleResetTeam reloads a team from the provider and drops its captain.
func (h *TournamentHandlers) HandleResetTeam(ctx context.Context, payload *tournamentevents.TeamRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleResetTeam")
	defer span.End()

	change, err := h.service.ResetTeam(ctx, payload.Actor, payload.Alias, payload.TeamID)
	results, rerr := h.reply(ctx, request{tournamentevents.TeamResetRequestedV1, payload.Alias, payload.Actor}, change, err)
	if err == nil && change != nil && change.Unlinked != nil {
		results = append(results, captainResult(tournamentevents.CaptainUnlinkedV1, change.Unlinked))
	}
	return results, rerr
}

// HandleRemoveTeam deletes a team from a tournament.
func (h *TournamentHandlers) HandleRemoveTeam(ctx context.Context, payload *tournamentevents.TeamRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleRemoveTeam")
	defer span.End()

	change, err := h.service.RemoveTeam(ctx, payload.Actor, payload.Alias, payload.TeamID)
	results, rerr := h.reply(ctx, request{tournamentevents.TeamRemoveRequestedV1, payload.Alias, payload.Actor}, change, err)
	if err == nil && change != nil && change.Unlinked != nil {
		results = append(results, captainResult(tournamentevents.CaptainUnlinkedV1, change.Unlinked))
	}
	return results, rerr
}

// HandleMissingTeams lists teams that have no captain yet.
func (h *TournamentHandlers) HandleMissingTeams(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleMissingTeams")
	defer span.End()

	teams, err := h.service.MissingTeams(ctx, payload.Actor, payload.Alias)
	return h.reply(ctx, request{tournamentevents.TeamsMissingRequestedV1, payload.Alias, payload.Actor}, teams, err)
}

// HandleLinkCaptain makes the caller captain of the named team.
func (h *TournamentHandlers) HandleLinkCaptain(ctx context.Context, payload *tournamentevents.CaptainLinkRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleLinkCaptain")
	defer span.End()

	h.logger.InfoContext(ctx, "Captain link requested",
		attr.ExtractCorrelationID(ctx),
		attr.Alias(payload.Alias),
		attr.String("team_name", payload.TeamName),
		attr.String("actor", payload.Actor.ID),
	)

	change, err := h.service.LinkCaptain(ctx, payload.Actor, payload.Alias, payload.TeamName)
	results, rerr := h.reply(ctx, request{tournamentevents.CaptainLinkRequestedV1, payload.Alias, payload.Actor}, change, err)
	if err == nil && change != nil {
		results = append(results, captainResult(tournamentevents.CaptainLinkedV1, change))
	}
	return results, rerr
}

// HandleAssignCaptain links any user to a team. A displaced captain is
// announced before the new one.
func (h *TournamentHandlers) HandleAssignCaptain(ctx context.Context, payload *tournamentevents.CaptainAssignRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleAssignCaptain")
	defer span.End()

	assignment, err := h.service.AssignCaptain(ctx, payload.Actor, payload.Alias, payload.TeamID, payload.UserID)
	results, rerr := h.reply(ctx, request{tournamentevents.CaptainAssignRequestedV1, payload.Alias, payload.Actor}, assignment, err)
	if err != nil || assignment == nil {
		return results, rerr
	}
	if assignment.Replaced != nil {
		results = append(results, captainResult(tournamentevents.CaptainUnlinkedV1, assignment.Replaced))
	}
	results = append(results, captainResult(tournamentevents.CaptainLinkedV1, &assignment.Linked))
	return results, rerr
}

// HandleUnlinkCaptain releases the caller's captaincy.
func (h *TournamentHandlers) HandleUnlinkCaptain(ctx context.Context, payload *tournamentevents.CaptainLinkRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleUnlinkCaptain")
	defer span.End()

	change, err := h.service.UnlinkCaptain(ctx, payload.Actor, payload.TeamName)
	alias := ""
	if change != nil {
		alias = change.Alias
	}
	results, rerr := h.reply(ctx, request{tournamentevents.CaptainUnlinkRequestedV1, alias, payload.Actor}, change, err)
	if err == nil && change != nil {
		results = append(results, captainResult(tournamentevents.CaptainUnlinkedV1, change))
	}
	return results, rerr
}

// HandleCaptainStatus answers a captain with their team and joined matches.
func (h *TournamentHandlers) HandleCaptainStatus(ctx context.Context, payload *tournamentevents.ActorRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleCaptainStatus")
	defer span.End()

	status, err := h.service.CaptainStatus(ctx, payload.Actor)
	alias := ""
	if status != nil {
		alias = status.Alias
	}
	return h.reply(ctx, request{tournamentevents.CaptainStatusRequestedV1, alias, payload.Actor}, status, err)
}
