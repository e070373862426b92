package tournamenthandlers

import (
	"context"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
)

// HandleSubmitScore records the caller's team result for a match.
func (h *TournamentHandlers) HandleSubmitScore(ctx context.Context, payload *tournamentevents.ScoreSubmitRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleSubmitScore")
	defer span.End()

	sub, err := h.service.SubmitScore(ctx, payload.Actor, tournamentdomain.SubmitScoreParams{
		MatchName:    payload.MatchName,
		URLs:         payload.URLs,
		Position:     payload.Position,
		Eliminations: payload.Eliminations,
	})
	return h.reply(ctx, request{command: tournamentevents.ScoreSubmitRequestedV1, actor: payload.Actor}, submissionView(sub), err)
}

// HandleAddScreenshot attaches proof links to the caller's submission.
func (h *TournamentHandlers) HandleAddScreenshot(ctx context.Context, payload *tournamentevents.ScreenshotAddRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleAddScreenshot")
	defer span.End()

	sub, err := h.service.AddScreenshot(ctx, payload.Actor, payload.MatchName, payload.URLs)
	return h.reply(ctx, request{command: tournamentevents.ScreenshotAddRequestedV1, actor: payload.Actor}, submissionView(sub), err)
}

// HandleRemoveScore withdraws the caller's submission.
func (h *TournamentHandlers) HandleRemoveScore(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleRemoveScore")
	defer span.End()

	sub, err := h.service.RemoveScore(ctx, payload.Actor, payload.MatchName)
	return h.reply(ctx, request{command: tournamentevents.ScoreRemoveRequestedV1, actor: payload.Actor}, submissionView(sub), err)
}

// HandleMatchScores lists every team's submission for a match.
func (h *TournamentHandlers) HandleMatchScores(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.start(ctx, "HandleMatchScores")
	defer span.End()

	scores, err := h.service.MatchScores(ctx, payload.Actor, payload.Alias, payload.MatchName)
	return h.reply(ctx, request{tournamentevents.MatchScoresRequestedV1, payload.Alias, payload.Actor}, scores, err)
}

// scoreView is a submission with its computed points.
type scoreView struct {
	*tournamentdomain.ScoreSubmission
	Points int `json:"points"`
}

func submissionView(sub *tournamentdomain.ScoreSubmission) any {
	if sub == nil {
		return nil
	}
	return scoreView{ScoreSubmission: sub, Points: sub.Points()}
}
