package tournamentservice

import (
	"context"
	"fmt"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/tourney-bot/internal/results"
	"github.com/uptrace/bun"
)

// captainSubmission runs a score change for the team actor captains. Score
// commands are private, so no channel check applies.
func (s *TournamentService) captainSubmission(
	ctx context.Context,
	operation string,
	actor tournamentdomain.Actor,
	fn func(t *tournamentdomain.Tournament, team *tournamentdomain.Team) (*tournamentdomain.ScoreSubmission, error),
) (*tournamentdomain.ScoreSubmission, error) {
	return unwrap(withTelemetry(s, ctx, operation, actor.ID, func(ctx context.Context) (results.OperationResult[*tournamentdomain.ScoreSubmission, error], error) {
		alias, err := s.captainTournament(ctx, actor)
		if err != nil {
			return domainFailure[*tournamentdomain.ScoreSubmission](err)
		}
		return mutate(s, ctx, alias, func(ctx context.Context, _ bun.IDB, t *tournamentdomain.Tournament) (*tournamentdomain.ScoreSubmission, error) {
			team, err := captainOf(t, actor)
			if err != nil {
				return nil, err
			}
			sub, err := fn(t, team)
			if err != nil {
				return nil, err
			}
			out := *sub
			out.ScreenshotLinks = append([]string{}, sub.ScreenshotLinks...)
			return &out, nil
		})
	}))
}

// SubmitScore records the score of the actor's team. params.TeamID is
// ignored and resolved from the actor's captaincy.
func (s *TournamentService) SubmitScore(ctx context.Context, actor tournamentdomain.Actor, params tournamentdomain.SubmitScoreParams) (*tournamentdomain.ScoreSubmission, error) {
	return s.captainSubmission(ctx, "SubmitScore", actor, func(t *tournamentdomain.Tournament, team *tournamentdomain.Team) (*tournamentdomain.ScoreSubmission, error) {
		params.TeamID = team.ID
		return tournamentdomain.SubmitScore(t, params, s.now().UTC())
	})
}

// AddScreenshot appends screenshots to the actor's submission for matchName.
func (s *TournamentService) AddScreenshot(ctx context.Context, actor tournamentdomain.Actor, matchName string, urls []string) (*tournamentdomain.ScoreSubmission, error) {
	return s.captainSubmission(ctx, "AddScreenshot", actor, func(t *tournamentdomain.Tournament, team *tournamentdomain.Team) (*tournamentdomain.ScoreSubmission, error) {
		return tournamentdomain.AddScreenshot(t, matchName, team.ID, urls, s.now().UTC())
	})
}

// RemoveScore deletes the actor's submission for matchName so it can be
// submitted again.
func (s *TournamentService) RemoveScore(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.ScoreSubmission, error) {
	return s.captainSubmission(ctx, "RemoveScore", actor, func(t *tournamentdomain.Tournament, team *tournamentdomain.Team) (*tournamentdomain.ScoreSubmission, error) {
		return tournamentdomain.RemoveScore(t, matchName, team.ID)
	})
}

// MatchScores lists every submission for a match with its points.
func (s *TournamentService) MatchScores(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*MatchScores, error) {
	return unwrap(withTelemetry(s, ctx, "MatchScores", alias, func(ctx context.Context) (results.OperationResult[*MatchScores, error], error) {
		return inspect(s, ctx, alias, func(ctx context.Context, t *tournamentdomain.Tournament) (*MatchScores, error) {
			if err := s.authz.RequireAdmin(actor, t); err != nil {
				return nil, err
			}
			rows, err := tournamentdomain.MatchScores(t, matchName)
			if err != nil {
				return nil, err
			}
			return &MatchScores{Alias: t.Alias, MatchName: matchName, Rows: rows}, nil
		})
	}))
}

func matchNotFound(t *tournamentdomain.Tournament, name string) error {
	return fmt.Errorf("%w: %s in tournament %s", tournamentdomain.ErrMatchNotFound, name, t.Alias)
}
