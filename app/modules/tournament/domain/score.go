package tournamentdomain

import (
	"fmt"
	"time"
)

// Points is the reporting score for a placement: a lookup on position plus
// one point per elimination.
func Points(position, eliminations int) int {
	var placement int
	switch {
	case position == 1:
		placement = 15
	case position == 2:
		placement = 12
	case position >= 3 && position <= 4:
		placement = 9
	case position >= 5 && position <= 8:
		placement = 6
	case position >= 9 && position <= 12:
		placement = 3
	}
	return placement + eliminations
}

// SubmitScoreParams is a team's result claim.
type SubmitScoreParams struct {
	MatchName    string
	TeamID       string
	URLs         []string
	Position     int
	Eliminations int
}

// SubmitScore records the team's first submission for a match.
func SubmitScore(t *Tournament, params SubmitScoreParams, now time.Time) (*ScoreSubmission, error) {
	m, err := getMatch(t, params.MatchName)
	if err != nil {
		return nil, err
	}
	team := t.FindTeamByID(params.TeamID)
	if team == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, params.TeamID)
	}
	if !m.IsRegistered(team.ID) {
		return nil, fmt.Errorf("%w: team %s is not in match group %q", ErrTeamNotEligible, team.Name, m.GroupName)
	}
	if m.Locked() {
		return nil, fmt.Errorf("%w: %s", ErrMatchLocked, m.Name)
	}
	if team.FindSubmission(m.Name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadySubmitted, m.Name)
	}
	if params.Position < 1 {
		return nil, fmt.Errorf("%w: position must be at least 1, got %d", ErrInvalidScore, params.Position)
	}
	if params.Eliminations < 0 {
		return nil, fmt.Errorf("%w: eliminations must not be negative, got %d", ErrInvalidScore, params.Eliminations)
	}

	team.ScoreSubmissions = append(team.ScoreSubmissions, ScoreSubmission{
		MatchName:       m.Name,
		TeamName:        team.Name,
		ScreenshotLinks: append([]string{}, params.URLs...),
		Position:        params.Position,
		Eliminations:    params.Eliminations,
		UpdatedAt:       now,
	})
	return &team.ScoreSubmissions[len(team.ScoreSubmissions)-1], nil
}

func unlockedSubmission(t *Tournament, matchName, teamID string) (*Team, *ScoreSubmission, error) {
	m, err := getMatch(t, matchName)
	if err != nil {
		return nil, nil, err
	}
	team := t.FindTeamByID(teamID)
	if team == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	if m.Locked() {
		return nil, nil, fmt.Errorf("%w: %s", ErrMatchLocked, m.Name)
	}
	sub := team.FindSubmission(m.Name)
	if sub == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoSubmissionFound, m.Name)
	}
	return team, sub, nil
}

// AddScreenshot appends urls to an existing submission.
func AddScreenshot(t *Tournament, matchName, teamID string, urls []string, now time.Time) (*ScoreSubmission, error) {
	_, sub, err := unlockedSubmission(t, matchName, teamID)
	if err != nil {
		return nil, err
	}
	sub.ScreenshotLinks = append(sub.ScreenshotLinks, urls...)
	sub.UpdatedAt = now
	return sub, nil
}

// RemoveScore deletes the team's submission so it can submit again.
func RemoveScore(t *Tournament, matchName, teamID string) (*ScoreSubmission, error) {
	team, sub, err := unlockedSubmission(t, matchName, teamID)
	if err != nil {
		return nil, err
	}
	removed := *sub
	kept := make([]ScoreSubmission, 0, len(team.ScoreSubmissions)-1)
	for _, s := range team.ScoreSubmissions {
		if s.MatchName != matchName {
			kept = append(kept, s)
		}
	}
	team.ScoreSubmissions = kept
	return &removed, nil
}

// ScoreRow is a submission with its computed points.
type ScoreRow struct {
	TeamID string `json:"team_id"`
	ScoreSubmission
	Points int `json:"points"`
}

// MatchScores returns every team's submission for the named match, in roster order.
func MatchScores(t *Tournament, matchName string) ([]ScoreRow, error) {
	if _, err := getMatch(t, matchName); err != nil {
		return nil, err
	}
	rows := []ScoreRow{}
	for i := range t.Teams {
		sub := t.Teams[i].FindSubmission(matchName)
		if sub == nil {
			continue
		}
		rows = append(rows, ScoreRow{TeamID: t.Teams[i].ID, ScoreSubmission: *sub, Points: sub.Points()})
	}
	return rows, nil
}
