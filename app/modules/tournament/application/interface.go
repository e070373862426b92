package tournamentservice

import (
	"context"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
)

// Service defines the tournament use cases. Each mutating command is one
// locked read-modify-write of a single tournament; domain failures are
// returned as the typed errors of tournamentdomain and leave storage unchanged.
type Service interface {
	// Tournaments
	CreateTournament(ctx context.Context, actor tournamentdomain.Actor, alias, tournamentID string) (*TournamentSummary, error)
	RemoveTournament(ctx context.Context, actor tournamentdomain.Actor, alias string) ([]CaptainChange, error)
	GetTournament(ctx context.Context, viewer tournamentdomain.Actor, alias string) (*tournamentdomain.Tournament, error)
	ListTournaments(ctx context.Context) ([]TournamentSummary, error)
	RefreshTournament(ctx context.Context, actor tournamentdomain.Actor, alias string) (*TournamentSummary, error)
	RefreshStatus(ctx context.Context, actor tournamentdomain.Actor, alias string) (*tournamentdomain.RefreshDiff, error)
	RefreshAll(ctx context.Context) (*RefreshReport, error)

	// Tournament settings
	AddChannel(ctx context.Context, actor tournamentdomain.Actor, alias, channel string) ([]string, error)
	RemoveChannel(ctx context.Context, actor tournamentdomain.Actor, alias, channel string) ([]string, error)
	AddAdminRole(ctx context.Context, actor tournamentdomain.Actor, alias, role string) ([]string, error)
	RemoveAdminRole(ctx context.Context, actor tournamentdomain.Actor, alias, role string) ([]string, error)
	SetCaptainRole(ctx context.Context, actor tournamentdomain.Actor, alias, role string) error

	// Teams and captains
	ResetTeam(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*TeamChange, error)
	RemoveTeam(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*TeamChange, error)
	MissingTeams(ctx context.Context, actor tournamentdomain.Actor, alias string) ([]tournamentdomain.Team, error)
	LinkCaptain(ctx context.Context, actor tournamentdomain.Actor, alias, teamName string) (*CaptainChange, error)
	AssignCaptain(ctx context.Context, actor tournamentdomain.Actor, alias, teamID, userID string) (*CaptainAssignment, error)
	UnlinkCaptain(ctx context.Context, actor tournamentdomain.Actor, teamName string) (*CaptainChange, error)
	CaptainStatus(ctx context.Context, actor tournamentdomain.Actor) (*CaptainStatus, error)

	// Matches
	CreateMatch(ctx context.Context, actor tournamentdomain.Actor, alias string, params tournamentdomain.CreateMatchParams) (*tournamentdomain.Match, error)
	RemoveMatch(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) error
	JoinMatch(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.Match, error)
	LeaveMatch(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.Match, error)
	StartMatch(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*MatchStarted, error)
	EndMatch(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string, force bool) (*tournamentdomain.Match, error)
	SetMatchStatus(ctx context.Context, actor tournamentdomain.Actor, alias, matchName, status string) (*tournamentdomain.Match, error)
	ShowMatch(ctx context.Context, viewer tournamentdomain.Actor, alias, matchName string) (*tournamentdomain.Match, error)

	// Scores
	SubmitScore(ctx context.Context, actor tournamentdomain.Actor, params tournamentdomain.SubmitScoreParams) (*tournamentdomain.ScoreSubmission, error)
	AddScreenshot(ctx context.Context, actor tournamentdomain.Actor, matchName string, urls []string) (*tournamentdomain.ScoreSubmission, error)
	RemoveScore(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.ScoreSubmission, error)
	MatchScores(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*MatchScores, error)
}

var _ Service = (*TournamentService)(nil)
