package tournamenthandlers

import (
	"context"

	tournamentservice "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
)

// ------------------------
// Fake Tournament Service
// ------------------------

type FakeTournamentService struct {
	trace []string

	CreateTournamentFunc  func(ctx context.Context, actor tournamentdomain.Actor, alias, tournamentID string) (*tournamentservice.TournamentSummary, error)
	RemoveTournamentFunc  func(ctx context.Context, actor tournamentdomain.Actor, alias string) ([]tournamentservice.CaptainChange, error)
	GetTournamentFunc     func(ctx context.Context, viewer tournamentdomain.Actor, alias string) (*tournamentdomain.Tournament, error)
	ListTournamentsFunc   func(ctx context.Context) ([]tournamentservice.TournamentSummary, error)
	RefreshTournamentFunc func(ctx context.Context, actor tournamentdomain.Actor, alias string) (*tournamentservice.TournamentSummary, error)
	RefreshStatusFunc     func(ctx context.Context, actor tournamentdomain.Actor, alias string) (*tournamentdomain.RefreshDiff, error)
	RefreshAllFunc        func(ctx context.Context) (*tournamentservice.RefreshReport, error)
	AddChannelFunc        func(ctx context.Context, actor tournamentdomain.Actor, alias, channel string) ([]string, error)
	RemoveChannelFunc     func(ctx context.Context, actor tournamentdomain.Actor, alias, channel string) ([]string, error)
	AddAdminRoleFunc      func(ctx context.Context, actor tournamentdomain.Actor, alias, role string) ([]string, error)
	RemoveAdminRoleFunc   func(ctx context.Context, actor tournamentdomain.Actor, alias, role string) ([]string, error)
	SetCaptainRoleFunc    func(ctx context.Context, actor tournamentdomain.Actor, alias, role string) error
	ResetTeamFunc         func(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*tournamentservice.TeamChange, error)
	RemoveTeamFunc        func(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*tournamentservice.TeamChange, error)
	MissingTeamsFunc      func(ctx context.Context, actor tournamentdomain.Actor, alias string) ([]tournamentdomain.Team, error)
	LinkCaptainFunc       func(ctx context.Context, actor tournamentdomain.Actor, alias, teamName string) (*tournamentservice.CaptainChange, error)
	AssignCaptainFunc     func(ctx context.Context, actor tournamentdomain.Actor, alias, teamID, userID string) (*tournamentservice.CaptainAssignment, error)
	UnlinkCaptainFunc     func(ctx context.Context, actor tournamentdomain.Actor, teamName string) (*tournamentservice.CaptainChange, error)
	CaptainStatusFunc     func(ctx context.Context, actor tournamentdomain.Actor) (*tournamentservice.CaptainStatus, error)
	CreateMatchFunc       func(ctx context.Context, actor tournamentdomain.Actor, alias string, params tournamentdomain.CreateMatchParams) (*tournamentdomain.Match, error)
	RemoveMatchFunc       func(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) error
	JoinMatchFunc         func(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.Match, error)
	LeaveMatchFunc        func(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.Match, error)
	StartMatchFunc        func(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*tournamentservice.MatchStarted, error)
	EndMatchFunc          func(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string, force bool) (*tournamentdomain.Match, error)
	SetMatchStatusFunc    func(ctx context.Context, actor tournamentdomain.Actor, alias, matchName, status string) (*tournamentdomain.Match, error)
	ShowMatchFunc         func(ctx context.Context, viewer tournamentdomain.Actor, alias, matchName string) (*tournamentdomain.Match, error)
	SubmitScoreFunc       func(ctx context.Context, actor tournamentdomain.Actor, params tournamentdomain.SubmitScoreParams) (*tournamentdomain.ScoreSubmission, error)
	AddScreenshotFunc     func(ctx context.Context, actor tournamentdomain.Actor, matchName string, urls []string) (*tournamentdomain.ScoreSubmission, error)
	RemoveScoreFunc       func(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.ScoreSubmission, error)
	MatchScoresFunc       func(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*tournamentservice.MatchScores, error)
}

func NewFakeTournamentService() *FakeTournamentService {
	return &FakeTournamentService{
		trace: []string{},
	}
}

func (f *FakeTournamentService) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Service Interface Implementation ---

func (f *FakeTournamentService) CreateTournament(ctx context.Context, actor tournamentdomain.Actor, alias, tournamentID string) (*tournamentservice.TournamentSummary, error) {
	f.record("CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, actor, alias, tournamentID)
	}
	return nil, nil
}

func (f *FakeTournamentService) RemoveTournament(ctx context.Context, actor tournamentdomain.Actor, alias string) ([]tournamentservice.CaptainChange, error) {
	f.record("RemoveTournament")
	if f.RemoveTournamentFunc != nil {
		return f.RemoveTournamentFunc(ctx, actor, alias)
	}
	return nil, nil
}

func (f *FakeTournamentService) GetTournament(ctx context.Context, viewer tournamentdomain.Actor, alias string) (*tournamentdomain.Tournament, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, viewer, alias)
	}
	return nil, nil
}

func (f *FakeTournamentService) ListTournaments(ctx context.Context) ([]tournamentservice.TournamentSummary, error) {
	f.record("ListTournaments")
	if f.ListTournamentsFunc != nil {
		return f.ListTournamentsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeTournamentService) RefreshTournament(ctx context.Context, actor tournamentdomain.Actor, alias string) (*tournamentservice.TournamentSummary, error) {
	f.record("RefreshTournament")
	if f.RefreshTournamentFunc != nil {
		return f.RefreshTournamentFunc(ctx, actor, alias)
	}
	return nil, nil
}

func (f *FakeTournamentService) RefreshStatus(ctx context.Context, actor tournamentdomain.Actor, alias string) (*tournamentdomain.RefreshDiff, error) {
	f.record("RefreshStatus")
	if f.RefreshStatusFunc != nil {
		return f.RefreshStatusFunc(ctx, actor, alias)
	}
	return nil, nil
}

func (f *FakeTournamentService) RefreshAll(ctx context.Context) (*tournamentservice.RefreshReport, error) {
	f.record("RefreshAll")
	if f.RefreshAllFunc != nil {
		return f.RefreshAllFunc(ctx)
	}
	return nil, nil
}

func (f *FakeTournamentService) AddChannel(ctx context.Context, actor tournamentdomain.Actor, alias, channel string) ([]string, error) {
	f.record("AddChannel")
	if f.AddChannelFunc != nil {
		return f.AddChannelFunc(ctx, actor, alias, channel)
	}
	return nil, nil
}

func (f *FakeTournamentService) RemoveChannel(ctx context.Context, actor tournamentdomain.Actor, alias, channel string) ([]string, error) {
	f.record("RemoveChannel")
	if f.RemoveChannelFunc != nil {
		return f.RemoveChannelFunc(ctx, actor, alias, channel)
	}
	return nil, nil
}

func (f *FakeTournamentService) AddAdminRole(ctx context.Context, actor tournamentdomain.Actor, alias, role string) ([]string, error) {
	f.record("AddAdminRole")
	if f.AddAdminRoleFunc != nil {
		return f.AddAdminRoleFunc(ctx, actor, alias, role)
	}
	return nil, nil
}

func (f *FakeTournamentService) RemoveAdminRole(ctx context.Context, actor tournamentdomain.Actor, alias, role string) ([]string, error) {
	f.record("RemoveAdminRole")
	if f.RemoveAdminRoleFunc != nil {
		return f.RemoveAdminRoleFunc(ctx, actor, alias, role)
	}
	return nil, nil
}

func (f *FakeTournamentService) SetCaptainRole(ctx context.Context, actor tournamentdomain.Actor, alias, role string) error {
	f.record("SetCaptainRole")
	if f.SetCaptainRoleFunc != nil {
		return f.SetCaptainRoleFunc(ctx, actor, alias, role)
	}
	return nil
}

func (f *FakeTournamentService) ResetTeam(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*tournamentservice.TeamChange, error) {
	f.record("ResetTeam")
	if f.ResetTeamFunc != nil {
		return f.ResetTeamFunc(ctx, actor, alias, teamID)
	}
	return nil, nil
}

func (f *FakeTournamentService) RemoveTeam(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*tournamentservice.TeamChange, error) {
	f.record("RemoveTeam")
	if f.RemoveTeamFunc != nil {
		return f.RemoveTeamFunc(ctx, actor, alias, teamID)
	}
	return nil, nil
}

func (f *FakeTournamentService) MissingTeams(ctx context.Context, actor tournamentdomain.Actor, alias string) ([]tournamentdomain.Team, error) {
	f.record("MissingTeams")
	if f.MissingTeamsFunc != nil {
		return f.MissingTeamsFunc(ctx, actor, alias)
	}
	return nil, nil
}

func (f *FakeTournamentService) LinkCaptain(ctx context.Context, actor tournamentdomain.Actor, alias, teamName string) (*tournamentservice.CaptainChange, error) {
	f.record("LinkCaptain")
	if f.LinkCaptainFunc != nil {
		return f.LinkCaptainFunc(ctx, actor, alias, teamName)
	}
	return nil, nil
}

func (f *FakeTournamentService) AssignCaptain(ctx context.Context, actor tournamentdomain.Actor, alias, teamID, userID string) (*tournamentservice.CaptainAssignment, error) {
	f.record("AssignCaptain")
	if f.AssignCaptainFunc != nil {
		return f.AssignCaptainFunc(ctx, actor, alias, teamID, userID)
	}
	return nil, nil
}

func (f *FakeTournamentService) UnlinkCaptain(ctx context.Context, actor tournamentdomain.Actor, teamName string) (*tournamentservice.CaptainChange, error) {
	f.record("UnlinkCaptain")
	if f.UnlinkCaptainFunc != nil {
		return f.UnlinkCaptainFunc(ctx, actor, teamName)
	}
	return nil, nil
}

func (f *FakeTournamentService) CaptainStatus(ctx context.Context, actor tournamentdomain.Actor) (*tournamentservice.CaptainStatus, error) {
	f.record("CaptainStatus")
	if f.CaptainStatusFunc != nil {
		return f.CaptainStatusFunc(ctx, actor)
	}
	return nil, nil
}

func (f *FakeTournamentService) CreateMatch(ctx context.Context, actor tournamentdomain.Actor, alias string, params tournamentdomain.CreateMatchParams) (*tournamentdomain.Match, error) {
	f.record("CreateMatch")
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, actor, alias, params)
	}
	return nil, nil
}

func (f *FakeTournamentService) RemoveMatch(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) error {
	f.record("RemoveMatch")
	if f.RemoveMatchFunc != nil {
		return f.RemoveMatchFunc(ctx, actor, alias, matchName)
	}
	return nil
}

func (f *FakeTournamentService) JoinMatch(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.Match, error) {
	f.record("JoinMatch")
	if f.JoinMatchFunc != nil {
		return f.JoinMatchFunc(ctx, actor, matchName)
	}
	return nil, nil
}

func (f *FakeTournamentService) LeaveMatch(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.Match, error) {
	f.record("LeaveMatch")
	if f.LeaveMatchFunc != nil {
		return f.LeaveMatchFunc(ctx, actor, matchName)
	}
	return nil, nil
}

func (f *FakeTournamentService) StartMatch(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*tournamentservice.MatchStarted, error) {
	f.record("StartMatch")
	if f.StartMatchFunc != nil {
		return f.StartMatchFunc(ctx, actor, alias, matchName)
	}
	return nil, nil
}

func (f *FakeTournamentService) EndMatch(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string, force bool) (*tournamentdomain.Match, error) {
	f.record("EndMatch")
	if f.EndMatchFunc != nil {
		return f.EndMatchFunc(ctx, actor, alias, matchName, force)
	}
	return nil, nil
}

func (f *FakeTournamentService) SetMatchStatus(ctx context.Context, actor tournamentdomain.Actor, alias, matchName, status string) (*tournamentdomain.Match, error) {
	f.record("SetMatchStatus")
	if f.SetMatchStatusFunc != nil {
		return f.SetMatchStatusFunc(ctx, actor, alias, matchName, status)
	}
	return nil, nil
}

func (f *FakeTournamentService) ShowMatch(ctx context.Context, viewer tournamentdomain.Actor, alias, matchName string) (*tournamentdomain.Match, error) {
	f.record("ShowMatch")
	if f.ShowMatchFunc != nil {
		return f.ShowMatchFunc(ctx, viewer, alias, matchName)
	}
	return nil, nil
}

func (f *FakeTournamentService) SubmitScore(ctx context.Context, actor tournamentdomain.Actor, params tournamentdomain.SubmitScoreParams) (*tournamentdomain.ScoreSubmission, error) {
	f.record("SubmitScore")
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, actor, params)
	}
	return nil, nil
}

func (f *FakeTournamentService) AddScreenshot(ctx context.Context, actor tournamentdomain.Actor, matchName string, urls []string) (*tournamentdomain.ScoreSubmission, error) {
	f.record("AddScreenshot")
	if f.AddScreenshotFunc != nil {
		return f.AddScreenshotFunc(ctx, actor, matchName, urls)
	}
	return nil, nil
}

func (f *FakeTournamentService) RemoveScore(ctx context.Context, actor tournamentdomain.Actor, matchName string) (*tournamentdomain.ScoreSubmission, error) {
	f.record("RemoveScore")
	if f.RemoveScoreFunc != nil {
		return f.RemoveScoreFunc(ctx, actor, matchName)
	}
	return nil, nil
}

func (f *FakeTournamentService) MatchScores(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*tournamentservice.MatchScores, error) {
	f.record("MatchScores")
	if f.MatchScoresFunc != nil {
		return f.MatchScoresFunc(ctx, actor, alias, matchName)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeTournamentService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ tournamentservice.Service = (*FakeTournamentService)(nil)
