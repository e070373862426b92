package tournamentapi

import (
	"context"
	"sync"

	tournamentservice "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentqueue "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/queue"
)

// FakeReader is a programmable TournamentReader.
type FakeReader struct {
	mu    sync.Mutex
	trace []string

	ListTournamentsFunc func(ctx context.Context) ([]tournamentservice.TournamentSummary, error)
	GetTournamentFunc   func(ctx context.Context, viewer tournamentdomain.Actor, alias string) (*tournamentdomain.Tournament, error)
	MatchScoresFunc     func(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*tournamentservice.MatchScores, error)
}

var _ TournamentReader = (*FakeReader)(nil)

func (f *FakeReader) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeReader) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeReader) ListTournaments(ctx context.Context) ([]tournamentservice.TournamentSummary, error) {
	f.record("ListTournaments")
	if f.ListTournamentsFunc != nil {
		return f.ListTournamentsFunc(ctx)
	}
	return []tournamentservice.TournamentSummary{}, nil
}

func (f *FakeReader) GetTournament(ctx context.Context, viewer tournamentdomain.Actor, alias string) (*tournamentdomain.Tournament, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, viewer, alias)
	}
	return nil, tournamentdomain.ErrTournamentNotFound
}

func (f *FakeReader) MatchScores(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*tournamentservice.MatchScores, error) {
	f.record("MatchScores")
	if f.MatchScoresFunc != nil {
		return f.MatchScoresFunc(ctx, actor, alias, matchName)
	}
	return &tournamentservice.MatchScores{Alias: alias, MatchName: matchName}, nil
}

// FakeQueue is a programmable RefreshQueue.
type FakeQueue struct {
	mu    sync.Mutex
	trace []string

	TriggerRefreshFunc func(ctx context.Context) (int64, bool, error)
	RecentRunsFunc     func(ctx context.Context, limit int) ([]tournamentqueue.JobInfo, error)
}

var _ RefreshQueue = (*FakeQueue)(nil)

func (f *FakeQueue) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeQueue) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeQueue) TriggerRefresh(ctx context.Context) (int64, bool, error) {
	f.record("TriggerRefresh")
	if f.TriggerRefreshFunc != nil {
		return f.TriggerRefreshFunc(ctx)
	}
	return 1, true, nil
}

func (f *FakeQueue) RecentRuns(ctx context.Context, limit int) ([]tournamentqueue.JobInfo, error) {
	f.record("RecentRuns")
	if f.RecentRunsFunc != nil {
		return f.RecentRunsFunc(ctx, limit)
	}
	return []tournamentqueue.JobInfo{}, nil
}
