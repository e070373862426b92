package tournamentservice

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/metrics"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

// ------------------------
// Fake Tournament Repo
// ------------------------

// FakeTournamentRepo stores encoded tournaments in memory, so every Load
// hands out a fresh copy the way the database does. Func fields override the
// default behavior.
type FakeTournamentRepo struct {
	mu    sync.Mutex
	trace []string
	blobs map[string][]byte

	LoadFunc   func(ctx context.Context, db bun.IDB, alias string) (*tournamentdomain.Tournament, error)
	GetFunc    func(ctx context.Context, db bun.IDB, alias string) (*tournamentdomain.Tournament, error)
	ListFunc   func(ctx context.Context, db bun.IDB) ([]*tournamentdomain.Tournament, error)
	CreateFunc func(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error
	SaveFunc   func(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error
	DeleteFunc func(ctx context.Context, db bun.IDB, alias string) error
}

func NewFakeTournamentRepo(seed ...*tournamentdomain.Tournament) *FakeTournamentRepo {
	f := &FakeTournamentRepo{
		trace: []string{},
		blobs: map[string][]byte{},
	}
	for _, t := range seed {
		data, err := tournamentdomain.EncodeTournament(t)
		if err != nil {
			panic(err)
		}
		f.blobs[t.Alias] = data
	}
	return f
}

func (f *FakeTournamentRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeTournamentRepo) read(alias string) (*tournamentdomain.Tournament, error) {
	f.mu.Lock()
	data, ok := f.blobs[alias]
	f.mu.Unlock()
	if !ok {
		return nil, tournamentdb.ErrNotFound
	}
	return tournamentdomain.DecodeTournament(data)
}

func (f *FakeTournamentRepo) write(t *tournamentdomain.Tournament, mustExist, mustNotExist bool) error {
	data, err := tournamentdomain.EncodeTournament(t)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, exists := f.blobs[t.Alias]
	if mustExist && !exists {
		return tournamentdb.ErrNotFound
	}
	if mustNotExist && exists {
		return tournamentdb.ErrAliasExists
	}
	f.blobs[t.Alias] = data
	return nil
}

// --- Repository Interface Implementation ---

func (f *FakeTournamentRepo) Load(ctx context.Context, db bun.IDB, alias string) (*tournamentdomain.Tournament, error) {
	f.record("Load")
	if f.LoadFunc != nil {
		return f.LoadFunc(ctx, db, alias)
	}
	return f.read(alias)
}

func (f *FakeTournamentRepo) Get(ctx context.Context, db bun.IDB, alias string) (*tournamentdomain.Tournament, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, alias)
	}
	return f.read(alias)
}

func (f *FakeTournamentRepo) List(ctx context.Context, db bun.IDB) ([]*tournamentdomain.Tournament, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	f.mu.Lock()
	aliases := make([]string, 0, len(f.blobs))
	for alias := range f.blobs {
		aliases = append(aliases, alias)
	}
	f.mu.Unlock()
	sort.Strings(aliases)

	out := make([]*tournamentdomain.Tournament, 0, len(aliases))
	for _, alias := range aliases {
		t, err := f.read(alias)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *FakeTournamentRepo) Create(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, t)
	}
	return f.write(t, false, true)
}

func (f *FakeTournamentRepo) Save(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error {
	f.record("Save")
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, db, t)
	}
	return f.write(t, true, false)
}

func (f *FakeTournamentRepo) Delete(ctx context.Context, db bun.IDB, alias string) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, alias)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blobs[alias]; !ok {
		return tournamentdb.ErrNotFound
	}
	delete(f.blobs, alias)
	return nil
}

// --- Accessors for assertions ---

func (f *FakeTournamentRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Stored decodes the tournament currently held under alias.
func (f *FakeTournamentRepo) Stored(alias string) *tournamentdomain.Tournament {
	t, err := f.read(alias)
	if err != nil {
		return nil
	}
	return t
}

var _ tournamentdb.Repository = (*FakeTournamentRepo)(nil)

// ------------------------
// Fake Provider
// ------------------------

type FakeProvider struct {
	trace []string

	GetTournamentFunc   func(ctx context.Context, tournamentID string) (*tournamentdomain.ToornamentInfo, error)
	GetParticipantsFunc func(ctx context.Context, tournamentID string) ([]tournamentdomain.Participant, error)
	GetParticipantFunc  func(ctx context.Context, tournamentID, participantID string) (*tournamentdomain.Participant, error)
	GetMatchFunc        func(ctx context.Context, tournamentID, matchID string) (*tournamentdomain.MatchMetadata, error)
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{trace: []string{}}
}

func (f *FakeProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeProvider) GetTournament(ctx context.Context, tournamentID string) (*tournamentdomain.ToornamentInfo, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeProvider) GetParticipants(ctx context.Context, tournamentID string) ([]tournamentdomain.Participant, error) {
	f.record("GetParticipants")
	if f.GetParticipantsFunc != nil {
		return f.GetParticipantsFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeProvider) GetParticipant(ctx context.Context, tournamentID, participantID string) (*tournamentdomain.Participant, error) {
	f.record("GetParticipant")
	if f.GetParticipantFunc != nil {
		return f.GetParticipantFunc(ctx, tournamentID, participantID)
	}
	return nil, nil
}

func (f *FakeProvider) GetMatch(ctx context.Context, tournamentID, matchID string) (*tournamentdomain.MatchMetadata, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, tournamentID, matchID)
	}
	return nil, nil
}

func (f *FakeProvider) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ tournamentdomain.Provider = (*FakeProvider)(nil)

// ------------------------
// Fixtures
// ------------------------

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

var (
	root  = tournamentdomain.Actor{ID: "root"}
	staff = tournamentdomain.Actor{ID: "carol", Roles: []string{"staff"}}
	alice = tournamentdomain.Actor{ID: "alice"}
	bob   = tournamentdomain.Actor{ID: "bob"}
)

func newTestTournament(alias, id string) *tournamentdomain.Tournament {
	return &tournamentdomain.Tournament{
		Alias:              alias,
		ID:                 id,
		URL:                tournamentdomain.TournamentURL(id),
		Info:               tournamentdomain.ToornamentInfo{ID: id, Name: alias + " cup", Discipline: alias, Platforms: []string{}},
		AdministratorRoles: []string{"staff"},
		Channels:           []string{},
		Teams: []tournamentdomain.Team{
			{ID: "7", Name: "Alpha", Lineup: []tournamentdomain.Player{}, ScoreSubmissions: []tournamentdomain.ScoreSubmission{}},
			{ID: "8", Name: "Bravo", Lineup: []tournamentdomain.Player{}, ScoreSubmissions: []tournamentdomain.ScoreSubmission{}},
		},
		Matches: []tournamentdomain.Match{
			{Name: "m1", CreatedBy: "root", CreatedAt: fixedNow, Status: tournamentdomain.MatchStatusPending, TeamsRegistered: []string{}, TeamsJoined: []string{}},
		},
		CreatedAt: fixedNow,
	}
}

func newTestService(repo *FakeTournamentRepo, provider *FakeProvider) *TournamentService {
	svc := NewTournamentService(
		repo,
		provider,
		tournamentdomain.NewAuthorizer([]string{"root"}),
		slog.Default(),
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}
