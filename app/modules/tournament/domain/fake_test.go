package tournamentdomain

import (
	"context"
	"time"
)

// ------------------------
// Fake Provider
// ------------------------

type FakeProvider struct {
	trace []string

	GetTournamentFunc   func(ctx context.Context, tournamentID string) (*ToornamentInfo, error)
	GetParticipantsFunc func(ctx context.Context, tournamentID string) ([]Participant, error)
	GetParticipantFunc  func(ctx context.Context, tournamentID, participantID string) (*Participant, error)
	GetMatchFunc        func(ctx context.Context, tournamentID, matchID string) (*MatchMetadata, error)
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{trace: []string{}}
}

func (f *FakeProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeProvider) GetTournament(ctx context.Context, tournamentID string) (*ToornamentInfo, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeProvider) GetParticipants(ctx context.Context, tournamentID string) ([]Participant, error) {
	f.record("GetParticipants")
	if f.GetParticipantsFunc != nil {
		return f.GetParticipantsFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeProvider) GetParticipant(ctx context.Context, tournamentID, participantID string) (*Participant, error) {
	f.record("GetParticipant")
	if f.GetParticipantFunc != nil {
		return f.GetParticipantFunc(ctx, tournamentID, participantID)
	}
	return nil, nil
}

func (f *FakeProvider) GetMatch(ctx context.Context, tournamentID, matchID string) (*MatchMetadata, error) {
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

var _ Provider = (*FakeProvider)(nil)

// ------------------------
// Fixtures
// ------------------------

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newTestTournament() *Tournament {
	return &Tournament{
		Alias:              "fortnite",
		ID:                 "42",
		URL:                TournamentURL("42"),
		Info:               ToornamentInfo{ID: "42", Name: "Fortnite Cup", Discipline: "fortnite", Platforms: []string{}},
		AdministratorRoles: []string{"staff"},
		Channels:           []string{},
		Teams: []Team{
			{ID: "7", Name: "Alpha", Lineup: []Player{{Name: "a1"}}, ScoreSubmissions: []ScoreSubmission{}},
			{ID: "8", Name: "Bravo", Lineup: []Player{{Name: "b1"}}, ScoreSubmissions: []ScoreSubmission{}},
		},
		Matches: []Match{
			{Name: "m1", CreatedBy: "admin", CreatedAt: fixedNow, Status: MatchStatusPending, TeamsRegistered: []string{}, TeamsJoined: []string{}},
		},
		CreatedAt: fixedNow,
	}
}

func boolPtr(b bool) *bool { return &b }
