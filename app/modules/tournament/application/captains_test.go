package tournamentservice

import (
	"context"
	"errors"
	"testing"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkCaptain_AcrossTournaments(t *testing.T) {
	fortnite := newTestTournament("fortnite", "42")
	valorant := newTestTournament("valorant", "43")
	valorant.CaptainRole = "captains"
	repo := NewFakeTournamentRepo(fortnite, valorant)
	svc := newTestService(repo, NewFakeProvider())
	ctx := context.Background()

	change, err := svc.LinkCaptain(ctx, alice, "fortnite", "Alpha")
	require.NoError(t, err)
	assert.Equal(t, CaptainChange{Alias: "fortnite", TeamID: "7", TeamName: "Alpha", UserID: "alice"}, *change)

	_, err = svc.LinkCaptain(ctx, alice, "valorant", "Bravo")
	require.ErrorIs(t, err, tournamentdomain.ErrAlreadyCaptainElsewhere)
	assert.Empty(t, repo.Stored("valorant").FindTeamByName("Bravo").Captain)

	_, err = svc.AssignCaptain(ctx, root, "valorant", "8", "alice")
	require.ErrorIs(t, err, tournamentdomain.ErrAlreadyCaptainElsewhere)

	_, err = svc.UnlinkCaptain(ctx, alice, "Alpha")
	require.NoError(t, err)

	change, err = svc.LinkCaptain(ctx, alice, "valorant", "Bravo")
	require.NoError(t, err)
	assert.Equal(t, "captains", change.CaptainRole)
	assert.Equal(t, "alice", repo.Stored("valorant").FindTeamByName("Bravo").Captain)
}

func TestLinkCaptain_Errors(t *testing.T) {
	tests := []struct {
		name     string
		actor    tournamentdomain.Actor
		alias    string
		teamName string
		setup    func(tr *tournamentdomain.Tournament)
		wantErr  error
	}{
		{
			name:     "unknown tournament",
			actor:    alice,
			alias:    "missing",
			teamName: "Alpha",
			wantErr:  tournamentdomain.ErrTournamentNotFound,
		},
		{
			name:     "unknown team",
			actor:    alice,
			alias:    "fortnite",
			teamName: gofakeit.Company(),
			wantErr:  tournamentdomain.ErrTeamNotFound,
		},
		{
			name:     "team claimed",
			actor:    alice,
			alias:    "fortnite",
			teamName: "Alpha",
			setup:    func(tr *tournamentdomain.Tournament) { tr.Teams[0].Captain = "bob" },
			wantErr:  tournamentdomain.ErrTeamCaptainExists,
		},
		{
			name:     "actor without id",
			actor:    tournamentdomain.Actor{},
			alias:    "fortnite",
			teamName: "Alpha",
			wantErr:  tournamentdomain.ErrInvalidCaptain,
		},
		{
			name:     "wrong channel",
			actor:    tournamentdomain.Actor{ID: "alice", Channel: "#random"},
			alias:    "fortnite",
			teamName: "Alpha",
			setup:    func(tr *tournamentdomain.Tournament) { tr.Channels = []string{"#cup"} },
			wantErr:  tournamentdomain.ErrChannelNotAllowed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTournament("fortnite", "42")
			if tt.setup != nil {
				tt.setup(tr)
			}
			repo := NewFakeTournamentRepo(tr)
			svc := newTestService(repo, NewFakeProvider())

			_, err := svc.LinkCaptain(context.Background(), tt.actor, tt.alias, tt.teamName)
			require.ErrorIs(t, err, tt.wantErr)
			assert.NotContains(t, repo.Trace(), "Save")
		})
	}
}

func TestAssignCaptain_ReplacesCaptain(t *testing.T) {
	tr := newTestTournament("fortnite", "42")
	tr.Teams[0].Captain = "bob"
	tr.CaptainRole = "captains"
	repo := NewFakeTournamentRepo(tr)
	svc := newTestService(repo, NewFakeProvider())

	_, err := svc.AssignCaptain(context.Background(), alice, "fortnite", "7", "alice")
	require.ErrorIs(t, err, tournamentdomain.ErrPermissionDenied)

	got, err := svc.AssignCaptain(context.Background(), staff, "fortnite", "7", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Linked.UserID)
	require.NotNil(t, got.Replaced)
	assert.Equal(t, "bob", got.Replaced.UserID)
	assert.Equal(t, "captains", got.Replaced.CaptainRole)
	assert.Equal(t, "alice", repo.Stored("fortnite").Teams[0].Captain)
}

func TestAssignCaptain_RejectsEmptyUser(t *testing.T) {
	tr := newTestTournament("fortnite", "42")
	tr.Teams[0].Captain = "alice"
	repo := NewFakeTournamentRepo(tr)
	svc := newTestService(repo, NewFakeProvider())

	got, err := svc.AssignCaptain(context.Background(), staff, "fortnite", "7", "")
	require.ErrorIs(t, err, tournamentdomain.ErrInvalidCaptain)
	assert.Nil(t, got)
	assert.NotContains(t, repo.Trace(), "Save")
	assert.Equal(t, "alice", repo.Stored("fortnite").Teams[0].Captain)
}

func TestUnlinkCaptain(t *testing.T) {
	tr := newTestTournament("fortnite", "42")
	tr.Teams[0].Captain = "alice"
	tr.Channels = []string{"<#100>"}
	repo := NewFakeTournamentRepo(tr)
	svc := newTestService(repo, NewFakeProvider())
	ctx := context.Background()

	_, err := svc.UnlinkCaptain(ctx, bob, "Alpha")
	require.ErrorIs(t, err, tournamentdomain.ErrNotATeamCaptain)

	_, err = svc.UnlinkCaptain(ctx, alice, "Bravo")
	require.ErrorIs(t, err, tournamentdomain.ErrTeamNameMismatch)

	_, err = svc.UnlinkCaptain(ctx, tournamentdomain.Actor{ID: "alice", Channel: "#200"}, "Alpha")
	require.ErrorIs(t, err, tournamentdomain.ErrChannelNotAllowed)

	change, err := svc.UnlinkCaptain(ctx, tournamentdomain.Actor{ID: "alice", Channel: "#100"}, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, "fortnite", change.Alias)
	assert.Empty(t, repo.Stored("fortnite").Teams[0].Captain)
}

func TestResetTeam(t *testing.T) {
	tr := newTestTournament("fortnite", "42")
	tr.Teams[0].Captain = "alice"
	repo := NewFakeTournamentRepo(tr)
	provider := NewFakeProvider()
	provider.GetParticipantFunc = func(ctx context.Context, tid, pid string) (*tournamentdomain.Participant, error) {
		return &tournamentdomain.Participant{ID: pid, Name: "Alpha", Lineup: []tournamentdomain.Player{{Name: "new"}}}, nil
	}
	svc := newTestService(repo, provider)

	got, err := svc.ResetTeam(context.Background(), staff, "fortnite", "7")
	require.NoError(t, err)
	require.NotNil(t, got.Unlinked)
	assert.Equal(t, "alice", got.Unlinked.UserID)

	stored := repo.Stored("fortnite").Teams[0]
	assert.Empty(t, stored.Captain)
	assert.Equal(t, []tournamentdomain.Player{{Name: "new"}}, stored.Lineup)

	got, err = svc.ResetTeam(context.Background(), staff, "fortnite", "8")
	require.NoError(t, err)
	assert.Nil(t, got.Unlinked, "team had no captain")

	provider.GetParticipantFunc = func(ctx context.Context, tid, pid string) (*tournamentdomain.Participant, error) {
		return nil, errors.New("timeout")
	}
	_, err = svc.ResetTeam(context.Background(), staff, "fortnite", "7")
	require.ErrorIs(t, err, tournamentdomain.ErrParticipantFetchFailed)
}

func TestRemoveTeam(t *testing.T) {
	tr := newTestTournament("fortnite", "42")
	tr.Teams[1].Captain = "bob"
	repo := NewFakeTournamentRepo(tr)
	svc := newTestService(repo, NewFakeProvider())

	got, err := svc.RemoveTeam(context.Background(), root, "fortnite", "8")
	require.NoError(t, err)
	assert.Equal(t, "Bravo", got.Team.Name)
	require.NotNil(t, got.Unlinked)
	assert.Equal(t, "bob", got.Unlinked.UserID)
	assert.Len(t, repo.Stored("fortnite").Teams, 1)

	_, err = svc.RemoveTeam(context.Background(), root, "fortnite", "8")
	require.ErrorIs(t, err, tournamentdomain.ErrTeamNotFound)
}

func TestMissingTeams(t *testing.T) {
	tr := newTestTournament("fortnite", "42")
	tr.Teams = append(tr.Teams, tournamentdomain.Team{ID: "9", Name: "Aardvark"})
	tr.Teams[1].Captain = "bob"
	svc := newTestService(NewFakeTournamentRepo(tr), NewFakeProvider())

	missing, err := svc.MissingTeams(context.Background(), staff, "fortnite")
	require.NoError(t, err)
	require.Len(t, missing, 2)
	assert.Equal(t, "Aardvark", missing[0].Name)
	assert.Equal(t, "Alpha", missing[1].Name)

	_, err = svc.MissingTeams(context.Background(), bob, "fortnite")
	assert.ErrorIs(t, err, tournamentdomain.ErrPermissionDenied)
}

func TestCaptainStatus(t *testing.T) {
	tr := newTestTournament("fortnite", "42")
	tr.Teams[0].Captain = "alice"
	tr.Matches[0].Password = "hunter2"
	tr.Matches[0].TeamsJoined = []string{"7"}
	tr.Matches = append(tr.Matches, tournamentdomain.Match{Name: "m2", CreatedBy: "root", Status: tournamentdomain.MatchStatusPending})
	svc := newTestService(NewFakeTournamentRepo(tr, newTestTournament("valorant", "43")), NewFakeProvider())

	status, err := svc.CaptainStatus(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, "fortnite", status.Alias)
	assert.Equal(t, "Alpha", status.Team.Name)
	require.Len(t, status.Matches, 1)
	assert.Equal(t, "hunter2", status.Matches[0].Password)

	_, err = svc.CaptainStatus(context.Background(), bob)
	assert.ErrorIs(t, err, tournamentdomain.ErrNotATeamCaptain)
}
