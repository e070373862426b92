package tournamenthandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	tournamentservice "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	admin   = tournamentdomain.Actor{ID: "carol", Roles: []string{"staff"}}
	captain = tournamentdomain.Actor{ID: "alice", Channel: "#cup"}
)

func newTestHandlers(svc *FakeTournamentService) Handlers {
	return NewTournamentHandlers(svc, slog.Default(), noop.NewTracerProvider().Tracer("test"))
}

func topics(results []handlerwrapper.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Topic)
	}
	return out
}

func TestHandleCreateTournament(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*FakeTournamentService)
		wantTopics []string
		wantCode   string
		wantErr    bool
	}{
		{
			name: "created",
			setup: func(f *FakeTournamentService) {
				f.CreateTournamentFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, id string) (*tournamentservice.TournamentSummary, error) {
					return &tournamentservice.TournamentSummary{Alias: alias, ID: id, Name: "Cup"}, nil
				}
			},
			wantTopics: []string{tournamentevents.CommandSucceededV1},
		},
		{
			name: "alias taken is answered",
			setup: func(f *FakeTournamentService) {
				f.CreateTournamentFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, id string) (*tournamentservice.TournamentSummary, error) {
					return nil, fmt.Errorf("CreateTournament: %w", tournamentdomain.ErrTournamentAliasExists)
				}
			},
			wantTopics: []string{tournamentevents.CommandFailedV1},
			wantCode:   tournamentdomain.ErrorCode(tournamentdomain.ErrTournamentAliasExists),
		},
		{
			name: "infrastructure failure is retried",
			setup: func(f *FakeTournamentService) {
				f.CreateTournamentFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, id string) (*tournamentservice.TournamentSummary, error) {
					return nil, errors.New("connection refused")
				}
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeTournamentService()
			tt.setup(svc)
			h := newTestHandlers(svc)

			results, err := h.HandleCreateTournament(context.Background(), &tournamentevents.TournamentCreateRequestedPayloadV1{
				Actor: admin, Alias: "fortnite", TournamentID: "42",
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, results)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTopics, topics(results))
			if tt.wantCode != "" {
				failed, ok := results[0].Payload.(*tournamentevents.CommandFailedPayloadV1)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, failed.Code)
				assert.Equal(t, "fortnite", failed.Alias)
				assert.Equal(t, tournamentevents.TournamentCreateRequestedV1, failed.Command)
			}
			assert.Equal(t, []string{"CreateTournament"}, svc.Trace())
		})
	}
}

func TestReplyTopicFromContext(t *testing.T) {
	svc := NewFakeTournamentService()
	h := newTestHandlers(svc)
	ctx := context.WithValue(context.Background(), handlerwrapper.CtxKeyReplyTo, "_INBOX.7")

	results, err := h.HandleListTournaments(ctx, &tournamentevents.ActorRequestPayloadV1{Actor: captain})
	require.NoError(t, err)
	assert.Equal(t, []string{"_INBOX.7"}, topics(results))
}

func TestHandleRemoveTournament_ReleasesCaptains(t *testing.T) {
	svc := NewFakeTournamentService()
	svc.RemoveTournamentFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias string) ([]tournamentservice.CaptainChange, error) {
		return []tournamentservice.CaptainChange{
			{Alias: alias, TeamID: "7", TeamName: "Alpha", UserID: "alice"},
			{Alias: alias, TeamID: "8", TeamName: "Bravo", UserID: "bob"},
		}, nil
	}
	h := newTestHandlers(svc)

	results, err := h.HandleRemoveTournament(context.Background(), &tournamentevents.TournamentRequestPayloadV1{Actor: admin, Alias: "fortnite"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		tournamentevents.CommandSucceededV1,
		tournamentevents.CaptainUnlinkedV1,
		tournamentevents.CaptainUnlinkedV1,
	}, topics(results))
	unlinked := results[2].Payload.(*tournamentevents.CaptainChangedPayloadV1)
	assert.Equal(t, "bob", unlinked.UserID)
}

func TestHandleCaptainChanges(t *testing.T) {
	linked := &tournamentservice.CaptainChange{Alias: "fortnite", TeamID: "7", TeamName: "Alpha", UserID: "alice", CaptainRole: "captains"}
	replaced := &tournamentservice.CaptainChange{Alias: "fortnite", TeamID: "7", TeamName: "Alpha", UserID: "dave"}

	tests := []struct {
		name       string
		run        func(Handlers, *FakeTournamentService) ([]handlerwrapper.Result, error)
		wantTopics []string
	}{
		{
			name: "link announces the new captain",
			run: func(h Handlers, f *FakeTournamentService) ([]handlerwrapper.Result, error) {
				f.LinkCaptainFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, teamName string) (*tournamentservice.CaptainChange, error) {
					return linked, nil
				}
				return h.HandleLinkCaptain(context.Background(), &tournamentevents.CaptainLinkRequestedPayloadV1{Actor: captain, Alias: "fortnite", TeamName: "Alpha"})
			},
			wantTopics: []string{tournamentevents.CommandSucceededV1, tournamentevents.CaptainLinkedV1},
		},
		{
			name: "rejected link announces nothing",
			run: func(h Handlers, f *FakeTournamentService) ([]handlerwrapper.Result, error) {
				f.LinkCaptainFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, teamName string) (*tournamentservice.CaptainChange, error) {
					return nil, tournamentdomain.ErrTeamCaptainExists
				}
				return h.HandleLinkCaptain(context.Background(), &tournamentevents.CaptainLinkRequestedPayloadV1{Actor: captain, Alias: "fortnite", TeamName: "Alpha"})
			},
			wantTopics: []string{tournamentevents.CommandFailedV1},
		},
		{
			name: "assign releases the displaced captain first",
			run: func(h Handlers, f *FakeTournamentService) ([]handlerwrapper.Result, error) {
				f.AssignCaptainFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, teamID, userID string) (*tournamentservice.CaptainAssignment, error) {
					return &tournamentservice.CaptainAssignment{Linked: *linked, Replaced: replaced}, nil
				}
				return h.HandleAssignCaptain(context.Background(), &tournamentevents.CaptainAssignRequestedPayloadV1{Actor: admin, Alias: "fortnite", TeamID: "7", UserID: "alice"})
			},
			wantTopics: []string{tournamentevents.CommandSucceededV1, tournamentevents.CaptainUnlinkedV1, tournamentevents.CaptainLinkedV1},
		},
		{
			name: "unlink",
			run: func(h Handlers, f *FakeTournamentService) ([]handlerwrapper.Result, error) {
				f.UnlinkCaptainFunc = func(ctx context.Context, actor tournamentdomain.Actor, teamName string) (*tournamentservice.CaptainChange, error) {
					return linked, nil
				}
				return h.HandleUnlinkCaptain(context.Background(), &tournamentevents.CaptainLinkRequestedPayloadV1{Actor: captain, TeamName: "Alpha"})
			},
			wantTopics: []string{tournamentevents.CommandSucceededV1, tournamentevents.CaptainUnlinkedV1},
		},
		{
			name: "reset team without captain",
			run: func(h Handlers, f *FakeTournamentService) ([]handlerwrapper.Result, error) {
				f.ResetTeamFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*tournamentservice.TeamChange, error) {
					return &tournamentservice.TeamChange{Team: tournamentdomain.Team{ID: teamID}}, nil
				}
				return h.HandleResetTeam(context.Background(), &tournamentevents.TeamRequestPayloadV1{Actor: admin, Alias: "fortnite", TeamID: "7"})
			},
			wantTopics: []string{tournamentevents.CommandSucceededV1},
		},
		{
			name: "remove team with captain",
			run: func(h Handlers, f *FakeTournamentService) ([]handlerwrapper.Result, error) {
				f.RemoveTeamFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, teamID string) (*tournamentservice.TeamChange, error) {
					return &tournamentservice.TeamChange{Team: tournamentdomain.Team{ID: teamID}, Unlinked: linked}, nil
				}
				return h.HandleRemoveTeam(context.Background(), &tournamentevents.TeamRequestPayloadV1{Actor: admin, Alias: "fortnite", TeamID: "7"})
			},
			wantTopics: []string{tournamentevents.CommandSucceededV1, tournamentevents.CaptainUnlinkedV1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeTournamentService()
			results, err := tt.run(newTestHandlers(svc), svc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTopics, topics(results))
		})
	}
}

func TestHandleStartMatch(t *testing.T) {
	svc := NewFakeTournamentService()
	svc.StartMatchFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, name string) (*tournamentservice.MatchStarted, error) {
		return &tournamentservice.MatchStarted{
			Match: tournamentdomain.Match{Name: name, Status: tournamentdomain.MatchStatusOngoing},
			Notice: tournamentdomain.MatchStart{
				Alias:     alias,
				MatchName: name,
				Password:  "hunter2",
				Channels:  []string{"#cup"},
				Captains:  []tournamentdomain.TeamCaptain{{TeamID: "7", TeamName: "Alpha", Captain: "alice"}},
			},
		}, nil
	}
	h := newTestHandlers(svc)

	results, err := h.HandleStartMatch(context.Background(), &tournamentevents.MatchRequestPayloadV1{Actor: admin, Alias: "fortnite", MatchName: "m1"})
	require.NoError(t, err)
	require.Equal(t, []string{
		tournamentevents.CommandSucceededV1,
		tournamentevents.MatchStartedV1,
		tournamentevents.MatchLobbyV1,
	}, topics(results))

	started := results[1].Payload.(*tournamentevents.MatchStartedPayloadV1)
	assert.Equal(t, []string{"#cup"}, started.Channels)
	require.Len(t, started.Captains, 1)
	assert.Equal(t, "alice", started.Captains[0].Captain)

	raw, err := json.Marshal(started)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hunter2")

	lobby := results[2].Payload.(*tournamentevents.MatchLobbyPayloadV1)
	assert.Equal(t, "hunter2", lobby.Password)
	assert.Equal(t, "m1", lobby.MatchName)
	require.Len(t, lobby.Captains, 1)
	assert.Equal(t, "alice", lobby.Captains[0].Captain)
}

func TestHandleStartMatch_Rejected(t *testing.T) {
	svc := NewFakeTournamentService()
	svc.StartMatchFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, name string) (*tournamentservice.MatchStarted, error) {
		return nil, tournamentdomain.ErrCannotStartFromStatus
	}

	results, err := newTestHandlers(svc).HandleStartMatch(context.Background(), &tournamentevents.MatchRequestPayloadV1{Actor: admin, Alias: "fortnite", MatchName: "m1"})
	require.NoError(t, err)
	assert.Equal(t, []string{tournamentevents.CommandFailedV1}, topics(results))
}

func TestHandleJoinMatch_HidesPassword(t *testing.T) {
	svc := NewFakeTournamentService()
	svc.JoinMatchFunc = func(ctx context.Context, actor tournamentdomain.Actor, name string) (*tournamentdomain.Match, error) {
		return &tournamentdomain.Match{Name: name, Password: "hunter2", TeamsJoined: []string{"7"}}, nil
	}

	results, err := newTestHandlers(svc).HandleJoinMatch(context.Background(), &tournamentevents.MatchRequestPayloadV1{Actor: captain, MatchName: "m1"})
	require.NoError(t, err)
	ok := results[0].Payload.(*tournamentevents.CommandSucceededPayloadV1)
	m := ok.Data.(*tournamentdomain.Match)
	assert.Empty(t, m.Password)
	assert.Equal(t, []string{"7"}, m.TeamsJoined)
}

func TestHandleSubmitScore(t *testing.T) {
	svc := NewFakeTournamentService()
	var got tournamentdomain.SubmitScoreParams
	svc.SubmitScoreFunc = func(ctx context.Context, actor tournamentdomain.Actor, params tournamentdomain.SubmitScoreParams) (*tournamentdomain.ScoreSubmission, error) {
		got = params
		return &tournamentdomain.ScoreSubmission{MatchName: params.MatchName, TeamName: "Alpha", Position: params.Position, Eliminations: params.Eliminations}, nil
	}

	results, err := newTestHandlers(svc).HandleSubmitScore(context.Background(), &tournamentevents.ScoreSubmitRequestedPayloadV1{
		Actor: captain, MatchName: "m1", Position: 2, Eliminations: 5, URLs: []string{"u1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.URLs)
	assert.Empty(t, got.TeamID)

	ok := results[0].Payload.(*tournamentevents.CommandSucceededPayloadV1)
	view := ok.Data.(scoreView)
	assert.Equal(t, 17, view.Points)
}

func TestHandleRemoveCaptainRole(t *testing.T) {
	svc := NewFakeTournamentService()
	role := "unset"
	svc.SetCaptainRoleFunc = func(ctx context.Context, actor tournamentdomain.Actor, alias, r string) error {
		role = r
		return nil
	}

	_, err := newTestHandlers(svc).HandleRemoveCaptainRole(context.Background(), &tournamentevents.TournamentRequestPayloadV1{Actor: admin, Alias: "fortnite"})
	require.NoError(t, err)
	assert.Empty(t, role)
}
