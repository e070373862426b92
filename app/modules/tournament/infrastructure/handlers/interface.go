package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
)

// Handlers defines the interface for tournament event handlers.
type Handlers interface {
	// Tournaments
	HandleCreateTournament(ctx context.Context, payload *tournamentevents.TournamentCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRemoveTournament(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleShowTournament(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleListTournaments(ctx context.Context, payload *tournamentevents.ActorRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleRefreshTournament(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleRefreshStatus(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error)

	// Settings
	HandleAddChannel(ctx context.Context, payload *tournamentevents.ChannelRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleRemoveChannel(ctx context.Context, payload *tournamentevents.ChannelRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleAddAdminRole(ctx context.Context, payload *tournamentevents.RoleRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleRemoveAdminRole(ctx context.Context, payload *tournamentevents.RoleRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleSetCaptainRole(ctx context.Context, payload *tournamentevents.RoleRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleRemoveCaptainRole(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error)

	// Teams and captains
	HandleResetTeam(ctx context.Context, payload *tournamentevents.TeamRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleRemoveTeam(ctx context.Context, payload *tournamentevents.TeamRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleMissingTeams(ctx context.Context, payload *tournamentevents.TournamentRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleLinkCaptain(ctx context.Context, payload *tournamentevents.CaptainLinkRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleAssignCaptain(ctx context.Context, payload *tournamentevents.CaptainAssignRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleUnlinkCaptain(ctx context.Context, payload *tournamentevents.CaptainLinkRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCaptainStatus(ctx context.Context, payload *tournamentevents.ActorRequestPayloadV1) ([]handlerwrapper.Result, error)

	// Matches
	HandleCreateMatch(ctx context.Context, payload *tournamentevents.MatchCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRemoveMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleJoinMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleLeaveMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleStartMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleEndMatch(ctx context.Context, payload *tournamentevents.MatchEndRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSetMatchStatus(ctx context.Context, payload *tournamentevents.MatchStatusSetRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleShowMatch(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error)

	// Scores
	HandleSubmitScore(ctx context.Context, payload *tournamentevents.ScoreSubmitRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleAddScreenshot(ctx context.Context, payload *tournamentevents.ScreenshotAddRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRemoveScore(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleMatchScores(ctx context.Context, payload *tournamentevents.MatchRequestPayloadV1) ([]handlerwrapper.Result, error)
}
