package tournamentevents

import (
	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
)

// ------------------------
// Requests
// ------------------------

// TournamentRequestPayloadV1 addresses one tournament. It is used by every
// request that needs nothing beyond the alias.
type TournamentRequestPayloadV1 struct {
	Actor tournamentdomain.Actor `json:"actor"`
	Alias string                 `json:"alias"`
}

// TournamentCreateRequestedPayloadV1 registers a provider tournament under an alias.
type TournamentCreateRequestedPayloadV1 struct {
	Actor        tournamentdomain.Actor `json:"actor"`
	Alias        string                 `json:"alias"`
	TournamentID string                 `json:"tournament_id"`
}

// ActorRequestPayloadV1 carries only the caller, for requests that resolve the
// tournament from the caller's captaincy or need none.
type ActorRequestPayloadV1 struct {
	Actor tournamentdomain.Actor `json:"actor"`
}

// ChannelRequestPayloadV1 adds or removes a command channel.
type ChannelRequestPayloadV1 struct {
	Actor   tournamentdomain.Actor `json:"actor"`
	Alias   string                 `json:"alias"`
	Channel string                 `json:"channel"`
}

// RoleRequestPayloadV1 changes an administrator or captain role.
type RoleRequestPayloadV1 struct {
	Actor tournamentdomain.Actor `json:"actor"`
	Alias string                 `json:"alias"`
	Role  string                 `json:"role"`
}

// TeamRequestPayloadV1 addresses a team by provider id.
type TeamRequestPayloadV1 struct {
	Actor  tournamentdomain.Actor `json:"actor"`
	Alias  string                 `json:"alias"`
	TeamID string                 `json:"team_id"`
}

// CaptainLinkRequestedPayloadV1 links or unlinks the caller by team name.
// Alias is ignored on unlink, where the caller's captaincy decides.
type CaptainLinkRequestedPayloadV1 struct {
	Actor    tournamentdomain.Actor `json:"actor"`
	Alias    string                 `json:"alias,omitempty"`
	TeamName string                 `json:"team_name"`
}

// CaptainAssignRequestedPayloadV1 lets an admin link any user to a team.
type CaptainAssignRequestedPayloadV1 struct {
	Actor  tournamentdomain.Actor `json:"actor"`
	Alias  string                 `json:"alias"`
	TeamID string                 `json:"team_id"`
	UserID string                 `json:"user_id"`
}

// MatchRequestPayloadV1 addresses a match. Alias is empty for captain
// commands, which resolve it from the caller.
type MatchRequestPayloadV1 struct {
	Actor     tournamentdomain.Actor `json:"actor"`
	Alias     string                 `json:"alias,omitempty"`
	MatchName string                 `json:"match_name"`
}

// MatchCreateRequestedPayloadV1 creates a match, optionally bound to a
// provider match group.
type MatchCreateRequestedPayloadV1 struct {
	Actor           tournamentdomain.Actor `json:"actor"`
	Alias           string                 `json:"alias"`
	MatchName       string                 `json:"match_name"`
	Password        string                 `json:"password"`
	ProviderMatchID string                 `json:"provider_match_id,omitempty"`
}

// MatchEndRequestedPayloadV1 completes a match.
type MatchEndRequestedPayloadV1 struct {
	Actor     tournamentdomain.Actor `json:"actor"`
	Alias     string                 `json:"alias"`
	MatchName string                 `json:"match_name"`
	Force     bool                   `json:"force"`
}

// MatchStatusSetRequestedPayloadV1 overrides a match status by name.
type MatchStatusSetRequestedPayloadV1 struct {
	Actor     tournamentdomain.Actor `json:"actor"`
	Alias     string                 `json:"alias"`
	MatchName string                 `json:"match_name"`
	Status    string                 `json:"status"`
}

// ScoreSubmitRequestedPayloadV1 is a captain's score claim with its screenshots.
type ScoreSubmitRequestedPayloadV1 struct {
	Actor        tournamentdomain.Actor `json:"actor"`
	MatchName    string                 `json:"match_name"`
	Position     int                    `json:"position"`
	Eliminations int                    `json:"eliminations"`
	URLs         []string               `json:"urls"`
}

// ScreenshotAddRequestedPayloadV1 appends screenshots to a captain's submission.
type ScreenshotAddRequestedPayloadV1 struct {
	Actor     tournamentdomain.Actor `json:"actor"`
	MatchName string                 `json:"match_name"`
	URLs      []string               `json:"urls"`
}

// ------------------------
// Results
// ------------------------

// CommandSucceededPayloadV1 answers a request. Data holds the command's view.
type CommandSucceededPayloadV1 struct {
	Command string                 `json:"command"`
	Alias   string                 `json:"alias,omitempty"`
	Actor   tournamentdomain.Actor `json:"actor"`
	Data    any                    `json:"data,omitempty"`
}

// CommandFailedPayloadV1 reports a rejected request. Code is a stable
// machine-readable identifier; Reason is for humans.
type CommandFailedPayloadV1 struct {
	Command string                 `json:"command"`
	Alias   string                 `json:"alias,omitempty"`
	Actor   tournamentdomain.Actor `json:"actor"`
	Code    string                 `json:"code"`
	Reason  string                 `json:"reason"`
}

// ------------------------
// Notifications
// ------------------------

// MatchStartedPayloadV1 is the public announcement of a starting match,
// posted to the tournament channels. It never carries the password.
type MatchStartedPayloadV1 struct {
	Alias     string                         `json:"alias"`
	MatchName string                         `json:"match_name"`
	Channels  []string                       `json:"channels"`
	Captains  []tournamentdomain.TeamCaptain `json:"captains"`
}

// MatchLobbyPayloadV1 is sent privately to each joined captain with the
// lobby password.
type MatchLobbyPayloadV1 struct {
	Alias     string                         `json:"alias"`
	MatchName string                         `json:"match_name"`
	Password  string                         `json:"password,omitempty"`
	Captains  []tournamentdomain.TeamCaptain `json:"captains"`
}

// CaptainChangedPayloadV1 is published when a user gains or loses a
// captaincy, so the adapter can update nickname and role.
type CaptainChangedPayloadV1 struct {
	Alias       string `json:"alias"`
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	UserID      string `json:"user_id"`
	CaptainRole string `json:"captain_role,omitempty"`
}
