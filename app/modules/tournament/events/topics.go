// Package tournamentevents defines the NATS topics and payloads exchanged
// between the chat adapter and the tournament service.
package tournamentevents

// Stream settings for JetStream provisioning.
const (
	StreamName    = "tournament"
	StreamSubject = "tournament.>"
)

// Tournament administration requests.
const (
	TournamentCreateRequestedV1        = "tournament.create.requested.v1"
	TournamentRemoveRequestedV1        = "tournament.remove.requested.v1"
	TournamentShowRequestedV1          = "tournament.show.requested.v1"
	TournamentListRequestedV1          = "tournament.list.requested.v1"
	TournamentRefreshRequestedV1       = "tournament.refresh.requested.v1"
	TournamentRefreshStatusRequestedV1 = "tournament.refresh_status.requested.v1"
	ChannelAddRequestedV1              = "tournament.channel.add.requested.v1"
	ChannelRemoveRequestedV1           = "tournament.channel.remove.requested.v1"
	AdminRoleAddRequestedV1            = "tournament.admin_role.add.requested.v1"
	AdminRoleRemoveRequestedV1         = "tournament.admin_role.remove.requested.v1"
	CaptainRoleSetRequestedV1          = "tournament.captain_role.set.requested.v1"
	CaptainRoleRemoveRequestedV1       = "tournament.captain_role.remove.requested.v1"
)

// Team and captain requests.
const (
	TeamResetRequestedV1     = "tournament.team.reset.requested.v1"
	TeamRemoveRequestedV1    = "tournament.team.remove.requested.v1"
	TeamsMissingRequestedV1  = "tournament.team.missing.requested.v1"
	CaptainLinkRequestedV1   = "tournament.captain.link.requested.v1"
	CaptainAssignRequestedV1 = "tournament.captain.assign.requested.v1"
	CaptainUnlinkRequestedV1 = "tournament.captain.unlink.requested.v1"
	CaptainStatusRequestedV1 = "tournament.captain.status.requested.v1"
)

// Match requests.
const (
	MatchCreateRequestedV1    = "tournament.match.create.requested.v1"
	MatchRemoveRequestedV1    = "tournament.match.remove.requested.v1"
	MatchJoinRequestedV1      = "tournament.match.join.requested.v1"
	MatchLeaveRequestedV1     = "tournament.match.leave.requested.v1"
	MatchStartRequestedV1     = "tournament.match.start.requested.v1"
	MatchEndRequestedV1       = "tournament.match.end.requested.v1"
	MatchStatusSetRequestedV1 = "tournament.match.status.requested.v1"
	MatchShowRequestedV1      = "tournament.match.show.requested.v1"
)

// Score requests.
const (
	ScoreSubmitRequestedV1   = "tournament.score.submit.requested.v1"
	ScreenshotAddRequestedV1 = "tournament.score.screenshot.requested.v1"
	ScoreRemoveRequestedV1   = "tournament.score.remove.requested.v1"
	MatchScoresRequestedV1   = "tournament.score.list.requested.v1"
)

// Results and notifications.
const (
	CommandSucceededV1 = "tournament.command.succeeded.v1"
	CommandFailedV1    = "tournament.command.failed.v1"
	MatchStartedV1     = "tournament.match.started.v1"
	MatchLobbyV1       = "tournament.match.lobby.v1"
	CaptainLinkedV1    = "tournament.captain.linked.v1"
	CaptainUnlinkedV1  = "tournament.captain.unlinked.v1"
)
