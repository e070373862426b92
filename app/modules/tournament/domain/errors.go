package tournamentdomain

import (
	"errors"
	"fmt"
)

// Domain errors for the tournament module.
// Each names the precondition that was violated. Handlers translate them into
// failure results rather than retrying.
var (
	// ErrTournamentNotFound indicates no tournament is stored under the alias.
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrTournamentAliasExists indicates the alias is already taken.
	ErrTournamentAliasExists = errors.New("tournament alias already exists")

	// ErrTournamentNotFoundUpstream indicates the provider does not know the tournament id.
	ErrTournamentNotFoundUpstream = errors.New("tournament not found on provider")

	// ErrInvalidTournament indicates a stored tournament blob failed validation.
	ErrInvalidTournament = errors.New("invalid tournament data")

	ErrMatchNameExists       = errors.New("match name already exists")
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchIDNotFound       = errors.New("match id not found on provider")
	ErrMatchNotPending       = errors.New("match is not pending")
	ErrMatchNotOngoing       = errors.New("match is not ongoing")
	ErrCannotStartFromStatus = errors.New("match cannot be started from its current status")
	ErrInvalidMatchStatus    = errors.New("invalid match status")

	// ErrMatchLocked indicates the match is completed and its submissions are frozen.
	ErrMatchLocked = errors.New("match is completed, submissions are locked")

	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNotEligible  = errors.New("team is not registered in this match group")
	ErrAlreadyJoined    = errors.New("team has already joined this match")
	ErrNotJoined        = errors.New("team has not joined this match")
	ErrTeamNameMismatch = errors.New("team name does not match the linked team")

	ErrNotATeamCaptain         = errors.New("not a team captain")
	ErrAlreadyCaptainElsewhere = errors.New("already the captain of a team")
	ErrTeamCaptainExists       = errors.New("team already has a captain")
	ErrInvalidCaptain          = errors.New("captain user id is required")

	ErrAlreadySubmitted     = errors.New("score already submitted for this match")
	ErrNoSubmissionFound    = errors.New("no score submission found for this match")
	ErrInvalidScore         = errors.New("invalid score")
	ErrChannelExists        = errors.New("channel already registered")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrChannelNotAllowed    = errors.New("command not allowed in this channel")
	ErrRoleExists           = errors.New("role already registered")
	ErrRoleNotFound         = errors.New("role not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrProviderLookupFailed = errors.New("provider lookup failed")

	// ErrParticipantFetchFailed indicates the provider returned no data for one participant.
	ErrParticipantFetchFailed = errors.New("could not fetch participant data")
)

// ProviderError wraps a transport failure from the tournament provider,
// keeping the ids the lookup was made for.
type ProviderError struct {
	Op           string
	TournamentID string
	ResourceID   string
	Err          error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("provider %s failed for tournament %s", e.Op, e.TournamentID)
	if e.ResourceID != "" {
		msg += " (" + e.ResourceID + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is makes every ProviderError match ErrProviderLookupFailed.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderLookupFailed
}

func providerError(op, tournamentID, resourceID string, err error) error {
	return &ProviderError{Op: op, TournamentID: tournamentID, ResourceID: resourceID, Err: err}
}

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrTournamentNotFound, "tournament_not_found"},
	{ErrTournamentAliasExists, "tournament_alias_exists"},
	{ErrTournamentNotFoundUpstream, "tournament_not_found_upstream"},
	{ErrInvalidTournament, "invalid_tournament"},
	{ErrMatchNameExists, "match_name_exists"},
	{ErrMatchNotFound, "match_not_found"},
	{ErrMatchIDNotFound, "match_id_not_found"},
	{ErrMatchNotPending, "match_not_pending"},
	{ErrMatchNotOngoing, "match_not_ongoing"},
	{ErrCannotStartFromStatus, "cannot_start_from_status"},
	{ErrInvalidMatchStatus, "invalid_match_status"},
	{ErrMatchLocked, "match_locked"},
	{ErrTeamNotFound, "team_not_found"},
	{ErrTeamNotEligible, "team_not_eligible"},
	{ErrAlreadyJoined, "already_joined"},
	{ErrNotJoined, "not_joined"},
	{ErrTeamNameMismatch, "team_name_mismatch"},
	{ErrNotATeamCaptain, "not_a_team_captain"},
	{ErrAlreadyCaptainElsewhere, "already_captain_elsewhere"},
	{ErrTeamCaptainExists, "team_captain_exists"},
	{ErrInvalidCaptain, "invalid_captain"},
	{ErrAlreadySubmitted, "already_submitted"},
	{ErrNoSubmissionFound, "no_submission_found"},
	{ErrInvalidScore, "invalid_score"},
	{ErrChannelExists, "channel_exists"},
	{ErrChannelNotFound, "channel_not_found"},
	{ErrChannelNotAllowed, "channel_not_allowed"},
	{ErrRoleExists, "role_exists"},
	{ErrRoleNotFound, "role_not_found"},
	{ErrPermissionDenied, "permission_denied"},
	{ErrParticipantFetchFailed, "participant_fetch_failed"},
	{ErrProviderLookupFailed, "provider_lookup_failed"},
}

// ErrorCode returns a stable machine-readable code for a domain error, or
// "internal" when err is not one.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}

// IsDomainError reports whether err is one of the module's typed failures.
func IsDomainError(err error) bool {
	return err != nil && ErrorCode(err) != "internal"
}
