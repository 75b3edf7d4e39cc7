package arena

import "fmt"

// Code is a machine-readable rejection code. Codes double as message keys: the
// host renders them for the participant, the core never formats text.
type Code string

const (
	// Join errors
	CodeArenaLocked     Code = "arena.locked"
	CodeArenaFull       Code = "arena.full"
	CodeArenaRunning    Code = "arena.running"
	CodeAlreadyInArena  Code = "arena.already_joined"
	CodeNotInArena      Code = "arena.not_joined"
	CodeTeamUnknown     Code = "arena.team_unknown"
	CodeTeamFull        Code = "arena.team_full"
	CodeNoSpawn         Code = "arena.no_spawn"
	CodeSpectateOff     Code = "arena.spectate_disabled"
	CodeUnknownArena    Code = "arena.unknown"
	CodeLoadoutUnknown  Code = "arena.loadout_unknown"
	CodeStatusForbidden Code = "arena.status_forbidden"

	// Readiness errors
	CodeAlone              Code = "ready.alone"
	CodeMissingPlayers     Code = "ready.missing_players"
	CodePlayerNotReady     Code = "ready.player_not_ready"
	CodeTeamAlone          Code = "ready.team_alone"
	CodeWaitingEqualTeams  Code = "ready.waiting_equal_teams"
	CodeMissingTeamPlayers Code = "ready.missing_team_players"
	CodeNoLoadout          Code = "ready.no_loadout"
	CodeNotEnoughReady     Code = "ready.not_enough_ready"
	CodeAlreadyRunning     Code = "ready.already_running"

	// Workflow errors
	CodeRejectedByModule Code = "workflow.rejected"
)

// Error is a rejection with structured metadata. Rejections are expected and
// user facing; they never abort the match.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Internal message (for logs)
	Args    []any  // Positional arguments for the host's message template
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Notice converts the rejection into a message for the participant.
func (e *Error) Notice() Message {
	return Message{Key: string(e.Code), Args: e.Args}
}

// Reject creates a rejection with a code, an internal message and optional
// template arguments.
func Reject(code Code, message string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Args:    args,
	}
}

// Wrap creates a rejection that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrNoSpawn is returned by the SpawnSelector when a pool is empty.
var ErrNoSpawn = &Error{Code: CodeNoSpawn, Message: "no spawn available"}

// CodeOf extracts the rejection code from an error chain, or the empty code.
func CodeOf(err error) Code {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
