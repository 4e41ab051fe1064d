package services

import "errors"

// Error taxonomy for the conversational core. Recoverable conditions
// (incomplete profile, bad tool arguments) are folded into turn results;
// these sentinels mark the conditions callers branch on.
var (
	// ErrValidation covers malformed input caught before any side effect.
	ErrValidation = errors.New("invalid request")

	// ErrUpstreamUnavailable marks a failed inference call. Fatal to the
	// turn: no assistant message is persisted, the caller retries the whole
	// turn if it wants to.
	ErrUpstreamUnavailable = errors.New("inference endpoint unavailable")

	// ErrToolArgument marks a tool call whose arguments failed to parse or
	// validate. Skips that call only; sibling calls and the turn continue.
	ErrToolArgument = errors.New("invalid tool arguments")

	// ErrMealNotDraft is returned when confirming or rejecting a meal that
	// already left the draft state. Both outcomes are terminal.
	ErrMealNotDraft = errors.New("meal is not in draft status")

	// ErrNotFound is returned when a requested row does not exist or is
	// owned by another user.
	ErrNotFound = errors.New("record not found")
)
