package types

import "errors"

// Domain specific errors for persistence lookups.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrConflict   = errors.New("item already exists or conflict")
	ErrBadRequest = errors.New("bad request")
)

// AI gateway error taxonomy. Every failure coming out of the gateway wraps
// exactly one of these sentinels so the planner can map it to a localized
// user message with errors.Is.
var (
	// ErrAIConfiguration means the Gemini credential is missing or invalid.
	// No network call is attempted when this is returned.
	ErrAIConfiguration = errors.New("ai credential missing or invalid")
	// ErrAITransport covers network and provider-level failures.
	ErrAITransport = errors.New("ai provider call failed")
	// ErrAITimeout is the deadline variant of ErrAITransport and is handled
	// identically for user messaging.
	ErrAITimeout = errors.New("ai provider call timed out")
	// ErrAIEmptyResponse means the provider envelope carried no extractable text.
	ErrAIEmptyResponse = errors.New("ai response contained no text")
	// ErrAIMalformedJSON means the provider text was not valid JSON.
	ErrAIMalformedJSON = errors.New("ai response was not valid JSON")
	// ErrAIUnexpectedFormat means the JSON parsed but violated the response contract.
	ErrAIUnexpectedFormat = errors.New("ai response had unexpected structure")
)

// ErrStateLost is returned when a "more options" request arrives for a
// session whose collected trip data is gone, e.g. after a restart. This is a
// session-integrity problem, not an AI problem.
var ErrStateLost = errors.New("planning session data lost")
