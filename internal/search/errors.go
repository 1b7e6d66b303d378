package search

import "errors"

// Backend failure taxonomy. Adapters must map their transport-level
// failures onto exactly one of these so callers can tell infrastructure
// failure apart from a query-construction bug.
var (
	// ErrBackendUnavailable covers timeouts, connection failures and
	// 5xx responses. Not retried here; retry policy belongs to the
	// caller.
	ErrBackendUnavailable = errors.New("search backend unavailable")

	// ErrInvalidQuery covers 4xx rejections of the compiled query.
	// Unreachable with well-formed inputs; indicates a programming
	// error in query construction.
	ErrInvalidQuery = errors.New("search query rejected by backend")
)
