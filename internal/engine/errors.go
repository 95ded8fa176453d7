package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when the query text is empty after trimming.
var ErrEmptyInput = errors.New("empty query text")

// PlayerNotFoundError means no stored player matched the extracted name,
// even fuzzily. User-correctable; surfaced verbatim.
type PlayerNotFoundError struct {
	Name string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("no player found matching %q", e.Name)
}

// AmbiguousPlayerError means two or more players matched the extracted
// name. Carries the candidate names (at most six, ordered by name) so the
// caller can present a disambiguation menu. User-correctable, not a fault.
type AmbiguousPlayerError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousPlayerError) Error() string {
	return fmt.Sprintf("multiple players matched %q; try one of: %s",
		e.Name, strings.Join(e.Candidates, ", "))
}

// QueryError wraps a failure of the underlying store call. Infrastructure
// fault, propagated as-is with no retry.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *QueryError) Unwrap() error { return e.Err }
