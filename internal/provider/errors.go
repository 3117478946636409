// Package provider implements the API-Football statistics client.
package provider

import (
	"errors"
	"fmt"
)

// Fetch error kinds. The scheduler contains all of these at its boundary;
// they never propagate to request-serving code.
var (
	// ErrTimeout indicates the provider did not answer within the per-call timeout
	ErrTimeout = errors.New("provider request timed out")

	// ErrBadResponse indicates a non-2xx status or a malformed payload
	ErrBadResponse = errors.New("bad provider response")

	// ErrTransport indicates any other transport-level fault
	ErrTransport = errors.New("provider transport error")
)

// Error wraps a fetch failure with the operation and league it occurred in.
type Error struct {
	Op       string
	LeagueID int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s (league %d): %v", e.Op, e.LeagueID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, leagueID int, err error) *Error {
	return &Error{Op: op, LeagueID: leagueID, Err: err}
}
