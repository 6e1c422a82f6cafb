package contacts

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned for a blank search query. No call is made.
	ErrEmptyQuery = errors.New("contacts: empty search query")
	// ErrNoMatches means the search ran and found nobody.
	ErrNoMatches = errors.New("contacts: no users found")
	// ErrNotFound means a committed candidate no longer exists remotely.
	ErrNotFound = errors.New("contacts: user not found")
)

// OperationError reports a collaborator fault during search or add.
type OperationError struct {
	Op  string // "search" or "add"
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("contacts: %s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// IsOperationFailed reports whether err is (or wraps) an *OperationError.
func IsOperationFailed(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr)
}
