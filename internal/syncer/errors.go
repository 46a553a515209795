package syncer

import "fmt"

// Error is a remote persistence failure: the backend rejected or could not
// complete a write, and the store was left unmodified. Callers distinguish
// it from local failures with errors.As.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }
