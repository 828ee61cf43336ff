package copier

import (
	"errors"
	"fmt"
)

var (
	ErrCopyInProgress = errors.New("a copy of this record is already in progress")
	ErrNilRecord      = errors.New("cannot copy a nil record")
	ErrNotAClone      = errors.New("store record does not accept property assignment")
)

// CopyError is returned by Copy when any step of the copy fails.
// The created clones have been rolled back when it is returned.
type CopyError struct {
	// Record is the root record, as "Model:identity".
	Record string
	// Cause is the error that aborted the copy.
	Cause error
	// Clones is the number of clones registered in the session when it failed.
	Clones int
	// RollbackErrors are unload failures met during cleanup.
	RollbackErrors []error
}

func (e *CopyError) Error() string {
	msg := fmt.Sprintf("copy of %s failed, %d clone(s) rolled back: %v", e.Record, e.Clones, e.Cause)
	if n := len(e.RollbackErrors); n > 0 {
		msg += fmt.Sprintf(" (%d unload error(s))", n)
	}

	return msg
}

func (e *CopyError) Unwrap() error { return e.Cause }
