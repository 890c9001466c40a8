package grid

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyEditing = errors.New("another edit is already in progress")
	ErrNoActiveEdit   = errors.New("no edit in progress")
	ErrRowNotFound    = errors.New("row not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrNotGrouped     = errors.New("grouping is not configured")
	ErrReduceRequired = errors.New("groupBy requires a summary reduce function")
	ErrNoSaver        = errors.New("no save callback configured")
	ErrNoDeleter      = errors.New("no delete callback configured")
)

// ValidationError reports a draft value the normalize step rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// PartialSaveError reports a group save that wrote some member rows before
// one failed. It is distinct from total failure so callers can show which
// members went through.
type PartialSaveError struct {
	GroupKey string
	SavedIDs []string
	FailedID string
	Err      error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("group %q partially saved: %d row(s) written before row %q failed: %v",
		e.GroupKey, len(e.SavedIDs), e.FailedID, e.Err)
}

func (e *PartialSaveError) Unwrap() error { return e.Err }
