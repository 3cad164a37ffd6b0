package activity

import (
	"errors"
	"fmt"
)

var (
	// ErrActivityNotFound indicates the activity doesn't exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidInput indicates invalid input for activity operations.
	ErrInvalidInput = errors.New("invalid activity input")
	// ErrInvalidRecurrence indicates unusable recurrence options.
	ErrInvalidRecurrence = errors.New("invalid recurrence options")
	// ErrTemplateHasRecurrence indicates a series template that already
	// carries member metadata; occurrence 0 never does.
	ErrTemplateHasRecurrence = errors.New("template must not carry recurring metadata")
)

// Regeneration steps, in order. The new series is created and confirmed
// before the old one is deleted, so a series is never transiently empty.
const (
	StepCreateNewSeries = "create_new_series"
	StepDeleteOldSeries = "delete_old_series"
)

// PartialFailureError reports a series regeneration that failed between
// its two remote round-trips. The caller resynchronizes from the backend
// rather than attempting manual repair.
type PartialFailureError struct {
	Step string
	Err  error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("series regeneration failed at %s: %v", e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
