package sync

import "fmt"

// SetupError is returned when the destination cannot be prepared.
// Nothing has been deleted or downloaded when it occurs.
type SetupError struct {
	Location string
	Err      error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("failed to prepare destination %s: %v", e.Location, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}
