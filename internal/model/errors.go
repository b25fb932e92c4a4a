package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when an ExtensionConfig cannot be built.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrDirectoryUnreadable is returned when the photo directory cannot be listed.
	ErrDirectoryUnreadable = errors.New("directory unreadable")
	// ErrDestinationExists is returned instead of overwriting an existing file.
	ErrDestinationExists = errors.New("destination already exists")
)

// ActionError reports the failure of a single planned action.
type ActionError struct {
	Action Action
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// IsActionFailed reports whether err carries an ActionError.
func IsActionFailed(err error) bool {
	var e *ActionError
	return errors.As(err, &e)
}
