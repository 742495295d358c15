package dispatch

import (
	"fmt"
	"github.com/MatthiasKunnen/xdg-open/mimetype"
)

// NoActionError is returned when the configuration has no command for a MIME type.
type NoActionError struct {
	Target string
	Mime   mimetype.MimeType
}

func (e *NoActionError) Error() string {
	return fmt.Sprintf("I don't know how to open '%s' (%s)", e.Target, e.Mime)
}

// SpawnError is returned when the command of an action could not be started.
type SpawnError struct {
	Action Action
	Target string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to launch %q for '%s': %v", e.Action.String(), e.Target, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
