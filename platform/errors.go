package platform

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrAlreadyRequested is returned when a resource is requested a second time.
var ErrAlreadyRequested = errors.New("resource already requested")

// A ResourceNotFoundError is returned when a board has no resource with the requested name and
// number.
type ResourceNotFoundError struct {
	Board  string
	Name   string
	Number int
}

func (e *ResourceNotFoundError) Error() string {
	if e.Number < 0 {
		return fmt.Sprintf("board %q has no available resource %q", e.Board, e.Name)
	}
	return fmt.Sprintf("board %q has no resource %q number %d", e.Board, e.Name, e.Number)
}

// IsResourceNotFound returns if the given error is a ResourceNotFoundError.
func IsResourceNotFound(err error) bool {
	var errArt *ResourceNotFoundError
	return errors.As(err, &errArt)
}

// A PinConflictError is returned when two requested resources share a package pin.
type PinConflictError struct {
	Site   string
	Holder string
	Wanted string
}

func (e *PinConflictError) Error() string {
	return fmt.Sprintf("pin %s is already used by %s, cannot request %s", e.Site, e.Holder, e.Wanted)
}
