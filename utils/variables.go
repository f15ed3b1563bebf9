package utils

import (
	"regexp"

	"github.com/pkg/errors"
)

// ValidNameRegex is the pattern that matches a valid board name: lower case letters, numbers
// and underscores, starting with a letter or number, at most 60 characters.
var ValidNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_]{0,59}$`)

// ErrInvalidName returns a human-readable error for when ValidNameRegex doesn't match.
func ErrInvalidName(name string) error {
	if len(name) > 60 {
		// this is broken out to improve readability of the error msg
		return errors.Errorf("name %q must be 60 characters or fewer", name)
	}
	return errors.Errorf("name %q must start with a letter or number and must only contain lower case letters, "+
		"numbers and underscores", name)
}
