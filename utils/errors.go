package utils

import (
	"strings"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// NewUnsupportedOptionError is returned when a board option (variant, revision, toolchain, ...)
// is not one of the values the board accepts.
func NewUnsupportedOptionError(option, value string, allowed []string) error {
	if len(allowed) == 0 {
		return errors.Errorf("unsupported %s %q", option, value)
	}
	return errors.Errorf("unsupported %s %q; expected one of: %s", option, value, strings.Join(allowed, ", "))
}

// NewConfigValidationFieldRequiredError is used when a required config field is missing.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return goutils.NewConfigValidationFieldRequiredError(path, field)
}

// NewConfigValidationError wraps a config validation failure with the path it occurred at.
func NewConfigValidationError(path string, err error) error {
	return goutils.NewConfigValidationError(path, err)
}
