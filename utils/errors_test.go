package utils

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestNewUnsupportedOptionError(t *testing.T) {
	err := NewUnsupportedOptionError("revision", "9.0", []string{"6.1", "7.0"})
	test.That(t, err.Error(), test.ShouldEqual, `unsupported revision "9.0"; expected one of: 6.1, 7.0`)

	err = NewUnsupportedOptionError("variant", "x", nil)
	test.That(t, err.Error(), test.ShouldEqual, `unsupported variant "x"`)
}

func TestConfigValidationErrors(t *testing.T) {
	err := NewConfigValidationFieldRequiredError("boards.arty", "toolchain")
	test.That(t, err.Error(), test.ShouldContainSubstring, "boards.arty")
	test.That(t, err.Error(), test.ShouldContainSubstring, "toolchain")

	err = NewConfigValidationError("output_dir", errors.New("must not be empty"))
	test.That(t, err.Error(), test.ShouldContainSubstring, "must not be empty")
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"digilent_arty", "1bitsquared_icebreaker", "colorlight_5a_75b"} {
		test.That(t, ValidNameRegex.MatchString(name), test.ShouldBeTrue)
	}
	for _, name := range []string{"", "_arty", "Digilent_Arty", "Digilent-Arty", "arty-a7", strings.Repeat("a", 61)} {
		test.That(t, ValidNameRegex.MatchString(name), test.ShouldBeFalse)
	}
	test.That(t, ErrInvalidName(strings.Repeat("a", 61)).Error(), test.ShouldContainSubstring, "60 characters")
	test.That(t, ErrInvalidName("Arty").Error(), test.ShouldContainSubstring, "lower case")
	test.That(t, ErrInvalidName("_arty").Error(), test.ShouldContainSubstring, "must start with")
}
