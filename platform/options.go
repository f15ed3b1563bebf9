package platform

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"go.fpgaboards.dev/boards/utils"
)

// Options select a board variant or revision when building its Platform. Toolchain overrides
// the board's default toolchain.
type Options struct {
	Variant   string
	Revision  string
	Toolchain string
}

// ToolchainOr returns the requested toolchain, or def when none was requested.
func (o Options) ToolchainOr(def string) string {
	if o.Toolchain != "" {
		return o.Toolchain
	}
	return def
}

// A Constructor builds a board's Platform.
type Constructor func(opts Options) (*Platform, error)

// SelectVariant returns variant, or def when variant is empty, after checking it is one of
// allowed.
func SelectVariant(variant, def string, allowed []string) (string, error) {
	if variant == "" {
		variant = def
	}
	for _, a := range allowed {
		if a == variant {
			return variant, nil
		}
	}
	return "", utils.NewUnsupportedOptionError("variant", variant, allowed)
}

// ParseRevision parses a board revision such as "7.0", "v7.0" or "r0.2" after checking it is
// one of known. An empty revision selects def.
func ParseRevision(revision, def string, known []string) (*semver.Version, error) {
	if revision == "" {
		revision = def
	}
	found := false
	for _, k := range known {
		if k == revision {
			found = true
			break
		}
	}
	if !found {
		return nil, utils.NewUnsupportedOptionError("revision", revision, known)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimPrefix(revision, "r"), "v"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid revision %q", revision)
	}
	return v, nil
}

// RevisionAtLeast reports whether v satisfies ">= min".
func RevisionAtLeast(v *semver.Version, min string) bool {
	c, err := semver.NewConstraint(">= " + min)
	if err != nil {
		return false
	}
	return c.Check(v)
}
