package platform

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Unconnected marks a connector position with no FPGA pin behind it.
const Unconnected = "-"

// Connector groups pins into a named header. Positions are either listed in order (Pins,
// indexed from 0) or named (Map). Entries may themselves be connector references.
type Connector struct {
	Name string            `json:"name" yaml:"name"`
	Pins string            `json:"pins,omitempty" yaml:"pins,omitempty"`
	Map  map[string]string `json:"map,omitempty" yaml:"map,omitempty"`
}

// Keys lists the connector's positions in order. Named positions are sorted numerically when
// possible and lexically otherwise.
func (c Connector) Keys() []string {
	if c.Map == nil {
		pins := splitPins(c.Pins)
		keys := make([]string, len(pins))
		for i := range pins {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	}
	keys := make([]string, 0, len(c.Map))
	for k := range c.Map {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, errI := strconv.Atoi(keys[i])
		nj, errJ := strconv.Atoi(keys[j])
		if errI == nil && errJ == nil {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Lookup returns the entry at a position, which may be a physical locator, another connector
// reference, or Unconnected.
func (c Connector) Lookup(key string) (string, error) {
	if c.Map != nil {
		target, ok := c.Map[key]
		if !ok {
			return "", errors.Errorf("connector %q has no position %q", c.Name, key)
		}
		return target, nil
	}
	idx, err := strconv.Atoi(key)
	if err != nil {
		return "", errors.Errorf("connector %q is indexed by number, got %q", c.Name, key)
	}
	pins := splitPins(c.Pins)
	if idx < 0 || idx >= len(pins) {
		return "", errors.Errorf("connector %q position %d out of range [0, %d)", c.Name, idx, len(pins))
	}
	return pins[idx], nil
}

// IsConnectorRef reports whether pin refers to a connector position rather than a package pin.
func IsConnectorRef(pin string) bool {
	return strings.Contains(pin, ":")
}
