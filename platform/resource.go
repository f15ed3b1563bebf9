package platform

import (
	"fmt"
	"strings"
)

// Subsignal is one named group of pins inside a Resource, e.g. the "tx" line of a serial port.
// IOStandard and Misc default to the enclosing resource's values when empty.
type Subsignal struct {
	Name       string   `json:"name" yaml:"name"`
	Pins       string   `json:"pins" yaml:"pins"`
	IOStandard string   `json:"io_standard,omitempty" yaml:"io_standard,omitempty"`
	Misc       []string `json:"misc,omitempty" yaml:"misc,omitempty"`
}

// Resource is one pin table entry: a logical signal, its instance index, and either a list of
// pins or a set of subsignals. Pins are space separated physical locators ("E3") or connector
// references ("pmoda:3").
type Resource struct {
	Name       string      `json:"name" yaml:"name"`
	Number     int         `json:"number" yaml:"number"`
	Pins       string      `json:"pins,omitempty" yaml:"pins,omitempty"`
	IOStandard string      `json:"io_standard,omitempty" yaml:"io_standard,omitempty"`
	Misc       []string    `json:"misc,omitempty" yaml:"misc,omitempty"`
	Subsignals []Subsignal `json:"subsignals,omitempty" yaml:"subsignals,omitempty"`
}

// ID returns "<name>:<number>".
func (r Resource) ID() string {
	return fmt.Sprintf("%s:%d", r.Name, r.Number)
}

// Width is the total number of pins the resource drives.
func (r Resource) Width() int {
	if len(r.Subsignals) == 0 {
		return len(splitPins(r.Pins))
	}
	width := 0
	for _, sub := range r.Subsignals {
		width += len(splitPins(sub.Pins))
	}
	return width
}

func splitPins(pins string) []string {
	return strings.Fields(pins)
}

func inheritMisc(own, parent []string) []string {
	if len(own) != 0 {
		return own
	}
	return parent
}

func inheritIOStandard(own, parent string) string {
	if own != "" {
		return own
	}
	return parent
}
