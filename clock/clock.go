// Package clock computes PLL/MMCM configurations for the clock generators found in the
// supported FPGA families. Each generator takes one input clock and a list of requested outputs
// and searches the primitive's divider/multiplier space for a configuration that keeps every
// intermediate frequency within the silicon limits and every output within its margin.
package clock

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/utils"
)

// DefaultMargin is the relative frequency error accepted when an output does not specify one.
const DefaultMargin = 1e-2

// Output is a requested generator output.
type Output struct {
	Name   string  `json:"name" yaml:"name"`
	Freq   float64 `json:"freq" yaml:"freq"`
	Margin float64 `json:"margin" yaml:"margin"`
	Phase  float64 `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// OutputConfig is a computed generator output.
type OutputConfig struct {
	Name     string  `json:"name" yaml:"name"`
	Freq     float64 `json:"freq" yaml:"freq"`
	Achieved float64 `json:"achieved" yaml:"achieved"`
	Divider  int     `json:"divider" yaml:"divider"`
	Phase    float64 `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// Config is a computed generator configuration. Params holds the primitive's integer
// parameters under their vendor names and Attrs its string attributes.
type Config struct {
	Primitive string            `json:"primitive" yaml:"primitive"`
	InputFreq float64           `json:"input_freq" yaml:"input_freq"`
	VCOFreq   float64           `json:"vco_freq" yaml:"vco_freq"`
	Params    map[string]int    `json:"params" yaml:"params"`
	Attrs     map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Outputs   []OutputConfig    `json:"outputs" yaml:"outputs"`
}

// Output returns the computed output with the given name.
func (c *Config) Output(name string) (OutputConfig, bool) {
	for _, out := range c.Outputs {
		if out.Name == name {
			return out, true
		}
	}
	return OutputConfig{}, false
}

// A Generator is a clock generator primitive.
type Generator interface {
	Primitive() string
	Register(inputHz float64) error
	AddOutput(name string, hz, margin, phase float64) error
	Compute() (*Config, error)
}

// A NoConfigError is returned when no divider combination satisfies every output.
type NoConfigError struct {
	Primitive string
	Input     float64
	Outputs   []Output
}

func (e *NoConfigError) Error() string {
	outs := make([]string, 0, len(e.Outputs))
	for _, out := range e.Outputs {
		outs = append(outs, fmt.Sprintf("%s=%s", out.Name, utils.FormatFrequency(out.Freq)))
	}
	return fmt.Sprintf("%s: no configuration found for %s from %s input",
		e.Primitive, strings.Join(outs, ", "), utils.FormatFrequency(e.Input))
}

type freqRange struct {
	min, max float64
}

func (r freqRange) contains(f float64) bool {
	return f >= r.min && f <= r.max
}

type intRange struct {
	min, max int
}

// base holds what every generator shares: the input, the outputs and their bookkeeping.
type base struct {
	primitive     string
	input         float64
	inputRange    freqRange
	outputs       []Output
	maxOutputs    int
	supportsPhase bool
}

func (b *base) Primitive() string {
	return b.primitive
}

func (b *base) Register(inputHz float64) error {
	if b.input != 0 {
		return errors.Errorf("%s: input clock already registered", b.primitive)
	}
	if !b.inputRange.contains(inputHz) {
		return errors.Errorf("%s: input clock %s outside of [%s, %s]", b.primitive, utils.FormatFrequency(inputHz),
			utils.FormatFrequency(b.inputRange.min), utils.FormatFrequency(b.inputRange.max))
	}
	b.input = inputHz
	return nil
}

func (b *base) AddOutput(name string, hz, margin, phase float64) error {
	if len(b.outputs) >= b.maxOutputs {
		return errors.Errorf("%s: at most %d outputs supported", b.primitive, b.maxOutputs)
	}
	if hz <= 0 {
		return errors.Errorf("%s: output %q frequency must be positive", b.primitive, name)
	}
	if phase != 0 && !b.supportsPhase {
		return errors.Errorf("%s: output %q phase shift not supported", b.primitive, name)
	}
	for _, out := range b.outputs {
		if out.Name == name {
			return errors.Errorf("%s: duplicate output %q", b.primitive, name)
		}
	}
	if margin <= 0 {
		margin = DefaultMargin
	}
	b.outputs = append(b.outputs, Output{Name: name, Freq: hz, Margin: margin, Phase: phase})
	return nil
}

func (b *base) ready() error {
	if b.input == 0 {
		return errors.Errorf("%s: no input clock registered", b.primitive)
	}
	if len(b.outputs) == 0 {
		return errors.Errorf("%s: no outputs requested", b.primitive)
	}
	return nil
}

func (b *base) noConfig() error {
	return &NoConfigError{Primitive: b.primitive, Input: b.input, Outputs: append([]Output(nil), b.outputs...)}
}

// matchOutputs picks, for every output, the first divider in divs landing within the output's
// margin. It reports false as soon as one output cannot be matched.
func (b *base) matchOutputs(vco float64, divs []int) ([]OutputConfig, bool) {
	configs := make([]OutputConfig, 0, len(b.outputs))
	for _, out := range b.outputs {
		found := false
		for _, d := range divs {
			f := vco / float64(d)
			if math.Abs(f-out.Freq) <= out.Freq*out.Margin {
				configs = append(configs, OutputConfig{
					Name: out.Name, Freq: out.Freq, Achieved: f, Divider: d, Phase: out.Phase,
				})
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return configs, true
}

func rangeInts(r intRange) []int {
	out := make([]int, 0, r.max-r.min+1)
	for i := r.min; i <= r.max; i++ {
		out = append(out, i)
	}
	return out
}

// New returns the generator for a primitive name such as "S7PLL" or "ECP5PLL". Speedgrade only
// matters to Xilinx primitives.
func New(primitive string, speedgrade int) (Generator, error) {
	switch strings.ToUpper(primitive) {
	case "S7MMCM":
		return NewS7MMCM(speedgrade), nil
	case "S7PLL":
		return NewS7PLL(speedgrade), nil
	case "ECP5PLL":
		return NewECP5PLL(), nil
	case "ICE40PLL":
		return NewICE40PLL(), nil
	case "CYCLONEIVPLL":
		return NewCycloneIVPLL(), nil
	case "MAX10PLL":
		return NewMAX10PLL(), nil
	case "GW1NPLL":
		return NewGW1NPLL(), nil
	}
	return nil, utils.NewUnsupportedOptionError("clock generator", primitive, Primitives())
}

// Primitives lists the names accepted by New.
func Primitives() []string {
	names := []string{"S7MMCM", "S7PLL", "ECP5PLL", "ICE40PLL", "CYCLONEIVPLL", "MAX10PLL", "GW1NPLL"}
	sort.Strings(names)
	return names
}

// DefaultPrimitive is the generator used for a family when a target does not pick one.
func DefaultPrimitive(family platform.Family) (string, error) {
	switch family {
	case platform.FamilyArtix7:
		return "S7PLL", nil
	case platform.FamilyECP5:
		return "ECP5PLL", nil
	case platform.FamilyICE40:
		return "ICE40PLL", nil
	case platform.FamilyCycloneIV:
		return "CYCLONEIVPLL", nil
	case platform.FamilyMAX10:
		return "MAX10PLL", nil
	case platform.FamilyGW1N:
		return "GW1NPLL", nil
	}
	return "", errors.Errorf("no clock generator for family %q", family)
}

// ForFamily returns the default generator for a device family.
func ForFamily(family platform.Family, speedgrade int) (Generator, error) {
	primitive, err := DefaultPrimitive(family)
	if err != nil {
		return nil, err
	}
	return New(primitive, speedgrade)
}
