// Package soc plans a minimal system on chip for a board: clock and reset generation, a CPU
// with integrated memories, a UART and optional peripherals. The plan is written out as a
// Manifest that the gateware generator consumes next to the toolchain files.
package soc

import (
	"github.com/samber/lo"

	"go.fpgaboards.dev/boards/platform"
)

// ClockDomain is an extra CRG output. Its frequency is Freq when set, otherwise Ratio times the
// system clock.
type ClockDomain struct {
	Name  string  `json:"name" yaml:"name"`
	Freq  float64 `json:"freq,omitempty" yaml:"freq,omitempty"`
	Ratio float64 `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Phase float64 `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// Peripheral is an optional core a board can carry, with the resources it takes from the pin
// table. Every instance of each resource is requested.
type Peripheral struct {
	Name      string   `json:"name" yaml:"name"`
	Resources []string `json:"resources" yaml:"resources"`
	Default   bool     `json:"default,omitempty" yaml:"default,omitempty"`
	// Variants restricts the peripheral to some board variants. Empty means every variant.
	Variants []string `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// TargetSpec describes how a board is turned into a SoC.
type TargetSpec struct {
	DefaultSysClkFreq float64
	// ClockPrimitive overrides the family's default clock generator.
	ClockPrimitive string
	Speedgrade     int
	ResetResource  string
	ResetActiveLow bool
	Domains        []ClockDomain
	// DefaultCPU overrides the first of CPUTypes, for parts too small for it.
	DefaultCPU string
	// UART is the default UART mode: "serial", "usb_acm", "jtag_uart" or "crossover".
	UART        string
	Peripherals []Peripheral

	DefaultVariant  string
	Variants        []string
	DefaultRevision string
	Revisions       []string

	// FlashOffset is where --flash writes the bitstream.
	FlashOffset uint32
	// IntegratedROMSize overrides DefaultIntegratedROMSize, e.g. on small iCE40 parts.
	IntegratedROMSize  int
	IntegratedSRAMSize int
}

// PeripheralsFor returns the peripherals a board variant carries. An empty variant means the
// default one.
func (spec TargetSpec) PeripheralsFor(variant string) []Peripheral {
	variant = lo.CoalesceOrEmpty(variant, spec.DefaultVariant)
	return lo.Filter(spec.Peripherals, func(per Peripheral, _ int) bool {
		return len(per.Variants) == 0 || variant == "" || lo.Contains(per.Variants, variant)
	})
}

// PlatformOptions extracts what the board's platform constructor needs from opts.
func (opts Options) PlatformOptions() platform.Options {
	return platform.Options{Variant: opts.Variant, Revision: opts.Revision, Toolchain: opts.Toolchain}
}

// Default sizes of the integrated memories, in bytes.
const (
	DefaultIntegratedROMSize  = 0x20000
	DefaultIntegratedSRAMSize = 0x2000
)

// CPU types.
var CPUTypes = []string{"vexriscv", "picorv32", "serv", "femtorv", "none"}

// UART modes.
var UARTModes = []string{"serial", "usb_acm", "jtag_uart", "crossover"}

// Options are the per-build choices, usually from the command line.
type Options struct {
	SysClkFreq            float64
	Toolchain             string
	CPUType               string
	IntegratedROMSize     int
	IntegratedSRAMSize    int
	IntegratedMainRAMSize int
	UART                  string
	With                  []string
	Without               []string
	Variant               string
	Revision              string
}
