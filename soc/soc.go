package soc

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"go.fpgaboards.dev/boards/clock"
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/utils"
)

// Domain is a planned clock domain.
type Domain struct {
	Name     string  `json:"name" yaml:"name"`
	Freq     float64 `json:"freq" yaml:"freq"`
	Achieved float64 `json:"achieved" yaml:"achieved"`
	Phase    float64 `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// Reset describes the CRG reset: the board reset input, if any, is combined with the PLL lock
// and synchronized into every domain.
type Reset struct {
	Net          string   `json:"net,omitempty" yaml:"net,omitempty"`
	ActiveLow    bool     `json:"active_low,omitempty" yaml:"active_low,omitempty"`
	OnPLLLock    bool     `json:"on_pll_lock" yaml:"on_pll_lock"`
	Synchronized []string `json:"synchronized" yaml:"synchronized"`
}

// CRG is the clock and reset generator plan.
type CRG struct {
	InputNet  string        `json:"input_net" yaml:"input_net"`
	InputFreq float64       `json:"input_freq" yaml:"input_freq"`
	PLL       *clock.Config `json:"pll,omitempty" yaml:"pll,omitempty"`
	Domains   []Domain      `json:"domains" yaml:"domains"`
	Reset     Reset         `json:"reset" yaml:"reset"`
}

// Memory holds the integrated memory sizes in bytes.
type Memory struct {
	ROM     int `json:"rom" yaml:"rom"`
	SRAM    int `json:"sram" yaml:"sram"`
	MainRAM int `json:"main_ram,omitempty" yaml:"main_ram,omitempty"`
}

// UART is the planned console.
type UART struct {
	Mode  string   `json:"mode" yaml:"mode"`
	Ports []string `json:"ports,omitempty" yaml:"ports,omitempty"`
}

// SignalRef is a requested signal as the gateware generator sees it.
type SignalRef struct {
	Resource string   `json:"resource" yaml:"resource"`
	Port     string   `json:"port" yaml:"port"`
	Sites    []string `json:"sites" yaml:"sites"`
}

// PeripheralPlan is an enabled peripheral and the signals it owns.
type PeripheralPlan struct {
	Name    string      `json:"name" yaml:"name"`
	Signals []SignalRef `json:"signals" yaml:"signals"`
}

// Manifest is the complete SoC plan for one build.
type Manifest struct {
	BuildID     string               `json:"build_id" yaml:"build_id"`
	Board       string               `json:"board" yaml:"board"`
	Device      string               `json:"device" yaml:"device"`
	Family      platform.Family      `json:"family" yaml:"family"`
	Toolchain   string               `json:"toolchain" yaml:"toolchain"`
	Variant     string               `json:"variant,omitempty" yaml:"variant,omitempty"`
	Revision    string               `json:"revision,omitempty" yaml:"revision,omitempty"`
	SysClkFreq  float64              `json:"sys_clk_freq" yaml:"sys_clk_freq"`
	CPUType     string               `json:"cpu_type" yaml:"cpu_type"`
	Memory      Memory               `json:"memory" yaml:"memory"`
	CRG         CRG                  `json:"crg" yaml:"crg"`
	UART        UART                 `json:"uart" yaml:"uart"`
	Peripherals []PeripheralPlan     `json:"peripherals,omitempty" yaml:"peripherals,omitempty"`
	Constraints platform.Constraints `json:"constraints" yaml:"constraints"`
}

// YAML renders the manifest as YAML.
func (m *Manifest) YAML() ([]byte, error) {
	out, err := yaml.Marshal(m)
	return out, errors.Wrap(err, "encoding manifest")
}

// JSON renders the manifest as indented JSON.
func (m *Manifest) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(m, "", "  ")
	return out, errors.Wrap(err, "encoding manifest")
}

// ParseManifest reads a manifest written by YAML. JSON being a subset of YAML, it reads those
// too.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "decoding manifest")
	}
	return &m, nil
}

// A SoC is a planned system on chip bound to its platform.
type SoC struct {
	Platform *platform.Platform
	Spec     TargetSpec
	Options  Options
	Manifest *Manifest
}

func signalRef(sig *platform.Signal) SignalRef {
	return SignalRef{
		Resource: sig.Resource.ID(),
		Port:     sig.Port,
		Sites:    lo.Map(sig.Pins, func(pin platform.Pin, _ int) string { return pin.Site }),
	}
}

// NewBaseSoC requests the clock, reset, UART and peripheral resources of p and plans the SoC.
func NewBaseSoC(p *platform.Platform, spec TargetSpec, opts Options) (*SoC, error) {
	sysClk := opts.SysClkFreq
	if sysClk == 0 {
		sysClk = spec.DefaultSysClkFreq
	}
	if sysClk <= 0 {
		return nil, errors.Errorf("%s: no system clock frequency", p.Name)
	}
	cpu := lo.CoalesceOrEmpty(opts.CPUType, spec.DefaultCPU, CPUTypes[0])
	if !lo.Contains(CPUTypes, cpu) {
		return nil, utils.NewUnsupportedOptionError("cpu type", cpu, CPUTypes)
	}
	toolchainName := opts.Toolchain
	if toolchainName == "" {
		toolchainName = p.Toolchain
	}

	m := &Manifest{
		BuildID:    uuid.New().String(),
		Board:      p.Name,
		Device:     p.Device,
		Family:     p.Family,
		Toolchain:  toolchainName,
		Variant:    opts.Variant,
		Revision:   opts.Revision,
		SysClkFreq: sysClk,
		CPUType:    cpu,
	}
	if m.Variant == "" {
		m.Variant = spec.DefaultVariant
	}
	if m.Revision == "" {
		m.Revision = spec.DefaultRevision
	}

	crg, err := planCRG(p, spec, sysClk)
	if err != nil {
		return nil, err
	}
	m.CRG = *crg

	if cpu != "none" {
		m.Memory = planMemory(spec, opts)
	}

	uart, err := planUART(p, spec, opts, cpu)
	if err != nil {
		return nil, err
	}
	m.UART = *uart

	if m.Peripherals, err = planPeripherals(p, spec, opts); err != nil {
		return nil, err
	}
	m.Constraints = p.Finalize()
	return &SoC{Platform: p, Spec: spec, Options: opts, Manifest: m}, nil
}

func planCRG(p *platform.Platform, spec TargetSpec, sysClk float64) (*CRG, error) {
	if p.DefaultClkName == "" {
		return nil, errors.Errorf("%s: board has no default clock", p.Name)
	}
	clk, err := p.Request(p.DefaultClkName, 0)
	if err != nil {
		return nil, errors.Wrap(err, "requesting the input clock")
	}
	crg := &CRG{
		InputNet:  clk.Pins[0].Net,
		InputFreq: math.Round(1e9 / p.DefaultClkPeriod),
	}

	domains := []ClockDomain{{Name: "sys", Freq: sysClk}}
	for _, d := range spec.Domains {
		if d.Freq == 0 {
			d.Freq = d.Ratio * sysClk
		}
		domains = append(domains, d)
	}

	if len(domains) == 1 && sysClk == crg.InputFreq {
		crg.Domains = []Domain{{Name: "sys", Freq: sysClk, Achieved: sysClk}}
	} else {
		primitive := spec.ClockPrimitive
		if primitive == "" {
			if primitive, err = clock.DefaultPrimitive(p.Family); err != nil {
				return nil, err
			}
		}
		gen, err := clock.New(primitive, spec.Speedgrade)
		if err != nil {
			return nil, err
		}
		if err := gen.Register(crg.InputFreq); err != nil {
			return nil, err
		}
		for _, d := range domains {
			if err := gen.AddOutput(d.Name, d.Freq, 0, d.Phase); err != nil {
				return nil, err
			}
		}
		if crg.PLL, err = gen.Compute(); err != nil {
			return nil, err
		}
		for _, out := range crg.PLL.Outputs {
			crg.Domains = append(crg.Domains, Domain{Name: out.Name, Freq: out.Freq, Achieved: out.Achieved, Phase: out.Phase})
		}
		crg.Reset.OnPLLLock = true
	}

	if spec.ResetResource != "" {
		rst, err := p.Request(spec.ResetResource, 0)
		if err != nil {
			return nil, errors.Wrap(err, "requesting the reset input")
		}
		crg.Reset.Net = rst.Pins[0].Net
		crg.Reset.ActiveLow = spec.ResetActiveLow
	}
	crg.Reset.Synchronized = lo.Map(crg.Domains, func(d Domain, _ int) string { return d.Name })
	return crg, nil
}

func planMemory(spec TargetSpec, opts Options) Memory {
	mem := Memory{
		ROM:     lo.CoalesceOrEmpty(opts.IntegratedROMSize, spec.IntegratedROMSize, DefaultIntegratedROMSize),
		SRAM:    lo.CoalesceOrEmpty(opts.IntegratedSRAMSize, spec.IntegratedSRAMSize, DefaultIntegratedSRAMSize),
		MainRAM: opts.IntegratedMainRAMSize,
	}
	return mem
}

func planUART(p *platform.Platform, spec TargetSpec, opts Options, cpu string) (*UART, error) {
	mode := lo.CoalesceOrEmpty(opts.UART, spec.UART, "serial")
	if !lo.Contains(UARTModes, mode) {
		return nil, utils.NewUnsupportedOptionError("uart", mode, UARTModes)
	}
	uart := &UART{Mode: mode}
	if cpu == "none" {
		return uart, nil
	}
	var resource string
	switch mode {
	case "serial":
		resource = "serial"
	case "usb_acm":
		resource = "usb"
	default:
		return uart, nil
	}
	sig, err := p.RequestNext(resource)
	if err != nil {
		return nil, errors.Wrapf(err, "uart %s", mode)
	}
	uart.Ports = lo.Uniq(lo.Map(sig.Pins, func(pin platform.Pin, _ int) string { return pin.Net }))
	return uart, nil
}

func planPeripherals(p *platform.Platform, spec TargetSpec, opts Options) ([]PeripheralPlan, error) {
	available := spec.PeripheralsFor(opts.Variant)
	names := lo.Map(available, func(per Peripheral, _ int) string { return per.Name })
	for _, w := range append(append([]string(nil), opts.With...), opts.Without...) {
		if lo.Contains(names, w) {
			continue
		}
		if per, ok := lo.Find(spec.Peripherals, func(per Peripheral) bool { return per.Name == w }); ok {
			return nil, errors.Errorf("peripheral %s is not on the %s variant, only on %s",
				w, lo.CoalesceOrEmpty(opts.Variant, spec.DefaultVariant), strings.Join(per.Variants, ", "))
		}
		return nil, utils.NewUnsupportedOptionError("peripheral", w, names)
	}
	var plans []PeripheralPlan
	for _, periph := range available {
		enabled := (periph.Default || lo.Contains(opts.With, periph.Name)) && !lo.Contains(opts.Without, periph.Name)
		if !enabled {
			continue
		}
		plan := PeripheralPlan{Name: periph.Name}
		for _, res := range periph.Resources {
			sigs, err := p.RequestAll(res)
			if err != nil {
				return nil, errors.Wrapf(err, "peripheral %s", periph.Name)
			}
			for _, sig := range sigs {
				plan.Signals = append(plan.Signals, signalRef(sig))
			}
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
