package partner

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var icebreakerIO = []platform.Resource{
	{Name: "clk12", Pins: "35", IOStandard: "LVCMOS33"},
	{Name: "user_btn_n", Pins: "10", IOStandard: "LVCMOS33"},

	{Name: "user_ledr_n", Pins: "11", IOStandard: "LVCMOS33"},
	{Name: "user_ledg_n", Pins: "37", IOStandard: "LVCMOS33"},

	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rx", Pins: "6"},
		{Name: "tx", Pins: "9", Misc: []string{"-pullup yes"}},
	}},

	{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "16"},
		{Name: "clk", Pins: "15"},
		{Name: "mosi", Pins: "14"},
		{Name: "miso", Pins: "17"},
	}},
}

var icebreakerConnectors = []platform.Connector{
	{Name: "pmod1a", Pins: "4 2 47 45 3 48 46 44"},
	{Name: "pmod1b", Pins: "43 38 34 31 42 36 32 28"},
	{Name: "pmod2", Pins: "27 25 21 19 26 23 20 18"},
}

// The snap-off section sits on PMOD2.
var icebreakerBreakOff = []platform.Resource{
	{Name: "user_btn", Number: 1, Pins: "pmod2:6", IOStandard: "LVCMOS33"},
	{Name: "user_btn", Number: 2, Pins: "pmod2:3", IOStandard: "LVCMOS33"},
	{Name: "user_btn", Number: 3, Pins: "pmod2:7", IOStandard: "LVCMOS33"},

	{Name: "user_led", Number: 0, Pins: "pmod2:0", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 1, Pins: "pmod2:1", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 2, Pins: "pmod2:2", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 3, Pins: "pmod2:4", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 4, Pins: "pmod2:5", IOStandard: "LVCMOS33"},
}

// NewIcebreaker returns the iCEBreaker platform with its break-off PMOD attached.
func NewIcebreaker(opts platform.Options) (*platform.Platform, error) {
	p, err := platform.New(platform.Config{
		Name:             "1bitsquared_icebreaker",
		Family:           platform.FamilyICE40,
		Device:           "iCE40UP5K-SG48",
		Toolchain:        opts.ToolchainOr("icestorm"),
		DefaultClkName:   "clk12",
		DefaultClkPeriod: 1e9 / 12e6,
		IO:               icebreakerIO,
		Connectors:       icebreakerConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "iceprog"},
	})
	if err != nil {
		return nil, err
	}
	if err := p.AddExtension(icebreakerBreakOff...); err != nil {
		return nil, err
	}
	return p, nil
}

func init() {
	registry.Register(registry.Registration{
		Name:        "1bitsquared_icebreaker",
		Tier:        registry.TierPartner,
		Vendor:      "1bitsquared",
		Description: "1BitSquared iCEBreaker, iCE40UP5K with three PMOD ports and a snap-off LED/button PMOD",
		URL:         "https://1bitsquared.com/products/icebreaker",
		USB:         []usb.Identifier{usb.FT2232H},
		Platform:    NewIcebreaker,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 24e6,
			ResetResource:     "user_btn_n",
			ResetActiveLow:    true,
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "status_leds", Resources: []string{"user_ledr_n", "user_ledg_n"}},
				{Name: "buttons", Resources: []string{"user_btn"}},
				{Name: "spiflash", Resources: []string{"spiflash"}},
			},
		},
	})
}
