package community

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
)

var qmtechEP4CE15IO = []platform.Resource{
	{Name: "clk50", Pins: "T2", IOStandard: "3.3-V LVTTL"},

	{Name: "user_led", Pins: "E4", IOStandard: "3.3-V LVTTL"},

	{Name: "key", Number: 0, Pins: "Y13", IOStandard: "3.3-V LVTTL"},
	{Name: "key", Number: 1, Pins: "W13", IOStandard: "3.3-V LVTTL"},

	{Name: "serial", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "j3:7"},
		{Name: "rx", Pins: "j3:8"},
	}},

	{Name: "spiflash", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "E2"},
		{Name: "clk", Pins: "K2"},
		{Name: "mosi", Pins: "D1"},
		{Name: "miso", Pins: "K1"},
	}},

	{Name: "sdram_clock", Pins: "Y6", IOStandard: "3.3-V LVTTL"},
	{Name: "sdram", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "a", Pins: "V2 V1 U2 U1 V3 V4 Y2 AA1 Y3 V5 W1 Y4 V6"},
		{Name: "ba", Pins: "Y1 W2"},
		{Name: "cs_n", Pins: "AA3"},
		{Name: "cke", Pins: "W6"},
		{Name: "ras_n", Pins: "AB3"},
		{Name: "cas_n", Pins: "AA4"},
		{Name: "we_n", Pins: "AB4"},
		{Name: "dq", Pins: "AA10 AB9 AA9 AB8 AA8 AB7 AA7 AB5 Y7 W8 Y8 V9 V10 Y10 W10 V11"},
		{Name: "dm", Pins: "AA5 W7"},
	}},
}

// The J2 and J3 headers on the core board; positions follow the silkscreen, odd pins on the
// outer row.
var qmtechEP4CE15Connectors = []platform.Connector{
	{Name: "j2", Map: map[string]string{
		"5": "R1", "6": "R2", "7": "P1", "8": "P2", "9": "N1", "10": "N2",
		"11": "M1", "12": "M2", "13": "J1", "14": "J2", "15": "H1", "16": "H2",
		"17": "F1", "18": "F2", "19": "E1", "20": "D2", "21": "C1", "22": "C2",
	}},
	{Name: "j3", Map: map[string]string{
		"5": "R22", "6": "R21", "7": "P22", "8": "P21", "9": "N22", "10": "N21",
		"11": "M22", "12": "M21", "13": "L22", "14": "L21", "15": "K22", "16": "K21",
		"17": "J22", "18": "J21", "19": "H22", "20": "H21", "21": "F22", "22": "F21",
	}},
}

// NewQMTechEP4CE15 returns the QMTech EP4CE15 core board platform.
func NewQMTechEP4CE15(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "qmtech_ep4ce15",
		Family:           platform.FamilyCycloneIV,
		Device:           "EP4CE15F23C8",
		Toolchain:        opts.ToolchainOr("quartus"),
		DefaultClkName:   "clk50",
		DefaultClkPeriod: 1e9 / 50e6,
		IO:               qmtechEP4CE15IO,
		Connectors:       qmtechEP4CE15Connectors,
		Programmer:       platform.ProgrammerSpec{Kind: "quartus_pgm"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "qmtech_ep4ce15",
		Tier:        registry.TierCommunity,
		Vendor:      "qmtech",
		Description: "QMTech Cyclone IV EP4CE15 core board with 32MB SDRAM",
		URL:         "https://github.com/ChinaQMTECH/QM_CYCLONE_IV_EP4CE15",
		Platform:    NewQMTechEP4CE15,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 50e6,
			ResetResource:     "key",
			ResetActiveLow:    true,
			Domains: []soc.ClockDomain{
				{Name: "sys_ps", Ratio: 1, Phase: 270},
			},
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "sdram", Resources: []string{"sdram_clock", "sdram"}},
				{Name: "spiflash", Resources: []string{"spiflash"}},
			},
		},
	})
}
