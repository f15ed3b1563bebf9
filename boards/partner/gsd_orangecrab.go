package partner

import (
	"fmt"

	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var (
	orangecrabVariants  = []string{"25F", "85F"}
	orangecrabRevisions = []string{"r0.1", "r0.2"}
)

var orangecrabIO = []platform.Resource{
	{Name: "clk48", Pins: "A9", IOStandard: "LVCMOS33"},
	{Name: "usr_btn", Pins: "J17", IOStandard: "SSTL135_I"},

	{Name: "rgb_led", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "r", Pins: "K4"},
		{Name: "g", Pins: "M3"},
		{Name: "b", Pins: "J3"},
	}},

	{Name: "usb", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "d_p", Pins: "N1"},
		{Name: "d_n", Pins: "M2"},
		{Name: "pullup", Pins: "N2"},
	}},

	{Name: "spiflash4x", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "U17"},
		{Name: "dq", Pins: "U18 T18 R18 N18"},
	}},

	{Name: "spisdcard", IOStandard: "LVCMOS33", Misc: []string{"SLEWRATE=FAST"}, Subsignals: []platform.Subsignal{
		{Name: "clk", Pins: "K1"},
		{Name: "mosi", Pins: "K2", Misc: []string{"PULLMODE=UP"}},
		{Name: "cs_n", Pins: "M1", Misc: []string{"PULLMODE=UP"}},
		{Name: "miso", Pins: "J1", Misc: []string{"PULLMODE=UP"}},
	}},
}

// Pins whose locations moved between board revisions.
var orangecrabRevisionIO = map[string][]platform.Resource{
	"r0.1": {
		{Name: "ddram", IOStandard: "SSTL135_I", Misc: []string{"SLEWRATE=FAST"}, Subsignals: []platform.Subsignal{
			{Name: "a", Pins: "A4 D2 C3 C7 D3 D4 D1 B2 C1 A2 A7 C2 C4"},
			{Name: "ba", Pins: "B6 B7 A6"},
			{Name: "ras_n", Pins: "C12"},
			{Name: "cas_n", Pins: "D13"},
			{Name: "we_n", Pins: "B12"},
			{Name: "cs_n", Pins: "A12"},
			{Name: "dm", Pins: "D16 G16"},
			{Name: "dq", Pins: "C17 D15 B17 C16 A15 B13 A17 A13 F17 F16 G15 F15 J16 C18 H16 F18"},
			{Name: "dqs_p", Pins: "B15 G18", IOStandard: "SSTL135D_I"},
			{Name: "clk_p", Pins: "J18", IOStandard: "SSTL135D_I"},
			{Name: "cke", Pins: "D18"},
			{Name: "odt", Pins: "C13"},
			{Name: "reset_n", Pins: "L18"},
		}},
	},
	"r0.2": {
		{Name: "rst_n", Pins: "V17", IOStandard: "LVCMOS33"},
		{Name: "ddram", IOStandard: "SSTL135_I", Misc: []string{"SLEWRATE=FAST"}, Subsignals: []platform.Subsignal{
			{Name: "a", Pins: "C4 D2 D3 A3 A4 D4 C3 B2 B1 D1 A7 C2 B6 C1 A2 C7"},
			{Name: "ba", Pins: "D6 B7 A6"},
			{Name: "ras_n", Pins: "C12"},
			{Name: "cas_n", Pins: "D13"},
			{Name: "we_n", Pins: "B12"},
			{Name: "cs_n", Pins: "A12"},
			{Name: "dm", Pins: "D16 G16"},
			{Name: "dq", Pins: "C17 D15 B17 C16 A15 B13 A17 A13 F17 F16 G15 F15 J16 C18 H16 F18"},
			{Name: "dqs_p", Pins: "B15 G18", IOStandard: "SSTL135D_I"},
			{Name: "clk_p", Pins: "J18", IOStandard: "SSTL135D_I"},
			{Name: "cke", Pins: "D18"},
			{Name: "odt", Pins: "C13"},
			{Name: "reset_n", Pins: "L18"},
			{Name: "vccio", Pins: "K16 D17 K15 K17 B18 C6"},
			{Name: "gnd", Pins: "L15 L16"},
		}},
	},
}

var orangecrabConnectors = []platform.Connector{
	{Name: "feather", Map: map[string]string{
		"0": "N17", "1": "M18", "5": "B10", "6": "B9", "9": "C8", "10": "B8",
		"11": "A8", "12": "H2", "13": "J2", "a0": "L4", "a1": "N3", "a2": "N4",
		"a3": "H4", "a4": "G4", "a5": "T17", "sda": "C9", "scl": "C10",
		"sck": "R17", "mosi": "N16", "miso": "N15",
	}},
}

// NewOrangeCrab returns the OrangeCrab platform. Variants are "25F" and "85F", revisions
// "r0.1" and "r0.2".
func NewOrangeCrab(opts platform.Options) (*platform.Platform, error) {
	variant, err := platform.SelectVariant(opts.Variant, "25F", orangecrabVariants)
	if err != nil {
		return nil, err
	}
	rev, err := platform.ParseRevision(opts.Revision, "r0.2", orangecrabRevisions)
	if err != nil {
		return nil, err
	}
	revIO := orangecrabRevisionIO["r0.1"]
	if platform.RevisionAtLeast(rev, "0.2") {
		revIO = orangecrabRevisionIO["r0.2"]
	}
	io := append(append([]platform.Resource(nil), orangecrabIO...), revIO...)
	return platform.New(platform.Config{
		Name:             "gsd_orangecrab",
		Family:           platform.FamilyECP5,
		Device:           fmt.Sprintf("LFE5U-%s-8MG285C", variant),
		Toolchain:        opts.ToolchainOr("trellis"),
		DefaultClkName:   "clk48",
		DefaultClkPeriod: 1e9 / 48e6,
		IO:               io,
		Connectors:       orangecrabConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "dfu-util", Config: "1209:5af0"},
		ToolchainOptions: map[string]string{"pack_args": "--compress"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "gsd_orangecrab",
		Tier:        registry.TierPartner,
		Vendor:      "gsd",
		Description: "Good Stuff Department OrangeCrab, ECP5 25F/85F in the Feather form factor with DDR3",
		URL:         "https://orangecrab-fpga.github.io/orangecrab-hardware/",
		USB:         []usb.Identifier{{Vendor: 0x1209, Product: 0x5af0}},
		Platform:    NewOrangeCrab,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 48e6,
			ResetResource:     "usr_btn",
			ResetActiveLow:    true,
			Domains: []soc.ClockDomain{
				{Name: "usb_48", Freq: 48e6},
				{Name: "usb_12", Freq: 12e6},
			},
			UART: "usb_acm",
			Peripherals: []soc.Peripheral{
				{Name: "rgb_led", Resources: []string{"rgb_led"}, Default: true},
				{Name: "spiflash", Resources: []string{"spiflash4x"}},
				{Name: "sdcard", Resources: []string{"spisdcard"}},
				{Name: "ddram", Resources: []string{"ddram"}},
			},
			DefaultVariant:  "25F",
			Variants:        orangecrabVariants,
			DefaultRevision: "r0.2",
			Revisions:       orangecrabRevisions,
		},
	})
}
