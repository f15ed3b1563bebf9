package partner

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var fomuVariants = []string{"pvt", "evt", "hacker"}

type fomuBoard struct {
	device string
	io     []platform.Resource
}

// The three hardware generations put the same signals on different balls, and EVT uses the
// SG48 package.
var fomuBoards = map[string]fomuBoard{
	"pvt": {
		device: "iCE40UP5K-UWG30",
		io: []platform.Resource{
			{Name: "clk48", Pins: "F4", IOStandard: "LVCMOS33"},
			{Name: "usb", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
				{Name: "d_p", Pins: "A1"},
				{Name: "d_n", Pins: "A2"},
				{Name: "pullup", Pins: "A4"},
			}},
			{Name: "rgb_led", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
				{Name: "r", Pins: "C5"},
				{Name: "g", Pins: "B5"},
				{Name: "b", Pins: "A5"},
			}},
			{Name: "user_touch_n", Number: 0, Pins: "E4", IOStandard: "LVCMOS33"},
			{Name: "user_touch_n", Number: 1, Pins: "D5", IOStandard: "LVCMOS33"},
			{Name: "user_touch_n", Number: 2, Pins: "E5", IOStandard: "LVCMOS33"},
			{Name: "user_touch_n", Number: 3, Pins: "F5", IOStandard: "LVCMOS33"},
			{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
				{Name: "cs_n", Pins: "C1"},
				{Name: "clk", Pins: "D1"},
				{Name: "mosi", Pins: "F1"},
				{Name: "miso", Pins: "E1"},
			}},
		},
	},
	"hacker": {
		device: "iCE40UP5K-UWG30",
		io: []platform.Resource{
			{Name: "clk48", Pins: "F5", IOStandard: "LVCMOS33"},
			{Name: "usb", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
				{Name: "d_p", Pins: "A4"},
				{Name: "d_n", Pins: "A2"},
				{Name: "pullup", Pins: "D5"},
			}},
			{Name: "rgb_led", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
				{Name: "r", Pins: "C5"},
				{Name: "g", Pins: "A5"},
				{Name: "b", Pins: "B5"},
			}},
			{Name: "user_touch_n", Number: 0, Pins: "F4", IOStandard: "LVCMOS33"},
			{Name: "user_touch_n", Number: 1, Pins: "E5", IOStandard: "LVCMOS33"},
			{Name: "user_touch_n", Number: 2, Pins: "E4", IOStandard: "LVCMOS33"},
			{Name: "user_touch_n", Number: 3, Pins: "F2", IOStandard: "LVCMOS33"},
			{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
				{Name: "cs_n", Pins: "C1"},
				{Name: "clk", Pins: "D1"},
				{Name: "mosi", Pins: "F1"},
				{Name: "miso", Pins: "E1"},
			}},
		},
	},
	"evt": {
		device: "iCE40UP5K-SG48",
		io: []platform.Resource{
			{Name: "clk48", Pins: "44", IOStandard: "LVCMOS33"},
			{Name: "usb", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
				{Name: "d_p", Pins: "34"},
				{Name: "d_n", Pins: "37"},
				{Name: "pullup", Pins: "35"},
				{Name: "pulldown", Pins: "36"},
			}},
			{Name: "rgb_led", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
				{Name: "r", Pins: "40"},
				{Name: "g", Pins: "39"},
				{Name: "b", Pins: "41"},
			}},
			{Name: "user_btn_n", Number: 0, Pins: "42", IOStandard: "LVCMOS33"},
			{Name: "user_btn_n", Number: 1, Pins: "38", IOStandard: "LVCMOS33"},
			{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
				{Name: "cs_n", Pins: "16"},
				{Name: "clk", Pins: "15"},
				{Name: "mosi", Pins: "14"},
				{Name: "miso", Pins: "17"},
			}},
		},
	},
}

// NewFomu returns the Fomu platform. Variants are "pvt" (production), "evt" and "hacker".
func NewFomu(opts platform.Options) (*platform.Platform, error) {
	variant, err := platform.SelectVariant(opts.Variant, "pvt", fomuVariants)
	if err != nil {
		return nil, err
	}
	board := fomuBoards[variant]
	return platform.New(platform.Config{
		Name:             "kosagi_fomu",
		Family:           platform.FamilyICE40,
		Device:           board.device,
		Toolchain:        opts.ToolchainOr("icestorm"),
		DefaultClkName:   "clk48",
		DefaultClkPeriod: 1e9 / 48e6,
		IO:               board.io,
		Programmer:       platform.ProgrammerSpec{Kind: "dfu-util", Config: "1209:5bf0"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "kosagi_fomu",
		Tier:        registry.TierPartner,
		Vendor:      "kosagi",
		Description: "Kosagi Fomu, an iCE40UP5K that fits inside a USB port",
		URL:         "https://tomu.im/fomu.html",
		USB:         []usb.Identifier{{Vendor: 0x1209, Product: 0x5bf0}},
		Platform:    NewFomu,
		Target: soc.TargetSpec{
			DefaultSysClkFreq:  48e6,
			UART:               "usb_acm",
			IntegratedROMSize:  0x2000,
			IntegratedSRAMSize: 0x1000,
			Peripherals: []soc.Peripheral{
				{Name: "rgb_led", Resources: []string{"rgb_led"}, Default: true},
				{Name: "touch", Resources: []string{"user_touch_n"}, Variants: []string{"pvt", "hacker"}},
				{Name: "buttons", Resources: []string{"user_btn_n"}, Variants: []string{"evt"}},
				{Name: "spiflash", Resources: []string{"spiflash"}},
			},
			DefaultVariant: "pvt",
			Variants:       fomuVariants,
		},
	})
}
