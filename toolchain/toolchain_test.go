package toolchain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.fpgaboards.dev/boards/logging"
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/rexec"
)

func ice40Platform(t *testing.T) *platform.Platform {
	t.Helper()
	p, err := platform.New(platform.Config{
		Name:             "stick",
		Family:           platform.FamilyICE40,
		Device:           "iCE40HX1K-TQ144",
		Toolchain:        "icestorm",
		DefaultClkName:   "clk12",
		DefaultClkPeriod: 1e9 / 12e6,
		IO: []platform.Resource{
			{Name: "clk12", Pins: "21", IOStandard: "LVCMOS33"},
			{Name: "user_led", Number: 0, Pins: "99", IOStandard: "LVCMOS33"},
			{Name: "user_led", Number: 1, Pins: "98", IOStandard: "LVCMOS33"},
			{
				Name:       "serial",
				IOStandard: "LVCMOS33",
				Subsignals: []platform.Subsignal{
					{Name: "rx", Pins: "9"},
					{Name: "tx", Pins: "8", Misc: []string{"-pullup yes"}},
				},
			},
		},
		AdditionalCommands: []string{"cp {build_name}.bin out.bin"},
	})
	test.That(t, err, test.ShouldBeNil)
	return p
}

func fileByName(files []File, name string) (File, bool) {
	for _, f := range files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}

func TestWriters(t *testing.T) {
	cons := platform.Constraints{
		Pins: []platform.Pin{
			{Net: "clk100", Resource: "clk100:0", Site: "E3", IOStandard: "LVCMOS33"},
			{Net: "user_btn[1]", Resource: "user_btn:0", Index: 1, Site: "C9", IOStandard: "LVCMOS33", Misc: []string{"PULLUP=TRUE"}},
		},
		Clocks: []platform.PeriodConstraint{{Net: "clk100", PeriodNS: 10}},
	}

	for _, tc := range []struct {
		name   string
		writer ConstraintWriter
		want   []string
	}{
		{"xdc", WriteXDC, []string{
			"set_property LOC E3 [get_ports {clk100}]",
			"set_property IOSTANDARD LVCMOS33 [get_ports {user_btn[1]}]",
			"set_property PULLUP TRUE [get_ports {user_btn[1]}]",
			"create_clock -name clk100 -period 10.000 [get_ports {clk100}]",
		}},
		{"pcf", WritePCF, []string{
			"set_io clk100 E3",
			"set_io PULLUP=TRUE user_btn[1] C9",
			"set_frequency clk100 100.000",
		}},
		{"lpf", WriteLPF, []string{
			`LOCATE COMP "clk100" SITE "E3";`,
			`IOBUF PORT "user_btn[1]" IO_TYPE=LVCMOS33 PULLUP=TRUE;`,
			`FREQUENCY PORT "clk100" 100.000 MHz;`,
		}},
		{"qsf", WriteQSF, []string{
			`set_location_assignment -comment "clk100:0" -to clk100 Pin_E3`,
			`set_instance_assignment -name io_standard "LVCMOS33" -to clk100`,
			`set_instance_assignment -name PULLUP "TRUE" -to user_btn[1]`,
		}},
		{"sdc", WriteSDC, []string{
			"create_clock -name clk100 -period 10.000 [get_ports {clk100}]",
		}},
		{"cst", WriteCST, []string{
			`IO_LOC "clk100" E3;`,
			`IO_PORT "user_btn[1]" IO_TYPE=LVCMOS33 PULLUP=TRUE;`,
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			test.That(t, tc.writer(&buf, cons), test.ShouldBeNil)
			for _, line := range tc.want {
				test.That(t, buf.String(), test.ShouldContainSubstring, line+"\n")
			}
		})
	}

	test.That(t, clockName("clk[2]"), test.ShouldEqual, "clk_2")
}

func TestDeviceArgs(t *testing.T) {
	args, err := ice40NextpnrArgs("iCE40UP5K-SG48")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, args, test.ShouldEqual, "--up5k --package sg48")
	_, err = ice40NextpnrArgs("LFE5U-25F-6BG381C")
	test.That(t, err, test.ShouldNotBeNil)

	args, err = ecp5NextpnrArgs("LFE5U-25F-6BG381C")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, args, test.ShouldEqual, "--25k --package CABGA381 --speed 6")
	args, err = ecp5NextpnrArgs("LFE5UM5G-85F-8BG381C")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, args, test.ShouldEqual, "--um5g-85k --package CABGA381 --speed 8")
	_, err = ecp5NextpnrArgs("LFE5U-25F-6XX999C")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestKinds(t *testing.T) {
	k, err := ParseKind("Trellis")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, k, test.ShouldEqual, Trellis)
	_, err = ParseKind("ise")
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, Supported(platform.FamilyECP5), test.ShouldResemble, []Kind{Diamond, Trellis})
	test.That(t, Check(Vivado, platform.FamilyICE40), test.ShouldNotBeNil)
	test.That(t, Check(Quartus, platform.FamilyMAX10), test.ShouldBeNil)
	test.That(t, BitstreamFile(Diamond, "top"), test.ShouldEqual, "impl/top_impl.bit")
}

func TestConstraintFormats(t *testing.T) {
	for _, name := range Kinds() {
		format := PinFormat(Kind(name))
		test.That(t, format, test.ShouldNotBeEmpty)
		_, err := ConstraintWriterFor(format)
		test.That(t, err, test.ShouldBeNil)
	}
	_, err := ConstraintWriterFor("XDC")
	test.That(t, err, test.ShouldBeNil)
	_, err = ConstraintWriterFor("ucf")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cst, lpf, pcf, qsf, sdc, xdc")
}

func TestRender(t *testing.T) {
	p := ice40Platform(t)
	_, err := p.Request("clk12", 0)
	test.That(t, err, test.ShouldBeNil)
	_, err = p.RequestAll("user_led")
	test.That(t, err, test.ShouldBeNil)
	_, err = p.Request("serial", 0)
	test.That(t, err, test.ShouldBeNil)

	files, err := Render(p, IceStorm, Options{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, files, test.ShouldHaveLength, 2)

	pcf, ok := fileByName(files, "stick.pcf")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, string(pcf.Content), test.ShouldEqual, strings.Join([]string{
		"set_io clk12 21",
		"set_io user_led0 99",
		"set_io user_led1 98",
		"set_io serial_rx 9",
		"set_io -pullup yes serial_tx 8",
		"set_frequency clk12 12.000",
	}, "\n")+"\n")

	sh, ok := fileByName(files, "build_stick.sh")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, sh.Executable, test.ShouldBeTrue)
	test.That(t, string(sh.Content), test.ShouldContainSubstring, "read_verilog stick.v; synth_ice40 -top stick")
	test.That(t, string(sh.Content), test.ShouldContainSubstring, "--pcf stick.pcf --asc stick.asc --seed 1 --hx1k --package tq144\n")
	test.That(t, string(sh.Content), test.ShouldContainSubstring, "icepack -s stick.asc stick.bin\ncp stick.bin out.bin\n")

	_, err = Render(p, Vivado, Options{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRenderVendorProjects(t *testing.T) {
	t.Run("vivado", func(t *testing.T) {
		p, err := platform.New(platform.Config{
			Name:              "arty",
			Family:            platform.FamilyArtix7,
			Device:            "xc7a35ticsg324-1L",
			Toolchain:         "vivado",
			IO:                []platform.Resource{{Name: "clk100", Pins: "E3", IOStandard: "LVCMOS33"}},
			DefaultClkName:    "clk100",
			DefaultClkPeriod:  10,
			BitstreamCommands: []string{"set_property BITSTREAM.CONFIG.SPI_BUSWIDTH 4 [current_design]"},
		})
		test.That(t, err, test.ShouldBeNil)
		_, err = p.Request("clk100", 0)
		test.That(t, err, test.ShouldBeNil)
		files, err := Render(p, Vivado, Options{BuildName: "top", Sources: []string{"top.v", "cpu.v"}})
		test.That(t, err, test.ShouldBeNil)
		tcl, ok := fileByName(files, "build_top.tcl")
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, string(tcl.Content), test.ShouldContainSubstring, "create_project -force -name top -part xc7a35ticsg324-1L\n")
		test.That(t, string(tcl.Content), test.ShouldContainSubstring, "read_verilog {top.v}\nread_verilog {cpu.v}\nread_xdc top.xdc\n")
		test.That(t, string(tcl.Content), test.ShouldContainSubstring,
			"SPI_BUSWIDTH 4 [current_design]\nwrite_bitstream -force top.bit\n")
		xdc, ok := fileByName(files, "top.xdc")
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, string(xdc.Content), test.ShouldContainSubstring, "create_clock -name clk100 -period 10.000")
	})

	t.Run("quartus", func(t *testing.T) {
		p, err := platform.New(platform.Config{
			Name:             "de10",
			Family:           platform.FamilyMAX10,
			Device:           "10M50DAF484C7G",
			Toolchain:        "quartus",
			IO:               []platform.Resource{{Name: "clk50", Pins: "P11", IOStandard: "3.3-V LVTTL"}},
			DefaultClkName:   "clk50",
			DefaultClkPeriod: 20,
		})
		test.That(t, err, test.ShouldBeNil)
		_, err = p.Request("clk50", 0)
		test.That(t, err, test.ShouldBeNil)
		files, err := Render(p, Quartus, Options{})
		test.That(t, err, test.ShouldBeNil)
		qsf, ok := fileByName(files, "de10.qsf")
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, string(qsf.Content), test.ShouldStartWith, "set_global_assignment -name FAMILY \"MAX 10\"\n")
		test.That(t, string(qsf.Content), test.ShouldEndWith,
			"set_location_assignment -comment \"clk50:0\" -to clk50 Pin_P11\n"+
				"set_instance_assignment -name io_standard \"3.3-V LVTTL\" -to clk50\n")
		_, ok = fileByName(files, "de10.sdc")
		test.That(t, ok, test.ShouldBeTrue)
	})

	t.Run("gowin needs family", func(t *testing.T) {
		conf := platform.Config{
			Name:      "nano",
			Family:    platform.FamilyGW1N,
			Device:    "GW1NR-LV9QN88PC6/I5",
			Toolchain: "gowin",
			IO:        []platform.Resource{{Name: "clk27", Pins: "52", IOStandard: "LVCMOS33"}},
		}
		p, err := platform.New(conf)
		test.That(t, err, test.ShouldBeNil)
		_, err = Render(p, Gowin, Options{})
		test.That(t, err, test.ShouldNotBeNil)

		conf.ToolchainOptions = map[string]string{"gowin_family": "GW1N-9C"}
		p, err = platform.New(conf)
		test.That(t, err, test.ShouldBeNil)
		files, err := Render(p, Gowin, Options{})
		test.That(t, err, test.ShouldBeNil)
		sh, _ := fileByName(files, "build_nano.sh")
		test.That(t, string(sh.Content), test.ShouldContainSubstring, "--vopt family=GW1N-9C --vopt cst=nano.cst")
		test.That(t, string(sh.Content), test.ShouldContainSubstring, "gowin_pack -d GW1N-9C -o nano.fs nano_pnr.json")
	})
}

func TestBuilder(t *testing.T) {
	logger := logging.NewTestLogger(t)
	p := ice40Platform(t)
	_, err := p.Request("clk12", 0)
	test.That(t, err, test.ShouldBeNil)

	runner := &rexec.Recorder{}
	b, err := NewBuilder(p, "", Options{}, runner, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Kind(), test.ShouldEqual, IceStorm)

	dir := filepath.Join(t.TempDir(), "build")
	res, err := b.Build(context.Background(), dir, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Ran, test.ShouldBeFalse)
	test.That(t, res.Bitstream, test.ShouldEqual, filepath.Join(dir, "stick.bin"))
	test.That(t, res.Files, test.ShouldHaveLength, 2)
	test.That(t, runner.Calls, test.ShouldBeEmpty)
	content, err := os.ReadFile(filepath.Join(dir, "stick.pcf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(content), test.ShouldContainSubstring, "set_io clk12 21")

	res, err = b.Build(context.Background(), dir, true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Ran, test.ShouldBeTrue)
	test.That(t, runner.Calls, test.ShouldResemble, []rexec.ProcessConfig{
		{Name: "sh", Args: []string{"build_stick.sh"}, CWD: dir},
	})

	runner.RunFunc = func(ctx context.Context, config rexec.ProcessConfig) error { return errors.New("nextpnr crashed") }
	_, err = b.Build(context.Background(), dir, true)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "nextpnr crashed")

	_, err = NewBuilder(p, Trellis, Options{}, runner, logger)
	test.That(t, err, test.ShouldNotBeNil)
}
