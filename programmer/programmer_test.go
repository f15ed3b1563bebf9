package programmer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.fpgaboards.dev/boards/logging"
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/rexec"
)

func bitstreamFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "top.bit")
	test.That(t, os.WriteFile(path, []byte{0xFF, 0x00}, 0o600), test.ShouldBeNil)
	return path
}

func TestCommands(t *testing.T) {
	logger := logging.NewTestLogger(t)
	for _, tc := range []struct {
		spec  platform.ProgrammerSpec
		load  string
		flash string
	}{
		{
			platform.ProgrammerSpec{Kind: "openocd", Config: "digilent_arty.cfg", FlashProxy: "bscan_spi_xc7a35t.bit"},
			"openocd -f digilent_arty.cfg -c 'transport select jtag; init; pld load 0 {top.bit}; exit'",
			"openocd -f digilent_arty.cfg -c 'transport select jtag; init; jtagspi_init 0 {bscan_spi_xc7a35t.bit}; " +
				"jtagspi_program {top.bit} 0x0; fpga_program; exit'",
		},
		{
			platform.ProgrammerSpec{Kind: "openFPGALoader", Config: "ulx3s"},
			"openFPGALoader --board ulx3s top.bit",
			"openFPGALoader --board ulx3s --write-flash --offset 0x0 top.bit",
		},
		{platform.ProgrammerSpec{Kind: "iceprog"}, "iceprog -S top.bit", "iceprog -o 0x0 top.bit"},
		{platform.ProgrammerSpec{Kind: "ecpprog"}, "ecpprog -S top.bit", "ecpprog -o 0x0 top.bit"},
		{platform.ProgrammerSpec{Kind: "dfu-util", Config: "1209:5bf0"}, "dfu-util -d 1209:5bf0 -D top.bit", ""},
		{platform.ProgrammerSpec{Kind: "quartus_pgm"}, "quartus_pgm -m jtag -c USB-Blaster -o 'p;top.bit'", ""},
		{platform.ProgrammerSpec{Kind: "tinyprog"}, "tinyprog -p top.bit", "tinyprog -a 0x0 -p top.bit"},
		{platform.ProgrammerSpec{Kind: "fujprog"}, "fujprog top.bit", "fujprog -j FLASH -f 0x0 top.bit"},
		{platform.ProgrammerSpec{Kind: "icesprog", Args: []string{"-g"}}, "icesprog -g top.bit", "icesprog -g -o 0x0 top.bit"},
	} {
		t.Run(tc.spec.Kind, func(t *testing.T) {
			p, err := New(tc.spec, &rexec.Recorder{}, logger)
			test.That(t, err, test.ShouldBeNil)
			proc, err := p.LoadCommand("top.bit")
			test.That(t, err, test.ShouldBeNil)
			test.That(t, proc.String(), test.ShouldEqual, tc.load)

			proc, err = p.FlashCommand(0, "top.bit")
			if tc.flash == "" {
				test.That(t, p.CanFlash(), test.ShouldBeFalse)
				test.That(t, errors.Is(err, ErrFlashUnsupported), test.ShouldBeTrue)
				return
			}
			test.That(t, p.CanFlash(), test.ShouldBeTrue)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, proc.String(), test.ShouldEqual, tc.flash)
		})
	}
}

func TestNew(t *testing.T) {
	logger := logging.NewTestLogger(t)
	_, err := New(platform.ProgrammerSpec{Kind: "xc3sprog"}, &rexec.Recorder{}, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "openocd")

	p, err := New(platform.ProgrammerSpec{Kind: "openocd"}, &rexec.Recorder{}, logger)
	test.That(t, err, test.ShouldBeNil)
	_, err = p.LoadCommand("top.bit")
	test.That(t, err, test.ShouldNotBeNil)

	p, err = New(platform.ProgrammerSpec{Kind: "openocd", Config: "x.cfg"}, &rexec.Recorder{}, logger)
	test.That(t, err, test.ShouldBeNil)
	_, err = p.FlashCommand(0, "top.bit")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "flash proxy")
}

func TestLoadAndFlash(t *testing.T) {
	logger := logging.NewTestLogger(t)
	runner := &rexec.Recorder{}
	p, err := New(platform.ProgrammerSpec{Kind: "ecpprog"}, runner, logger)
	test.That(t, err, test.ShouldBeNil)

	bit := bitstreamFile(t)
	test.That(t, p.Load(context.Background(), bit), test.ShouldBeNil)
	test.That(t, p.Flash(context.Background(), 0x100000, bit), test.ShouldBeNil)
	test.That(t, runner.Calls, test.ShouldResemble, []rexec.ProcessConfig{
		{Name: "ecpprog", Args: []string{"-S", bit}},
		{Name: "ecpprog", Args: []string{"-o", "0x100000", bit}},
	})

	err = p.Load(context.Background(), filepath.Join(t.TempDir(), "missing.bit"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, p.Load(context.Background(), t.TempDir()), test.ShouldNotBeNil)
	test.That(t, runner.Calls, test.ShouldHaveLength, 2)

	runner.RunFunc = func(ctx context.Context, config rexec.ProcessConfig) error { return errors.New("no device") }
	test.That(t, p.Load(context.Background(), bit), test.ShouldNotBeNil)
}
