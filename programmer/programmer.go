// Package programmer loads bitstreams into FPGAs (volatile) or writes them to configuration
// flash, by driving the usual command line programmers.
package programmer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"go.fpgaboards.dev/boards/logging"
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/rexec"
	"go.fpgaboards.dev/boards/utils"
)

// ErrFlashUnsupported is returned by Flash for programmers that can only load.
var ErrFlashUnsupported = errors.New("programmer cannot write flash")

type commandFunc func(spec platform.ProgrammerSpec, addr uint32, bitstream string) ([]string, error)

type tool struct {
	binary string
	load   commandFunc
	flash  commandFunc
}

func hexAddr(addr uint32) string {
	return fmt.Sprintf("0x%x", addr)
}

func requireConfig(spec platform.ProgrammerSpec) error {
	if spec.Config == "" {
		return errors.Errorf("%s programmer needs a config", spec.Kind)
	}
	return nil
}

var tools = map[string]tool{
	"openocd": {
		binary: "openocd",
		load: func(spec platform.ProgrammerSpec, _ uint32, bitstream string) ([]string, error) {
			if err := requireConfig(spec); err != nil {
				return nil, err
			}
			return []string{"-f", spec.Config, "-c", fmt.Sprintf("transport select jtag; init; pld load 0 {%s}; exit", bitstream)}, nil
		},
		flash: func(spec platform.ProgrammerSpec, addr uint32, bitstream string) ([]string, error) {
			if err := requireConfig(spec); err != nil {
				return nil, err
			}
			if spec.FlashProxy == "" {
				return nil, errors.New("openocd flashing needs a flash proxy bitstream")
			}
			script := fmt.Sprintf("transport select jtag; init; jtagspi_init 0 {%s}; jtagspi_program {%s} %s; fpga_program; exit",
				spec.FlashProxy, bitstream, hexAddr(addr))
			return []string{"-f", spec.Config, "-c", script}, nil
		},
	},
	"openfpgaloader": {
		binary: "openFPGALoader",
		load: func(spec platform.ProgrammerSpec, _ uint32, bitstream string) ([]string, error) {
			if err := requireConfig(spec); err != nil {
				return nil, err
			}
			return []string{"--board", spec.Config, bitstream}, nil
		},
		flash: func(spec platform.ProgrammerSpec, addr uint32, bitstream string) ([]string, error) {
			if err := requireConfig(spec); err != nil {
				return nil, err
			}
			return []string{"--board", spec.Config, "--write-flash", "--offset", hexAddr(addr), bitstream}, nil
		},
	},
	"iceprog": {
		binary: "iceprog",
		load: func(_ platform.ProgrammerSpec, _ uint32, bitstream string) ([]string, error) {
			return []string{"-S", bitstream}, nil
		},
		flash: func(_ platform.ProgrammerSpec, addr uint32, bitstream string) ([]string, error) {
			return []string{"-o", hexAddr(addr), bitstream}, nil
		},
	},
	"ecpprog": {
		binary: "ecpprog",
		load: func(_ platform.ProgrammerSpec, _ uint32, bitstream string) ([]string, error) {
			return []string{"-S", bitstream}, nil
		},
		flash: func(_ platform.ProgrammerSpec, addr uint32, bitstream string) ([]string, error) {
			return []string{"-o", hexAddr(addr), bitstream}, nil
		},
	},
	"dfu-util": {
		binary: "dfu-util",
		load: func(spec platform.ProgrammerSpec, _ uint32, bitstream string) ([]string, error) {
			var args []string
			if spec.Config != "" {
				args = append(args, "-d", spec.Config)
			}
			return append(args, "-D", bitstream), nil
		},
	},
	"quartus_pgm": {
		binary: "quartus_pgm",
		load: func(spec platform.ProgrammerSpec, _ uint32, bitstream string) ([]string, error) {
			cable := spec.Config
			if cable == "" {
				cable = "USB-Blaster"
			}
			return []string{"-m", "jtag", "-c", cable, "-o", "p;" + bitstream}, nil
		},
	},
	"tinyprog": {
		binary: "tinyprog",
		load: func(_ platform.ProgrammerSpec, _ uint32, bitstream string) ([]string, error) {
			return []string{"-p", bitstream}, nil
		},
		flash: func(_ platform.ProgrammerSpec, addr uint32, bitstream string) ([]string, error) {
			return []string{"-a", hexAddr(addr), "-p", bitstream}, nil
		},
	},
	"fujprog": {
		binary: "fujprog",
		load: func(_ platform.ProgrammerSpec, _ uint32, bitstream string) ([]string, error) {
			return []string{bitstream}, nil
		},
		flash: func(_ platform.ProgrammerSpec, addr uint32, bitstream string) ([]string, error) {
			return []string{"-j", "FLASH", "-f", hexAddr(addr), bitstream}, nil
		},
	},
	"icesprog": {
		binary: "icesprog",
		load: func(_ platform.ProgrammerSpec, _ uint32, bitstream string) ([]string, error) {
			return []string{bitstream}, nil
		},
		flash: func(_ platform.ProgrammerSpec, addr uint32, bitstream string) ([]string, error) {
			return []string{"-o", hexAddr(addr), bitstream}, nil
		},
	},
}

// Kinds lists the supported programmers.
func Kinds() []string {
	return []string{
		"dfu-util", "ecpprog", "fujprog", "iceprog", "icesprog",
		"openfpgaloader", "openocd", "quartus_pgm", "tinyprog",
	}
}

// A Programmer drives one programming tool for one board.
type Programmer struct {
	spec   platform.ProgrammerSpec
	tool   tool
	runner rexec.Runner
	logger logging.Logger
}

// New returns the programmer described by spec.
func New(spec platform.ProgrammerSpec, runner rexec.Runner, logger logging.Logger) (*Programmer, error) {
	t, ok := tools[strings.ToLower(spec.Kind)]
	if !ok {
		return nil, utils.NewUnsupportedOptionError("programmer", spec.Kind, Kinds())
	}
	return &Programmer{spec: spec, tool: t, runner: runner, logger: logger.Sublogger(t.binary)}, nil
}

// CanFlash reports whether the programmer can write configuration flash.
func (p *Programmer) CanFlash() bool {
	return p.tool.flash != nil
}

// LoadCommand returns the process Load would run.
func (p *Programmer) LoadCommand(bitstream string) (rexec.ProcessConfig, error) {
	args, err := p.tool.load(p.spec, 0, bitstream)
	if err != nil {
		return rexec.ProcessConfig{}, err
	}
	return p.process(args), nil
}

// FlashCommand returns the process Flash would run.
func (p *Programmer) FlashCommand(addr uint32, bitstream string) (rexec.ProcessConfig, error) {
	if p.tool.flash == nil {
		return rexec.ProcessConfig{}, errors.Wrap(ErrFlashUnsupported, p.tool.binary)
	}
	args, err := p.tool.flash(p.spec, addr, bitstream)
	if err != nil {
		return rexec.ProcessConfig{}, err
	}
	return p.process(args), nil
}

func (p *Programmer) process(args []string) rexec.ProcessConfig {
	return rexec.ProcessConfig{Name: p.tool.binary, Args: append(append([]string(nil), p.spec.Args...), args...)}
}

// Load configures the FPGA's SRAM with bitstream.
func (p *Programmer) Load(ctx context.Context, bitstream string) error {
	if err := checkFile(bitstream); err != nil {
		return err
	}
	proc, err := p.LoadCommand(bitstream)
	if err != nil {
		return err
	}
	p.logger.Infow("loading bitstream", "bitstream", bitstream)
	return p.runner.Run(ctx, proc)
}

// Flash writes bitstream to configuration flash at addr.
func (p *Programmer) Flash(ctx context.Context, addr uint32, bitstream string) error {
	if err := checkFile(bitstream); err != nil {
		return err
	}
	proc, err := p.FlashCommand(addr, bitstream)
	if err != nil {
		return err
	}
	p.logger.Infow("flashing bitstream", "bitstream", bitstream, "address", hexAddr(addr))
	return p.runner.Run(ctx, proc)
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "bitstream")
	}
	if info.IsDir() {
		return errors.Errorf("bitstream %s is a directory", path)
	}
	return nil
}
