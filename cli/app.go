// Package cli implements the boards command line: browsing the catalog, generating build files
// for a board, building and programming it, and converting bitstreams to SVF.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/svf"
	"go.fpgaboards.dev/boards/toolchain"
)

const (
	// Flags.
	generalFlagConfigDir = "config-dir"
	generalFlagDebug     = "debug"
	generalFlagOutputDir = "output-dir"

	listFlagTier = "tier"

	boardFlagVariant  = "variant"
	boardFlagRevision = "revision"

	targetFlagBuild       = "build"
	targetFlagLoad        = "load"
	targetFlagFlash       = "flash"
	targetFlagOptions     = "options"
	targetFlagSysClkFreq  = "sys-clk-freq"
	targetFlagToolchain   = "toolchain"
	targetFlagCPUType     = "cpu-type"
	targetFlagUART        = "uart"
	targetFlagWith        = "with"
	targetFlagWithout     = "without"
	targetFlagExtension   = "extension"
	targetFlagROMSize     = "integrated-rom-size"
	targetFlagSRAMSize    = "integrated-sram-size"
	targetFlagMainRAMSize = "integrated-main-ram-size"

	constraintsFlagFormat = "format"

	svfFlagProfile   = "profile"
	svfFlagFrequency = "frequency"
	svfFlagIDCode    = "idcode"

	historyFlagBoard = "board"
	historyFlagLimit = "limit"

	readmeFlagOutput = "output"

	detectFlagAll = "all"
)

func boardFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  boardFlagVariant,
			Usage: "board variant, see target --options",
		},
		&cli.StringFlag{
			Name:  boardFlagRevision,
			Usage: "board revision, see target --options",
		},
	}
}

func targetFlags() []cli.Flag {
	return append(boardFlags(),
		&cli.BoolFlag{
			Name:  targetFlagBuild,
			Usage: "run the toolchain after writing the build files",
		},
		&cli.BoolFlag{
			Name:  targetFlagLoad,
			Usage: "load the bitstream into the FPGA (volatile)",
		},
		&cli.BoolFlag{
			Name:  targetFlagFlash,
			Usage: "write the bitstream to the configuration flash",
		},
		&cli.BoolFlag{
			Name:  targetFlagOptions,
			Usage: "print the options this board accepts and exit",
		},
		&cli.StringFlag{
			Name:  targetFlagSysClkFreq,
			Usage: "system clock frequency, e.g. 50MHz or 48e6",
		},
		&cli.StringFlag{
			Name:  targetFlagToolchain,
			Usage: "toolchain: " + joinNames(toolchain.Kinds()),
		},
		&cli.StringFlag{
			Name:  targetFlagCPUType,
			Usage: "CPU: " + joinNames(soc.CPUTypes),
		},
		&cli.StringFlag{
			Name:  targetFlagUART,
			Usage: "UART: " + joinNames(soc.UARTModes),
		},
		&cli.StringSliceFlag{
			Name:  targetFlagWith,
			Usage: "enable an optional peripheral",
		},
		&cli.StringSliceFlag{
			Name:  targetFlagWithout,
			Usage: "disable a default peripheral",
		},
		&cli.StringSliceFlag{
			Name:  targetFlagExtension,
			Usage: "plug a module into a connector as `KIND:CONNECTOR`, e.g. usbuart:pmoda",
		},
		&cli.IntFlag{
			Name:  targetFlagROMSize,
			Usage: "integrated ROM size in bytes",
		},
		&cli.IntFlag{
			Name:  targetFlagSRAMSize,
			Usage: "integrated SRAM size in bytes",
		},
		&cli.IntFlag{
			Name:  targetFlagMainRAMSize,
			Usage: "integrated main RAM size in bytes",
		},
		&cli.StringFlag{
			Name:  generalFlagOutputDir,
			Usage: "directory build files are written under",
		},
	)
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "boards",
		Usage:           "FPGA board catalog and build driver",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  generalFlagConfigDir,
				Usage: "read config.yaml from `DIR`",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: setupEnv,
		After:  teardownEnv,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list the boards in the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  listFlagTier,
						Usage: "only list one tier: official, partner or community",
					},
				},
				Action: ListBoardsAction,
			},
			{
				Name:      "show",
				Usage:     "describe a board: device, pins, connectors and target options",
				ArgsUsage: "<board>",
				Flags:     boardFlags(),
				Action:    ShowBoardAction,
			},
			{
				Name:      "target",
				Usage:     "generate the SoC manifest and build files for a board, optionally build and program it",
				ArgsUsage: "<board>",
				Flags:     targetFlags(),
				Action:    TargetAction,
			},
			{
				Name:      "constraints",
				Usage:     "print the pin constraints of a board's minimal SoC",
				ArgsUsage: "<board>",
				Flags: append(targetFlags(), &cli.StringFlag{
					Name:  constraintsFlagFormat,
					Usage: "constraint format: " + joinNames(toolchain.ConstraintFormats()),
				}),
				Action: ConstraintsAction,
			},
			{
				Name:      "svf",
				Usage:     "convert a bitstream to an SVF program",
				ArgsUsage: "<bitstream> <output.svf>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  svfFlagProfile,
						Value: svf.MachXO2.Name,
						Usage: "device profile: " + joinNames(svf.ProfileNames()),
					},
					&cli.StringFlag{
						Name:  svfFlagFrequency,
						Usage: "TCK frequency, e.g. 1MHz",
					},
					&cli.StringFlag{
						Name:  svfFlagIDCode,
						Usage: "check the device IDCODE first, e.g. 0x012BB043",
					},
				},
				Action: SVFAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the SoC manifest",
				Action: SchemaAction,
			},
			{
				Name:  "history",
				Usage: "list previous target runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  historyFlagBoard,
						Usage: "only show builds of this board",
					},
					&cli.IntFlag{
						Name:  historyFlagLimit,
						Value: 20,
						Usage: "number of builds to show, 0 for all",
					},
				},
				Action: HistoryAction,
			},
			{
				Name:  "readme",
				Usage: "render the board list as markdown",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:      readmeFlagOutput,
						Usage:     "write to `FILE` instead of stdout",
						TakesFile: true,
					},
				},
				Action: ReadmeAction,
			},
			{
				Name:  "detect",
				Usage: "list attached USB devices that boards of the catalog are programmed through",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  detectFlagAll,
						Usage: "list every USB device",
					},
				},
				Action: DetectAction,
			},
			{
				Name:   "version",
				Usage:  "print version info for this program",
				Action: VersionAction,
			},
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app := newApp()
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
