package cli

import (
	"github.com/urfave/cli/v2"

	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/toolchain"
)

// ConstraintsAction is the corresponding action for 'constraints'. It plans the same SoC as
// 'target' and prints its pin constraints in the toolchain's format, or in --format.
func ConstraintsAction(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	args, err := parseTargetArgs(c, env)
	if err != nil {
		return err
	}
	s, err := soc.NewBaseSoC(args.platform, args.reg.Target, args.opts)
	if err != nil {
		return err
	}
	format := c.String(constraintsFlagFormat)
	if format == "" {
		format = toolchain.PinFormat(args.kind)
	}
	write, err := toolchain.ConstraintWriterFor(format)
	if err != nil {
		return err
	}
	return write(c.App.Writer, s.Manifest.Constraints)
}
