package cli

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.fpgaboards.dev/boards/buildstore"
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/toolchain"
	"go.fpgaboards.dev/boards/utils"
)

// targetArgs is a board resolved from the command line, with its platform built and every
// option checked.
type targetArgs struct {
	reg      registry.Registration
	platform *platform.Platform
	kind     toolchain.Kind
	opts     soc.Options
}

// chooseToolchain picks the --toolchain flag, then the configured vendor preference, then the
// board's default.
func chooseToolchain(c *cli.Context, env *boardsEnv, p *platform.Platform) (toolchain.Kind, error) {
	name := lo.CoalesceOrEmpty(c.String(targetFlagToolchain), env.conf.ToolchainFor(p.Family), p.Toolchain)
	kind, err := toolchain.ParseKind(name)
	if err != nil {
		return "", err
	}
	if err := toolchain.Check(kind, p.Family); err != nil {
		return "", err
	}
	return kind, nil
}

func addExtensions(p *platform.Platform, specs []string) error {
	for _, spec := range specs {
		kind, pmod, ok := strings.Cut(spec, ":")
		if !ok || pmod == "" {
			return errors.Errorf("extension %q must be KIND:CONNECTOR", spec)
		}
		ext, ok := platform.Extensions[kind]
		if !ok {
			return utils.NewUnsupportedOptionError("extension", kind, sortedKeys(platform.Extensions))
		}
		if err := p.AddExtension(ext(pmod)...); err != nil {
			return err
		}
	}
	return nil
}

func parseTargetArgs(c *cli.Context, env *boardsEnv) (*targetArgs, error) {
	name, err := boardArg(c)
	if err != nil {
		return nil, err
	}
	reg, err := registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	p, err := boardPlatform(c, reg)
	if err != nil {
		return nil, err
	}
	kind, err := chooseToolchain(c, env, p)
	if err != nil {
		return nil, err
	}
	if string(kind) != p.Toolchain {
		// Some boards pick bitstream commands per toolchain.
		if p, err = reg.Platform(platform.Options{
			Variant:   c.String(boardFlagVariant),
			Revision:  c.String(boardFlagRevision),
			Toolchain: string(kind),
		}); err != nil {
			return nil, errors.Wrap(err, reg.Name)
		}
	}
	if err := addExtensions(p, c.StringSlice(targetFlagExtension)); err != nil {
		return nil, err
	}

	opts := soc.Options{
		Toolchain:             string(kind),
		CPUType:               c.String(targetFlagCPUType),
		IntegratedROMSize:     c.Int(targetFlagROMSize),
		IntegratedSRAMSize:    c.Int(targetFlagSRAMSize),
		IntegratedMainRAMSize: c.Int(targetFlagMainRAMSize),
		UART:                  c.String(targetFlagUART),
		With:                  c.StringSlice(targetFlagWith),
		Without:               c.StringSlice(targetFlagWithout),
		Variant:               c.String(boardFlagVariant),
		Revision:              c.String(boardFlagRevision),
	}
	for flag, size := range map[string]int{
		targetFlagROMSize:     opts.IntegratedROMSize,
		targetFlagSRAMSize:    opts.IntegratedSRAMSize,
		targetFlagMainRAMSize: opts.IntegratedMainRAMSize,
	} {
		if err := checkSize(flag, size); err != nil {
			return nil, err
		}
	}
	if freq := c.String(targetFlagSysClkFreq); freq != "" {
		if opts.SysClkFreq, err = utils.ParseFrequency(freq); err != nil {
			return nil, errors.Wrap(err, "--"+targetFlagSysClkFreq)
		}
	}
	return &targetArgs{reg: reg, platform: p, kind: kind, opts: opts}, nil
}

// printTargetOptions lists what the board accepts on the target command line.
func printTargetOptions(c *cli.Context, reg registry.Registration) error {
	variant := c.String(boardFlagVariant)
	p, err := reg.Platform(platform.Options{Variant: variant})
	if err != nil {
		return errors.Wrap(err, reg.Name)
	}
	spec := reg.Target
	peripherals := spec.PeripheralsFor(variant)
	w := c.App.Writer
	printf(w, "%s target options:", reg.Name)
	printf(w, "  --%s: default %s", targetFlagSysClkFreq, utils.FormatFrequency(spec.DefaultSysClkFreq))
	printf(w, "  --%s: %s", targetFlagToolchain, withDefault(lo.Map(toolchain.Supported(p.Family),
		func(k toolchain.Kind, _ int) string { return string(k) }), p.Toolchain))
	if len(spec.Variants) != 0 {
		printf(w, "  --%s: %s", boardFlagVariant, withDefault(spec.Variants, spec.DefaultVariant))
	}
	if len(spec.Revisions) != 0 {
		printf(w, "  --%s: %s", boardFlagRevision, withDefault(spec.Revisions, spec.DefaultRevision))
	}
	printf(w, "  --%s: %s", targetFlagCPUType, withDefault(soc.CPUTypes, lo.CoalesceOrEmpty(spec.DefaultCPU, soc.CPUTypes[0])))
	printf(w, "  --%s: %s", targetFlagUART, withDefault(soc.UARTModes, lo.CoalesceOrEmpty(spec.UART, soc.UARTModes[0])))
	if len(peripherals) != 0 {
		defaults := lo.FilterMap(peripherals, func(per soc.Peripheral, _ int) (string, bool) { return per.Name, per.Default })
		optional := lo.FilterMap(peripherals, func(per soc.Peripheral, _ int) (string, bool) { return per.Name, !per.Default })
		if len(optional) != 0 {
			printf(w, "  --%s: %s", targetFlagWith, joinNames(optional))
		}
		if len(defaults) != 0 {
			printf(w, "  --%s: %s", targetFlagWithout, joinNames(defaults))
		}
	}
	if len(p.Connectors) != 0 {
		printf(w, "  --%s: %s on %s", targetFlagExtension, joinNames(sortedKeys(platform.Extensions)),
			joinNames(lo.Map(p.Connectors, func(conn platform.Connector, _ int) string { return conn.Name })))
	}
	return nil
}

// TargetAction is the corresponding action for 'target'.
func TargetAction(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	if c.Bool(targetFlagOptions) {
		name, err := boardArg(c)
		if err != nil {
			return err
		}
		reg, err := registry.Lookup(name)
		if err != nil {
			return err
		}
		return printTargetOptions(c, reg)
	}

	args, err := parseTargetArgs(c, env)
	if err != nil {
		return err
	}
	s, err := soc.NewBaseSoC(args.platform, args.reg.Target, args.opts)
	if err != nil {
		return err
	}
	dir := c.String(generalFlagOutputDir)
	if dir == "" {
		dir = filepath.Join(env.conf.OutputDir, args.reg.Name)
	}

	store, err := env.history(c.Context)
	if err != nil {
		return err
	}
	rec, err := store.Record(c.Context, buildstore.Build{
		Board:      args.reg.Name,
		Variant:    lo.CoalesceOrEmpty(s.Manifest.Variant, s.Manifest.Revision),
		Toolchain:  string(args.kind),
		SysClkFreq: s.Manifest.SysClkFreq,
		OutputDir:  dir,
	})
	if err != nil {
		return err
	}
	s.Manifest.BuildID = rec.ID

	logger := env.logger.Sublogger(args.reg.Name)
	runner := newRunner(logger, c.App.Writer)
	res, buildErr := s.Build(c.Context, soc.BuildRequest{
		Dir:   dir,
		Build: c.Bool(targetFlagBuild),
		Load:  c.Bool(targetFlagLoad),
		Flash: c.Bool(targetFlagFlash),
	}, runner, logger)
	if err := store.Finish(c.Context, rec.ID, buildErr); err != nil {
		warningf(c.App.ErrWriter, "updating build history: %v", err)
	}
	if buildErr != nil {
		return buildErr
	}

	w := c.App.Writer
	printf(w, "Build %s: %s on %s at %s", rec.ID, args.reg.Name, args.kind, utils.FormatFrequency(s.Manifest.SysClkFreq))
	printf(w, "Manifest:  %s", res.Manifest)
	printf(w, "Script:    %s", filepath.Join(res.Toolchain.Dir, res.Toolchain.Script))
	if res.Toolchain.Ran {
		printf(w, "Bitstream: %s", res.Toolchain.Bitstream)
	}
	if res.Loaded {
		infof(w, "loaded %s", filepath.Base(res.Toolchain.Bitstream))
	}
	if res.Flashed {
		infof(w, "flashed %s at 0x%x", filepath.Base(res.Toolchain.Bitstream), args.reg.Target.FlashOffset)
	}
	return nil
}
