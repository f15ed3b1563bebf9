// Package toolchain turns a platform's requested pins into vendor constraint files and build
// scripts, and runs those scripts.
package toolchain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.fpgaboards.dev/boards/logging"
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/rexec"
	"go.fpgaboards.dev/boards/utils"
)

// Kind names a toolchain.
type Kind string

// Supported toolchains.
const (
	Vivado   Kind = "vivado"
	IceStorm Kind = "icestorm"
	Trellis  Kind = "trellis"
	Quartus  Kind = "quartus"
	Gowin    Kind = "gowin"
	Diamond  Kind = "diamond"
)

type constraintFile struct {
	ext    string
	writer ConstraintWriter
}

type script struct {
	name string
	tmpl *template.Template
}

type flow struct {
	families    []platform.Family
	constraints []constraintFile
	scripts     []script
	bitstream   string
}

var flows = map[Kind]flow{
	Vivado: {
		families:    []platform.Family{platform.FamilyArtix7},
		constraints: []constraintFile{{".xdc", WriteXDC}},
		scripts:     []script{{"build_%s.tcl", vivadoTcl}, {"build_%s.sh", vivadoSh}},
		bitstream:   "%s.bit",
	},
	IceStorm: {
		families:    []platform.Family{platform.FamilyICE40},
		constraints: []constraintFile{{".pcf", WritePCF}},
		scripts:     []script{{"build_%s.sh", icestormSh}},
		bitstream:   "%s.bin",
	},
	Trellis: {
		families:    []platform.Family{platform.FamilyECP5},
		constraints: []constraintFile{{".lpf", WriteLPF}},
		scripts:     []script{{"build_%s.sh", trellisSh}},
		bitstream:   "%s.bit",
	},
	Diamond: {
		families:    []platform.Family{platform.FamilyECP5},
		constraints: []constraintFile{{".lpf", WriteLPF}},
		scripts:     []script{{"build_%s.tcl", diamondTcl}, {"build_%s.sh", diamondSh}},
		bitstream:   "impl/%s_impl.bit",
	},
	Quartus: {
		families:    []platform.Family{platform.FamilyCycloneIV, platform.FamilyMAX10},
		constraints: []constraintFile{{".sdc", WriteSDC}},
		scripts:     []script{{"%s.qsf", quartusQsf}, {"build_%s.sh", quartusSh}},
		bitstream:   "%s.sof",
	},
	Gowin: {
		families:    []platform.Family{platform.FamilyGW1N},
		constraints: []constraintFile{{".cst", WriteCST}},
		scripts:     []script{{"build_%s.sh", gowinSh}},
		bitstream:   "%s.fs",
	},
}

// Kinds lists every toolchain.
func Kinds() []string {
	return []string{string(Diamond), string(Gowin), string(IceStorm), string(Quartus), string(Trellis), string(Vivado)}
}

// ParseKind validates a toolchain name.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(name))
	if _, ok := flows[k]; !ok {
		return "", utils.NewUnsupportedOptionError("toolchain", name, Kinds())
	}
	return k, nil
}

// Supported lists the toolchains able to target a family.
func Supported(family platform.Family) []Kind {
	var out []Kind
	for _, name := range Kinds() {
		if lo.Contains(flows[Kind(name)].families, family) {
			out = append(out, Kind(name))
		}
	}
	return out
}

// Check reports whether kind can target family.
func Check(kind Kind, family platform.Family) error {
	f, ok := flows[kind]
	if !ok {
		return utils.NewUnsupportedOptionError("toolchain", string(kind), Kinds())
	}
	if !lo.Contains(f.families, family) {
		return utils.NewUnsupportedOptionError("toolchain", string(kind),
			lo.Map(Supported(family), func(k Kind, _ int) string { return string(k) }))
	}
	return nil
}

// BitstreamFile is the path, relative to the build directory, of the bitstream kind produces.
func BitstreamFile(kind Kind, buildName string) string {
	return strings.ReplaceAll(flows[kind].bitstream, "%s", buildName)
}

// Options tune a build.
type Options struct {
	BuildName string
	Sources   []string
	Seed      int
}

// File is a generated build input.
type File struct {
	Name       string
	Content    []byte
	Executable bool
}

type scriptParams struct {
	BuildName          string
	Device             string
	Sources            []string
	Constraints        []string
	Seed               int
	NextpnrArgs        string
	PackArgs           string
	GowinFamily        string
	QuartusFamily      string
	BitstreamCommands  []string
	AdditionalCommands []string
}

func (opts Options) withDefaults(p *platform.Platform) Options {
	if opts.BuildName == "" {
		opts.BuildName = p.Name
	}
	if len(opts.Sources) == 0 {
		opts.Sources = []string{opts.BuildName + ".v"}
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	return opts
}

func expandCommands(cmds []string, buildName string) []string {
	return lo.Map(cmds, func(cmd string, _ int) string {
		return strings.ReplaceAll(cmd, "{build_name}", buildName)
	})
}

// Render produces the constraint files and build scripts for everything requested from p so
// far. It finalizes p's constraints.
func Render(p *platform.Platform, kind Kind, opts Options) ([]File, error) {
	if err := Check(kind, p.Family); err != nil {
		return nil, err
	}
	opts = opts.withDefaults(p)
	f := flows[kind]
	cons := p.Finalize()

	params := scriptParams{
		BuildName:          opts.BuildName,
		Device:             p.Device,
		Sources:            opts.Sources,
		Seed:               opts.Seed,
		PackArgs:           p.ToolchainOptions["pack_args"],
		BitstreamCommands:  expandCommands(p.BitstreamCommands, opts.BuildName),
		AdditionalCommands: expandCommands(p.AdditionalCommands, opts.BuildName),
	}
	if params.PackArgs != "" {
		params.PackArgs += " "
	}
	if err := familyParams(p, &params); err != nil {
		return nil, err
	}

	var files []File
	for _, c := range f.constraints {
		var buf bytes.Buffer
		if err := c.writer(&buf, cons); err != nil {
			return nil, err
		}
		name := opts.BuildName + c.ext
		params.Constraints = append(params.Constraints, name)
		files = append(files, File{Name: name, Content: buf.Bytes()})
	}
	for _, s := range f.scripts {
		var buf bytes.Buffer
		if err := s.tmpl.Execute(&buf, params); err != nil {
			return nil, errors.Wrapf(err, "rendering %s", s.tmpl.Name())
		}
		if kind == Quartus && strings.HasSuffix(s.name, ".qsf") {
			if err := WriteQSF(&buf, cons); err != nil {
				return nil, err
			}
		}
		files = append(files, File{
			Name:       strings.ReplaceAll(s.name, "%s", opts.BuildName),
			Content:    buf.Bytes(),
			Executable: strings.HasSuffix(s.name, ".sh"),
		})
	}
	return files, nil
}

// Result describes a finished build.
type Result struct {
	Kind      Kind
	Dir       string
	Files     []string
	Script    string
	Bitstream string
	Ran       bool
}

// Builder writes build inputs for a platform and optionally runs the build.
type Builder struct {
	platform *platform.Platform
	kind     Kind
	opts     Options
	runner   rexec.Runner
	logger   logging.Logger
}

// NewBuilder returns a Builder for p using kind, or p's own toolchain when kind is empty.
func NewBuilder(p *platform.Platform, kind Kind, opts Options, runner rexec.Runner, logger logging.Logger) (*Builder, error) {
	if kind == "" {
		var err error
		if kind, err = ParseKind(p.Toolchain); err != nil {
			return nil, err
		}
	}
	if err := Check(kind, p.Family); err != nil {
		return nil, err
	}
	return &Builder{
		platform: p,
		kind:     kind,
		opts:     opts.withDefaults(p),
		runner:   runner,
		logger:   logger.Sublogger(string(kind)),
	}, nil
}

// Kind returns the toolchain the builder uses.
func (b *Builder) Kind() Kind {
	return b.kind
}

// Build writes the build inputs to dir and, when run is set, executes the build script there.
func (b *Builder) Build(ctx context.Context, dir string, run bool) (*Result, error) {
	files, err := Render(b.platform, b.kind, b.opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrap(err, "creating build directory")
	}
	res := &Result{
		Kind:      b.kind,
		Dir:       dir,
		Script:    "build_" + b.opts.BuildName + ".sh",
		Bitstream: filepath.Join(dir, BitstreamFile(b.kind, b.opts.BuildName)),
	}
	for _, f := range files {
		mode := os.FileMode(0o640)
		if f.Executable {
			mode = 0o750
		}
		path := filepath.Join(dir, f.Name)
		//nolint:gosec
		if err := os.WriteFile(path, f.Content, mode); err != nil {
			return nil, errors.Wrapf(err, "writing %s", f.Name)
		}
		b.logger.Debugw("wrote build file", "path", path)
		res.Files = append(res.Files, path)
	}
	if !run {
		return res, nil
	}
	b.logger.Infow("building", "board", b.platform.Name, "dir", dir)
	if err := b.runner.Run(ctx, rexec.ProcessConfig{Name: "sh", Args: []string{res.Script}, CWD: dir}); err != nil {
		return nil, errors.Wrapf(err, "building %s with %s", b.platform.Name, b.kind)
	}
	res.Ran = true
	return res, nil
}
