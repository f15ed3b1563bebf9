package soc

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"go.fpgaboards.dev/boards/logging"
	"go.fpgaboards.dev/boards/programmer"
	"go.fpgaboards.dev/boards/rexec"
	"go.fpgaboards.dev/boards/toolchain"
)

// ManifestFile is the name of the manifest written next to the build files.
const ManifestFile = "soc.yaml"

// BuildRequest selects what Build does after writing the build inputs.
type BuildRequest struct {
	Dir   string
	Build bool
	Load  bool
	Flash bool
}

// BuildResult reports what Build did.
type BuildResult struct {
	Manifest  string
	Toolchain *toolchain.Result
	Loaded    bool
	Flashed   bool
}

// Build writes the manifest and toolchain inputs for the SoC into req.Dir, then optionally
// runs the toolchain and programs the board.
func (s *SoC) Build(ctx context.Context, req BuildRequest, runner rexec.Runner, logger logging.Logger) (*BuildResult, error) {
	kind, err := toolchain.ParseKind(s.Manifest.Toolchain)
	if err != nil {
		return nil, err
	}
	builder, err := toolchain.NewBuilder(s.Platform, kind, toolchain.Options{BuildName: s.Platform.Name}, runner, logger)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(req.Dir, 0o750); err != nil {
		return nil, errors.Wrap(err, "creating build directory")
	}
	data, err := s.Manifest.YAML()
	if err != nil {
		return nil, err
	}
	res := &BuildResult{Manifest: filepath.Join(req.Dir, ManifestFile)}
	if err := os.WriteFile(res.Manifest, data, 0o640); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}
	logger.Debugw("wrote manifest", "path", res.Manifest, "build_id", s.Manifest.BuildID)

	if res.Toolchain, err = builder.Build(ctx, req.Dir, req.Build); err != nil {
		return nil, err
	}
	if !req.Load && !req.Flash {
		return res, nil
	}

	prog, err := programmer.New(s.Platform.Programmer, runner, logger)
	if err != nil {
		return nil, err
	}
	if req.Load {
		if err := prog.Load(ctx, res.Toolchain.Bitstream); err != nil {
			return nil, err
		}
		res.Loaded = true
	}
	if req.Flash {
		if err := prog.Flash(ctx, s.Spec.FlashOffset, res.Toolchain.Bitstream); err != nil {
			return nil, err
		}
		res.Flashed = true
	}
	return res, nil
}
