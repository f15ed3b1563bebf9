package cli

import (
	"bytes"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.fpgaboards.dev/boards/svf"
	"go.fpgaboards.dev/boards/utils"
)

// SVFAction is the corresponding action for 'svf'.
func SVFAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.Errorf("expected <bitstream> <output.svf>, got %d arguments", c.NArg())
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	profile, err := svf.LookupProfile(c.String(svfFlagProfile))
	if err != nil {
		return err
	}
	opts := svf.Options{Profile: profile}
	if freq := c.String(svfFlagFrequency); freq != "" {
		if opts.Frequency, err = utils.ParseFrequency(freq); err != nil {
			return errors.Wrap(err, "--"+svfFlagFrequency)
		}
	}
	if id := c.String(svfFlagIDCode); id != "" {
		v, err := strconv.ParseUint(id, 0, 32)
		if err != nil {
			return errors.Wrapf(err, "--%s %q", svfFlagIDCode, id)
		}
		opts.IDCode = uint32(v)
	}

	//nolint:gosec
	bitstream, err := os.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "reading bitstream")
	}
	var buf bytes.Buffer
	if err := svf.Convert(&buf, bitstream, opts); err != nil {
		return errors.Wrap(err, in)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o640); err != nil {
		return errors.Wrap(err, "writing svf")
	}
	infof(c.App.Writer, "wrote %s (%s, %d bytes)", out, profile.Name, buf.Len())
	return nil
}
