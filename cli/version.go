package cli

import (
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// VersionAction is the corresponding action for 'version'.
func VersionAction(c *cli.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("error reading build info")
	}
	if c.Bool(generalFlagDebug) {
		printf(c.App.Writer, "%s", info.String())
	}
	revision, modified := "?", false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 8 {
				revision = revision[:8]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if modified {
		revision += "+"
	}
	printf(c.App.Writer, "boards %s git=%s %s", info.Main.Version, revision, info.GoVersion)
	return nil
}
