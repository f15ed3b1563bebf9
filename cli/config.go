package cli

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"go.fpgaboards.dev/boards/buildstore"
	"go.fpgaboards.dev/boards/config"
	"go.fpgaboards.dev/boards/logging"
	"go.fpgaboards.dev/boards/rexec"
)

const envMetadataKey = "boards.env"

// newRunner creates the runner toolchains and programmers execute through. Tool output goes to
// out. Tests replace it.
var newRunner = func(logger logging.Logger, out io.Writer) rexec.Runner {
	return rexec.NewWriterRunner(logger, out)
}

// boardsEnv is what every command shares: the loaded config, the logger and, once opened, the
// build history.
type boardsEnv struct {
	conf   *config.Config
	logger logging.Logger
	store  *buildstore.Store
}

func setupEnv(c *cli.Context) error {
	conf, err := config.Load(c.String(generalFlagConfigDir))
	if err != nil {
		return err
	}
	logger := logging.NewBlankLogger("boards")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(conf.Level())
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	if conf.File != "" {
		logger.Debugw("loaded config", "file", conf.File)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[envMetadataKey] = &boardsEnv{conf: conf, logger: logger}
	return nil
}

func teardownEnv(c *cli.Context) error {
	env, ok := c.App.Metadata[envMetadataKey].(*boardsEnv)
	if !ok {
		return nil
	}
	if env.store != nil {
		utils.UncheckedError(env.store.Close())
	}
	utils.UncheckedError(env.logger.Sync())
	return nil
}

func envFrom(c *cli.Context) (*boardsEnv, error) {
	env, ok := c.App.Metadata[envMetadataKey].(*boardsEnv)
	if !ok {
		return nil, errors.New("command environment not initialized")
	}
	return env, nil
}

// history opens the build history on first use.
func (env *boardsEnv) history(ctx context.Context) (*buildstore.Store, error) {
	if env.store != nil {
		return env.store, nil
	}
	store, err := buildstore.Open(ctx, env.conf.HistoryDB, env.logger.Sublogger("history"))
	if err != nil {
		return nil, err
	}
	env.store = store
	return store, nil
}
