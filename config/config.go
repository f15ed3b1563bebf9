// Package config loads the user configuration of the boards command: where builds go, where the
// build history lives, the preferred toolchain per FPGA vendor and the log level. Values come
// from config.yaml in the user config directory and BOARDS_* environment variables; command
// line flags override both.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"go.fpgaboards.dev/boards/logging"
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/toolchain"
	"go.fpgaboards.dev/boards/utils"
)

const (
	// FileName is the config file looked up in the config directory.
	FileName = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. BOARDS_OUTPUT_DIR.
	EnvPrefix = "BOARDS"

	keyOutputDir  = "output_dir"
	keyHistoryDB  = "history_db"
	keyLogLevel   = "log_level"
	keyToolchains = "toolchains"

	appDir = "fpgaboards"
)

// Config is the resolved user configuration.
type Config struct {
	OutputDir string `mapstructure:"output_dir"`
	HistoryDB string `mapstructure:"history_db"`
	LogLevel  string `mapstructure:"log_level"`
	// Toolchains maps a vendor ("xilinx", "lattice", "intel", "gowin") to the toolchain used
	// instead of each board's default.
	Toolchains map[string]string `mapstructure:"toolchains"`

	// File is the config file that was read, empty when there was none.
	File string `mapstructure:"-"`
}

// DefaultDir is the directory config.yaml is read from when none is given.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locating the user config directory")
	}
	return filepath.Join(dir, appDir), nil
}

func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, appDir)
	}
	return filepath.Join(os.TempDir(), appDir)
}

// Load reads dir/config.yaml if it exists and applies environment overrides. An empty dir
// means DefaultDir.
func Load(dir string) (*Config, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	v := viper.New()
	v.SetDefault(keyOutputDir, "build")
	v.SetDefault(keyHistoryDB, filepath.Join(defaultDataDir(), "history.db"))
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyToolchains, map[string]string{})

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "reading %s", filepath.Join(dir, FileName))
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	conf.File = v.ConfigFileUsed()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks the log level and that every toolchain preference names a known vendor and a
// toolchain that vendor's parts can use.
func (c *Config) Validate() error {
	var errs error
	if c.OutputDir == "" {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(c.File, keyOutputDir))
	}
	if _, err := logging.LevelFromString(c.LogLevel); err != nil {
		errs = multierr.Append(errs, utils.NewConfigValidationError(c.File, err))
	}
	vendors := c.vendors()
	for _, vendor := range vendors {
		kind, err := toolchain.ParseKind(c.Toolchains[vendor])
		if err != nil {
			errs = multierr.Append(errs, utils.NewConfigValidationError(c.File, errors.Wrap(err, keyToolchains+"."+vendor)))
			continue
		}
		families := vendorFamilies(platform.Vendor(vendor))
		if len(families) == 0 {
			errs = multierr.Append(errs, utils.NewConfigValidationError(c.File,
				utils.NewUnsupportedOptionError("vendor", vendor, knownVendors())))
			continue
		}
		if !lo.SomeBy(families, func(f platform.Family) bool { return toolchain.Check(kind, f) == nil }) {
			errs = multierr.Append(errs, utils.NewConfigValidationError(c.File,
				errors.Errorf("%s.%s: %s cannot target %s parts", keyToolchains, vendor, kind, vendor)))
		}
	}
	return errs
}

func (c *Config) vendors() []string {
	vendors := make([]string, 0, len(c.Toolchains))
	for v := range c.Toolchains {
		vendors = append(vendors, v)
	}
	sort.Strings(vendors)
	return vendors
}

// Level is the parsed log level.
func (c *Config) Level() logging.Level {
	level, err := logging.LevelFromString(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// ToolchainFor returns the preferred toolchain for a device family, or "" to keep the board's
// default. A preference the family cannot use is ignored.
func (c *Config) ToolchainFor(family platform.Family) string {
	name := c.Toolchains[string(family.Vendor())]
	if name == "" {
		return ""
	}
	kind, err := toolchain.ParseKind(name)
	if err != nil || toolchain.Check(kind, family) != nil {
		return ""
	}
	return string(kind)
}

func vendorFamilies(vendor platform.Vendor) []platform.Family {
	var out []platform.Family
	for _, f := range platform.Families {
		if f.Vendor() == vendor {
			out = append(out, f)
		}
	}
	return out
}

func knownVendors() []string {
	seen := map[platform.Vendor]bool{}
	var out []string
	for _, f := range platform.Families {
		if v := f.Vendor(); !seen[v] {
			seen[v] = true
			out = append(out, string(v))
		}
	}
	return out
}
