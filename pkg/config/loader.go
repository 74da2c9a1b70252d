package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables read as settings. Sections are
// separated from keys with a double underscore.
const EnvPrefix = "PACDEC_"

// LoadOptions selects the settings file.
type LoadOptions struct {
	// SettingsFile is read when it exists. Empty means the XDG location.
	SettingsFile string
	// Required makes a missing SettingsFile an error. It is set when the
	// user named the file explicitly.
	Required bool
	// Paths resolves default locations. Nil uses paths.New.
	Paths paths.Paths
}

// Load builds the Config from defaults, the settings file and environment.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	p := opts.Paths
	if p == nil {
		var err error
		p, err = paths.New()
		if err != nil {
			return nil, err
		}
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	// 2. Settings file
	settingsFile := opts.SettingsFile
	if settingsFile == "" {
		settingsFile = p.SettingsFile()
	}
	settingsFile = paths.ExpandHome(settingsFile)
	if _, err := os.Stat(settingsFile); err == nil {
		if err := k.Load(file.Provider(settingsFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", settingsFile)
		}
		logger.Debug().Str("path", settingsFile).Msg("Loaded settings file")
	} else if opts.Required {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "settings file %s not found", settingsFile)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Unmarshal
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	// 5. Post-process
	resolvePaths(cfg, p)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults alone, with unset paths resolved
// through p.
func Default(p paths.Paths) (*Config, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, err
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	resolvePaths(cfg, p)
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// envKey maps PACDEC_PACKAGE_MANAGER__COMMAND to package_manager.command.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func resolvePaths(cfg *Config, p paths.Paths) {
	if cfg.DeclarationFile == "" {
		cfg.DeclarationFile = p.DeclarationFile()
	}
	if cfg.LogFile == "" {
		cfg.LogFile = p.LogFilePath()
	}
	cfg.DeclarationFile = paths.ExpandHome(cfg.DeclarationFile)
	cfg.LogFile = paths.ExpandHome(cfg.LogFile)
	cfg.PacmanLog = paths.ExpandHome(cfg.PacmanLog)
	cfg.Backup.Dir = paths.ExpandHome(cfg.Backup.Dir)
}
