package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pacdec/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for pacdec
	EnvConfigDir = "PACDEC_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for pacdec
	EnvStateDir = "PACDEC_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// File and directory names
const (
	AppDirName          = "pacdec"
	DeclarationFileName = "packages.kdl"
	SettingsFileName    = "config.toml"
	LogFileName         = "pacdec.log"
)

// Paths resolves pacdec's locations.
type Paths interface {
	ConfigDir() string
	StateDir() string
	DeclarationFile() string
	SettingsFile() string
	LogFilePath() string
}

type paths struct {
	configDir string
	stateDir  string
}

// New resolves the directories from the environment.
func New() (Paths, error) {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	for _, dir := range []*string{&p.configDir, &p.stateDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}
	return p, nil
}

func (p *paths) ConfigDir() string { return p.configDir }
func (p *paths) StateDir() string  { return p.stateDir }

// DeclarationFile is the default root declaration file.
func (p *paths) DeclarationFile() string {
	return filepath.Join(p.configDir, DeclarationFileName)
}

// SettingsFile is the TOML settings file.
func (p *paths) SettingsFile() string {
	return filepath.Join(p.configDir, SettingsFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not expanded
	return path
}
