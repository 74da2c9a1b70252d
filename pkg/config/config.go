package config

import (
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/pacman"
	"github.com/arthur-debert/pacdec/pkg/persist"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// Config is the fully resolved settings tree.
type Config struct {
	DeclarationFile string         `koanf:"declaration_file" toml:"declaration_file"`
	LogFile         string         `koanf:"log_file" toml:"log_file"`
	PacmanLog       string         `koanf:"pacman_log" toml:"pacman_log"`
	DefaultCategory string         `koanf:"default_category" toml:"default_category"`
	PackageManager  PackageManager `koanf:"package_manager" toml:"package_manager"`
	Backup          Backup         `koanf:"backup" toml:"backup"`
	Packages        Packages       `koanf:"packages" toml:"packages"`
}

// PackageManager describes the external command and its flags.
type PackageManager struct {
	Command        string   `koanf:"command" toml:"command"`
	Sudo           bool     `koanf:"sudo" toml:"sudo"`
	Install        []string `koanf:"install" toml:"install"`
	Uninstall      []string `koanf:"uninstall" toml:"uninstall"`
	QueryExplicit  []string `koanf:"query_explicit" toml:"query_explicit"`
	QueryInstalled []string `koanf:"query_installed" toml:"query_installed"`
	QueryAvailable []string `koanf:"query_available" toml:"query_available"`
	InfoInstalled  []string `koanf:"info_installed" toml:"info_installed"`
	InfoAvailable  []string `koanf:"info_available" toml:"info_available"`
}

type Backup struct {
	Dir  string `koanf:"dir" toml:"dir"`
	Mode string `koanf:"mode" toml:"mode"`
}

type Packages struct {
	Ignore []string `koanf:"ignore" toml:"ignore"`
}

// PacmanOptions converts the package manager section for pacman.New.
func (c *Config) PacmanOptions() pacman.Options {
	pm := c.PackageManager
	return pacman.Options{
		Command:        pm.Command,
		Sudo:           pm.Sudo,
		Install:        pm.Install,
		Uninstall:      pm.Uninstall,
		QueryExplicit:  pm.QueryExplicit,
		QueryInstalled: pm.QueryInstalled,
		QueryAvailable: pm.QueryAvailable,
		InfoInstalled:  pm.InfoInstalled,
		InfoAvailable:  pm.InfoAvailable,
	}
}

// PersistOptions converts the backup section for persist.Save.
func (c *Config) PersistOptions() persist.Options {
	return persist.Options{
		BackupDir: c.Backup.Dir,
		Mode:      persist.BackupMode(c.Backup.Mode),
	}
}

// IgnoredPackages parses packages.ignore.
func (c *Config) IgnoredPackages() ([]types.Package, error) {
	pkgs := make([]types.Package, 0, len(c.Packages.Ignore))
	for _, name := range c.Packages.Ignore {
		pkg, err := types.ParsePackage(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "packages.ignore: invalid entry %q", name)
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// Category parses default_category.
func (c *Config) Category() (types.Category, error) {
	cat, err := types.ParseCategory(c.DefaultCategory)
	if err != nil {
		return types.Category{}, errors.Wrap(err, errors.ErrConfigValid, "default_category")
	}
	return cat, nil
}

// Validate checks values that cannot be caught while decoding.
func (c *Config) Validate() error {
	if c.PackageManager.Command == "" {
		return errors.New(errors.ErrConfigValid, "package_manager.command must not be empty")
	}
	switch persist.BackupMode(c.Backup.Mode) {
	case persist.BackupOff, persist.BackupBasic:
	default:
		return errors.Newf(errors.ErrConfigValid, "backup.mode must be %q or %q, got %q",
			persist.BackupBasic, persist.BackupOff, c.Backup.Mode)
	}
	if _, err := c.Category(); err != nil {
		return err
	}
	if _, err := c.IgnoredPackages(); err != nil {
		return err
	}
	return nil
}
