package install

import (
	"context"

	"github.com/arthur-debert/pacdec/pkg/commands/add"
	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// InstallOptions defines the options for the Install command.
type InstallOptions struct {
	Session *core.Session
	// Packages to declare and install. When empty the user picks from every
	// package the repositories offer.
	Packages []string
	Category string
	Revive   bool
}

// InstallResult reports the declaration change and what was installed.
type InstallResult struct {
	*add.AddResult
	Installed []string
}

// Install declares packages like Add, saves, then installs them.
func Install(ctx context.Context, opts InstallOptions) (*InstallResult, error) {
	log := logging.GetLogger("commands.install")
	log.Debug().Str("command", "Install").Msg("Executing command")

	s := opts.Session
	if err := s.Load(); err != nil {
		return nil, err
	}

	pkgs, err := add.Resolve(ctx, s, opts.Packages, core.SourceAvailable)
	if err != nil {
		return nil, err
	}
	s.Printer.PackageList("Adding packages", types.PackageNames(pkgs), "Added")

	declared, err := add.Declare(ctx, s, pkgs, opts.Category, opts.Revive)
	if err != nil {
		return nil, err
	}
	result := &InstallResult{AddResult: declared}

	result.Persist, err = s.Persist()
	if err != nil {
		return result, err
	}

	names := types.PackageNames(pkgs)
	if err := s.Mutate(ctx, "install", names, s.Manager.Install); err != nil {
		return result, err
	}
	if !s.DryRun {
		result.Installed = names
	}

	log.Info().Str("command", "Install").Int("packages", len(names)).Msg("Command finished")
	return result, nil
}
