package uninstall

import (
	"context"

	"github.com/arthur-debert/pacdec/pkg/commands/remove"
	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// UninstallOptions defines the options for the Uninstall command.
type UninstallOptions struct {
	Session *core.Session
	// Packages to drop and uninstall. When empty the user picks from the
	// explicitly installed packages.
	Packages []string
	Delete   bool
}

// UninstallResult reports the declaration change and what was uninstalled.
type UninstallResult struct {
	*remove.RemoveResult
	Uninstalled []string
}

// Uninstall removes packages from the declarations like Remove, saves, then
// uninstalls them.
func Uninstall(ctx context.Context, opts UninstallOptions) (*UninstallResult, error) {
	log := logging.GetLogger("commands.uninstall")
	log.Debug().Str("command", "Uninstall").Msg("Executing command")

	s := opts.Session
	if err := s.Load(); err != nil {
		return nil, err
	}

	pkgs, err := remove.Resolve(ctx, s, opts.Packages)
	if err != nil {
		return nil, err
	}
	s.Printer.PackageList("Removing packages", types.PackageNames(pkgs), "Removed")

	result := &UninstallResult{RemoveResult: remove.Undeclare(s, pkgs, opts.Delete)}
	result.Persist, err = s.Persist()
	if err != nil {
		return result, err
	}

	names := types.PackageNames(pkgs)
	if err := s.Mutate(ctx, "uninstall", names, s.Manager.Uninstall); err != nil {
		return result, err
	}
	if !s.DryRun {
		result.Uninstalled = names
	}

	log.Info().Str("command", "Uninstall").Int("packages", len(names)).Msg("Command finished")
	return result, nil
}
