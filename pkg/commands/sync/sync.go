package sync

import (
	"context"
	"fmt"

	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/diff"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// SyncOptions defines the options for the Sync command.
type SyncOptions struct {
	Session *core.Session
}

// SyncResult reports the diff and what was applied. A declined phase leaves
// its list empty.
type SyncResult struct {
	Diff        diff.Result
	InSync      bool
	Installed   []string
	Uninstalled []string
}

// Sync makes the system match the declarations: declared packages that are
// missing get installed, installed packages that are not declared get
// uninstalled. Each phase is confirmed on its own; declining one stops the
// command with USER_CANCELLED, keeping whatever an earlier phase did.
func Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	log := logging.GetLogger("commands.sync")
	log.Debug().Str("command", "Sync").Msg("Executing command")

	s := opts.Session
	if err := s.Load(); err != nil {
		return nil, err
	}

	d, err := s.Diff(ctx)
	if err != nil {
		return nil, err
	}
	result := &SyncResult{Diff: d}
	if d.Empty() {
		result.InSync = true
		s.Printer.Header("Packages are in sync, nothing to do")
		return result, nil
	}

	toInstall := types.PackageNames(d.ToRemove)
	toUninstall := types.PackageNames(d.ToAdd)

	s.Printer.PackageList("Packages to install", toInstall, "Added")
	s.Printer.PackageList("Packages to uninstall", toUninstall, "Removed")

	if len(toInstall) > 0 {
		if err := phase(ctx, s, fmt.Sprintf("Install %d packages?", len(toInstall)), "install", toInstall, s.Manager.Install); err != nil {
			return result, err
		}
		if !s.DryRun {
			result.Installed = toInstall
		}
	}

	if len(toUninstall) > 0 {
		if err := phase(ctx, s, fmt.Sprintf("Uninstall %d packages?", len(toUninstall)), "uninstall", toUninstall, s.Manager.Uninstall); err != nil {
			return result, err
		}
		if !s.DryRun {
			result.Uninstalled = toUninstall
		}
	}

	log.Info().Str("command", "Sync").
		Int("installed", len(result.Installed)).
		Int("uninstalled", len(result.Uninstalled)).
		Msg("Command finished")
	return result, nil
}

func phase(ctx context.Context, s *core.Session, question, verb string, names []string, fn func(context.Context, []string) error) error {
	if !s.DryRun {
		if err := s.Confirm(question); err != nil {
			return err
		}
	}
	return s.Mutate(ctx, verb, names, fn)
}
