package remove

import (
	"context"

	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/diff"
	"github.com/arthur-debert/pacdec/pkg/editor"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// RemoveOptions defines the options for the Remove command.
type RemoveOptions struct {
	Session *core.Session
	// Packages to drop from the declarations. When empty the user picks
	// from the explicitly installed packages.
	Packages []string
	// Delete cuts the nodes out instead of commenting them out.
	Delete bool
}

// RemoveResult reports what Remove changed.
type RemoveResult struct {
	Packages []types.Package
	Mode     editor.Mode
	// Nodes counts the declaration nodes changed.
	Nodes   int
	Persist core.PersistResult
}

// Remove comments out (or deletes) every declaration of the packages and
// saves.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	log := logging.GetLogger("commands.remove")
	log.Debug().Str("command", "Remove").Msg("Executing command")

	s := opts.Session
	if err := s.Load(); err != nil {
		return nil, err
	}

	pkgs, err := Resolve(ctx, s, opts.Packages)
	if err != nil {
		return nil, err
	}
	s.Printer.PackageList("Removing packages", types.PackageNames(pkgs), "Removed")

	result := Undeclare(s, pkgs, opts.Delete)
	result.Persist, err = s.Persist()
	if err != nil {
		return result, err
	}

	log.Info().Str("command", "Remove").Int("nodes", result.Nodes).Msg("Command finished")
	return result, nil
}

// Resolve parses names, or asks the user to pick among the explicitly
// installed packages when there are none.
func Resolve(ctx context.Context, s *core.Session, names []string) ([]types.Package, error) {
	if len(names) == 0 {
		return s.PickPackages(ctx, core.SourceExplicit)
	}
	return core.ParsePackages(names)
}

// Undeclare edits the loaded documents without persisting. Packages that
// are not declared anywhere are reported as a warning.
func Undeclare(s *core.Session, pkgs []types.Package, del bool) *RemoveResult {
	mode := editor.ModeComment
	if del {
		mode = editor.ModeDelete
	}

	declared := diff.DeclaredPackages(s.Docs)
	var missing []string
	for _, p := range pkgs {
		if !declared.Contains(p) {
			missing = append(missing, p.String())
		}
	}
	if len(missing) > 0 {
		s.Printer.PackageList("Not declared", missing, "Muted")
	}

	return &RemoveResult{
		Packages: pkgs,
		Mode:     mode,
		Nodes:    editor.RemovePackages(s.Docs, pkgs, mode),
	}
}
