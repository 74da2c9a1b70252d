package add

import (
	"context"

	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/editor"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// AddOptions defines the options for the Add command.
type AddOptions struct {
	Session *core.Session
	// Packages to declare. When empty the user picks from every package the
	// repositories offer.
	Packages []string
	// Category selector such as "dev/languages". When empty the user picks
	// one of the declared categories.
	Category string
	// Revive uncomments packages that were commented out instead of
	// declaring them a second time.
	Revive bool
}

// AddResult reports what Add changed.
type AddResult struct {
	Packages []types.Package
	// Revived were uncommented in place.
	Revived []types.Package
	Insert  editor.InsertResult
	Persist core.PersistResult
}

// Add declares packages under a category and saves the declarations.
func Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	log := logging.GetLogger("commands.add")
	log.Debug().Str("command", "Add").Msg("Executing command")

	s := opts.Session
	if err := s.Load(); err != nil {
		return nil, err
	}

	pkgs, err := Resolve(ctx, s, opts.Packages, core.SourceAvailable)
	if err != nil {
		return nil, err
	}
	s.Printer.PackageList("Adding packages", types.PackageNames(pkgs), "Added")

	result, err := Declare(ctx, s, pkgs, opts.Category, opts.Revive)
	if err != nil {
		return nil, err
	}

	result.Persist, err = s.Persist()
	if err != nil {
		return result, err
	}

	log.Info().Str("command", "Add").
		Int("inserted", len(result.Insert.Inserted)).
		Int("revived", len(result.Revived)).
		Msg("Command finished")
	return result, nil
}

// Resolve parses names, or asks the user to pick from source when there are
// none.
func Resolve(ctx context.Context, s *core.Session, names []string, source core.Source) ([]types.Package, error) {
	if len(names) == 0 {
		return s.PickPackages(ctx, source)
	}
	return core.ParsePackages(names)
}

// Declare inserts pkgs into the category named by selector, picking one when
// selector is empty. It does not persist.
func Declare(ctx context.Context, s *core.Session, pkgs []types.Package, selector string, revive bool) (*AddResult, error) {
	result := &AddResult{Packages: pkgs}

	remaining := pkgs
	if revive {
		remaining = nil
		for _, p := range pkgs {
			if editor.UncommentPackages(s.Docs, []types.Package{p}) > 0 {
				result.Revived = append(result.Revived, p)
				continue
			}
			remaining = append(remaining, p)
		}
		if len(remaining) == 0 {
			return result, nil
		}
	}

	var (
		category types.Category
		err      error
	)
	if selector == "" {
		category, err = s.PickCategory(ctx)
	} else {
		category, err = types.ParseCategory(selector)
	}
	if err != nil {
		return nil, err
	}

	result.Insert, err = editor.InsertPackages(s.Docs, category, remaining)
	if err != nil {
		return nil, err
	}
	if result.Insert.Ambiguous() {
		s.Printer.Warning("category " + category.FullPath() + " matches several categories, using " +
			result.Insert.Target.FullPath() + " in " + result.Insert.File)
	}
	if len(result.Insert.Skipped) > 0 {
		s.Printer.PackageList("Already declared", types.PackageNames(result.Insert.Skipped), "Muted")
	}
	return result, nil
}
