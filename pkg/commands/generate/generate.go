package generate

import (
	"context"

	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/diff"
	"github.com/arthur-debert/pacdec/pkg/editor"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// GenerateOptions defines the options for the Generate command.
type GenerateOptions struct {
	Session *core.Session
	// Category receives the undeclared packages. Empty means the configured
	// default_category.
	Category string
	// Delete removes declarations of missing packages instead of
	// commenting them out.
	Delete bool
}

// GenerateResult reports how the declarations were brought in line.
type GenerateResult struct {
	Diff    diff.Result
	InSync  bool
	Removed int
	Insert  editor.InsertResult
	Persist core.PersistResult
}

// Generate updates the declarations to match the system: packages that are
// installed but undeclared are appended to the default category, and
// declarations of packages that are not installed are commented out. One
// confirmation covers both edits.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	log := logging.GetLogger("commands.generate")
	log.Debug().Str("command", "Generate").Msg("Executing command")

	s := opts.Session
	if err := s.Load(); err != nil {
		return nil, err
	}

	category, err := target(s, opts.Category)
	if err != nil {
		return nil, err
	}

	d, err := s.Diff(ctx)
	if err != nil {
		return nil, err
	}
	result := &GenerateResult{Diff: d}
	if d.Empty() {
		result.InSync = true
		s.Printer.Header("Packages are in sync, nothing to generate")
		return result, nil
	}

	s.Printer.PackageList("Packages to add to config", types.PackageNames(d.ToAdd), "Added")
	s.Printer.PackageList("Packages to remove from config", types.PackageNames(d.ToRemove), "Removed")

	if !s.DryRun {
		if err := s.Confirm("Proceed?"); err != nil {
			return result, err
		}
	}

	if len(d.ToRemove) > 0 {
		mode := editor.ModeComment
		if opts.Delete {
			mode = editor.ModeDelete
		}
		result.Removed = editor.RemovePackages(s.Docs, d.ToRemove, mode)
	}
	if len(d.ToAdd) > 0 {
		result.Insert, err = editor.InsertPackages(s.Docs, category, d.ToAdd)
		if err != nil {
			return result, err
		}
		if result.Insert.Ambiguous() {
			s.Printer.Warning("category " + category.FullPath() + " matches several categories, using " +
				result.Insert.Target.FullPath() + " in " + result.Insert.File)
		}
	}

	result.Persist, err = s.Persist()
	if err != nil {
		return result, err
	}

	log.Info().Str("command", "Generate").
		Int("added", len(result.Insert.Inserted)).
		Int("removed", result.Removed).
		Msg("Command finished")
	return result, nil
}

func target(s *core.Session, selector string) (types.Category, error) {
	if selector == "" {
		return s.Config.Category()
	}
	return types.ParseCategory(selector)
}
