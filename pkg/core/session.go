package core

import (
	"context"
	"strings"
	"time"

	"github.com/arthur-debert/pacdec/pkg/config"
	"github.com/arthur-debert/pacdec/pkg/decl"
	"github.com/arthur-debert/pacdec/pkg/diff"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/persist"
	"github.com/arthur-debert/pacdec/pkg/picker"
	"github.com/arthur-debert/pacdec/pkg/store"
	"github.com/arthur-debert/pacdec/pkg/types"
	"github.com/arthur-debert/pacdec/pkg/ui"
)

// PackageManager is the part of pacman.Manager commands rely on.
type PackageManager interface {
	diff.Querier
	QueryInstalled(ctx context.Context) ([]string, error)
	QueryAvailable(ctx context.Context) ([]string, error)
	Install(ctx context.Context, names []string) error
	Uninstall(ctx context.Context, names []string) error
	PreviewCommand(installed bool) string
}

// Session is one invocation's view of the declarations and the system.
type Session struct {
	Config    *config.Config
	FS        types.FS
	Manager   PackageManager
	Picker    picker.Picker
	Confirmer ui.Confirmer
	Printer   *ui.Printer

	// DryRun renders pending changes instead of writing them and skips
	// package manager mutations.
	DryRun bool
	// ShowDiff renders dry runs as unified diffs.
	ShowDiff bool
	// Now stamps backups. Nil means time.Now.
	Now func() time.Time

	// Docs is filled by Load, included files first.
	Docs []decl.Document
}

// Load reads the root declaration file and its includes.
func (s *Session) Load() error {
	logger := logging.GetLogger("core")
	defer logging.LogOperationStart(logger, "load")()

	docs, err := store.Load(s.FS, s.Config.DeclarationFile)
	if err != nil {
		return err
	}
	s.Docs = docs
	logger.Debug().
		Str("root", s.Config.DeclarationFile).
		Int("documents", len(docs)).
		Msg("Loaded declarations")
	return nil
}

// Diff compares the loaded declarations with the installed packages,
// leaving out the configured ignore list.
func (s *Session) Diff(ctx context.Context) (diff.Result, error) {
	ignore, err := s.Config.IgnoredPackages()
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(ctx, s.Docs, s.Manager, s.FS, s.Config.PacmanLog, ignore)
}

// Confirm asks question, defaulting to yes. A declined question returns an
// error with code USER_CANCELLED.
func (s *Session) Confirm(question string) error {
	ok, err := s.Confirmer.Confirm(question, true)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrUserCancelled, "operation cancelled")
	}
	return nil
}

// PersistResult reports what Persist did.
type PersistResult struct {
	DryRun   bool
	Outcomes []persist.Outcome
}

// Written lists the files that were rewritten.
func (r PersistResult) Written() []string {
	var paths []string
	for _, o := range r.Outcomes {
		if o.Written {
			paths = append(paths, o.Path)
		}
	}
	return paths
}

// Persist writes every changed document, backing each one up first. In a
// dry run the pending content is printed and nothing is written.
func (s *Session) Persist() (PersistResult, error) {
	logger := logging.GetLogger("core")

	if s.DryRun {
		logger.Debug().Bool("diff", s.ShowDiff).Int("documents", len(s.Docs)).Msg("Dry run, rendering pending content")
		text, err := persist.Render(s.FS, s.Docs, s.ShowDiff)
		if err != nil {
			return PersistResult{DryRun: true}, err
		}
		s.Printer.Println(s.Printer.Style("DryRunBanner", "Dry run, nothing written"))
		s.Printer.Print(text)
		return PersistResult{DryRun: true}, nil
	}

	opts := s.Config.PersistOptions()
	opts.Now = s.Now
	outcomes, err := persist.Save(s.FS, s.Docs, opts)
	result := PersistResult{Outcomes: outcomes}
	for _, o := range outcomes {
		if !o.Written {
			continue
		}
		s.Printer.Println("Wrote " + s.Printer.Style("FilePath", o.Path))
	}
	return result, err
}

// Mutate runs fn against the package manager unless this is a dry run, in
// which case the command that would run is printed.
func (s *Session) Mutate(ctx context.Context, verb string, names []string, fn func(context.Context, []string) error) error {
	if len(names) == 0 {
		return nil
	}
	if s.DryRun {
		s.Printer.Println(s.Printer.Style("DryRunBanner", "Dry run, would "+verb+":") + " " + strings.Join(names, " "))
		return nil
	}
	logger := logging.GetLogger("core")
	logger.Info().Str("verb", verb).Strs("packages", names).Msg("Running package manager")
	return fn(ctx, names)
}
