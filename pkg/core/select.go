package core

import (
	"context"

	"github.com/arthur-debert/pacdec/pkg/decl"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// Source names the package list a picker is filled from.
type Source int

const (
	// SourceInstalled is every installed package.
	SourceInstalled Source = iota
	// SourceExplicit is the explicitly installed packages.
	SourceExplicit
	// SourceAvailable is everything the configured repositories offer.
	SourceAvailable
)

func (s Source) String() string {
	switch s {
	case SourceExplicit:
		return "explicit"
	case SourceAvailable:
		return "available"
	default:
		return "installed"
	}
}

// Candidates queries the package manager for the names in source.
func (s *Session) Candidates(ctx context.Context, source Source) ([]string, error) {
	switch source {
	case SourceExplicit:
		return s.Manager.QueryExplicit(ctx)
	case SourceAvailable:
		return s.Manager.QueryAvailable(ctx)
	default:
		return s.Manager.QueryInstalled(ctx)
	}
}

// PickPackages lets the user choose packages from source. Choosing nothing
// counts as cancelling.
func (s *Session) PickPackages(ctx context.Context, source Source) ([]types.Package, error) {
	candidates, err := s.Candidates(ctx, source)
	if err != nil {
		return nil, err
	}
	preview := s.Manager.PreviewCommand(source != SourceAvailable)
	picked, err := s.Picker.PickMany(ctx, "packages", candidates, preview)
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, errors.New(errors.ErrUserCancelled, "no packages selected")
	}
	return ParsePackages(picked)
}

// PickCategory lets the user choose one of the declared categories.
func (s *Session) PickCategory(ctx context.Context) (types.Category, error) {
	cats := decl.Categories(s.Docs)
	if len(cats) == 0 {
		return types.Category{}, errors.New(errors.ErrNoSuchCategory, "no categories declared")
	}

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.FullPath()
	}

	picked, err := s.Picker.PickOne(ctx, "category", names)
	if err != nil {
		return types.Category{}, err
	}
	return types.ParseCategory(picked)
}

// ParsePackages parses package arguments as given on the command line.
func ParsePackages(names []string) ([]types.Package, error) {
	pkgs := make([]types.Package, 0, len(names))
	for _, n := range names {
		pkg, err := types.ParsePackage(n)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}
