// Package editor mutates loaded declaration trees in place. Edits only touch
// the nodes they add, comment out or remove; every other node keeps its text.
// Nothing here reads or writes files.
package editor

import (
	"slices"

	"github.com/arthur-debert/pacdec/pkg/decl"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/kdl"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// Mode selects how RemovePackages gets rid of a package node.
type Mode int

const (
	// ModeComment slashdashes the node. It can be undone with
	// UncommentPackages.
	ModeComment Mode = iota
	// ModeDelete cuts the node out of its parent.
	ModeDelete
)

func (m Mode) String() string {
	if m == ModeDelete {
		return "delete"
	}
	return "comment"
}

// InsertResult describes where InsertPackages put the packages.
type InsertResult struct {
	// Target is the category that received the packages, with its real path.
	Target types.Category
	// File is the document holding Target.
	File string
	// Matches counts every category that matched the selector.
	Matches  int
	Inserted []types.Package
	// Skipped holds packages already present directly under Target.
	Skipped []types.Package
}

// Ambiguous reports whether the selector matched more than one category.
func (r InsertResult) Ambiguous() bool {
	return r.Matches > 1
}

// InsertPackages appends one node per package to the first category matching
// category, in traversal order. An empty category.Path matches the name at
// any depth.
func InsertPackages(docs []decl.Document, category types.Category, pkgs []types.Package) (InsertResult, error) {
	logger := logging.GetLogger("editor")

	var (
		result InsertResult
		target *kdl.Node
	)
	decl.Walk(docs, func(v decl.Visit) bool {
		cat, ok := v.Decl.(decl.CategoryDecl)
		if !ok || cat.Name != category.Name {
			return true
		}
		if len(category.Path) > 0 && !slices.Equal(v.Path, category.Path) {
			return true
		}
		result.Matches++
		if target == nil {
			target = cat.Node()
			result.Target = types.Category{Name: cat.Name, Path: slices.Clone(v.Path)}
			result.File = v.Doc.Path
		}
		return true
	})

	if target == nil {
		return result, errors.Newf(errors.ErrNoSuchCategory, "no category %s", category.FullPath()).
			WithDetail("category", category.FullPath())
	}
	if result.Ambiguous() {
		logger.Debug().
			Str("category", category.FullPath()).
			Int("matches", result.Matches).
			Str("target", result.Target.FullPath()).
			Msg("Category selector is ambiguous, using first match")
	}

	present := types.NewPackageSet(directPackages(target)...)
	for _, pkg := range pkgs {
		if !present.Add(pkg) {
			result.Skipped = append(result.Skipped, pkg)
			continue
		}
		target.AppendChild(decl.PackageNode(pkg))
		result.Inserted = append(result.Inserted, pkg)
	}

	logger.Debug().
		Str("file", result.File).
		Str("category", result.Target.FullPath()).
		Int("inserted", len(result.Inserted)).
		Int("skipped", len(result.Skipped)).
		Msg("Inserted packages")
	return result, nil
}

func directPackages(node *kdl.Node) []types.Package {
	if node.Children == nil {
		return nil
	}
	var pkgs []types.Package
	for _, child := range node.Children.Nodes {
		if d, ok := decl.Classify(child).(decl.PackageDecl); ok {
			pkgs = append(pkgs, d.Package)
		}
	}
	return pkgs
}

type location struct {
	parent *kdl.Document
	index  int
}

// RemovePackages comments out or deletes every active node declaring one of
// pkgs and returns how many nodes it changed.
func RemovePackages(docs []decl.Document, pkgs []types.Package, mode Mode) int {
	wanted := types.NewPackageSet(pkgs...)

	var targets []location
	decl.Walk(docs, func(v decl.Visit) bool {
		if d, ok := v.Decl.(decl.PackageDecl); ok && wanted.Contains(d.Package) {
			targets = append(targets, location{parent: v.Parent, index: v.Index})
		}
		return true
	})

	switch mode {
	case ModeDelete:
		// Later indices first so earlier ones stay valid.
		for i := len(targets) - 1; i >= 0; i-- {
			targets[i].parent.Remove(targets[i].index)
		}
	default:
		for _, t := range targets {
			t.parent.Nodes[t.index].Comment()
		}
	}

	logger := logging.GetLogger("editor")
	logger.Debug().
		Str("mode", mode.String()).
		Int("nodes", len(targets)).
		Msg("Removed packages")
	return len(targets)
}

// UncommentPackages revives slashdashed nodes declaring one of pkgs and
// returns how many it revived.
func UncommentPackages(docs []decl.Document, pkgs []types.Package) int {
	wanted := types.NewPackageSet(pkgs...)
	count := 0
	decl.Walk(docs, func(v decl.Visit) bool {
		if _, ok := v.Decl.(decl.InertDecl); !ok {
			return true
		}
		node := v.Decl.Node()
		if d, ok := decl.ClassifyIgnoringComment(node).(decl.PackageDecl); ok && wanted.Contains(d.Package) {
			if node.Uncomment() {
				count++
			}
		}
		return true
	})
	return count
}
