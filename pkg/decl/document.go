package decl

import (
	"github.com/arthur-debert/pacdec/pkg/kdl"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// Document is one parsed declaration file.
type Document struct {
	// Path is the canonical path the tree was read from.
	Path string
	Tree *kdl.Document
}

// Visit describes one node reached by Walk.
type Visit struct {
	Doc *Document
	// Parent is the node list holding the node; Index is its position there.
	Parent *kdl.Document
	Index  int
	// Path holds the names of the enclosing categories.
	Path []string
	Decl Decl
}

type frame struct {
	doc    *Document
	parent *kdl.Document
	index  int
	path   []string
}

// Walk visits every node of every document in preorder, descending into
// active categories only. fn returns false to stop the walk.
func Walk(docs []Document, fn func(Visit) bool) {
	var stack []frame
	for i := len(docs) - 1; i >= 0; i-- {
		stack = pushChildren(stack, &docs[i], docs[i].Tree, nil)
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := f.parent.Nodes[f.index]
		d := Classify(node)
		if !fn(Visit{Doc: f.doc, Parent: f.parent, Index: f.index, Path: f.path, Decl: d}) {
			return
		}
		if cat, ok := d.(CategoryDecl); ok && node.Children != nil {
			path := make([]string, len(f.path)+1)
			copy(path, f.path)
			path[len(f.path)] = cat.Name
			stack = pushChildren(stack, f.doc, node.Children, path)
		}
	}
}

func pushChildren(stack []frame, doc *Document, parent *kdl.Document, path []string) []frame {
	if parent == nil {
		return stack
	}
	for i := len(parent.Nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{doc: doc, parent: parent, index: i, path: path})
	}
	return stack
}

// Categories returns every active category in traversal order, once per
// full path.
func Categories(docs []Document) []types.Category {
	seen := make(map[string]bool)
	var cats []types.Category
	Walk(docs, func(v Visit) bool {
		if cat, ok := v.Decl.(CategoryDecl); ok {
			c := types.Category{Name: cat.Name, Path: v.Path}
			if !seen[c.FullPath()] {
				seen[c.FullPath()] = true
				cats = append(cats, c)
			}
		}
		return true
	})
	return cats
}

// Packages returns every active package node's package in traversal order,
// duplicates included. Nodes whose names do not parse are skipped with a
// warning.
func Packages(docs []Document) []types.Package {
	logger := logging.GetLogger("decl")
	var pkgs []types.Package
	Walk(docs, func(v Visit) bool {
		switch d := v.Decl.(type) {
		case PackageDecl:
			pkgs = append(pkgs, d.Package)
		case UnknownDecl:
			if d.Err != nil {
				logger.Warn().
					Str("file", v.Doc.Path).
					Str("node", d.Node().Name.Value).
					Err(d.Err).
					Msg("Skipping invalid package")
			}
		}
		return true
	})
	return pkgs
}
