package decl

import (
	"strings"

	"github.com/arthur-debert/pacdec/pkg/kdl"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// Reserved node names.
const (
	CategoryPrefix = "cat:"
	IncludeName    = "@include"
)

// Decl is the classified form of a declaration node. The concrete types are
// PackageDecl, CategoryDecl, IncludeDecl, InertDecl and UnknownDecl.
type Decl interface {
	Node() *kdl.Node
	isDecl()
}

// PackageDecl is a node naming a package. String arguments are its tags.
type PackageDecl struct {
	node    *kdl.Node
	Package types.Package
}

// CategoryDecl is a container node named cat:<Name>.
type CategoryDecl struct {
	node *kdl.Node
	Name string
}

// IncludeDecl splices another file in. Path is relative to the including
// file and empty when the node has no string argument.
type IncludeDecl struct {
	node *kdl.Node
	Path string
}

// InertDecl is a slashdashed node. It stays in the tree but declares nothing.
type InertDecl struct {
	node *kdl.Node
}

// UnknownDecl is a node that cannot be used. Err is set when the name looked
// like a package but failed to parse.
type UnknownDecl struct {
	node *kdl.Node
	Err  error
}

func (d PackageDecl) Node() *kdl.Node  { return d.node }
func (d CategoryDecl) Node() *kdl.Node { return d.node }
func (d IncludeDecl) Node() *kdl.Node  { return d.node }
func (d InertDecl) Node() *kdl.Node    { return d.node }
func (d UnknownDecl) Node() *kdl.Node  { return d.node }

func (PackageDecl) isDecl()  {}
func (CategoryDecl) isDecl() {}
func (IncludeDecl) isDecl()  {}
func (InertDecl) isDecl()    {}
func (UnknownDecl) isDecl()  {}

// Classify decides once what a node declares.
func Classify(node *kdl.Node) Decl {
	if node.Commented() {
		return InertDecl{node: node}
	}
	return classifyActive(node)
}

// ClassifyIgnoringComment classifies a node as if it were not slashdashed.
// It is used to find soft-deleted packages again.
func ClassifyIgnoringComment(node *kdl.Node) Decl {
	return classifyActive(node)
}

func classifyActive(node *kdl.Node) Decl {
	name := node.Name.Value
	switch {
	case strings.HasPrefix(name, CategoryPrefix):
		return CategoryDecl{node: node, Name: strings.TrimPrefix(name, CategoryPrefix)}
	case name == IncludeName:
		var path string
		if args := node.StringArguments(); len(args) > 0 {
			path = args[0]
		}
		return IncludeDecl{node: node, Path: path}
	case strings.ContainsAny(name, ":@"):
		return UnknownDecl{node: node}
	}

	pkg, err := types.ParsePackage(name)
	if err != nil {
		return UnknownDecl{node: node, Err: err}
	}
	pkg.Tags = node.StringArguments()
	return PackageDecl{node: node, Package: pkg}
}

// CategoryNodeName returns the node name used for a category.
func CategoryNodeName(name string) string {
	return CategoryPrefix + name
}

// PackageNode builds a new, unformatted node declaring pkg.
func PackageNode(pkg types.Package) *kdl.Node {
	return kdl.NewNode(pkg.String(), pkg.Tags...)
}
