// pkg/decl/decl_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test node classification and forest traversal

package decl_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/pacdec/pkg/decl"
	"github.com/arthur-debert/pacdec/pkg/kdl"
	"github.com/arthur-debert/pacdec/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, path, src string) decl.Document {
	t.Helper()
	tree, err := kdl.Parse(src)
	require.NoError(t, err)
	return decl.Document{Path: path, Tree: tree}
}

func TestClassify(t *testing.T) {
	doc := parseDoc(t, "/p.kdl", `cat:dev { }
@include "other.kdl"
"aur/paru-bin" "aur" "helper"
/- firefox
weird:name
@other
"aur/"
`)
	nodes := doc.Tree.Nodes

	cat, ok := decl.Classify(nodes[0]).(decl.CategoryDecl)
	require.True(t, ok)
	assert.Equal(t, "dev", cat.Name)

	inc, ok := decl.Classify(nodes[1]).(decl.IncludeDecl)
	require.True(t, ok)
	assert.Equal(t, "other.kdl", inc.Path)

	pkg, ok := decl.Classify(nodes[2]).(decl.PackageDecl)
	require.True(t, ok)
	assert.Equal(t, "paru-bin", pkg.Package.Name)
	assert.Equal(t, "aur", pkg.Package.Repository)
	assert.Equal(t, []string{"aur", "helper"}, pkg.Package.Tags)
	assert.Same(t, nodes[2], pkg.Node())

	_, ok = decl.Classify(nodes[3]).(decl.InertDecl)
	assert.True(t, ok, "slashdashed nodes are inert")
	revived, ok := decl.ClassifyIgnoringComment(nodes[3]).(decl.PackageDecl)
	require.True(t, ok)
	assert.Equal(t, "firefox", revived.Package.Name)

	unknown, ok := decl.Classify(nodes[4]).(decl.UnknownDecl)
	require.True(t, ok)
	assert.NoError(t, unknown.Err)

	_, ok = decl.Classify(nodes[5]).(decl.UnknownDecl)
	assert.True(t, ok)

	invalid, ok := decl.Classify(nodes[6]).(decl.UnknownDecl)
	require.True(t, ok)
	assert.Error(t, invalid.Err)
}

func TestWalk_PreorderWithPaths(t *testing.T) {
	a := parseDoc(t, "/a.kdl", `cat:base {
    linux
    cat:dev {
        go
    }
    git
}
top
`)
	b := parseDoc(t, "/b.kdl", "cat:dev { rust }\n")

	type seen struct {
		name string
		path string
	}
	var got []seen
	decl.Walk([]decl.Document{a, b}, func(v decl.Visit) bool {
		got = append(got, seen{v.Parent.Nodes[v.Index].Name.Value, strings.Join(v.Path, "/")})
		return true
	})

	assert.Equal(t, []seen{
		{"cat:base", ""},
		{"linux", "base"},
		{"cat:dev", "base"},
		{"go", "base/dev"},
		{"git", "base"},
		{"top", ""},
		{"cat:dev", ""},
		{"rust", "dev"},
	}, got)
}

func TestWalk_Stops(t *testing.T) {
	doc := parseDoc(t, "/a.kdl", "a\nb\nc\n")
	count := 0
	decl.Walk([]decl.Document{doc}, func(v decl.Visit) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestWalk_SkipsInertCategories(t *testing.T) {
	doc := parseDoc(t, "/a.kdl", "/- cat:old {\n    gone\n}\nkept\n")
	assert.Equal(t, []string{"kept"}, types.PackageNames(decl.Packages([]decl.Document{doc})))
}

func TestCategories(t *testing.T) {
	a := parseDoc(t, "/a.kdl", "cat:base {\n    cat:dev { go }\n}\ncat:dev\n")
	b := parseDoc(t, "/b.kdl", "cat:base { x }\n")

	cats := decl.Categories([]decl.Document{a, b})
	var paths []string
	for _, c := range cats {
		paths = append(paths, c.FullPath())
	}
	assert.Equal(t, []string{"base", "base/dev", "dev"}, paths)
}

func TestPackages(t *testing.T) {
	doc := parseDoc(t, "/a.kdl", `@include "x.kdl"
cat:base {
    linux "kernel"
    "aur/"
    /- firefox
    odd:thing
    "aur/yay"
}
linux
`)
	pkgs := decl.Packages([]decl.Document{doc})
	assert.Equal(t, []string{"linux", "aur/yay", "linux"}, types.PackageNames(pkgs))
	assert.Equal(t, []string{"kernel"}, pkgs[0].Tags)
}

func TestPackageNode(t *testing.T) {
	node := decl.PackageNode(types.Package{Name: "paru-bin", Repository: "aur", Tags: []string{"helper"}})
	assert.Equal(t, `"aur/paru-bin" "helper"`, node.String())
	assert.Equal(t, "cat:dev", decl.CategoryNodeName("dev"))
}
