// pkg/store/store_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Memory filesystem
// PURPOSE: Test include resolution, ordering and cycle detection

package store_test

import (
	"testing"

	"github.com/arthur-debert/pacdec/pkg/decl"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/filesystem"
	"github.com/arthur-debert/pacdec/pkg/kdl"
	"github.com/arthur-debert/pacdec/pkg/store"
	"github.com/arthur-debert/pacdec/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	for path, content := range files {
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	}
	return fs
}

func docPaths(docs []decl.Document) []string {
	paths := make([]string, len(docs))
	for i, d := range docs {
		paths[i] = d.Path
	}
	return paths
}

func TestLoad_SingleFile(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/packages.kdl": "cat:uncat {\n    foo\n}\n",
	})

	docs, err := store.Load(fs, "/cfg/packages.kdl")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "/cfg/packages.kdl", docs[0].Path)
	assert.Equal(t, "cat:uncat {\n    foo\n}\n", docs[0].Tree.String())
}

func TestLoad_IncludesPrecedeIncluder(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/root.kdl":        "@include \"a.kdl\"\n@include \"sub/b.kdl\"\nroot-pkg\n",
		"/cfg/a.kdl":           "a-pkg\n",
		"/cfg/sub/b.kdl":       "@include \"c.kdl\"\nb-pkg\n",
		"/cfg/sub/c.kdl":       "c-pkg\n",
		"/cfg/sub/ignored.kdl": "never\n",
	})

	docs, err := store.Load(fs, "/cfg/root.kdl")
	require.NoError(t, err)
	assert.Equal(t, []string{"/cfg/a.kdl", "/cfg/sub/c.kdl", "/cfg/sub/b.kdl", "/cfg/root.kdl"}, docPaths(docs))
	assert.Equal(t, []string{"a-pkg", "c-pkg", "b-pkg", "root-pkg"}, types.PackageNames(decl.Packages(docs)))
}

func TestLoad_NestedIncludeIsNotFollowed(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/root.kdl": "cat:base {\n    @include \"deep.kdl\"\n    linux\n}\n",
		"/cfg/deep.kdl": "deep\n",
	})

	docs, err := store.Load(fs, "/cfg/root.kdl")
	require.NoError(t, err)
	assert.Equal(t, []string{"/cfg/root.kdl"}, docPaths(docs))
}

func TestLoad_CommentedIncludeIsInert(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/root.kdl": "/- @include \"missing.kdl\"\nfoo\n",
	})

	docs, err := store.Load(fs, "/cfg/root.kdl")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLoad_Cycle(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/a.kdl": "@include \"b.kdl\"\n",
		"/cfg/b.kdl": "@include \"a.kdl\"\n",
	})

	_, err := store.Load(fs, "/cfg/a.kdl")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCycle))
	assert.Equal(t, "/cfg/a.kdl", errors.GetErrorDetails(err)["path"])
}

func TestLoad_SelfInclude(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/a.kdl": "@include \"./a.kdl\"\n",
	})

	_, err := store.Load(fs, "/cfg/a.kdl")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCycle))
}

func TestLoad_DiamondLoadsOnce(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/root.kdl": "@include \"b.kdl\"\n@include \"b.kdl\"\n@include \"c.kdl\"\n",
		"/cfg/b.kdl":    "shared\n",
		"/cfg/c.kdl":    "@include \"b.kdl\"\nc-pkg\n",
	})

	docs, err := store.Load(fs, "/cfg/root.kdl")
	require.NoError(t, err)
	assert.Equal(t, []string{"/cfg/b.kdl", "/cfg/c.kdl", "/cfg/root.kdl"}, docPaths(docs))

	set := types.NewPackageSet(decl.Packages(docs)...)
	assert.Equal(t, 2, set.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/root.kdl": "@include \"gone.kdl\"\n",
	})

	_, err := store.Load(fs, "/cfg/root.kdl")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))

	_, err = store.Load(fs, "/cfg/absent.kdl")
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
}

func TestLoad_ParseError(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/root.kdl": "@include \"bad.kdl\"\n",
		"/cfg/bad.kdl":  "cat:open {\n    foo\n",
	})

	_, err := store.Load(fs, "/cfg/root.kdl")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse))

	var perr *kdl.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
}
