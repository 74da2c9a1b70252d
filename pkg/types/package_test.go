// pkg/types/package_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test package/category parsing, formatting and equality rules

package types_test

import (
	"testing"

	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackage(t *testing.T) {
	tests := []struct {
		text     string
		wantName string
		wantRepo string
		wantErr  bool
	}{
		{text: "foo", wantName: "foo"},
		{text: "aur/foo", wantName: "foo", wantRepo: "aur"},
		{text: "a/b/foo", wantName: "foo", wantRepo: "a/b"},
		{text: "", wantErr: true},
		{text: "aur/", wantErr: true},
		{text: "/foo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pkg, err := types.ParsePackage(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, pkg.Name)
			assert.Equal(t, tt.wantRepo, pkg.Repository)
		})
	}
}

func TestPackage_RoundTrip(t *testing.T) {
	for _, text := range []string{"foo", "aur/foo", "a/b/foo", "lib32-glibc", "chaotic-aur/paru-bin"} {
		pkg, err := types.ParsePackage(text)
		require.NoError(t, err)
		assert.Equal(t, text, pkg.String())

		again, err := types.ParsePackage(pkg.String())
		require.NoError(t, err)
		assert.True(t, again.Equal(pkg))
		assert.Equal(t, pkg.Repository, again.Repository)
	}
}

func TestPackage_Equal(t *testing.T) {
	bare := types.Package{Name: "foo"}
	aur := types.Package{Name: "foo", Repository: "aur"}
	extra := types.Package{Name: "foo", Repository: "extra"}
	other := types.Package{Name: "bar"}
	tagged := types.Package{Name: "foo", Tags: []string{"cli"}}

	assert.True(t, bare.Equal(aur), "unqualified matches any repository")
	assert.True(t, aur.Equal(bare))
	assert.True(t, bare.Equal(extra))
	assert.True(t, aur.Equal(aur))
	assert.False(t, aur.Equal(extra), "conflicting repositories differ")
	assert.False(t, bare.Equal(other))
	assert.True(t, bare.Equal(tagged), "tags are not part of identity")
}

func TestPackage_Compare(t *testing.T) {
	assert.Negative(t, types.Package{Name: "a"}.Compare(types.Package{Name: "b"}))
	assert.Negative(t, types.Package{Name: "a"}.Compare(types.Package{Name: "a", Repository: "aur"}))
	assert.Positive(t, types.Package{Name: "a", Repository: "extra"}.Compare(types.Package{Name: "a", Repository: "aur"}))
	assert.Zero(t, types.Package{Name: "a", Repository: "aur"}.Compare(types.Package{Name: "a", Repository: "aur"}))
}

func TestPackageSet(t *testing.T) {
	set := types.NewPackageSet()

	assert.True(t, set.Add(types.Package{Name: "foo", Repository: "aur"}))
	assert.False(t, set.Add(types.Package{Name: "foo"}), "unqualified duplicate is rejected")
	assert.True(t, set.Add(types.Package{Name: "bar"}))
	assert.True(t, set.Add(types.Package{Name: "baz", Repository: "extra"}))
	assert.True(t, set.Add(types.Package{Name: "baz", Repository: "core"}), "conflicting repositories are distinct")

	assert.True(t, set.Contains(types.Package{Name: "foo"}))
	assert.True(t, set.Contains(types.Package{Name: "foo", Repository: "aur"}))
	assert.False(t, set.Contains(types.Package{Name: "foo", Repository: "extra"}))
	assert.True(t, set.Contains(types.Package{Name: "baz"}))
	assert.False(t, set.Contains(types.Package{Name: "qux"}))

	assert.Equal(t, 4, set.Len())
	assert.Equal(t, []string{"aur/foo", "bar", "extra/baz", "core/baz"}, types.PackageNames(set.Slice()))

	var nilSet *types.PackageSet
	assert.False(t, nilSet.Contains(types.Package{Name: "foo"}))
	assert.Zero(t, nilSet.Len())
}

func TestParseCategory(t *testing.T) {
	cat, err := types.ParseCategory("dev/languages/go")
	require.NoError(t, err)
	assert.Equal(t, "go", cat.Name)
	assert.Equal(t, []string{"dev", "languages"}, cat.Path)
	assert.Equal(t, "dev/languages/go", cat.FullPath())

	bare, err := types.ParseCategory("uncat")
	require.NoError(t, err)
	assert.Empty(t, bare.Path)
	assert.Equal(t, "uncat", bare.FullPath())

	for _, bad := range []string{"", "a//b", "/a", "a/"} {
		_, err := types.ParseCategory(bad)
		assert.Error(t, err, bad)
	}
}

func TestCategory_Equal(t *testing.T) {
	a := types.Category{Name: "go", Path: []string{"dev"}}
	assert.True(t, a.Equal(types.Category{Name: "go", Path: []string{"dev"}}))
	assert.False(t, a.Equal(types.Category{Name: "go"}), "category identity is exact")
	assert.False(t, a.Equal(types.Category{Name: "go", Path: []string{"work"}}))
}
