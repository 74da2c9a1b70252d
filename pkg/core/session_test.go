// pkg/core/session_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Memory FS, mock collaborators
// PURPOSE: Test session loading, diffing, selection and persistence

package core_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/editor"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/testutil"
	"github.com/arthur-debert/pacdec/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_LoadMissingRoot(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	err := env.Session().Load()
	testutil.RequireErrorCode(t, err, errors.ErrIO)
}

func TestSession_Diff(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteDeclarations("cat:base {\n    linux\n    firefox\n}\n")
	env.SetInstalled("linux", "git", "base")
	env.Config.Packages.Ignore = []string{"base"}

	result, err := env.LoadedSession().Diff(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"git"}, types.PackageNames(result.ToAdd))
	assert.Equal(t, []string{"firefox"}, types.PackageNames(result.ToRemove))
}

func TestSession_Confirm(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Confirmer.Answers = []bool{true, false}
	s := env.Session()

	assert.NoError(t, s.Confirm("first?"))
	testutil.RequireErrorCode(t, s.Confirm("second?"), errors.ErrUserCancelled)
	assert.Equal(t, []string{"first?", "second?"}, env.Confirmer.Questions)
}

func TestSession_PersistWritesAndBacksUp(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteDeclarations("cat:base {\n    linux\n}\n")
	s := env.LoadedSession()

	_, err := editor.InsertPackages(s.Docs, types.Category{Name: "base"}, types.MustParsePackages("git"))
	require.NoError(t, err)

	result, err := s.Persist()
	require.NoError(t, err)
	assert.False(t, result.DryRun)
	assert.Equal(t, []string{env.RootFile()}, result.Written())
	env.AssertFileContent(t, env.RootFile(), "cat:base {\n    linux\n    git\n}\n")
	env.AssertBackupCount(t, env.RootFile(), 1)
	assert.Contains(t, env.Output(), "Wrote "+env.RootFile())
}

func TestSession_PersistUnchangedWritesNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteDeclarations("cat:base {\n    linux\n}\n")

	result, err := env.LoadedSession().Persist()
	require.NoError(t, err)
	assert.Empty(t, result.Written())
	env.AssertBackupCount(t, env.RootFile(), 0)
}

func TestSession_PersistDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	original := "cat:base {\n    linux\n}\n"
	env.WriteDeclarations(original)
	s := env.LoadedSession()
	s.DryRun = true
	s.ShowDiff = true

	_, err := editor.InsertPackages(s.Docs, types.Category{Name: "base"}, types.MustParsePackages("git"))
	require.NoError(t, err)

	result, err := s.Persist()
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	env.AssertFileContent(t, env.RootFile(), original)
	env.AssertBackupCount(t, env.RootFile(), 0)
	assert.Contains(t, env.Output(), "+    git")
}

func TestSession_MutateDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	s := env.Session()
	s.DryRun = true

	err := s.Mutate(context.Background(), "install", []string{"git"}, env.Manager.Install)
	require.NoError(t, err)
	assert.Empty(t, env.Manager.Installs)
	assert.Contains(t, env.Output(), "would install: git")

	s.DryRun = false
	require.NoError(t, s.Mutate(context.Background(), "install", []string{"git"}, env.Manager.Install))
	assert.Equal(t, [][]string{{"git"}}, env.Manager.Installs)

	require.NoError(t, s.Mutate(context.Background(), "install", nil, env.Manager.Install))
	assert.Len(t, env.Manager.Installs, 1, "empty lists do not run the manager")
}

func TestSession_PickPackages(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Manager.Available = []string{"git", "aur/paru-bin", "vim"}
	env.Picker.Many = []string{"aur/paru-bin", "vim"}

	pkgs, err := env.Session().PickPackages(context.Background(), core.SourceAvailable)
	require.NoError(t, err)
	assert.Equal(t, []string{"aur/paru-bin", "vim"}, types.PackageNames(pkgs))
	assert.Equal(t, [][]string{{"git", "aur/paru-bin", "vim"}}, env.Picker.Candidates)
	assert.Equal(t, []string{"mock -Sii {}"}, env.Picker.Previews)
}

func TestSession_PickPackagesNothingChosen(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Manager.Explicit = []string{"git"}

	_, err := env.Session().PickPackages(context.Background(), core.SourceExplicit)
	testutil.RequireErrorCode(t, err, errors.ErrUserCancelled)
	assert.Equal(t, []string{"mock -Qi {}"}, env.Picker.Previews)
}

func TestSession_PickCategory(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteDeclarations("cat:base {\n    cat:dev { go }\n}\ncat:work {\n    cat:dev { rust }\n}\n")
	env.Picker.One = "work/dev"
	s := env.LoadedSession()

	cat, err := s.PickCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev", cat.Name)
	assert.Equal(t, []string{"work"}, cat.Path)
	assert.Equal(t, []string{"base", "base/dev", "work", "work/dev"}, env.Picker.Candidates[0])
}

func TestSession_PickCategoryNoneDeclared(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteDeclarations("linux\n")

	_, err := env.LoadedSession().PickCategory(context.Background())
	testutil.RequireErrorCode(t, err, errors.ErrNoSuchCategory)
}

func TestParsePackages(t *testing.T) {
	pkgs, err := core.ParsePackages([]string{"git", "aur/yay"})
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "aur/yay"}, types.PackageNames(pkgs))

	_, err = core.ParsePackages([]string{"aur/"})
	testutil.RequireErrorCode(t, err, errors.ErrInvalidInput)
}
