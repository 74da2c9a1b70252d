// pkg/commands/search/search_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Mock package manager and picker
// PURPOSE: Test source selection and non-interactive filtering

package search

import (
	"context"
	"testing"

	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv(t *testing.T) *testutil.TestEnvironment {
	env := testutil.NewTestEnvironment(t)
	env.Manager.Installed = []string{"glibc", "linux", "git"}
	env.Manager.Explicit = []string{"linux", "git"}
	env.Manager.Available = []string{"git", "gitui", "lazygit", "vim"}
	return env
}

func TestSearch_Sources(t *testing.T) {
	tests := []struct {
		name       string
		opts       SearchOptions
		source     core.Source
		candidates []string
		preview    string
	}{
		{name: "installed", source: core.SourceInstalled, candidates: []string{"glibc", "linux", "git"}, preview: "mock -Qi {}"},
		{name: "explicit", opts: SearchOptions{Explicit: true}, source: core.SourceExplicit, candidates: []string{"linux", "git"}, preview: "mock -Qi {}"},
		{name: "all", opts: SearchOptions{All: true, Explicit: true}, source: core.SourceAvailable, candidates: []string{"git", "gitui", "lazygit", "vim"}, preview: "mock -Sii {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			env.Picker.Many = []string{"git"}
			tt.opts.Session = env.Session()

			result, err := Search(context.Background(), tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.source, result.Source)
			assert.Equal(t, []string{"git"}, result.Packages)
			assert.Equal(t, [][]string{tt.candidates}, env.Picker.Candidates)
			assert.Equal(t, []string{tt.preview}, env.Picker.Previews)
		})
	}
}

func TestSearch_Query(t *testing.T) {
	env := newEnv(t)

	result, err := Search(context.Background(), SearchOptions{Session: env.Session(), All: true, Query: "git"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"git", "gitui", "lazygit"}, result.Packages)
	assert.Equal(t, "git", result.Packages[0])
	assert.Empty(t, env.Picker.Prompts, "a query does not open the picker")
}

func TestSearch_NeedsNoDeclarations(t *testing.T) {
	env := newEnv(t)
	env.Picker.Many = []string{}

	result, err := Search(context.Background(), SearchOptions{Session: env.Session()})
	require.NoError(t, err)
	assert.Empty(t, result.Packages)
}

func TestSearch_Errors(t *testing.T) {
	env := newEnv(t)
	env.Manager.QueryErr = errors.New(errors.ErrCommand, "paru failed")

	_, err := Search(context.Background(), SearchOptions{Session: env.Session()})
	testutil.RequireErrorCode(t, err, errors.ErrCommand)

	env = newEnv(t)
	env.Picker.Err = errors.New(errors.ErrUserCancelled, "cancelled")
	_, err = Search(context.Background(), SearchOptions{Session: env.Session()})
	testutil.RequireErrorCode(t, err, errors.ErrUserCancelled)
}
