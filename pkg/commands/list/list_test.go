// pkg/commands/list/list_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Memory FS
// PURPOSE: Test listing declared packages and categories across includes

package list

import (
	"testing"

	"github.com/arthur-debert/pacdec/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *testutil.TestEnvironment {
	env := testutil.NewTestEnvironment(t)
	env.WriteFile("dev.kdl", "cat:dev {\n    go\n    cat:tools { ripgrep; git }\n}\n")
	env.WriteDeclarations("@include \"dev.kdl\"\ncat:base {\n    linux\n    git\n    /- firefox\n}\n")
	return env
}

func TestList_Packages(t *testing.T) {
	env := setup(t)

	result, err := List(ListOptions{Session: env.Session()})
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "ripgrep", "git", "linux"}, result.Packages)
	assert.Empty(t, result.Categories)
	require.Len(t, result.Documents, 2)
	assert.Equal(t, env.Path("dev.kdl"), result.Documents[0].Path)
	assert.Equal(t, 3, result.Documents[0].Packages)
	assert.Equal(t, 2, result.Documents[1].Packages)
}

func TestList_Categories(t *testing.T) {
	env := setup(t)

	result, err := List(ListOptions{Session: env.Session(), Categories: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"dev", "dev/tools", "base"}, result.Categories)
	assert.Empty(t, result.Packages)
}
