package testutil

import (
	"testing"

	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertFileContent checks the content of name.
func (env *TestEnvironment) AssertFileContent(t *testing.T, name, want string) {
	t.Helper()
	assert.Equal(t, want, env.ReadFile(name), "content of %s", name)
}

// AssertBackupCount checks how many backups exist for name.
func (env *TestEnvironment) AssertBackupCount(t *testing.T, name string, want int) {
	t.Helper()

	backups, err := persist.Backups(env.FS, env.Path(name), env.Config.Backup.Dir)
	require.NoError(t, err)
	assert.Len(t, backups, want, "backups of %s", name)
}

// RequireErrorCode fails unless err carries code.
func RequireErrorCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()

	require.Error(t, err)
	require.True(t, errors.IsErrorCode(err, code), "expected %s, got %v", code, err)
}
