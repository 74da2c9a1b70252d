// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Environment variables
// PURPOSE: Test directory resolution and home expansion

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pacdec/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvironmentOverrides(t *testing.T) {
	configDir := t.TempDir()
	stateDir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, configDir)
	t.Setenv(paths.EnvStateDir, stateDir)

	p, err := paths.New()
	require.NoError(t, err)

	assert.Equal(t, configDir, p.ConfigDir())
	assert.Equal(t, stateDir, p.StateDir())
	assert.Equal(t, filepath.Join(configDir, "packages.kdl"), p.DeclarationFile())
	assert.Equal(t, filepath.Join(configDir, "config.toml"), p.SettingsFile())
	assert.Equal(t, filepath.Join(stateDir, "pacdec.log"), p.LogFilePath())
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvStateDir, "")

	p, err := paths.New()
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(p.ConfigDir()))
	assert.Equal(t, "pacdec", filepath.Base(p.ConfigDir()))
	assert.Equal(t, "pacdec", filepath.Base(p.StateDir()))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/tester"},
		{"~/.config/pacdec", "/home/tester/.config/pacdec"},
		{"~other/x", "~other/x"},
		{"/etc/pacman.conf", "/etc/pacman.conf"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, paths.ExpandHome(tt.in), tt.in)
	}
}
