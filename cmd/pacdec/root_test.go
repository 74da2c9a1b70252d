// cmd/pacdec/root_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (temp dirs), mock package manager and picker
// PURPOSE: Test flag handling, output and exit codes of the command tree

package pacdec

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	dir       string
	declFile  string
	manager   *testutil.MockManager
	picker    *testutil.MockPicker
	confirmer *testutil.MockConfirmer
}

func newCLIEnv(t *testing.T, declarations string) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PACDEC_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("PACDEC_STATE_DIR", filepath.Join(dir, "state"))

	logPath := filepath.Join(dir, "pacman.log")
	require.NoError(t, os.WriteFile(logPath, []byte(
		"[2024-01-01T10:00:00+0000] [ALPM] installed linux (6.9-1)\n"+
			"[2024-01-01T10:01:00+0000] [ALPM] installed htop (3.3-1)\n"), 0644))
	t.Setenv("PACDEC_PACMAN_LOG", logPath)

	declFile := filepath.Join(dir, "packages.kdl")
	require.NoError(t, os.WriteFile(declFile, []byte(declarations), 0644))

	return &cliEnv{
		dir:       dir,
		declFile:  declFile,
		manager:   &testutil.MockManager{},
		picker:    &testutil.MockPicker{},
		confirmer: &testutil.MockConfirmer{Default: true},
	}
}

// run executes args against a fresh command tree and returns stdout.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := &app{manager: e.manager, picker: e.picker, confirmer: e.confirmer}
	root := newRootCmd(a)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{
		"--config", e.declFile,
		"--log-file", filepath.Join(e.dir, "pacdec.log"),
		"--format", "text",
	}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	env := newCLIEnv(t, "cat:base {\n    linux\n    git\n}\ncat:dev {\n    go\n}\n")

	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "linux\ngit\ngo\n", out)

	out, err = env.run(t, "ls", "--categories")
	require.NoError(t, err)
	assert.Equal(t, "base\ndev\n", out)
}

func TestList_JSON(t *testing.T) {
	env := newCLIEnv(t, "cat:base {\n    linux\n}\n")

	out, err := env.run(t, "list", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"packages": [`)
	assert.Contains(t, out, `"linux"`)
	assert.Contains(t, out, env.declFile)
}

func TestSync_InstallsAndUninstalls(t *testing.T) {
	env := newCLIEnv(t, "cat:base {\n    linux\n    git\n}\n")
	env.manager.Explicit = []string{"linux", "htop"}
	env.manager.Installed = []string{"linux", "htop"}

	out, err := env.run(t, "sync")
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"git"}}, env.manager.Installs)
	assert.Equal(t, [][]string{{"htop"}}, env.manager.Uninstalls)
	assert.Equal(t, []string{"Install 1 packages?", "Uninstall 1 packages?"}, env.confirmer.Questions)
	assert.Contains(t, out, "Packages to install")
}

func TestSync_DryRunTouchesNothing(t *testing.T) {
	env := newCLIEnv(t, "cat:base {\n    linux\n    git\n}\n")
	env.manager.Explicit = []string{"linux"}

	_, err := env.run(t, "sync", "-n")
	require.NoError(t, err)
	assert.Empty(t, env.manager.Installs)
	assert.Empty(t, env.confirmer.Questions)
}

func TestAdd_WritesDeclarationAndBackup(t *testing.T) {
	env := newCLIEnv(t, "cat:base {\n    linux\n}\n")
	env.manager.Available = []string{"linux", "ripgrep"}

	_, err := env.run(t, "add", "ripgrep", "-c", "base")
	require.NoError(t, err)

	data, err := os.ReadFile(env.declFile)
	require.NoError(t, err)
	assert.Equal(t, "cat:base {\n    linux\n    ripgrep\n}\n", string(data))

	backups, err := os.ReadDir(filepath.Join(env.dir, ".backups"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestRemove_DryRunPrintsPendingContent(t *testing.T) {
	original := "cat:base {\n    linux\n    firefox\n}\n"
	env := newCLIEnv(t, original)

	out, err := env.run(t, "rm", "firefox", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "/- firefox")

	data, err := os.ReadFile(env.declFile)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestSearch_Query(t *testing.T) {
	env := newCLIEnv(t, "")
	env.manager.Installed = []string{"linux", "htop", "git"}

	out, err := env.run(t, "search", "--query", "htp")
	require.NoError(t, err)
	assert.Equal(t, "htop\n", out)
}

func TestRevert_NothingToRevert(t *testing.T) {
	env := newCLIEnv(t, "cat:base {\n    linux\n}\n")

	out, err := env.run(t, "undo")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to revert")
}

func TestGenConfig(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "# default_category")

	target := filepath.Join(env.dir, "out", "config.toml")
	_, err = env.run(t, "genconfig", "--write", "--output", target)
	require.NoError(t, err)
	assert.FileExists(t, target)

	_, err = env.run(t, "genconfig", "--write", "--output", target)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "existing file is not overwritten")
}

func TestMissingSettingsFile(t *testing.T) {
	env := newCLIEnv(t, "")

	_, err := env.run(t, "list", "--config-file", filepath.Join(env.dir, "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestUnknownFormat(t *testing.T) {
	env := newCLIEnv(t, "")

	_, err := env.run(t, "list", "--format", "yaml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestVersion(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "pacdec dev"))
}

func TestExitCode(t *testing.T) {
	root := &cobra.Command{}
	var errOut bytes.Buffer
	root.SetErr(&errOut)

	assert.Equal(t, 0, exitCode(root, nil))

	assert.Equal(t, 0, exitCode(root, errors.New(errors.ErrUserCancelled, "operation cancelled")))
	assert.Contains(t, errOut.String(), MsgCancelled)

	errOut.Reset()
	assert.Equal(t, 1, exitCode(root, errors.New(errors.ErrParse, "bad input")))
	assert.Contains(t, errOut.String(), "error: bad input")
}
