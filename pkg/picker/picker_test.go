// pkg/picker/picker_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real processes (a shell script stands in for fzf)
// PURPOSE: Test fzf invocation, exit code handling and fuzzy filtering

package picker_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/picker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFZF writes a script that behaves like fzf: it reads candidates from
// stdin and runs body.
func fakeFZF(t *testing.T, body string) *picker.FZF {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "fzf")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return &picker.FZF{Command: script}
}

func TestFZF_PickMany(t *testing.T) {
	f := fakeFZF(t, `grep -e foo -e baz`)

	picked, err := f.PickMany(context.Background(), "packages", []string{"foo", "bar", "baz"}, "paru -Qi {}")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "baz"}, picked)
}

func TestFZF_PassesFlags(t *testing.T) {
	f := fakeFZF(t, `cat >/dev/null; for a in "$@"; do echo "$a"; done`)

	args, err := f.PickMany(context.Background(), "pkgs", []string{"x"}, "paru -Qi {}")
	require.NoError(t, err)
	assert.Equal(t, []string{"--multi", "--layout=default", "--prompt", "pkgs>", "--preview", "paru -Qi {}", "--preview-window=right:75%"}, args)
}

func TestFZF_PickOne(t *testing.T) {
	f := fakeFZF(t, `tail -n 1`)

	picked, err := f.PickOne(context.Background(), "category", []string{"base", "dev"})
	require.NoError(t, err)
	assert.Equal(t, "dev", picked)
}

func TestFZF_ExitCodes(t *testing.T) {
	noMatch := fakeFZF(t, `cat >/dev/null; exit 1`)
	picked, err := noMatch.PickMany(context.Background(), "p", []string{"a"}, "")
	require.NoError(t, err)
	assert.Empty(t, picked)

	_, err = noMatch.PickOne(context.Background(), "p", []string{"a"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUserCancelled))

	cancelled := fakeFZF(t, `cat >/dev/null; exit 130`)
	_, err = cancelled.PickMany(context.Background(), "p", []string{"a"}, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUserCancelled))

	broken := fakeFZF(t, `cat >/dev/null; exit 2`)
	_, err = broken.PickMany(context.Background(), "p", []string{"a"}, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
}

func TestFilter(t *testing.T) {
	candidates := []string{"neovim", "vim", "visual-studio-code-bin", "git"}

	got := picker.Filter("vim", candidates)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "vim")
	assert.Contains(t, got, "neovim")
	assert.NotContains(t, got, "git")

	assert.Equal(t, candidates, picker.Filter("", candidates))
	assert.Empty(t, picker.Filter("zzz", candidates))
}

func TestNew_FallsBackWithoutFZF(t *testing.T) {
	f := fakeFZF(t, `cat`)

	t.Setenv("PATH", t.TempDir())
	assert.IsType(t, picker.Prompt{}, picker.New())

	t.Setenv("PATH", filepath.Dir(f.Command))
	p, ok := picker.New().(*picker.FZF)
	require.True(t, ok)
	assert.Equal(t, f.Command, p.Command)
}
