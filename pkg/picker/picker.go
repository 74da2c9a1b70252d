// Package picker lets the user choose packages or categories interactively.
// fzf is used when it is installed; otherwise pterm's selection prompts.
package picker

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/pterm/pterm"
	"github.com/sahilm/fuzzy"
)

// Picker returns the user's choice among candidates. Cancelling returns an
// error with code USER_CANCELLED.
type Picker interface {
	// PickMany allows several choices. preview is a shell command with a {}
	// placeholder, or empty.
	PickMany(ctx context.Context, prompt string, candidates []string, preview string) ([]string, error)
	PickOne(ctx context.Context, prompt string, candidates []string) (string, error)
}

// New returns an fzf picker when fzf is on PATH, and a pterm picker
// otherwise.
func New() Picker {
	if path, err := exec.LookPath("fzf"); err == nil {
		return &FZF{Command: path}
	}
	logger := logging.GetLogger("picker")
	logger.Debug().Msg("fzf not found, using built-in prompts")
	return Prompt{}
}

// FZF runs fzf with candidates on its standard input.
type FZF struct {
	Command string
}

func (f *FZF) PickMany(ctx context.Context, prompt string, candidates []string, preview string) ([]string, error) {
	args := []string{"--multi", "--layout=default", "--prompt", prompt + "> "}
	if preview != "" {
		args = append(args, "--preview", preview, "--preview-window=right:75%")
	}
	return f.run(ctx, candidates, args)
}

func (f *FZF) PickOne(ctx context.Context, prompt string, candidates []string) (string, error) {
	picked, err := f.run(ctx, candidates, []string{"--layout=default", "--prompt", prompt + "> "})
	if err != nil {
		return "", err
	}
	if len(picked) == 0 {
		return "", errors.New(errors.ErrUserCancelled, "nothing selected")
	}
	return picked[0], nil
}

func (f *FZF) run(ctx context.Context, candidates []string, args []string) ([]string, error) {
	command := f.Command
	if command == "" {
		command = "fzf"
	}
	logging.LogCommand(command, args)

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = strings.NewReader(strings.Join(candidates, "\n") + "\n")
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			switch exitErr.ExitCode() {
			case 1:
				// No match.
				return nil, nil
			case 130:
				return nil, errors.New(errors.ErrUserCancelled, "selection cancelled")
			}
		}
		return nil, errors.Wrap(err, errors.ErrCommand, "fzf failed").
			WithDetail("command", command)
	}
	return splitLines(stdout.String()), nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Prompt uses pterm's interactive selects. It has no preview pane.
type Prompt struct{}

func (Prompt) PickMany(_ context.Context, prompt string, candidates []string, _ string) ([]string, error) {
	picked, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(candidates).
		WithFilter(true).
		Show(prompt)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUserCancelled, "selection cancelled")
	}
	return picked, nil
}

func (Prompt) PickOne(_ context.Context, prompt string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", errors.New(errors.ErrUserCancelled, "nothing to select")
	}
	picked, err := pterm.DefaultInteractiveSelect.
		WithOptions(candidates).
		Show(prompt)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrUserCancelled, "selection cancelled")
	}
	return picked, nil
}

// Filter returns the candidates matching query fuzzily, best match first.
// An empty query matches everything in the original order.
func Filter(query string, candidates []string) []string {
	if query == "" {
		return append([]string(nil), candidates...)
	}
	matches := fuzzy.Find(query, candidates)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
