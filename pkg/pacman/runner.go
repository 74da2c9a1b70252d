package pacman

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/logging"
)

// Runner starts external processes.
type Runner interface {
	// Output runs the command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs the command attached to the terminal.
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec. Nil streams default to the
// process's own.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	logging.LogCommand(name, args)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, commandError(err, name, args, stderr.String())
	}
	return out, nil
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = orReader(r.Stdin, os.Stdin)
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		return commandError(err, name, args, "")
	}
	return nil
}

func commandError(err error, name string, args []string, stderr string) error {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	perr := errors.Wrapf(err, errors.ErrCommand, "%s failed", line).
		WithDetail("command", line)

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		perr.WithDetail("exit_code", exitErr.ExitCode())
	}
	if s := strings.TrimSpace(stderr); s != "" {
		perr.WithDetail("stderr", s)
	}
	return perr
}

func orReader(r io.Reader, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w io.Writer, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
