// Package pacman drives the system package manager (pacman or an AUR helper
// with the same flags) as an external process.
package pacman

import (
	"context"
	"strings"

	"github.com/arthur-debert/pacdec/pkg/logging"
)

// Options holds the command line used for each operation.
type Options struct {
	Command string
	// Sudo prefixes mutating commands with sudo. AUR helpers such as paru
	// escalate on their own and leave this off.
	Sudo           bool
	Install        []string
	Uninstall      []string
	QueryExplicit  []string
	QueryInstalled []string
	QueryAvailable []string
	InfoInstalled  []string
	InfoAvailable  []string
}

// DefaultOptions returns the flags pacman and paru share.
func DefaultOptions() Options {
	return Options{
		Command:        "paru",
		Install:        []string{"-S"},
		Uninstall:      []string{"-Rns"},
		QueryExplicit:  []string{"-Qqe"},
		QueryInstalled: []string{"-Qq"},
		QueryAvailable: []string{"-Slq"},
		InfoInstalled:  []string{"-Qi"},
		InfoAvailable:  []string{"-Sii"},
	}
}

// Manager queries and changes the installed package set.
type Manager struct {
	opts   Options
	runner Runner
}

// New creates a Manager. A nil runner uses ExecRunner.
func New(opts Options, runner Runner) *Manager {
	if runner == nil {
		runner = ExecRunner{}
	}
	if opts.Command == "" {
		opts.Command = DefaultOptions().Command
	}
	return &Manager{opts: opts, runner: runner}
}

// QueryExplicit lists explicitly installed package names.
func (m *Manager) QueryExplicit(ctx context.Context) ([]string, error) {
	return m.list(ctx, m.opts.QueryExplicit)
}

// QueryInstalled lists every installed package name.
func (m *Manager) QueryInstalled(ctx context.Context) ([]string, error) {
	return m.list(ctx, m.opts.QueryInstalled)
}

// QueryAvailable lists every package name the repositories offer.
func (m *Manager) QueryAvailable(ctx context.Context) ([]string, error) {
	return m.list(ctx, m.opts.QueryAvailable)
}

func (m *Manager) list(ctx context.Context, args []string) ([]string, error) {
	out, err := m.runner.Output(ctx, m.opts.Command, args...)
	if err != nil {
		return nil, err
	}
	return splitNames(string(out)), nil
}

// Install installs names. The user sees and answers the package manager's
// own prompts.
func (m *Manager) Install(ctx context.Context, names []string) error {
	return m.mutate(ctx, "install", m.opts.Install, names)
}

// Uninstall removes names together with their unneeded dependencies.
func (m *Manager) Uninstall(ctx context.Context, names []string) error {
	return m.mutate(ctx, "uninstall", m.opts.Uninstall, names)
}

func (m *Manager) mutate(ctx context.Context, op string, flags, names []string) error {
	if len(names) == 0 {
		return nil
	}
	logger := logging.GetLogger("pacman")
	logger.Info().
		Str("operation", op).
		Strs("packages", names).
		Msg("Changing installed packages")

	name := m.opts.Command
	args := append(append([]string{}, flags...), names...)
	if m.opts.Sudo {
		args = append([]string{name}, args...)
		name = "sudo"
	}
	return m.runner.Run(ctx, name, args...)
}

// PreviewCommand returns a shell command showing details for the package
// named by the {} placeholder, for installed or repository packages.
func (m *Manager) PreviewCommand(installed bool) string {
	flags := m.opts.InfoAvailable
	if installed {
		flags = m.opts.InfoInstalled
	}
	return strings.Join(append([]string{m.opts.Command}, flags...), " ") + " {}"
}

func splitNames(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}
