// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/pacdec/pkg/config"
	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/filesystem"
	"github.com/arthur-debert/pacdec/pkg/types"
	"github.com/arthur-debert/pacdec/pkg/ui"
)

// Root is the virtual root every environment lives under.
const Root = "/virtual"

// Clock is the fixed time used to stamp backups.
var Clock = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	FS        types.FS
	Paths     *MockPaths
	Config    *config.Config
	Manager   *MockManager
	Picker    *MockPicker
	Confirmer *MockConfirmer
	Out       *bytes.Buffer

	t *testing.T
}

// NewTestEnvironment creates an in-memory environment with the default
// configuration. The pacman log lives at Root/log/pacman.log.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	p := NewMockPaths(Root)
	cfg, err := config.Default(p)
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	cfg.PacmanLog = filepath.Join(Root, "log", "pacman.log")

	env := &TestEnvironment{
		FS:        filesystem.NewMemory(),
		Paths:     p,
		Config:    cfg,
		Manager:   &MockManager{},
		Picker:    &MockPicker{},
		Confirmer: &MockConfirmer{Default: true},
		Out:       &bytes.Buffer{},
		t:         t,
	}
	if err := env.FS.MkdirAll(p.Config, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	return env
}

// RootFile is the path of the root declaration file.
func (env *TestEnvironment) RootFile() string {
	return env.Config.DeclarationFile
}

// Path returns name resolved against the config directory.
func (env *TestEnvironment) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(env.Paths.Config, name)
}

// WriteFile writes content to name, relative names landing in the config
// directory.
func (env *TestEnvironment) WriteFile(name, content string) string {
	env.t.Helper()

	path := env.Path(name)
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteDeclarations writes the root declaration file.
func (env *TestEnvironment) WriteDeclarations(content string) string {
	env.t.Helper()
	return env.WriteFile(env.RootFile(), content)
}

// ReadFile returns the content of name, failing the test when it is missing.
func (env *TestEnvironment) ReadFile(name string) string {
	env.t.Helper()

	data, err := env.FS.ReadFile(env.Path(name))
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// Exists reports whether name exists.
func (env *TestEnvironment) Exists(name string) bool {
	_, err := env.FS.Stat(env.Path(name))
	return err == nil
}

// SetInstalled makes names the explicitly installed packages and writes a
// pacman log installing them in the given order.
func (env *TestEnvironment) SetInstalled(names ...string) {
	env.t.Helper()

	env.Manager.Explicit = append([]string(nil), names...)
	env.Manager.Installed = append([]string(nil), names...)

	var b strings.Builder
	for i, n := range names {
		fmt.Fprintf(&b, "[2024-01-01T10:%02d:00+0000] [ALPM] installed %s (1.0-1)\n", i, n)
	}
	env.WriteFile(env.Config.PacmanLog, b.String())
}

// Session returns a session over the environment, not yet loaded.
func (env *TestEnvironment) Session() *core.Session {
	return &core.Session{
		Config:    env.Config,
		FS:        env.FS,
		Manager:   env.Manager,
		Picker:    env.Picker,
		Confirmer: env.Confirmer,
		Printer:   ui.NewPrinter(env.Out, ui.FormatText),
		Now:       func() time.Time { return Clock },
	}
}

// LoadedSession returns a session with the declarations loaded.
func (env *TestEnvironment) LoadedSession() *core.Session {
	env.t.Helper()

	s := env.Session()
	if err := s.Load(); err != nil {
		env.t.Fatalf("Failed to load declarations: %v", err)
	}
	return s
}

// Output returns everything printed so far.
func (env *TestEnvironment) Output() string {
	return env.Out.String()
}
