package testutil

import "path/filepath"

// MockPaths resolves every location under a single directory.
type MockPaths struct {
	Config string
	State  string
}

// NewMockPaths places config and state under root.
func NewMockPaths(root string) *MockPaths {
	return &MockPaths{
		Config: filepath.Join(root, "config", "pacdec"),
		State:  filepath.Join(root, "state", "pacdec"),
	}
}

func (m *MockPaths) ConfigDir() string { return m.Config }
func (m *MockPaths) StateDir() string  { return m.State }

func (m *MockPaths) DeclarationFile() string {
	return filepath.Join(m.Config, "packages.kdl")
}

func (m *MockPaths) SettingsFile() string {
	return filepath.Join(m.Config, "config.toml")
}

func (m *MockPaths) LogFilePath() string {
	return filepath.Join(m.State, "pacdec.log")
}
