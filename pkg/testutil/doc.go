// Package testutil provides utilities for testing pacdec components.
//
// Key components:
//   - TestEnvironment: in-memory filesystem, default configuration and mock
//     collaborators wired into a core.Session
//   - MockManager, MockPicker, MockConfirmer: scripted stand-ins for the
//     package manager, the interactive picker and confirmation prompts
//   - MockPaths: fixed XDG locations
//
// Usage guidelines:
//   - Tests run against the memory filesystem; only pkg/filesystem and
//     pkg/config touch the real one
//   - Declaration sources are written inline in the test
package testutil
