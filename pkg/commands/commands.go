// Package commands provides high-level command implementations for pacdec.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the core session.
//
// Each command is implemented in its own subdirectory:
//   - sync/      - install declared packages, uninstall undeclared ones
//   - generate/  - update the declarations from the system
//   - add/       - declare packages
//   - install/   - declare and install packages
//   - remove/    - comment out or delete declarations
//   - uninstall/ - undeclare and uninstall packages
//   - search/    - browse package lists
//   - revert/    - restore the files changed by the last save
//   - list/      - print declared packages or categories
//   - genconfig/ - print or write a settings file
//
// This file re-exports all command functions so the CLI depends on one
// package.
package commands

import (
	"context"

	"github.com/arthur-debert/pacdec/pkg/commands/add"
	"github.com/arthur-debert/pacdec/pkg/commands/genconfig"
	"github.com/arthur-debert/pacdec/pkg/commands/generate"
	"github.com/arthur-debert/pacdec/pkg/commands/install"
	"github.com/arthur-debert/pacdec/pkg/commands/list"
	"github.com/arthur-debert/pacdec/pkg/commands/remove"
	"github.com/arthur-debert/pacdec/pkg/commands/revert"
	"github.com/arthur-debert/pacdec/pkg/commands/search"
	"github.com/arthur-debert/pacdec/pkg/commands/sync"
	"github.com/arthur-debert/pacdec/pkg/commands/uninstall"
)

// Sync installs declared packages that are missing and uninstalls installed
// packages that are not declared.
type SyncOptions = sync.SyncOptions

func Sync(ctx context.Context, opts SyncOptions) (*sync.SyncResult, error) {
	return sync.Sync(ctx, opts)
}

// Generate brings the declarations in line with the installed packages.
type GenerateOptions = generate.GenerateOptions

func Generate(ctx context.Context, opts GenerateOptions) (*generate.GenerateResult, error) {
	return generate.Generate(ctx, opts)
}

// Add declares packages under a category.
type AddOptions = add.AddOptions

func Add(ctx context.Context, opts AddOptions) (*add.AddResult, error) {
	return add.Add(ctx, opts)
}

// Install declares packages and installs them.
type InstallOptions = install.InstallOptions

func Install(ctx context.Context, opts InstallOptions) (*install.InstallResult, error) {
	return install.Install(ctx, opts)
}

// Remove comments out or deletes package declarations.
type RemoveOptions = remove.RemoveOptions

func Remove(ctx context.Context, opts RemoveOptions) (*remove.RemoveResult, error) {
	return remove.Remove(ctx, opts)
}

// Uninstall undeclares packages and uninstalls them.
type UninstallOptions = uninstall.UninstallOptions

func Uninstall(ctx context.Context, opts UninstallOptions) (*uninstall.UninstallResult, error) {
	return uninstall.Uninstall(ctx, opts)
}

// Search lets the user browse package lists.
type SearchOptions = search.SearchOptions

func Search(ctx context.Context, opts SearchOptions) (*search.SearchResult, error) {
	return search.Search(ctx, opts)
}

// Revert restores the files changed by the last save.
type RevertOptions = revert.RevertOptions

func Revert(opts RevertOptions) (*revert.RevertResult, error) {
	return revert.Revert(opts)
}

// List reports declared packages or categories.
type ListOptions = list.ListOptions

func List(opts ListOptions) (*list.ListResult, error) {
	return list.List(opts)
}

// GenConfig prints or writes a settings file.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*genconfig.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
