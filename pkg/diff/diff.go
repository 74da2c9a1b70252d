// Package diff compares the declared packages with the explicitly installed
// ones. Install order is recovered from the package manager's log so that
// packages to add come out oldest first.
package diff

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"slices"
	"strings"

	"github.com/arthur-debert/pacdec/pkg/decl"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// Querier lists the names of explicitly installed packages.
type Querier interface {
	QueryExplicit(ctx context.Context) ([]string, error)
}

// Result holds both sides of a diff.
type Result struct {
	// ToAdd are installed packages missing from the declaration, oldest
	// install first.
	ToAdd []types.Package
	// ToRemove are declared packages that are not installed, in declaration
	// order.
	ToRemove []types.Package
}

// Empty reports whether both sides agree.
func (r Result) Empty() bool {
	return len(r.ToAdd) == 0 && len(r.ToRemove) == 0
}

const installedEvent = "[ALPM] installed"

// ParseLog returns, for every name in want, the sequence number of its first
// install event in the log. Only events for wanted names advance the
// sequence. Lines look like:
//
//	[2024-01-02T10:00:00+0100] [ALPM] installed foo (1.0-1)
func ParseLog(r io.Reader, want map[string]bool) (map[string]int, error) {
	order := make(map[string]int)
	seq := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, installedEvent) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		name := fields[3]
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}
		if !want[name] {
			continue
		}
		if _, seen := order[name]; !seen {
			order[name] = seq
		}
		seq++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return order, nil
}

// InstalledExplicit returns the explicitly installed packages. Packages the
// log never mentions come first, the rest follow in install order.
func InstalledExplicit(ctx context.Context, q Querier, fs types.FS, logPath string) ([]types.Package, error) {
	logger := logging.GetLogger("diff")

	names, err := q.QueryExplicit(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCommand, "cannot list explicitly installed packages")
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			want[n] = true
		}
	}

	data, err := fs.ReadFile(logPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read package log %s", logPath).
			WithDetail("path", logPath)
	}
	order, err := ParseLog(bytes.NewReader(data), want)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read package log %s", logPath).
			WithDetail("path", logPath)
	}

	pkgs := make([]types.Package, 0, len(want))
	for n := range want {
		pkgs = append(pkgs, types.Package{Name: n})
	}
	slices.SortFunc(pkgs, func(a, b types.Package) int {
		sa, oka := order[a.Name]
		sb, okb := order[b.Name]
		switch {
		case oka != okb:
			if !oka {
				return -1
			}
			return 1
		case oka && sa != sb:
			return sa - sb
		}
		return a.Compare(b)
	})

	logger.Debug().
		Int("explicit", len(pkgs)).
		Int("logged", len(order)).
		Msg("Collected explicitly installed packages")
	return pkgs, nil
}

// DeclaredPackages returns the set of packages declared anywhere in docs.
func DeclaredPackages(docs []decl.Document) *types.PackageSet {
	return types.NewPackageSet(decl.Packages(docs)...)
}

// Compute diffs docs against the system. Packages in ignore are left out of
// both sides.
func Compute(ctx context.Context, docs []decl.Document, q Querier, fs types.FS, logPath string, ignore []types.Package) (Result, error) {
	installed, err := InstalledExplicit(ctx, q, fs, logPath)
	if err != nil {
		return Result{}, err
	}
	return Between(installed, DeclaredPackages(docs), ignore), nil
}

// Between diffs an ordered installed list against a declared set.
func Between(installed []types.Package, declared *types.PackageSet, ignore []types.Package) Result {
	ignored := types.NewPackageSet(ignore...)
	installedSet := types.NewPackageSet(installed...)

	var result Result
	for _, p := range installed {
		if !declared.Contains(p) && !ignored.Contains(p) {
			result.ToAdd = append(result.ToAdd, p)
		}
	}
	for _, p := range declared.Slice() {
		if !installedSet.Contains(p) && !ignored.Contains(p) {
			result.ToRemove = append(result.ToRemove, p)
		}
	}
	return result
}
