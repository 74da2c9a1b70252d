package types

import (
	"cmp"
	"strings"

	"github.com/arthur-debert/pacdec/pkg/errors"
)

// Package identifies one unit the package manager understands. Tags are
// metadata only; they take no part in identity.
type Package struct {
	Name string
	// Repository is empty when the package is not qualified, which means
	// "any repository".
	Repository string
	Tags       []string
}

// ParsePackage splits text on its last '/': everything before is the
// repository, everything after is the name.
func ParsePackage(text string) (Package, error) {
	i := strings.LastIndex(text, "/")
	if i < 0 {
		if text == "" {
			return Package{}, errors.New(errors.ErrInvalidInput, "empty package name")
		}
		return Package{Name: text}, nil
	}
	pkg := Package{Repository: text[:i], Name: text[i+1:]}
	if pkg.Name == "" {
		return Package{}, errors.Newf(errors.ErrInvalidInput, "empty package name in %q", text)
	}
	if pkg.Repository == "" {
		return Package{}, errors.Newf(errors.ErrInvalidInput, "empty repository in %q", text)
	}
	return pkg, nil
}

// MustParsePackages parses every name, skipping none. It is meant for
// literals in tests and defaults.
func MustParsePackages(names ...string) []Package {
	pkgs := make([]Package, 0, len(names))
	for _, n := range names {
		pkg, err := ParsePackage(n)
		if err != nil {
			panic(err)
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs
}

// String returns repository/name, or the bare name when unqualified.
func (p Package) String() string {
	if p.Repository == "" {
		return p.Name
	}
	return p.Repository + "/" + p.Name
}

// Equal reports whether p and other denote the same package: names match
// and the repositories either match or one side leaves it unspecified.
func (p Package) Equal(other Package) bool {
	if p.Name != other.Name {
		return false
	}
	if p.Repository == "" || other.Repository == "" {
		return true
	}
	return p.Repository == other.Repository
}

// Compare orders packages by name, then repository.
func (p Package) Compare(other Package) int {
	if c := cmp.Compare(p.Name, other.Name); c != 0 {
		return c
	}
	return cmp.Compare(p.Repository, other.Repository)
}

// PackageNames returns the textual form of each package.
func PackageNames(pkgs []Package) []string {
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.String()
	}
	return names
}

// PackageSet is an insertion-ordered set using Package.Equal. Packages are
// bucketed by name only, because a qualified and an unqualified reference to
// the same name are equal and must meet in the same bucket.
type PackageSet struct {
	buckets map[string][]Package
	order   []Package
}

// NewPackageSet returns a set holding pkgs.
func NewPackageSet(pkgs ...Package) *PackageSet {
	s := &PackageSet{buckets: make(map[string][]Package)}
	for _, p := range pkgs {
		s.Add(p)
	}
	return s
}

// Add inserts p unless an equal package is already present. It reports
// whether p was added.
func (s *PackageSet) Add(p Package) bool {
	if s.buckets == nil {
		s.buckets = make(map[string][]Package)
	}
	if s.Contains(p) {
		return false
	}
	s.buckets[p.Name] = append(s.buckets[p.Name], p)
	s.order = append(s.order, p)
	return true
}

// Contains reports whether a package equal to p is in the set.
func (s *PackageSet) Contains(p Package) bool {
	if s == nil {
		return false
	}
	for _, q := range s.buckets[p.Name] {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// Len returns the number of packages in the set.
func (s *PackageSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Slice returns the packages in insertion order.
func (s *PackageSet) Slice() []Package {
	if s == nil {
		return nil
	}
	out := make([]Package, len(s.order))
	copy(out, s.order)
	return out
}
