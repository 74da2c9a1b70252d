package types

import (
	"slices"
	"strings"

	"github.com/arthur-debert/pacdec/pkg/errors"
)

// Category is a named grouping in the declaration tree. Path holds the
// names of the enclosing categories from the document root.
type Category struct {
	Name string
	Path []string
}

// ParseCategory splits text on '/': the last segment is the name, the rest
// is the path.
func ParseCategory(text string) (Category, error) {
	parts := strings.Split(text, "/")
	for _, part := range parts {
		if part == "" {
			return Category{}, errors.Newf(errors.ErrInvalidInput, "invalid category %q", text)
		}
	}
	return Category{
		Name: parts[len(parts)-1],
		Path: parts[:len(parts)-1],
	}, nil
}

// FullPath returns the category's selector form, e.g. "dev/languages".
func (c Category) FullPath() string {
	if len(c.Path) == 0 {
		return c.Name
	}
	return strings.Join(c.Path, "/") + "/" + c.Name
}

func (c Category) String() string {
	return c.FullPath()
}

// Equal reports whether both name and path match exactly.
func (c Category) Equal(other Category) bool {
	return c.Name == other.Name && slices.Equal(c.Path, other.Path)
}
