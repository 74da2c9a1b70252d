package list

import (
	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/decl"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	Session *core.Session
	// Categories lists category paths instead of packages.
	Categories bool
}

// DocumentInfo describes one loaded declaration file.
type DocumentInfo struct {
	Path     string `json:"path"`
	Packages int    `json:"packages"`
}

// ListResult holds the declared names in traversal order.
type ListResult struct {
	Documents  []DocumentInfo `json:"documents"`
	Packages   []string       `json:"packages,omitempty"`
	Categories []string       `json:"categories,omitempty"`
}

// List reports what the declarations contain.
func List(opts ListOptions) (*ListResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "List").Msg("Executing command")

	s := opts.Session
	if err := s.Load(); err != nil {
		return nil, err
	}

	result := &ListResult{}
	for _, doc := range s.Docs {
		result.Documents = append(result.Documents, DocumentInfo{
			Path:     doc.Path,
			Packages: len(decl.Packages([]decl.Document{doc})),
		})
	}

	if opts.Categories {
		for _, c := range decl.Categories(s.Docs) {
			result.Categories = append(result.Categories, c.FullPath())
		}
	} else {
		result.Packages = types.PackageNames(types.NewPackageSet(decl.Packages(s.Docs)...).Slice())
	}

	log.Info().Str("command", "List").
		Int("packages", len(result.Packages)).
		Int("categories", len(result.Categories)).
		Msg("Command finished")
	return result, nil
}
