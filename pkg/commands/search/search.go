package search

import (
	"context"

	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/picker"
)

// SearchOptions defines the options for the Search command.
type SearchOptions struct {
	Session *core.Session
	// Explicit searches the explicitly installed packages.
	Explicit bool
	// All searches every package the repositories offer. It wins over
	// Explicit.
	All bool
	// Query filters fuzzily without opening the picker.
	Query string
}

// SearchResult holds the chosen package names.
type SearchResult struct {
	Source   core.Source
	Packages []string
}

// Search lets the user browse installed (or explicit, or available)
// packages and returns the selection. Declarations are not read.
func Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	log := logging.GetLogger("commands.search")
	log.Debug().Str("command", "Search").Msg("Executing command")

	s := opts.Session
	source := core.SourceInstalled
	switch {
	case opts.All:
		source = core.SourceAvailable
	case opts.Explicit:
		source = core.SourceExplicit
	}

	candidates, err := s.Candidates(ctx, source)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Source: source}
	if opts.Query != "" {
		result.Packages = picker.Filter(opts.Query, candidates)
	} else {
		preview := s.Manager.PreviewCommand(source != core.SourceAvailable)
		result.Packages, err = s.Picker.PickMany(ctx, "search", candidates, preview)
		if err != nil {
			return nil, err
		}
	}

	log.Info().Str("command", "Search").
		Str("source", source.String()).
		Int("results", len(result.Packages)).
		Msg("Command finished")
	return result, nil
}
