// Package store resolves a root declaration file and its includes into the
// ordered list of documents one invocation works on.
package store

import (
	"path/filepath"

	"github.com/arthur-debert/pacdec/pkg/decl"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/kdl"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
)

// Load reads root and every file it includes. Includes are resolved
// depth-first and each document follows the documents it includes. A file
// reachable twice without a cycle is loaded once.
func Load(fs types.FS, root string) ([]decl.Document, error) {
	l := &loader{
		fs:     fs,
		chain:  make(map[string]bool),
		loaded: make(map[string]bool),
	}
	if err := l.load(root); err != nil {
		return nil, err
	}
	return l.docs, nil
}

type loader struct {
	fs     types.FS
	chain  map[string]bool
	loaded map[string]bool
	docs   []decl.Document
}

func (l *loader) load(path string) error {
	logger := logging.GetLogger("store")

	canonical, err := l.fs.Canonical(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot resolve %s", path).
			WithDetail("path", path)
	}
	if l.chain[canonical] {
		return errors.Newf(errors.ErrCycle, "include cycle through %s", canonical).
			WithDetail("path", canonical)
	}
	if l.loaded[canonical] {
		logger.Debug().Str("path", canonical).Msg("Already loaded, skipping")
		return nil
	}

	data, err := l.fs.ReadFile(canonical)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot read %s", canonical).
			WithDetail("path", canonical)
	}
	tree, err := kdl.Parse(string(data))
	if err != nil {
		return errors.Wrapf(err, errors.ErrParse, "invalid declaration file %s", canonical).
			WithDetail("path", canonical)
	}
	logger.Debug().Str("path", canonical).Int("nodes", len(tree.Nodes)).Msg("Parsed declaration file")

	l.chain[canonical] = true
	dir := filepath.Dir(canonical)
	for _, node := range tree.Nodes {
		inc, ok := decl.Classify(node).(decl.IncludeDecl)
		if !ok {
			continue
		}
		if inc.Path == "" {
			logger.Warn().Str("file", canonical).Msg("Include without a path, ignoring")
			continue
		}
		target := inc.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		if err := l.load(target); err != nil {
			return err
		}
	}
	delete(l.chain, canonical)

	l.loaded[canonical] = true
	l.docs = append(l.docs, decl.Document{Path: canonical, Tree: tree})
	return nil
}
