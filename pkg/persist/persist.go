// Package persist writes edited declaration documents back to disk. Only
// documents whose serialized text differs from the file are written, each
// after a timestamped backup of the current file.
package persist

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/pacdec/pkg/decl"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/types"
	difflib "github.com/pmezard/go-difflib/difflib"
)

// BackupMode selects whether Save keeps copies of overwritten files.
type BackupMode string

const (
	BackupOff   BackupMode = "off"
	BackupBasic BackupMode = "basic"
)

// DefaultBackupDir is used when Options.BackupDir is empty.
const DefaultBackupDir = ".backups"

// TimestampLayout prefixes backup file names. It sorts chronologically.
const TimestampLayout = "20060102T150405.000"

// Options configures Save.
type Options struct {
	// BackupDir is resolved against each document's directory when relative.
	BackupDir string
	Mode      BackupMode
	// Now defaults to time.Now.
	Now func() time.Time
}

// Outcome reports what Save did with one document.
type Outcome struct {
	Path string
	// Backup is empty when no backup was taken.
	Backup  string
	Written bool
}

// Changed reports whether doc's text differs from what is on disk. A file
// that does not exist counts as changed.
func Changed(fsys types.FS, doc decl.Document) (bool, error) {
	current, err := fsys.ReadFile(doc.Path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, errors.Wrapf(err, errors.ErrIO, "cannot read %s", doc.Path)
	}
	return string(current) != doc.Tree.String(), nil
}

// Save writes every changed document. It stops at the first document that
// cannot be backed up or written; documents before it stay written. All
// backups taken by one call share a timestamp.
func Save(fsys types.FS, docs []decl.Document, opts Options) ([]Outcome, error) {
	logger := logging.GetLogger("persist")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	stamp := now()

	var outcomes []Outcome
	for _, doc := range docs {
		changed, err := Changed(fsys, doc)
		if err != nil {
			return outcomes, err
		}
		if !changed {
			logger.Debug().Str("path", doc.Path).Msg("Unchanged, not writing")
			outcomes = append(outcomes, Outcome{Path: doc.Path})
			continue
		}

		outcome := Outcome{Path: doc.Path}
		if opts.Mode != BackupOff {
			backup, err := backupFile(fsys, doc.Path, opts.BackupDir, stamp)
			if err != nil {
				return outcomes, err
			}
			outcome.Backup = backup
		}

		if err := writeAtomic(fsys, doc.Path, []byte(doc.Tree.String())); err != nil {
			return outcomes, err
		}
		outcome.Written = true
		outcomes = append(outcomes, outcome)

		logger.Info().
			Str("path", doc.Path).
			Str("backup", outcome.Backup).
			Msg("Wrote declaration file")
	}
	return outcomes, nil
}

// BackupDir resolves dir for the document at path.
func BackupDir(path, dir string) string {
	if dir == "" {
		dir = DefaultBackupDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(path), dir)
}

// BackupName returns the backup file name for path taken at t, with dir the
// configured backup directory. Directories that may be shared by files from
// different folders get a short path hash between timestamp and base name.
func BackupName(path, dir string, t time.Time) string {
	return t.Format(TimestampLayout) + backupSuffix(path, dir)
}

func backupSuffix(path, dir string) string {
	base := filepath.Base(path)
	if !sharedBackupDir(dir) {
		return "_" + base
	}
	sum := sha256.Sum256([]byte(filepath.Clean(path)))
	return "_" + hex.EncodeToString(sum[:4]) + "_" + base
}

// sharedBackupDir reports whether dir can resolve to the same directory for
// documents living in different folders.
func sharedBackupDir(dir string) bool {
	if filepath.IsAbs(dir) {
		return true
	}
	clean := filepath.Clean(dir)
	return clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

// BackupTime parses the timestamp out of a backup file name.
func BackupTime(backup string) (time.Time, bool) {
	name := filepath.Base(backup)
	i := strings.Index(name, "_")
	if i < 0 {
		return time.Time{}, false
	}
	t, err := time.Parse(TimestampLayout, name[:i])
	return t, err == nil
}

func backupFile(fsys types.FS, path, dir string, t time.Time) (string, error) {
	current, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot read %s for backup", path)
	}
	resolved := BackupDir(path, dir)
	if err := fsys.MkdirAll(resolved, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot create backup directory %s", resolved)
	}
	backup := filepath.Join(resolved, BackupName(path, dir, t))
	if err := fsys.WriteFile(backup, current, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot write backup %s", backup)
	}
	return backup, nil
}

// writeAtomic replaces path through a temporary file in the same directory,
// keeping the existing permissions.
func writeAtomic(fsys types.FS, path string, data []byte) error {
	perm := fs.FileMode(0644)
	if info, err := fsys.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".pacdec-tmp")
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", tmp)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", path)
	}
	return nil
}

// Render returns what a dry run would write: the full text of every
// document, or unified diffs of the changed ones when showDiff is set.
func Render(fsys types.FS, docs []decl.Document, showDiff bool) (string, error) {
	var b strings.Builder
	for _, doc := range docs {
		next := doc.Tree.String()
		if !showDiff {
			b.WriteString("// " + doc.Path + "\n")
			b.WriteString(next)
			if next != "" && !strings.HasSuffix(next, "\n") {
				b.WriteString("\n")
			}
			continue
		}

		var current string
		data, err := fsys.ReadFile(doc.Path)
		switch {
		case err == nil:
			current = string(data)
		case !stderrors.Is(err, fs.ErrNotExist):
			return "", errors.Wrapf(err, errors.ErrIO, "cannot read %s", doc.Path)
		}
		if current == next {
			continue
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(current),
			B:        difflib.SplitLines(next),
			FromFile: doc.Path,
			ToFile:   doc.Path,
			FromDate: "current",
			ToDate:   "pending",
			Context:  3,
		})
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInternal, "cannot diff %s", doc.Path)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// Backups lists the backups of path in dir, newest first.
func Backups(fsys types.FS, path, dir string) ([]string, error) {
	suffix := backupSuffix(path, dir)
	dir = BackupDir(path, dir)
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot list backups in %s", dir)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		if _, err := time.Parse(TimestampLayout, strings.TrimSuffix(name, suffix)); err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	backups := make([]string, len(names))
	for i, n := range names {
		backups[i] = filepath.Join(dir, n)
	}
	return backups, nil
}

// LatestBackup returns the newest backup of the document, or "" when there
// is none.
func LatestBackup(fsys types.FS, doc decl.Document, dir string) (string, error) {
	backups, err := Backups(fsys, doc.Path, dir)
	if err != nil || len(backups) == 0 {
		return "", err
	}
	return backups[0], nil
}

// Restore replaces the document's file with the content of backup. The
// current file is backed up first unless opts.Mode is off, so a restore can
// itself be reverted.
func Restore(fsys types.FS, doc decl.Document, backup string, opts Options) (Outcome, error) {
	data, err := fsys.ReadFile(backup)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, errors.ErrIO, "cannot read backup %s", backup)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	outcome := Outcome{Path: doc.Path}
	if opts.Mode != BackupOff {
		saved, err := backupFile(fsys, doc.Path, opts.BackupDir, now())
		if err != nil {
			return outcome, err
		}
		outcome.Backup = saved
	}
	if err := writeAtomic(fsys, doc.Path, data); err != nil {
		return outcome, err
	}
	outcome.Written = true
	return outcome, nil
}
