package revert

import (
	"fmt"
	"time"

	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/persist"
)

// RevertOptions defines the options for the Revert command.
type RevertOptions struct {
	Session *core.Session
}

// Restore pairs a declaration file with the backup it is restored from.
type Restore struct {
	Path   string
	Backup string
}

// RevertResult reports what Revert restored.
type RevertResult struct {
	Restores []Restore
	Outcomes []persist.Outcome
	DryRun   bool
}

// Revert undoes the last save. The newest backup across the loaded
// documents marks the last save; every document with a backup from that
// same save is restored. The current files are backed up first, so running
// Revert twice returns to where it started.
func Revert(opts RevertOptions) (*RevertResult, error) {
	log := logging.GetLogger("commands.revert")
	log.Debug().Str("command", "Revert").Msg("Executing command")

	s := opts.Session
	if err := s.Load(); err != nil {
		return nil, err
	}

	restores, err := lastSave(s)
	if err != nil {
		return nil, err
	}
	result := &RevertResult{Restores: restores, DryRun: s.DryRun}
	if len(restores) == 0 {
		s.Printer.Info("Nothing to revert")
		return result, nil
	}

	for _, r := range restores {
		s.Printer.Println(fmt.Sprintf("%s <- %s", s.Printer.Style("FilePath", r.Path), r.Backup))
	}
	if s.DryRun {
		s.Printer.Println(s.Printer.Style("DryRunBanner", "Dry run, nothing restored"))
		return result, nil
	}
	if err := s.Confirm(fmt.Sprintf("Restore %d files?", len(restores))); err != nil {
		return result, err
	}

	popts := s.Config.PersistOptions()
	popts.Now = s.Now
	byPath := make(map[string]string, len(restores))
	for _, r := range restores {
		byPath[r.Path] = r.Backup
	}
	for _, doc := range s.Docs {
		backup, ok := byPath[doc.Path]
		if !ok {
			continue
		}
		outcome, err := persist.Restore(s.FS, doc, backup, popts)
		if err != nil {
			return result, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
		log.Info().Str("path", doc.Path).Str("backup", backup).Msg("Restored declaration file")
	}

	log.Info().Str("command", "Revert").Int("files", len(result.Outcomes)).Msg("Command finished")
	return result, nil
}

func lastSave(s *core.Session) ([]Restore, error) {
	var (
		latest   time.Time
		restores []Restore
	)
	for _, doc := range s.Docs {
		backup, err := persist.LatestBackup(s.FS, doc, s.Config.Backup.Dir)
		if err != nil {
			return nil, err
		}
		if backup == "" {
			continue
		}
		stamp, ok := persist.BackupTime(backup)
		if !ok {
			continue
		}
		switch {
		case stamp.After(latest):
			latest = stamp
			restores = []Restore{{Path: doc.Path, Backup: backup}}
		case stamp.Equal(latest):
			restores = append(restores, Restore{Path: doc.Path, Backup: backup})
		}
	}
	return restores, nil
}
