package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SweepResult reports what a retention sweep did (or would do).
type SweepResult struct {
	Examined   int           `json:"examined"`
	Kept       int           `json:"kept"`
	Removed    []string      `json:"removed"`
	Candidates []string      `json:"candidates,omitempty"` // dry-run only
	Failed     []FileFailure `json:"failed,omitempty"`
}

// Sweep deletes backup sets whose modification time is older than maxAgeDays.
// With dryRun it only reports the candidates. A delete failure on one set is
// recorded and does not prevent attempting the rest. Newer sets are left
// untouched, so a second sweep right after a first removes nothing.
func Sweep(backupRoot string, maxAgeDays int, dryRun bool) (*SweepResult, error) {
	if maxAgeDays < 0 {
		return nil, fmt.Errorf("invalid retention age: %d days", maxAgeDays)
	}

	result := &SweepResult{Removed: []string{}}
	entries, err := os.ReadDir(backupRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("reading backup store %s: %w", backupRoot, err)
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	for _, entry := range entries {
		if !entry.IsDir() || !namePattern.MatchString(entry.Name()) {
			continue
		}
		result.Examined++

		info, ierr := entry.Info()
		if ierr != nil {
			result.Failed = append(result.Failed, FileFailure{Path: entry.Name(), Reason: ierr.Error()})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			result.Kept++
			continue
		}

		dir := filepath.Join(backupRoot, entry.Name())
		if dryRun {
			result.Candidates = append(result.Candidates, entry.Name())
			continue
		}
		if rerr := os.RemoveAll(dir); rerr != nil {
			result.Failed = append(result.Failed, FileFailure{Path: entry.Name(), Reason: rerr.Error()})
			continue
		}
		result.Removed = append(result.Removed, entry.Name())
	}

	return result, nil
}
