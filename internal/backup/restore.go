package backup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/neoighodaro/xctemplates/internal/classify"
)

// Info describes one backup set in the store.
type Info struct {
	Name        string
	Dir         string
	CreatedAt   time.Time
	HasManifest bool
}

// List enumerates backup sets under backupRoot, sorted by creation time
// ascending. The timestamp suffix makes a lexical sort on the name
// chronological. Entries not matching the naming pattern are ignored.
// A missing store means no backups, not an error.
func List(backupRoot string) ([]Info, error) {
	entries, err := os.ReadDir(backupRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup store %s: %w", backupRoot, err)
	}

	var infos []Info
	for _, entry := range entries {
		if !entry.IsDir() || !namePattern.MatchString(entry.Name()) {
			continue
		}
		dir := filepath.Join(backupRoot, entry.Name())
		info := Info{Name: entry.Name(), Dir: dir}
		if ts, perr := parseSetTime(entry.Name()); perr == nil {
			info.CreatedAt = ts
		}
		if _, serr := os.Stat(filepath.Join(dir, ManifestName)); serr == nil {
			info.HasManifest = true
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// parseSetTime recovers the creation time from a set name's suffix.
func parseSetTime(name string) (time.Time, error) {
	if len(name) < len(TimestampLayout) {
		return time.Time{}, fmt.Errorf("name %q too short for timestamp", name)
	}
	return time.ParseInLocation(TimestampLayout, name[len(name)-len(TimestampLayout):], time.Local)
}

// FileFailure records one file that could not be processed in a batch.
type FileFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RestoreResult reports what a restore run did.
type RestoreResult struct {
	BackupName        string        `json:"backup_name"`
	OriginalDirectory string        `json:"original_directory"`
	Restored          []string      `json:"restored"`
	Failed            []FileFailure `json:"failed,omitempty"`
}

// Restore overwrites every template file recorded in the named backup set
// back to its original location. The manifest is the safety gate: if it is
// missing or unreadable, restore fails before any write. Per-file write
// failures are reported but do not abort the remaining files. Destination
// parent directories are not recreated; the original tree is assumed to
// still exist. Restore is terminal: it does not back up what it overwrites.
func Restore(backupRoot, name string) (*RestoreResult, error) {
	dir := filepath.Join(backupRoot, name)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("backup %s: %w", name, err)
	}

	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{
		BackupName:        name,
		OriginalDirectory: m.OriginalDirectory,
		Restored:          []string{},
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Failed = append(result.Failed, FileFailure{Path: path, Reason: err.Error()})
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), classify.TemplateExt) {
			return nil
		}

		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			result.Failed = append(result.Failed, FileFailure{Path: path, Reason: rerr.Error()})
			return nil
		}
		dst := filepath.Join(m.OriginalDirectory, rel)

		if cerr := restoreFile(path, dst); cerr != nil {
			result.Failed = append(result.Failed, FileFailure{Path: dst, Reason: cerr.Error()})
			return nil
		}
		result.Restored = append(result.Restored, dst)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walking backup %s: %w", name, err)
	}

	return result, nil
}

// restoreFile overwrites dst with the backed-up bytes at src.
func restoreFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if info, serr := os.Stat(src); serr == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(dst, data, mode)
}
