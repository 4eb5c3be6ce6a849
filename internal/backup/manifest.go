package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the fixed manifest filename inside each backup set.
const ManifestName = "manifest.json"

// ErrManifestMissing marks a backup set without a manifest. Such a set is
// unsafe to restore from and must be rejected before any write.
var ErrManifestMissing = errors.New("backup has no manifest")

// ErrManifestUnreadable marks a manifest that exists but cannot be parsed.
var ErrManifestUnreadable = errors.New("backup manifest is unreadable")

// Manifest records a backup set's provenance. It must round-trip: a manifest
// written by an install run is the sole driver of a later restore.
type Manifest struct {
	Timestamp         string   `json:"timestamp"`
	TemplateType      string   `json:"template_type"`
	OriginalDirectory string   `json:"original_directory"`
	ScriptVersion     string   `json:"script_version"`
	ModifiedFiles     []string `json:"modified_files"`
}

// WriteManifest serializes the run's manifest into the set. Call only after
// every copy for the run has succeeded; a set with files but no manifest is
// deliberately left in a state restore refuses.
func (s *Set) WriteManifest(templateID, version string, modifiedFiles []string) error {
	if modifiedFiles == nil {
		// Encode an empty run as a proper empty list, not a sentinel entry.
		modifiedFiles = []string{}
	}

	m := Manifest{
		Timestamp:         s.CreatedAt.Format(TimestampLayout),
		TemplateType:      templateID,
		OriginalDirectory: s.RootDir,
		ScriptVersion:     version,
		ModifiedFiles:     modifiedFiles,
	}

	data, err := json.MarshalIndent(&m, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing manifest: %w", err)
	}
	return atomicWrite(filepath.Join(s.Dir, ManifestName), append(data, '\n'))
}

// ReadManifest reads and parses the manifest of the backup set at dir.
// A missing manifest returns ErrManifestMissing; a present but unparseable
// one returns ErrManifestUnreadable. Both refuse restore.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestMissing, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrManifestUnreadable, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnreadable, err)
	}
	if m.OriginalDirectory == "" {
		return nil, fmt.Errorf("%w: missing original_directory", ErrManifestUnreadable)
	}
	return &m, nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
