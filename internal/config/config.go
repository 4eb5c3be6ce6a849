package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRetentionDays is the sweep age threshold when nothing overrides it.
const DefaultRetentionDays = 30

// File holds the optional on-disk configuration at <configdir>/config.yaml.
type File struct {
	DefaultTemplate string `yaml:"default_template"`
	BackupRoot      string `yaml:"backup_root"`
	RetentionDays   int    `yaml:"retention_days"`
}

// LoadFile reads the config file if present. A missing file yields zero
// values, not an error.
func LoadFile() (*File, error) {
	dir := Dir()
	if dir == "" {
		return &File{}, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &f, nil
}

// Run is the immutable configuration for one invocation, constructed once
// at startup from flags, config file, and environment, then passed to each
// component call. No global mutable state.
type Run struct {
	TemplateID  string
	RootDir     string
	ExplicitDir bool // RootDir came from --directory, not platform default
	BackupRoot  string
	DryRun      bool
	AssumeYes   bool
}

// NewRun merges flag values with the config file into a Run.
// Empty flag values fall back to the config file, then to fixed defaults.
func NewRun(file *File, templateID, directory, defaultDir string, dryRun, yes bool) Run {
	run := Run{
		TemplateID:  templateID,
		RootDir:     directory,
		ExplicitDir: directory != "",
		BackupRoot:  file.BackupRoot,
		DryRun:      dryRun,
		AssumeYes:   yes,
	}
	if run.TemplateID == "" {
		run.TemplateID = file.DefaultTemplate
	}
	if run.TemplateID == "" {
		run.TemplateID = "default"
	}
	if run.RootDir == "" {
		run.RootDir = defaultDir
	}
	if run.BackupRoot == "" {
		run.BackupRoot = DefaultBackupRoot()
	}
	return run
}

// Retention returns the sweep age threshold in days: the flag value when
// set, else the config file value, else the default.
func Retention(file *File, flagDays int) int {
	if flagDays > 0 {
		return flagDays
	}
	if file.RetentionDays > 0 {
		return file.RetentionDays
	}
	return DefaultRetentionDays
}
