package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirResolution(t *testing.T) {
	t.Run("explicit override wins", func(t *testing.T) {
		t.Setenv("XCTEMPLATES_CONFIG_HOME", "/tmp/explicit")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		if got := Dir(); got != "/tmp/explicit" {
			t.Errorf("Dir() = %q", got)
		}
	})

	t.Run("xdg fallback", func(t *testing.T) {
		t.Setenv("XCTEMPLATES_CONFIG_HOME", "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		if got := Dir(); got != filepath.Join("/tmp/xdg", "xctemplates") {
			t.Errorf("Dir() = %q", got)
		}
	})

	t.Run("home default", func(t *testing.T) {
		t.Setenv("XCTEMPLATES_CONFIG_HOME", "")
		t.Setenv("XDG_CONFIG_HOME", "")
		home := t.TempDir()
		t.Setenv("HOME", home)
		want := filepath.Join(home, ".config", "xctemplates")
		if got := Dir(); got != want {
			t.Errorf("Dir() = %q, want %q", got, want)
		}
	})
}

func TestDefaultBackupRoot(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("XCTEMPLATES_BACKUP_ROOT", "/tmp/store")
		if got := DefaultBackupRoot(); got != "/tmp/store" {
			t.Errorf("DefaultBackupRoot() = %q", got)
		}
	})

	t.Run("home default", func(t *testing.T) {
		t.Setenv("XCTEMPLATES_BACKUP_ROOT", "")
		home := t.TempDir()
		t.Setenv("HOME", home)
		want := filepath.Join(home, ".xctemplates", "backups")
		if got := DefaultBackupRoot(); got != want {
			t.Errorf("DefaultBackupRoot() = %q, want %q", got, want)
		}
	})
}

func TestLoadFileMissing(t *testing.T) {
	t.Setenv("XCTEMPLATES_CONFIG_HOME", t.TempDir())

	f, err := LoadFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.DefaultTemplate != "" || f.BackupRoot != "" || f.RetentionDays != 0 {
		t.Errorf("missing file should yield zero values, got %+v", f)
	}
}

func TestLoadFileParsesValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XCTEMPLATES_CONFIG_HOME", dir)
	content := "default_template: mit\nbackup_root: /tmp/bk\nretention_days: 14\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.DefaultTemplate != "mit" || f.BackupRoot != "/tmp/bk" || f.RetentionDays != 14 {
		t.Errorf("parsed config = %+v", f)
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XCTEMPLATES_CONFIG_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("\t:bad"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(); err == nil {
		t.Error("expected error for invalid config yaml")
	}
}

func TestNewRunMergeOrder(t *testing.T) {
	t.Setenv("XCTEMPLATES_BACKUP_ROOT", "/env/backups")

	tests := []struct {
		name       string
		file       File
		templateID string
		directory  string
		want       Run
	}{
		{
			name: "flags win over file",
			file: File{DefaultTemplate: "mit", BackupRoot: "/file/bk"},

			templateID: "minimal",
			directory:  "/flag/dir",
			want: Run{
				TemplateID:  "minimal",
				RootDir:     "/flag/dir",
				ExplicitDir: true,
				BackupRoot:  "/file/bk",
			},
		},
		{
			name:       "file fills empty flags",
			file:       File{DefaultTemplate: "mit", BackupRoot: "/file/bk"},
			templateID: "",
			directory:  "",
			want: Run{
				TemplateID:  "mit",
				RootDir:     "/default/dir",
				ExplicitDir: false,
				BackupRoot:  "/file/bk",
			},
		},
		{
			name:       "fixed defaults last",
			file:       File{},
			templateID: "",
			directory:  "",
			want: Run{
				TemplateID:  "default",
				RootDir:     "/default/dir",
				ExplicitDir: false,
				BackupRoot:  "/env/backups",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRun(&tt.file, tt.templateID, tt.directory, "/default/dir", false, false)
			if got != tt.want {
				t.Errorf("NewRun = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRetention(t *testing.T) {
	tests := []struct {
		name     string
		file     File
		flagDays int
		want     int
	}{
		{"flag wins", File{RetentionDays: 14}, 7, 7},
		{"file when no flag", File{RetentionDays: 14}, 0, 14},
		{"default when neither", File{}, 0, DefaultRetentionDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retention(&tt.file, tt.flagDays); got != tt.want {
				t.Errorf("Retention = %d, want %d", got, tt.want)
			}
		})
	}
}
