package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPreviewReportsClassification(t *testing.T) {
	setupTestEnv(t)
	root, rawFile, _, _ := setupTemplateRoot(t)

	out, err := runCLI(t, "preview", "--directory", root, "--json")
	if err != nil {
		t.Fatalf("preview failed: %v\n%s", err, out)
	}
	result := decodeJSON(t, out)

	if result["unmodified"] != float64(1) || result["modified"] != float64(1) {
		t.Errorf("unmodified = %v, modified = %v, want 1 and 1", result["unmodified"], result["modified"])
	}
	files, ok := result["files"].([]any)
	if !ok || len(files) != 2 {
		t.Fatalf("files = %v, want two entries", result["files"])
	}

	// Nothing written.
	if got := readFileT(t, rawFile); got != "//___FILEHEADER___\nclass A {}\n" {
		t.Errorf("preview mutated %s: %q", rawFile, got)
	}
}

func TestPreviewShowsDiff(t *testing.T) {
	setupTestEnv(t)
	root, _, _, _ := setupTemplateRoot(t)

	out, err := runCLI(t, "preview", "--directory", root)
	if err != nil {
		t.Fatalf("preview failed: %v\n%s", err, out)
	}

	if !strings.Contains(out, "-//___FILEHEADER___") || !strings.Contains(out, "+___FILEHEADER___") {
		t.Errorf("diff lines missing from output:\n%s", out)
	}
}

func TestPreviewNoDiffFlag(t *testing.T) {
	setupTestEnv(t)
	root, _, _, _ := setupTemplateRoot(t)

	out, err := runCLI(t, "preview", "--directory", root, "--no-diff")
	if err != nil {
		t.Fatalf("preview failed: %v\n%s", err, out)
	}
	if strings.Contains(out, "-//___FILEHEADER___") {
		t.Errorf("diff shown despite --no-diff:\n%s", out)
	}
}

func TestListShowsBackups(t *testing.T) {
	setupTestEnv(t)
	store := os.Getenv("XCTEMPLATES_BACKUP_ROOT")
	withManifest := "Templates_2026-01-01_10-00-00"
	withoutManifest := "Templates_2026-02-01_10-00-00"
	for _, name := range []string{withManifest, withoutManifest} {
		if err := os.MkdirAll(filepath.Join(store, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	manifest := `{"timestamp":"2026-01-01_10-00-00","template_type":"default","original_directory":"/tmp/x","script_version":"dev","modified_files":[]}`
	if err := os.WriteFile(filepath.Join(store, withManifest, "manifest.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "list", "--json")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	result := decodeJSON(t, out)

	if result["count"] != float64(2) {
		t.Errorf("count = %v, want 2", result["count"])
	}
	backups, ok := result["backups"].([]any)
	if !ok || len(backups) != 2 {
		t.Fatalf("backups = %v", result["backups"])
	}
	first := backups[0].(map[string]any)
	if first["name"] != withManifest || first["has_manifest"] != true {
		t.Errorf("first entry = %v, want the manifested oldest set", first)
	}
	second := backups[1].(map[string]any)
	if second["has_manifest"] != false {
		t.Errorf("second entry = %v, want has_manifest false", second)
	}
}

func TestListEmptyStore(t *testing.T) {
	setupTestEnv(t)

	out, err := runCLI(t, "list", "--json")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	result := decodeJSON(t, out)
	if result["count"] != float64(0) {
		t.Errorf("count = %v, want 0", result["count"])
	}
}

func agedBackup(t *testing.T, store, name string, age time.Duration) string {
	t.Helper()
	dir := filepath.Join(store, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	when := time.Now().Add(-age)
	if err := os.Chtimes(dir, when, when); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCleanRemovesOldBackups(t *testing.T) {
	setupTestEnv(t)
	store := os.Getenv("XCTEMPLATES_BACKUP_ROOT")
	old := agedBackup(t, store, "Templates_2026-01-01_10-00-00", 45*24*time.Hour)
	fresh := agedBackup(t, store, "Templates_2026-08-20_10-00-00", 2*24*time.Hour)

	out, err := runCLI(t, "clean", "--json")
	if err != nil {
		t.Fatalf("clean failed: %v\n%s", err, out)
	}
	result := decodeJSON(t, out)

	if result["status"] != "ok" {
		t.Errorf("status = %v, want ok", result["status"])
	}
	removed, ok := result["removed"].([]any)
	if !ok || len(removed) != 1 || removed[0] != "Templates_2026-01-01_10-00-00" {
		t.Errorf("removed = %v, want just the old set", result["removed"])
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old backup still on disk")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh backup was removed")
	}
}

func TestCleanDryRun(t *testing.T) {
	setupTestEnv(t)
	store := os.Getenv("XCTEMPLATES_BACKUP_ROOT")
	old := agedBackup(t, store, "Templates_2026-01-01_10-00-00", 45*24*time.Hour)

	out, err := runCLI(t, "clean", "--dry-run", "--json")
	if err != nil {
		t.Fatalf("clean failed: %v\n%s", err, out)
	}
	result := decodeJSON(t, out)

	if result["status"] != "dry_run" {
		t.Errorf("status = %v, want dry_run", result["status"])
	}
	candidates, ok := result["candidates"].([]any)
	if !ok || len(candidates) != 1 {
		t.Errorf("candidates = %v, want the old set", result["candidates"])
	}
	if _, err := os.Stat(old); err != nil {
		t.Error("dry run deleted the backup")
	}
}

func TestCleanHonorsDaysFlag(t *testing.T) {
	setupTestEnv(t)
	store := os.Getenv("XCTEMPLATES_BACKUP_ROOT")
	agedBackup(t, store, "Templates_2026-08-15_10-00-00", 7*24*time.Hour)

	out, err := runCLI(t, "clean", "--days", "3", "--json")
	if err != nil {
		t.Fatalf("clean failed: %v\n%s", err, out)
	}
	result := decodeJSON(t, out)

	if result["days"] != float64(3) {
		t.Errorf("days = %v, want 3", result["days"])
	}
	removed, ok := result["removed"].([]any)
	if !ok || len(removed) != 1 {
		t.Errorf("removed = %v, want the week-old set gone at --days 3", result["removed"])
	}
}

func TestTemplatesListsBuiltins(t *testing.T) {
	setupTestEnv(t)

	out, err := runCLI(t, "templates", "--json")
	if err != nil {
		t.Fatalf("templates failed: %v\n%s", err, out)
	}
	result := decodeJSON(t, out)

	templates, ok := result["templates"].([]any)
	if !ok || len(templates) < 3 {
		t.Fatalf("templates = %v, want at least the built-ins", result["templates"])
	}
	names := make(map[string]bool)
	for _, entry := range templates {
		names[entry.(map[string]any)["name"].(string)] = true
	}
	for _, want := range []string{"default", "minimal", "mit"} {
		if !names[want] {
			t.Errorf("built-in %q missing from %v", want, names)
		}
	}
}

func TestTemplatesShowsUserOverride(t *testing.T) {
	setupTestEnv(t)
	dir := filepath.Join(os.Getenv("XCTEMPLATES_CONFIG_HOME"), "templates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := "name: default\ndescription: custom\nheader: |\n  // custom\n"
	if err := os.WriteFile(filepath.Join(dir, "default.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "templates", "--json")
	if err != nil {
		t.Fatalf("templates failed: %v\n%s", err, out)
	}
	result := decodeJSON(t, out)

	var sawUser, sawShadowed bool
	for _, entry := range result["templates"].([]any) {
		e := entry.(map[string]any)
		if e["name"] != "default" {
			continue
		}
		switch e["source"] {
		case "user":
			sawUser = true
		case "built-in":
			if e["overridden_by"] == "user" {
				sawShadowed = true
			}
		}
	}
	if !sawUser || !sawShadowed {
		t.Errorf("override not reflected in listing:\n%s", out)
	}
}
