package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want State
	}{
		{"raw marker", "//___FILEHEADER___\n", Unmodified},
		{"raw marker no newline", "//___FILEHEADER___", Unmodified},
		{"stripped marker", "___FILEHEADER___\n", Modified},
		{"plain code", "import Foundation\n", None},
		{"empty line", "", None},
		{"marker not at start", "  //___FILEHEADER___\n", None},
		{"stripped marker indented", " ___FILEHEADER___\n", None},
		{"comment without token", "// Created by someone\n", None},
		{"token in block comment", "/*___FILEHEADER___*/\n", None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyLine(tt.line); got != tt.want {
				t.Errorf("ClassifyLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyReadsOnlyFirstLine(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.swift", "import Foundation\n//___FILEHEADER___\n")

	state, err := Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != None {
		t.Errorf("state = %v, want None (marker on line 2 must not count)", state)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Source/A.swift", "//___FILEHEADER___\nstruct A {}\n")
	writeFile(t, dir, "Source/Nested/B.swift", "___FILEHEADER___\nstruct B {}\n")
	writeFile(t, dir, "C.swift", "import Foundation\n")
	writeFile(t, dir, "ignored.txt", "//___FILEHEADER___\n")
	writeFile(t, dir, "empty.swift", "")

	candidates, stats, err := Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Scanned != 4 {
		t.Errorf("scanned = %d, want 4 (.txt excluded)", stats.Scanned)
	}
	if stats.Unmodified != 1 || stats.Modified != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", stats.Unmodified, stats.Modified)
	}
	if stats.Unmarked != 2 {
		t.Errorf("unmarked = %d, want 2", stats.Unmarked)
	}
	if len(candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(candidates))
	}

	byState := map[State]string{}
	for _, c := range candidates {
		byState[c.State] = c.Path
	}
	if filepath.Base(byState[Unmodified]) != "A.swift" {
		t.Errorf("unmodified candidate = %s, want A.swift", byState[Unmodified])
	}
	if filepath.Base(byState[Modified]) != "B.swift" {
		t.Errorf("modified candidate = %s, want B.swift", byState[Modified])
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, _, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing root, got nil")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDetectState(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.swift", "//___FILEHEADER___\nbody\n")
	writeFile(t, dir, "B.swift", "___FILEHEADER___\nbody\n")
	writeFile(t, dir, "C.swift", "unrelated\n")

	counts, stats, err := DetectState(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Unmodified != 1 || counts.Modified != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", counts.Unmodified, counts.Modified)
	}
	if stats.Unmarked != 1 {
		t.Errorf("unmarked = %d, want 1", stats.Unmarked)
	}
}
