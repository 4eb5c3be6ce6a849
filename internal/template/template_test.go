package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeUserTemplate(t *testing.T, name, content string) {
	t.Helper()
	dir := filepath.Join(os.Getenv("XCTEMPLATES_CONFIG_HOME"), "templates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadBuiltins(t *testing.T) {
	t.Setenv("XCTEMPLATES_CONFIG_HOME", t.TempDir())

	for _, name := range []string{"default", "minimal", "mit"} {
		t.Run(name, func(t *testing.T) {
			tmpl, err := Load(name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tmpl.Source != "built-in" {
				t.Errorf("source = %q, want built-in", tmpl.Source)
			}
			if strings.TrimSpace(tmpl.Header) == "" {
				t.Error("built-in template has empty header")
			}
		})
	}
}

func TestLoadUnknown(t *testing.T) {
	t.Setenv("XCTEMPLATES_CONFIG_HOME", t.TempDir())

	if _, err := Load("no-such-template"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestLoadUserTemplate(t *testing.T) {
	t.Setenv("XCTEMPLATES_CONFIG_HOME", t.TempDir())
	writeUserTemplate(t, "team", "name: team\ndescription: Team header\nheader: |\n  // Team header body\n")

	tmpl, err := Load("team")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.Source != "user" {
		t.Errorf("source = %q, want user", tmpl.Source)
	}
	if !strings.Contains(tmpl.Header, "Team header body") {
		t.Errorf("header = %q", tmpl.Header)
	}
}

func TestUserTemplateOverridesBuiltin(t *testing.T) {
	t.Setenv("XCTEMPLATES_CONFIG_HOME", t.TempDir())
	writeUserTemplate(t, "default", "name: default\ndescription: override\nheader: |\n  // custom default\n")

	tmpl, err := Load("default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.Source != "user" {
		t.Errorf("source = %q, want user override to win", tmpl.Source)
	}
	if !strings.Contains(tmpl.Header, "custom default") {
		t.Errorf("header = %q, want the override body", tmpl.Header)
	}
}

func TestLoadRejectsEmptyHeader(t *testing.T) {
	t.Setenv("XCTEMPLATES_CONFIG_HOME", t.TempDir())
	writeUserTemplate(t, "empty", "name: empty\ndescription: nothing\nheader: \"\"\n")

	if _, err := Load("empty"); err == nil {
		t.Error("expected error for template without a header body")
	}
}

func TestListMarksShadowedBuiltins(t *testing.T) {
	t.Setenv("XCTEMPLATES_CONFIG_HOME", t.TempDir())
	writeUserTemplate(t, "default", "name: default\ndescription: override\nheader: x\n")
	writeUserTemplate(t, "extra", "name: extra\ndescription: extra one\nheader: y\n")

	infos := List()

	var userDefault, builtinDefault, extra bool
	for _, info := range infos {
		switch {
		case info.Name == "default" && info.Source == "user":
			userDefault = true
		case info.Name == "default" && info.Source == "built-in":
			builtinDefault = true
			if info.Overrides != "user" {
				t.Errorf("shadowed built-in not marked: %+v", info)
			}
		case info.Name == "extra":
			extra = true
		}
	}
	if !userDefault || !builtinDefault || !extra {
		t.Errorf("list incomplete: %+v", infos)
	}
}
