// Package template resolves header templates: the bodies installed into
// IDETemplateMacros.plist under the FILEHEADER key. User templates override
// built-ins of the same name.
package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neoighodaro/xctemplates/internal/config"
)

// Template is one header template.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Header      string `yaml:"header"`

	// Source is where the template came from: "built-in" or "user".
	Source string `yaml:"-"`
}

// Info provides template metadata for listing.
type Info struct {
	Name        string
	Description string
	Source      string
	Overrides   string // empty, or the source this entry shadows
}

// Load finds and loads a template by name.
// Resolution order: user directory → built-in.
func Load(name string) (*Template, error) {
	if tmpl, err := loadFromDir(userTemplatesDir(), name); err == nil {
		tmpl.Source = "user"
		return tmpl, nil
	}

	if tmpl, err := loadBuiltin(name); err == nil {
		tmpl.Source = "built-in"
		return tmpl, nil
	}

	return nil, fmt.Errorf("template %q not found", name)
}

// List returns all available templates, user entries first, with built-ins
// shadowed by a user template of the same name marked as overridden.
func List() []Info {
	seen := make(map[string]bool)
	var templates []Info

	if infos, err := listFromDir(userTemplatesDir()); err == nil {
		for _, info := range infos {
			seen[info.Name] = true
			templates = append(templates, info)
		}
	}

	for _, info := range listBuiltins() {
		if seen[info.Name] {
			info.Overrides = "user"
		}
		templates = append(templates, info)
	}

	return templates
}

// userTemplatesDir returns the user's template directory.
func userTemplatesDir() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "templates")
}

// loadFromDir attempts to load a template from a directory.
func loadFromDir(dir, name string) (*Template, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}

	path := filepath.Join(dir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return parseTemplate(data)
}

// listFromDir lists templates in a directory.
func listFromDir(dir string) ([]Info, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var templates []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		tmpl, err := parseTemplate(data)
		if err != nil {
			continue
		}

		templates = append(templates, Info{
			Name:        strings.TrimSuffix(entry.Name(), ".yaml"),
			Description: tmpl.Description,
			Source:      "user",
		})
	}

	return templates, nil
}

// parseTemplate parses a YAML template document.
func parseTemplate(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	if strings.TrimSpace(tmpl.Header) == "" {
		return nil, errors.New("template has no header body")
	}
	return &tmpl, nil
}
