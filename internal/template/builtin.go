package template

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.yaml
var builtinFS embed.FS

// loadBuiltin loads a built-in template by name.
func loadBuiltin(name string) (*Template, error) {
	path := "templates/" + name + ".yaml"
	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading builtin template %s: %w", path, err)
	}
	return parseTemplate(data)
}

// listBuiltins returns info for all built-in templates.
func listBuiltins() []Info {
	dirEntries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil
	}

	var templates []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := builtinFS.ReadFile("templates/" + entry.Name())
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
			Source:      "built-in",
		})
	}

	return templates
}
