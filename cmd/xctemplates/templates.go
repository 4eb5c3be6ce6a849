// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/neoighodaro/xctemplates/internal/output"
	"github.com/neoighodaro/xctemplates/internal/template"
)

// newTemplatesCmd creates the templates command.
func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List available header templates",
		Long: `List the header templates available to install.

User templates are YAML files in the config directory's templates/ folder
and override built-ins of the same name:

  name: corp
  description: Company header
  header: |
    //  ___FILENAME___ — ___COPYRIGHT___`,
		RunE: runTemplates,
	}
}

// runTemplates executes the templates command.
func runTemplates(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	infos := template.List()

	if printer.IsJSON() {
		templates := make([]map[string]any, 0, len(infos))
		for _, info := range infos {
			entry := map[string]any{
				"name":        info.Name,
				"description": info.Description,
				"source":      info.Source,
			}
			if info.Overrides != "" {
				entry["overridden_by"] = info.Overrides
			}
			templates = append(templates, entry)
		}
		return printer.Success(map[string]any{
			"count":     len(infos),
			"templates": templates,
		})
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		source := info.Source
		if info.Overrides != "" {
			source += " (overridden by " + info.Overrides + ")"
		}
		rows = append(rows, []string{info.Name, source, info.Description})
	}
	printer.Table([]string{"NAME", "SOURCE", "DESCRIPTION"}, rows)
	return nil
}
