// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/neoighodaro/xctemplates/internal/backup"
	"github.com/neoighodaro/xctemplates/internal/config"
	"github.com/neoighodaro/xctemplates/internal/output"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backup sets, oldest first",
		RunE:  runList,
	}
}

// runList executes the list command.
func runList(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	file, err := config.LoadFile()
	if err != nil {
		return fail(printer, output.NewUserError(err.Error()))
	}
	backupRoot := resolveBackupRoot(file)

	infos, err := backup.List(backupRoot)
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause("listing backups: "+err.Error(), err))
	}

	if printer.IsJSON() {
		backups := make([]map[string]any, 0, len(infos))
		for _, info := range infos {
			backups = append(backups, map[string]any{
				"name":         info.Name,
				"created_at":   info.CreatedAt.Format(time.RFC3339),
				"has_manifest": info.HasManifest,
			})
		}
		return printer.Success(map[string]any{
			"backup_root": backupRoot,
			"count":       len(infos),
			"backups":     backups,
		})
	}

	if len(infos) == 0 {
		printer.Println("No backups in " + backupRoot)
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		manifest := "yes"
		if !info.HasManifest {
			manifest = "MISSING"
		}
		rows = append(rows, []string{info.Name, formatBackupTime(info.CreatedAt), manifest})
	}
	printer.Table([]string{"NAME", "CREATED", "MANIFEST"}, rows)
	return nil
}
