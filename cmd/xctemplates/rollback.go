// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neoighodaro/xctemplates/internal/backup"
	"github.com/neoighodaro/xctemplates/internal/config"
	"github.com/neoighodaro/xctemplates/internal/output"
)

// newRollbackCmd creates the rollback command.
func newRollbackCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rollback [backup-name]",
		Short: "Restore template files from a backup set",
		Long: `Restore template files from a previously created backup set.

Without an argument, the available backups are listed for selection.
The backup's manifest drives the restore: every file it covers is written
back to its original location, byte for byte. A backup without a manifest
is refused.

Restore is terminal: it does not create a new backup of what it overwrites.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runRollback(cmd, name, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// runRollback executes the rollback command.
func runRollback(cmd *cobra.Command, name string, yes bool) error {
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
	if len(infos) == 0 {
		return fail(printer, output.NewUserError("no backups found in "+backupRoot))
	}

	if name == "" {
		if printer.IsJSON() {
			return fail(printer, output.NewUserError("a backup name is required in JSON mode"))
		}
		selected := selectBackup(cmd, printer, infos)
		if selected == "" {
			printer.Println("Rollback cancelled.")
			return nil
		}
		name = selected
	}

	if !yes && !printer.IsJSON() {
		if !confirm(cmd, printer, fmt.Sprintf("Restore %s? This overwrites the current template files.", name)) {
			printer.Println("Rollback cancelled.")
			return nil
		}
	}

	result, err := backup.Restore(backupRoot, name)
	if err != nil {
		switch {
		case errors.Is(err, backup.ErrManifestMissing):
			return fail(printer, output.NewUserError("backup "+name+" has no manifest and cannot be restored safely"))
		case errors.Is(err, backup.ErrManifestUnreadable):
			return fail(printer, output.NewUserError("backup "+name+" has an unreadable manifest: "+err.Error()))
		default:
			return fail(printer, output.NewSystemErrorWithCause("restoring "+name+": "+err.Error(), err))
		}
	}

	return outputRollbackResult(printer, result)
}

// selectBackup presents the numbered backup list, oldest first.
// Returns the chosen name or "" on cancel.
func selectBackup(cmd *cobra.Command, printer *output.Printer, infos []backup.Info) string {
	options := make([]string, 0, len(infos))
	for _, info := range infos {
		label := info.Name
		if !info.HasManifest {
			label += " (no manifest — not restorable)"
		}
		options = append(options, label)
	}
	idx := choose(cmd, printer, "Select a backup to restore", options)
	if idx < 0 {
		return ""
	}
	return infos[idx].Name
}

// outputRollbackResult reports a completed restore.
func outputRollbackResult(printer *output.Printer, result *backup.RestoreResult) error {
	if printer.IsJSON() {
		status := "ok"
		if len(result.Failed) > 0 {
			status = "partial"
		}
		return printer.Success(map[string]any{
			"status":             status,
			"backup":             result.BackupName,
			"original_directory": result.OriginalDirectory,
			"restored":           len(result.Restored),
			"restored_files":     result.Restored,
			"failed":             result.Failed,
		})
	}

	styles := printer.Styles()
	printer.Println()
	printer.Println(styles.Success.Render("  ✓ ") + fmt.Sprintf("%d file(s) restored to %s", len(result.Restored), result.OriginalDirectory))
	if len(result.Failed) > 0 {
		printer.Println(styles.Warning.Render(fmt.Sprintf("  %d file(s) could not be restored:", len(result.Failed))))
		for _, f := range result.Failed {
			printer.Println("    " + f.Path + ": " + f.Reason)
		}
	}
	return nil
}

// formatBackupTime renders a backup timestamp for tables.
func formatBackupTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("2006-01-02 15:04:05")
}
