// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neoighodaro/xctemplates/internal/backup"
	"github.com/neoighodaro/xctemplates/internal/config"
	"github.com/neoighodaro/xctemplates/internal/output"
)

// cleanFlags holds the command-line flags for the clean command.
type cleanFlags struct {
	days   int
	dryRun bool
	yes    bool
}

// newCleanCmd creates the clean command.
func newCleanCmd() *cobra.Command {
	flags := &cleanFlags{}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete backup sets older than the retention age",
		Long: `Delete backup sets whose age exceeds the retention threshold.
The threshold comes from --days, the config file's retention_days, or the
built-in default of 30 days. Newer backups are never touched; a failure
deleting one backup does not stop the rest.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClean(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.days, "days", 0, "Retention age in days (0 uses the configured default)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report removal candidates without deleting")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// runClean executes the clean command.
func runClean(cmd *cobra.Command, flags *cleanFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	file, err := config.LoadFile()
	if err != nil {
		return fail(printer, output.NewUserError(err.Error()))
	}
	backupRoot := resolveBackupRoot(file)
	days := config.Retention(file, flags.days)

	if !flags.dryRun && !flags.yes && !printer.IsJSON() {
		if !confirm(cmd, printer, fmt.Sprintf("Delete backups older than %d day(s) from %s?", days, backupRoot)) {
			printer.Println("Clean cancelled.")
			return nil
		}
	}

	result, err := backup.Sweep(backupRoot, days, flags.dryRun)
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause("sweeping backups: "+err.Error(), err))
	}

	if printer.IsJSON() {
		status := "ok"
		if flags.dryRun {
			status = "dry_run"
		} else if len(result.Failed) > 0 {
			status = "partial"
		}
		return printer.Success(map[string]any{
			"status":     status,
			"days":       days,
			"examined":   result.Examined,
			"kept":       result.Kept,
			"removed":    result.Removed,
			"candidates": result.Candidates,
			"failed":     result.Failed,
		})
	}

	styles := printer.Styles()
	if flags.dryRun {
		if len(result.Candidates) == 0 {
			printer.Println(fmt.Sprintf("Nothing older than %d day(s); %d backup(s) kept.", days, result.Kept))
			return nil
		}
		printer.Println(styles.Warning.Render(fmt.Sprintf("Dry run: would remove %d backup(s):", len(result.Candidates))))
		for _, name := range result.Candidates {
			printer.Println("  " + styles.Dim.Render("•") + " " + name)
		}
		return nil
	}

	printer.Println(styles.Success.Render(fmt.Sprintf("Removed %d backup(s), kept %d.", len(result.Removed), result.Kept)))
	for _, f := range result.Failed {
		printer.Warn("could not remove %s: %s", f.Path, f.Reason)
	}
	return nil
}
