// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"fmt"

	"github.com/neoighodaro/xctemplates/internal/classify"
	"github.com/neoighodaro/xctemplates/internal/config"
	"github.com/neoighodaro/xctemplates/internal/output"
)

// outputInstallDryRun reports what an install would do without doing it.
func outputInstallDryRun(printer *output.Printer, run config.Run,
	stats *classify.ScanStats, selection []classify.CandidateFile) error {
	if printer.IsJSON() {
		files := make([]string, 0, len(selection))
		for _, c := range selection {
			files = append(files, c.Path)
		}
		return printer.Success(map[string]any{
			"status":        "dry_run",
			"directory":     run.RootDir,
			"template":      run.TemplateID,
			"backup_root":   run.BackupRoot,
			"unmodified":    stats.Unmodified,
			"modified":      stats.Modified,
			"skipped":       stats.Skipped,
			"would_process": files,
		})
	}

	styles := printer.Styles()
	printer.Println(styles.Warning.Render(fmt.Sprintf("Dry run: would process %d template file(s) under %s", len(selection), run.RootDir)))
	printer.Println()
	for _, c := range selection {
		printer.Println("  " + styles.Dim.Render("•") + " " + c.Path + " (" + c.State.String() + ")")
	}
	printer.Println()
	printer.KeyValue("Template", run.TemplateID)
	printer.KeyValue("Backup store", run.BackupRoot)
	if stats.Skipped > 0 {
		printer.Println(styles.Dim.Render(fmt.Sprintf("  (%d unreadable file(s) skipped)", stats.Skipped)))
	}
	return nil
}

// outputInstallResult reports a completed install run.
func outputInstallResult(printer *output.Printer, result *installResult) error {
	if printer.IsJSON() {
		status := "ok"
		if len(result.Failures) > 0 {
			status = "partial"
		}
		data := map[string]any{
			"status":          status,
			"template":        result.TemplateID,
			"backup":          result.BackupName,
			"scanned":         result.Scanned,
			"skipped":         result.Skipped,
			"processed":       len(result.Processed),
			"mutated":         result.Mutated,
			"processed_files": processedOrEmpty(result.Processed),
			"macros_path":     result.MacrosPath,
		}
		if result.MacrosBackup != "" {
			data["macros_backup"] = result.MacrosBackup
		}
		if len(result.Failures) > 0 {
			data["failures"] = result.Failures
		}
		return printer.Success(data)
	}

	styles := printer.Styles()
	printer.Println()
	printer.Println(styles.Success.Render("  ✓ ") + fmt.Sprintf("%d file(s) backed up to %s", len(result.Processed), result.BackupName))
	printer.Println(styles.Success.Render("  ✓ ") + fmt.Sprintf("%d file(s) modified", result.Mutated))
	printer.Println(styles.Success.Render("  ✓ ") + "Header macros installed: " + result.MacrosPath)
	if result.MacrosBackup != "" {
		printer.Println(styles.Dim.Render("    (previous macros saved to " + result.MacrosBackup + ")"))
	}
	if len(result.Failures) > 0 {
		printer.Println()
		printer.Println(styles.Warning.Render(fmt.Sprintf("  %d file(s) could not be processed:", len(result.Failures))))
		for _, f := range result.Failures {
			printer.Println("    " + f.Path + ": " + f.Reason)
		}
	}
	printer.Println()
	printer.Println(styles.Dim.Render("  Roll back any time with 'xctemplates rollback'."))
	return nil
}

// processedOrEmpty keeps the JSON field a proper empty list, never null.
func processedOrEmpty(files []string) []string {
	if files == nil {
		return []string{}
	}
	return files
}
