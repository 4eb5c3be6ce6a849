// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/neoighodaro/xctemplates/internal/classify"
	"github.com/neoighodaro/xctemplates/internal/output"
	"github.com/neoighodaro/xctemplates/internal/xcode"
)

// previewFlags holds the command-line flags for the preview command.
type previewFlags struct {
	directory string
	noDiff    bool
}

// newPreviewCmd creates the preview command.
func newPreviewCmd() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show what an install would change, without changing anything",
		Long: `Classify every template file under the root by its FILEHEADER marker
and show a unified diff of the first-line change an install would make.
Nothing is written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.directory, "directory", "d", "", "Template root to scan (defaults to the Xcode installation)")
	cmd.Flags().BoolVar(&flags.noDiff, "no-diff", false, "Skip per-file diffs")
	return cmd
}

// runPreview executes the preview command.
func runPreview(cmd *cobra.Command, flags *previewFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	dir := flags.directory
	explicit := dir != ""
	if dir == "" {
		dir = xcode.DefaultTemplatesRoot
	}

	env, err := xcode.CheckEnvironment(dir, explicit)
	if err != nil {
		return fail(printer, output.NewSystemError(err.Error()))
	}
	for _, w := range env.Warnings {
		printer.Warn("%s", w)
	}

	candidates, stats, err := classify.Scan(dir)
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause("scanning template files: "+err.Error(), err))
	}

	if printer.IsJSON() {
		files := make([]map[string]any, 0, len(candidates))
		for _, c := range candidates {
			files = append(files, map[string]any{"path": c.Path, "state": c.State.String()})
		}
		return printer.Success(map[string]any{
			"directory":  dir,
			"unmodified": stats.Unmodified,
			"modified":   stats.Modified,
			"skipped":    stats.Skipped,
			"files":      files,
		})
	}

	styles := printer.Styles()
	printer.KeyValue("Template root", dir)
	printer.KeyValue("Unmodified", fmt.Sprintf("%d (would be processed)", stats.Unmodified))
	printer.KeyValue("Already processed", fmt.Sprintf("%d", stats.Modified))
	if stats.Skipped > 0 {
		printer.KeyValue("Skipped", fmt.Sprintf("%d (unreadable)", stats.Skipped))
	}

	if len(candidates) == 0 {
		printer.Println()
		printer.Println(styles.Dim.Render("No template files with a FILEHEADER marker found."))
		return nil
	}

	printer.Section("Files")
	for _, c := range candidates {
		printer.Println("  " + c.Path + " " + styles.Dim.Render("("+c.State.String()+")"))
	}

	if flags.noDiff {
		return nil
	}

	for _, c := range candidates {
		if c.State != classify.Unmodified {
			continue
		}
		patch, derr := previewDiff(c.Path)
		if derr != nil {
			printer.Warn("diff for %s: %v", c.Path, derr)
			continue
		}
		printer.Section(c.Path)
		printer.Print("%s", patch)
	}
	return nil
}

// previewDiff renders a unified diff between a file's current content and
// what the install mutation would leave behind.
func previewDiff(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mutated := data
	if strings.HasPrefix(string(data), "//"+classify.Token) {
		mutated = data[2:]
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(data)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: path,
		ToFile:   path + " (processed)",
		Context:  2,
	})
}
