// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neoighodaro/xctemplates/internal/backup"
	"github.com/neoighodaro/xctemplates/internal/classify"
	"github.com/neoighodaro/xctemplates/internal/config"
	"github.com/neoighodaro/xctemplates/internal/macros"
	"github.com/neoighodaro/xctemplates/internal/mutate"
	"github.com/neoighodaro/xctemplates/internal/output"
	"github.com/neoighodaro/xctemplates/internal/template"
	"github.com/neoighodaro/xctemplates/internal/xcode"
)

// installFlags holds the command-line flags for the install command.
// The root command shares them since bare xctemplates runs an install.
type installFlags struct {
	template  string
	directory string
	dryRun    bool
	yes       bool
}

// addInstallFlags registers the install flags on a command.
func addInstallFlags(cmd *cobra.Command, flags *installFlags) {
	cmd.Flags().StringVarP(&flags.template, "template", "t", "", "Header template to install (see 'xctemplates templates')")
	cmd.Flags().StringVarP(&flags.directory, "directory", "d", "", "Template root to process (defaults to the Xcode installation)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be done without doing it")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Accept defaults, no prompts")
}

// newInstallCmd creates the install command.
func newInstallCmd() *cobra.Command {
	flags := &installFlags{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Process template markers and install the header macros",
		Long: `Process the Xcode template tree and install the header macros.

For every template file whose first line is //___FILEHEADER___, the comment
prefix is stripped so the substituted header is fully controlled by the
macro config. Before any file is touched, its original bytes are copied into
a timestamped backup set with a manifest; 'xctemplates rollback' restores
from it.

Finally IDETemplateMacros.plist is written with the selected header
template. A pre-existing macro config is copied aside first.

Examples:
  xctemplates install                  # Interactive install, default template
  xctemplates install -t mit --yes     # MIT header, no prompts
  xctemplates install --dry-run        # Report without changing anything`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, flags)
		},
	}

	addInstallFlags(cmd, flags)
	return cmd
}

// installResult tracks what an install run did for reporting.
type installResult struct {
	TemplateID   string
	BackupName   string
	MacrosPath   string
	MacrosBackup string
	Scanned      int
	Skipped      int
	Mutated      int
	Processed    []string
	Failures     []backup.FileFailure
}

// runInstall executes the install command.
func runInstall(cmd *cobra.Command, flags *installFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	file, err := config.LoadFile()
	if err != nil {
		return fail(printer, output.NewUserError(err.Error()))
	}
	run := config.NewRun(file, flags.template, flags.directory, xcode.DefaultTemplatesRoot, flags.dryRun, flags.yes)

	tmpl, err := template.Load(run.TemplateID)
	if err != nil {
		return fail(printer, output.NewUserError(err.Error()))
	}

	env, err := xcode.CheckEnvironment(run.RootDir, run.ExplicitDir)
	if err != nil {
		return fail(printer, output.NewSystemError(err.Error()))
	}
	for _, w := range env.Warnings {
		printer.Warn("%s", w)
	}

	candidates, stats, err := classify.Scan(run.RootDir)
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause("scanning template files: "+err.Error(), err))
	}

	selection, proceed, err := resolveSelection(cmd, printer, run, candidates, stats)
	if err != nil {
		return fail(printer, err)
	}
	if !proceed {
		printer.Println("Install cancelled.")
		return nil
	}

	if run.DryRun {
		return outputInstallDryRun(printer, run, stats, selection)
	}

	return performInstall(printer, run, tmpl, stats, selection)
}

// resolveSelection maps the pure mode decision onto the interactive shell:
// prompts in a terminal, conservative defaults under --yes, --dry-run, or
// --json. Returns the files to process and whether to proceed.
func resolveSelection(cmd *cobra.Command, printer *output.Printer, run config.Run,
	candidates []classify.CandidateFile, stats *classify.ScanStats) ([]classify.CandidateFile, bool, error) {
	counts := classify.Counts{Unmodified: stats.Unmodified, Modified: stats.Modified}
	unmodified := filterState(candidates, classify.Unmodified)
	noPrompts := run.AssumeYes || run.DryRun || printer.IsJSON()

	switch classify.Decide(counts) {
	case classify.NoCandidates:
		return nil, false, output.NewUserError("no template files with a FILEHEADER marker found under " + run.RootDir)

	case classify.ProcessUnmodified:
		if noPrompts {
			return unmodified, true, nil
		}
		ok := confirm(cmd, printer, fmt.Sprintf("Process %d template file(s) under %s?", len(unmodified), run.RootDir))
		return unmodified, ok, nil

	case classify.NeedReprocessChoice:
		// Everything already in target form. Re-processing backs the files
		// up again and reinstalls the macros, mutating nothing — only worth
		// doing when a person explicitly asks for it, so without a prompt
		// the run cancels rather than churning backups.
		if noPrompts {
			return nil, false, nil
		}
		ok := confirm(cmd, printer, fmt.Sprintf(
			"All %d template file(s) are already processed. Re-process and reinstall the header macros?", counts.Modified))
		return candidates, ok, nil

	default: // NeedMixedChoice
		if noPrompts {
			// Conservative default: touch only files that still need the strip.
			return unmodified, true, nil
		}
		printer.Println(fmt.Sprintf("%d file(s) still carry the raw marker, %d are already processed.",
			counts.Unmodified, counts.Modified))
		switch choose(cmd, printer, "How should they be handled?", []string{
			fmt.Sprintf("Process only the %d unmodified file(s)", counts.Unmodified),
			fmt.Sprintf("Process all %d file(s)", len(candidates)),
			"Cancel",
		}) {
		case 0:
			return unmodified, true, nil
		case 1:
			return candidates, true, nil
		default:
			return nil, false, nil
		}
	}
}

// filterState returns the candidates in the given state.
func filterState(candidates []classify.CandidateFile, state classify.State) []classify.CandidateFile {
	var out []classify.CandidateFile
	for _, c := range candidates {
		if c.State == state {
			out = append(out, c)
		}
	}
	return out
}

// performInstall runs the destructive part: backup, mutate, manifest, macros.
func performInstall(printer *output.Printer, run config.Run, tmpl *template.Template,
	stats *classify.ScanStats, selection []classify.CandidateFile) error {
	result := &installResult{
		TemplateID: run.TemplateID,
		Scanned:    stats.Scanned,
		Skipped:    stats.Skipped,
	}

	set, err := backup.Create(run.BackupRoot, run.RootDir)
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause("creating backup: "+err.Error(), err))
	}
	result.BackupName = set.Name

	for _, c := range selection {
		// Copy first; a file whose copy failed is never mutated.
		if cerr := set.CopyIn(c.Path); cerr != nil {
			result.Failures = append(result.Failures, backup.FileFailure{Path: c.Path, Reason: cerr.Error()})
			continue
		}
		changed, merr := mutate.Apply(c.Path, c.State)
		if merr != nil {
			result.Failures = append(result.Failures, backup.FileFailure{Path: c.Path, Reason: merr.Error()})
			continue
		}
		if changed {
			result.Mutated++
		}
		result.Processed = append(result.Processed, c.Path)
	}

	if err := set.WriteManifest(run.TemplateID, version, result.Processed); err != nil {
		return fail(printer, output.NewSystemErrorWithCause("writing backup manifest: "+err.Error(), err))
	}

	macrosPath, err := macros.Path()
	if err != nil {
		return fail(printer, output.NewSystemError(err.Error()))
	}
	result.MacrosPath = macrosPath
	prev, err := macros.Install(macrosPath, tmpl.Header)
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause("installing header macros: "+err.Error(), err))
	}
	result.MacrosBackup = prev

	return outputInstallResult(printer, result)
}

// fail reports an error through the printer and returns it for the exit code.
func fail(printer *output.Printer, err error) error {
	printer.Error(err)
	return err
}
