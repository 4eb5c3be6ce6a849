// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/neoighodaro/xctemplates/internal/config"
	"github.com/neoighodaro/xctemplates/internal/envfile"
	"github.com/neoighodaro/xctemplates/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor returns whether styled output should be enabled.
func useColor(cmd *cobra.Command) bool {
	return output.IsTTY(cmd.OutOrStdout())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the xctemplates CLI.
// Running the bare binary is equivalent to the install subcommand.
func newRootCmd() *cobra.Command {
	flags := &installFlags{}

	cmd := &cobra.Command{
		Use:   "xctemplates",
		Short: "Custom file headers for Xcode's bundled file templates",
		Long: `xctemplates rewires Xcode's bundled file templates for custom headers.

Xcode's templates begin with //___FILEHEADER___, which forces a comment
prefix onto every generated header. xctemplates:
  - Strips the comment prefix from the template marker lines
  - Installs IDETemplateMacros.plist with your chosen header template
  - Backs up every file it touches into a timestamped, restorable backup set

Running xctemplates with no subcommand performs an install.
All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, flags)
		},
	}

	// Load <configdir>/env for overrides like XCTEMPLATES_BACKUP_ROOT.
	// Environment variables already exported always take precedence.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFile()
		return nil
	}

	// Add persistent --json flag (available to all subcommands)
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	// The root runs install, so it carries the install flags too.
	addInstallFlags(cmd, flags)

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFile loads the tool's env file from the config directory.
func loadEnvFile() {
	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "backup", Title: "Backup Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Core commands: install, preview, templates
	addGroupedCommand(cmd, newInstallCmd(), "core")
	addGroupedCommand(cmd, newPreviewCmd(), "core")
	addGroupedCommand(cmd, newTemplatesCmd(), "core")

	// Backup commands: rollback, list, clean
	addGroupedCommand(cmd, newRollbackCmd(), "backup")
	addGroupedCommand(cmd, newListCmd(), "backup")
	addGroupedCommand(cmd, newCleanCmd(), "backup")

	// Agent commands: serve
	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

// resolveBackupRoot picks the backup store location: config file override
// first, then the fixed default under the user's home.
func resolveBackupRoot(file *config.File) string {
	if file.BackupRoot != "" {
		return file.BackupRoot
	}
	return config.DefaultBackupRoot()
}
