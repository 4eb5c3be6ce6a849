package mcp

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/neoighodaro/xctemplates/internal/backup"
	"github.com/neoighodaro/xctemplates/internal/classify"
	"github.com/neoighodaro/xctemplates/internal/config"
	"github.com/neoighodaro/xctemplates/internal/macros"
)

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Platform        string `json:"platform"         jsonschema:"host operating system"`
	TemplatesRoot   string `json:"templates_root"   jsonschema:"template tree being targeted"`
	RootExists      bool   `json:"root_exists"      jsonschema:"whether the template root exists"`
	Unmodified      int    `json:"unmodified"       jsonschema:"files still carrying the raw marker"`
	Modified        int    `json:"modified"         jsonschema:"files already in target form"`
	BackupRoot      string `json:"backup_root"      jsonschema:"backup store location"`
	BackupCount     int    `json:"backup_count"     jsonschema:"number of backup sets"`
	MacrosPath      string `json:"macros_path"      jsonschema:"IDETemplateMacros.plist location"`
	MacrosInstalled bool   `json:"macros_installed" jsonschema:"whether a macro config is present"`
}

func handleStatus(run config.Run) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		out := StatusOutput{
			Platform:      runtime.GOOS,
			TemplatesRoot: run.RootDir,
			BackupRoot:    run.BackupRoot,
		}

		if _, err := os.Stat(run.RootDir); err == nil {
			out.RootExists = true
			if counts, _, cerr := classify.DetectState(run.RootDir); cerr == nil {
				out.Unmodified = counts.Unmodified
				out.Modified = counts.Modified
			}
		}

		if infos, err := backup.List(run.BackupRoot); err == nil {
			out.BackupCount = len(infos)
		}

		if path, err := macros.Path(); err == nil {
			out.MacrosPath = path
			if header, rerr := macros.Read(path); rerr == nil && header != "" {
				out.MacrosInstalled = true
			}
		}

		return nil, out, nil
	}
}

// --- Preview tool ---

// PreviewInput is the input for the preview tool.
type PreviewInput struct {
	Directory string `json:"directory,omitempty" jsonschema:"template root to scan (defaults to the configured root)"`
}

// CandidateInfo is one classified template file.
type CandidateInfo struct {
	Path  string `json:"path"  jsonschema:"absolute file path"`
	State string `json:"state" jsonschema:"marker form: unmodified or modified"`
}

// PreviewOutput is the output for the preview tool.
type PreviewOutput struct {
	Directory  string          `json:"directory"            jsonschema:"scanned template root"`
	Unmodified int             `json:"unmodified"           jsonschema:"files still carrying the raw marker"`
	Modified   int             `json:"modified"             jsonschema:"files already in target form"`
	Skipped    int             `json:"skipped"              jsonschema:"unreadable files skipped"`
	Candidates []CandidateInfo `json:"candidates,omitempty" jsonschema:"classified files"`
}

func handlePreview(run config.Run) mcp.ToolHandlerFor[PreviewInput, PreviewOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PreviewInput) (*mcp.CallToolResult, PreviewOutput, error) {
		dir := input.Directory
		if dir == "" {
			dir = run.RootDir
		}

		candidates, stats, err := classify.Scan(dir)
		if err != nil {
			return nil, PreviewOutput{}, fmt.Errorf("scanning %s: %w", dir, err)
		}

		out := PreviewOutput{
			Directory:  dir,
			Unmodified: stats.Unmodified,
			Modified:   stats.Modified,
			Skipped:    stats.Skipped,
			Candidates: make([]CandidateInfo, 0, len(candidates)),
		}
		for _, c := range candidates {
			out.Candidates = append(out.Candidates, CandidateInfo{Path: c.Path, State: c.State.String()})
		}
		return nil, out, nil
	}
}

// --- Backups tool ---

// BackupsInput is the input for the backups tool (no parameters needed).
type BackupsInput struct{}

// BackupInfo is one backup set in the store.
type BackupInfo struct {
	Name        string `json:"name"         jsonschema:"backup set name"`
	CreatedAt   string `json:"created_at"   jsonschema:"creation timestamp"`
	HasManifest bool   `json:"has_manifest" jsonschema:"whether the set is safe to restore from"`
}

// BackupsOutput is the output for the backups tool.
type BackupsOutput struct {
	Count   int          `json:"count"             jsonschema:"number of backup sets"`
	Backups []BackupInfo `json:"backups,omitempty" jsonschema:"backup sets, oldest first"`
}

func handleBackups(run config.Run) mcp.ToolHandlerFor[BackupsInput, BackupsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ BackupsInput) (*mcp.CallToolResult, BackupsOutput, error) {
		infos, err := backup.List(run.BackupRoot)
		if err != nil {
			return nil, BackupsOutput{}, fmt.Errorf("listing backups: %w", err)
		}

		out := BackupsOutput{Count: len(infos), Backups: make([]BackupInfo, 0, len(infos))}
		for _, info := range infos {
			out.Backups = append(out.Backups, BackupInfo{
				Name:        info.Name,
				CreatedAt:   info.CreatedAt.Format(time.RFC3339),
				HasManifest: info.HasManifest,
			})
		}
		return nil, out, nil
	}
}
