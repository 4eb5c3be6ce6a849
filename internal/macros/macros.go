// Package macros writes Xcode's IDETemplateMacros.plist, the macro
// substitution file that supplies the FILEHEADER body. The file is replaced
// wholesale on each install, but never without a timestamped copy of the
// previous content next to it.
package macros

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"howett.net/plist"

	"github.com/neoighodaro/xctemplates/internal/backup"
)

// FileHeaderKey is the single macro entry the tool manages.
const FileHeaderKey = "FILEHEADER"

// document is the plist schema of IDETemplateMacros.plist.
type document struct {
	FileHeader string `plist:"FILEHEADER"`
}

// Path returns the fixed macro config location for the current user.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, "Library", "Developer", "Xcode", "UserData", "IDETemplateMacros.plist"), nil
}

// Install writes the macro config at path with header as the FILEHEADER
// body. Existing content is first copied to a timestamped sibling file, so
// the previous config is always recoverable. Returns the backup path, or ""
// when no previous config existed.
func Install(path, header string) (backedUp string, err error) {
	if prev, rerr := os.ReadFile(path); rerr == nil {
		mode := os.FileMode(0o644)
		if info, serr := os.Stat(path); serr == nil {
			mode = info.Mode().Perm()
		}
		backedUp = path + ".backup_" + time.Now().Format(backup.TimestampLayout)
		if werr := os.WriteFile(backedUp, prev, mode); werr != nil {
			return "", fmt.Errorf("backing up previous macros: %w", werr)
		}
	} else if !os.IsNotExist(rerr) {
		return "", fmt.Errorf("reading previous macros: %w", rerr)
	}

	data, err := plist.MarshalIndent(&document{FileHeader: header}, plist.XMLFormat, "\t")
	if err != nil {
		return "", fmt.Errorf("serializing macros: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating macros directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing macros: %w", err)
	}
	return backedUp, nil
}

// Read parses the FILEHEADER body from the macro config at path.
// A missing file returns "", nil.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading macros: %w", err)
	}

	var doc document
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parsing macros: %w", err)
	}
	return doc.FileHeader, nil
}
