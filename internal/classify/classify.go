// Package classify scans an Xcode template tree and classifies each template
// source file by the form of its first-line FILEHEADER marker.
package classify

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Token is the substitution point Xcode expands into the user's file header.
const Token = "___FILEHEADER___"

// TemplateExt is the extension of template source files the tool acts on.
const TemplateExt = ".swift"

// rawMarker is the marker as shipped by Xcode: the token behind a comment
// prefix, which makes every generated header start with "//".
const rawMarker = "//" + Token

// State is the classification of a template file's first line.
type State int

const (
	// None means the first line carries no FILEHEADER marker.
	None State = iota
	// Unmodified means the first line still has the raw "//___FILEHEADER___"
	// marker and is a candidate for processing.
	Unmodified
	// Modified means the first line starts with the bare token; the file is
	// already in target form.
	Modified
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	default:
		return "no marker"
	}
}

// CandidateFile is a template file with a recognized marker.
// Recomputed on every scan, never persisted.
type CandidateFile struct {
	Path  string
	State State
}

// ScanStats reports what a scan saw, including files it had to skip.
type ScanStats struct {
	Scanned    int // template files inspected
	Unmodified int
	Modified   int
	Unmarked   int // template files without a marker
	Skipped    int // unreadable files, counted but never fatal
}

// Counts aggregates marker classifications for mode selection.
type Counts struct {
	Unmodified int
	Modified   int
}

// ClassifyLine classifies a first line against the two marker forms.
// The raw form takes precedence; the forms are mutually exclusive in
// practice since the raw marker starts with the comment prefix.
func ClassifyLine(line string) State {
	if strings.HasPrefix(line, rawMarker) {
		return Unmodified
	}
	if strings.HasPrefix(line, Token) {
		return Modified
	}
	return None
}

// Classify reads only the first line of the file at path and classifies it.
func Classify(path string) (State, error) {
	f, err := os.Open(path)
	if err != nil {
		return None, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return None, err
	}
	return ClassifyLine(line), nil
}

// Scan recursively enumerates template files under rootDir and classifies
// each. Files it cannot read are skipped and counted in stats; classification
// errors are per-file, not fatal. Only marked files are returned.
func Scan(rootDir string) ([]CandidateFile, *ScanStats, error) {
	stats := &ScanStats{}
	var candidates []CandidateFile

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootDir {
				// Missing or unreadable root is fatal, not a per-file skip.
				return err
			}
			// Unreadable directory entry: skip it, keep walking.
			stats.Skipped++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), TemplateExt) {
			return nil
		}

		stats.Scanned++
		state, cerr := Classify(path)
		if cerr != nil {
			stats.Skipped++
			return nil
		}
		switch state {
		case Unmodified:
			stats.Unmodified++
			candidates = append(candidates, CandidateFile{Path: path, State: state})
		case Modified:
			stats.Modified++
			candidates = append(candidates, CandidateFile{Path: path, State: state})
		default:
			stats.Unmarked++
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return candidates, stats, nil
}

// DetectState aggregates marker counts for rootDir.
func DetectState(rootDir string) (Counts, *ScanStats, error) {
	_, stats, err := Scan(rootDir)
	if err != nil {
		return Counts{}, nil, err
	}
	return Counts{Unmodified: stats.Unmodified, Modified: stats.Modified}, stats, nil
}
