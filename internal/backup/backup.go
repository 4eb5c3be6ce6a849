// Package backup owns the reversibility guarantee: every file the tool is
// about to mutate is first copied byte-for-byte into a timestamped backup
// set, and a JSON manifest records what was backed up and from where so a
// later restore is driven by the record, not guesswork.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout names backup sets sortably with second precision.
// Lexical order on set names equals chronological order.
const TimestampLayout = "2006-01-02_15-04-05"

// namePattern matches backup set directory names:
// <basename of the original root>_<timestamp>.
var namePattern = regexp.MustCompile(`^.+_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}$`)

// Set is a handle to one newly created backup directory.
// Immutable after the run that created it, except for deletion by the
// retention sweep.
type Set struct {
	Name      string
	Dir       string
	RootDir   string
	CreatedAt time.Time
}

// Create makes a uniquely named backup directory for rootDir under
// backupRoot. A name collision within the same second surfaces as an error;
// no retry is attempted.
func Create(backupRoot, rootDir string) (*Set, error) {
	if err := os.MkdirAll(backupRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating backup store %s: %w", backupRoot, err)
	}

	now := time.Now()
	name := filepath.Base(rootDir) + "_" + now.Format(TimestampLayout)
	dir := filepath.Join(backupRoot, name)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating backup directory %s: %w", dir, err)
	}

	return &Set{
		Name:      name,
		Dir:       dir,
		RootDir:   rootDir,
		CreatedAt: now,
	}, nil
}

// CopyIn copies the current bytes of path into the set, mirrored at the
// path's location relative to the original root. Must run before any
// mutation of path.
func (s *Set) CopyIn(path string) error {
	rel, err := filepath.Rel(s.RootDir, path)
	if err != nil {
		return fmt.Errorf("relativizing %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s is outside the template root %s", path, s.RootDir)
	}

	dst := filepath.Join(s.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating backup subtree for %s: %w", rel, err)
	}
	return copyFile(path, dst)
}

// copyFile copies src to dst preserving the source file mode.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close() //nolint:errcheck // read-only file

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
