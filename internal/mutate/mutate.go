// Package mutate applies the single supported transformation to a template
// file: stripping the comment prefix from its first-line FILEHEADER marker.
package mutate

import (
	"bytes"
	"os"

	"github.com/neoighodaro/xctemplates/internal/classify"
)

var rawPrefix = []byte("//" + classify.Token)

// Apply strips the two-byte comment prefix from the first line of the file
// at path, leaving every other byte untouched. Only defined for Unmodified
// files; for any other state it reports no modification needed.
//
// The caller owns the ordering invariant: the file's original bytes must be
// in a backup set before Apply runs.
//
// Returns whether the on-disk bytes actually changed.
func Apply(path string, state classify.State) (bool, error) {
	if state != classify.Unmodified {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	// Re-check the marker on the actual bytes; the scan result may be stale.
	if !bytes.HasPrefix(data, rawPrefix) {
		return false, nil
	}

	if err := os.WriteFile(path, data[2:], info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
