// Package xcode locates the Xcode template tree and gates the environment
// before anything destructive runs.
package xcode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrUnsupportedPlatform means the host OS does not own an Xcode
// installation and no explicit directory was supplied.
var ErrUnsupportedPlatform = errors.New("xcode templates require macOS; pass --directory to target a template tree explicitly")

// DefaultTemplatesRoot is the file template tree of a standard Xcode install.
const DefaultTemplatesRoot = "/Applications/Xcode.app/Contents/Developer/Library/Xcode/Templates/File Templates"

// expectedSubdirs are folders a healthy template tree contains. Their
// absence is a warning, not a failure: template layouts shift between
// Xcode releases.
var expectedSubdirs = []string{"Source", "MultiPlatform"}

// EnvCheck is the result of validating the target directory.
type EnvCheck struct {
	Root     string
	Warnings []string
}

// CheckEnvironment validates that dir is usable as a template root.
// On a non-macOS host the default root cannot exist, so the run is rejected
// unless the directory was supplied explicitly. A missing root is fatal;
// missing expected subfolders only warn.
func CheckEnvironment(dir string, explicit bool) (*EnvCheck, error) {
	if !explicit && runtime.GOOS != "darwin" {
		return nil, ErrUnsupportedPlatform
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s: not a directory", dir)
	}

	check := &EnvCheck{Root: dir}
	for _, sub := range expectedSubdirs {
		if _, serr := os.Stat(filepath.Join(dir, sub)); serr != nil {
			check.Warnings = append(check.Warnings,
				fmt.Sprintf("expected subfolder %q not found under %s", sub, dir))
		}
	}
	return check, nil
}
