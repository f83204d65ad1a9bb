package reporting

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct {
	root string
}

// NewDefaultPathManager creates a path manager rooted at "results"
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{root: "results"}
}

// NewPathManager creates a path manager rooted at root
func NewPathManager(root string) *DefaultPathManager {
	if root == "" {
		root = "results"
	}
	return &DefaultPathManager{root: root}
}

// GetDefaultOutputDir returns the output directory of a study
func (p *DefaultPathManager) GetDefaultOutputDir(studyName string) string {
	name := strings.ToLower(strings.TrimSpace(studyName))
	if name == "" {
		name = "unnamed"
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	return filepath.Join(p.root, name)
}

// EnsureDirectoryExists creates the parent directory of path if needed
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// Package-level convenience function
func DefaultOutputDir(studyName string) string {
	return NewDefaultPathManager().GetDefaultOutputDir(studyName)
}
