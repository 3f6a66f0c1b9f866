// Package utils contains general helper functions used across the promptcat tool.
package utils

import (
	"path/filepath"
	"strings"
)

// GitIgnoreFileName is the name of the Git ignore file.
const GitIgnoreFileName = ".gitignore"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// DisplayPath rewrites path relative to rootPath when the file lives under it.
// Paths outside rootPath, and all paths when rootPath is empty, are returned
// unchanged. The rewritten form uses forward slashes.
func DisplayPath(path string, rootPath string) string {
	if rootPath == "" {
		return path
	}
	absolutePath, absolutePathError := filepath.Abs(path)
	if absolutePathError != nil {
		return path
	}
	absoluteRoot, absoluteRootError := filepath.Abs(rootPath)
	if absoluteRootError != nil {
		return path
	}
	relativePath, relativeError := filepath.Rel(absoluteRoot, absolutePath)
	if relativeError != nil {
		return path
	}
	if relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(relativePath)
}

// AbsolutePathKey normalizes path into the form used for process-wide
// deduplication. Paths that cannot be resolved fall back to a cleaned copy.
func AbsolutePathKey(path string) string {
	absolutePath, absolutePathError := filepath.Abs(path)
	if absolutePathError != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(absolutePath)
}
