package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"promptcat/internal/utils"
)

func TestDisplayPath(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		rootPath string
		expected string
	}{
		{name: "no_root", path: filepath.Join("docs", "readme.md"), rootPath: "", expected: "docs/readme.md"},
		{name: "under_root", path: filepath.Join("/repo", "src", "main.go"), rootPath: "/repo", expected: "src/main.go"},
		{name: "outside_root", path: "/elsewhere/file.txt", rootPath: "/repo", expected: "/elsewhere/file.txt"},
		{name: "root_itself", path: "/repo", rootPath: "/repo", expected: "."},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := utils.DisplayPath(testCase.path, testCase.rootPath); actual != testCase.expected {
				t.Fatalf("DisplayPath(%q, %q) = %q, expected %q", testCase.path, testCase.rootPath, actual, testCase.expected)
			}
		})
	}
}

func TestAbsolutePathKeyNormalizesEquivalentPaths(t *testing.T) {
	temporaryDirectory := t.TempDir()
	filePath := filepath.Join(temporaryDirectory, "file.txt")
	if writeError := os.WriteFile(filePath, []byte("content"), 0o600); writeError != nil {
		t.Fatalf("write fixture: %v", writeError)
	}

	directKey := utils.AbsolutePathKey(filePath)
	indirectKey := utils.AbsolutePathKey(filepath.Join(temporaryDirectory, "sub", "..", "file.txt"))
	if directKey != indirectKey {
		t.Fatalf("expected equivalent paths to share a key, got %q and %q", directKey, indirectKey)
	}
}

func TestDeduplicatePatterns(t *testing.T) {
	deduplicated := utils.DeduplicatePatterns([]string{"*.log", "*.tmp", "*.log", "node_modules"})
	expected := []string{"*.log", "*.tmp", "node_modules"}
	if len(deduplicated) != len(expected) {
		t.Fatalf("expected %d patterns, got %d: %v", len(expected), len(deduplicated), deduplicated)
	}
	for patternIndex, pattern := range expected {
		if deduplicated[patternIndex] != pattern {
			t.Errorf("pattern %d: expected %q, got %q", patternIndex, pattern, deduplicated[patternIndex])
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		size     int64
		expected string
	}{
		{name: "bytes", size: 512, expected: "512b"},
		{name: "whole_kilobytes", size: 2048, expected: "2kb"},
		{name: "fractional_kilobytes", size: 1536, expected: "1.5kb"},
		{name: "megabytes", size: 3 * 1024 * 1024, expected: "3mb"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := utils.FormatFileSize(testCase.size); actual != testCase.expected {
				t.Fatalf("FormatFileSize(%d) = %q, expected %q", testCase.size, actual, testCase.expected)
			}
		})
	}
}
