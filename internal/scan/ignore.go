package scan

import (
	"path/filepath"
	"strings"

	"promptcat/internal/gitignore"
)

// filterChildren applies the ignore layers to one directory's immediate
// entries and returns the subdirectory names to descend into and the file
// names to collect. Each layer strictly narrows the previous one: hidden
// entries, gitignore-rejected entries, pattern-matched entries, and files
// missing a required extension suffix are dropped in that order.
func filterChildren(
	directoryPath string,
	rootPath string,
	subdirectoryNames []string,
	fileNames []string,
	options Options,
	resolver gitignore.Resolver,
) ([]string, []string) {
	if !options.IncludeHidden {
		subdirectoryNames = withoutHiddenNames(subdirectoryNames)
		fileNames = withoutHiddenNames(fileNames)
	}

	if options.UseGitignore && resolver != nil {
		subdirectoryNames = allowedByResolver(resolver, directoryPath, subdirectoryNames, true)
		fileNames = allowedByResolver(resolver, directoryPath, fileNames, false)
	}

	if len(options.IgnorePatterns) > 0 {
		if !options.IgnoreFilesOnly {
			subdirectoryNames = withoutPatternMatches(directoryPath, rootPath, subdirectoryNames, options.IgnorePatterns)
		}
		fileNames = withoutPatternMatches(directoryPath, rootPath, fileNames, options.IgnorePatterns)
	}

	if len(options.Extensions) > 0 {
		fileNames = withRequiredSuffixes(fileNames, options.Extensions)
	}

	return subdirectoryNames, fileNames
}

// withoutHiddenNames drops entries whose names start with a dot.
func withoutHiddenNames(entryNames []string) []string {
	filteredNames := entryNames[:0:len(entryNames)]
	for _, entryName := range entryNames {
		if strings.HasPrefix(entryName, ".") {
			continue
		}
		filteredNames = append(filteredNames, entryName)
	}
	return filteredNames
}

// allowedByResolver keeps entries the gitignore resolver admits, using the
// current directory as the base for rule resolution.
func allowedByResolver(resolver gitignore.Resolver, directoryPath string, entryNames []string, entriesAreDirectories bool) []string {
	filteredNames := entryNames[:0:len(entryNames)]
	for _, entryName := range entryNames {
		candidatePath := filepath.Join(directoryPath, entryName)
		if !resolver.Allowed(directoryPath, candidatePath, entriesAreDirectories) {
			continue
		}
		filteredNames = append(filteredNames, entryName)
	}
	return filteredNames
}

// withoutPatternMatches drops entries whose bare name or root-relative path
// matches any of the configured glob patterns.
func withoutPatternMatches(directoryPath string, rootPath string, entryNames []string, patterns []string) []string {
	filteredNames := entryNames[:0:len(entryNames)]
	for _, entryName := range entryNames {
		relativePath := relativeEntryPath(directoryPath, rootPath, entryName)
		if matchesAnyPattern(entryName, relativePath, patterns) {
			continue
		}
		filteredNames = append(filteredNames, entryName)
	}
	return filteredNames
}

// relativeEntryPath computes the entry's path relative to the traversal root
// in forward-slash form. Entries that cannot be relativized test only by name.
func relativeEntryPath(directoryPath string, rootPath string, entryName string) string {
	fullPath := filepath.Join(directoryPath, entryName)
	relativePath, relativeError := filepath.Rel(rootPath, fullPath)
	if relativeError != nil {
		return ""
	}
	return filepath.ToSlash(relativePath)
}

// matchesAnyPattern reports whether any pattern matches the bare name or the
// relative path form of an entry. Malformed patterns never match.
func matchesAnyPattern(entryName string, relativePath string, patterns []string) bool {
	for _, pattern := range patterns {
		if nameMatched, matchError := filepath.Match(pattern, entryName); matchError == nil && nameMatched {
			return true
		}
		if relativePath == "" {
			continue
		}
		if pathMatched, matchError := filepath.Match(pattern, relativePath); matchError == nil && pathMatched {
			return true
		}
	}
	return false
}

// withRequiredSuffixes keeps files whose names end with one of the configured
// suffixes. The comparison is a literal suffix match: "-e py" admits both
// "main.py" and "happy".
func withRequiredSuffixes(fileNames []string, requiredSuffixes []string) []string {
	filteredNames := fileNames[:0:len(fileNames)]
	for _, fileName := range fileNames {
		for _, requiredSuffix := range requiredSuffixes {
			if strings.HasSuffix(fileName, requiredSuffix) {
				filteredNames = append(filteredNames, fileName)
				break
			}
		}
	}
	return filteredNames
}
