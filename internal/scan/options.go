// Package scan resolves input paths into the ordered, deduplicated file list
// that downstream emission and statistics consume.
package scan

import "promptcat/internal/gitignore"

// Options captures the filter inputs active for one traversal. It is built once
// per invocation and read-only afterwards.
type Options struct {
	// IncludeHidden keeps entries whose names start with a dot.
	IncludeHidden bool
	// UseGitignore enables the cascading .gitignore resolver layer.
	UseGitignore bool
	// IgnorePatterns holds shell-style glob patterns tested against both the
	// bare entry name and the entry's path relative to the traversal root.
	IgnorePatterns []string
	// IgnoreFilesOnly exempts directories from the pattern layer; files inside
	// pattern-matched directories are still tested individually.
	IgnoreFilesOnly bool
	// Extensions lists required filename suffixes. Matching is a literal
	// suffix comparison, not a dotted-extension parse.
	Extensions []string
}

// ResolverFactory builds the gitignore resolver scoped to one traversal root.
type ResolverFactory func(rootDirectory string) gitignore.Resolver
