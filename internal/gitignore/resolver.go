// Package gitignore resolves .gitignore rules cascading from a traversal root.
package gitignore

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/monochromegane/go-gitignore"

	"promptcat/internal/utils"
)

// Resolver answers whether a candidate path is admitted by the ignore rules
// visible from a base directory. Unmatched candidates default to allowed.
type Resolver interface {
	Allowed(baseDirectory string, candidatePath string, isDirectory bool) bool
}

// CascadingResolver applies .gitignore files found between a traversal root and
// the base directory of each query. A rule defined in a subdirectory only
// affects entries inside that subtree; a match in any applicable file rejects
// the candidate. Negation patterns take effect only within their own file: a
// deeper .gitignore cannot re-include a candidate an ancestor file excluded.
type CascadingResolver struct {
	rootDirectory string
	matcherCache  map[string]ignore.IgnoreMatcher
}

// NewCascadingResolver creates a resolver scoped to the given traversal root.
func NewCascadingResolver(rootDirectory string) *CascadingResolver {
	return &CascadingResolver{
		rootDirectory: filepath.Clean(rootDirectory),
		matcherCache:  make(map[string]ignore.IgnoreMatcher),
	}
}

// Allowed reports whether candidatePath survives every .gitignore on the chain
// from the traversal root down to baseDirectory.
func (resolver *CascadingResolver) Allowed(baseDirectory string, candidatePath string, isDirectory bool) bool {
	for _, ruleDirectory := range resolver.ruleDirectories(baseDirectory) {
		matcher := resolver.matcherForDirectory(ruleDirectory)
		if matcher == nil {
			continue
		}
		relativePath, relativeError := filepath.Rel(ruleDirectory, candidatePath)
		if relativeError != nil || relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
			continue
		}
		if matcher.Match(candidatePath, isDirectory) {
			return false
		}
	}
	return true
}

// ruleDirectories lists every directory whose .gitignore governs entries inside
// baseDirectory, ordered from the traversal root downward. A base outside the
// root yields the base directory alone.
func (resolver *CascadingResolver) ruleDirectories(baseDirectory string) []string {
	cleanBase := filepath.Clean(baseDirectory)
	relativeBase, relativeError := filepath.Rel(resolver.rootDirectory, cleanBase)
	if relativeError != nil || relativeBase == ".." || strings.HasPrefix(relativeBase, ".."+string(filepath.Separator)) {
		return []string{cleanBase}
	}

	directories := []string{resolver.rootDirectory}
	if relativeBase == "." {
		return directories
	}
	currentDirectory := resolver.rootDirectory
	for _, segment := range strings.Split(filepath.ToSlash(relativeBase), "/") {
		currentDirectory = filepath.Join(currentDirectory, segment)
		directories = append(directories, currentDirectory)
	}
	return directories
}

// matcherForDirectory loads and caches the .gitignore matcher for a directory.
// Directories without a .gitignore cache a nil matcher.
func (resolver *CascadingResolver) matcherForDirectory(directoryPath string) ignore.IgnoreMatcher {
	if cachedMatcher, cached := resolver.matcherCache[directoryPath]; cached {
		return cachedMatcher
	}

	gitIgnoreFilePath := filepath.Join(directoryPath, utils.GitIgnoreFileName)
	if _, statError := os.Stat(gitIgnoreFilePath); statError != nil {
		resolver.matcherCache[directoryPath] = nil
		return nil
	}
	matcher, parseError := ignore.NewGitIgnore(gitIgnoreFilePath)
	if parseError != nil {
		resolver.matcherCache[directoryPath] = nil
		return nil
	}
	resolver.matcherCache[directoryPath] = matcher
	return matcher
}
