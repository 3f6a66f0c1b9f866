package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"promptcat/internal/gitignore"
	"promptcat/internal/utils"
)

const warningReadDirectoryFormat = "Warning: error reading directory %s: %v\n"

// Session owns the state shared across every input path of one invocation:
// the set of already-produced paths and the document sequence index. A Session
// must not be reused across invocations.
type Session struct {
	seenPathKeys      map[string]struct{}
	nextDocumentIndex int
	resolverFactory   ResolverFactory
}

// NewSession creates an empty session using the cascading .gitignore resolver.
func NewSession() *Session {
	return NewSessionWithResolverFactory(func(rootDirectory string) gitignore.Resolver {
		return gitignore.NewCascadingResolver(rootDirectory)
	})
}

// NewSessionWithResolverFactory creates a session with a custom gitignore
// resolver factory, letting tests substitute an in-memory rule set.
func NewSessionWithResolverFactory(factory ResolverFactory) *Session {
	return &Session{
		seenPathKeys:      make(map[string]struct{}),
		nextDocumentIndex: 1,
		resolverFactory:   factory,
	}
}

// NextDocumentIndex returns the 1-based sequence index for the next emitted
// document and advances the counter. Indexes are never reused or reset within
// a session.
func (session *Session) NextDocumentIndex() int {
	currentIndex := session.nextDocumentIndex
	session.nextDocumentIndex++
	return currentIndex
}

// markSeen records a path and reports whether it had been produced before.
// Keys are normalized so the same file reached through different arguments
// deduplicates to a single entry.
func (session *Session) markSeen(path string) bool {
	pathKey := utils.AbsolutePathKey(path)
	if _, alreadySeen := session.seenPathKeys[pathKey]; alreadySeen {
		return false
	}
	session.seenPathKeys[pathKey] = struct{}{}
	return true
}

// seen reports whether a path was already produced, without recording it.
func (session *Session) seen(path string) bool {
	_, alreadySeen := session.seenPathKeys[utils.AbsolutePathKey(path)]
	return alreadySeen
}

// Resolve expands one input path into the ordered list of file paths to
// process. A plain file argument is always a candidate and bypasses the
// directory-level filters; a directory is walked top-down with the ignore
// layers applied at every level. Candidates are sorted lexicographically,
// checked against the session's seen set, and marked as produced. A directory
// that yields no candidates is valid and returns an empty list.
func (session *Session) Resolve(inputPath string, options Options) ([]string, error) {
	pathInformation, statError := os.Stat(inputPath)
	if statError != nil {
		return nil, fmt.Errorf("path '%s' does not exist", inputPath)
	}

	var candidatePaths []string
	if pathInformation.IsDir() {
		var resolver gitignore.Resolver
		if options.UseGitignore && session.resolverFactory != nil {
			resolver = session.resolverFactory(inputPath)
		}
		candidatePaths = session.collectDirectory(inputPath, inputPath, options, resolver)
	} else {
		candidatePaths = []string{inputPath}
	}

	sort.Strings(candidatePaths)

	resolvedPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		if !session.markSeen(candidatePath) {
			continue
		}
		resolvedPaths = append(resolvedPaths, candidatePath)
	}
	return resolvedPaths, nil
}

// collectDirectory gathers candidate files under directoryPath, pruning
// ignored subdirectories before descending so one rule can exclude a whole
// subtree. Unreadable directories are reported on stderr and skipped.
func (session *Session) collectDirectory(directoryPath string, rootPath string, options Options, resolver gitignore.Resolver) []string {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		fmt.Fprintf(os.Stderr, warningReadDirectoryFormat, directoryPath, readDirectoryError)
		return nil
	}

	var subdirectoryNames []string
	var fileNames []string
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			subdirectoryNames = append(subdirectoryNames, directoryEntry.Name())
		} else {
			fileNames = append(fileNames, directoryEntry.Name())
		}
	}

	subdirectoryNames, fileNames = filterChildren(directoryPath, rootPath, subdirectoryNames, fileNames, options, resolver)

	var candidatePaths []string
	for _, fileName := range fileNames {
		filePath := filepath.Join(directoryPath, fileName)
		if session.seen(filePath) {
			continue
		}
		candidatePaths = append(candidatePaths, filePath)
	}
	for _, subdirectoryName := range subdirectoryNames {
		subdirectoryPath := filepath.Join(directoryPath, subdirectoryName)
		candidatePaths = append(candidatePaths, session.collectDirectory(subdirectoryPath, rootPath, options, resolver)...)
	}
	return candidatePaths
}
