// Package stats accumulates per-file token and size counts into a directory
// tree with subtotal rollups.
package stats

import (
	"path/filepath"
	"strings"

	"promptcat/internal/tokenizer"
	"promptcat/internal/utils"
)

// Node represents either a directory or a file in the aggregation tree.
// Directory nodes carry counts rolled up from their descendants; file nodes
// additionally record their own size. After every insertion a directory
// node's rollups equal the sum of its direct and transitive children.
type Node struct {
	Name      string
	IsFile    bool
	Children  map[string]*Node
	Files     int
	Tokens    int
	Processed int
	Size      int64
}

// fileRecord preserves a processed leaf in insertion order for the top-N report.
type fileRecord struct {
	displayPath string
	tokens      int
	size        int64
}

// Tree aggregates statistics for one invocation. It is owned by a single
// invocation and must not be shared without external synchronization.
type Tree struct {
	counter        tokenizer.Counter
	rootPath       string
	root           *Node
	totalSeen      int
	totalProcessed int
	totalTokens    int
	fileRecords    []fileRecord
}

// NewTree creates an empty aggregation tree. Paths inserted later are keyed by
// their segments relative to rootPath when one is declared.
func NewTree(counter tokenizer.Counter, rootPath string) *Tree {
	return &Tree{
		counter:  counter,
		rootPath: rootPath,
		root:     &Node{Children: make(map[string]*Node)},
	}
}

// TotalSeen returns the number of files recorded, processed or not.
func (tree *Tree) TotalSeen() int { return tree.totalSeen }

// TotalProcessed returns the number of successfully processed files.
func (tree *Tree) TotalProcessed() int { return tree.totalProcessed }

// TotalTokens returns the token count summed across processed files.
func (tree *Tree) TotalTokens() int { return tree.totalTokens }

// Root exposes the aggregation root for inspection.
func (tree *Tree) Root() *Node { return tree.root }

// Record inserts one file's statistics. Unprocessed files (binary or errored)
// increment the seen counter but stay out of the tree, the token totals, and
// the top-N ranking.
func (tree *Tree) Record(path string, content []byte, processed bool) {
	tree.totalSeen++
	if !processed {
		return
	}

	tokens := 0
	if tree.counter != nil {
		if countResult, countError := tokenizer.CountBytes(tree.counter, content); countError == nil && countResult.Counted {
			tokens = countResult.Tokens
		}
	}

	tree.totalProcessed++
	tree.totalTokens += tokens

	displayPath := utils.DisplayPath(path, tree.rootPath)
	segments := pathSegments(displayPath)
	if len(segments) == 0 {
		return
	}

	size := int64(len(content))
	tree.fileRecords = append(tree.fileRecords, fileRecord{displayPath: displayPath, tokens: tokens, size: size})

	currentNode := tree.root
	currentNode.Files++
	currentNode.Tokens += tokens
	currentNode.Processed++
	for segmentIndex, segment := range segments {
		childNode, exists := currentNode.Children[segment]
		if !exists {
			childNode = &Node{Name: segment, Children: make(map[string]*Node)}
			currentNode.Children[segment] = childNode
		}
		childNode.Files++
		childNode.Tokens += tokens
		childNode.Processed++
		if segmentIndex == len(segments)-1 {
			childNode.IsFile = true
			childNode.Size += size
		}
		currentNode = childNode
	}
}

// pathSegments splits a display path into its ordered, non-empty components.
func pathSegments(displayPath string) []string {
	normalizedPath := filepath.ToSlash(displayPath)
	var segments []string
	for _, segment := range strings.Split(normalizedPath, "/") {
		if segment == "" || segment == "." {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}
