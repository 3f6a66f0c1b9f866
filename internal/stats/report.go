package stats

import (
	"fmt"
	"sort"
	"strings"

	"promptcat/internal/utils"
)

const (
	branchConnector     = "├─ "
	lastBranchConnector = "└─ "
	continuationPrefix  = "│  "
	lastLevelPrefix     = "   "
	topFileLimit        = 10
	rootLabelFallback   = "."
)

// Render produces the text report: the processed-file header, the rollup tree,
// and the top files ranked by individual token count.
func (tree *Tree) Render() string {
	var reportBuilder strings.Builder

	fmt.Fprintf(&reportBuilder, "Processed files: %d\n", tree.totalProcessed)
	fmt.Fprintf(&reportBuilder, "Total tokens: %d\n", tree.totalTokens)

	if tree.totalProcessed > 0 {
		reportBuilder.WriteString("\n")
		reportBuilder.WriteString(tree.rootLabel())
		reportBuilder.WriteString("\n")
		writeChildren(&reportBuilder, tree.root, "")
		tree.writeTopFiles(&reportBuilder)
	}

	return reportBuilder.String()
}

// rootLabel names the tree's top line after the declared root, or "." when
// none was set.
func (tree *Tree) rootLabel() string {
	if tree.rootPath == "" {
		return rootLabelFallback
	}
	return tree.rootPath
}

// writeChildren renders a node's children depth-first with branch-drawing
// prefixes, directories before files and both groups alphabetical.
func writeChildren(reportBuilder *strings.Builder, parentNode *Node, prefix string) {
	childNodes := sortedChildren(parentNode)
	for childIndex, childNode := range childNodes {
		connector := branchConnector
		childPrefix := prefix + continuationPrefix
		if childIndex == len(childNodes)-1 {
			connector = lastBranchConnector
			childPrefix = prefix + lastLevelPrefix
		}
		fmt.Fprintf(reportBuilder, "%s%s%s (%d tokens)\n", prefix, connector, childNode.Name, childNode.Tokens)
		if !childNode.IsFile {
			writeChildren(reportBuilder, childNode, childPrefix)
		}
	}
}

// sortedChildren orders a node's children directories-first, alphabetically
// within each group.
func sortedChildren(parentNode *Node) []*Node {
	childNodes := make([]*Node, 0, len(parentNode.Children))
	for _, childNode := range parentNode.Children {
		childNodes = append(childNodes, childNode)
	}
	sort.Slice(childNodes, func(firstIndex, secondIndex int) bool {
		firstChild := childNodes[firstIndex]
		secondChild := childNodes[secondIndex]
		if firstChild.IsFile != secondChild.IsFile {
			return !firstChild.IsFile
		}
		return firstChild.Name < secondChild.Name
	})
	return childNodes
}

// writeTopFiles appends the top files ranked by individual token count,
// descending, with ties broken by insertion order.
func (tree *Tree) writeTopFiles(reportBuilder *strings.Builder) {
	if len(tree.fileRecords) == 0 {
		return
	}

	rankedRecords := make([]fileRecord, len(tree.fileRecords))
	copy(rankedRecords, tree.fileRecords)
	sort.SliceStable(rankedRecords, func(firstIndex, secondIndex int) bool {
		return rankedRecords[firstIndex].tokens > rankedRecords[secondIndex].tokens
	})
	if len(rankedRecords) > topFileLimit {
		rankedRecords = rankedRecords[:topFileLimit]
	}

	fmt.Fprintf(reportBuilder, "\nTop %d files by token count:\n", topFileLimit)
	for recordIndex, record := range rankedRecords {
		fmt.Fprintf(reportBuilder, "%2d. %s (%d tokens, %s)\n",
			recordIndex+1, record.displayPath, record.tokens, utils.FormatFileSize(record.size))
	}
}
