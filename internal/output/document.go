// Package output writes resolved files as delimited, indexed document records.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"promptcat/internal/scan"
	"promptcat/internal/utils"
)

const (
	documentsOpenTag     = "<documents>"
	documentsCloseTag    = "</documents>"
	documentOpenTagForm  = "<document path=\"%s\" index=\"%d\">\n"
	documentCloseTag     = "</document>"
	lineNumberColumnsGap = "  "
)

// Emitter writes document records to a single destination. The outer
// <documents> wrapper is opened lazily on the first record, so an invocation
// that produces zero files writes nothing.
type Emitter struct {
	writer      io.Writer
	session     *scan.Session
	lineNumbers bool
	rootPath    string
	wrapperOpen bool
}

// NewEmitter creates an emitter bound to the invocation's session, which owns
// the global document sequence index.
func NewEmitter(writer io.Writer, session *scan.Session, lineNumbers bool, rootPath string) *Emitter {
	return &Emitter{
		writer:      writer,
		session:     session,
		lineNumbers: lineNumbers,
		rootPath:    rootPath,
	}
}

// Emit writes one delimited record: an opening tag carrying the display path
// and the next sequence index, the content, and a closing tag.
func (emitter *Emitter) Emit(path string, content string) error {
	if !emitter.wrapperOpen {
		if _, writeError := fmt.Fprintln(emitter.writer, documentsOpenTag); writeError != nil {
			return writeError
		}
		emitter.wrapperOpen = true
	}

	displayPath := utils.DisplayPath(path, emitter.rootPath)
	documentIndex := emitter.session.NextDocumentIndex()
	if emitter.lineNumbers {
		content = AddLineNumbers(content)
	}

	if _, writeError := fmt.Fprintf(emitter.writer, documentOpenTagForm, displayPath, documentIndex); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintln(emitter.writer, content); writeError != nil {
		return writeError
	}
	_, writeError := fmt.Fprintln(emitter.writer, documentCloseTag)
	return writeError
}

// Close terminates the outer wrapper when at least one record was written.
func (emitter *Emitter) Close() error {
	if !emitter.wrapperOpen {
		return nil
	}
	_, writeError := fmt.Fprintln(emitter.writer, documentsCloseTag)
	return writeError
}

// AddLineNumbers prefixes every line with a right-aligned 1-based line number,
// padded to the width of the largest line number, followed by two spaces.
func AddLineNumbers(content string) string {
	if content == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	paddingWidth := len(strconv.Itoa(len(lines)))

	var numberedBuilder strings.Builder
	for lineIndex, lineText := range lines {
		fmt.Fprintf(&numberedBuilder, "%*d%s%s", paddingWidth, lineIndex+1, lineNumberColumnsGap, lineText)
		if lineIndex < len(lines)-1 {
			numberedBuilder.WriteString("\n")
		}
	}
	return numberedBuilder.String()
}
