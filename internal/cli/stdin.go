package cli

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const nullSeparator = "\x00"

// readPathsFromStdin returns the whitespace-separated (or NUL-separated) path
// list waiting on the input stream. An interactive terminal is never read, so
// an invocation without piped input does not block. Blank entries are dropped;
// NUL-separated entries are otherwise passed through verbatim, so path names
// carrying leading or trailing whitespace survive.
func readPathsFromStdin(inputReader io.Reader, useNullSeparator bool) []string {
	if inputIsTerminal(inputReader) {
		return nil
	}

	inputBytes, readError := io.ReadAll(inputReader)
	if readError != nil {
		return nil
	}
	inputText := string(inputBytes)

	var rawPaths []string
	if useNullSeparator {
		rawPaths = strings.Split(inputText, nullSeparator)
	} else {
		rawPaths = strings.Fields(inputText)
	}

	paths := make([]string, 0, len(rawPaths))
	for _, rawPath := range rawPaths {
		if strings.TrimSpace(rawPath) == "" {
			continue
		}
		paths = append(paths, rawPath)
	}
	return paths
}

// inputIsTerminal reports whether the reader is an interactive terminal.
func inputIsTerminal(inputReader io.Reader) bool {
	inputFile, isFile := inputReader.(*os.File)
	if !isFile {
		return false
	}
	return term.IsTerminal(int(inputFile.Fd()))
}
