// Package tokenizer estimates token counts for text content.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content. Only the count is consumed
// by callers; token identities are never inspected.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model along with the resolved
// model or encoding name. Unknown models fall back to the default encoding.
func NewCounter(model string) (Counter, string, error) {
	trimmedModel := strings.ToLower(strings.TrimSpace(model))
	if trimmedModel == "" {
		trimmedModel = defaultModel
	}

	encoding, encodingError := tiktoken.EncodingForModel(trimmedModel)
	if encodingError == nil && encoding != nil {
		return openAICounter{encoding: encoding, name: trimmedModel}, trimmedModel, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return openAICounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}
