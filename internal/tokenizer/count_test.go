package tokenizer_test

import (
	"errors"
	"testing"

	"promptcat/internal/tokenizer"
)

// wordCountCounter counts whitespace-separated words, standing in for a real
// encoding in tests.
type wordCountCounter struct{}

func (wordCountCounter) Name() string { return "word-count" }

func (wordCountCounter) CountString(input string) (int, error) {
	wordCount := 0
	inWord := false
	for _, character := range input {
		if character == ' ' || character == '\n' || character == '\t' {
			inWord = false
			continue
		}
		if !inWord {
			wordCount++
			inWord = true
		}
	}
	return wordCount, nil
}

// failingCounter always reports an encoding failure.
type failingCounter struct{}

func (failingCounter) Name() string { return "failing" }

func (failingCounter) CountString(input string) (int, error) {
	return 0, errors.New("encoding unavailable")
}

func TestCountBytes(t *testing.T) {
	testCases := []struct {
		name            string
		data            []byte
		expectedTokens  int
		expectedCounted bool
	}{
		{name: "empty", data: nil, expectedTokens: 0, expectedCounted: true},
		{name: "plain_text", data: []byte("three short words"), expectedTokens: 3, expectedCounted: true},
		{name: "invalid_utf8", data: []byte{0xFF, 0xFE, 0x20}, expectedTokens: 0, expectedCounted: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result, countError := tokenizer.CountBytes(wordCountCounter{}, testCase.data)
			if countError != nil {
				t.Fatalf("CountBytes returned error: %v", countError)
			}
			if result.Counted != testCase.expectedCounted {
				t.Fatalf("expected counted=%v, got %v", testCase.expectedCounted, result.Counted)
			}
			if result.Tokens != testCase.expectedTokens {
				t.Fatalf("expected %d tokens, got %d", testCase.expectedTokens, result.Tokens)
			}
		})
	}
}

func TestCountBytesNilCounter(t *testing.T) {
	if _, countError := tokenizer.CountBytes(nil, []byte("content")); countError == nil {
		t.Fatalf("expected an error for a nil counter")
	}
}

func TestCountBytesPropagatesCounterErrors(t *testing.T) {
	if _, countError := tokenizer.CountBytes(failingCounter{}, []byte("content")); countError == nil {
		t.Fatalf("expected the counter error to propagate")
	}
}
