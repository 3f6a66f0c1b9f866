package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestCopyFlagBareSwitch(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var copyEnabled bool
	registerCopyFlag(flagSet, &copyEnabled)

	if parseError := flagSet.Parse([]string{"--copy"}); parseError != nil {
		t.Fatalf("parse bare flag: %v", parseError)
	}
	if !copyEnabled {
		t.Fatalf("expected the bare flag to enable copying")
	}
}

func TestCopyFlagExplicitLiterals(t *testing.T) {
	testCases := []struct {
		name     string
		literal  string
		expected bool
	}{
		{name: "true", literal: "true", expected: true},
		{name: "short_yes", literal: "y", expected: true},
		{name: "numeric_true", literal: "1", expected: true},
		{name: "false", literal: "false", expected: false},
		{name: "short_no", literal: "n", expected: false},
		{name: "numeric_false", literal: "0", expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
			var copyEnabled bool
			registerCopyFlag(flagSet, &copyEnabled)

			if parseError := flagSet.Parse([]string{"--copy=" + testCase.literal}); parseError != nil {
				t.Fatalf("parse --copy=%s: %v", testCase.literal, parseError)
			}
			if copyEnabled != testCase.expected {
				t.Fatalf("--copy=%s: expected %v, got %v", testCase.literal, testCase.expected, copyEnabled)
			}
		})
	}
}

func TestCopyFlagRejectsUnknownLiteral(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var copyEnabled bool
	registerCopyFlag(flagSet, &copyEnabled)

	if parseError := flagSet.Parse([]string{"--copy=sometimes"}); parseError == nil {
		t.Fatalf("expected an error for an unknown literal")
	}
}
