package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"promptcat/internal/config"
)

// globalConfigContent is the fixture written under the fake user home.
const globalConfigContent = `ignore:
  patterns:
    - "*.global"
tokens:
  model: gpt-4o
`

// localConfigContent is the fixture written to the working directory; its
// values take precedence over the global file.
const localConfigContent = `ignore:
  patterns:
    - "*.local"
  use_defaults: false
tokens:
  model: gpt-4o-mini
output:
  line_numbers: true
`

func writeGlobalConfig(t *testing.T, homeDirectory string, content string) {
	t.Helper()
	globalDirectory := filepath.Join(homeDirectory, config.GlobalConfigDirectoryName)
	if mkdirError := os.MkdirAll(globalDirectory, 0o755); mkdirError != nil {
		t.Fatalf("create global configuration directory: %v", mkdirError)
	}
	globalPath := filepath.Join(globalDirectory, "config.yaml")
	if writeError := os.WriteFile(globalPath, []byte(content), 0o600); writeError != nil {
		t.Fatalf("write global configuration: %v", writeError)
	}
}

func TestLoadApplicationConfigurationWithoutFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: t.TempDir()})
	if loadError != nil {
		t.Fatalf("load configuration: %v", loadError)
	}
	if len(configuration.Ignore.Patterns) != 0 {
		t.Errorf("expected no patterns, got %v", configuration.Ignore.Patterns)
	}
	if configuration.Tokens.Model != "" {
		t.Errorf("expected no model, got %q", configuration.Tokens.Model)
	}
	if configuration.Output.LineNumbers != nil {
		t.Errorf("expected line numbers to stay unset")
	}
}

func TestLoadApplicationConfigurationGlobalOnly(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	writeGlobalConfig(t, homeDirectory, globalConfigContent)

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: t.TempDir()})
	if loadError != nil {
		t.Fatalf("load configuration: %v", loadError)
	}
	if len(configuration.Ignore.Patterns) != 1 || configuration.Ignore.Patterns[0] != "*.global" {
		t.Errorf("expected global patterns, got %v", configuration.Ignore.Patterns)
	}
	if configuration.Tokens.Model != "gpt-4o" {
		t.Errorf("expected global model, got %q", configuration.Tokens.Model)
	}
}

func TestLoadApplicationConfigurationLocalOverridesGlobal(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	writeGlobalConfig(t, homeDirectory, globalConfigContent)

	workingDirectory := t.TempDir()
	localPath := filepath.Join(workingDirectory, config.ConfigFileName)
	if writeError := os.WriteFile(localPath, []byte(localConfigContent), 0o600); writeError != nil {
		t.Fatalf("write local configuration: %v", writeError)
	}

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("load configuration: %v", loadError)
	}
	if len(configuration.Ignore.Patterns) != 1 || configuration.Ignore.Patterns[0] != "*.local" {
		t.Errorf("expected local patterns to win, got %v", configuration.Ignore.Patterns)
	}
	if configuration.Tokens.Model != "gpt-4o-mini" {
		t.Errorf("expected local model to win, got %q", configuration.Tokens.Model)
	}
	if configuration.Ignore.UseDefaults == nil || *configuration.Ignore.UseDefaults {
		t.Errorf("expected local file to disable default patterns")
	}
	if configuration.Output.LineNumbers == nil || !*configuration.Output.LineNumbers {
		t.Errorf("expected local file to enable line numbers")
	}
}

func TestLoadApplicationConfigurationExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	workingDirectory := t.TempDir()
	explicitPath := filepath.Join(workingDirectory, "custom.yaml")
	if writeError := os.WriteFile(explicitPath, []byte(localConfigContent), 0o600); writeError != nil {
		t.Fatalf("write explicit configuration: %v", writeError)
	}

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: "custom.yaml",
	})
	if loadError != nil {
		t.Fatalf("load configuration: %v", loadError)
	}
	if configuration.Tokens.Model != "gpt-4o-mini" {
		t.Errorf("expected the explicit file to be read, got model %q", configuration.Tokens.Model)
	}
}

func TestLoadApplicationConfigurationRejectsMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	workingDirectory := t.TempDir()
	localPath := filepath.Join(workingDirectory, config.ConfigFileName)
	if writeError := os.WriteFile(localPath, []byte("ignore: [unclosed"), 0o600); writeError != nil {
		t.Fatalf("write malformed configuration: %v", writeError)
	}

	if _, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory}); loadError == nil {
		t.Fatalf("expected an error for a malformed configuration file")
	}
}
