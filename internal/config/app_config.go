// Package config loads application configuration defaults from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"promptcat/internal/utils"
)

const (
	// ConfigFileName is the per-project configuration file discovered in the working directory.
	ConfigFileName = ".promptcat.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".promptcat"
	// globalConfigFileName is the configuration file inside the global directory.
	globalConfigFileName = "config.yaml"
)

// DefaultIgnorePatterns lists common VCS, lockfile, and license noise that is
// excluded unless the default set is disabled.
var DefaultIgnorePatterns = []string{
	".git",
	".hg",
	".svn",
	"*.lock",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"go.sum",
	"LICENSE",
	"LICENSE.*",
	"LICENCE",
	"COPYING",
	"*.min.js",
	"*.map",
}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds invocation defaults that flags may override.
type ApplicationConfiguration struct {
	Ignore IgnoreConfiguration `mapstructure:"ignore"`
	Tokens TokenConfiguration  `mapstructure:"tokens"`
	Output OutputConfiguration `mapstructure:"output"`
}

// IgnoreConfiguration configures the glob-pattern filter layer.
type IgnoreConfiguration struct {
	// Patterns are appended to the patterns supplied on the command line.
	Patterns []string `mapstructure:"patterns"`
	// UseDefaults toggles the built-in noise pattern set.
	UseDefaults *bool `mapstructure:"use_defaults"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Model string `mapstructure:"model"`
}

// OutputConfiguration controls document rendering defaults.
type OutputConfiguration struct {
	LineNumbers *bool `mapstructure:"line_numbers"`
}

// LoadApplicationConfiguration merges the global configuration under the user
// home with the local file in the working directory; local values win.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, globalConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfiguration, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfiguration)
	}

	merged.Ignore.Patterns = utils.DeduplicatePatterns(merged.Ignore.Patterns)
	return merged, nil
}

func resolveLocalConfigPath(workingDirectory string, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Ignore = result.Ignore.merge(override.Ignore)
	result.Tokens = result.Tokens.merge(override.Tokens)
	result.Output = result.Output.merge(override.Output)
	return result
}

func (configuration IgnoreConfiguration) merge(override IgnoreConfiguration) IgnoreConfiguration {
	result := configuration
	if len(override.Patterns) > 0 {
		result.Patterns = append([]string{}, utils.DeduplicatePatterns(override.Patterns)...)
	}
	if override.UseDefaults != nil {
		result.UseDefaults = cloneBool(override.UseDefaults)
	}
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func (configuration OutputConfiguration) merge(override OutputConfiguration) OutputConfiguration {
	result := configuration
	if override.LineNumbers != nil {
		result.LineNumbers = cloneBool(override.LineNumbers)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	clonedValue := *value
	return &clonedValue
}
