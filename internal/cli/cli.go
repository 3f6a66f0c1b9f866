// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"promptcat/internal/config"
	"promptcat/internal/output"
	"promptcat/internal/scan"
	"promptcat/internal/sqlite"
	"promptcat/internal/stats"
	"promptcat/internal/tokenizer"
	"promptcat/internal/utils"
)

const (
	rootUse              = "promptcat [paths...]"
	rootShortDescription = "serialize files into a tagged prompt stream"
	rootLongDescription  = `promptcat walks one or more paths and writes every matched text file as a
delimited, indexed document record suitable for a large-language-model prompt.
Hidden files, .gitignore rules, glob patterns, and extension filters narrow the
set of matched files; --stats replaces the document stream with a token report.`

	extensionFlagName       = "extension"
	extensionFlagShorthand  = "e"
	includeHiddenFlagName   = "include-hidden"
	ignoreFilesOnlyFlagName = "ignore-files-only"
	ignoreGitignoreFlagName = "ignore-gitignore"
	ignoreFlagName          = "ignore"
	noIgnoreDefaultFlagName = "no-ignore-default"
	outputFlagName          = "output"
	outputFlagShorthand     = "o"
	lineNumbersFlagName     = "line-numbers"
	lineNumbersShorthand    = "n"
	nullFlagName            = "null"
	nullFlagShorthand       = "0"
	extractSQLiteFlagName   = "extract-sqlite"
	statsFlagName           = "stats"
	cwdFlagName             = "cwd"
	modelFlagName           = "model"
	configFlagName          = "config"
	copyFlagName            = "copy"

	extensionFlagDescription       = "required filename suffix (repeatable)"
	includeHiddenFlagDescription   = "include files and folders starting with ."
	ignoreFilesOnlyFlagDescription = "--ignore patterns only ignore files"
	ignoreGitignoreFlagDescription = "ignore .gitignore files and include all files"
	ignoreFlagDescription          = "glob pattern to ignore (repeatable)"
	noIgnoreDefaultFlagDescription = "disable the built-in default ignore patterns"
	outputFlagDescription          = "write output to a file instead of stdout"
	lineNumbersFlagDescription     = "add line numbers to document content"
	nullFlagDescription            = "use NUL as separator when reading paths from stdin"
	extractSQLiteFlagDescription   = "extract schema from SQLite database files instead of skipping them"
	statsFlagDescription           = "suppress documents and print a token statistics report"
	cwdFlagDescription             = "root used to rewrite display paths and key the statistics tree"
	modelFlagDescription           = "tokenizer model used for token counting"
	configFlagDescription          = "explicit configuration file path"
	copyFlagDescription            = "copy the produced output to the clipboard"

	versionTemplate = "promptcat version: {{.Version}}\n"

	sqliteSchemaHeader = "-- SQLite3 Database Schema"

	errorNoInputPaths          = "no input paths provided"
	errorPathMissingFormat     = "path '%s' does not exist"
	errorStatFormat            = "stat failed for '%s': %w"
	errorCreateOutputFormat    = "create output file %s: %w"
	errorClipboardWriteFormat  = "copy output to clipboard: %w"
	warningSQLiteFormat        = "Warning: error processing SQLite file %s: %v\n"
	warningReadFileFormat      = "Warning: skipping file %s: %v\n"
	warningCloseOutputFormat   = "Warning: failed to close %s: %v\n"
	warningConfigurationFormat = "Warning: configuration not loaded: %v\n"
)

// commandOptions stores the flag values for one invocation.
type commandOptions struct {
	extensions      []string
	includeHidden   bool
	ignoreFilesOnly bool
	ignoreGitignore bool
	ignorePatterns  []string
	noIgnoreDefault bool
	outputFilePath  string
	lineNumbers     bool
	nullSeparator   bool
	extractSQLite   bool
	statsEnabled    bool
	workingRoot     string
	tokenModel      string
	configFilePath  string
	copyToClipboard bool
}

// Execute runs the promptcat application against the process streams.
func Execute() error {
	return NewRootCommand(os.Stdout, os.Stderr).Execute()
}

// NewRootCommand builds the root command writing to the provided streams.
// Tests substitute buffers for stdout and stderr and inject stdin via SetIn.
func NewRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	var options commandOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Version:       utils.GetApplicationVersion(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runPromptcat(command, arguments, options, stdout, stderr)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)

	commandFlags := rootCommand.Flags()
	commandFlags.StringArrayVarP(&options.extensions, extensionFlagName, extensionFlagShorthand, nil, extensionFlagDescription)
	commandFlags.BoolVar(&options.includeHidden, includeHiddenFlagName, false, includeHiddenFlagDescription)
	commandFlags.BoolVar(&options.ignoreFilesOnly, ignoreFilesOnlyFlagName, false, ignoreFilesOnlyFlagDescription)
	commandFlags.BoolVar(&options.ignoreGitignore, ignoreGitignoreFlagName, false, ignoreGitignoreFlagDescription)
	commandFlags.StringArrayVar(&options.ignorePatterns, ignoreFlagName, nil, ignoreFlagDescription)
	commandFlags.BoolVar(&options.noIgnoreDefault, noIgnoreDefaultFlagName, false, noIgnoreDefaultFlagDescription)
	commandFlags.StringVarP(&options.outputFilePath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	commandFlags.BoolVarP(&options.lineNumbers, lineNumbersFlagName, lineNumbersShorthand, false, lineNumbersFlagDescription)
	commandFlags.BoolVarP(&options.nullSeparator, nullFlagName, nullFlagShorthand, false, nullFlagDescription)
	commandFlags.BoolVar(&options.extractSQLite, extractSQLiteFlagName, false, extractSQLiteFlagDescription)
	commandFlags.BoolVar(&options.statsEnabled, statsFlagName, false, statsFlagDescription)
	commandFlags.StringVar(&options.workingRoot, cwdFlagName, "", cwdFlagDescription)
	commandFlags.StringVar(&options.tokenModel, modelFlagName, "", modelFlagDescription)
	commandFlags.StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	registerCopyFlag(commandFlags, &options.copyToClipboard)

	return rootCommand
}

// runPromptcat executes one invocation: configuration defaults, path
// collection and validation, traversal, and emission or statistics.
func runPromptcat(
	command *cobra.Command,
	arguments []string,
	options commandOptions,
	stdout io.Writer,
	stderr io.Writer,
) error {
	applyConfigurationDefaults(command, &options, stderr)

	stdinPaths := readPathsFromStdin(command.InOrStdin(), options.nullSeparator)
	inputPaths := append(append([]string{}, arguments...), stdinPaths...)
	if len(inputPaths) == 0 {
		return errors.New(errorNoInputPaths)
	}

	for _, inputPath := range inputPaths {
		if _, statError := os.Stat(inputPath); statError != nil {
			if os.IsNotExist(statError) {
				return fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return fmt.Errorf(errorStatFormat, inputPath, statError)
		}
	}

	scanOptions := scan.Options{
		IncludeHidden:   options.includeHidden,
		UseGitignore:    !options.ignoreGitignore,
		IgnorePatterns:  effectiveIgnorePatterns(options),
		IgnoreFilesOnly: options.ignoreFilesOnly,
		Extensions:      options.extensions,
	}

	destinationWriter := stdout
	if options.outputFilePath != "" {
		outputFile, createError := os.Create(options.outputFilePath)
		if createError != nil {
			return fmt.Errorf(errorCreateOutputFormat, options.outputFilePath, createError)
		}
		defer func() {
			if closeError := outputFile.Close(); closeError != nil {
				fmt.Fprintf(stderr, warningCloseOutputFormat, options.outputFilePath, closeError)
			}
		}()
		destinationWriter = outputFile
	}

	var clipboardBuffer *bytes.Buffer
	if options.copyToClipboard {
		clipboardBuffer = &bytes.Buffer{}
		destinationWriter = io.MultiWriter(destinationWriter, clipboardBuffer)
	}

	session := scan.NewSession()

	var statsTree *stats.Tree
	var emitter *output.Emitter
	if options.statsEnabled {
		tokenCounter, _, counterError := tokenizer.NewCounter(options.tokenModel)
		if counterError != nil {
			return counterError
		}
		statsTree = stats.NewTree(tokenCounter, options.workingRoot)
	} else {
		emitter = output.NewEmitter(destinationWriter, session, options.lineNumbers, options.workingRoot)
	}

	for _, inputPath := range inputPaths {
		resolvedFiles, resolveError := session.Resolve(inputPath, scanOptions)
		if resolveError != nil {
			return resolveError
		}
		for _, filePath := range resolvedFiles {
			if processError := processResolvedFile(filePath, options, emitter, statsTree, stderr); processError != nil {
				return processError
			}
		}
	}

	if emitter != nil {
		if closeError := emitter.Close(); closeError != nil {
			return closeError
		}
	}
	if statsTree != nil {
		if _, writeError := io.WriteString(destinationWriter, statsTree.Render()); writeError != nil {
			return writeError
		}
	}

	if clipboardBuffer != nil {
		if clipboardError := clipboard.WriteAll(clipboardBuffer.String()); clipboardError != nil {
			return fmt.Errorf(errorClipboardWriteFormat, clipboardError)
		}
	}
	return nil
}

// applyConfigurationDefaults loads the application configuration and fills
// option values the user did not set explicitly. A broken configuration is
// reported as a warning and skipped rather than aborting the run.
func applyConfigurationDefaults(command *cobra.Command, options *commandOptions, stderr io.Writer) {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: options.workingRoot,
		ExplicitFilePath: options.configFilePath,
	})
	if loadError != nil {
		fmt.Fprintf(stderr, warningConfigurationFormat, loadError)
		return
	}

	commandFlags := command.Flags()
	if !commandFlags.Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		options.tokenModel = applicationConfiguration.Tokens.Model
	}
	if !commandFlags.Changed(lineNumbersFlagName) && applicationConfiguration.Output.LineNumbers != nil {
		options.lineNumbers = *applicationConfiguration.Output.LineNumbers
	}
	if !commandFlags.Changed(noIgnoreDefaultFlagName) && applicationConfiguration.Ignore.UseDefaults != nil {
		options.noIgnoreDefault = !*applicationConfiguration.Ignore.UseDefaults
	}
	options.ignorePatterns = append(options.ignorePatterns, applicationConfiguration.Ignore.Patterns...)
}

// effectiveIgnorePatterns combines user patterns with the built-in default
// noise set unless the defaults were disabled.
func effectiveIgnorePatterns(options commandOptions) []string {
	patterns := append([]string{}, options.ignorePatterns...)
	if !options.noIgnoreDefault {
		patterns = append(patterns, config.DefaultIgnorePatterns...)
	}
	return utils.DeduplicatePatterns(patterns)
}

// processResolvedFile handles one resolved candidate: SQLite schema
// extraction, binary classification, content read and decode, then emission
// or statistics. Every non-fatal condition excludes the single file and
// continues the run.
func processResolvedFile(
	filePath string,
	options commandOptions,
	emitter *output.Emitter,
	statsTree *stats.Tree,
	stderr io.Writer,
) error {
	if options.extractSQLite && sqlite.IsDatabaseFile(filePath) {
		schemaText, extractError := sqlite.ExtractSchema(filePath)
		if extractError != nil {
			fmt.Fprintf(stderr, warningSQLiteFormat, filePath, extractError)
			recordUnprocessed(statsTree, filePath)
			return nil
		}
		documentContent := sqliteSchemaHeader + "\n" + schemaText
		if emitter != nil {
			return emitter.Emit(filePath, documentContent)
		}
		if statsTree != nil {
			statsTree.Record(filePath, []byte(documentContent), true)
		}
		return nil
	}

	if utils.IsFileBinary(filePath) {
		recordUnprocessed(statsTree, filePath)
		return nil
	}

	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		fmt.Fprintf(stderr, warningReadFileFormat, filePath, readError)
		recordUnprocessed(statsTree, filePath)
		return nil
	}
	if !utf8.Valid(fileBytes) {
		recordUnprocessed(statsTree, filePath)
		return nil
	}

	if emitter != nil {
		return emitter.Emit(filePath, string(fileBytes))
	}
	if statsTree != nil {
		statsTree.Record(filePath, fileBytes, true)
	}
	return nil
}

// recordUnprocessed counts a file that was seen but excluded from processing.
func recordUnprocessed(statsTree *stats.Tree, filePath string) {
	if statsTree == nil {
		return
	}
	statsTree.Record(filePath, nil, false)
}
