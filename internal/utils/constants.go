package utils

// LoggerInitializationFailedMessageFormat reports a failure to build the application logger.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage prefixes fatal errors surfaced from the CLI.
const ApplicationExecutionFailedMessage = "application execution failed"
