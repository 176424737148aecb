// Package logging configures the slog JSON logger shared by every confmodel
// component.
//
// Records go to stderr as JSON and always carry module and version
// attributes. The level comes from LOG_LEVEL unless the caller passes one
// explicitly; accepted names are debug, info, warn (or warning) and error,
// case-insensitive, with anything else falling back to info. Debug loggers
// also record the source location.
//
// The CLI installs the default logger before any command runs:
//
//	logging.SetDefaultStructuredLoggerWithLevel("confmodel", version, cmd.String("log-level"))
//
// Library packages log through slog directly and attach the class or bean
// being processed:
//
//	slog.Debug("registered bean record", "class", class.Name, "bean", key)
//
// NewLogLogger adapts the default handler for code that expects a *log.Logger.
package logging
