// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied with functional options, either at
// logger creation time via [Make] or on the package-level default logger
// via [Config].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("expansion complete", slog.Int("groups", n))
//
// # Configuration
//
//	log.Config(
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithPretty(true))
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the configured
// level are discarded. Trace maps below [slog.LevelDebug] and is rendered
// as "TRACE" rather than "DEBUG-4".
package log
