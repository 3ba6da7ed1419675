// Package logger provides structured logging for the command-line tools
// using zerolog.
//
// It supports JSON and console output, log level configuration and
// component-scoped loggers with structured fields. Library packages never
// log on their own; callers hand them a *Logger when they want progress.
//
// # Configuration
//
//	logging:
//	  level: "warn"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.NewWithWriter(&cfg.Logging, "elscore", os.Stderr).WithComponent("entitylink")
//	log.Info("scored file", logger.Fields("path", path, "documents", n))
package logger
