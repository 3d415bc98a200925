// Package logging assembles structured slog loggers for listcmp.
//
// It owns the console and JSON handlers, level parsing, and output plumbing.
// Command output goes to stdout, so loggers write to stderr by default and
// can additionally tee JSON records into a log file. A no-op logger is
// provided for tests and for wiring code that runs before configuration is
// loaded.
package logging
