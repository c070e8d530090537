// Package logging assembles structured slog loggers and formatting helpers used
// across compsplit.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes the standard field names so every command tags its log
// lines with the same component and run identifiers. Logs go to stderr by
// default because stdout carries decomposition results. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
