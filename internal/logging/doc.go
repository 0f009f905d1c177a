// Package logging builds the slog loggers used throughout stylus.
//
// Two handlers are provided: a console handler that renders one aligned,
// human-readable line per record, and a JSON handler for machine
// consumption. Both honor the configured level, mirror output to a log file
// when one is set, and report caller locations at debug level.
//
// Context helpers carry the run ID and the file being processed so every
// package logging inside a batch run tags its lines the same way. NewNop
// returns a logger that discards everything, for tests and optional wiring.
package logging
