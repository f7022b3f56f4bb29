// Package logging builds the slog loggers used across zotsync.
//
// Two output formats are supported: a compact console format where the
// component attribute becomes the message prefix, and standard JSON with
// ts/level/msg keys. Log output goes to stderr (plus the configured log file)
// so stdout remains reserved for sync progress and summaries.
package logging
