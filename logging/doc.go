// Package logging provides the process-wide structured logger.
//
// It wraps [log/slog] and exposes one global logger that is configured once
// with Init and retrieved with GetLogger. The storage packages never build
// their own loggers; they derive child loggers through the With* helpers so
// that level and destination are controlled from one place.
//
// If GetLogger is called before Init, a WARN-level stderr logger is created
// lazily, which keeps library use and tests quiet by default.
package logging
