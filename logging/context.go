package logging

import (
	"DuneArchive/types"
	"errors"
	"log/slog"
)

// WithComponent tags records with the subsystem that emitted them
// ("catalog", "heap", "engine", "executor").
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithType creates a logger scoped to one record type.
//
//	log := logging.WithType("engine", "house")
//	log.Debug("record inserted", "rid", "(0,3)")
func WithType(component, typeName string) *slog.Logger {
	return GetLogger().With("component", component, "type", typeName)
}

// WithPage adds the heap page being worked on.
func WithPage(component, typeName string, pageNo int64) *slog.Logger {
	return GetLogger().With("component", component, "type", typeName, "page", pageNo)
}

// WithRun tags every record of one archive run, so that traces of
// successive runs appended to the same file can be told apart.
func WithRun(runID string) *slog.Logger {
	return GetLogger().With("run_id", runID)
}

// WithError adds err, and its family and code when it is a classified
// storage error, to log.
func WithError(log *slog.Logger, err error) *slog.Logger {
	var dbErr *types.DBError
	if errors.As(err, &dbErr) {
		return log.With("error", err.Error(), "family", dbErr.Family.String(), "code", dbErr.Code)
	}
	return log.With("error", err.Error())
}
