package logger

import (
	"log/slog"
	"time"
)

// LogCommand records the outcome of a command that does not go through the
// interaction wrapper, such as prefix commands.
func LogCommand(name string, duration time.Duration, err error, attrs ...any) {
	base := append([]any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.Duration("took", duration),
	}, attrs...)

	if err != nil {
		slog.Error("Command failed", append(base, slog.Any("error", err), slog.String("status", "failed"))...)
		return
	}
	slog.Info("Command completed", append(base, slog.String("status", "success"))...)
}

// LogQuery logs raw statements; successes only show at debug level.
func LogQuery(query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.Duration("took", duration),
		slog.String("query", query),
	}
	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
		return
	}
	slog.Debug("Query executed", attrs...)
}

func LogSystem(msg string, attrs ...any) {
	slog.Info(msg, append([]any{slog.String("type", "sys")}, attrs...)...)
}
