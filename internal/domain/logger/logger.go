package logger

import (
	"log/slog"
	"time"
)

// OperationLogger times one domain operation and logs its outcome.
type OperationLogger struct {
	Operation string
	Attrs     []any
	StartTime time.Time
}

func NewOperationLogger(operation string, attrs ...any) *OperationLogger {
	return &OperationLogger{
		Operation: operation,
		Attrs:     attrs,
		StartTime: time.Now(),
	}
}

func (l *OperationLogger) attrs(extra ...any) []any {
	out := []any{
		slog.String("type", "cmd"),
		slog.String("operation", l.Operation),
		slog.Duration("took", time.Since(l.StartTime)),
	}
	out = append(out, l.Attrs...)
	return append(out, extra...)
}

// Log records success or failure of the operation.
func (l *OperationLogger) Log(err error, extra ...any) {
	if err != nil {
		slog.Error("Operation failed", l.attrs(append(extra, slog.Any("error", err))...)...)
		return
	}
	slog.Debug("Operation completed", l.attrs(extra...)...)
}

// Reject records a request turned away for bad input. It is not an error.
func (l *OperationLogger) Reject(reason string) {
	slog.Info("Operation rejected", l.attrs(slog.String("reason", reason))...)
}
