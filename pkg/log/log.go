package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	correlationIDKey
)

func Init(level logrus.Level) {
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

// FromContext returns the logger stored in ctx, or the standard logger.
func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func ToContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, entry)
}

func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}
