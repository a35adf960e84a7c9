package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const sessionIDKey ctxKey = "session_id"

// WithSessionID tags ctx so that FromCtx loggers carry the session id.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFrom returns the session id stored in ctx, or "".
func SessionIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// FromCtx returns the global logger enriched with the session id in ctx.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if id := SessionIDFrom(ctx); id != "" {
		return l.With(zap.String("session_id", id))
	}
	return l
}
