// Package attr builds the slog attributes shared by services, handlers and
// the provider client, so every log line uses the same keys.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

type ctxKey struct{}

// CorrelationIDKey is the message metadata key carrying the request id.
const CorrelationIDKey = "correlation_id"

// WithCorrelationID stores id on ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// CorrelationIDFrom returns the correlation id stored on ctx, if any.
func CorrelationIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// ExtractCorrelationID returns the correlation id of ctx as an attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String(CorrelationIDKey, CorrelationIDFrom(ctx))
}

// CorrelationIDFromMsg returns the correlation id of msg as an attribute.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String(CorrelationIDKey, msg.Metadata.Get(CorrelationIDKey))
}

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

func Time(key string, value time.Time) slog.Attr {
	return slog.Time(key, value)
}

func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Error records err under the "error" key. A nil error logs as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Alias tags a tournament alias.
func Alias(alias string) slog.Attr {
	return slog.String("alias", alias)
}

func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

func Duration(key string, value time.Duration) slog.Attr {
	return slog.Duration(key, value)
}
