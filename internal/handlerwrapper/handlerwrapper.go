// Package handlerwrapper adapts typed handlers to watermill HandlerFuncs. A
// handler receives a decoded payload and returns the messages to publish as
// Results; routing uses the "topic" metadata so one handler can emit to
// several topics.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

// CtxKeyReplyTo holds the reply topic requested by the sender, if any.
const CtxKeyReplyTo ctxKey = "reply_to"

const (
	// TopicMetadataKey is read by the event bus to pick the publish subject.
	TopicMetadataKey = "topic"
	// ReplyToMetadataKey is set by request senders that want a private answer.
	ReplyToMetadataKey = "reply_to"
)

// Result is a message to publish after a handler succeeds.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTransformingTyped decodes msg into T, runs handler and encodes its
// results. Payloads that cannot be decoded are logged and acked, since a
// redelivery would fail the same way.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	handler func(context.Context, *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := msg.Context()
		correlationID := middleware.MessageCorrelationID(msg)
		if correlationID != "" {
			ctx = attr.WithCorrelationID(ctx, correlationID)
		}
		if rt := msg.Metadata.Get(ReplyToMetadataKey); rt != "" {
			ctx = context.WithValue(ctx, CtxKeyReplyTo, rt)
		}

		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("message.uuid", msg.UUID),
			attribute.String("correlation_id", correlationID),
		))
		defer span.End()

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.WarnContext(ctx, "Dropping undecodable message",
				attr.CorrelationIDFromMsg(msg),
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			return nil, nil
		}

		results, err := handler(ctx, payload)
		if err != nil {
			span.RecordError(err)
			logger.ErrorContext(ctx, "Handler failed",
				attr.CorrelationIDFromMsg(msg),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			return nil, err
		}

		out := make([]*message.Message, 0, len(results))
		for _, r := range results {
			m, err := NewMessage(r, correlationID)
			if err != nil {
				span.RecordError(err)
				return nil, fmt.Errorf("%s: %w", handlerName, err)
			}
			out = append(out, m)
		}
		return out, nil
	}
}

// NewMessage encodes r as a watermill message addressed by its topic metadata.
func NewMessage(r Result, correlationID string) (*message.Message, error) {
	if r.Topic == "" {
		return nil, fmt.Errorf("result has no topic")
	}
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", r.Topic, err)
	}
	m := message.NewMessage(watermill.NewUUID(), body)
	for k, v := range r.Metadata {
		m.Metadata.Set(k, v)
	}
	m.Metadata.Set(TopicMetadataKey, r.Topic)
	if correlationID != "" {
		middleware.SetCorrelationID(correlationID, m)
	}
	return m, nil
}

// ReplyTopic returns the sender's reply topic from ctx, or fallback.
func ReplyTopic(ctx context.Context, fallback string) string {
	if rt, ok := ctx.Value(CtxKeyReplyTo).(string); ok && rt != "" {
		return rt
	}
	return fallback
}
