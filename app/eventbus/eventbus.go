// Package eventbus connects watermill routers to NATS. Requests and
// notifications travel through a JetStream stream; reply subjects chosen by
// request senders are plain NATS subjects.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus publishes and subscribes watermill messages over NATS.
type EventBus interface {
	message.Publisher
	message.Subscriber
	// CreateStream makes sure a stream with name captures subjects.
	CreateStream(ctx context.Context, name string, subjects ...string) error
	JetStream() jetstream.JetStream
}

// Config holds the connection settings.
type Config struct {
	URL string
	// QueueGroup lets several instances share one subscription.
	QueueGroup     string
	AckWaitTimeout time.Duration
	CloseTimeout   time.Duration
}

type eventBus struct {
	conn       *nc.Conn
	js         jetstream.JetStream
	subscriber *nats.Subscriber
	marshaler  nats.Marshaler
	logger     *slog.Logger

	streamMu sync.Mutex
	// subjects captured by streams created in this process
	streamSubjects []string
}

var _ EventBus = (*eventBus)(nil)

// NewEventBus connects to NATS and prepares the JetStream publisher and
// subscriber.
func NewEventBus(ctx context.Context, cfg Config, logger *slog.Logger) (EventBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.MaxReconnects(-1),
	}

	conn, err := nc.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	ackWait := cfg.AckWaitTimeout
	if ackWait <= 0 {
		ackWait = 30 * time.Second
	}
	closeTimeout := cfg.CloseTimeout
	if closeTimeout <= 0 {
		closeTimeout = 30 * time.Second
	}

	marshaler := &nats.NATSMarshaler{}
	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:               cfg.URL,
			QueueGroupPrefix:  cfg.QueueGroup,
			CloseTimeout:      closeTimeout,
			AckWaitTimeout:    ackWait,
			NatsOptions:       options,
			Unmarshaler:       marshaler,
			SubjectCalculator: nats.DefaultSubjectCalculator,
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
				SubscribeOptions: []nc.SubOpt{
					nc.DeliverNew(),
					nc.AckExplicit(),
				},
			},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Connected to NATS", slog.String("url", cfg.URL))
	return &eventBus{
		conn:       conn,
		js:         js,
		subscriber: subscriber,
		marshaler:  marshaler,
		logger:     logger,
	}, nil
}

// Publish sends messages to the subject in their "topic" metadata, falling
// back to topic. Subjects captured by a stream go through JetStream and wait
// for the ack; any other subject (a reply inbox) is a plain publish.
func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		subject := msg.Metadata.Get(handlerwrapper.TopicMetadataKey)
		if subject == "" {
			subject = topic
		}
		if subject == "" {
			return fmt.Errorf("message %s has no topic", msg.UUID)
		}
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}

		natsMsg, err := eb.marshaler.Marshal(subject, msg)
		if err != nil {
			return fmt.Errorf("failed to marshal message for %s: %w", subject, err)
		}

		if eb.streamed(subject) {
			ctx := msg.Context()
			if _, err := eb.js.PublishMsg(ctx, natsMsg); err != nil {
				return fmt.Errorf("failed to publish message to JetStream subject %s: %w", subject, err)
			}
		} else if err := eb.conn.PublishMsg(natsMsg); err != nil {
			return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
		}

		eb.logger.Debug("Message published",
			slog.String("subject", subject),
			slog.String("message_id", msg.UUID),
		)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	eb.logger.InfoContext(ctx, "Subscribed", slog.String("subject", topic))
	return messages, nil
}

// CreateStream creates the stream, or adds missing subjects to an existing one.
func (eb *eventBus) CreateStream(ctx context.Context, name string, subjects ...string) error {
	eb.streamMu.Lock()
	defer eb.streamMu.Unlock()

	stream, err := eb.js.Stream(ctx, name)
	switch {
	case errors.Is(err, jetstream.ErrStreamNotFound):
		if _, err := eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     name,
			Subjects: subjects,
			Storage:  jetstream.FileStorage,
		}); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", name, err)
		}
		eb.logger.InfoContext(ctx, "Stream created", slog.String("stream", name), slog.Any("subjects", subjects))
	case err != nil:
		return fmt.Errorf("failed to look up stream %s: %w", name, err)
	default:
		info, err := stream.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stream info for %s: %w", name, err)
		}
		cfg := info.Config
		missing := false
		for _, s := range subjects {
			if !slices.Contains(cfg.Subjects, s) {
				cfg.Subjects = append(cfg.Subjects, s)
				missing = true
			}
		}
		if missing {
			if _, err := eb.js.UpdateStream(ctx, cfg); err != nil {
				return fmt.Errorf("failed to update stream %s: %w", name, err)
			}
			eb.logger.InfoContext(ctx, "Stream updated", slog.String("stream", name), slog.Any("subjects", cfg.Subjects))
		}
	}

	for _, s := range subjects {
		if !slices.Contains(eb.streamSubjects, s) {
			eb.streamSubjects = append(eb.streamSubjects, s)
		}
	}
	return nil
}

func (eb *eventBus) JetStream() jetstream.JetStream {
	return eb.js
}

// Close closes the subscriber and the publishing connection.
func (eb *eventBus) Close() error {
	var errs []error
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close subscriber: %w", err))
		}
	}
	if eb.conn != nil {
		if err := eb.conn.Drain(); err != nil && !errors.Is(err, nc.ErrConnectionClosed) {
			errs = append(errs, fmt.Errorf("failed to drain NATS connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (eb *eventBus) streamed(subject string) bool {
	eb.streamMu.Lock()
	defer eb.streamMu.Unlock()
	for _, pattern := range eb.streamSubjects {
		if subjectMatches(pattern, subject) {
			return true
		}
	}
	return false
}

// subjectMatches applies NATS wildcard rules: "*" matches one token and a
// trailing ">" matches one or more.
func subjectMatches(pattern, subject string) bool {
	pt := strings.Split(pattern, ".")
	st := strings.Split(subject, ".")
	for i, p := range pt {
		if p == ">" {
			return i == len(pt)-1 && len(st) > i
		}
		if i >= len(st) {
			return false
		}
		if p != "*" && p != st[i] {
			return false
		}
	}
	return len(pt) == len(st)
}
