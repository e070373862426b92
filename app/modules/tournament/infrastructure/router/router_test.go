package tournamentrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	tournamenthandlers "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/handlers"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// topicPublisher routes by the topic metadata the way the NATS event bus does.
type topicPublisher struct {
	*gochannel.GoChannel
}

func (p topicPublisher) Publish(topic string, msgs ...*message.Message) error {
	for _, m := range msgs {
		if t := m.Metadata.Get(handlerwrapper.TopicMetadataKey); t != "" {
			topic = t
		}
		if err := p.GoChannel.Publish(topic, m); err != nil {
			return err
		}
	}
	return nil
}

// stubHandlers answers the list request itself and leaves the rest to
// handlers without a service.
type stubHandlers struct {
	tournamenthandlers.Handlers
}

func (stubHandlers) HandleListTournaments(ctx context.Context, payload *tournamentevents.ActorRequestPayloadV1) ([]handlerwrapper.Result, error) {
	return []handlerwrapper.Result{{
		Topic: handlerwrapper.ReplyTopic(ctx, tournamentevents.CommandSucceededV1),
		Payload: &tournamentevents.CommandSucceededPayloadV1{
			Command: tournamentevents.TournamentListRequestedV1,
			Actor:   payload.Actor,
			Data:    []string{"fortnite"},
		},
	}}, nil
}

func TestTournamentRouter_RoutesRequestsAndReplies(t *testing.T) {
	logger := watermill.NewSlogLogger(slog.Default())
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, logger)
	defer pubSub.Close()

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: time.Second}, logger)
	require.NoError(t, err)

	tr := NewTournamentRouter(slog.Default(), router, pubSub, topicPublisher{pubSub}, noop.NewTracerProvider().Tracer("test"), prometheus.NewRegistry())
	require.NoError(t, tr.Configure(context.Background(), stubHandlers{
		Handlers: tournamenthandlers.NewTournamentHandlers(nil, slog.Default(), noop.NewTracerProvider().Tracer("test")),
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()
	defer tr.Close()

	replies, err := pubSub.Subscribe(ctx, "_INBOX.test")
	require.NoError(t, err)

	req := message.NewMessage(watermill.NewUUID(), []byte(`{"actor":{"id":"alice"}}`))
	req.Metadata.Set(handlerwrapper.ReplyToMetadataKey, "_INBOX.test")
	require.NoError(t, pubSub.Publish(tournamentevents.TournamentListRequestedV1, req))

	select {
	case reply := <-replies:
		reply.Ack()
		var got tournamentevents.CommandSucceededPayloadV1
		require.NoError(t, json.Unmarshal(reply.Payload, &got))
		assert.Equal(t, "alice", got.Actor.ID)
		assert.Equal(t, tournamentevents.TournamentListRequestedV1, got.Command)
	case <-ctx.Done():
		t.Fatal("no reply")
	}
}
