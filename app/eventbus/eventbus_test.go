package eventbus

import (
	"context"
	"log/slog"
	"testing"
	"time"

	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
	"github.com/Black-And-White-Club/tourney-bot/integration_tests/containers"
	"github.com/Black-And-White-Club/tourney-bot/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	nc "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectMatches(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    bool
	}{
		{"tournament.>", "tournament.match.start.requested.v1", true},
		{"tournament.>", "tournament", false},
		{"tournament.*", "tournament.list", true},
		{"tournament.*", "tournament.list.v1", false},
		{"tournament.>", "_INBOX.abc", false},
		{"a.b", "a.b", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, subjectMatches(tt.pattern, tt.subject))
		})
	}
}

func setupBus(t *testing.T) (EventBus, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping NATS container test in short mode")
	}
	ctx := context.Background()
	container, url, err := containers.SetupNatsContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	bus, err := NewEventBus(ctx, Config{URL: url, QueueGroup: "test", CloseTimeout: time.Second}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })

	require.NoError(t, InitializeStreams(ctx, bus, slog.Default()))
	return bus, url
}

func TestEventBus_RoundTrip(t *testing.T) {
	bus, _ := setupBus(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	messages, err := bus.Subscribe(ctx, tournamentevents.TournamentListRequestedV1)
	require.NoError(t, err)

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"actor":{"id":"alice"}}`))
	msg.Metadata.Set(handlerwrapper.TopicMetadataKey, tournamentevents.TournamentListRequestedV1)
	middleware.SetCorrelationID("corr-1", msg)
	require.NoError(t, bus.Publish("", msg))

	select {
	case got := <-messages:
		got.Ack()
		assert.JSONEq(t, `{"actor":{"id":"alice"}}`, string(got.Payload))
		assert.Equal(t, "corr-1", middleware.MessageCorrelationID(got))
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}
}

func TestEventBus_ReplyInboxIsPlainNATS(t *testing.T) {
	_, url := setupBus(t)
	bus, err := NewEventBus(context.Background(), Config{URL: url}, slog.Default())
	require.NoError(t, err)
	defer bus.Close()
	require.NoError(t, InitializeStreams(context.Background(), bus, slog.Default()))

	conn, err := nc.Connect(url)
	require.NoError(t, err)
	defer conn.Close()
	inbox := nc.NewInbox()
	sub, err := conn.SubscribeSync(inbox)
	require.NoError(t, err)
	require.NoError(t, conn.Flush())

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"ok":true}`))
	require.NoError(t, bus.Publish(inbox, msg))

	got, err := sub.NextMsg(10 * time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(got.Data))
}

func TestEventBus_PublishWithoutTopic(t *testing.T) {
	bus, _ := setupBus(t)
	err := bus.Publish("", message.NewMessage(watermill.NewUUID(), nil))
	assert.ErrorContains(t, err, "has no topic")
}

func TestCreateStream_AddsSubjects(t *testing.T) {
	bus, _ := setupBus(t)
	ctx := context.Background()

	require.NoError(t, bus.CreateStream(ctx, tournamentevents.StreamName, tournamentevents.StreamSubject, "export.>"))

	stream, err := bus.JetStream().Stream(ctx, tournamentevents.StreamName)
	require.NoError(t, err)
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{tournamentevents.StreamSubject, "export.>"}, info.Config.Subjects)
}
