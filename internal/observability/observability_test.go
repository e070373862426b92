package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestInit_WithoutCollector(t *testing.T) {
	var out bytes.Buffer
	obs, err := Init(context.Background(), Config{
		ServiceName: "tourney-bot",
		Environment: "test",
		LogLevel:    "warn",
		LogOutput:   &out,
	})
	require.NoError(t, err)

	assert.IsType(t, noop.TracerProvider{}, obs.Provider.TracerProvider)
	assert.NoError(t, obs.Shutdown(context.Background()))

	obs.Provider.Logger.Info("dropped")
	obs.Provider.Logger.Warn("kept")
	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "tourney-bot", line["service"])

	obs.Metrics.RecordOperationAttempt(context.Background(), "CreateTournament", "TournamentService")
	families, err := obs.Registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "tourney_bot_operation_attempts_total")
	assert.Contains(t, names, "go_goroutines")
}

func TestInit_WithCollector(t *testing.T) {
	obs, err := Init(context.Background(), Config{
		ServiceName:  "tourney-bot",
		OTLPEndpoint: "localhost:4317",
		OTLPInsecure: true,
		SampleRate:   1,
		LogOutput:    &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.IsType(t, &sdktrace.TracerProvider{}, obs.Provider.TracerProvider)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = obs.Shutdown(ctx)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, parseLevel(in))
		})
	}
}
