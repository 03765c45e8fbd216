package tools

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-tracing-demo/internal/trace"
)

func TestServiceCallRoutesByName(t *testing.T) {
	svc := NewService()

	result, err := svc.Call(context.Background(), "hello", map[string]any{"name": "Router"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Router! 👋", result)
}

func TestServiceCallUnknownTool(t *testing.T) {
	svc := NewService()

	_, err := svc.Call(context.Background(), "does_not_exist", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTool)
	assert.Contains(t, err.Error(), "does_not_exist")
}

// TestServiceCallReturnsValidationErrors verifies that argument
// failures surface as error values for the caller, not panics.
func TestServiceCallReturnsValidationErrors(t *testing.T) {
	svc := NewService()

	_, err := svc.Call(context.Background(), "add_numbers", map[string]any{"a": float64(1)})
	assert.ErrorIs(t, err, ErrMissingParameter)
}

// TestServiceCallPreservesIngressContext verifies the dispatcher does
// not stomp ids installed by the HTTP ingress path.
func TestServiceCallPreservesIngressContext(t *testing.T) {
	svc := NewService()

	ctx := trace.WithMetadata(context.Background(), trace.Metadata{
		SessionID: "ingress-session",
		RequestID: "ingress-req",
		StartTime: time.Now(),
		Transport: trace.TransportHTTP,
	})

	_, err := svc.Call(ctx, "hello", map[string]any{"name": "Ingress"})
	require.NoError(t, err)

	// The caller's context is untouched; the dispatcher only derives.
	assert.Equal(t, "ingress-req", trace.RequestIDFromContext(ctx))
	assert.Equal(t, "ingress-session", trace.SessionIDFromContext(ctx))
}

// TestServiceCallAnnotatesLogsWithOperation verifies the dispatcher
// attaches the operation name as a log field, so lines emitted deep in
// a handler carry it without explicit threading.
func TestServiceCallAnnotatesLogsWithOperation(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(previous)

	svc := NewService()
	_, err := svc.Call(context.Background(), "hello", map[string]any{"name": "Logs"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "operation=hello")
	assert.Contains(t, out, "Generating greeting")
}

func TestServiceListMatchesCatalog(t *testing.T) {
	svc := NewService()

	defs := svc.List()
	require.Len(t, defs, 4)

	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Description)
	}
	assert.Equal(t, []string{"hello", "add_numbers", "slow_operation", "parallel_tasks"}, names)

	for _, def := range defs {
		_, ok := svc.handlers[def.Name]
		assert.True(t, ok, "catalog entry %q has no handler", def.Name)
	}
}
