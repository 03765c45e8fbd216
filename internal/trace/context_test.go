package trace

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithMetadataInstallsCurrentMetadata verifies that installed
// metadata is readable through both the struct accessor and the
// mirrored scalar slots.
func TestWithMetadataInstallsCurrentMetadata(t *testing.T) {
	md := Metadata{
		SessionID: "session-abc",
		RequestID: "req-123",
		StartTime: time.Now(),
		Method:    "GET",
		Path:      "/ping",
		Transport: TransportHTTP,
	}

	ctx := WithMetadata(context.Background(), md)

	got, ok := MetadataFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, md, got)
	assert.Equal(t, "session-abc", SessionIDFromContext(ctx))
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
}

// TestAccessorsUntraced verifies the defined zero-value behavior for
// contexts that never passed through ingress: absence is a normal
// condition, not an error.
func TestAccessorsUntraced(t *testing.T) {
	ctx := context.Background()

	_, ok := MetadataFromContext(ctx)
	assert.False(t, ok)
	assert.Empty(t, SessionIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(ctx))

	info := InfoFromContext(ctx)
	assert.True(t, info.Empty())
}

// TestConcurrentScopesAreIsolated runs many units of work in parallel,
// each with its own metadata, and verifies that accessor reads inside
// one scope never observe another scope's ids.
func TestConcurrentScopesAreIsolated(t *testing.T) {
	const workers = 32

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			want := fmt.Sprintf("req-%d", n)
			ctx := WithMetadata(context.Background(), Metadata{
				SessionID: fmt.Sprintf("session-%d", n),
				RequestID: want,
				StartTime: time.Now(),
			})

			// Yield so the scheduler interleaves the workers.
			time.Sleep(time.Millisecond)

			if got := RequestIDFromContext(ctx); got != want {
				errs <- fmt.Errorf("worker %d read %q, want %q", n, got, want)
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// TestChildOperationsInheritParentContext verifies that goroutines
// spawned inside a traced scope observe the ids installed at ingress.
func TestChildOperationsInheritParentContext(t *testing.T) {
	ctx := WithMetadata(context.Background(), Metadata{
		SessionID: "parent-session",
		RequestID: "parent-req",
		StartTime: time.Now(),
	})

	const children = 5
	results := make([]string, children)
	var wg sync.WaitGroup
	for i := 0; i < children; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			time.Sleep(time.Duration(n) * time.Millisecond)
			results[n] = RequestIDFromContext(ctx)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, "parent-req", got, "child %d", i)
	}
}

// TestCopyOnBranchDoesNotLeakToParent verifies that a child installing
// its own metadata is invisible to the parent scope and to siblings.
func TestCopyOnBranchDoesNotLeakToParent(t *testing.T) {
	parent := WithMetadata(context.Background(), Metadata{
		SessionID: "parent-session",
		RequestID: "parent-req",
	})

	child := WithMetadata(parent, Metadata{
		SessionID: "child-session",
		RequestID: "child-req",
	})
	sibling := WithRequestID(parent, "sibling-req")

	assert.Equal(t, "child-req", RequestIDFromContext(child))
	assert.Equal(t, "sibling-req", RequestIDFromContext(sibling))
	assert.Equal(t, "parent-req", RequestIDFromContext(parent))
	assert.Equal(t, "parent-session", SessionIDFromContext(parent))
}

// TestInfoFromContextScalarFallback verifies that ids set directly via
// the scalar installers still surface in the snapshot when no full
// metadata was installed.
func TestInfoFromContextScalarFallback(t *testing.T) {
	ctx := WithSessionID(context.Background(), "scalar-session")
	ctx = WithRequestID(ctx, "scalar-req")

	info := InfoFromContext(ctx)
	assert.False(t, info.Empty())
	assert.Equal(t, "scalar-session", info.SessionID)
	assert.Equal(t, "scalar-req", info.RequestID)
	assert.Empty(t, info.Method)
	assert.Zero(t, info.DurationMS)
}

// TestInfoFromContextComputesDuration verifies the elapsed-time field
// is derived from the metadata's start time on demand.
func TestInfoFromContextComputesDuration(t *testing.T) {
	ctx := WithMetadata(context.Background(), Metadata{
		RequestID: "req-1",
		SessionID: "session-1",
		StartTime: time.Now().Add(-50 * time.Millisecond),
	})

	info := InfoFromContext(ctx)
	assert.GreaterOrEqual(t, info.DurationMS, 50.0)
}

// TestNewRequestIDFormat verifies the short-id format and best-effort
// uniqueness across consecutive generations.
func TestNewRequestIDFormat(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRequestID()
		assert.Regexp(t, hexPattern, id)
		assert.False(t, seen[id], "request id %q generated twice", id)
		seen[id] = true
	}
}

// TestNewSessionIDFormat verifies session ids are full UUIDs and do
// not repeat.
func TestNewSessionIDFormat(t *testing.T) {
	first := NewSessionID()
	second := NewSessionID()

	_, err := uuid.Parse(first)
	require.NoError(t, err)
	_, err = uuid.Parse(second)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
