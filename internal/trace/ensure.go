package trace

import (
	"context"
	"log/slog"
	"time"
)

// EnsureContext guarantees that ctx carries trace metadata. An
// already-traced context is returned unchanged together with its
// existing metadata (idempotent). Otherwise a minimal
// internal-transport context is synthesized with fresh ids, reusing a
// session id from the scalar slot when one was seeded.
func EnsureContext(ctx context.Context) (context.Context, Metadata) {
	if md, ok := MetadataFromContext(ctx); ok {
		return ctx, md
	}
	md := Metadata{
		SessionID: ensureSessionID(ctx),
		RequestID: NewRequestID(),
		StartTime: time.Now(),
		Transport: TransportInternal,
	}
	return WithMetadata(ctx, md), md
}

// EnsureOperation guarantees trace metadata for a named out-of-band
// operation, i.e. a tool call or catalog listing that did not pass
// through the HTTP ingress middleware. An already-traced ctx is reused
// unchanged, so nested operations within one request keep a single
// request id. Otherwise a fresh context is synthesized with the mcp
// transport tag and the operation name recorded as method and path.
func EnsureOperation(ctx context.Context, operation string) (context.Context, Metadata) {
	if md, ok := MetadataFromContext(ctx); ok {
		slog.Debug("Using existing context",
			"operation", operation,
			"request_id", md.RequestID,
		)
		return ctx, md
	}
	md := Metadata{
		SessionID: ensureSessionID(ctx),
		RequestID: NewRequestID(),
		StartTime: time.Now(),
		Method:    "MCP",
		Path:      "/mcp/" + operation,
		Transport: TransportMCP,
	}
	ctx = WithMetadata(ctx, md)
	slog.Info("MCP operation started",
		"operation", operation,
		"request_id", md.RequestID,
		"session_id", md.SessionID,
	)
	return ctx, md
}

func ensureSessionID(ctx context.Context) string {
	if id := SessionIDFromContext(ctx); id != "" {
		return id
	}
	return NewSessionID()
}
