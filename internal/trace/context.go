// Package trace carries per-request tracing identifiers through
// context.Context so that handlers, tools and log output can read them
// at any call depth without explicit parameter threading. Values are
// installed copy-on-branch: a derived context never mutates what its
// parent or concurrent siblings observe.
package trace

import "context"

// ctxKey is unexported so only this package can install trace values.
type ctxKey int

const (
	metadataKey ctxKey = iota
	sessionIDKey
	requestIDKey
)

// WithMetadata returns a context carrying md as the current trace
// metadata. The scalar id slots are mirrored so the id accessors
// resolve without unpacking the full struct.
func WithMetadata(ctx context.Context, md Metadata) context.Context {
	ctx = context.WithValue(ctx, metadataKey, md)
	if md.SessionID != "" {
		ctx = context.WithValue(ctx, sessionIDKey, md.SessionID)
	}
	if md.RequestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, md.RequestID)
	}
	return ctx
}

// MetadataFromContext returns the nearest installed metadata, or false
// when the context is untraced.
func MetadataFromContext(ctx context.Context) (Metadata, bool) {
	md, ok := ctx.Value(metadataKey).(Metadata)
	return md, ok
}

// WithSessionID returns a context carrying only the session id slot.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext returns the current session id, or "" when the
// context is untraced. Absence is a normal condition, not an error.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID returns a context carrying only the request id slot.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the current request id, or "" when the
// context is untraced.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// InfoFromContext returns a snapshot of the current trace state. With
// full metadata installed the snapshot carries every field plus the
// elapsed duration; with only the scalar slots set it carries the ids
// alone; otherwise it is empty. Callers treat an empty Info as the
// normal untraced case, never as an error.
func InfoFromContext(ctx context.Context) Info {
	if md, ok := MetadataFromContext(ctx); ok {
		return md.Info()
	}
	return Info{
		SessionID: SessionIDFromContext(ctx),
		RequestID: RequestIDFromContext(ctx),
	}
}
