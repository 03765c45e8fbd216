package trace

import (
	"time"

	"github.com/google/uuid"
)

// Transport classifies how a unit of work arrived at the server.
type Transport string

const (
	TransportHTTP     Transport = "http"
	TransportSSE      Transport = "sse"
	TransportMCPSSE   Transport = "mcp_sse"
	TransportMCP      Transport = "mcp"
	TransportInternal Transport = "internal"
)

// Metadata describes one traced unit of work: a single HTTP request or
// one out-of-band operation invocation. It is stored in the context by
// value, so downstream readers always observe an immutable snapshot.
type Metadata struct {
	SessionID string
	RequestID string
	StartTime time.Time
	Method    string
	Path      string
	UserAgent string
	ClientIP  string
	Transport Transport
}

// Elapsed returns the time since the unit of work started.
func (m Metadata) Elapsed() time.Duration {
	return time.Since(m.StartTime)
}

// Info builds the accessor-facing snapshot for the metadata, computing
// the elapsed duration from StartTime.
func (m Metadata) Info() Info {
	return Info{
		SessionID:  m.SessionID,
		RequestID:  m.RequestID,
		StartTime:  m.StartTime,
		Method:     m.Method,
		Path:       m.Path,
		UserAgent:  m.UserAgent,
		ClientIP:   m.ClientIP,
		Transport:  m.Transport,
		DurationMS: m.Elapsed().Seconds() * 1000,
	}
}

// Info is a snapshot of the current trace state, tagged for embedding
// in JSON responses and log output.
type Info struct {
	SessionID  string    `json:"session_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	StartTime  time.Time `json:"start_time"`
	Method     string    `json:"method,omitempty"`
	Path       string    `json:"path,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	Transport  Transport `json:"transport_type,omitempty"`
	DurationMS float64   `json:"duration_ms"`
}

// Empty reports whether the snapshot carries no trace information.
func (i Info) Empty() bool {
	return i.SessionID == "" && i.RequestID == ""
}

// NewRequestID generates a short request identifier: the first eight
// hex characters of a UUID. Uniqueness is best-effort, which is enough
// for log correlation.
func NewRequestID() string {
	return uuid.New().String()[:8]
}

// NewSessionID generates a full-length session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// ShortID truncates an identifier to eight characters for log lines
// and response bodies where the full session id would be noise.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
