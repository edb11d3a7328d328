package types

// contextKey is a private type for context values set by the HTTP layer and
// read by telemetry.
type contextKey string

const (
	// ContextKeyRequestID carries the per-request id assigned by the server.
	ContextKeyRequestID contextKey = "request_id"
	// ContextKeyQueryType carries the resolved query type, when known.
	ContextKeyQueryType contextKey = "query_type"
)
