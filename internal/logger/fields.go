package logger

import "log/slog"

// Standard field keys for structured logging. Use these consistently so
// log aggregation and querying work across the whole service.
const (
	// Distributed tracing
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// HTTP request
	KeyRequestID = "request_id" // chi middleware request ID
	KeyMethod    = "method"     // HTTP method
	KeyPath      = "path"       // request path
	KeyStatus    = "status"     // HTTP response status

	// Caller identity
	KeyClientIP = "client_ip" // client IP address
	KeyUsername = "username"  // authenticated username
	KeyRole     = "role"      // authenticated role

	// Incident domain
	KeyIncident  = "incident"  // incident ID
	KeyReference = "reference" // human-readable incident reference number
	KeyCategory  = "category"  // incident category (police/fire/medical/disaster)
	KeyPriority  = "priority"  // incident priority 1-5
	KeyUnit      = "unit"      // unit call sign
	KeyFrom      = "from"      // status transition source
	KeyTo        = "to"        // status transition target

	// Realtime fan-out
	KeySubscribers = "subscribers" // subscriber count for an incident feed
	KeyEvent       = "event"       // realtime event type
	KeyDropped     = "dropped"     // events dropped for a slow subscriber

	// Operation metadata
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
)

// Field constructors for the keys that benefit from type safety.

// TraceID returns a slog.Attr for an OpenTelemetry trace ID.
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for an OpenTelemetry span ID.
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Incident returns a slog.Attr for an incident ID.
func Incident(id string) slog.Attr {
	return slog.String(KeyIncident, id)
}

// Reference returns a slog.Attr for an incident reference number.
func Reference(ref string) slog.Attr {
	return slog.String(KeyReference, ref)
}

// Category returns a slog.Attr for an incident category.
func Category(c string) slog.Attr {
	return slog.String(KeyCategory, c)
}

// Unit returns a slog.Attr for a unit call sign.
func Unit(callSign string) slog.Attr {
	return slog.String(KeyUnit, callSign)
}

// Username returns a slog.Attr for a username.
func Username(name string) slog.Attr {
	return slog.String(KeyUsername, name)
}

// ClientIP returns a slog.Attr for a client IP address.
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// DurationMs returns a slog.Attr for a duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error. Returns an empty Attr for nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
