package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for dispatch operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// Client attributes
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"

	// HTTP attributes
	AttrHTTPMethod = "http.method"
	AttrHTTPRoute  = "http.route"
	AttrHTTPStatus = "http.status_code"

	// Incident attributes
	AttrIncidentID        = "incident.id"
	AttrIncidentReference = "incident.reference"
	AttrIncidentCategory  = "incident.category"
	AttrIncidentPriority  = "incident.priority"
	AttrIncidentStatus    = "incident.status"

	// Unit attributes
	AttrUnitID       = "unit.id"
	AttrUnitCallSign = "unit.call_sign"
	AttrUnitStatus   = "unit.status"

	// User/Auth attributes
	AttrUsername = "user.name"
	AttrUserRole = "user.role"
	AttrAuth     = "auth.method"

	// Chat attributes
	AttrMessageID  = "message.id"
	AttrSenderRole = "message.sender_role"

	// Stream attributes
	AttrStreamTopic  = "stream.topic"
	AttrEventType    = "stream.event_type"
	AttrEventDropped = "stream.dropped"

	// Store attributes
	AttrStoreOp   = "store.operation"
	AttrStoreType = "store.type"
)

// Span names for operations.
// Format: <component>.<operation>
const (
	SpanIncidentReport     = "incident.report"
	SpanIncidentList       = "incident.list"
	SpanIncidentGet        = "incident.get"
	SpanIncidentTransition = "incident.transition"
	SpanIncidentAssign     = "incident.assign"
	SpanChatSend           = "chat.send"
	SpanChatList           = "chat.list"
	SpanStreamServe        = "stream.serve"
	SpanStoreQuery         = "store.query"
	SpanStoreTx            = "store.transaction"
)

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for full client address
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// IncidentID returns an attribute for the incident identifier
func IncidentID(id string) attribute.KeyValue {
	return attribute.String(AttrIncidentID, id)
}

// IncidentReference returns an attribute for the human-readable reference
func IncidentReference(ref string) attribute.KeyValue {
	return attribute.String(AttrIncidentReference, ref)
}

// IncidentCategory returns an attribute for the incident category
func IncidentCategory(category string) attribute.KeyValue {
	return attribute.String(AttrIncidentCategory, category)
}

// IncidentPriority returns an attribute for the incident priority
func IncidentPriority(priority int) attribute.KeyValue {
	return attribute.Int(AttrIncidentPriority, priority)
}

// IncidentStatus returns an attribute for the incident status
func IncidentStatus(status string) attribute.KeyValue {
	return attribute.String(AttrIncidentStatus, status)
}

// UnitCallSign returns an attribute for the unit call sign
func UnitCallSign(callSign string) attribute.KeyValue {
	return attribute.String(AttrUnitCallSign, callSign)
}

// UnitStatus returns an attribute for the unit status
func UnitStatus(status string) attribute.KeyValue {
	return attribute.String(AttrUnitStatus, status)
}

// Username returns an attribute for username
func Username(name string) attribute.KeyValue {
	return attribute.String(AttrUsername, name)
}

// UserRole returns an attribute for the acting user's role
func UserRole(role string) attribute.KeyValue {
	return attribute.String(AttrUserRole, role)
}

// AuthMethod returns an attribute for authentication method
func AuthMethod(method string) attribute.KeyValue {
	return attribute.String(AttrAuth, method)
}

// MessageID returns an attribute for a chat message identifier
func MessageID(id string) attribute.KeyValue {
	return attribute.String(AttrMessageID, id)
}

// SenderRole returns an attribute for a chat message sender role
func SenderRole(role string) attribute.KeyValue {
	return attribute.String(AttrSenderRole, role)
}

// EventType returns an attribute for a stream event type
func EventType(t string) attribute.KeyValue {
	return attribute.String(AttrEventType, t)
}

// StoreOp returns an attribute for a store operation name
func StoreOp(op string) attribute.KeyValue {
	return attribute.String(AttrStoreOp, op)
}

// StoreType returns an attribute for store backend type
func StoreType(t string) attribute.KeyValue {
	return attribute.String(AttrStoreType, t)
}

// StartIncidentSpan starts a span for an incident operation.
// This is a convenience function that sets common attributes.
func StartIncidentSpan(ctx context.Context, operation, incidentID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{}
	if incidentID != "" {
		allAttrs = append(allAttrs, IncidentID(incidentID))
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "incident."+operation, trace.WithAttributes(allAttrs...))
}

// StartStoreSpan starts a span for a store operation.
func StartStoreSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		StoreOp(operation),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "store."+operation, trace.WithAttributes(allAttrs...))
}

// StartChatSpan starts a span for a chat operation.
func StartChatSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "chat."+operation, trace.WithAttributes(attrs...))
}
