package apiclient

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// ChatMessage is a message on an incident's chat thread.
type ChatMessage struct {
	ID             string    `json:"id"`
	IncidentID     string    `json:"incident_id"`
	SenderID       string    `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	SenderRole     string    `json:"sender_role"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// MessageFilter narrows ListMessages. Zero values are ignored.
type MessageFilter struct {
	After time.Time
	Limit int
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

// ListMessages returns an incident's chat messages, oldest first. The
// caller must be a participant (reporter or staff).
func (c *Client) ListMessages(ctx context.Context, incidentID string, filter MessageFilter) ([]ChatMessage, error) {
	q := url.Values{}
	if !filter.After.IsZero() {
		q.Set("after", filter.After.Format(time.RFC3339))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := resourcePath("incidents", incidentID, "messages")
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return listResources[ChatMessage](ctx, c, path)
}

// SendMessage posts a chat message to an incident's thread.
func (c *Client) SendMessage(ctx context.Context, incidentID, body string) (*ChatMessage, error) {
	return createResource[ChatMessage](ctx, c, resourcePath("incidents", incidentID, "messages"), sendMessageRequest{Body: body})
}
