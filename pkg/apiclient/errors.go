package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is an error response from the Siren API. The server reports
// errors as application/problem+json documents (RFC 7807).
type APIError struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Title != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	case e.Title != "":
		return e.Title
	default:
		return fmt.Sprintf("HTTP %d", e.Status)
	}
}

// parseAPIError builds an APIError from a non-2xx response. Responses
// that are not valid problem documents fall back to the HTTP status.
func parseAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Status != 0 {
		return &apiErr
	}

	return &APIError{
		Title:  http.StatusText(resp.StatusCode),
		Status: resp.StatusCode,
		Detail: strings.TrimSpace(string(body)),
	}
}

func statusIs(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsAuthError reports whether err is a 401 response, typically an
// expired or missing token.
func IsAuthError(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 response.
func IsForbidden(err error) bool {
	return statusIs(err, http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsConflict reports whether err is a 409 response, e.g. an invalid
// status transition or a duplicate username.
func IsConflict(err error) bool {
	return statusIs(err, http.StatusConflict)
}

// IsBadRequest reports whether err is a 400 response.
func IsBadRequest(err error) bool {
	return statusIs(err, http.StatusBadRequest)
}
