package api

import (
	"fmt"
	"strings"
)

// Error is the single error type produced by the transport. Status is zero
// when the request never produced an HTTP response.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

// Error returns the human-readable message as reported to the operator.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying network or decode error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// errorPayload is the body convention of the bot API for failed requests:
// {"timestamp": "...", "status": 400, "error": "invalid symbol"}
type errorPayload struct {
	Error any `json:"error"`
}

// resolveMessage picks the operator message for a failed response: the
// payload's error field, then the raw body text, then the status code.
func resolveMessage(status int, body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload.Error.(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return fmt.Sprintf("HTTP %d", status)
}
