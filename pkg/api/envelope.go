package api

import "encoding/json"

// Envelope is the response shape shared by all resource endpoints:
// {statusCodes, response} where response is either a single record or a
// paginated listing. Message is populated on failure bodies.
type Envelope struct {
	StatusCodes int             `json:"statusCodes"`
	Response    json.RawMessage `json:"response"`
	Message     string          `json:"message,omitempty"`
}

// ErrorMessage extracts the server-supplied message from a failure body.
// Returns "" when the body is not JSON or carries no message, letting callers
// fall back to a fixed per-operation string.
func ErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
