package api

import (
	"encoding/json"
	"strings"
)

// ChatRequest is the body POSTed to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the success body.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the optional error body. FastAPI-style backends send a
// string detail, validation failures send a list, so the raw value is kept.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// DetailText flattens the detail to display text. Missing, null, false and
// zero details count as absent.
func (e ErrorResponse) DetailText() string {
	raw := strings.TrimSpace(string(e.Detail))
	switch raw {
	case "", "null", "false", "0":
		return ""
	}

	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	return raw
}
