// Package sse provides Server-Sent Events support for streaming responses.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// EventType represents the type of SSE event.
type EventType string

const (
	// EventMessage is a conversation message event.
	EventMessage EventType = "message"
	// EventError is an error event.
	EventError EventType = "error"
	// EventPing is a keep-alive event.
	EventPing EventType = "ping"
)

// Writer writes Server-Sent Events to an HTTP response.
type Writer struct {
	writer  http.ResponseWriter
	flusher http.Flusher
}

// NewWriter creates a new SSE writer.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	return &Writer{
		writer:  w,
		flusher: flusher,
	}, nil
}

// WriteEvent writes an SSE event with the given type and data.
func (w *Writer) WriteEvent(eventType EventType, data string) error {
	_, err := fmt.Fprintf(w.writer, "event: %s\ndata: %s\n\n", eventType, data)
	if err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	w.flusher.Flush()
	return nil
}

// WriteEventWithID writes an SSE event with an ID.
func (w *Writer) WriteEventWithID(eventType EventType, id string, data string) error {
	_, err := fmt.Fprintf(w.writer, "id: %s\nevent: %s\ndata: %s\n\n", id, eventType, data)
	if err != nil {
		return fmt.Errorf("failed to write event with id: %w", err)
	}
	w.flusher.Flush()
	return nil
}

// WriteJSON writes an SSE event with JSON-encoded data.
func (w *Writer) WriteJSON(eventType EventType, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	return w.WriteEvent(eventType, string(jsonData))
}

// WriteJSONWithID writes an SSE event with an ID and JSON-encoded data.
func (w *Writer) WriteJSONWithID(eventType EventType, id string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	return w.WriteEventWithID(eventType, id, string(jsonData))
}

// WritePing writes a keep-alive event.
func (w *Writer) WritePing() error {
	return w.WriteEvent(EventPing, "{}")
}

// ErrorEvent represents an error event.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WriteError writes an error event.
func (w *Writer) WriteError(code, message string, details string) error {
	return w.WriteJSON(EventError, &ErrorEvent{
		Code:    code,
		Message: message,
		Details: details,
	})
}
