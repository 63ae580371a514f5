package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-tiny-raycaster/pkg/core"
)

// ConsoleMessage is one log line of a render, as streamed to the client
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger for a single render. Each message goes to
// the server's logger and, when there is room, to the render's console channel.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	server      core.Logger
}

// NewWebLogger creates a logger for one render. server may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, server core.Logger) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		server:      server,
	}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if wl.server != nil {
		wl.server.Printf("[%s] %s", wl.renderID, message)
	}

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     levelOf(message),
	}:
	default:
		// Client is not keeping up; drop rather than stall the render
	}
}

// levelOf picks a console level from the message prefix
func levelOf(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.HasPrefix(lower, "error"):
		return "error"
	case strings.HasPrefix(lower, "warning"):
		return "warning"
	}
	return "info"
}
