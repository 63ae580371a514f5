package server

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// recordingLogger collects every formatted message
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func TestWebLogger_ForwardsToServerLogger(t *testing.T) {
	server := &recordingLogger{}
	logger := NewWebLogger("render-1", nil, server)

	logger.Printf("Rendering %s at %dx%d\n", "mirrors", 800, 600)

	lines := server.Lines()
	if len(lines) != 1 || lines[0] != "[render-1] Rendering mirrors at 800x600\n" {
		t.Errorf("Unexpected server log lines %q", lines)
	}
}

func TestWebLogger_SendsConsoleMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-2", messageChan, nil)

	logger.Printf("Render completed in %v\n", time.Second)
	logger.Printf("Error: %s\n", "tile 3 failed")

	tests := []struct {
		message string
		level   string
	}{
		{"Render completed in 1s\n", "info"},
		{"Error: tile 3 failed\n", "error"},
	}

	for _, tt := range tests {
		select {
		case msg := <-messageChan:
			if msg.Message != tt.message || msg.Level != tt.level || msg.RenderID != "render-2" {
				t.Errorf("Expected %q (%s), got %+v", tt.message, tt.level, msg)
			}
			if time.Since(msg.Timestamp) > time.Second {
				t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
			}
		default:
			t.Fatalf("Missing console message %q", tt.message)
		}
	}
}

func TestWebLogger_FullChannelStillLogsToServer(t *testing.T) {
	server := &recordingLogger{}
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-3", messageChan, server)

	for i := 1; i <= 3; i++ {
		logger.Printf("Message %d\n", i)
	}

	if got := len(messageChan); got != 1 {
		t.Errorf("Expected one buffered console message, got %d", got)
	}
	if got := len(server.Lines()); got != 3 {
		t.Errorf("Expected every message on the server logger, got %d", got)
	}
}

func TestWebLogger_NilTargets(t *testing.T) {
	// Neither target set; must not panic
	NewWebLogger("render-4", nil, nil).Printf("ignored\n")
}

func TestConsoleMessage_JSONSerialization(t *testing.T) {
	msg := ConsoleMessage{
		RenderID:  "render-5",
		Message:   "Test message",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     "info",
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	expected := `{"renderId":"render-5","message":"Test message","timestamp":"2024-01-02T03:04:05Z","level":"info"}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}

func TestHandleStream_LogsThroughServerLogger(t *testing.T) {
	server := &recordingLogger{}
	ts := newTestServerWithLogger(t, server)

	conn, _, err := websocketDial(ts, "width=16&height=16")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	readUntilComplete(t, conn)

	var rendering bool
	for _, line := range server.Lines() {
		if strings.HasPrefix(line, "[render-") && strings.Contains(line, "Rendering default at 16x16") {
			rendering = true
		}
	}
	if !rendering {
		t.Errorf("Expected the stream render to log through the server logger, got %q", server.Lines())
	}
}
