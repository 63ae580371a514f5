package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/renderer"
	"github.com/disintegration/imaging"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	EnableCompression: true,
}

// StreamEvent is one JSON message on the render stream
type StreamEvent struct {
	Type string          `json:"type"` // "console", "tile", "error", "complete"
	Data json.RawMessage `json:"data"`
}

// TileUpdate represents a single finished tile
type TileUpdate struct {
	TileX      int    `json:"tileX"` // Left edge in pixels
	TileY      int    `json:"tileY"` // Top edge in pixels
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // 1-based
	TotalTiles int    `json:"totalTiles"`
}

// CompleteUpdate is sent once the last tile is done
type CompleteUpdate struct {
	Scene  string `json:"scene"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Stats  Stats  `json:"stats"`
}

// handleStream renders tile by tile, streaming each finished tile over a
// WebSocket. The render is cancelled when the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader: the client sends nothing, but reading processes close frames
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	// Single writer goroutine owns the connection
	events := make(chan StreamEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeEvents(conn, events, cancel)
	}()

	consoleChan, webLogger := s.setupConsoleLogging()
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		streamConsoleMessages(ctx, consoleChan, events)
	}()

	final := s.runStream(ctx, req, webLogger, events)

	close(consoleChan)
	consoleWG.Wait()
	if final != nil {
		sendEvent(ctx, events, *final)
	}
	close(events)
	<-writerDone

	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
}

// runStream performs the render, emitting tile events, and returns the
// final event to send (complete or error), or nil if the client is gone.
func (s *Server) runStream(ctx context.Context, req *RenderRequest, logger core.Logger, events chan<- StreamEvent) *StreamEvent {
	raytracer, err := newRaytracer(req, logger)
	if err != nil {
		return errorEvent(err.Error())
	}

	logger.Printf("Rendering %s at %dx%d (%d tiles)\n", req.Scene, req.Width, req.Height, len(raytracer.Tiles()))

	fb := core.NewFramebuffer(raytracer.Width(), raytracer.Height())
	stats, err := raytracer.RenderTiles(ctx, fb, func(result renderer.TileResult) error {
		event, err := tileEvent(result)
		if err != nil {
			return err
		}
		if !sendEvent(ctx, events, event) {
			return ctx.Err()
		}
		return nil
	})
	if ctx.Err() != nil {
		s.logger.Printf("Stream render cancelled: %v\n", ctx.Err())
		return nil
	}
	if err != nil {
		return errorEvent(fmt.Sprintf("Render error: %v", err))
	}

	logger.Printf("Render completed in %v\n", stats.Elapsed)

	data, err := json.Marshal(CompleteUpdate{
		Scene:  req.Scene,
		Width:  req.Width,
		Height: req.Height,
		Stats:  newStats(stats),
	})
	if err != nil {
		return errorEvent(err.Error())
	}
	return &StreamEvent{Type: "complete", Data: data}
}

// tileEvent encodes a finished tile as a PNG tile update
func tileEvent(result renderer.TileResult) (StreamEvent, error) {
	imageData, err := imageToBase64PNG(result.Image())
	if err != nil {
		return StreamEvent{}, fmt.Errorf("failed to encode tile: %w", err)
	}

	bounds := result.Tile.Bounds
	data, err := json.Marshal(TileUpdate{
		TileX:      bounds.Min.X,
		TileY:      bounds.Min.Y,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		ImageData:  imageData,
		TileNumber: result.TileNumber,
		TotalTiles: result.TotalTiles,
	})
	if err != nil {
		return StreamEvent{}, err
	}
	return StreamEvent{Type: "tile", Data: data}, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func errorEvent(message string) *StreamEvent {
	data, _ := json.Marshal(message)
	return &StreamEvent{Type: "error", Data: data}
}

// sendEvent queues an event for the writer, giving up if ctx is done
func sendEvent(ctx context.Context, events chan<- StreamEvent, event StreamEvent) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

// writeEvents writes every queued event to the connection. After a write
// failure the render is cancelled and remaining events are discarded.
func (s *Server) writeEvents(conn *websocket.Conn, events <-chan StreamEvent, cancel context.CancelFunc) {
	for event := range events {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(event); err != nil {
			cancel()
			for range events {
			}
			return
		}
	}
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan, s.logger)
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- StreamEvent) {
	for msg := range consoleChan {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}
		sendEvent(ctx, events, StreamEvent{Type: "console", Data: data})
	}
}
