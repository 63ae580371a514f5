package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/output"
	"github.com/df07/go-tiny-raycaster/pkg/renderer"
	"github.com/df07/go-tiny-raycaster/pkg/scene"
)

// Request limits
const (
	MinDimension = 1
	MaxDimension = 2000
	MaxDepth     = 16
)

// Server handles web requests for the ray caster
type Server struct {
	port   int
	logger core.Logger
}

// NewServer creates a new web server. Server-side render messages go to
// logger; a nil logger writes to stdout.
func NewServer(port int, logger core.Logger) *Server {
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}
	return &Server{port: port, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string        `json:"scene"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	MaxDepth int           `json:"maxDepth"`
	TileSize int           `json:"tileSize"`
	Format   output.Format `json:"format"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TilesRendered   int     `json:"tilesRendered"`
	TotalTiles      int     `json:"totalTiles"`
	ElapsedMs       int64   `json:"elapsedMs"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		TilesRendered:   stats.TilesRendered,
		TotalTiles:      stats.TotalTiles,
		ElapsedMs:       stats.Elapsed.Milliseconds(),
		PixelsPerSecond: stats.PixelsPerSecond(),
	}
}

// Handler returns the HTTP handler serving every API endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/stream", s.handleStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenes":  scene.Names(),
		"default": "default",
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": MinDimension, "max": MaxDimension},
			"height":   map[string]int{"min": MinDimension, "max": MaxDimension},
			"maxDepth": map[string]int{"min": 0, "max": MaxDepth},
		},
	})
}

// parseRenderRequest parses and validates request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default"}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}
	if !scene.Exists(req.Scene) {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", scene.DefaultWidth, MinDimension, MaxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", scene.DefaultHeight, MinDimension, MaxDimension); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", renderer.DefaultMaxDepth, 0, MaxDepth); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(values, "tileSize", renderer.DefaultTileSize, 8, 256); err != nil {
		return nil, err
	}

	req.Format = output.PNG
	if format := values.Get("format"); format != "" {
		if req.Format, err = output.FormatFromPath("image." + format); err != nil {
			return nil, fmt.Errorf("invalid format: %s", format)
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// newRaytracer builds the scene and raytracer for a request
func newRaytracer(req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	sceneObj, err := scene.Create(req.Scene, geometryOverride(req))
	if err != nil {
		return nil, err
	}

	options := renderer.DefaultRenderOptions()
	options.TileSize = req.TileSize
	options.Caster.MaxDepth = req.MaxDepth
	return renderer.NewRaytracer(sceneObj, options, logger)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
