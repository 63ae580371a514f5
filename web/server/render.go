package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/df07/go-tiny-raycaster/pkg/geometry"
	"github.com/df07/go-tiny-raycaster/pkg/output"
)

// handleRender renders the whole image and returns it in the requested format
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	raytracer, err := newRaytracer(req, s.logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fb, stats, err := raytracer.Render(r.Context())
	if err != nil {
		// Client went away; nothing useful can be written
		log.Printf("Render aborted: %v", err)
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, fb, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// geometryOverride converts the requested size into a camera override
func geometryOverride(req *RenderRequest) geometry.CameraConfig {
	return geometry.CameraConfig{Width: req.Width, Height: req.Height}
}
