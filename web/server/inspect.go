package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/renderer"
	"github.com/df07/go-tiny-raycaster/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool       `json:"hit"`
	Point        [3]float32 `json:"point"`
	Normal       [3]float32 `json:"normal"`
	Distance     float32    `json:"distance"`
	Color        string     `json:"color"` // Surface color as #rrggbb
	Specular     float32    `json:"specular"`
	Reflectivity float32    `json:"reflectivity"`
	Diffuse      float32    `json:"diffuse"`      // Summed diffuse light intensity
	SpecularTerm float32    `json:"specularTerm"` // Summed highlight intensity
	Pixel        string     `json:"pixel"`        // Final shaded pixel as #rrggbb
}

// InspectResult holds what the primary ray through a pixel sees
type InspectResult struct {
	Hit       bool
	HitRecord scene.HitRecord
	Pixel     core.Vec3
	Diffuse   float32
	Specular  float32
}

// inspectPixel casts the primary ray through pixel (x, y) and reports the
// nearest surface together with its direct lighting and the final color.
func inspectPixel(sceneObj *scene.Scene, cfg renderer.CasterConfig, x, y int) InspectResult {
	camera := renderer.NewCamera(sceneObj.CameraConfig)
	ray := camera.GetRay(x, y)

	result := InspectResult{
		Pixel: renderer.CastRay(ray.Origin, ray.Direction, sceneObj, cfg, 0),
	}

	hit, ok := sceneObj.FindNearest(ray.Origin, ray.Direction)
	if !ok {
		return result
	}
	result.Hit = true
	result.HitRecord = hit
	result.Diffuse, result.Specular = renderer.DirectLighting(sceneObj, hit, ray.Direction, cfg.Bias)
	return result
}

// handleInspect reports what the camera sees through one pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	req, err := parseRenderRequest(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	x, err := parseIntParam(values, "x", req.Width/2, 0, req.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(values, "y", req.Height/2, 0, req.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := scene.Create(req.Scene, geometryOverride(req))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg := renderer.DefaultCasterConfig()
	cfg.MaxDepth = req.MaxDepth

	result := inspectPixel(sceneObj, cfg, x, y)
	response := InspectResponse{
		Hit:   result.Hit,
		Pixel: hexColor(result.Pixel),
	}
	if result.Hit {
		hit := result.HitRecord
		response.Point = [3]float32{hit.Point.X, hit.Point.Y, hit.Point.Z}
		response.Normal = [3]float32{hit.Normal.X, hit.Normal.Y, hit.Normal.Z}
		response.Distance = hit.T
		response.Color = hexColor(hit.Color)
		response.Specular = hit.Specular
		response.Reflectivity = hit.Reflectivity
		response.Diffuse = result.Diffuse
		response.SpecularTerm = result.Specular
	}

	writeJSON(w, http.StatusOK, response)
}

// hexColor formats a color the way the image writer quantizes it
func hexColor(c core.Vec3) string {
	fb := core.Framebuffer{Width: 1, Height: 1, Pixels: []core.Vec3{c}}
	r, g, b := fb.RGB(0)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
