package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/geometry"
	"github.com/df07/go-tiny-raycaster/pkg/renderer"
	"github.com/df07/go-tiny-raycaster/pkg/scene"
)

func TestInspectPixel(t *testing.T) {
	sceneObj := scene.NewDefaultScene(geometry.CameraConfig{Width: 80, Height: 60})
	cfg := renderer.DefaultCasterConfig()

	center := inspectPixel(sceneObj, cfg, 40, 30)
	if !center.Hit {
		t.Fatal("Expected the center ray to hit a sphere")
	}
	if center.HitRecord.Color != core.NewVec3(0.3, 0.1, 0.1) {
		t.Errorf("Expected the near red sphere, got color %v", center.HitRecord.Color)
	}

	corner := inspectPixel(sceneObj, cfg, 0, 0)
	if corner.Hit {
		t.Error("Expected the corner ray to miss")
	}
	if corner.Pixel != renderer.DefaultBackground {
		t.Errorf("Expected background, got %v", corner.Pixel)
	}
}

func TestHandleInspect(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/api/inspect?width=80&height=60&x=0&y=0")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.StatusCode, body)
	}
	var miss InspectResponse
	if err := json.Unmarshal(body, &miss); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if miss.Hit || miss.Pixel != "#33b2cc" {
		t.Errorf("Expected background miss, got %+v", miss)
	}

	_, body = get(t, ts, "/api/inspect?width=80&height=60")
	var hit InspectResponse
	if err := json.Unmarshal(body, &hit); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !hit.Hit || hit.Distance <= 0 || hit.Color == "" {
		t.Errorf("Expected a hit at the center, got %+v", hit)
	}

	resp, _ = get(t, ts, "/api/inspect?width=80&height=60&x=80")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for out of range pixel, got %d", resp.StatusCode)
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		color    core.Vec3
		expected string
	}{
		{renderer.DefaultBackground, "#33b2cc"},
		{core.NewVec3(2, -1, 1), "#ff00ff"},
		{core.NewVec3(0, 0, 0), "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := hexColor(tt.color); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
