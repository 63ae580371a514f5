package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/geometry"
)

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	return &Scene{
		Name:         "test",
		CameraConfig: geometry.CameraConfig{Width: 10, Height: 10, VFov: 1},
	}
}

func addSphere(t *testing.T, s *Scene, center core.Vec3, radius float32, color core.Vec3) {
	t.Helper()
	if err := s.AddSphere(center, radius, color, 10, 0.25); err != nil {
		t.Fatalf("AddSphere: %v", err)
	}
}

func TestScene_FindNearest_MissesEverything(t *testing.T) {
	s := newTestScene(t)
	addSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 0, 0))
	addSphere(t, s, core.NewVec3(5, 0, -10), 1, core.NewVec3(0, 1, 0))
	addSphere(t, s, core.NewVec3(-5, 0, -10), 1, core.NewVec3(0, 0, 1))

	if hit, ok := s.FindNearest(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)); ok {
		t.Errorf("Expected no hit, got %+v", hit)
	}
}

func TestScene_FindNearest_ReturnsClosest(t *testing.T) {
	far := core.NewVec3(0, 0, 1)
	near := core.NewVec3(1, 0, 0)

	// Insert in both orders so the result cannot depend on iteration order
	orders := []struct {
		name  string
		first bool
	}{
		{"far first", true},
		{"near first", false},
	}

	for _, order := range orders {
		t.Run(order.name, func(t *testing.T) {
			s := newTestScene(t)
			if order.first {
				addSphere(t, s, core.NewVec3(0, 0, -20), 2, far)
				addSphere(t, s, core.NewVec3(0, 0, -8), 1, near)
			} else {
				addSphere(t, s, core.NewVec3(0, 0, -8), 1, near)
				addSphere(t, s, core.NewVec3(0, 0, -20), 2, far)
			}

			hit, ok := s.FindNearest(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
			if !ok {
				t.Fatal("Expected hit")
			}
			if hit.Color != near {
				t.Errorf("Expected nearer sphere color %v, got %v", near, hit.Color)
			}
			if math32.Abs(hit.T-7) > 1e-6 {
				t.Errorf("Expected t=7, got %f", hit.T)
			}
			if hit.Point != core.NewVec3(0, 0, -7) {
				t.Errorf("Expected point (0,0,-7), got %v", hit.Point)
			}
			if hit.Normal != core.NewVec3(0, 0, 1) {
				t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
			}
			if hit.Specular != 10 || hit.Reflectivity != 0.25 {
				t.Errorf("Material not copied: %+v", hit)
			}
		})
	}
}

func TestScene_FindNearest_TieKeepsFirst(t *testing.T) {
	s := newTestScene(t)
	first := core.NewVec3(1, 0, 0)
	second := core.NewVec3(0, 1, 0)
	addSphere(t, s, core.NewVec3(0, 0, -10), 1, first)
	addSphere(t, s, core.NewVec3(0, 0, -10), 1, second)

	hit, ok := s.FindNearest(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if hit.Color != first {
		t.Errorf("Expected first sphere to win the tie, got color %v", hit.Color)
	}
}

func TestScene_Occluded(t *testing.T) {
	s := newTestScene(t)
	addSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 1, 1))

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expected  bool
	}{
		{"toward sphere", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), true},
		{"away from sphere", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), false},
		{"past sphere", core.NewVec3(3, 0, 0), core.NewVec3(0, 0, -1), false},
		{"far beyond any light", core.NewVec3(0, 0, 1000), core.NewVec3(0, 0, -1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Occluded(tt.origin, tt.direction); got != tt.expected {
				t.Errorf("Expected occluded=%t, got %t", tt.expected, got)
			}
			_, hit := s.FindNearest(tt.origin, tt.direction)
			if hit != tt.expected {
				t.Errorf("FindNearest disagrees with Occluded: %t vs %t", hit, tt.expected)
			}
		})
	}
}

func TestScene_AddSphereRejectsInvalid(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddSphere(core.NewVec3(0, 0, 0), -1, core.NewVec3(1, 1, 1), 1, 0); err == nil {
		t.Error("Expected error for negative radius")
	}
	if len(s.Spheres) != 0 {
		t.Errorf("Invalid sphere should not be added, have %d", len(s.Spheres))
	}
	if err := s.AddLight(core.NewVec3(0, 0, 0), -2); err == nil {
		t.Error("Expected error for negative intensity")
	}
}

func TestScene_Validate(t *testing.T) {
	empty := newTestScene(t)
	if err := empty.Validate(); err == nil {
		t.Error("Expected error for empty scene")
	}

	withNil := newTestScene(t)
	withNil.Spheres = append(withNil.Spheres, nil)
	if err := withNil.Validate(); err == nil {
		t.Error("Expected error for nil sphere")
	}

	noSize := NewDefaultScene()
	noSize.CameraConfig.Width = 0
	if err := noSize.Validate(); err == nil {
		t.Error("Expected error for zero width")
	}

	if err := NewDefaultScene().Validate(); err != nil {
		t.Errorf("Default scene should validate: %v", err)
	}
}
