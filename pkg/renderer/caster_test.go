package renderer

import (
	"testing"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/geometry"
	"github.com/df07/go-tiny-raycaster/pkg/scene"
)

// newTestScene creates an empty 64x48 scene for caster tests
func newTestScene() *scene.Scene {
	return &scene.Scene{
		Name:         "test",
		CameraConfig: geometry.CameraConfig{Width: 64, Height: 48, VFov: scene.DefaultVFov},
	}
}

func mustAddSphere(t *testing.T, s *scene.Scene, center core.Vec3, radius float32, color core.Vec3, specular, reflectivity float32) {
	t.Helper()
	if err := s.AddSphere(center, radius, color, specular, reflectivity); err != nil {
		t.Fatalf("AddSphere: %v", err)
	}
}

func mustAddLight(t *testing.T, s *scene.Scene, position core.Vec3, intensity float32) {
	t.Helper()
	if err := s.AddLight(position, intensity); err != nil {
		t.Fatalf("AddLight: %v", err)
	}
}

func TestCastRay_MissReturnsBackground(t *testing.T) {
	s := newTestScene()
	mustAddSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 0, 0), 10, 0)
	mustAddLight(t, s, core.NewVec3(0, 10, 0), 1)

	got := CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), s, DefaultCasterConfig(), 0)
	if got != DefaultBackground {
		t.Errorf("Expected background %v, got %v", DefaultBackground, got)
	}
}

func TestCastRay_DepthBeyondLimitReturnsBackground(t *testing.T) {
	s := newTestScene()
	mustAddSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 0, 0), 10, 0)

	cfg := DefaultCasterConfig()
	got := CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), s, cfg, cfg.MaxDepth+1)
	if got != cfg.Background {
		t.Errorf("Expected background beyond max depth, got %v", got)
	}
}

func TestCastRay_NoLightsNoReflectionIsBlack(t *testing.T) {
	s := newTestScene()
	mustAddSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 0, 0), 10, 0)

	got := CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), s, DefaultCasterConfig(), 0)
	if got != (core.Vec3{}) {
		t.Errorf("Expected black for an unlit matte surface, got %v", got)
	}
}

func TestCastRay_HeadOnLight(t *testing.T) {
	// Light on the view axis between camera and sphere: N·L = 1, and the
	// mirrored light direction points back at the camera, so the specular
	// term (measured against the view direction itself) is zero.
	s := newTestScene()
	mustAddSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(0.5, 0.25, 1), 10, 0)
	mustAddLight(t, s, core.NewVec3(0, 0, -1), 2)

	got := CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), s, DefaultCasterConfig(), 0)

	expected := core.NewVec3(1, 0.5, 2)
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestDirectLighting_SpecularTerm(t *testing.T) {
	s := newTestScene()
	mustAddSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 1, 1), 1, 0)
	mustAddLight(t, s, core.NewVec3(7, 0, -1.86), 1)

	// Ray grazing the right edge of the sphere: the mirrored light direction
	// points further down -Z, along the view ray
	direction := core.NewVec3(0, 0, -1)
	hit, ok := s.FindNearest(core.NewVec3(0.99, 0, 0), direction)
	if !ok {
		t.Fatal("Expected hit")
	}
	diffuse, specular := DirectLighting(s, hit, direction, DefaultBias)
	if diffuse <= 0 {
		t.Errorf("Expected positive diffuse, got %v", diffuse)
	}
	if specular <= 0 {
		t.Errorf("Expected positive specular, got %v", specular)
	}
}

func TestDirectLighting_Shadowing(t *testing.T) {
	build := func(withOccluder bool) *scene.Scene {
		s := newTestScene()
		mustAddSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 1, 1), 10, 0)
		if withOccluder {
			// Sits on the line between the lit point (0,0,-9) and the light
			mustAddSphere(t, s, core.NewVec3(0, 0, -5), 1, core.NewVec3(1, 1, 1), 10, 0)
		}
		mustAddLight(t, s, core.NewVec3(0, 0, 0), 1.5)
		return s
	}

	origin := core.NewVec3(0, 0, -7.5)
	direction := core.NewVec3(0, 0, -1)

	shadowed := build(true)
	hit, ok := shadowed.FindNearest(origin, direction)
	if !ok {
		t.Fatal("Expected to hit the lit sphere")
	}
	diffuse, specular := DirectLighting(shadowed, hit, direction, DefaultBias)
	if diffuse != 0 || specular != 0 {
		t.Errorf("Expected full shadow, got diffuse=%v specular=%v", diffuse, specular)
	}

	open := build(false)
	hit, ok = open.FindNearest(origin, direction)
	if !ok {
		t.Fatal("Expected to hit the lit sphere")
	}
	diffuse, specular = DirectLighting(open, hit, direction, DefaultBias)
	if diffuse <= 0 || diffuse+specular <= 0 {
		t.Errorf("Expected light contribution without occluder, got diffuse=%v specular=%v", diffuse, specular)
	}
}

func TestDirectLighting_OccluderBeyondLightStillShadows(t *testing.T) {
	s := newTestScene()
	mustAddSphere(t, s, core.NewVec3(0, 0, -10), 1, core.NewVec3(1, 1, 1), 10, 0)
	// Light at z=0, blocker behind it at z=+20: the shadow ray is not capped
	mustAddSphere(t, s, core.NewVec3(0, 0, 20), 1, core.NewVec3(1, 1, 1), 10, 0)
	mustAddLight(t, s, core.NewVec3(0, 0, 0), 1)

	direction := core.NewVec3(0, 0, -1)
	hit, ok := s.FindNearest(core.NewVec3(0, 0, -2), direction)
	if !ok {
		t.Fatal("Expected hit")
	}
	diffuse, specular := DirectLighting(s, hit, direction, DefaultBias)
	if diffuse != 0 || specular != 0 {
		t.Errorf("Expected light to be blocked, got diffuse=%v specular=%v", diffuse, specular)
	}
}

// newMirrorCorridor places two spheres on the X axis so a ray along the axis
// bounces between them forever
func newMirrorCorridor(t *testing.T, reflectivity float32) *scene.Scene {
	s := newTestScene()
	mustAddSphere(t, s, core.NewVec3(-3, 0, 0), 1, core.NewVec3(1, 0, 0), 10, reflectivity)
	mustAddSphere(t, s, core.NewVec3(3, 0, 0), 1, core.NewVec3(0, 1, 0), 10, reflectivity)
	return s
}

func TestCastRay_MirrorRecursionTerminates(t *testing.T) {
	s := newMirrorCorridor(t, 1)

	cfg := DefaultCasterConfig()
	got := CastRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), s, cfg, 0)
	if got != cfg.Background {
		t.Errorf("Expected background after exhausting depth, got %v", got)
	}
}

func TestCastRay_PartialMirrorTint(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth int
		scale    float32
	}{
		{"depth 0", 0, 0.5},
		{"depth 2", 2, 0.125},
		{"reference depth", DefaultMaxDepth, 1.0 / 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMirrorCorridor(t, 0.5)

			cfg := DefaultCasterConfig()
			cfg.MaxDepth = tt.maxDepth
			got := CastRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), s, cfg, 0)

			expected := cfg.Background.Multiply(tt.scale)
			if got != expected {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestCastRay_Idempotent(t *testing.T) {
	s := scene.NewDefaultScene()
	cam := NewCamera(s.CameraConfig)
	caster := NewCaster(s, DefaultCasterConfig())

	pixels := [][2]int{{400, 300}, {250, 310}, {620, 180}, {0, 0}, {799, 599}}
	for _, p := range pixels {
		ray := cam.GetRay(p[0], p[1])
		first := caster.Cast(ray)
		second := caster.Cast(ray)
		if first != second {
			t.Errorf("pixel %v: %v != %v", p, first, second)
		}
	}
}
