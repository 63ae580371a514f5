package renderer

import (
	"math"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/scene"
)

// Caster defaults
const (
	DefaultMaxDepth               = 4    // Deepest recursion level that still shades a hit
	DefaultBias           float32 = 1e-3 // Offset along the normal for secondary ray origins
	DefaultSpecularWeight float32 = 0.6  // Weight of the white specular highlight
)

// DefaultBackground is returned for rays that escape the scene
var DefaultBackground = core.NewVec3(0.2, 0.7, 0.8)

var white = core.NewVec3(1, 1, 1)

// CasterConfig contains shading configuration
type CasterConfig struct {
	MaxDepth       int       // Rays deeper than this return the background
	Bias           float32   // Shadow and reflection ray offset along the normal
	Background     core.Vec3 // Color of rays that hit nothing
	SpecularWeight float32   // Scale of the specular term
}

// DefaultCasterConfig returns the reference shading configuration
func DefaultCasterConfig() CasterConfig {
	return CasterConfig{
		MaxDepth:       DefaultMaxDepth,
		Bias:           DefaultBias,
		Background:     DefaultBackground,
		SpecularWeight: DefaultSpecularWeight,
	}
}

// CastRay returns the color seen along a ray. direction must be unit length.
//
// The result combines Lambert diffuse and Phong specular terms from every
// unshadowed light with a recursive mirror reflection:
//
//	color*diffuse*(1-k) + white*specular*weight + reflected*k
//
// The specular term is not scaled by (1-k). Colors are not
// clamped.
func CastRay(origin, direction core.Vec3, s *scene.Scene, cfg CasterConfig, depth int) core.Vec3 {
	if depth > cfg.MaxDepth {
		return cfg.Background
	}
	hit, ok := s.FindNearest(origin, direction)
	if !ok {
		return cfg.Background
	}

	diffuse, specular := DirectLighting(s, hit, direction, cfg.Bias)

	reflectDir := core.Reflect(direction, hit.Normal).Normalize()
	reflectOrigin := hit.Point.Add(hit.Normal.Multiply(cfg.Bias))
	reflected := CastRay(reflectOrigin, reflectDir, s, cfg, depth+1)

	return hit.Color.Multiply(diffuse).Multiply(1 - hit.Reflectivity).
		Add(white.Multiply(specular).Multiply(cfg.SpecularWeight)).
		Add(reflected.Multiply(hit.Reflectivity))
}

// DirectLighting sums the diffuse and specular intensity reaching a hit from
// the scene's lights. A light is skipped entirely when anything blocks the
// ray toward it, no matter how far away the blocker is.
func DirectLighting(s *scene.Scene, hit scene.HitRecord, direction core.Vec3, bias float32) (diffuse, specular float32) {
	shadowOrigin := hit.Point.Add(hit.Normal.Multiply(bias))

	for _, light := range s.Lights {
		lightDir := light.Position.Subtract(hit.Point).Normalize()
		if s.Occluded(shadowOrigin, lightDir) {
			continue
		}

		diffuse += light.Intensity * max(0, lightDir.Dot(hit.Normal))

		// Power and accumulation are done in double precision and narrowed once
		reflectDir := core.Reflect(lightDir.Negate(), hit.Normal)
		highlight := math.Pow(float64(max(0, reflectDir.Dot(direction))), float64(hit.Specular))
		specular = float32(float64(specular) + highlight*float64(light.Intensity))
	}

	return diffuse, specular
}

// Caster binds a scene to a shading configuration
type Caster struct {
	scene  *scene.Scene
	config CasterConfig
}

// NewCaster creates a caster for a scene
func NewCaster(s *scene.Scene, config CasterConfig) *Caster {
	return &Caster{scene: s, config: config}
}

// Cast returns the color seen along a primary ray
func (c *Caster) Cast(ray core.Ray) core.Vec3 {
	return CastRay(ray.Origin, ray.Direction, c.scene, c.config, 0)
}

// Config returns the shading configuration
func (c *Caster) Config() CasterConfig {
	return c.config
}
