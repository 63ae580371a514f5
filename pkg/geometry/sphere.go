package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/df07/go-tiny-raycaster/pkg/core"
)

// Sphere is an analytic sphere with a Phong-style surface description
type Sphere struct {
	Center       core.Vec3
	Radius       float32
	Color        core.Vec3 // Base diffuse color
	Specular     float32   // Specular exponent, higher is a sharper highlight
	Reflectivity float32   // Fraction of color taken from the mirror ray, in [0,1]
}

// NewSphere creates a new sphere, rejecting degenerate parameters
func NewSphere(center core.Vec3, radius float32, color core.Vec3, specular, reflectivity float32) (*Sphere, error) {
	if !(radius > 0) || math32.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: sphere radius must be positive and finite, got %v", core.ErrGeometry, radius)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: sphere center must be finite, got %v", core.ErrGeometry, center)
	}
	if !(specular >= 0) {
		return nil, fmt.Errorf("%w: specular exponent must be non-negative, got %v", core.ErrGeometry, specular)
	}
	if !(reflectivity >= 0 && reflectivity <= 1) {
		return nil, fmt.Errorf("%w: reflectivity must be in [0,1], got %v", core.ErrGeometry, reflectivity)
	}

	return &Sphere{
		Center:       center,
		Radius:       radius,
		Color:        color,
		Specular:     specular,
		Reflectivity: reflectivity,
	}, nil
}

// Intersect returns the distance along the ray to the nearest point of the
// sphere in front of the origin. direction must be unit length.
//
// The near root is preferred; when the origin is inside the sphere (or the
// sphere is straddling it) the far root is used. Distances <= 0 never count
// as a hit. A grazing ray produces a single hit with t0 == t1.
func (s *Sphere) Intersect(origin, direction core.Vec3) (float32, bool) {
	l := s.Center.Subtract(origin)
	tca := l.Dot(direction)
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return 0, false
	}

	thc := math32.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	if t0 <= 0 {
		t0 = t1
	}
	if t0 <= 0 {
		return 0, false
	}
	return t0, true
}

// Normal returns the outward unit normal at a point on the surface
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
