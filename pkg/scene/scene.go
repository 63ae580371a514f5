package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/geometry"
)

// Scene contains all the elements needed for rendering.
// It is populated once and treated as read-only while rendering.
type Scene struct {
	Name         string
	Spheres      []*geometry.Sphere
	Lights       []geometry.Light
	CameraConfig geometry.CameraConfig
}

// HitRecord describes the nearest surface found along a ray
type HitRecord struct {
	T            float32   // Distance along the ray
	Point        core.Vec3 // Hit point
	Normal       core.Vec3 // Outward unit normal
	Color        core.Vec3
	Specular     float32
	Reflectivity float32
}

// FindNearest returns the closest sphere hit along the ray. Ties keep the
// sphere that appears first in Spheres.
func (s *Scene) FindNearest(origin, direction core.Vec3) (HitRecord, bool) {
	var hit HitRecord
	closest := math32.Inf(1)

	for _, sphere := range s.Spheres {
		t, ok := sphere.Intersect(origin, direction)
		if !ok || t >= closest {
			continue
		}
		closest = t
		point := origin.Add(direction.Multiply(t))
		hit = HitRecord{
			T:            t,
			Point:        point,
			Normal:       sphere.Normal(point),
			Color:        sphere.Color,
			Specular:     sphere.Specular,
			Reflectivity: sphere.Reflectivity,
		}
	}

	return hit, closest < math32.Inf(1)
}

// Occluded reports whether the ray hits any sphere at all. The hit distance
// is not bounded, so a sphere beyond a light still blocks it.
func (s *Scene) Occluded(origin, direction core.Vec3) bool {
	for _, sphere := range s.Spheres {
		if _, ok := sphere.Intersect(origin, direction); ok {
			return true
		}
	}
	return false
}

// AddSphere validates and appends a sphere
func (s *Scene) AddSphere(center core.Vec3, radius float32, color core.Vec3, specular, reflectivity float32) error {
	sphere, err := geometry.NewSphere(center, radius, color, specular, reflectivity)
	if err != nil {
		return err
	}
	s.Spheres = append(s.Spheres, sphere)
	return nil
}

// AddLight validates and appends a point light
func (s *Scene) AddLight(position core.Vec3, intensity float32) error {
	light, err := geometry.NewLight(position, intensity)
	if err != nil {
		return err
	}
	s.Lights = append(s.Lights, light)
	return nil
}

// Validate checks the scene is renderable
func (s *Scene) Validate() error {
	if len(s.Spheres) == 0 {
		return fmt.Errorf("scene %q has no spheres", s.Name)
	}
	for i, sphere := range s.Spheres {
		if sphere == nil {
			return fmt.Errorf("scene %q: sphere %d is nil", s.Name, i)
		}
	}
	if s.CameraConfig.Width <= 0 || s.CameraConfig.Height <= 0 {
		return fmt.Errorf("scene %q: image size must be positive, got %dx%d",
			s.Name, s.CameraConfig.Width, s.CameraConfig.Height)
	}
	return nil
}
