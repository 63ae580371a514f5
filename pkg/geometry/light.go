package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/df07/go-tiny-raycaster/pkg/core"
)

// Light is a point light with a scalar intensity
type Light struct {
	Position  core.Vec3
	Intensity float32
}

// NewLight creates a point light, rejecting negative or non-finite intensity
func NewLight(position core.Vec3, intensity float32) (Light, error) {
	if !(intensity >= 0) || math32.IsInf(intensity, 0) {
		return Light{}, fmt.Errorf("%w: light intensity must be non-negative and finite, got %v", core.ErrGeometry, intensity)
	}
	if !position.IsFinite() {
		return Light{}, fmt.Errorf("%w: light position must be finite, got %v", core.ErrGeometry, position)
	}
	return Light{Position: position, Intensity: intensity}, nil
}
