package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/geometry"
)

// Camera is a pinhole camera at a fixed position looking down -Z
type Camera struct {
	config     geometry.CameraConfig
	tanHalfFov float64
}

// NewCamera creates a pinhole camera
func NewCamera(config geometry.CameraConfig) *Camera {
	return &Camera{
		config:     config,
		tanHalfFov: math.Tan(float64(config.VFov) / 2),
	}
}

// Direction returns the unit direction through the center of pixel (i, j).
// Pixel (0, 0) is the top-left corner.
func (c *Camera) Direction(i, j int) core.Vec3 {
	return c.screenPoint(i, j).Normalize()
}

// screenPoint returns the center of pixel (i, j) on the image plane at z = -1.
// Screen coordinates are computed in double precision and then narrowed.
func (c *Camera) screenPoint(i, j int) core.Vec3 {
	width := float64(c.config.Width)
	height := float64(c.config.Height)

	x := (2*(float64(i)+0.5)/width - 1) * c.tanHalfFov * width / height
	y := -(2*(float64(j)+0.5)/height - 1) * c.tanHalfFov

	return core.NewVec3(float32(x), float32(y), -1)
}

// Validate checks that the corner pixel yields a usable direction, which
// rules out NaN or infinite fields of view.
func (c *Camera) Validate() error {
	if _, err := c.screenPoint(0, 0).NormalizeChecked(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	return nil
}

// GetRay returns the primary ray for pixel (i, j)
func (c *Camera) GetRay(i, j int) core.Ray {
	return core.NewRay(c.config.Position, c.Direction(i, j))
}

// Config returns the camera configuration
func (c *Camera) Config() geometry.CameraConfig {
	return c.config
}
