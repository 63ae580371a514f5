package geometry

import "github.com/df07/go-tiny-raycaster/pkg/core"

// CameraConfig describes a pinhole camera looking down -Z
type CameraConfig struct {
	Position core.Vec3 // Camera position in world space
	Width    int       // Image width in pixels
	Height   int       // Image height in pixels
	VFov     float32   // Vertical field of view in radians
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Position != (core.Vec3{}) {
		result.Position = override.Position
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	return result
}
