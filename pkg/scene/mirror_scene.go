package scene

import (
	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/geometry"
)

// NewMirrorScene creates two perfect mirrors facing each other across a matte
// sphere, so most primary rays bounce until the depth limit.
func NewMirrorScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Position: core.NewVec3(0, 0, 0),
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		VFov:     DefaultVFov,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:         "mirrors",
		CameraConfig: cameraConfig,
	}

	must(s.AddSphere(core.NewVec3(-4.5, 0, -14), 3, core.NewVec3(1, 1, 1), 500, 1))
	must(s.AddSphere(core.NewVec3(4.5, 0, -14), 3, core.NewVec3(1, 1, 1), 500, 1))
	must(s.AddSphere(core.NewVec3(0, -1, -16), 1.5, core.NewVec3(0.6, 0.2, 0.1), 20, 0))

	must(s.AddLight(core.NewVec3(0, 30, 10), 1.6))
	must(s.AddLight(core.NewVec3(-25, 10, -5), 0.9))

	return s
}
