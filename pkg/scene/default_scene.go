package scene

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/geometry"
)

// Reference image settings
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultVFov   = math32.Pi / 2
)

// NewDefaultScene creates the four sphere, three light reference scene
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
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
		Name:         "default",
		CameraConfig: cameraConfig,
	}

	// Values are constants known to be valid
	must(s.AddSphere(core.NewVec3(-3, 0, -16), 2, core.NewVec3(0.4, 0.4, 0.3), 50, 0.2))
	must(s.AddSphere(core.NewVec3(-1, -1.5, -12), 2, core.NewVec3(0.3, 0.1, 0.1), 10, 0.4))
	must(s.AddSphere(core.NewVec3(1.5, -0.5, -18), 3, core.NewVec3(0.3, 0.4, 0.3), 100, 0.3))
	must(s.AddSphere(core.NewVec3(7, 5, -18), 4, core.NewVec3(0.1, 0.2, 0.4), 300, 0.1))

	must(s.AddLight(core.NewVec3(-20, 20, 20), 1.5))
	must(s.AddLight(core.NewVec3(30, 50, -25), 1.8))
	must(s.AddLight(core.NewVec3(30, 20, 30), 1.7))

	return s
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
