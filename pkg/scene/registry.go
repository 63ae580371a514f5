package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-tiny-raycaster/pkg/geometry"
)

var builtinScenes = map[string]func(...geometry.CameraConfig) *Scene{
	"default": NewDefaultScene,
	"mirrors": NewMirrorScene,
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds a built-in scene by name, applying optional camera overrides
func Create(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	constructor, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %q (available: %v)", name, Names())
	}
	return constructor(cameraOverrides...), nil
}

// Exists reports whether name is a built-in scene
func Exists(name string) bool {
	_, ok := builtinScenes[name]
	return ok
}
