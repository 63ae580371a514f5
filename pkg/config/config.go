package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/df07/go-tiny-raycaster/pkg/geometry"
	"github.com/df07/go-tiny-raycaster/pkg/renderer"
	"github.com/df07/go-tiny-raycaster/pkg/scene"
)

const (
	// DefaultScene is the built-in reference scene.
	DefaultScene = "default"
	// DefaultVFovDegrees is the vertical field of view of the reference camera.
	DefaultVFovDegrees = 90
	// DefaultOutput is where the CLI writes the image.
	DefaultOutput = "out.ppm"
	// DefaultThumbnailWidth bounds thumbnail width when a thumbnail is requested.
	DefaultThumbnailWidth = 200
	// DefaultS3Region is used when uploads are enabled without a region.
	DefaultS3Region = "us-east-1"

	// MaxDimension caps width and height.
	MaxDimension = 8192
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RAYCASTER_"

// Config captures every tunable of a render run.
type Config struct {
	Scene          string
	Width          int
	Height         int
	VFovDegrees    float64
	Output         string
	Thumbnail      string // Optional thumbnail path (png or jpeg)
	ThumbnailWidth int
	TileSize       int
	MaxDepth       int
	Bias           float64
	S3Bucket       string // Upload is enabled when set
	S3Key          string // Defaults to the output file name
	S3Region       string
	Preview        bool
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Scene:          DefaultScene,
		Width:          scene.DefaultWidth,
		Height:         scene.DefaultHeight,
		VFovDegrees:    DefaultVFovDegrees,
		Output:         DefaultOutput,
		ThumbnailWidth: DefaultThumbnailWidth,
		TileSize:       renderer.DefaultTileSize,
		MaxDepth:       renderer.DefaultMaxDepth,
		Bias:           float64(renderer.DefaultBias),
		S3Region:       DefaultS3Region,
	}
}

// FromEnv applies RAYCASTER_* overrides from getenv on top of Default.
// Every invalid override is reported in a single error.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	var problems []string

	lookup := func(name string) string {
		return strings.TrimSpace(getenv(EnvPrefix + name))
	}
	parseInt := func(name string, dst *int) {
		raw := lookup(name)
		if raw == "" {
			return
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s%s must be an integer, got %q", EnvPrefix, name, raw))
			return
		}
		*dst = value
	}
	parseFloat := func(name string, dst *float64) {
		raw := lookup(name)
		if raw == "" {
			return
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s%s must be a number, got %q", EnvPrefix, name, raw))
			return
		}
		*dst = value
	}
	parseString := func(name string, dst *string) {
		if raw := lookup(name); raw != "" {
			*dst = raw
		}
	}

	parseString("SCENE", &cfg.Scene)
	parseInt("WIDTH", &cfg.Width)
	parseInt("HEIGHT", &cfg.Height)
	parseFloat("FOV", &cfg.VFovDegrees)
	parseString("OUTPUT", &cfg.Output)
	parseString("THUMBNAIL", &cfg.Thumbnail)
	parseInt("THUMBNAIL_WIDTH", &cfg.ThumbnailWidth)
	parseInt("TILE_SIZE", &cfg.TileSize)
	parseInt("MAX_DEPTH", &cfg.MaxDepth)
	parseFloat("BIAS", &cfg.Bias)
	parseString("S3_BUCKET", &cfg.S3Bucket)
	parseString("S3_KEY", &cfg.S3Key)
	parseString("S3_REGION", &cfg.S3Region)

	if raw := lookup("PREVIEW"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%sPREVIEW must be a boolean value, got %q", EnvPrefix, raw))
		} else {
			cfg.Preview = value
		}
	}

	if len(problems) > 0 {
		return cfg, errors.New(strings.Join(problems, "; "))
	}
	return cfg, nil
}

// Validate reports every out-of-range setting in one error.
func (c Config) Validate() error {
	var problems []string

	if !scene.Exists(c.Scene) {
		problems = append(problems, fmt.Sprintf("unknown scene %q (available: %s)", c.Scene, strings.Join(scene.Names(), ", ")))
	}
	if c.Width <= 0 || c.Width > MaxDimension {
		problems = append(problems, fmt.Sprintf("width must be in [1, %d], got %d", MaxDimension, c.Width))
	}
	if c.Height <= 0 || c.Height > MaxDimension {
		problems = append(problems, fmt.Sprintf("height must be in [1, %d], got %d", MaxDimension, c.Height))
	}
	if !(c.VFovDegrees > 0 && c.VFovDegrees < 180) {
		problems = append(problems, fmt.Sprintf("fov must be in (0, 180) degrees, got %g", c.VFovDegrees))
	}
	if c.Output == "" {
		problems = append(problems, "output path must not be empty")
	}
	if c.Thumbnail != "" && c.ThumbnailWidth <= 0 {
		problems = append(problems, fmt.Sprintf("thumbnail width must be positive, got %d", c.ThumbnailWidth))
	}
	if c.TileSize <= 0 {
		problems = append(problems, fmt.Sprintf("tile size must be positive, got %d", c.TileSize))
	}
	if c.MaxDepth < 0 {
		problems = append(problems, fmt.Sprintf("max depth must be non-negative, got %d", c.MaxDepth))
	}
	if !(c.Bias >= 0) {
		problems = append(problems, fmt.Sprintf("bias must be non-negative, got %g", c.Bias))
	}
	if c.S3Bucket != "" && c.S3Region == "" {
		problems = append(problems, "s3 region is required when a bucket is set")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// CasterConfig returns the shading settings.
func (c Config) CasterConfig() renderer.CasterConfig {
	cfg := renderer.DefaultCasterConfig()
	cfg.MaxDepth = c.MaxDepth
	cfg.Bias = float32(c.Bias)
	return cfg
}

// RenderOptions returns the driver settings.
func (c Config) RenderOptions() renderer.RenderOptions {
	return renderer.RenderOptions{
		TileSize: c.TileSize,
		Caster:   c.CasterConfig(),
	}
}

// CameraConfig returns the camera override applied to the selected scene.
// A 90 degree field of view maps to exactly the reference pi/2.
func (c Config) CameraConfig() geometry.CameraConfig {
	var vfov float32 = scene.DefaultVFov
	if c.VFovDegrees != DefaultVFovDegrees {
		vfov = float32(c.VFovDegrees) * math32.Pi / 180
	}
	return geometry.CameraConfig{
		Width:  c.Width,
		Height: c.Height,
		VFov:   vfov,
	}
}

// UploadKey returns the object key for the rendered image.
func (c Config) UploadKey() string {
	if c.S3Key != "" {
		return c.S3Key
	}
	return filepath.Base(c.Output)
}
