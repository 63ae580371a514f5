package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/scene"
)

// RenderOptions contains driver configuration
type RenderOptions struct {
	TileSize int          // Edge length of a tile (0 = DefaultTileSize)
	Caster   CasterConfig // Shading configuration
}

// DefaultRenderOptions returns the reference configuration
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		TileSize: DefaultTileSize,
		Caster:   DefaultCasterConfig(),
	}
}

// TileResult describes a finished tile
type TileResult struct {
	Tile        Tile
	TileNumber  int               // 1-based position in render order
	TotalTiles  int               // Tiles in the grid
	Framebuffer *core.Framebuffer // Framebuffer being filled; pixels inside Tile.Bounds are final
}

// Image returns the finished tile as an image positioned at its bounds
func (tr TileResult) Image() *image.RGBA {
	return tr.Framebuffer.SubImage(tr.Tile.Bounds)
}

// Raytracer drives the caster over every pixel of the scene's camera.
// Tiles are rendered one after another on the calling goroutine.
type Raytracer struct {
	scene   *scene.Scene
	camera  *Camera
	caster  *Caster
	options RenderOptions
	tiles   []Tile
	logger  core.Logger
}

// NewRaytracer creates a raytracer for a validated scene
func NewRaytracer(s *scene.Scene, options RenderOptions, logger core.Logger) (*Raytracer, error) {
	if s == nil {
		return nil, fmt.Errorf("scene is nil")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if options.TileSize <= 0 {
		options.TileSize = DefaultTileSize
	}
	if options.Caster.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must be non-negative, got %d", options.Caster.MaxDepth)
	}
	if logger == nil {
		logger = NopLogger{}
	}

	cam := s.CameraConfig
	camera := NewCamera(cam)
	if err := camera.Validate(); err != nil {
		return nil, err
	}

	return &Raytracer{
		scene:   s,
		camera:  camera,
		caster:  NewCaster(s, options.Caster),
		options: options,
		tiles:   NewTileGrid(cam.Width, cam.Height, options.TileSize),
		logger:  logger,
	}, nil
}

// Width returns the image width
func (rt *Raytracer) Width() int { return rt.camera.config.Width }

// Height returns the image height
func (rt *Raytracer) Height() int { return rt.camera.config.Height }

// Tiles returns the tile grid in render order
func (rt *Raytracer) Tiles() []Tile { return rt.tiles }

// RenderBounds renders pixels within the specified bounds into fb
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, fb *core.Framebuffer) RenderStats {
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			fb.Set(i, j, rt.caster.Cast(rt.camera.GetRay(i, j)))
		}
	}
	return RenderStats{TotalPixels: bounds.Dx() * bounds.Dy(), TilesRendered: 1}
}

// RenderTiles renders every tile into fb, invoking callback after each one.
// Cancellation is checked between tiles; a callback error stops the render.
func (rt *Raytracer) RenderTiles(ctx context.Context, fb *core.Framebuffer, callback func(TileResult) error) (RenderStats, error) {
	if fb.Width != rt.Width() || fb.Height != rt.Height() {
		return RenderStats{}, fmt.Errorf("framebuffer is %dx%d, camera is %dx%d",
			fb.Width, fb.Height, rt.Width(), rt.Height())
	}

	startTime := time.Now()
	stats := RenderStats{TotalTiles: len(rt.tiles)}

	for n, tile := range rt.tiles {
		select {
		case <-ctx.Done():
			rt.logger.Printf("Rendering cancelled after %d of %d tiles\n", n, len(rt.tiles))
			stats.Elapsed = time.Since(startTime)
			return stats, ctx.Err()
		default:
		}

		stats.add(rt.RenderBounds(tile.Bounds, fb))

		if callback != nil {
			result := TileResult{Tile: tile, TileNumber: n + 1, TotalTiles: len(rt.tiles), Framebuffer: fb}
			if err := callback(result); err != nil {
				stats.Elapsed = time.Since(startTime)
				return stats, fmt.Errorf("tile %d: %w", tile.ID, err)
			}
		}
	}

	stats.Elapsed = time.Since(startTime)
	return stats, nil
}

// Render renders the whole image
func (rt *Raytracer) Render(ctx context.Context) (*core.Framebuffer, RenderStats, error) {
	rt.logger.Printf("Rendering %q at %dx%d (%d tiles, max depth %d)...\n",
		rt.scene.Name, rt.Width(), rt.Height(), len(rt.tiles), rt.options.Caster.MaxDepth)

	fb := core.NewFramebuffer(rt.Width(), rt.Height())
	stats, err := rt.RenderTiles(ctx, fb, nil)
	if err != nil {
		return nil, stats, err
	}

	rt.logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Elapsed, stats.PixelsPerSecond())
	return fb, stats, nil
}
