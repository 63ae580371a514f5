package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int           // Pixels rendered
	TilesRendered int           // Tiles finished
	TotalTiles    int           // Tiles in the grid
	Elapsed       time.Duration // Wall time spent rendering
}

// add merges the statistics of one tile
func (s *RenderStats) add(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.TilesRendered += tile.TilesRendered
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Elapsed.Seconds()
}
