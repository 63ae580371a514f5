package output

import (
	"fmt"
	"image"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Thumbnail scales fb down to maxWidth pixels wide, preserving aspect ratio.
// Images already narrower than maxWidth are returned at full size.
func Thumbnail(fb *core.Framebuffer, maxWidth int) image.Image {
	img := fb.ToRGBA()
	if maxWidth <= 0 || fb.Width <= maxWidth {
		return img
	}
	return resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
}

// SaveThumbnail writes a thumbnail of fb to path. Only PNG and JPEG
// extensions are accepted.
func SaveThumbnail(path string, fb *core.Framebuffer, maxWidth int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format != PNG && format != JPEG {
		return fmt.Errorf("%w: thumbnail must be png or jpeg, got %s", ErrOutput, format)
	}

	if err := imaging.Save(Thumbnail(fb, maxWidth), path, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	return nil
}
