package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrOutput is returned, wrapped, for any failure creating or writing an image
var ErrOutput = errors.New("image output failed")

// Format identifies an on-disk image encoding
type Format int

const (
	PPM Format = iota
	PPMGzip
	PPMZstd
	PNG
	JPEG
)

// JPEGQuality is used for .jpg/.jpeg output
const JPEGQuality = 95

func (f Format) String() string {
	switch f {
	case PPM:
		return "ppm"
	case PPMGzip:
		return "ppm.gz"
	case PPMZstd:
		return "ppm.zst"
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ContentType returns the MIME type of the encoding
func (f Format) ContentType() string {
	switch f {
	case PPMGzip:
		return "application/gzip"
	case PPMZstd:
		return "application/zstd"
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	}
	return "image/x-portable-pixmap"
}

// FormatFromPath picks the encoding from the file extension
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".ppm.gz") {
		return PPMGzip, nil
	}
	if strings.HasSuffix(lower, ".ppm.zst") {
		return PPMZstd, nil
	}
	switch filepath.Ext(lower) {
	case ".ppm":
		return PPM, nil
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	}
	return 0, fmt.Errorf("%w: unsupported extension for %q", ErrOutput, path)
}

// Encode writes fb to w in the given format
func Encode(w io.Writer, fb *core.Framebuffer, format Format) error {
	switch format {
	case PPM:
		return WritePPM(w, fb)
	case PPMGzip:
		zw, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutput, err)
		}
		if err := WritePPM(zw, fb); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("%w: closing gzip stream: %v", ErrOutput, err)
		}
		return nil
	case PPMZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutput, err)
		}
		if err := WritePPM(zw, fb); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("%w: closing zstd stream: %v", ErrOutput, err)
		}
		return nil
	case PNG:
		if err := imaging.Encode(w, fb.ToRGBA(), imaging.PNG); err != nil {
			return fmt.Errorf("%w: encoding png: %v", ErrOutput, err)
		}
		return nil
	case JPEG:
		if err := imaging.Encode(w, fb.ToRGBA(), imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
			return fmt.Errorf("%w: encoding jpeg: %v", ErrOutput, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown format %v", ErrOutput, format)
}

// Save writes fb to path, choosing the encoder from the extension.
// Parent directories are created as needed.
func Save(path string, fb *core.Framebuffer) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating directory: %v", ErrOutput, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %v", ErrOutput, path, cerr)
		}
	}()

	return Encode(file, fb, format)
}
