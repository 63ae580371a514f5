package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-tiny-raycaster/pkg/core"
)

// WritePPM writes fb as a binary P6 image: the ASCII header
// "P6\n<width> <height>\n255\n" followed by one RGB triple per pixel,
// row-major, top row first.
func WritePPM(w io.Writer, fb *core.Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("%w: writing header: %v", ErrOutput, err)
	}

	row := make([]byte, 3*fb.Width)
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			r, g, b := fb.RGB(i + j*fb.Width)
			row[3*i], row[3*i+1], row[3*i+2] = r, g, b
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("%w: writing row %d: %v", ErrOutput, j, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flushing: %v", ErrOutput, err)
	}
	return nil
}
