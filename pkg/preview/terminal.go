package preview

import (
	"fmt"

	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/gdamore/tcell/v2"
)

// upperHalfBlock shows the top pixel as foreground and the bottom pixel as background
const upperHalfBlock = '▀'

// Draw paints fb onto screen, two pixels per cell, nearest-neighbour scaled
// to fill the whole screen. Show must be called afterwards to flush.
func Draw(screen tcell.Screen, fb *core.Framebuffer) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 || fb.Width == 0 || fb.Height == 0 {
		return
	}

	pixelRows := rows * 2
	for y := 0; y < rows; y++ {
		top := (2 * y) * fb.Height / pixelRows
		bottom := (2*y + 1) * fb.Height / pixelRows
		for x := 0; x < cols; x++ {
			i := x * fb.Width / cols
			style := tcell.StyleDefault.
				Foreground(pixelColor(fb, i, top)).
				Background(pixelColor(fb, i, bottom))
			screen.SetContent(x, y, upperHalfBlock, nil, style)
		}
	}
}

func pixelColor(fb *core.Framebuffer, i, j int) tcell.Color {
	r, g, b := fb.RGB(i + j*fb.Width)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Show displays fb in the terminal until a key is pressed
func Show(fb *core.Framebuffer) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer screen.Fini()

	Draw(screen, fb)
	screen.Show()

	for {
		switch screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Clear()
			Draw(screen, fb)
			screen.Sync()
		case *tcell.EventKey:
			return nil
		case nil:
			return nil
		}
	}
}
