package core

import (
	"image"
	"image/color"
)

// Framebuffer holds one linear color per pixel, row-major, top row first.
// Colors are stored unclamped; clamping happens when converting to bytes.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Vec3, width*height),
	}
}

// Set stores the color of pixel (i, j)
func (fb *Framebuffer) Set(i, j int, c Vec3) {
	fb.Pixels[i+j*fb.Width] = c
}

// At returns the color of pixel (i, j)
func (fb *Framebuffer) At(i, j int) Vec3 {
	return fb.Pixels[i+j*fb.Width]
}

// RGB returns the 8-bit channels of pixel index idx. Each channel is clamped
// to [0,1], scaled by 255 and truncated.
func (fb *Framebuffer) RGB(idx int) (r, g, b byte) {
	c := fb.Pixels[idx].Clamp(0, 1)
	return byte(255 * c.X), byte(255 * c.Y), byte(255 * c.Z)
}

// ToRGBA converts the framebuffer to an opaque image
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			r, g, b := fb.RGB(i + j*fb.Width)
			img.SetRGBA(i, j, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// SubImage converts the pixels inside bounds to an image whose origin is
// bounds.Min, used to ship finished tiles.
func (fb *Framebuffer) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, fb.Width, fb.Height))
	img := image.NewRGBA(bounds)
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			r, g, b := fb.RGB(i + j*fb.Width)
			img.SetRGBA(i, j, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
