// Package canvas provides drivers.Displayer implementations that draw into
// memory: an image.RGBA for the host, and a tinygl pixel buffer that is
// flushed to a device screen.
package canvas

import (
	"image"
	"image/color"

	"github.com/aykevl/tinygl/pixel"
)

// Image is a drivers.Displayer drawing into an *image.RGBA.
type Image struct {
	img *image.RGBA
}

// NewImage returns a new Image with the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (i *Image) Size() (x, y int16) {
	b := i.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel ignores coordinates outside of the image.
func (i *Image) SetPixel(x, y int16, c color.RGBA) {
	i.img.SetRGBA(int(x), int(y), c)
}

func (i *Image) Display() error { return nil }

// At returns the color of the pixel at (x, y).
func (i *Image) At(x, y int) color.RGBA {
	return i.img.RGBAAt(x, y)
}

// RGBA returns the underlying image.
func (i *Image) RGBA() *image.RGBA {
	return i.img
}

// Target is a device screen accepting whole pixel buffers, such as the
// displays provided by github.com/aykevl/board.
type Target[T pixel.Color] interface {
	Size() (width, height int16)
	DrawBitmap(x, y int16, buf pixel.Image[T]) error
	Display() error
}

// Bitmap is a drivers.Displayer drawing into a pixel buffer in the native color
// format of its Target. The buffer is sent to the Target by Display.
type Bitmap[T pixel.Color] struct {
	dst  Target[T]
	buf  pixel.Image[T]
	w, h int16
}

// NewBitmap returns a new Bitmap covering the whole of dst.
func NewBitmap[T pixel.Color](dst Target[T]) *Bitmap[T] {
	w, h := dst.Size()
	return &Bitmap[T]{
		dst: dst,
		buf: pixel.NewImage[T](int(w), int(h)),
		w:   w,
		h:   h,
	}
}

func (b *Bitmap[T]) Size() (x, y int16) {
	return b.w, b.h
}

// SetPixel ignores coordinates outside of the buffer.
func (b *Bitmap[T]) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	b.buf.Set(int(x), int(y), pixel.NewColor[T](c.R, c.G, c.B))
}

func (b *Bitmap[T]) Display() error {
	if err := b.dst.DrawBitmap(0, 0, b.buf); nil != err {
		return err
	}
	return b.dst.Display()
}
