package bicolor

import (
	"image"
	"image/color"
	"strconv"
)

// Color is a colour-plane mask: bit k lights the pixel on plane k.
type Color uint8

// Named colours of a two-plane board.
const (
	Black  Color = 0
	Red    Color = 1 << 0
	Green  Color = 1 << 1
	Orange Color = Red | Green

	// Transparent leaves background pixels untouched when drawing text.
	Transparent Color = 0xff
)

// RGBA implements color.Color.
//
// Only the red and green planes contribute; Transparent is fully transparent.
func (c Color) RGBA() (r, g, b, a uint32) {
	if c == Transparent {
		return 0, 0, 0, 0
	}
	switch c & Orange {
	case Red:
		return 0xffff, 0, 0, 0xffff
	case Green:
		return 0, 0xffff, 0, 0xffff
	case Orange:
		return 0xffff, 0x8000, 0, 0xffff
	}
	return 0, 0, 0, 0xffff
}

// Has reports whether plane k is lit.
func (c Color) Has(plane int) bool {
	return c&(1<<uint(plane)) != 0
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Orange:
		return "Orange"
	case Transparent:
		return "Transparent"
	}
	return "Color(" + strconv.Itoa(int(c)) + ")"
}

// toColor converts any color.Color to Color.
func toColor(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, _, a := c.RGBA()
	if a < 0x8000 {
		return Black
	}
	// Undo premultiplication so dim but opaque colours keep their hue.
	r = r * 0xffff / a
	g = g * 0xffff / a
	var v Color
	if r >= 0x8000 {
		v |= Red
	}
	if g >= 0x8000 {
		v |= Green
	}
	return v
}

// Model converts colours to Color.
var Model = color.ModelFunc(toColor)

// Image is an in-memory image of Color values, one byte per pixel.
type Image struct {
	Pix    []Color         // Pixel data, row-major
	Stride int             // Pixels per row
	Rect   image.Rectangle // Image bounds
}

// NewImage returns a new Image with the given bounds, filled with Black.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Image{Rect: r}
	}
	return &Image{
		Pix:    make([]Color, w*h),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns Model.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *Image) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// ColorAt returns the Color of the pixel at (x, y), Black when out of bounds.
func (p *Image) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	return p.Pix[p.offset(x, y)]
}

// Set implements draw.Image.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetColor(x, y, Model.Convert(c).(Color))
}

// SetColor sets the pixel at (x, y) without colour conversion.
func (p *Image) SetColor(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.Pix[p.offset(x, y)] = c
}

func (p *Image) offset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}
