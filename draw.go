package ht1632c

import (
	"image"
	"image/color"

	"github.com/flavioheleno/ht1632c/bicolor"
	"github.com/flavioheleno/ht1632c/fonts"
)

// Clip restricts drawing to x0 <= x < x1, y0 <= y < y1 in logical
// coordinates, within the display. A negative bound selects the matching
// display edge. Reversed bounds give an empty clip.
func (d *Dev) Clip(x0, y0, x1, y1 int) {
	b := d.Bounds()
	if x0 < 0 {
		x0 = b.Min.X
	}
	if y0 < 0 {
		y0 = b.Min.Y
	}
	if x1 < 0 {
		x1 = b.Max.X
	}
	if y1 < 0 {
		y1 = b.Max.Y
	}
	d.clip = image.Rectangle{Min: image.Pt(x0, y0), Max: image.Pt(x1, y1)}.Intersect(b)
}

// ClipReset lifts the clip rectangle.
func (d *Dev) ClipReset() {
	d.Clip(-1, -1, -1, -1)
}

// Plot sets pixel (x, y) to c: plane k is lit when bit k of c is set and
// cleared otherwise. Pixels outside the clip rectangle are ignored.
func (d *Dev) Plot(x, y int, c bicolor.Color) {
	if d.fb == nil {
		return
	}
	cl, ok := d.geo.locate(image.Pt(x, y), d.clip)
	if !ok {
		return
	}
	d.fb.update(cl.chip, cl.addr, c.Has(0), cl.mask)
	if d.geo.wraps(cl) {
		d.fb.update(cl.chip, cl.addr+d.geo.chipSize-2, c.Has(0), cl.mask)
	}
	for plane := 1; plane < d.geo.colors; plane++ {
		d.fb.update(cl.chip, cl.addr+plane*d.geo.planeSize, c.Has(plane), cl.mask)
	}
}

// At returns the colour of pixel (x, y) in the framebuffer, ignoring the clip
// rectangle.
func (d *Dev) At(x, y int) color.Color {
	if d.fb == nil {
		return bicolor.Black
	}
	cl, ok := d.geo.locate(image.Pt(x, y), d.Bounds())
	if !ok {
		return bicolor.Black
	}
	var c bicolor.Color
	for plane := 0; plane < d.geo.colors; plane++ {
		if d.fb.bit(cl.chip, cl.addr+plane*d.geo.planeSize, cl.mask) {
			c |= 1 << uint(plane)
		}
	}
	return c
}

// Line draws a line from (x0, y0) to (x1, y1), both ends included.
func (d *Dev) Line(x0, y0, x1, y1 int, c bicolor.Color) {
	dx, sx := abs(x1-x0), 1
	if x0 >= x1 {
		sx = -1
	}
	dy, sy := -abs(y1-y0), 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		d.Plot(x, y, c)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Box fills the rectangle with corners (x0, y0) and (x1, y1), both included.
func (d *Dev) Box(x0, y0, x1, y1 int, c bicolor.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d.Plot(x, y, c)
		}
	}
}

// DrawGlyph draws ch with its top left corner at (x, y) and returns the pen
// position for the next glyph, x plus the font width. Background pixels are
// painted bg unless bg is bicolor.Transparent. Unmapped characters draw
// nothing and return x.
func (d *Dev) DrawGlyph(x, y int, ch rune, f *fonts.Font, fg, bg bicolor.Color) int {
	glyph := f.Glyph(ch)
	if glyph == nil {
		return x
	}
	for col, dots := range glyph {
		d.column(x+col, y, dots, f.Height, fg, bg)
	}
	return x + f.Width
}

// DrawGlyphMetric draws ch like DrawGlyph but drops the blank columns listed
// in the font metrics and paints one spacing column after the glyph. It
// returns x plus f.Advance(ch).
func (d *Dev) DrawGlyphMetric(x, y int, ch rune, f *fonts.Font, fg, bg bicolor.Color) int {
	glyph := f.Glyph(ch)
	if glyph == nil {
		return x
	}
	left, right := f.Trim(ch)
	for col := left; col < f.Width-right; col++ {
		d.column(x+col-left, y, glyph[col], f.Height, fg, bg)
	}
	if bg != bicolor.Transparent {
		d.column(x+f.Width-right-left, y, 0, f.Height, fg, bg)
	}
	return x + f.Advance(ch)
}

// DrawString draws s with DrawGlyph and returns the final pen position.
func (d *Dev) DrawString(x, y int, s string, f *fonts.Font, fg, bg bicolor.Color) int {
	for _, ch := range s {
		x = d.DrawGlyph(x, y, ch, f, fg, bg)
	}
	return x
}

// DrawStringMetric draws s with DrawGlyphMetric and returns the final pen
// position.
func (d *Dev) DrawStringMetric(x, y int, s string, f *fonts.Font, fg, bg bicolor.Color) int {
	for _, ch := range s {
		x = d.DrawGlyphMetric(x, y, ch, f, fg, bg)
	}
	return x
}

// column draws one glyph column of height rows; bit 0 of dots is the bottom
// row.
func (d *Dev) column(x, y int, dots uint16, height int, fg, bg bicolor.Color) {
	for row := height - 1; row >= 0; row-- {
		if dots&1 != 0 {
			d.Plot(x, y+row, fg)
		} else if bg != bicolor.Transparent {
			d.Plot(x, y+row, bg)
		}
		dots >>= 1
	}
}

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	b := d.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel implements drivers.Displayer. c is converted with bicolor.Model.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	d.Plot(int(x), int(y), bicolor.Model.Convert(c).(bicolor.Color))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
