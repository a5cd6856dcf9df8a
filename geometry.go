package ht1632c

import (
	"fmt"
	"image"
)

// Rotation is a clockwise rotation of the logical display in quarter turns.
type Rotation uint8

// Supported rotations.
const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// geometry is the addressing derived from Opts at Init time.
//
// Device coordinates are the unrotated panel coordinates: width spans every
// panel side by side, height is one panel.
type geometry struct {
	rotation      Rotation
	width, height int // Device size, before rotation
	chipW, chipH  int
	colors        int
	chips         int
	planeSize     int // Bytes per colour plane of one chip
	chipSize      int // Bytes per framebuffer segment
}

func newGeometry(o *Opts) geometry {
	planeSize := o.ChipWidth * o.ChipHeight / 8
	return geometry{
		rotation:  o.Rotation & 3,
		width:     o.PanelWidth * o.Panels,
		height:    o.PanelHeight,
		chipW:     o.ChipWidth,
		chipH:     o.ChipHeight,
		colors:    o.Colors,
		chips:     o.ChipsPerPanel * o.Panels,
		planeSize: planeSize,
		chipSize:  planeSize*o.Colors + 2,
	}
}

// check verifies that the chip interleave gives every chip-sized block its
// own chip and that every pixel lands inside its chip's segment.
func (g *geometry) check() error {
	if g.width%g.chipW != 0 || g.height%g.chipH != 0 {
		return fmt.Errorf("%w: %dx%d display is not tiled by %dx%d chips", ErrInvalidConfig, g.width, g.height, g.chipW, g.chipH)
	}
	used := make(map[int]bool)
	for yc := 0; yc < g.height/g.chipH; yc++ {
		for xc := 0; xc < g.width/g.chipW; xc++ {
			chip := chipIndex(xc, yc)
			if chip >= g.chips || used[chip] {
				return fmt.Errorf("%w: chip block (%d, %d) has no chip of its own among %d", ErrInvalidConfig, xc, yc, g.chips)
			}
			used[chip] = true
		}
	}
	// The bottom right pixel of a chip has the highest address.
	lastAddr := g.chipW - 1 + g.chipH/8 - 1 + (g.chipH-1+headerBits)/8
	if lastAddr+(g.colors-1)*g.planeSize >= g.chipSize {
		return fmt.Errorf("%w: %dx%d chip does not fit in a %d-byte segment", ErrInvalidConfig, g.chipW, g.chipH, g.chipSize)
	}
	return nil
}

// bounds returns the logical extent, after rotation.
func (g *geometry) bounds() image.Rectangle {
	if g.rotation&1 != 0 {
		return image.Rect(0, 0, g.height, g.width)
	}
	return image.Rect(0, 0, g.width, g.height)
}

// toDevice maps a logical point to device coordinates.
//
// Odd rotations swap the axes. The x axis is mirrored when the two rotation
// bits differ and the y axis when the high bit is set, which yields 90°
// steps of the same handedness.
func (g *geometry) toDevice(p image.Point) image.Point {
	r := g.rotation
	x, y := p.X, p.Y
	if r&1 != 0 {
		x, y = y, x
	}
	if r&1 != r>>1 {
		x = g.width - 1 - x
	}
	if r&2 != 0 {
		y = g.height - 1 - y
	}
	return image.Pt(x, y)
}

// chipIndex returns the chip driving the block in chip column xc and chip row
// yc. Chips are wired two columns apart: a 2x2 panel holds 0 1 over 2 3 and
// the next panel starts at 4.
func chipIndex(xc, yc int) int {
	return xc + (xc &^ 1) + yc*2
}

// cell is the framebuffer bit holding plane 0 of a pixel.
type cell struct {
	chip int
	addr int
	mask byte
}

// locate returns the plane 0 cell of logical pixel p, or false when p lies
// outside clip.
func (g *geometry) locate(p image.Point, clip image.Rectangle) (cell, bool) {
	if !p.In(clip) {
		return cell{}, false
	}
	d := g.toDevice(p)
	chip := chipIndex(d.X/g.chipW, d.Y/g.chipH)
	xb := d.X%g.chipW + g.chipH/8 - 1
	yb := d.Y%g.chipH + headerBits
	return cell{
		chip: chip,
		addr: xb + yb/8,
		mask: 0x80 >> uint(yb%8),
	}, true
}

// wraps reports whether c also has to be written at the tail of its segment,
// chipSize-2 bytes further. This holds for the data bits that share a byte
// with the header, as laid out by the HT1632C datasheet.
func (g *geometry) wraps(c cell) bool {
	return c.addr <= 1 && c.mask > 2
}
