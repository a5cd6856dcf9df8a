// Package fonts describes the bitmap fonts drawn by the ht1632c driver.
//
// A Font covers a contiguous range of character codes. Each glyph is stored as
// Width column words; within a column, bit 0 is the bottom row and bit
// Height-1 is the top row. An optional metric table gives, per glyph, how many
// blank columns may be trimmed on the left and on the right for proportional
// spacing.
package fonts

import (
	"errors"
	"fmt"
)

// MaxHeight is the tallest glyph a column word can hold.
const MaxHeight = 16

// Font is an immutable bitmap font.
type Font struct {
	Width  int  // Columns per glyph
	Height int  // Rows per glyph, at most MaxHeight
	Start  rune // First mapped character code
	End    rune // Last mapped character code, inclusive

	// Data holds Width column words per glyph, glyphs in code order.
	Data []uint16
	// Metric holds the (left, right) trim of each glyph. It may be nil, in
	// which case no column is trimmed.
	Metric [][2]uint8
}

// Validate checks that the tables match the declared dimensions.
func (f *Font) Validate() error {
	if f.Width <= 0 {
		return errors.New("fonts: width must be positive")
	}
	if f.Height <= 0 || f.Height > MaxHeight {
		return fmt.Errorf("fonts: height must be between 1 and %d", MaxHeight)
	}
	if f.End < f.Start {
		return errors.New("fonts: empty character range")
	}
	n := int(f.End-f.Start) + 1
	if len(f.Data) != n*f.Width {
		return fmt.Errorf("fonts: data has %d columns, want %d", len(f.Data), n*f.Width)
	}
	if f.Metric == nil {
		return nil
	}
	if len(f.Metric) != n {
		return fmt.Errorf("fonts: metric has %d entries, want %d", len(f.Metric), n)
	}
	for i, m := range f.Metric {
		if int(m[0])+int(m[1]) > f.Width {
			return fmt.Errorf("fonts: glyph %#x trims %d+%d columns of %d", f.Start+rune(i), m[0], m[1], f.Width)
		}
	}
	return nil
}

// Contains reports whether c is mapped by the font.
func (f *Font) Contains(c rune) bool {
	return c >= f.Start && c <= f.End
}

// Glyph returns the column words of c, or nil when c is not mapped.
func (f *Font) Glyph(c rune) []uint16 {
	if !f.Contains(c) {
		return nil
	}
	i := int(c-f.Start) * f.Width
	return f.Data[i : i+f.Width]
}

// Trim returns the number of blank columns on each side of c.
func (f *Font) Trim(c rune) (left, right int) {
	if !f.Contains(c) || f.Metric == nil {
		return 0, 0
	}
	m := f.Metric[c-f.Start]
	return int(m[0]), int(m[1])
}

// GlyphWidth returns the fixed-pitch advance of c: the font width, or 0 when c
// is not mapped.
func (f *Font) GlyphWidth(c rune) int {
	if !f.Contains(c) {
		return 0
	}
	return f.Width
}

// Advance returns the proportional advance of c: its trimmed width plus one
// spacing column, or 0 when c is not mapped.
func (f *Font) Advance(c rune) int {
	if !f.Contains(c) {
		return 0
	}
	left, right := f.Trim(c)
	return f.Width - left - right + 1
}

// StringWidth returns the sum of the proportional advances of s.
func (f *Font) StringWidth(s string) int {
	w := 0
	for _, c := range s {
		w += f.Advance(c)
	}
	return w
}

// Sym4x6 is a 4x6 symbol font mapping codes 0x00 to 0x02. Code 0x00 is a
// narrow blank; 0x01 and 0x02 are mirror images of each other.
var Sym4x6 = &Font{
	Width:  4,
	Height: 6,
	Start:  0x00,
	End:    0x02,
	Data: []uint16{
		0x00, 0x00, 0x00, 0x00, // 0x00
		0x18, 0x26, 0x19, 0x06, // 0x01
		0x06, 0x19, 0x26, 0x18, // 0x02
	},
	Metric: [][2]uint8{
		{2, 1},
		{0, 0},
		{0, 0},
	},
}
