package fonts

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font/basicfont"
)

// FromFace converts the first range of a basicfont face into a Font.
//
// Glyph cells are face.Width columns by Ascent+Descent rows, stacked
// face.Height rows apart in the mask. Metrics trim the
// blank columns on each side of every glyph; a blank glyph keeps half its
// width so that spaces still advance the pen.
func FromFace(face *basicfont.Face) (*Font, error) {
	if face == nil || face.Mask == nil || len(face.Ranges) == 0 {
		return nil, errors.New("fonts: face has no glyphs")
	}
	h := face.Ascent + face.Descent
	if h <= 0 || h > MaxHeight {
		return nil, fmt.Errorf("fonts: face is %d rows high, at most %d supported", h, MaxHeight)
	}
	if face.Height < h {
		return nil, fmt.Errorf("fonts: face cells are %d rows apart, glyphs are %d rows high", face.Height, h)
	}
	if face.Width <= 0 || face.Width > 0xff {
		return nil, fmt.Errorf("fonts: unsupported face width %d", face.Width)
	}
	rr := face.Ranges[0]
	if rr.High <= rr.Low {
		return nil, errors.New("fonts: face has an empty range")
	}

	f := &Font{
		Width:  face.Width,
		Height: h,
		Start:  rr.Low,
		End:    rr.High - 1,
	}
	n := int(rr.High - rr.Low)
	f.Data = make([]uint16, 0, n*f.Width)
	f.Metric = make([][2]uint8, 0, n)
	origin := face.Mask.Bounds().Min
	for i := 0; i < n; i++ {
		top := origin.Add(image.Pt(0, (rr.Offset+i)*face.Height))
		first, last := -1, -1
		for col := 0; col < f.Width; col++ {
			var dots uint16
			for row := 0; row < h; row++ {
				if _, _, _, a := face.Mask.At(top.X+col, top.Y+row).RGBA(); a >= 0x8000 {
					dots |= 1 << uint(h-1-row)
				}
			}
			if dots != 0 {
				if first < 0 {
					first = col
				}
				last = col
			}
			f.Data = append(f.Data, dots)
		}
		if first < 0 {
			f.Metric = append(f.Metric, [2]uint8{0, uint8(f.Width / 2)})
			continue
		}
		f.Metric = append(f.Metric, [2]uint8{uint8(first), uint8(f.Width - 1 - last)})
	}
	return f, nil
}
