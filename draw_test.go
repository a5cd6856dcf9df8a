package ht1632c

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/flavioheleno/ht1632c/bicolor"
	"github.com/flavioheleno/ht1632c/fonts"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// lit returns the pixels of dev that are not black, in row order.
func lit(dev *Dev) map[image.Point]bicolor.Color {
	pixels := make(map[image.Point]bicolor.Color)
	b := dev.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := dev.At(x, y).(bicolor.Color); c != bicolor.Black {
				pixels[image.Pt(x, y)] = c
			}
		}
	}
	return pixels
}

func TestPlotSingleChip(t *testing.T) {
	dev, _ := newTestDev(t, &singleChipOpts)
	if dev.Width() != 16 || dev.Height() != 8 {
		t.Fatalf("size = %dx%d, want 16x8", dev.Width(), dev.Height())
	}

	dev.Plot(0, 0, bicolor.Green)
	seg := dev.fb.segment(0)
	if seg[17] != 0x20 {
		t.Errorf("plane 1 byte = %#02x, want 0x20", seg[17])
	}
	if seg[1] != 0 || seg[33] != 0 {
		t.Errorf("plane 0 bytes = %#02x %#02x, want 0", seg[1], seg[33])
	}

	dev.Plot(0, 0, bicolor.Red)
	if seg[1] != 0x20 || seg[33] != 0x20 || seg[17] != 0 {
		t.Errorf("red pixel = %#02x %#02x %#02x, want 0x20 0x20 0", seg[1], seg[33], seg[17])
	}
	if seg[0] != 0xa0 {
		t.Errorf("header = %#02x, want 0xa0", seg[0])
	}
}

func TestPlotKeepsNeighbours(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	dev.Plot(0, 1, bicolor.Orange)
	dev.Plot(0, 2, bicolor.Orange)
	dev.Plot(0, 1, bicolor.Black)
	want := map[image.Point]bicolor.Color{{0, 2}: bicolor.Orange}
	got := lit(dev)
	if len(got) != len(want) || got[image.Pt(0, 2)] != bicolor.Orange {
		t.Errorf("lit = %v, want %v", got, want)
	}
	seg := dev.fb.segment(0)
	if seg[1] != 0x08 || seg[33] != 0x08 {
		t.Errorf("plane 0 bytes = %#02x %#02x, want 0x08 0x08", seg[1], seg[33])
	}
}

func TestPlotAllColours(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	for _, c := range []bicolor.Color{bicolor.Black, bicolor.Red, bicolor.Green, bicolor.Orange} {
		dev.Plot(9, 12, c)
		if got := dev.At(9, 12); got != c {
			t.Errorf("At after Plot(%v) = %v", c, got)
		}
	}
}

func TestPlotOutside(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {32, 0}, {0, 16}, {1000, 1000}} {
		dev.Plot(p.X, p.Y, bicolor.Orange)
	}
	if got := lit(dev); len(got) != 0 {
		t.Errorf("lit = %v, want nothing", got)
	}
}

func TestClip(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	dev.Clip(2, 3, 5, -1)
	if got, want := dev.clip, image.Rect(2, 3, 5, 16); got != want {
		t.Errorf("clip = %v, want %v", got, want)
	}
	dev.Box(0, 0, 31, 15, bicolor.Red)
	if got, want := len(lit(dev)), 3*13; got != want {
		t.Errorf("lit pixels = %d, want %d", got, want)
	}
	if dev.At(1, 3) != bicolor.Black || dev.At(5, 3) != bicolor.Black || dev.At(2, 2) != bicolor.Black {
		t.Error("pixels outside the clip were drawn")
	}

	dev.ClipReset()
	if got, want := dev.clip, dev.Bounds(); got != want {
		t.Errorf("clip = %v after ClipReset, want %v", got, want)
	}
	dev.Plot(0, 0, bicolor.Green)
	if got := dev.At(0, 0); got != bicolor.Green {
		t.Errorf("At(0, 0) = %v after ClipReset, want Green", got)
	}
}

func TestClipBeyondDisplay(t *testing.T) {
	tests := []struct {
		name     string
		rotation Rotation
		clip     image.Rectangle
		points   []image.Point
	}{
		{"rotate 0", Rotate0, image.Rect(0, 0, 40, 16), []image.Point{{35, 0}, {32, 15}, {39, 3}}},
		{"rotate 90", Rotate90, image.Rect(0, 0, 16, 40), []image.Point{{0, 35}, {15, 32}, {3, 39}}},
		{"rotate 180", Rotate180, image.Rect(0, 0, 48, 24), []image.Point{{40, 20}, {0, 16}}},
		{"rotate 270", Rotate270, image.Rect(0, 0, 24, 48), []image.Point{{20, 40}, {16, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOpts
			o.Rotation = tt.rotation
			dev, _ := newTestDev(t, &o)
			dev.Clip(tt.clip.Min.X, tt.clip.Min.Y, tt.clip.Max.X, tt.clip.Max.Y)
			if got, want := dev.clip, dev.Bounds(); got != want {
				t.Errorf("clip = %v, want %v", got, want)
			}
			for _, p := range tt.points {
				dev.Plot(p.X, p.Y, bicolor.Red)
			}
			dev.Box(0, 0, 50, 50, bicolor.Green)
			if got, want := len(lit(dev)), 32*16; got != want {
				t.Errorf("lit pixels = %d, want %d", got, want)
			}
			for p, c := range lit(dev) {
				if c != bicolor.Green {
					t.Errorf("%v = %v, want Green", p, c)
				}
			}
		})
	}
}

func TestClipReversed(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	dev.Clip(10, 0, 2, 16)
	if !dev.clip.Empty() {
		t.Errorf("clip = %v, want empty", dev.clip)
	}
	dev.Plot(5, 3, bicolor.Red)
	dev.Box(0, 0, 31, 15, bicolor.Red)
	if got := lit(dev); len(got) != 0 {
		t.Errorf("lit = %v, want nothing", got)
	}

	dev.Clip(4, 9, 8, 2)
	dev.Plot(5, 5, bicolor.Red)
	if got := lit(dev); len(got) != 0 {
		t.Errorf("lit = %v, want nothing", got)
	}
}

func TestClipResetIdempotent(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	dev.Clip(3, 3, 6, 6)
	dev.ClipReset()
	once := dev.clip
	dev.Box(0, 0, 31, 15, bicolor.Orange)
	first := append([]byte(nil), dev.fb.buf...)

	dev.Clear()
	dev.Clip(3, 3, 6, 6)
	dev.ClipReset()
	dev.ClipReset()
	if dev.clip != once {
		t.Errorf("clip = %v after two resets, want %v", dev.clip, once)
	}
	dev.Box(0, 0, 31, 15, bicolor.Orange)
	if !bytes.Equal(dev.fb.buf, first) {
		t.Errorf("framebuffer after two resets = % x, want % x", dev.fb.buf, first)
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           []image.Point
	}{
		{"point", 3, 3, 3, 3, []image.Point{{3, 3}}},
		{"horizontal", 1, 2, 4, 2, []image.Point{{1, 2}, {2, 2}, {3, 2}, {4, 2}}},
		{"vertical up", 0, 3, 0, 0, []image.Point{{0, 0}, {0, 1}, {0, 2}, {0, 3}}},
		{"diagonal", 0, 0, 3, 3, []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"shallow", 0, 0, 4, 2, []image.Point{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}},
		{"shallow reversed", 4, 2, 0, 0, []image.Point{{4, 2}, {3, 1}, {2, 1}, {1, 0}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, _ := newTestDev(t, nil)
			dev.Line(tt.x0, tt.y0, tt.x1, tt.y1, bicolor.Red)
			got := lit(dev)
			if len(got) != len(tt.want) {
				t.Fatalf("lit = %v, want %v", got, tt.want)
			}
			for _, p := range tt.want {
				if got[p] != bicolor.Red {
					t.Errorf("%v not drawn", p)
				}
			}
		})
	}
}

func TestBox(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	dev.Box(20, 10, 17, 8, bicolor.Green)
	got := lit(dev)
	if len(got) != 4*3 {
		t.Errorf("lit pixels = %d, want 12", len(got))
	}
	for y := 8; y <= 10; y++ {
		for x := 17; x <= 20; x++ {
			if got[image.Pt(x, y)] != bicolor.Green {
				t.Errorf("(%d, %d) not filled", x, y)
			}
		}
	}
}

func TestDrawGlyph(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	if got := dev.DrawGlyph(4, 2, 0x01, fonts.Sym4x6, bicolor.Red, bicolor.Transparent); got != 8 {
		t.Errorf("DrawGlyph() = %d, want 8", got)
	}
	// Column 0 of glyph 1 is 0x18: rows 1 and 2 counted from the top of a
	// 6-row cell.
	for y := 0; y < 6; y++ {
		want := bicolor.Black
		if y == 1 || y == 2 {
			want = bicolor.Red
		}
		if got := dev.At(4, 2+y); got != want {
			t.Errorf("At(4, %d) = %v, want %v", 2+y, got, want)
		}
	}
	// 0x18 0x26 0x19 0x06
	if got, want := len(lit(dev)), 2+3+3+2; got != want {
		t.Errorf("lit pixels = %d, want %d", got, want)
	}
}

func TestDrawGlyphBackground(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	dev.DrawGlyph(0, 0, 0x01, fonts.Sym4x6, bicolor.Red, bicolor.Green)
	got := lit(dev)
	if len(got) != 4*6 {
		t.Fatalf("lit pixels = %d, want 24", len(got))
	}
	if got[image.Pt(0, 0)] != bicolor.Green || got[image.Pt(0, 1)] != bicolor.Red {
		t.Errorf("column 0 = %v %v, want Green Red", got[image.Pt(0, 0)], got[image.Pt(0, 1)])
	}
}

func TestDrawGlyphUnmapped(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	if got := dev.DrawGlyph(7, 0, 'z', fonts.Sym4x6, bicolor.Red, bicolor.Green); got != 7 {
		t.Errorf("DrawGlyph() = %d, want 7", got)
	}
	if got := dev.DrawGlyphMetric(7, 0, 'z', fonts.Sym4x6, bicolor.Red, bicolor.Green); got != 7 {
		t.Errorf("DrawGlyphMetric() = %d, want 7", got)
	}
	if got := lit(dev); len(got) != 0 {
		t.Errorf("lit = %v, want nothing", got)
	}
}

func TestDrawGlyphMetric(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	// Glyph 0 is blank and trimmed to a single column.
	if got := dev.DrawGlyphMetric(0, 0, 0x00, fonts.Sym4x6, bicolor.Green, bicolor.Red); got != 2 {
		t.Errorf("DrawGlyphMetric() = %d, want 2", got)
	}
	got := lit(dev)
	if len(got) != 2*6 {
		t.Errorf("lit pixels = %d, want 12", len(got))
	}
	for y := 0; y < 6; y++ {
		if got[image.Pt(0, y)] != bicolor.Red || got[image.Pt(1, y)] != bicolor.Red {
			t.Errorf("row %d not painted with the background", y)
		}
	}

	dev.Clear()
	if got := dev.DrawGlyphMetric(3, 0, 0x01, fonts.Sym4x6, bicolor.Green, bicolor.Transparent); got != 8 {
		t.Errorf("DrawGlyphMetric() = %d, want 8", got)
	}
	if got := dev.At(3, 1); got != bicolor.Green {
		t.Errorf("At(3, 1) = %v, want Green", got)
	}
}

func TestDrawString(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	if got := dev.DrawString(1, 0, "\x01\x02\x01", fonts.Sym4x6, bicolor.Orange, bicolor.Transparent); got != 13 {
		t.Errorf("DrawString() = %d, want 13", got)
	}
	if got := dev.DrawString(1, 0, "", fonts.Sym4x6, bicolor.Orange, bicolor.Transparent); got != 1 {
		t.Errorf("DrawString(\"\") = %d, want 1", got)
	}

	s := "\x01\x00\x02"
	want := 2 + fonts.Sym4x6.StringWidth(s)
	if got := dev.DrawStringMetric(2, 8, s, fonts.Sym4x6, bicolor.Red, bicolor.Black); got != want {
		t.Errorf("DrawStringMetric() = %d, want %d", got, want)
	}
}

func TestDrawStringClipped(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	dev.DrawString(28, 0, "\x01\x01", fonts.Sym4x6, bicolor.Red, bicolor.Green)
	for p := range lit(dev) {
		if p.X < 28 {
			t.Errorf("%v drawn left of the pen", p)
		}
	}
	if got := len(lit(dev)); got != 4*6 {
		t.Errorf("lit pixels = %d, want 24", got)
	}
}

func TestDrawStringWidth(t *testing.T) {
	f := &fonts.Font{
		Width:  5,
		Height: 7,
		Start:  'A',
		End:    'C',
		Data:   make([]uint16, 15),
	}
	dev, _ := newTestDev(t, nil)
	if got := dev.DrawString(0, 0, "ABC", f, bicolor.Red, bicolor.Transparent); got != 15 {
		t.Errorf("DrawString() = %d, want 15", got)
	}
}

func TestRotatedDrawing(t *testing.T) {
	o := DefaultOpts
	o.Rotation = Rotate90
	dev, _ := newTestDev(t, &o)
	dev.Plot(0, 0, bicolor.Red)
	// Logical (0, 0) is device (31, 0): chip 1, last column.
	seg := dev.fb.segment(1)
	if seg[16] != 0x20 {
		t.Errorf("chip 1 byte 16 = %#02x, want 0x20", seg[16])
	}
	if got := dev.At(0, 0); got != bicolor.Red {
		t.Errorf("At(0, 0) = %v, want Red", got)
	}
}

func TestDisplayer(t *testing.T) {
	dev, bus := newTestDev(t, nil)
	dev.SetPixel(3, 4, color.RGBA{G: 0xff, A: 0xff})
	dev.SetPixel(-1, 4, color.RGBA{G: 0xff, A: 0xff})
	if got := dev.At(3, 4); got != bicolor.Green {
		t.Errorf("At(3, 4) = %v, want Green", got)
	}
	if err := dev.Display(); err != nil {
		t.Fatal(err)
	}
	if len(bus.Frames()) != 4 {
		t.Error("Display did not send the frame")
	}
}

func TestTinyfont(t *testing.T) {
	dev, _ := newTestDev(t, nil)
	tinyfont.WriteLine(dev, &proggy.TinySZ8pt7b, 0, 10, "Hi", color.RGBA{R: 0xff, A: 0xff})
	got := lit(dev)
	if len(got) == 0 {
		t.Fatal("nothing drawn")
	}
	for p, c := range got {
		if c != bicolor.Red {
			t.Errorf("%v = %v, want Red", p, c)
		}
	}
}
