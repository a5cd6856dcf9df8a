package ht1632c

import (
	"fmt"
	"io"
)

// framebuffer mirrors the RAM of every chip, one segment per chip. A segment
// starts with the WRITE header and holds one bitmap per colour plane.
type framebuffer struct {
	buf      []byte
	chipSize int
}

func newFramebuffer(chips, chipSize int) *framebuffer {
	return &framebuffer{
		buf:      make([]byte, chips*chipSize),
		chipSize: chipSize,
	}
}

// index returns the offset of byte addr of chip's segment.
func (f *framebuffer) index(chip, addr int) int {
	if chip < 0 || chip >= f.chips() {
		panic(fmt.Sprintf("ht1632c: chip %d outside of %d chips", chip, f.chips()))
	}
	if addr < 0 || addr >= f.chipSize {
		panic(fmt.Sprintf("ht1632c: address %d outside of %d-byte segment", addr, f.chipSize))
	}
	return chip*f.chipSize + addr
}

// segment returns the bytes sent to chip.
func (f *framebuffer) segment(chip int) []byte {
	i := f.index(chip, 0)
	return f.buf[i : i+f.chipSize]
}

func (f *framebuffer) chips() int {
	return len(f.buf) / f.chipSize
}

// update sets or clears the mask bits of a byte, leaving the others intact.
func (f *framebuffer) update(chip, addr int, on bool, mask byte) {
	i := f.index(chip, addr)
	if on {
		f.buf[i] |= mask
	} else {
		f.buf[i] &^= mask
	}
}

func (f *framebuffer) bit(chip, addr int, mask byte) bool {
	return f.buf[f.index(chip, addr)]&mask != 0
}

// reset zeroes the buffer and stamps the WRITE header on every segment.
func (f *framebuffer) reset() {
	for i := range f.buf {
		f.buf[i] = 0
	}
	for chip := 0; chip < f.chips(); chip++ {
		f.buf[f.index(chip, 0)] = writeHeader
	}
}

// dump writes one line of hex bytes per chip.
func (f *framebuffer) dump(w io.Writer) error {
	for chip := 0; chip < f.chips(); chip++ {
		if _, err := fmt.Fprintf(w, "chip %d: % x\n", chip, f.segment(chip)); err != nil {
			return err
		}
	}
	return nil
}
