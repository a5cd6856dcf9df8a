package ht1632c

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/flavioheleno/ht1632c/bicolor"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// MaxFramebufferSize caps the memory Init is willing to allocate.
const MaxFramebufferSize = 64 * 1024

var (
	// ErrInitialized is returned when the configuration is changed, or Init
	// is called, after a successful Init.
	ErrInitialized = errors.New("ht1632c: display already initialized")
	// ErrNotInitialized is returned by bus operations before Init.
	ErrNotInitialized = errors.New("ht1632c: display not initialized")
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("ht1632c: invalid configuration")
	// ErrAlloc is returned by Init when the framebuffer cannot be allocated.
	ErrAlloc = errors.New("ht1632c: cannot allocate framebuffer")
)

// Opts is the configuration of a chain of HT1632C panels.
type Opts struct {
	// Panels is the number of panels chained side by side.
	Panels int
	// Rotation of the logical display.
	Rotation Rotation

	// Panel size in pixels.
	PanelWidth  int
	PanelHeight int

	// Size in pixels of the block driven by one chip. ChipHeight must be a
	// multiple of 8.
	ChipWidth     int
	ChipHeight    int
	ChipsPerPanel int

	// Colors is the number of colour planes, 2 on red/green boards.
	Colors int

	// Frequency is the SPI clock.
	Frequency physic.Frequency
}

// DefaultOpts matches a Sure Electronics 32x16 bicolour board: four 16x8
// chips, red and green planes.
var DefaultOpts = Opts{
	Panels:        1,
	Rotation:      Rotate0,
	PanelWidth:    32,
	PanelHeight:   16,
	ChipWidth:     16,
	ChipHeight:    8,
	ChipsPerPanel: 4,
	Colors:        2,
	Frequency:     2560 * physic.KiloHertz,
}

func (o *Opts) validate() error {
	switch {
	case o.Panels <= 0:
		return fmt.Errorf("%w: panel count %d", ErrInvalidConfig, o.Panels)
	case o.Rotation > Rotate270:
		return fmt.Errorf("%w: rotation %d", ErrInvalidConfig, o.Rotation)
	case o.PanelWidth <= 0 || o.PanelHeight <= 0:
		return fmt.Errorf("%w: panel size %dx%d", ErrInvalidConfig, o.PanelWidth, o.PanelHeight)
	case o.ChipWidth <= 0 || o.ChipHeight <= 0 || o.ChipHeight%8 != 0:
		return fmt.Errorf("%w: chip size %dx%d, height must be a multiple of 8", ErrInvalidConfig, o.ChipWidth, o.ChipHeight)
	case o.ChipsPerPanel <= 0:
		return fmt.Errorf("%w: %d chips per panel", ErrInvalidConfig, o.ChipsPerPanel)
	case o.Colors <= 0 || o.Colors > 8:
		return fmt.Errorf("%w: %d colour planes, must be between 1 and 8", ErrInvalidConfig, o.Colors)
	case o.Frequency <= 0:
		return fmt.Errorf("%w: frequency %s", ErrInvalidConfig, o.Frequency)
	}
	return nil
}

// Dev is a handle to a chain of HT1632C chips.
//
// A Dev is configured by New and the Set methods, then becomes usable with
// Init. Drawing only touches the framebuffer; SendFrame pushes it to the
// chips. A Dev is not safe for concurrent use.
type Dev struct {
	bus  Bus
	opts Opts

	initialized bool
	geo         geometry
	fb          *framebuffer
	clip        image.Rectangle
}

var (
	_ display.Drawer    = (*Dev)(nil)
	_ drivers.Displayer = (*Dev)(nil)
)

// New returns an uninitialized Dev talking over bus.
//
// opts can be nil to use DefaultOpts.
func New(bus Bus, opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	return &Dev{bus: bus, opts: *opts}
}

func (d *Dev) set(f func(o *Opts)) error {
	if d.initialized {
		return ErrInitialized
	}
	f(&d.opts)
	return nil
}

// SetPanels sets the number of chained panels.
func (d *Dev) SetPanels(n int) error {
	return d.set(func(o *Opts) { o.Panels = n })
}

// SetRotation sets the rotation of the logical display.
func (d *Dev) SetRotation(r Rotation) error {
	return d.set(func(o *Opts) { o.Rotation = r })
}

// SetPanelWidth sets the width in pixels of one panel.
func (d *Dev) SetPanelWidth(w int) error {
	return d.set(func(o *Opts) { o.PanelWidth = w })
}

// SetPanelHeight sets the height in pixels of one panel.
func (d *Dev) SetPanelHeight(h int) error {
	return d.set(func(o *Opts) { o.PanelHeight = h })
}

// SetChipWidth sets the width in pixels driven by one chip.
func (d *Dev) SetChipWidth(w int) error {
	return d.set(func(o *Opts) { o.ChipWidth = w })
}

// SetChipHeight sets the height in pixels driven by one chip.
func (d *Dev) SetChipHeight(h int) error {
	return d.set(func(o *Opts) { o.ChipHeight = h })
}

// SetChipsPerPanel sets the number of chips on one panel.
func (d *Dev) SetChipsPerPanel(n int) error {
	return d.set(func(o *Opts) { o.ChipsPerPanel = n })
}

// SetColors sets the number of colour planes.
func (d *Dev) SetColors(n int) error {
	return d.set(func(o *Opts) { o.Colors = n })
}

// SetFrequency sets the SPI clock.
func (d *Dev) SetFrequency(f physic.Frequency) error {
	return d.set(func(o *Opts) { o.Frequency = f })
}

// Init computes the geometry, allocates the framebuffer, configures the bus
// and brings the chips up with a blank frame.
//
// It returns ErrAlloc when the framebuffer would exceed MaxFramebufferSize.
// On any error the Dev stays uninitialized.
func (d *Dev) Init() error {
	if d.initialized {
		return ErrInitialized
	}
	if d.bus == nil {
		return errors.New("ht1632c: no bus")
	}
	if err := d.opts.validate(); err != nil {
		return err
	}
	g := newGeometry(&d.opts)
	if err := g.check(); err != nil {
		return err
	}
	if g.chips*g.chipSize > MaxFramebufferSize {
		return ErrAlloc
	}
	if err := d.bus.Configure(d.opts.Frequency, g.chips); err != nil {
		return fmt.Errorf("ht1632c: configure bus: %w", err)
	}

	commons := cmdCOM00
	if g.chipH > 8 {
		commons = cmdCOM01
	}
	cmds := []byte{
		cmdSysDis,
		commons,
		cmdMstMd,
		cmdRCClk,
		cmdSysOn,
		cmdLEDOn,
		cmdBlOff,
		cmdPWM,
	}
	for _, cmd := range cmds {
		if err := d.sendCommand(cmd); err != nil {
			return err
		}
	}

	d.geo = g
	d.fb = newFramebuffer(g.chips, g.chipSize)
	d.Clear()
	if err := d.flush(); err != nil {
		d.fb = nil
		return err
	}
	d.initialized = true
	return nil
}

// Width returns the logical width, after rotation. It is 0 before Init.
func (d *Dev) Width() int {
	return d.Bounds().Dx()
}

// Height returns the logical height, after rotation. It is 0 before Init.
func (d *Dev) Height() int {
	return d.Bounds().Dy()
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	if d.fb == nil {
		return image.Rectangle{}
	}
	return d.geo.bounds()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return bicolor.Model
}

// LEDOn turns the LED duty cycle generator on.
func (d *Dev) LEDOn() error {
	return d.command(cmdLEDOn)
}

// LEDOff turns the LED duty cycle generator off. The framebuffer is kept.
func (d *Dev) LEDOff() error {
	return d.command(cmdLEDOff)
}

// BlinkOn makes the whole display blink.
func (d *Dev) BlinkOn() error {
	return d.command(cmdBlOn)
}

// BlinkOff stops blinking.
func (d *Dev) BlinkOff() error {
	return d.command(cmdBlOff)
}

// PWM sets the brightness, from 0 (dimmest) to 15. Only the low 4 bits of
// level are used.
func (d *Dev) PWM(level uint8) error {
	return d.command(cmdPWM | level&0x0f)
}

// Clear blanks the framebuffer and resets the clip rectangle. Nothing is sent
// to the chips until SendFrame.
func (d *Dev) Clear() {
	if d.fb == nil {
		return
	}
	d.fb.reset()
	d.ClipReset()
}

// SendFrame streams the framebuffer to the chips, one chip at a time.
func (d *Dev) SendFrame() error {
	if !d.initialized {
		return ErrNotInitialized
	}
	return d.flush()
}

// Write replaces the whole framebuffer with p and sends it.
//
// p holds one segment per chip in chip order, each starting with the WRITE
// header, as Dump prints them.
func (d *Dev) Write(p []byte) (int, error) {
	if !d.initialized {
		return 0, ErrNotInitialized
	}
	if len(p) != len(d.fb.buf) {
		return 0, errors.New("ht1632c: invalid buffer size")
	}
	copy(d.fb.buf, p)
	if err := d.flush(); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Draw implements display.Drawer: it plots src into the framebuffer, converted
// with bicolor.Model, and sends the frame.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	delta := sp.Sub(dst.Min)
	dst = dst.Intersect(d.Bounds())
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			c := bicolor.Model.Convert(src.At(x+delta.X, y+delta.Y)).(bicolor.Color)
			d.Plot(x, y, c)
		}
	}
	return d.flush()
}

// Display implements drivers.Displayer. It is SendFrame.
func (d *Dev) Display() error {
	return d.SendFrame()
}

// Halt turns the LEDs and the oscillator of every chip off. Init is not
// required again; LEDOn resumes the display.
func (d *Dev) Halt() error {
	if err := d.command(cmdLEDOff); err != nil {
		return err
	}
	return d.command(cmdSysDis)
}

// Dump writes the framebuffer as hex, one line per chip.
func (d *Dev) Dump(w io.Writer) error {
	if d.fb == nil {
		return ErrNotInitialized
	}
	return d.fb.dump(w)
}

// String implements conn.Resource.
func (d *Dev) String() string {
	b := d.Bounds()
	return fmt.Sprintf("ht1632c.Dev{%dx%d, %d chips}", b.Dx(), b.Dy(), d.geo.chips)
}

func (d *Dev) command(cmd byte) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	return d.sendCommand(cmd)
}

// sendCommand broadcasts cmd to every chip.
func (d *Dev) sendCommand(cmd byte) error {
	if err := d.bus.SelectAll(); err != nil {
		return fmt.Errorf("ht1632c: select all: %w", err)
	}
	if err := d.bus.WriteBits(uint32(commandWord(cmd)), commandBits); err != nil {
		return fmt.Errorf("ht1632c: command %#02x: %w", cmd, err)
	}
	if err := d.bus.SelectNone(); err != nil {
		return fmt.Errorf("ht1632c: select none: %w", err)
	}
	return nil
}

func (d *Dev) flush() error {
	for chip := 0; chip < d.fb.chips(); chip++ {
		if err := d.bus.Select(chip); err != nil {
			return fmt.Errorf("ht1632c: select chip %d: %w", chip, err)
		}
		if err := d.bus.Write(d.fb.segment(chip)); err != nil {
			return fmt.Errorf("ht1632c: write chip %d: %w", chip, err)
		}
		if err := d.bus.SelectNone(); err != nil {
			return fmt.Errorf("ht1632c: select none: %w", err)
		}
	}
	return nil
}
