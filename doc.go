// Package ht1632c controls Holtek HT1632C LED matrix drivers, as found on
// the Sure Electronics 32x16 and 24x16 bicolour boards.
//
// Every HT1632C drives a block of LEDs from its own RAM. A board carries
// several chips, boards can be chained, and all chips share one data line.
// The driver keeps a mirror of every chip's RAM, draws into it, and streams
// it to the chips on SendFrame.
//
// # Hardware Connection
//
// The boards address chips through a shift register: the CS line is shifted
// along the chain by the CLK line, and data is clocked by the SPI port.
//
//	Board Pin → System Pin
//	GND       → GND
//	VCC       → 5V
//	DATA      → SPI Data (MOSI)
//	WR        → SPI Clock (SCLK)
//	CS        → GPIO (any available pin)
//	CLK       → GPIO (any available pin)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//		"github.com/flavioheleno/ht1632c"
//		"github.com/flavioheleno/ht1632c/bicolor"
//		"github.com/flavioheleno/ht1632c/fonts"
//	)
//
//	func main() {
//		host.Init()
//		p, _ := spireg.Open("")
//		bus, _ := ht1632c.NewPinBus(p, gpioreg.ByName("GPIO5"), gpioreg.ByName("GPIO6"))
//
//		dev := ht1632c.New(bus, nil)
//		if err := dev.Init(); err != nil {
//			panic(err)
//		}
//		dev.PWM(15)
//
//		dev.Clear()
//		dev.DrawString(0, 0, "\x01\x02", fonts.Sym4x6, bicolor.Green, bicolor.Black)
//		dev.Box(10, 0, 20, 5, bicolor.Orange)
//		dev.SendFrame()
//	}
//
// # Configuration
//
// Opts describes the chain; DefaultOpts matches a single 32x16 bicolour
// board. The Set methods change the configuration of a Dev before Init, and
// return ErrInitialized afterwards since the framebuffer is already laid out.
//
//	dev := ht1632c.New(bus, nil)
//	dev.SetPanels(2)
//	dev.SetRotation(ht1632c.Rotate90)
//	err := dev.Init()
//
// # Colours
//
// Colours are bicolor.Color plane masks. Plot lights the planes whose bit is
// set and clears the others. Text functions accept bicolor.Transparent as
// background to leave the pixels around glyphs untouched.
//
// # Coordinates
//
// Drawing uses logical coordinates: the display rotated by Opts.Rotation, with
// panels side by side. Width and Height return the logical size. Pixels
// outside the clip rectangle, which covers the whole display after Clear, are
// silently dropped.
//
// # Compatibility
//
// Dev implements display.Drawer from periph.io and drivers.Displayer from
// TinyGo, so tinyfont and any periph.io tool can draw on it. It is also an
// image.Image of the framebuffer content.
//
// # Datasheet
//
// https://www.holtek.com/documents/10179/116711/HT1632Cv170.pdf
package ht1632c
