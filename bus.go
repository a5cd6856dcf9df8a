package ht1632c

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Bus is the transport the driver streams commands and frames over.
//
// Select, SelectAll and SelectNone address the chips; WriteBits and Write
// shift data out most significant bit first to whatever is selected. A Bus
// only has to be usable after Configure returns.
type Bus interface {
	// Configure prepares the bus for chips daisy-chained chips clocked at f.
	Configure(f physic.Frequency, chips int) error
	// SelectAll addresses every chip at once.
	SelectAll() error
	// SelectNone releases every chip.
	SelectNone() error
	// Select addresses the single chip at index chip, counting from 0.
	Select(chip int) error
	// WriteBits writes the n low bits of v, MSB first.
	WriteBits(v uint32, n int) error
	// Write writes p, MSB first.
	Write(p []byte) error
}

// PinBus drives HT1632C chips behind a shift-register chip select: data goes
// over SPI while the CS and CLK GPIOs shift a select bit through the chain.
//
// Selecting chip n drives CS low for one CLK pulse and then shifts the bit n
// positions further; SelectAll and SelectNone fill the whole chain with low or
// high bits respectively.
type PinBus struct {
	port spi.Port
	cs   gpio.PinOut
	clk  gpio.PinOut

	c     spi.Conn
	chips int
}

// NewPinBus returns a PinBus using p for data and cs and clk to address chips.
func NewPinBus(p spi.Port, cs, clk gpio.PinOut) (*PinBus, error) {
	if p == nil {
		return nil, errors.New("ht1632c: nil SPI port")
	}
	if cs == nil || cs == gpio.INVALID || clk == nil || clk == gpio.INVALID {
		return nil, errors.New("ht1632c: CS and CLK pins are required")
	}
	return &PinBus{port: p, cs: cs, clk: clk}, nil
}

// Configure connects the SPI port in Mode0 with 8-bit words and parks the
// chain with every chip released.
func (b *PinBus) Configure(f physic.Frequency, chips int) error {
	if chips <= 0 {
		return fmt.Errorf("ht1632c: invalid chip count %d", chips)
	}
	c, err := b.port.Connect(f, spi.Mode0, 8)
	if err != nil {
		return fmt.Errorf("ht1632c: connect SPI: %w", err)
	}
	b.c = c
	b.chips = chips
	if err := b.clk.Out(gpio.Low); err != nil {
		return fmt.Errorf("ht1632c: CLK low: %w", err)
	}
	return b.SelectNone()
}

// SelectAll shifts a low CS bit into every position of the chain.
func (b *PinBus) SelectAll() error {
	if err := b.cs.Out(gpio.Low); err != nil {
		return err
	}
	return b.pulse(b.chips)
}

// SelectNone shifts a high CS bit into every position of the chain.
func (b *PinBus) SelectNone() error {
	if err := b.cs.Out(gpio.High); err != nil {
		return err
	}
	return b.pulse(b.chips)
}

// Select shifts a single low CS bit to position chip.
func (b *PinBus) Select(chip int) error {
	if chip < 0 || chip >= b.chips {
		return fmt.Errorf("ht1632c: chip %d out of range [0, %d)", chip, b.chips)
	}
	if err := b.cs.Out(gpio.Low); err != nil {
		return err
	}
	if err := b.pulse(1); err != nil {
		return err
	}
	if err := b.cs.Out(gpio.High); err != nil {
		return err
	}
	return b.pulse(chip)
}

// WriteBits left-justifies the n low bits of v in whole bytes and sends them.
// Bits past n in the last byte are zero.
func (b *PinBus) WriteBits(v uint32, n int) error {
	if n <= 0 || n > 32 {
		return fmt.Errorf("ht1632c: cannot write %d bits", n)
	}
	w := make([]byte, (n+7)/8)
	v <<= uint(32 - n)
	for i := range w {
		w[i] = byte(v >> 24)
		v <<= 8
	}
	return b.Write(w)
}

// Write sends p over SPI.
func (b *PinBus) Write(p []byte) error {
	if b.c == nil {
		return errors.New("ht1632c: bus not configured")
	}
	return b.c.Tx(p, nil)
}

// String implements conn.Resource.
func (b *PinBus) String() string {
	return fmt.Sprintf("ht1632c.PinBus{%s, CS=%s, CLK=%s}", b.port, b.cs, b.clk)
}

func (b *PinBus) pulse(n int) error {
	for ; n > 0; n-- {
		if err := b.clk.Out(gpio.High); err != nil {
			return err
		}
		if err := b.clk.Out(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}
