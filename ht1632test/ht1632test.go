// Package ht1632test provides a fake ht1632c.Bus that records every
// operation, so drivers can be tested without hardware.
package ht1632test

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
)

// Kind identifies a bus operation.
type Kind int

// Recorded operations.
const (
	Configure Kind = iota
	SelectAll
	SelectNone
	Select
	WriteBits
	Write
)

func (k Kind) String() string {
	switch k {
	case Configure:
		return "Configure"
	case SelectAll:
		return "SelectAll"
	case SelectNone:
		return "SelectNone"
	case Select:
		return "Select"
	case WriteBits:
		return "WriteBits"
	case Write:
		return "Write"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op is one recorded operation. Only the fields relevant to Kind are set.
type Op struct {
	Kind  Kind
	Chip  int              // Select; chip count for Configure
	Freq  physic.Frequency // Configure
	Value uint32           // WriteBits
	Bits  int              // WriteBits
	Data  []byte           // Write, a copy
}

func (o Op) String() string {
	switch o.Kind {
	case Configure:
		return fmt.Sprintf("Configure(%s, %d)", o.Freq, o.Chip)
	case Select:
		return fmt.Sprintf("Select(%d)", o.Chip)
	case WriteBits:
		return fmt.Sprintf("WriteBits(%#x, %d)", o.Value, o.Bits)
	case Write:
		return fmt.Sprintf("Write(% x)", o.Data)
	}
	return o.Kind.String() + "()"
}

// Bus records operations. The zero value is ready to use.
type Bus struct {
	sync.Mutex
	Ops []Op
	// Err, when set, is returned by every operation after being recorded.
	Err error
	// FailAfter makes operation number FailAfter and later fail with
	// ErrInjected when positive.
	FailAfter int
}

// ErrInjected is returned once FailAfter operations were recorded.
var ErrInjected = errors.New("ht1632test: injected failure")

func (b *Bus) record(op Op) error {
	b.Lock()
	defer b.Unlock()
	b.Ops = append(b.Ops, op)
	if b.FailAfter > 0 && len(b.Ops) >= b.FailAfter {
		return ErrInjected
	}
	return b.Err
}

// Configure implements ht1632c.Bus.
func (b *Bus) Configure(f physic.Frequency, chips int) error {
	return b.record(Op{Kind: Configure, Freq: f, Chip: chips})
}

// SelectAll implements ht1632c.Bus.
func (b *Bus) SelectAll() error {
	return b.record(Op{Kind: SelectAll})
}

// SelectNone implements ht1632c.Bus.
func (b *Bus) SelectNone() error {
	return b.record(Op{Kind: SelectNone})
}

// Select implements ht1632c.Bus.
func (b *Bus) Select(chip int) error {
	return b.record(Op{Kind: Select, Chip: chip})
}

// WriteBits implements ht1632c.Bus.
func (b *Bus) WriteBits(v uint32, n int) error {
	return b.record(Op{Kind: WriteBits, Value: v, Bits: n})
}

// Write implements ht1632c.Bus.
func (b *Bus) Write(p []byte) error {
	return b.record(Op{Kind: Write, Data: append([]byte(nil), p...)})
}

// Reset forgets the recorded operations.
func (b *Bus) Reset() {
	b.Lock()
	defer b.Unlock()
	b.Ops = nil
}

// Commands returns the command codes sent with WriteBits, decoded from their
// 16-bit frames. Frames not carrying the COMMAND ID are skipped.
func (b *Bus) Commands() []byte {
	b.Lock()
	defer b.Unlock()
	var cmds []byte
	for _, op := range b.Ops {
		if op.Kind != WriteBits || op.Bits != 16 || op.Value>>13 != 0x4 {
			continue
		}
		cmds = append(cmds, byte(op.Value>>5))
	}
	return cmds
}

// Frames returns the data written to each chip, indexed by chip, from the
// last Select of that chip.
func (b *Bus) Frames() map[int][]byte {
	b.Lock()
	defer b.Unlock()
	frames := make(map[int][]byte)
	selected := -1
	for _, op := range b.Ops {
		switch op.Kind {
		case Select:
			selected = op.Chip
			frames[selected] = nil
		case SelectAll, SelectNone:
			selected = -1
		case Write:
			if selected >= 0 {
				frames[selected] = append(frames[selected], op.Data...)
			}
		}
	}
	return frames
}

// Written returns every byte written with Write, in order.
func (b *Bus) Written() []byte {
	b.Lock()
	defer b.Unlock()
	var buf bytes.Buffer
	for _, op := range b.Ops {
		if op.Kind == Write {
			buf.Write(op.Data)
		}
	}
	return buf.Bytes()
}
