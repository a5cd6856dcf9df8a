package ht1632c

// Every transfer to the chip starts with a 3-bit ID, followed by either an
// 8-bit command code plus one don't-care bit, or a 7-bit RAM address plus
// data.
const (
	idLen   = 3
	cmdLen  = 8
	addrLen = 7

	// headerBits is the length of the ID and address prefix of a WRITE burst.
	headerBits = idLen + addrLen
	// commandBits is the size of the word a command is left-justified in.
	commandBits = 16
)

// Transfer IDs.
const (
	idCommand byte = 0x4 // 100
	idWrite   byte = 0x5 // 101
	idRead    byte = 0x6 // 110
)

// Command codes.
const (
	cmdSysDis byte = 0x00 // Oscillator off
	cmdSysOn  byte = 0x01 // Oscillator on
	cmdLEDOff byte = 0x02 // LED duty cycle generator off
	cmdLEDOn  byte = 0x03 // LED duty cycle generator on
	cmdBlOff  byte = 0x08 // Blink off
	cmdBlOn   byte = 0x09 // Blink on
	cmdSlvMd  byte = 0x10 // Slave mode
	cmdMstMd  byte = 0x14 // Master mode
	cmdRCClk  byte = 0x18 // On-chip RC clock
	cmdExtClk byte = 0x1C // External clock
	cmdCOM00  byte = 0x20 // N-MOS open drain, 8 commons
	cmdCOM01  byte = 0x24 // N-MOS open drain, 16 commons
	cmdCOM10  byte = 0x28 // P-MOS open drain, 8 commons
	cmdCOM11  byte = 0x2C // P-MOS open drain, 16 commons
	cmdPWM    byte = 0xA0 // PWM duty cycle, level in the low nibble
)

// writeHeader is the first byte of every framebuffer segment: the WRITE ID in
// the top bits, RAM address 0 in the rest.
const writeHeader = idWrite << (8 - idLen)

// commandWord frames cmd as the 16-bit word sent MSB first: the COMMAND ID in
// the top 3 bits, the command code in the next 8, and 5 bits of padding.
func commandWord(cmd byte) uint16 {
	return (uint16(idCommand)<<cmdLen | uint16(cmd)) << (commandBits - idLen - cmdLen)
}
