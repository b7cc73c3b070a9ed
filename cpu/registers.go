package cpu

// StackBase is the bottom of the fixed 256-byte stack window; the stack
// pointer S addresses StackBase+S.
const StackBase = uint16(0x0100)

// Registers is the programmer-visible register file. PC arithmetic wraps
// silently at 16 bits and S at 8 bits; wraparound is defined behavior,
// never a fault.
type Registers struct {
	A  uint8  // Accumulator.
	X  uint8  // Index register X.
	Y  uint8  // Index register Y.
	S  uint8  // Stack pointer into the page-one window.
	PC uint16 // Program counter.
}

// Reset zeroes the register file.
func (reg *Registers) Reset() {
	*reg = Registers{}
}

// Flag bit positions in the packed status byte.
// Bits 4-5 are unused and always read as zero.
const (
	flagBitNegative  = 7
	flagBitOverflow  = 6
	flagBitDecimal   = 3
	flagBitInterrupt = 2
	flagBitZero      = 1
	flagBitCarry     = 0
)

// Flags is the condition-code register. It is the sole channel through
// which instructions communicate conditional state to later branches.
type Flags struct {
	Negative  bool // N: bit 7 of the last result.
	Overflow  bool // V: signed overflow of the last ADC/SBC, or BIT bit 6.
	Decimal   bool // D: tracked but arithmetic-inert.
	Interrupt bool // I: interrupt disable, tracked only.
	Zero      bool // Z: last result was zero.
	Carry     bool // C: carry out / no-borrow / bit shifted out.
}

// Reset clears all six flags.
func (flags *Flags) Reset() {
	*flags = Flags{}
}

// Pack packs the six flags into a status byte.
func (flags Flags) Pack() (value uint8) {
	bit := func(on bool, pos int) uint8 {
		if on {
			return 1 << pos
		}
		return 0
	}

	value = bit(flags.Negative, flagBitNegative) |
		bit(flags.Overflow, flagBitOverflow) |
		bit(flags.Decimal, flagBitDecimal) |
		bit(flags.Interrupt, flagBitInterrupt) |
		bit(flags.Zero, flagBitZero) |
		bit(flags.Carry, flagBitCarry)

	return
}

// Unpack replaces the flags from a packed status byte.
// The unused bits 4-5 are discarded.
func (flags *Flags) Unpack(value uint8) {
	flags.Negative = (value>>flagBitNegative)&1 != 0
	flags.Overflow = (value>>flagBitOverflow)&1 != 0
	flags.Decimal = (value>>flagBitDecimal)&1 != 0
	flags.Interrupt = (value>>flagBitInterrupt)&1 != 0
	flags.Zero = (value>>flagBitZero)&1 != 0
	flags.Carry = (value>>flagBitCarry)&1 != 0
}

// setZN sets the Zero and Negative flags from a result byte.
func (flags *Flags) setZN(value uint8) {
	flags.Zero = value == 0
	flags.Negative = value&0x80 != 0
}
