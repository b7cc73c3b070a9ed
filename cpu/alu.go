package cpu

// ALU computations. Each function is pure with respect to registers and
// memory: it takes the operand bytes and current flags by value and returns
// the result byte with the new flag state. The execution engine alone
// decides where a result is committed.

// addWithCarry computes a + m + carry-in. Carry is the unsigned carry out
// of bit 7; Overflow is set when both operands share a sign that differs
// from the result's sign.
func addWithCarry(a, m uint8, flags Flags) (result uint8, out Flags) {
	out = flags

	carry := uint16(0)
	if flags.Carry {
		carry = 1
	}
	sum := uint16(a) + uint16(m) + carry
	result = uint8(sum)

	out.Carry = sum > 0xff
	out.Overflow = (a^m)&0x80 == 0 && (a^result)&0x80 != 0
	out.setZN(result)

	return
}

// subtractWithCarry computes a - m - (1 - carry-in). Carry is set when no
// borrow occurred.
func subtractWithCarry(a, m uint8, flags Flags) (result uint8, out Flags) {
	out = flags

	borrow := uint16(1)
	if flags.Carry {
		borrow = 0
	}
	diff := uint16(a) - uint16(m) - borrow
	result = uint8(diff)

	out.Carry = diff < 0x100
	out.Overflow = (a^m)&0x80 != 0 && (a^result)&0x80 != 0
	out.setZN(result)

	return
}

// compare subtracts m from a register value without committing the result.
// The comparison is unsigned: Carry is set when the register is greater
// than or equal to the operand.
func compare(reg, m uint8, flags Flags) (out Flags) {
	out = flags
	out.Carry = reg >= m
	out.Zero = reg == m
	out.Negative = (reg-m)&0x80 != 0
	return
}

func logicalAnd(a, m uint8, flags Flags) (result uint8, out Flags) {
	result = a & m
	out = flags
	out.setZN(result)
	return
}

func logicalOr(a, m uint8, flags Flags) (result uint8, out Flags) {
	result = a | m
	out = flags
	out.setZN(result)
	return
}

func logicalXor(a, m uint8, flags Flags) (result uint8, out Flags) {
	result = a ^ m
	out = flags
	out.setZN(result)
	return
}

// bitTest computes a & m for the Zero flag only; Overflow and Negative are
// copied from bits 6 and 7 of the memory operand, not the AND result.
func bitTest(a, m uint8, flags Flags) (out Flags) {
	out = flags
	out.Zero = a&m == 0
	out.Overflow = m&0x40 != 0
	out.Negative = m&0x80 != 0
	return
}

func increment(value uint8, flags Flags) (result uint8, out Flags) {
	result = value + 1 // wraps mod 256
	out = flags
	out.setZN(result)
	return
}

func decrement(value uint8, flags Flags) (result uint8, out Flags) {
	result = value - 1 // wraps mod 256
	out = flags
	out.setZN(result)
	return
}

// shiftLeft shifts the value left one bit; Carry receives the bit shifted
// out. Zero always reflects the result byte, whatever the target.
func shiftLeft(value uint8, flags Flags) (result uint8, out Flags) {
	result = value << 1
	out = flags
	out.Carry = value&0x80 != 0
	out.setZN(result)
	return
}

// shiftRight shifts the value right one bit; Carry receives the bit
// shifted out.
func shiftRight(value uint8, flags Flags) (result uint8, out Flags) {
	result = value >> 1
	out = flags
	out.Carry = value&0x01 != 0
	out.setZN(result)
	return
}

// rotateLeft is shiftLeft with the vacated bit 0 filled from the prior Carry.
func rotateLeft(value uint8, flags Flags) (result uint8, out Flags) {
	result = value << 1
	if flags.Carry {
		result |= 0x01
	}
	out = flags
	out.Carry = value&0x80 != 0
	out.setZN(result)
	return
}

// rotateRight is shiftRight with the vacated bit 7 filled from the prior Carry.
func rotateRight(value uint8, flags Flags) (result uint8, out Flags) {
	result = value >> 1
	if flags.Carry {
		result |= 0x80
	}
	out = flags
	out.Carry = value&0x01 != 0
	out.setZN(result)
	return
}
