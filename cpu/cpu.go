package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/retrosim/mos6502/mem"
)

// Memory is the byte store the CPU executes against.
type Memory mem.Memory

var _cpu_defines = map[string]string{
	"STACK_BASE": fmt.Sprintf("0x%04x", StackBase),
}

// Cpu is one 6502 core attached to a memory. Register and flag state are
// exclusively owned by the Cpu; the memory is shared with the surrounding
// machine, which is responsible for serializing access if several chips
// reference it.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers Registers
	Flags     Flags
	Mem       Memory
}

// NewCpu creates a CPU attached to the given memory. The CPU never
// allocates or resizes the memory it is handed.
func NewCpu(m Memory) *Cpu {
	return &Cpu{Mem: m}
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset zeroes the registers and flags. Memory is left untouched.
func (cpu *Cpu) Reset() {
	cpu.Registers.Reset()
	cpu.Flags.Reset()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	reg := &cpu.Registers

	// One character per status bit, 7 down to 0; 5 and 4 are unused.
	flagNames := "NV--DIZC"
	packed := cpu.Flags.Pack()
	status := []byte("nv--dizc")
	for n := range status {
		if packed&(0x80>>n) != 0 {
			status[n] = flagNames[n]
		}
	}

	return fmt.Sprintf("PC=$%04X A=$%02X X=$%02X Y=$%02X S=$%02X P=%s",
		reg.PC, reg.A, reg.X, reg.Y, reg.S, status)
}

// Step fetches the instruction at PC from memory, decodes it, and executes
// it. Callers may instead decode for themselves and hand the result to
// Execute.
func (cpu *Cpu) Step() (err error) {
	var raw [3]uint8
	for n := range raw {
		raw[n] = cpu.Mem.Get(cpu.Registers.PC + uint16(n))
	}

	inst, err := Decode(raw[:])
	if err != nil {
		return
	}

	return cpu.Execute(inst)
}

// Execute executes a single decoded instruction: resolve the addressing
// mode, dispatch on the mnemonic, commit register/stack/memory writes, and
// advance PC by the instruction's encoded length unless the instruction
// redirected it. A failed instruction mutates no state.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.Registers.PC, inst)
	}

	value, addr := cpu.resolve(inst.Address)

	reg := &cpu.Registers
	nextPC := reg.PC + uint16(inst.Size())

	switch inst.Mnemonic {
	// Load/store
	case LDA:
		reg.A = value
		cpu.Flags.setZN(value)
	case LDX:
		reg.X = value
		cpu.Flags.setZN(value)
	case LDY:
		reg.Y = value
		cpu.Flags.setZN(value)
	case STA:
		cpu.Mem.Set(addr, reg.A)
	case STX:
		cpu.Mem.Set(addr, reg.X)
	case STY:
		cpu.Mem.Set(addr, reg.Y)

	// Register transfers
	case TAX:
		reg.X = reg.A
		cpu.Flags.setZN(reg.X)
	case TAY:
		reg.Y = reg.A
		cpu.Flags.setZN(reg.Y)
	case TXA:
		reg.A = reg.X
		cpu.Flags.setZN(reg.A)
	case TYA:
		reg.A = reg.Y
		cpu.Flags.setZN(reg.A)

	// Stack operations
	case TSX:
		reg.X = reg.S
		cpu.Flags.setZN(reg.X)
	case TXS:
		// The only transfer that leaves the flags alone.
		reg.S = reg.X
	case PHA:
		cpu.push(reg.A)
	case PHP:
		cpu.push(cpu.Flags.Pack())
	case PLA:
		reg.A = cpu.pop()
		cpu.Flags.setZN(reg.A)
	case PLP:
		cpu.Flags.Unpack(cpu.pop())

	// Logical
	case AND:
		reg.A, cpu.Flags = logicalAnd(reg.A, value, cpu.Flags)
	case EOR:
		reg.A, cpu.Flags = logicalXor(reg.A, value, cpu.Flags)
	case ORA:
		reg.A, cpu.Flags = logicalOr(reg.A, value, cpu.Flags)
	case BIT:
		cpu.Flags = bitTest(reg.A, value, cpu.Flags)

	// Arithmetic
	case ADC:
		reg.A, cpu.Flags = addWithCarry(reg.A, value, cpu.Flags)
	case SBC:
		reg.A, cpu.Flags = subtractWithCarry(reg.A, value, cpu.Flags)
	case CMP:
		cpu.Flags = compare(reg.A, value, cpu.Flags)
	case CPX:
		cpu.Flags = compare(reg.X, value, cpu.Flags)
	case CPY:
		cpu.Flags = compare(reg.Y, value, cpu.Flags)

	// Increments & decrements
	case INC:
		var result uint8
		result, cpu.Flags = increment(value, cpu.Flags)
		cpu.Mem.Set(addr, result)
	case INX:
		reg.X, cpu.Flags = increment(reg.X, cpu.Flags)
	case INY:
		reg.Y, cpu.Flags = increment(reg.Y, cpu.Flags)
	case DEC:
		var result uint8
		result, cpu.Flags = decrement(value, cpu.Flags)
		cpu.Mem.Set(addr, result)
	case DEX:
		reg.X, cpu.Flags = decrement(reg.X, cpu.Flags)
	case DEY:
		reg.Y, cpu.Flags = decrement(reg.Y, cpu.Flags)

	// Shifts
	case ASL:
		cpu.readModifyWrite(inst.Address.Mode, value, addr, shiftLeft)
	case LSR:
		cpu.readModifyWrite(inst.Address.Mode, value, addr, shiftRight)
	case ROL:
		cpu.readModifyWrite(inst.Address.Mode, value, addr, rotateLeft)
	case ROR:
		cpu.readModifyWrite(inst.Address.Mode, value, addr, rotateRight)

	// Jumps & calls
	case JMP:
		nextPC = addr
	case JSR:
		// Push the address of the JSR's last byte, high byte first;
		// RTS resumes at the byte after it.
		ret := reg.PC + uint16(inst.Size()) - 1
		cpu.push(uint8(ret >> 8))
		cpu.push(uint8(ret))
		nextPC = addr
	case RTS:
		lo := cpu.pop()
		hi := cpu.pop()
		nextPC = (uint16(hi)<<8 | uint16(lo)) + 1

	// Branches
	case BCC:
		nextPC = branch(nextPC, addr, !cpu.Flags.Carry)
	case BCS:
		nextPC = branch(nextPC, addr, cpu.Flags.Carry)
	case BEQ:
		nextPC = branch(nextPC, addr, cpu.Flags.Zero)
	case BMI:
		nextPC = branch(nextPC, addr, cpu.Flags.Negative)
	case BNE:
		nextPC = branch(nextPC, addr, !cpu.Flags.Zero)
	case BPL:
		nextPC = branch(nextPC, addr, !cpu.Flags.Negative)
	case BVC:
		nextPC = branch(nextPC, addr, !cpu.Flags.Overflow)
	case BVS:
		nextPC = branch(nextPC, addr, cpu.Flags.Overflow)

	// Status flag changes
	case CLC:
		cpu.Flags.Carry = false
	case CLD:
		cpu.Flags.Decimal = false
	case CLI:
		cpu.Flags.Interrupt = false
	case CLV:
		cpu.Flags.Overflow = false
	case SEC:
		cpu.Flags.Carry = true
	case SED:
		cpu.Flags.Decimal = true
	case SEI:
		cpu.Flags.Interrupt = true

	// System functions
	case NOP:
		// advance PC only
	case BRK, RTI:
		// No interrupt vector dispatch; refuse before touching state.
		err = ErrInterrupt
		return
	}

	reg.PC = nextPC

	return
}

// resolve computes the operand value and effective address for an
// addressing mode against the current register and memory state.
func (cpu *Cpu) resolve(address AddressingMode) (value uint8, addr uint16) {
	reg := &cpu.Registers

	switch address.Mode {
	case ModeImplied, ModeAccumulator:
		value = reg.A
	case ModeImmediate:
		value = uint8(address.Operand)
		addr = uint16(value)
	case ModeRelative:
		// The offset byte as-is, and its sign-extended 16-bit
		// displacement; no memory fetch.
		value = uint8(address.Operand)
		addr = uint16(int16(int8(value)))
	case ModeZeroPage:
		addr = address.Operand & 0x00ff
		value = cpu.Mem.Get(addr)
	case ModeZeroPageX:
		// Indexing wraps within page zero, never into page one.
		addr = uint16(uint8(address.Operand) + reg.X)
		value = cpu.Mem.Get(addr)
	case ModeZeroPageY:
		addr = uint16(uint8(address.Operand) + reg.Y)
		value = cpu.Mem.Get(addr)
	case ModeAbsolute:
		addr = address.Operand
		value = cpu.Mem.Get(addr)
	case ModeAbsoluteX:
		addr = address.Operand + uint16(reg.X)
		value = cpu.Mem.Get(addr)
	case ModeAbsoluteY:
		addr = address.Operand + uint16(reg.Y)
		value = cpu.Mem.Get(addr)
	case ModeIndirect:
		// Only JMP (indirect); no operand value to fetch.
		addr = cpu.readPointer(address.Operand)
	case ModeIndexedIndirect:
		addr = cpu.readZeroPagePointer(uint8(address.Operand) + reg.X)
		value = cpu.Mem.Get(addr)
	case ModeIndirectIndexed:
		addr = cpu.readZeroPagePointer(uint8(address.Operand)) + uint16(reg.Y)
		value = cpu.Mem.Get(addr)
	}

	return
}

// readPointer reads a little-endian 16-bit pointer from memory.
func (cpu *Cpu) readPointer(addr uint16) uint16 {
	lo := cpu.Mem.Get(addr)
	hi := cpu.Mem.Get(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// readZeroPagePointer reads a pointer whose two bytes both live in page
// zero; the second byte wraps around rather than carrying into page one.
func (cpu *Cpu) readZeroPagePointer(zp uint8) uint16 {
	lo := cpu.Mem.Get(uint16(zp))
	hi := cpu.Mem.Get(uint16(zp + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// readModifyWrite commits an ALU result to the accumulator or back to the
// operand's effective address, for the instructions that can target either.
func (cpu *Cpu) readModifyWrite(mode Mode, value uint8, addr uint16, op func(uint8, Flags) (uint8, Flags)) {
	var result uint8
	result, cpu.Flags = op(value, cpu.Flags)
	if mode == ModeAccumulator {
		cpu.Registers.A = result
	} else {
		cpu.Mem.Set(addr, result)
	}
}

// push writes a byte to the stack window and decrements S.
func (cpu *Cpu) push(value uint8) {
	cpu.Mem.Set(StackBase+uint16(cpu.Registers.S), value)
	cpu.Registers.S--
}

// pop increments S and reads the byte at the stack window.
func (cpu *Cpu) pop() (value uint8) {
	cpu.Registers.S++
	return cpu.Mem.Get(StackBase + uint16(cpu.Registers.S))
}

// branch returns the taken or fall-through PC for a conditional branch.
// The displacement applies on top of the normal length advance.
func branch(nextPC, displacement uint16, taken bool) uint16 {
	if taken {
		return nextPC + displacement
	}
	return nextPC
}
