package cpu

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Mnemonic is one of the 56 documented instruction mnemonics.
type Mnemonic int

//go:generate go tool stringer -type=Mnemonic
const (
	// Load/store
	LDA = Mnemonic(iota)
	LDX
	LDY
	STA
	STX
	STY
	// Register transfers
	TAX
	TAY
	TXA
	TYA
	// Stack operations
	TSX
	TXS
	PHA
	PHP
	PLA
	PLP
	// Logical
	AND
	EOR
	ORA
	BIT
	// Arithmetic
	ADC
	SBC
	CMP
	CPX
	CPY
	// Increments & decrements
	INC
	INX
	INY
	DEC
	DEX
	DEY
	// Shifts
	ASL
	LSR
	ROL
	ROR
	// Jumps & calls
	JMP
	JSR
	RTS
	// Branches
	BCC
	BCS
	BEQ
	BMI
	BNE
	BPL
	BVC
	BVS
	// Status flag changes
	CLC
	CLD
	CLI
	CLV
	SEC
	SED
	SEI
	// System functions
	BRK
	NOP
	RTI
)

// Mode is the addressing mode tag for an instruction operand.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	ModeNone            = Mode(iota) // None
	ModeImplied                      // Implied
	ModeAccumulator                  // Accumulator
	ModeImmediate                    // Immediate
	ModeZeroPage                     // ZeroPage
	ModeZeroPageX                    // ZeroPage,X
	ModeZeroPageY                    // ZeroPage,Y
	ModeRelative                     // Relative
	ModeAbsolute                     // Absolute
	ModeAbsoluteX                    // Absolute,X
	ModeAbsoluteY                    // Absolute,Y
	ModeIndirect                     // Indirect
	ModeIndexedIndirect              // (Indirect,X)
	ModeIndirectIndexed              // (Indirect),Y
)

// OperandBytes returns the number of operand bytes the mode encodes after
// the opcode byte.
func (mode Mode) OperandBytes() int {
	switch mode {
	case ModeImmediate, ModeZeroPage, ModeZeroPageX, ModeZeroPageY,
		ModeRelative, ModeIndexedIndirect, ModeIndirectIndexed:
		return 1
	case ModeAbsolute, ModeAbsoluteX, ModeAbsoluteY, ModeIndirect:
		return 2
	}
	return 0
}

// AddressingMode pairs a mode tag with the operand bytes it carries:
// an immediate value, a zero-page base, a signed branch offset, or a
// 16-bit base/pointer address, depending on the tag.
type AddressingMode struct {
	Mode    Mode
	Operand uint16
}

// Instruction is an immutable decoded instruction, created by decoding
// (or by the assembler) and consumed once by Execute.
type Instruction struct {
	Mnemonic Mnemonic
	Address  AddressingMode
}

// Size returns the total encoded length in bytes.
func (inst Instruction) Size() int {
	return 1 + inst.Address.Mode.OperandBytes()
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() (out string) {
	operand := inst.Address.Operand

	switch inst.Address.Mode {
	case ModeAccumulator:
		out = fmt.Sprintf("%v A", inst.Mnemonic)
	case ModeImmediate:
		out = fmt.Sprintf("%v #$%02X", inst.Mnemonic, uint8(operand))
	case ModeZeroPage:
		out = fmt.Sprintf("%v $%02X", inst.Mnemonic, uint8(operand))
	case ModeZeroPageX:
		out = fmt.Sprintf("%v $%02X,X", inst.Mnemonic, uint8(operand))
	case ModeZeroPageY:
		out = fmt.Sprintf("%v $%02X,Y", inst.Mnemonic, uint8(operand))
	case ModeRelative:
		out = fmt.Sprintf("%v *%+d", inst.Mnemonic, int8(uint8(operand)))
	case ModeAbsolute:
		out = fmt.Sprintf("%v $%04X", inst.Mnemonic, operand)
	case ModeAbsoluteX:
		out = fmt.Sprintf("%v $%04X,X", inst.Mnemonic, operand)
	case ModeAbsoluteY:
		out = fmt.Sprintf("%v $%04X,Y", inst.Mnemonic, operand)
	case ModeIndirect:
		out = fmt.Sprintf("%v ($%04X)", inst.Mnemonic, operand)
	case ModeIndexedIndirect:
		out = fmt.Sprintf("%v ($%02X,X)", inst.Mnemonic, uint8(operand))
	case ModeIndirectIndexed:
		out = fmt.Sprintf("%v ($%02X),Y", inst.Mnemonic, uint8(operand))
	default:
		out = inst.Mnemonic.String()
	}

	return
}

type opcodeEntry struct {
	mnemonic Mnemonic
	mode     Mode
}

// opcodeTable maps every documented opcode byte to its mnemonic and
// addressing mode template. Entries left at the zero value (ModeNone) are
// unknown or unofficial opcodes and fail to decode.
var opcodeTable = [256]opcodeEntry{
	// Load/store
	0xA9: {LDA, ModeImmediate},
	0xA5: {LDA, ModeZeroPage},
	0xB5: {LDA, ModeZeroPageX},
	0xAD: {LDA, ModeAbsolute},
	0xBD: {LDA, ModeAbsoluteX},
	0xB9: {LDA, ModeAbsoluteY},
	0xA1: {LDA, ModeIndexedIndirect},
	0xB1: {LDA, ModeIndirectIndexed},
	0xA2: {LDX, ModeImmediate},
	0xA6: {LDX, ModeZeroPage},
	0xB6: {LDX, ModeZeroPageY},
	0xAE: {LDX, ModeAbsolute},
	0xBE: {LDX, ModeAbsoluteY},
	0xA0: {LDY, ModeImmediate},
	0xA4: {LDY, ModeZeroPage},
	0xB4: {LDY, ModeZeroPageX},
	0xAC: {LDY, ModeAbsolute},
	0xBC: {LDY, ModeAbsoluteX},
	0x85: {STA, ModeZeroPage},
	0x95: {STA, ModeZeroPageX},
	0x8D: {STA, ModeAbsolute},
	0x9D: {STA, ModeAbsoluteX},
	0x99: {STA, ModeAbsoluteY},
	0x81: {STA, ModeIndexedIndirect},
	0x91: {STA, ModeIndirectIndexed},
	0x86: {STX, ModeZeroPage},
	0x96: {STX, ModeZeroPageY},
	0x8E: {STX, ModeAbsolute},
	0x84: {STY, ModeZeroPage},
	0x94: {STY, ModeZeroPageX},
	0x8C: {STY, ModeAbsolute},

	// Register transfers
	0xAA: {TAX, ModeImplied},
	0xA8: {TAY, ModeImplied},
	0x8A: {TXA, ModeImplied},
	0x98: {TYA, ModeImplied},

	// Stack operations
	0xBA: {TSX, ModeImplied},
	0x9A: {TXS, ModeImplied},
	0x48: {PHA, ModeImplied},
	0x08: {PHP, ModeImplied},
	0x68: {PLA, ModeImplied},
	0x28: {PLP, ModeImplied},

	// Logical
	0x29: {AND, ModeImmediate},
	0x25: {AND, ModeZeroPage},
	0x35: {AND, ModeZeroPageX},
	0x2D: {AND, ModeAbsolute},
	0x3D: {AND, ModeAbsoluteX},
	0x39: {AND, ModeAbsoluteY},
	0x21: {AND, ModeIndexedIndirect},
	0x31: {AND, ModeIndirectIndexed},
	0x49: {EOR, ModeImmediate},
	0x45: {EOR, ModeZeroPage},
	0x55: {EOR, ModeZeroPageX},
	0x4D: {EOR, ModeAbsolute},
	0x5D: {EOR, ModeAbsoluteX},
	0x59: {EOR, ModeAbsoluteY},
	0x41: {EOR, ModeIndexedIndirect},
	0x51: {EOR, ModeIndirectIndexed},
	0x09: {ORA, ModeImmediate},
	0x05: {ORA, ModeZeroPage},
	0x15: {ORA, ModeZeroPageX},
	0x0D: {ORA, ModeAbsolute},
	0x1D: {ORA, ModeAbsoluteX},
	0x19: {ORA, ModeAbsoluteY},
	0x01: {ORA, ModeIndexedIndirect},
	0x11: {ORA, ModeIndirectIndexed},
	0x24: {BIT, ModeZeroPage},
	0x2C: {BIT, ModeAbsolute},

	// Arithmetic
	0x69: {ADC, ModeImmediate},
	0x65: {ADC, ModeZeroPage},
	0x75: {ADC, ModeZeroPageX},
	0x6D: {ADC, ModeAbsolute},
	0x7D: {ADC, ModeAbsoluteX},
	0x79: {ADC, ModeAbsoluteY},
	0x61: {ADC, ModeIndexedIndirect},
	0x71: {ADC, ModeIndirectIndexed},
	0xE9: {SBC, ModeImmediate},
	0xE5: {SBC, ModeZeroPage},
	0xF5: {SBC, ModeZeroPageX},
	0xED: {SBC, ModeAbsolute},
	0xFD: {SBC, ModeAbsoluteX},
	0xF9: {SBC, ModeAbsoluteY},
	0xE1: {SBC, ModeIndexedIndirect},
	0xF1: {SBC, ModeIndirectIndexed},
	0xC9: {CMP, ModeImmediate},
	0xC5: {CMP, ModeZeroPage},
	0xD5: {CMP, ModeZeroPageX},
	0xCD: {CMP, ModeAbsolute},
	0xDD: {CMP, ModeAbsoluteX},
	0xD9: {CMP, ModeAbsoluteY},
	0xC1: {CMP, ModeIndexedIndirect},
	0xD1: {CMP, ModeIndirectIndexed},
	0xE0: {CPX, ModeImmediate},
	0xE4: {CPX, ModeZeroPage},
	0xEC: {CPX, ModeAbsolute},
	0xC0: {CPY, ModeImmediate},
	0xC4: {CPY, ModeZeroPage},
	0xCC: {CPY, ModeAbsolute},

	// Increments & decrements
	0xE6: {INC, ModeZeroPage},
	0xF6: {INC, ModeZeroPageX},
	0xEE: {INC, ModeAbsolute},
	0xFE: {INC, ModeAbsoluteX},
	0xE8: {INX, ModeImplied},
	0xC8: {INY, ModeImplied},
	0xC6: {DEC, ModeZeroPage},
	0xD6: {DEC, ModeZeroPageX},
	0xCE: {DEC, ModeAbsolute},
	0xDE: {DEC, ModeAbsoluteX},
	0xCA: {DEX, ModeImplied},
	0x88: {DEY, ModeImplied},

	// Shifts
	0x0A: {ASL, ModeAccumulator},
	0x06: {ASL, ModeZeroPage},
	0x16: {ASL, ModeZeroPageX},
	0x0E: {ASL, ModeAbsolute},
	0x1E: {ASL, ModeAbsoluteX},
	0x4A: {LSR, ModeAccumulator},
	0x46: {LSR, ModeZeroPage},
	0x56: {LSR, ModeZeroPageX},
	0x4E: {LSR, ModeAbsolute},
	0x5E: {LSR, ModeAbsoluteX},
	0x2A: {ROL, ModeAccumulator},
	0x26: {ROL, ModeZeroPage},
	0x36: {ROL, ModeZeroPageX},
	0x2E: {ROL, ModeAbsolute},
	0x3E: {ROL, ModeAbsoluteX},
	0x6A: {ROR, ModeAccumulator},
	0x66: {ROR, ModeZeroPage},
	0x76: {ROR, ModeZeroPageX},
	0x6E: {ROR, ModeAbsolute},
	0x7E: {ROR, ModeAbsoluteX},

	// Jumps & calls
	0x4C: {JMP, ModeAbsolute},
	0x6C: {JMP, ModeIndirect},
	0x20: {JSR, ModeAbsolute},
	0x60: {RTS, ModeImplied},

	// Branches
	0x90: {BCC, ModeRelative},
	0xB0: {BCS, ModeRelative},
	0xF0: {BEQ, ModeRelative},
	0x30: {BMI, ModeRelative},
	0xD0: {BNE, ModeRelative},
	0x10: {BPL, ModeRelative},
	0x50: {BVC, ModeRelative},
	0x70: {BVS, ModeRelative},

	// Status flag changes
	0x18: {CLC, ModeImplied},
	0xD8: {CLD, ModeImplied},
	0x58: {CLI, ModeImplied},
	0xB8: {CLV, ModeImplied},
	0x38: {SEC, ModeImplied},
	0xF8: {SED, ModeImplied},
	0x78: {SEI, ModeImplied},

	// System functions
	0x00: {BRK, ModeImplied},
	0xEA: {NOP, ModeImplied},
	0x40: {RTI, ModeImplied},
}

// encodeTable is the reverse of opcodeTable, for the assembler.
var encodeTable = map[opcodeEntry]uint8{}

// mnemonicMap maps mnemonic names to their enumeration value.
var mnemonicMap = map[string]Mnemonic{}

func init() {
	for op, entry := range opcodeTable {
		if entry.mode != ModeNone {
			encodeTable[entry] = uint8(op)
		}
	}
	for mn := LDA; mn <= RTI; mn++ {
		mnemonicMap[mn.String()] = mn
	}
}

// Decode decodes one instruction from raw bytes: the opcode byte followed
// by the 0, 1, or 2 operand bytes its addressing mode requires. Absolute
// and indirect operands are little-endian. Surplus bytes are ignored.
func Decode(raw []uint8) (inst Instruction, err error) {
	if len(raw) == 0 {
		err = ErrTruncated
		return
	}

	entry := opcodeTable[raw[0]]
	if entry.mode == ModeNone {
		err = ErrUnknownOpcode(raw[0])
		return
	}

	need := entry.mode.OperandBytes()
	if len(raw) < 1+need {
		err = ErrTruncated
		return
	}

	var operand uint16
	switch need {
	case 1:
		operand = uint16(raw[1])
	case 2:
		operand = uint16(raw[2])<<8 | uint16(raw[1])
	}

	inst = Instruction{
		Mnemonic: entry.mnemonic,
		Address:  AddressingMode{Mode: entry.mode, Operand: operand},
	}

	return
}

// DecodeHex decodes the textual form: up to 6 hexadecimal characters
// (3 bytes), right-padded with '0' when the instruction is shorter, run
// through the same decode path as raw bytes.
func DecodeHex(s string) (inst Instruction, err error) {
	if len(s) == 0 || len(s) > 6 {
		err = ErrParseHex(s)
		return
	}

	padded := s + strings.Repeat("0", 6-len(s))
	raw, parseErr := hex.DecodeString(padded)
	if parseErr != nil {
		err = ErrParseHex(s)
		return
	}

	return Decode(raw)
}

// Encode returns the canonical byte encoding of the instruction.
func (inst Instruction) Encode() (raw []uint8, err error) {
	op, ok := encodeTable[opcodeEntry{inst.Mnemonic, inst.Address.Mode}]
	if !ok {
		err = ErrEncode(inst)
		return
	}

	raw = append(raw, op)
	switch inst.Address.Mode.OperandBytes() {
	case 1:
		raw = append(raw, uint8(inst.Address.Operand))
	case 2:
		raw = append(raw, uint8(inst.Address.Operand), uint8(inst.Address.Operand>>8))
	}

	return
}
