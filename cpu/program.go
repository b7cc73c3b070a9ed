package cpu

import (
	"iter"
	"log"
)

// Opcode is one assembled source line: its location, source words, decoded
// instruction, and any label still to be linked.
type Opcode struct {
	LineNo    int
	Addr      uint16
	Words     []string
	Inst      Instruction
	LinkLabel string
}

// Program is an assembled instruction stream and its load origin.
type Program struct {
	Origin  uint16
	Opcodes []Opcode
}

// Debug locates the source line an address belongs to.
type Debug struct {
	*Opcode
	Offset int // Byte offset into the instruction's encoding.
}

// Debug returns the opcode covering the given address, or a zero Debug
// when the address is outside the program.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		size := uint16(op.Inst.Size())
		if pc >= op.Addr && pc < op.Addr+size {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Offset: int(pc - op.Addr),
			}
			break
		}
	}

	return
}

// Relocate moves the program to a new origin: opcode addresses and the
// operands linked to labels shift with it. Relative displacements and
// literal operands the programmer wrote are position independent and stay
// as assembled.
func (prog *Program) Relocate(origin uint16) {
	delta := origin - prog.Origin
	if delta == 0 {
		return
	}

	for n := range prog.Opcodes {
		op := &prog.Opcodes[n]
		op.Addr += delta
		if len(op.LinkLabel) != 0 && op.Inst.Address.Mode != ModeRelative {
			op.Inst.Address.Operand += delta
		}
	}

	prog.Origin = origin
}

// Binary returns the program's byte image, to be loaded at Origin.
func (prog *Program) Binary() (image []uint8) {
	for _, op := range prog.Opcodes {
		raw, err := op.Inst.Encode()
		if err != nil {
			// The assembler only emits encodable instructions.
			log.Fatalf("unable to encode %v at line %d: %v", op.Inst, op.LineNo, err)
		}
		image = append(image, raw...)
	}

	return
}

// Codes iterates over (address, instruction) pairs in program order.
func (prog *Program) Codes() iter.Seq2[uint16, Instruction] {
	return func(yield func(addr uint16, inst Instruction) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Addr, op.Inst) {
				return
			}
		}
	}
}
