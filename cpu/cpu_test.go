package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrosim/mos6502/mem"
)

func testCpu() *Cpu {
	return NewCpu(&mem.RAM{})
}

// run decodes and executes a raw byte stream loaded at the current PC.
func run(t *testing.T, cpu *Cpu, image []uint8) {
	t.Helper()
	assert := assert.New(t)

	origin := cpu.Registers.PC
	for n, b := range image {
		cpu.Mem.Set(origin+uint16(n), b)
	}
	end := origin + uint16(len(image))

	for cpu.Registers.PC >= origin && cpu.Registers.PC < end {
		err := cpu.Step()
		if !assert.NoError(err, cpu.String()) {
			t.Fatal(err)
		}
	}
}

func TestCpu_LoadStore(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0xa9, 0x00, // LDA #$00
		0xa2, 0x80, // LDX #$80
		0xa0, 0x7f, // LDY #$7F
		0x85, 0x10, // STA $10
		0x86, 0x11, // STX $11
		0x84, 0x12, // STY $12
	})

	assert.Equal(uint8(0x00), cpu.Registers.A)
	assert.Equal(uint8(0x80), cpu.Registers.X)
	assert.Equal(uint8(0x7f), cpu.Registers.Y)
	assert.Equal(uint8(0x00), cpu.Mem.Get(0x10))
	assert.Equal(uint8(0x80), cpu.Mem.Get(0x11))
	assert.Equal(uint8(0x7f), cpu.Mem.Get(0x12))

	// Last load was LDY #$7F: positive, nonzero.
	assert.False(cpu.Flags.Zero)
	assert.False(cpu.Flags.Negative)
}

func TestCpu_AddOverflowWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0xa9, 0xff, // LDA #$FF
		0x69, 0x01, // ADC #$01
	})

	assert.Equal(uint8(0x00), cpu.Registers.A)
	assert.True(cpu.Flags.Carry)
	assert.True(cpu.Flags.Zero)
	assert.False(cpu.Flags.Overflow)
	assert.False(cpu.Flags.Negative)
}

func TestCpu_HexInstruction(t *testing.T) {
	assert := assert.New(t)

	inst, err := DecodeHex("A901")
	assert.NoError(err)
	assert.Equal(Instruction{LDA, AddressingMode{ModeImmediate, 0x01}}, inst)

	cpu := testCpu()
	err = cpu.Execute(inst)
	assert.NoError(err)
	assert.Equal(uint8(0x01), cpu.Registers.A)
	assert.False(cpu.Flags.Zero)
	assert.False(cpu.Flags.Negative)
	assert.Equal(uint16(0x0002), cpu.Registers.PC)
}

func TestCpu_ZeroPageIndexed(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Mem.Set(130, 9)
	cpu.Registers.X = 10
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0xb5, 120, // LDA $78,X
	})

	assert.Equal(uint8(9), cpu.Registers.A)
}

func TestCpu_ZeroPageIndexedWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()

	// $FF + 2 wraps to $01, never reaching $0101.
	cpu.Mem.Set(0x01, 0x42)
	cpu.Mem.Set(0x0101, 0x99)
	cpu.Registers.X = 0x02
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0xb5, 0xff, // LDA $FF,X
	})

	assert.Equal(uint8(0x42), cpu.Registers.A)
}

func TestCpu_IndirectIndexed(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()

	// ($20),Y: pointer at $20/$21 -> $0300, plus Y.
	cpu.Mem.Set(0x20, 0x00)
	cpu.Mem.Set(0x21, 0x03)
	cpu.Mem.Set(0x0304, 0x5a)
	cpu.Registers.Y = 0x04
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0xb1, 0x20, // LDA ($20),Y
	})

	assert.Equal(uint8(0x5a), cpu.Registers.A)
}

func TestCpu_IndexedIndirect(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()

	// ($FE,X) with X=4 wraps to pointer at $02/$03.
	cpu.Mem.Set(0x02, 0x10)
	cpu.Mem.Set(0x03, 0x03)
	cpu.Mem.Set(0x0310, 0xa7)
	cpu.Registers.X = 0x04
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0xa1, 0xfe, // LDA ($FE,X)
	})

	assert.Equal(uint8(0xa7), cpu.Registers.A)
}

func TestCpu_StackRoundTrip(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.S = 0xff
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0xa9, 0x42, // LDA #$42
		0x48,       // PHA
		0xa9, 0x00, // LDA #$00
		0x68, // PLA
	})

	assert.Equal(uint8(0x42), cpu.Registers.A)
	assert.Equal(uint8(0xff), cpu.Registers.S)
	assert.Equal(uint8(0x42), cpu.Mem.Get(0x01ff))
	assert.False(cpu.Flags.Zero)
}

func TestCpu_StackPointerWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()

	// Pushing with S=0 wraps the pointer to $FF; the stack never
	// leaves page one.
	cpu.Registers.S = 0x00
	cpu.Registers.A = 0x12
	err := cpu.Execute(Instruction{PHA, AddressingMode{ModeImplied, 0}})
	assert.NoError(err)
	assert.Equal(uint8(0xff), cpu.Registers.S)
	assert.Equal(uint8(0x12), cpu.Mem.Get(0x0100))

	err = cpu.Execute(Instruction{PLA, AddressingMode{ModeImplied, 0}})
	assert.NoError(err)
	assert.Equal(uint8(0x00), cpu.Registers.S)
	assert.Equal(uint8(0x12), cpu.Registers.A)
}

func TestCpu_PhpPlp(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.S = 0xff
	cpu.Flags = Flags{Negative: true, Decimal: true, Carry: true}

	err := cpu.Execute(Instruction{PHP, AddressingMode{ModeImplied, 0}})
	assert.NoError(err)
	assert.Equal(uint8(0x89), cpu.Mem.Get(0x01ff))

	cpu.Flags = Flags{}
	err = cpu.Execute(Instruction{PLP, AddressingMode{ModeImplied, 0}})
	assert.NoError(err)
	assert.Equal(Flags{Negative: true, Decimal: true, Carry: true}, cpu.Flags)
}

func TestCpu_JsrRts(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.S = 0xff
	cpu.Registers.PC = 0x0210

	// JSR pushes the address of its own last byte, high byte first;
	// RTS resumes at the instruction after the JSR.
	err := cpu.Execute(Instruction{JSR, AddressingMode{ModeAbsolute, 0x0300}})
	assert.NoError(err)
	assert.Equal(uint16(0x0300), cpu.Registers.PC)
	assert.Equal(uint8(0xfd), cpu.Registers.S)
	assert.Equal(uint8(0x02), cpu.Mem.Get(0x01ff))
	assert.Equal(uint8(0x12), cpu.Mem.Get(0x01fe))

	err = cpu.Execute(Instruction{RTS, AddressingMode{ModeImplied, 0}})
	assert.NoError(err)
	assert.Equal(uint16(0x0213), cpu.Registers.PC)
	assert.Equal(uint8(0xff), cpu.Registers.S)
}

func TestCpu_Branches(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		inst  Instruction
		flags Flags
		pc    uint16
	}){
		{"beq_taken", Instruction{BEQ, AddressingMode{ModeRelative, 0x10}},
			Flags{Zero: true}, 0x0212},
		{"beq_not_taken", Instruction{BEQ, AddressingMode{ModeRelative, 0x10}},
			Flags{}, 0x0202},
		// A -2 displacement exactly cancels the instruction length,
		// landing back on the branch itself.
		{"beq_minus_two", Instruction{BEQ, AddressingMode{ModeRelative, 0xfe}},
			Flags{Zero: true}, 0x0200},
		{"bne_back", Instruction{BNE, AddressingMode{ModeRelative, 0xfb}},
			Flags{}, 0x01fd},
		{"bcs_taken", Instruction{BCS, AddressingMode{ModeRelative, 0x02}},
			Flags{Carry: true}, 0x0204},
		{"bcc_taken", Instruction{BCC, AddressingMode{ModeRelative, 0x02}},
			Flags{}, 0x0204},
		{"bmi_taken", Instruction{BMI, AddressingMode{ModeRelative, 0x02}},
			Flags{Negative: true}, 0x0204},
		{"bpl_not_taken", Instruction{BPL, AddressingMode{ModeRelative, 0x02}},
			Flags{Negative: true}, 0x0202},
		{"bvs_taken", Instruction{BVS, AddressingMode{ModeRelative, 0x02}},
			Flags{Overflow: true}, 0x0204},
		{"bvc_taken", Instruction{BVC, AddressingMode{ModeRelative, 0x02}},
			Flags{}, 0x0204},
	}

	for _, entry := range table {
		cpu := testCpu()
		cpu.Registers.PC = 0x0200
		cpu.Flags = entry.flags

		err := cpu.Execute(entry.inst)
		assert.NoError(err, entry.name)
		assert.Equal(entry.pc, cpu.Registers.PC, entry.name)
		assert.Equal(entry.flags, cpu.Flags, entry.name)
	}
}

func TestCpu_MemoryShift(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Mem.Set(0x10, 0x81)
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0x06, 0x10, // ASL $10
	})

	assert.Equal(uint8(0x02), cpu.Mem.Get(0x10))
	assert.True(cpu.Flags.Carry)
	assert.False(cpu.Flags.Zero)

	cpu.Registers.PC = 0x0200
	run(t, cpu, []uint8{
		0x66, 0x10, // ROR $10
	})

	// Carry from the ASL rotates into bit 7.
	assert.Equal(uint8(0x81), cpu.Mem.Get(0x10))
	assert.False(cpu.Flags.Carry)
	assert.True(cpu.Flags.Negative)
}

func TestCpu_AccumulatorShift(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.A = 0x40
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0x0a, // ASL A
	})

	assert.Equal(uint8(0x80), cpu.Registers.A)
	assert.True(cpu.Flags.Negative)
	assert.False(cpu.Flags.Carry)
}

func TestCpu_Transfers(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0xa9, 0x80, // LDA #$80
		0xaa, // TAX
		0x9a, // TXS
		0xa9, 0x00, // LDA #$00
		0xba, // TSX
		0x8a, // TXA
	})

	assert.Equal(uint8(0x80), cpu.Registers.A)
	assert.Equal(uint8(0x80), cpu.Registers.X)
	assert.Equal(uint8(0x80), cpu.Registers.S)
	assert.True(cpu.Flags.Negative)
}

func TestCpu_TxsLeavesFlags(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.X = 0x00
	cpu.Flags = Flags{Negative: true}

	err := cpu.Execute(Instruction{TXS, AddressingMode{ModeImplied, 0}})
	assert.NoError(err)
	assert.Equal(uint8(0x00), cpu.Registers.S)
	assert.Equal(Flags{Negative: true}, cpu.Flags)
}

func TestCpu_FlagInstructions(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.PC = 0x0200

	run(t, cpu, []uint8{
		0x38, // SEC
		0xf8, // SED
		0x78, // SEI
	})
	assert.Equal(Flags{Decimal: true, Interrupt: true, Carry: true}, cpu.Flags)

	cpu.Flags.Overflow = true
	cpu.Registers.PC = 0x0200
	run(t, cpu, []uint8{
		0x18, // CLC
		0xd8, // CLD
		0x58, // CLI
		0xb8, // CLV
	})
	assert.Equal(Flags{}, cpu.Flags)
}

func TestCpu_CompareBranchLoop(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.PC = 0x0200

	// Count X down from 5 and sum into A. DEX sets Zero on the last
	// pass; ADC never carries, so the sum stays clean.
	run(t, cpu, []uint8{
		0xa9, 0x00, // LDA #$00
		0xa2, 0x05, // LDX #$05
		0x69, 0x01, // loop: ADC #$01
		0xca,       // DEX
		0xd0, 0xfb, // BNE loop
	})

	assert.Equal(uint8(0x05), cpu.Registers.A)
	assert.Equal(uint8(0x00), cpu.Registers.X)
	assert.True(cpu.Flags.Zero)
}

func TestCpu_JmpIndirect(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Mem.Set(0x0300, 0x34)
	cpu.Mem.Set(0x0301, 0x12)
	cpu.Registers.PC = 0x0200

	err := cpu.Execute(Instruction{JMP, AddressingMode{ModeIndirect, 0x0300}})
	assert.NoError(err)
	assert.Equal(uint16(0x1234), cpu.Registers.PC)
}

func TestCpu_Interrupt(t *testing.T) {
	assert := assert.New(t)

	for _, mnemonic := range []Mnemonic{BRK, RTI} {
		cpu := testCpu()
		cpu.Registers.PC = 0x0200
		cpu.Registers.S = 0xff
		before := cpu.Registers

		err := cpu.Execute(Instruction{mnemonic, AddressingMode{ModeImplied, 0}})
		assert.ErrorIs(err, ErrInterrupt, mnemonic.String())

		// No state is touched, PC included.
		assert.Equal(before, cpu.Registers, mnemonic.String())
		assert.Equal(Flags{}, cpu.Flags, mnemonic.String())
	}
}

func TestCpu_StepDecodeError(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers.PC = 0x0200
	cpu.Mem.Set(0x0200, 0x02)

	err := cpu.Step()
	assert.ErrorIs(err, ErrUnknownOpcode(0x02))
	assert.Equal(uint16(0x0200), cpu.Registers.PC)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := testCpu()
	cpu.Registers = Registers{A: 0xab, X: 0x01, Y: 0x02, S: 0xff, PC: 0x0200}
	cpu.Flags = Flags{Negative: true, Carry: true}

	assert.Equal("PC=$0200 A=$AB X=$01 Y=$02 S=$FF P=Nv--dizC", cpu.String())

	// Each of the low flags renders in its own column; D in
	// particular must not vanish into an unused bit.
	cpu.Flags = Flags{Decimal: true, Interrupt: true, Zero: true, Carry: true}
	assert.Equal("PC=$0200 A=$AB X=$01 Y=$02 S=$FF P=nv--DIZC", cpu.String())
}
