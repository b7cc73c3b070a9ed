package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags_PackUnpack(t *testing.T) {
	assert := assert.New(t)

	// Every combination of the six stored flags must survive a
	// pack/unpack round trip, and bits 4 and 5 always read zero.
	for bits := range 64 {
		flags := Flags{
			Negative:  bits&0x20 != 0,
			Overflow:  bits&0x10 != 0,
			Decimal:   bits&0x08 != 0,
			Interrupt: bits&0x04 != 0,
			Zero:      bits&0x02 != 0,
			Carry:     bits&0x01 != 0,
		}

		packed := flags.Pack()
		assert.Equal(uint8(0), packed&0x30, "bits 4-5 of %#v", flags)

		var out Flags
		out.Unpack(packed)
		assert.Equal(flags, out)
	}
}

func TestFlags_PackBits(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		flags Flags
		bits  uint8
	}){
		{"none", Flags{}, 0x00},
		{"carry", Flags{Carry: true}, 0x01},
		{"zero", Flags{Zero: true}, 0x02},
		{"interrupt", Flags{Interrupt: true}, 0x04},
		{"decimal", Flags{Decimal: true}, 0x08},
		{"overflow", Flags{Overflow: true}, 0x40},
		{"negative", Flags{Negative: true}, 0x80},
	}

	for _, entry := range table {
		assert.Equal(entry.bits, entry.flags.Pack(), entry.name)
	}
}

func TestFlags_UnpackIgnoresUnusedBits(t *testing.T) {
	assert := assert.New(t)

	var flags Flags
	flags.Unpack(0x30)
	assert.Equal(Flags{}, flags)
	assert.Equal(uint8(0), flags.Pack())
}

func TestRegisters_Reset(t *testing.T) {
	assert := assert.New(t)

	reg := Registers{A: 0x12, X: 0x34, Y: 0x56, S: 0x78, PC: 0x9abc}
	reg.Reset()
	assert.Equal(Registers{}, reg)
}
