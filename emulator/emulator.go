// Package emulator couples a CPU core, a flat RAM, and an assembled
// program into a runnable machine.
package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/retrosim/mos6502/cpu"
	"github.com/retrosim/mos6502/internal"
	"github.com/retrosim/mos6502/mem"
)

const (
	RAM_SIZE     = 64 * 1024 // Full 16-bit address space.
	RESET_STACK  = 0xff      // Stack pointer after a reset.
	LOAD_DEFAULT = 0x0200    // Load origin when a program has no .org.
)

var _emulator_defines = map[string]string{
	"RAM_TOP":      fmt.Sprintf("0x%04x", RAM_SIZE-1),
	"LOAD_DEFAULT": fmt.Sprintf("0x%04x", LOAD_DEFAULT),
}

// Emulator state. CPU + RAM + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Mem      *mem.RAM     // The machine's memory.
	Program  *cpu.Program // Reference to the currently running program listing.

	// Image bounds are kept wider than uint16 so an image laid down
	// near the top of memory does not wrap its end below its origin.
	origin int // Effective load origin.
	end    int // First address past the loaded image.
}

// NewEmulator creates a new emulator with its own RAM.
func NewEmulator() (emu *Emulator) {
	ram := &mem.RAM{}
	emu = &Emulator{
		Cpu:     cpu.NewCpu(ram),
		Mem:     ram,
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset clears the machine, loads the program image at its origin, and
// points the CPU at it. A program without a .org is relocated to
// LOAD_DEFAULT first, so labels and line mapping move with it and the
// image stays clear of page zero and the stack.
func (emu *Emulator) Reset() (err error) {
	if emu.Program.Origin == 0 {
		emu.Program.Relocate(LOAD_DEFAULT)
	}
	origin := emu.Program.Origin

	image := emu.Program.Binary()

	emu.Mem.Reset()
	emu.Mem.Load(origin, image)

	emu.Cpu.Reset()
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Registers.PC = origin
	emu.Cpu.Registers.S = RESET_STACK

	emu.origin = int(origin)
	emu.end = int(origin) + len(image)

	return
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() uint16 {
	return emu.Cpu.Registers.PC
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.Opcode.LineNo
}

// Tick executes a single instruction. It reports done when the program
// counter has left the loaded image, by running off its end or by a
// return into unloaded memory.
func (emu *Emulator) Tick() (done bool, err error) {
	pc := int(emu.Pc())
	if pc < emu.origin || pc >= emu.end {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Step()

	return
}

// Run ticks until the program leaves the image or the step limit is hit.
// The limit keeps a looping program from hanging the caller.
func (emu *Emulator) Run(limit int) (steps int, err error) {
	for steps < limit {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
		steps++
	}

	err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrStepLimit}

	return
}
