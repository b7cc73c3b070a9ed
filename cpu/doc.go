// Package cpu implements the instruction-execution core of the MOS 6502
// microprocessor, plus an assembler for its documented instruction set.
//
// The core consists of the programmer-visible registers (accumulator A,
// index registers X and Y, stack pointer S addressing the fixed page-one
// stack window, and a 16-bit program counter), the six status flags, a
// static opcode table covering the 151 documented opcodes, an addressing
// mode resolver, and the execution engine that fetches, decodes, and
// executes one instruction at a time.
//
// Undocumented opcodes, cycle timing, decimal-mode arithmetic, and
// interrupt dispatch are deliberately not implemented: unknown opcodes are
// decode errors, the decimal flag is tracked but arithmetic-inert, and
// BRK/RTI decode but refuse to execute.
package cpu
