package cpu

import (
	"errors"

	"github.com/retrosim/mos6502/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrTruncated = errors.New(f("instruction truncated"))

	// Execution errors
	ErrInterrupt = errors.New(f("interrupt dispatch not implemented"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrOrgSyntax       = errors.New(f(".org syntax"))
	ErrOrgTooLate      = errors.New(f(".org after code"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrOperandRange    = errors.New(f("operand out of range"))
	ErrBranchRange     = errors.New(f("branch target out of range"))
)

// ErrUnknownOpcode is a decode error for an opcode byte with no table entry,
// including the deliberately unimplemented unofficial opcodes.
type ErrUnknownOpcode uint8

func (eo ErrUnknownOpcode) Error() string {
	return f("unknown opcode 0x%02x", uint8(eo))
}

func (eo ErrUnknownOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownOpcode)
	return
}

// ErrParseHex is a parse error for malformed textual instructions. It is
// distinct from the decode errors: the text never reached the opcode table.
type ErrParseHex string

func (ep ErrParseHex) Error() string {
	return f("'%v' is not a hex instruction", string(ep))
}

func (ep ErrParseHex) Is(err error) (ok bool) {
	_, ok = err.(ErrParseHex)
	return
}

// ErrEncode reports an instruction whose mnemonic/mode pairing has no opcode.
type ErrEncode Instruction

func (ee ErrEncode) Error() string {
	return f("no opcode encodes %v %v", Instruction(ee).Mnemonic, Instruction(ee).Address.Mode)
}

func (ee ErrEncode) Is(err error) (ok bool) {
	_, ok = err.(ErrEncode)
	return
}

type ErrMnemonicInvalid string

func (em ErrMnemonicInvalid) Error() string {
	return f("'%v' is not a mnemonic", string(em))
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseOperand string

func (err ErrParseOperand) Error() string {
	return f("'%v' is not an operand", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
