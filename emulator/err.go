package emulator

import (
	"errors"

	"github.com/retrosim/mos6502/translate"
)

var f = translate.From

// ErrStepLimit reports a program that was still running when the caller's
// step limit was reached.
var ErrStepLimit = errors.New(f("step limit exceeded"))

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
