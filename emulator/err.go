package emulator

import (
	"errors"

	"github.com/ezrec/elfcode/translate"
)

var f = translate.From

var (
	ErrHalted    = errors.New(f("halted"))
	ErrTickLimit = errors.New(f("tick limit exceeded"))
)

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
