package sample

import (
	"errors"

	"github.com/ezrec/elfcode/translate"
)

var f = translate.From

var (
	ErrRegisters     = errors.New(f("registers invalid"))
	ErrCode          = errors.New(f("numbered instruction invalid"))
	ErrIncomplete    = errors.New(f("sample incomplete"))
	ErrUnresolved    = errors.New(f("opcode numbers unresolved"))
	ErrContradiction = errors.New(f("opcode number has no candidates"))
)

type ErrUnmapped int32

func (err ErrUnmapped) Error() string {
	return f("opcode number %d unmapped", int32(err))
}
