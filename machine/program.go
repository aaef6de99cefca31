package machine

import (
	"fmt"
	"iter"
	"strings"
)

// Statement is a decoded instruction with its source location.
type Statement struct {
	LineNo int      // Source line number.
	Words  []string // Source words, after equate expansion.
	Instruction
}

// Program is an assembled program.
type Program struct {
	IpReg      int // Register bound as the instruction pointer.
	Statements []Statement
}

// Instructions returns the executable instruction sequence.
func (prog *Program) Instructions() (list []Instruction) {
	list = make([]Instruction, len(prog.Statements))
	for n, stmt := range prog.Statements {
		list[n] = stmt.Instruction
	}

	return
}

// All iterates over the instructions, by address.
func (prog *Program) All() iter.Seq2[int32, Instruction] {
	return func(yield func(ip int32, ins Instruction) bool) {
		for n, stmt := range prog.Statements {
			if !yield(int32(n), stmt.Instruction) {
				return
			}
		}
	}
}

// LineNo returns the source line of the instruction at ip, or 0.
func (prog *Program) LineNo(ip int32) int {
	if ip < 0 || int(ip) >= len(prog.Statements) {
		return 0
	}

	return prog.Statements[ip].LineNo
}

// Machine creates a machine running the program from the given registers.
func (prog *Program) Machine(registers Registers) *Machine {
	return NewMachine(prog.IpReg, prog.Instructions(), registers)
}

// String lists the program as assembly text.
func (prog *Program) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "#ip %d\n", prog.IpReg)
	for _, ins := range prog.All() {
		fmt.Fprintf(&sb, "%v\n", ins)
	}

	return sb.String()
}
