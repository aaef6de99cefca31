package machine

import (
	"fmt"
)

// Op is an instruction operation.
//
// Suffixes name the operand sources: `r` reads a register, `i` uses the
// operand value itself. Comparisons list the sources for A then B.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP  = Op(0)  // nop
	OP_ADDR = Op(1)  // addr
	OP_ADDI = Op(2)  // addi
	OP_MULR = Op(3)  // mulr
	OP_MULI = Op(4)  // muli
	OP_BANR = Op(5)  // banr
	OP_BANI = Op(6)  // bani
	OP_BORR = Op(7)  // borr
	OP_BORI = Op(8)  // bori
	OP_SETR = Op(9)  // setr
	OP_SETI = Op(10) // seti
	OP_GTIR = Op(11) // gtir
	OP_GTRI = Op(12) // gtri
	OP_GTRR = Op(13) // gtrr
	OP_EQIR = Op(14) // eqir
	OP_EQRI = Op(15) // eqri
	OP_EQRR = Op(16) // eqrr
)

// opMap maps mnemonics to operations. OP_NOP is deliberately absent.
var opMap = map[string]Op{}

func init() {
	for _, op := range Ops() {
		opMap[op.String()] = op
	}
}

// Ops returns the sixteen executable operations, excluding OP_NOP.
func Ops() []Op {
	return []Op{
		OP_ADDR, OP_ADDI,
		OP_MULR, OP_MULI,
		OP_BANR, OP_BANI,
		OP_BORR, OP_BORI,
		OP_SETR, OP_SETI,
		OP_GTIR, OP_GTRI, OP_GTRR,
		OP_EQIR, OP_EQRI, OP_EQRR,
	}
}

// Lookup finds the operation for a mnemonic.
func Lookup(mnemonic string) (op Op, ok bool) {
	op, ok = opMap[mnemonic]
	return
}

// Instruction is a decoded operation with its three operands.
type Instruction struct {
	Op Op
	A  int32
	B  int32
	C  int32
}

// Kind returns the operation, independent of operands.
func (ins Instruction) Kind() Op {
	return ins.Op
}

// Canonical returns the instruction with all operands zeroed, so that
// instructions of the same operation compare equal.
func (ins Instruction) Canonical() Instruction {
	return Instruction{Op: ins.Op}
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() string {
	return fmt.Sprintf("%v %d %d %d", ins.Op, ins.A, ins.B, ins.C)
}

// flag converts a comparison result to a register value.
func flag(cond bool) int32 {
	if cond {
		return 1
	}
	return 0
}

// Apply returns the register state after executing the instruction.
// The input registers are never modified. Arithmetic wraps on overflow.
func (ins Instruction) Apply(input Registers) (output Registers) {
	output = input.Clone()

	a := ins.A
	b := ins.B
	c := int(ins.C)

	reg := func(index int32) int32 { return input.Get(int(index)) }

	switch ins.Op {
	case OP_ADDR:
		output.Set(c, reg(a)+reg(b))
	case OP_ADDI:
		output.Set(c, reg(a)+b)
	case OP_MULR:
		output.Set(c, reg(a)*reg(b))
	case OP_MULI:
		output.Set(c, reg(a)*b)
	case OP_BANR:
		output.Set(c, reg(a)&reg(b))
	case OP_BANI:
		output.Set(c, reg(a)&b)
	case OP_BORR:
		output.Set(c, reg(a)|reg(b))
	case OP_BORI:
		output.Set(c, reg(a)|b)
	case OP_SETR:
		output.Set(c, reg(a))
	case OP_SETI:
		output.Set(c, a)
	case OP_GTIR:
		output.Set(c, flag(a > reg(b)))
	case OP_GTRI:
		output.Set(c, flag(reg(a) > b))
	case OP_GTRR:
		output.Set(c, flag(reg(a) > reg(b)))
	case OP_EQIR:
		output.Set(c, flag(a == reg(b)))
	case OP_EQRI:
		output.Set(c, flag(reg(a) == b))
	case OP_EQRR:
		output.Set(c, flag(reg(a) == reg(b)))
	default:
		// OP_NOP, and anything else, leaves the registers alone.
	}

	return
}
