package machine

import (
	"fmt"
	"slices"
	"strings"
)

// Registers is a register file of fixed width.
//
// Out-of-range reads yield zero, and out-of-range writes are ignored.
type Registers []int32

// NewRegisters creates a zeroed register file of the given width, then
// loads values into the leading registers. Surplus values are dropped.
func NewRegisters(width int, values ...int32) (regs Registers) {
	regs = make(Registers, width)
	copy(regs, values)

	return
}

// Width returns the number of registers.
func (regs Registers) Width() int {
	return len(regs)
}

// Get returns the value of a register, or zero if index is out of range.
func (regs Registers) Get(index int) int32 {
	if index < 0 || index >= len(regs) {
		return 0
	}

	return regs[index]
}

// Set sets the value of a register. Out of range indexes are a no-op.
func (regs Registers) Set(index int, value int32) {
	if index < 0 || index >= len(regs) {
		return
	}

	regs[index] = value
}

// Clone returns an independent copy of the register file.
func (regs Registers) Clone() Registers {
	return slices.Clone(regs)
}

// Equal returns true if both register files have the same width and values.
func (regs Registers) Equal(other Registers) bool {
	return slices.Equal(regs, other)
}

// String renders the registers as `[a, b, c, d]`.
func (regs Registers) String() string {
	vals := make([]string, len(regs))
	for n, val := range regs {
		vals[n] = fmt.Sprintf("%d", val)
	}

	return "[" + strings.Join(vals, ", ") + "]"
}
