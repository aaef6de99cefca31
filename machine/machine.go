// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"fmt"
	"log"
	"slices"
)

// State is the execution state of a machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_ACTIVE = State(0) // active
	STATE_HALTED = State(1) // halted
)

// Machine is the execution context of a loaded program.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Registers Registers // Register file.
	IpReg     int       // Index of the register bound as the instruction pointer.
	State     State     // Current execution state.

	Ticks int // Executed instructions counter.

	program []Instruction
}

// NewMachine creates an active machine for a program. The program and
// the registers are copied, and are not shared with the caller.
func NewMachine(ipReg int, program []Instruction, registers Registers) (m *Machine) {
	m = &Machine{
		Registers: registers.Clone(),
		IpReg:     ipReg,
		State:     STATE_ACTIVE,
		program:   slices.Clone(program),
	}

	return
}

// Len returns the number of instructions in the program.
func (m *Machine) Len() int {
	return len(m.program)
}

// Ip returns the current value of the instruction pointer register.
func (m *Machine) Ip() int32 {
	return m.Registers.Get(m.IpReg)
}

// Halted returns true once the machine has stopped.
func (m *Machine) Halted() bool {
	return m.State == STATE_HALTED
}

// Fetch returns the instruction addressed by the instruction pointer.
func (m *Machine) Fetch() (ins Instruction, ok bool) {
	ip := m.Ip()
	if ip < 0 || int(ip) >= len(m.program) {
		return
	}

	return m.program[ip], true
}

// Step executes a single instruction.
//
// The instruction is applied first, then the instruction pointer register
// of the new state is incremented, overriding any write the instruction made
// to it. If the instruction pointer is outside the program, the machine
// halts and the registers are unchanged. Stepping a halted machine is a no-op.
func (m *Machine) Step() {
	if m.State == STATE_HALTED {
		return
	}

	ins, ok := m.Fetch()
	if !ok {
		if m.Verbose {
			log.Printf("machine: halt at ip %d", m.Ip())
		}
		m.State = STATE_HALTED
		return
	}

	if m.Verbose {
		log.Printf("machine: %02d: %-16v %v", m.Ip(), ins, m.Registers)
	}

	regs := ins.Apply(m.Registers)
	regs.Set(m.IpReg, regs.Get(m.IpReg)+1)
	m.Registers = regs
	m.Ticks++
}

// Run steps the machine until it halts. A program that never leaves its
// address range runs forever.
func (m *Machine) Run() {
	for m.State == STATE_ACTIVE {
		m.Step()
	}
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "state", m.State)
	text += fmt.Sprintf("% 6s: r%d = %d\n", "ip", m.IpReg, m.Ip())
	text += fmt.Sprintf("% 6s: %d\n", "ticks", m.Ticks)
	for n, val := range m.Registers {
		text += fmt.Sprintf("% 6s: %d\n", fmt.Sprintf("r%d", n), val)
	}

	return
}
