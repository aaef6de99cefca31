// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a register machine on behalf of a caller:
// bounded runs, breakpoints and register watches.
package emulator

import (
	"context"
	"iter"
	"log"

	"github.com/ezrec/elfcode/internal"
	"github.com/ezrec/elfcode/machine"
)

const (
	CHECK_TICKS   = 1 << 16 // Ticks between context cancellation checks.
	DEFAULT_WIDTH = 6       // Default register file width.
)

// Emulator state. Machine + the program listing it was loaded from.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*machine.Machine                  // Reference to the machine simulation.
	Program          *machine.Program // Reference to the currently running program listing.

	Width    int // Register file width.
	MaxTicks int // Tick limit for Run and Break, or 0 for no limit.
}

// NewEmulator creates a new emulator for a program, reset to zeroed registers.
func NewEmulator(prog *machine.Program, width int) (emu *Emulator) {
	emu = &Emulator{
		Program: prog,
		Width:   width,
	}

	emu.Reset()

	return
}

// Reset reloads the machine. The leading registers are set from initial,
// the remainder are zero.
func (emu *Emulator) Reset(initial ...int32) {
	emu.Machine = emu.Program.Machine(machine.NewRegisters(emu.Width, initial...))
	emu.Machine.Verbose = emu.Verbose

	if emu.Verbose {
		log.Printf("emulator: reset %v", emu.Machine.Registers)
	}
}

// LineNo returns the source line number of the instruction at the IP.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Machine.Ip())
}

// Tick performs a single step of the machine, returning true once halted.
func (emu *Emulator) Tick() (done bool) {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Step()

	return emu.Machine.Halted()
}

// tick performs a single step, subject to the tick limit and context.
func (emu *Emulator) tick(ctx context.Context) (done bool, err error) {
	m := emu.Machine

	if emu.MaxTicks > 0 && m.Ticks >= emu.MaxTicks {
		if _, ok := m.Fetch(); ok && !m.Halted() {
			err = ErrTickLimit
			return
		}
	}

	if m.Ticks%CHECK_TICKS == 0 {
		err = ctx.Err()
		if err != nil {
			return
		}
	}

	done = emu.Tick()

	return
}

// runtimeError wraps errors with the current line number.
func (emu *Emulator) runtimeError(err *error) {
	if *err != nil {
		*err = &ErrRuntime{LineNo: emu.LineNo(), Err: *err}
	}
}

// Run runs the machine until it halts, the context is done, or the tick
// limit is reached.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	defer emu.runtimeError(&err)

	for done := false; !done; {
		done, err = emu.tick(ctx)
		if err != nil {
			return
		}
	}

	return
}

// Break runs the machine until a step leaves the IP at ip.
// If the machine halts first, ErrHalted is returned.
func (emu *Emulator) Break(ctx context.Context, ip int32) (err error) {
	defer emu.runtimeError(&err)

	for {
		var done bool
		done, err = emu.tick(ctx)
		if err != nil {
			return
		}
		if done {
			err = ErrHalted
			return
		}
		if emu.Machine.Ip() == ip {
			if emu.Verbose {
				log.Printf("emulator: break at %d: %v", ip, emu.Machine.Registers)
			}
			return
		}
	}
}

// Watch iterates over the value of register reg each time execution
// reaches ip. The sequence ends after yielding an error.
func (emu *Emulator) Watch(ctx context.Context, ip int32, reg int) iter.Seq2[int32, error] {
	return func(yield func(value int32, err error) bool) {
		for {
			err := emu.Break(ctx, ip)
			if err != nil {
				yield(0, err)
				return
			}
			if !yield(emu.Machine.Registers.Get(reg), nil) {
				return
			}
		}
	}
}

// LastBeforeRepeat returns the last value of a watch before any value
// repeats.
func LastBeforeRepeat(seq iter.Seq2[int32, error]) (last int32, err error) {
	var values iter.Seq[int32] = func(yield func(int32) bool) {
		for value, _err := range seq {
			if _err != nil {
				err = _err
				return
			}
			if !yield(value) {
				return
			}
		}
	}

	for value := range internal.IterSeqDistinct(values) {
		last = value
	}

	return
}
