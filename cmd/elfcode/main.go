// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/ezrec/elfcode/emulator"
	"github.com/ezrec/elfcode/machine"
	"github.com/ezrec/elfcode/sample"
	"github.com/ezrec/elfcode/translate"
)

// defineList collects -D NAME=VALUE assembler predefines.
type defineList map[string]string

func (dl defineList) String() string {
	var list []string
	for name, value := range dl {
		list = append(list, name+"="+value)
	}
	return strings.Join(list, ",")
}

func (dl defineList) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	if !ok || len(name) == 0 {
		return fmt.Errorf("%q is not NAME=VALUE", text)
	}
	dl[name] = value
	return nil
}

// parseRegisters parses a comma separated list of register values.
func parseRegisters(text string) (values []int32, err error) {
	if len(text) == 0 {
		return
	}

	for _, word := range strings.Split(text, ",") {
		var v64 int64
		v64, err = strconv.ParseInt(strings.TrimSpace(word), 0, 32)
		if err != nil {
			err = machine.ErrParseNumber(word)
			return
		}
		values = append(values, int32(v64))
	}

	return
}

// openInput opens a file, or stdin for "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func main() {
	var compile string
	var registers string
	var samples string
	var width int
	var breakpoint int
	var watch int
	var repeat bool
	var ticks int
	var verbose bool
	var lang string
	defines := defineList{}

	flag.StringVar(&compile, "c", "-", "Program file to assemble and run")
	flag.IntVar(&width, "w", emulator.DEFAULT_WIDTH, "Register width")
	flag.StringVar(&registers, "r", "", "Initial register values, comma separated")
	flag.IntVar(&breakpoint, "b", -1, "Break when the IP reaches this address")
	flag.IntVar(&watch, "watch", 0, "Register to report at the break address")
	flag.BoolVar(&repeat, "repeat", false, "Watch until a value repeats, report the last unique value")
	flag.StringVar(&samples, "s", "", "Sample file for opcode deduction")
	flag.Var(defines, "D", "Assembler predefine NAME=VALUE (repeatable)")
	flag.IntVar(&ticks, "n", 0, "Tick limit, 0 for none")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language, ie en-US (default from the environment)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		err := translate.Parse(lang)
		if err != nil {
			log.Fatalf("-lang: %v", err)
		}
	}

	if len(samples) != 0 {
		deduce(samples, verbose)
		return
	}

	inf, err := openInput(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	asm := &machine.Assembler{Verbose: verbose}
	for name, value := range defines {
		asm.Predefine(name, value)
	}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	if asm.Unknown != 0 {
		log.Printf("%v: %d unknown mnemonics assembled as nop", compile, asm.Unknown)
	}

	initial, err := parseRegisters(registers)
	if err != nil {
		log.Fatalf("-r: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	emu := emulator.NewEmulator(prog, width)
	emu.Verbose = verbose
	emu.MaxTicks = ticks
	emu.Reset(initial...)

	switch {
	case breakpoint >= 0 && repeat:
		value, err := emulator.LastBeforeRepeat(emu.Watch(ctx, int32(breakpoint), watch))
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		fmt.Println(value)
	case breakpoint >= 0:
		err = emu.Break(ctx, int32(breakpoint))
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		fmt.Println(emu.Machine.Registers.Get(watch))
	default:
		err = emu.Run(ctx)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		fmt.Println(emu.Machine.Registers)
	}

	if verbose {
		log.Printf("%v", emu.Machine)
	}
}

// deduce resolves the opcode numbers of a sample file, and runs its program.
func deduce(path string, verbose bool) {
	inf, err := openInput(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	defer inf.Close()

	puzzle, err := sample.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	puzzle.Verbose = verbose

	fmt.Println(puzzle.Ambiguous(3))

	mapping, err := puzzle.Resolve()
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	regs, err := puzzle.Execute(mapping)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	fmt.Println(regs.Get(0))
}
