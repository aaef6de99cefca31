// Package sample deduces opcode numbers from observed register samples.
//
// A sample records the registers before and after one numbered
// instruction `N A B C`, where N is an unknown opcode number. Comparing the
// candidate operations of many samples resolves every number to exactly one
// operation, after which a numbered program can be executed.
package sample

import (
	"bufio"
	"errors"
	"io"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/elfcode/machine"
)

const (
	WIDTH = 4 // Register file width of samples and programs.
)

// Code is a numbered instruction: opcode number, then A, B and C.
type Code [4]int32

// Instruction returns the code as an instruction of the given operation.
func (code Code) Instruction(op machine.Op) machine.Instruction {
	return machine.Instruction{Op: op, A: code[1], B: code[2], C: code[3]}
}

// Sample is an observed execution of a single numbered instruction.
type Sample struct {
	Before machine.Registers
	Code   Code
	After  machine.Registers
}

// Candidates returns the instructions consistent with the sample.
func (s Sample) Candidates() (list []machine.Instruction) {
	for _, op := range machine.Ops() {
		ins := s.Code.Instruction(op)
		if ins.Apply(s.Before).Equal(s.After) {
			list = append(list, ins)
		}
	}

	return
}

// Puzzle is a set of samples, and a numbered program to run.
type Puzzle struct {
	Verbose bool

	Samples []Sample
	Program []Code
}

// parseRegisters parses `Label: [a, b, c, d]`.
func parseRegisters(text string) (regs machine.Registers, err error) {
	_, list, _ := strings.Cut(text, ":")
	list = strings.TrimSpace(list)
	if !strings.HasPrefix(list, "[") || !strings.HasSuffix(list, "]") {
		err = ErrRegisters
		return
	}

	words := strings.Split(list[1:len(list)-1], ",")
	if len(words) != WIDTH {
		err = ErrRegisters
		return
	}

	regs = machine.NewRegisters(WIDTH)
	for n, word := range words {
		var v64 int64
		v64, err = strconv.ParseInt(strings.TrimSpace(word), 10, 32)
		if err != nil {
			err = errors.Join(ErrRegisters, machine.ErrParseNumber(word))
			return
		}
		regs[n] = int32(v64)
	}

	return
}

// parseCode parses `N A B C`.
func parseCode(text string) (code Code, err error) {
	words := strings.Fields(text)
	if len(words) != len(code) {
		err = ErrCode
		return
	}

	for n, word := range words {
		var v64 int64
		v64, err = strconv.ParseInt(word, 10, 32)
		if err != nil {
			err = errors.Join(ErrCode, machine.ErrParseNumber(word))
			return
		}
		code[n] = int32(v64)
	}

	return
}

// Parse reads samples followed by a numbered program.
//
//	Before: [3, 2, 1, 1]
//	9 2 1 2
//	After:  [3, 2, 2, 1]
//
// Numbered instructions outside of a sample belong to the program.
func Parse(input io.Reader) (puzzle *Puzzle, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &machine.ErrSyntax{LineNo: lineno, Line: line, Err: err}
			puzzle = nil
		}
	}()

	puzzle = &Puzzle{}

	var current *Sample
	var has_code bool

	for scanner.Scan() {
		lineno += 1
		line = strings.TrimSpace(scanner.Text())

		switch {
		case len(line) == 0:
			continue
		case strings.HasPrefix(line, "Before"):
			if current != nil {
				err = ErrIncomplete
				return
			}
			current = &Sample{}
			has_code = false
			current.Before, err = parseRegisters(line)
		case strings.HasPrefix(line, "After"):
			if current == nil || !has_code {
				err = ErrIncomplete
				return
			}
			current.After, err = parseRegisters(line)
			if err == nil {
				puzzle.Samples = append(puzzle.Samples, *current)
				current = nil
			}
		default:
			var code Code
			code, err = parseCode(line)
			if err != nil {
				return
			}
			if current == nil {
				puzzle.Program = append(puzzle.Program, code)
			} else if has_code {
				err = ErrIncomplete
			} else {
				current.Code = code
				has_code = true
			}
		}

		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err == nil && current != nil {
		err = ErrIncomplete
	}

	return
}

// Ambiguous returns the number of samples consistent with at least
// count operations.
func (puzzle *Puzzle) Ambiguous(count int) (total int) {
	for _, s := range puzzle.Samples {
		if len(s.Candidates()) >= count {
			total++
		}
	}

	return
}

// Resolve maps every opcode number seen in the samples to its operation.
func (puzzle *Puzzle) Resolve() (mapping map[int32]machine.Op, err error) {
	// Candidates by opcode number, keyed by canonical form.
	possible := map[int32]map[machine.Instruction]bool{}

	for _, s := range puzzle.Samples {
		found := map[machine.Instruction]bool{}
		for _, ins := range s.Candidates() {
			found[ins.Canonical()] = true
		}

		number := s.Code[0]
		prior, ok := possible[number]
		if !ok {
			possible[number] = found
			continue
		}
		maps.DeleteFunc(prior, func(ins machine.Instruction, _ bool) bool {
			return !found[ins]
		})
	}

	mapping = make(map[int32]machine.Op, len(possible))

	for len(possible) > 0 {
		progress := false

		for _, number := range slices.Sorted(maps.Keys(possible)) {
			found, ok := possible[number]
			if !ok {
				continue
			}

			switch len(found) {
			case 0:
				err = errors.Join(ErrContradiction, ErrUnmapped(number))
				return
			case 1:
				var ins machine.Instruction
				for ins = range found {
				}
				mapping[number] = ins.Kind()
				delete(possible, number)
				for _, other := range possible {
					delete(other, ins)
				}
				progress = true

				if puzzle.Verbose {
					log.Printf("sample: opcode %d is %v", number, ins.Kind())
				}
			}
		}

		if !progress {
			err = ErrUnresolved
			return
		}
	}

	return
}

// Execute runs the program from zeroed registers, with the given mapping
// from opcode numbers to operations.
func (puzzle *Puzzle) Execute(mapping map[int32]machine.Op) (regs machine.Registers, err error) {
	regs = machine.NewRegisters(WIDTH)

	for _, code := range puzzle.Program {
		op, ok := mapping[code[0]]
		if !ok {
			err = ErrUnmapped(code[0])
			return
		}
		regs = code.Instruction(op).Apply(regs)
	}

	return
}
