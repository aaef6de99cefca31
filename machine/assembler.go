// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/elfcode/internal"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for elfcode programs.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	Unknown int  // Count of unrecognized mnemonics, assembled as no-ops.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate,
// to be applied on the next Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Directive decodes an instruction pointer directive, `#ip N`.
// The last word of the line is the register index.
func Directive(line string) (ipReg int, ok bool, err error) {
	if !strings.HasPrefix(line, "#") {
		return
	}
	ok = true

	words := strings.Fields(line)
	last := words[len(words)-1]
	ipReg, err = strconv.Atoi(last)
	if err != nil || ipReg < 0 {
		ipReg = 0
		err = errors.Join(ErrDirective, ErrParseNumber(last))
		return
	}

	return
}

// Decode decodes a line of the form `<mnemonic> A B C`.
//
// Unknown alphabetic mnemonics decode to OP_NOP. Lines of any other form
// are not instructions, and ok is false.
func Decode(line string) (ins Instruction, ok bool) {
	return decodeWords(strings.Fields(line))
}

// decodeWords decodes the words of an instruction.
func decodeWords(words []string) (ins Instruction, ok bool) {
	if len(words) != 4 {
		return
	}

	mnemonic := words[0]
	for _, r := range mnemonic {
		if !unicode.IsLetter(r) {
			return
		}
	}

	var operand [3]int32
	for n, word := range words[1:] {
		v64, err := strconv.ParseInt(word, 10, 32)
		if err != nil {
			return
		}
		operand[n] = int32(v64)
	}

	op, known := Lookup(mnemonic)
	if !known {
		return Instruction{Op: OP_NOP}, true
	}

	ins = Instruction{Op: op, A: operand[0], B: operand[1], C: operand[2]}
	ok = true
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > math.MaxInt32 || st_int64 < math.MinInt32 {
		err = ErrParseExpression(expr)
		return
	}
	value = int32(st_int64)
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// Parse parses an input stream into a Program.
//
// The only fatal form of the instruction stream itself is a malformed `#ip`
// directive. Lines that are not instructions are skipped.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	asm.Unknown = 0
	asm.Equate = maps.Collect(internal.IterSeq2Concat(maps.All(sysEquate), maps.All(asm.predefine)))

	prog = &Program{}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		if len(line) == 0 {
			continue
		}

		var ipReg int
		var ok bool
		ipReg, ok, err = Directive(line)
		if err != nil {
			return
		}
		if ok {
			prog.IpReg = ipReg
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		ins, ok := decodeWords(words)
		if !ok {
			if asm.Verbose && len(words) != 0 {
				log.Printf("%v: skipped %v", lineno, words)
			}
			continue
		}

		if ins.Op == OP_NOP && words[0] != OP_NOP.String() {
			asm.Unknown++
			if asm.Verbose {
				log.Printf("%v: unknown mnemonic '%v', assembled as nop", lineno, words[0])
			}
		}

		prog.Statements = append(prog.Statements, Statement{
			LineNo:      lineno,
			Words:       words,
			Instruction: ins,
		})
	}

	err = scanner.Err()

	return
}

// Parse assembles a program with a default Assembler.
func Parse(input io.Reader) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(input)
}

// MustParse assembles program text, and panics on error.
func MustParse(text string) *Program {
	prog, err := Parse(strings.NewReader(text))
	if err != nil {
		panic(err)
	}

	return prog
}
