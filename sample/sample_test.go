package sample

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/elfcode/machine"
)

func TestSample_Candidates(t *testing.T) {
	assert := assert.New(t)

	s := Sample{
		Before: machine.Registers{3, 2, 1, 1},
		Code:   Code{9, 2, 1, 2},
		After:  machine.Registers{3, 2, 2, 1},
	}

	assert.Equal([]machine.Instruction{
		{Op: machine.OP_ADDI, A: 2, B: 1, C: 2},
		{Op: machine.OP_MULR, A: 2, B: 1, C: 2},
		{Op: machine.OP_SETI, A: 2, B: 1, C: 2},
	}, s.Candidates())
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	text := []string{
		"Before: [3, 2, 1, 1]",
		"9 2 1 2",
		"After:  [3, 2, 2, 1]",
		"",
		"Before: [0, 1, 2, 3]",
		"4 1 2 3",
		"After:  [0, 1, 2, 2]",
		"",
		"",
		"",
		"7 3 2 0",
		"7 2 1 1",
	}

	puzzle, err := Parse(strings.NewReader(strings.Join(text, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal([]Sample{
		{machine.Registers{3, 2, 1, 1}, Code{9, 2, 1, 2}, machine.Registers{3, 2, 2, 1}},
		{machine.Registers{0, 1, 2, 3}, Code{4, 1, 2, 3}, machine.Registers{0, 1, 2, 2}},
	}, puzzle.Samples)
	assert.Equal([]Code{{7, 3, 2, 0}, {7, 2, 1, 1}}, puzzle.Program)

	assert.Equal(1, puzzle.Ambiguous(3))
	assert.Equal(2, puzzle.Ambiguous(1))
}

func TestParse_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   []string
		lineno int
		err    error
	}){
		{"registers", []string{"Before: 3, 2, 1, 1"}, 1, ErrRegisters},
		{"width", []string{"Before: [3, 2, 1]"}, 1, ErrRegisters},
		{"number", []string{"Before: [3, 2, x, 1]"}, 1, ErrRegisters},
		{"code", []string{"9 2 1"}, 1, ErrCode},
		{"after_first", []string{"After: [3, 2, 1, 1]"}, 1, ErrIncomplete},
		{"no_code", []string{"Before: [3, 2, 1, 1]", "After: [3, 2, 1, 1]"}, 2, ErrIncomplete},
		{"two_codes", []string{"Before: [3, 2, 1, 1]", "1 2 3 4", "1 2 3 4"}, 3, ErrIncomplete},
		{"no_after", []string{"Before: [3, 2, 1, 1]", "1 2 3 4"}, 2, ErrIncomplete},
	}

	for _, entry := range table {
		puzzle, err := Parse(strings.NewReader(strings.Join(entry.text, "\n")))
		assert.Nil(puzzle, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *machine.ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

// generate creates samples from a known numbering of the operations.
func generate(numbering map[machine.Op]int32, count int) (puzzle *Puzzle) {
	rng := rand.New(rand.NewSource(1))

	puzzle = &Puzzle{}
	for _, op := range machine.Ops() {
		number := numbering[op]
		for range count {
			before := machine.NewRegisters(WIDTH)
			for n := range before {
				before[n] = int32(rng.Intn(16))
			}
			code := Code{number, int32(rng.Intn(WIDTH)), int32(rng.Intn(WIDTH)), int32(rng.Intn(WIDTH))}
			puzzle.Samples = append(puzzle.Samples, Sample{
				Before: before,
				Code:   code,
				After:  code.Instruction(op).Apply(before),
			})
		}
	}

	return
}

func TestPuzzle_Resolve(t *testing.T) {
	assert := assert.New(t)

	numbering := map[machine.Op]int32{}
	for n, op := range machine.Ops() {
		numbering[op] = int32((n * 5) % 16)
	}

	puzzle := generate(numbering, 256)

	mapping, err := puzzle.Resolve()
	assert.NoError(err)
	assert.Equal(16, len(mapping))
	for op, number := range numbering {
		assert.Equal(op, mapping[number], fmt.Sprintf("%v", op))
	}
}

func TestPuzzle_ResolveErrors(t *testing.T) {
	assert := assert.New(t)

	example := Sample{
		Before: machine.Registers{3, 2, 1, 1},
		Code:   Code{9, 2, 1, 2},
		After:  machine.Registers{3, 2, 2, 1},
	}

	puzzle := &Puzzle{Samples: []Sample{example}}
	_, err := puzzle.Resolve()
	assert.ErrorIs(err, ErrUnresolved)

	impossible := Sample{
		Before: machine.Registers{0, 0, 0, 0},
		Code:   Code{9, 0, 0, 1},
		After:  machine.Registers{0, 5, 0, 0},
	}
	assert.Empty(impossible.Candidates())

	puzzle = &Puzzle{Samples: []Sample{example, impossible}}
	_, err = puzzle.Resolve()
	assert.ErrorIs(err, ErrContradiction)
	assert.ErrorIs(err, ErrUnmapped(9))
}

func TestPuzzle_Execute(t *testing.T) {
	assert := assert.New(t)

	mapping := map[int32]machine.Op{
		0: machine.OP_SETI,
		1: machine.OP_ADDR,
		2: machine.OP_MULI,
		3: machine.OP_EQRI,
	}

	puzzle := &Puzzle{
		Program: []Code{
			{0, 7, 0, 1}, // r1 = 7
			{0, 5, 0, 2}, // r2 = 5
			{1, 1, 2, 0}, // r0 = 12
			{2, 0, 3, 0}, // r0 = 36
			{3, 0, 36, 3}, // r3 = 1
		},
	}

	regs, err := puzzle.Execute(mapping)
	assert.NoError(err)
	assert.Equal(machine.Registers{36, 7, 5, 1}, regs)

	puzzle.Program = append(puzzle.Program, Code{12, 0, 0, 0})
	_, err = puzzle.Execute(mapping)
	assert.ErrorIs(err, ErrUnmapped(12))
}
