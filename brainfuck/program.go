package brainfuck

import (
	"fmt"
	"os"
	"strings"
)

// A Program is an immutable, source-ordered sequence of Instructions plus
// the identifier of where the text came from. Source is only ever used in
// error messages; the file is never reopened here.
type Program struct {
	Source       string
	Instructions []Instruction
}

// NewProgram scans text character by character, keeping a 1-based row and
// column. Any rune that isn't one of the eight OPs is skipped as a comment,
// whitespace and multi-byte runes included. Scanning never fails.
func NewProgram(source, text string) *Program {
	instructions := []Instruction{}
	for row, line := range strings.Split(text, "\n") {
		col := 0
		for _, r := range line {
			col++
			if op, ok := OpFromRune(r); ok {
				instructions = append(instructions, Instruction{
					Row: row + 1,
					Col: col,
					Op:  op,
				})
			}
		}
	}
	return &Program{Source: source, Instructions: instructions}
}

// LoadFile reads path and scans it into a Program, using the path itself as
// the source identifier.
func LoadFile(path string) (*Program, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program %q: %w", path, err)
	}
	return NewProgram(path, string(text)), nil
}

// Validate checks that every '[' has a matching ']' and vice versa, using an
// explicit stack so nesting depth of untrusted input can't blow the call
// stack. A ']' with nothing open fails at that instruction; leftover '['s
// fail at the earliest one still unmatched. A validated Program may be run
// any number of times without re-validation.
func (p *Program) Validate() error {
	stack := make([]Instruction, 0, len(p.Instructions))
	for _, ins := range p.Instructions {
		switch ins.Op {
		case OP_WHILE:
			stack = append(stack, ins)
		case OP_WHILE_END:
			if len(stack) == 0 {
				return &Error{Kind: ErrUnmatchedClose, Source: p.Source, Ins: ins}
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return &Error{Kind: ErrUnmatchedOpen, Source: p.Source, Ins: stack[0]}
	}
	return nil
}

// String dumps the instruction listing, one position-tagged line per OP.
func (p *Program) String() string {
	var sb strings.Builder
	for _, ins := range p.Instructions {
		fmt.Fprintf(&sb, "[%s:%d:%d] %s\n", p.Source, ins.Row, ins.Col, ins.Op)
	}
	return sb.String()
}
