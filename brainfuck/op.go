package brainfuck

// The OPs for Brainfuck. Eight of them, one per source character. Everything
// else in a source file is commentary and never makes it into a Program.

type Op byte

const (
	OP_POINTER_LEFT  = Op('<')
	OP_POINTER_RIGHT = Op('>')
	OP_INC           = Op('+')
	OP_DEC           = Op('-')
	OP_INPUT         = Op(',')
	OP_OUTPUT        = Op('.')
	OP_WHILE         = Op('[')
	OP_WHILE_END     = Op(']')
)

var OP_SET [8]Op = [...]Op{
	OP_POINTER_LEFT,
	OP_POINTER_RIGHT,
	OP_INC,
	OP_DEC,
	OP_INPUT,
	OP_OUTPUT,
	OP_WHILE,
	OP_WHILE_END,
}

// OpFromRune maps a source rune to its Op. The second return is false for
// every rune that is not one of the eight instructions.
func OpFromRune(r rune) (Op, bool) {
	switch r {
	case '<':
		return OP_POINTER_LEFT, true
	case '>':
		return OP_POINTER_RIGHT, true
	case '+':
		return OP_INC, true
	case '-':
		return OP_DEC, true
	case ',':
		return OP_INPUT, true
	case '.':
		return OP_OUTPUT, true
	case '[':
		return OP_WHILE, true
	case ']':
		return OP_WHILE_END, true
	}
	return 0, false
}

func (o Op) String() string {
	switch o {
	case OP_POINTER_LEFT:
		return "move pointer left"
	case OP_POINTER_RIGHT:
		return "move pointer right"
	case OP_INC:
		return "increment current cell"
	case OP_DEC:
		return "decrement current cell"
	case OP_INPUT:
		return "read input into current cell"
	case OP_OUTPUT:
		return "write current cell to output"
	case OP_WHILE:
		return "begin loop"
	case OP_WHILE_END:
		return "end loop"
	}
	return "unknown op"
}

// An Instruction is an Op tagged with where it came from. Row and Col are
// 1-based and only ever used for error messages and loop matching.
type Instruction struct {
	Row int
	Col int
	Op  Op
}
