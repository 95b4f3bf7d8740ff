package brainfuck

import (
	"errors"
	"fmt"
	"io"
)

// ErrMaxInstructionExecutionCountReached halts a run that exceeds the
// configured instruction budget. A zero budget means no limit.
var ErrMaxInstructionExecutionCountReached error = errors.New("instruction execution count limit reached")

type MachineConfig struct {
	MaxInstructionExecutionCount uint
	MemoryConfig                 *MemoryConfig
}

// A Machine executes one validated Program: a program counter over the
// instruction sequence, the Memory tape, and a bidirectional jump table
// resolving each '[' to its ']' and back. The table is built once at
// construction, so loop-heavy programs cost time proportional to executed
// instructions rather than instructions times source length. The Program
// and the table are read-only during a run; Run resets the mutable state,
// so one Machine may interpret its Program any number of times.
type Machine struct {
	Program          *Program
	Memory           *Memory
	Config           *MachineConfig
	InstructionCount uint

	pc          int
	openToClose map[int]int
	closeToOpen map[int]int
}

// NewMachine builds a Machine for program. The program must already have
// passed Validate; NewMachine panics on unbalanced brackets, since reaching
// execution with an unvalidated program is a caller bug, not a user error.
func NewMachine(program *Program, mc *MachineConfig) (*Machine, error) {
	if program == nil {
		return nil, fmt.Errorf("program cannot be nil")
	}
	if mc == nil {
		return nil, fmt.Errorf("MachineConfig cannot be nil")
	}
	memory, err := NewMemoryFromConfig(mc.MemoryConfig)
	if err != nil {
		return nil, err
	}

	openToClose := make(map[int]int)
	closeToOpen := make(map[int]int)
	stack := make([]int, 0, len(program.Instructions))
	for idx, ins := range program.Instructions {
		switch ins.Op {
		case OP_WHILE:
			stack = append(stack, idx)
		case OP_WHILE_END:
			if len(stack) == 0 {
				panic(fmt.Sprintf("NewMachine called with unvalidated program %q: ']' at index %d has no open", program.Source, idx))
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			openToClose[open] = idx
			closeToOpen[idx] = open
		}
	}
	if len(stack) > 0 {
		panic(fmt.Sprintf("NewMachine called with unvalidated program %q: '[' at index %d has no close", program.Source, stack[0]))
	}

	return &Machine{
		Program:     program,
		Memory:      memory,
		Config:      mc,
		openToClose: openToClose,
		closeToOpen: closeToOpen,
	}, nil
}

// Reset rewinds the program counter and zeroes the tape and instruction
// counter. Run calls it on entry.
func (m *Machine) Reset() {
	m.pc = 0
	m.InstructionCount = 0
	m.Memory.Reset()
}

// PC exposes the program counter, mostly for tests. It ends at
// len(Program.Instructions) on a normal run.
func (m *Machine) PC() int {
	return m.pc
}

// Run interprets the whole program against input and output, to completion
// or first error. Output is wrapped so the stream always ends on a line
// boundary, whichever way Run exits; bytes already written before a failure
// stay written. Nothing is retried and nothing blocks except reading one
// input byte and flushing output.
func (m *Machine) Run(input io.Reader, output io.Writer) (err error) {
	m.Reset()

	anw := NewAutoNewlineWriter(output)
	defer func() {
		if ferr := anw.Finalize(); err == nil && ferr != nil {
			err = fmt.Errorf("failed to finalize output: %w", ferr)
		}
	}()

	for m.pc < len(m.Program.Instructions) {
		ins := m.Program.Instructions[m.pc]
		switch ins.Op {
		case OP_POINTER_LEFT:
			if merr := m.Memory.MovePointerLeft(); merr != nil {
				return &Error{Kind: ErrPointerUnderflow, Source: m.Program.Source, Ins: ins, Err: merr}
			}
			m.pc++
		case OP_POINTER_RIGHT:
			if merr := m.Memory.MovePointerRight(); merr != nil {
				return &Error{Kind: ErrPointerOverflow, Source: m.Program.Source, Ins: ins, Err: merr}
			}
			m.pc++
		case OP_INC:
			m.Memory.Increment()
			m.pc++
		case OP_DEC:
			m.Memory.Decrement()
			m.pc++
		case OP_INPUT:
			var buf [1]byte
			if _, rerr := io.ReadFull(input, buf[:]); rerr != nil {
				return &Error{Kind: ErrReadInput, Source: m.Program.Source, Ins: ins, Err: rerr}
			}
			m.Memory.SetValue(buf[0])
			m.pc++
		case OP_OUTPUT:
			if _, werr := anw.Write([]byte{m.Memory.GetValue()}); werr != nil {
				return &Error{Kind: ErrWriteOutput, Source: m.Program.Source, Ins: ins, Err: werr}
			}
			if werr := anw.Flush(); werr != nil {
				return &Error{Kind: ErrWriteOutput, Source: m.Program.Source, Ins: ins, Err: werr}
			}
			m.pc++
		case OP_WHILE:
			if m.Memory.Cells[m.Memory.Pointer] == 0 {
				m.pc = m.matchingClose(m.pc) + 1
			} else {
				m.pc++
			}
		case OP_WHILE_END:
			if m.Memory.Cells[m.Memory.Pointer] != 0 {
				m.pc = m.matchingOpen(m.pc) + 1
			} else {
				m.pc++
			}
		default:
			panic(fmt.Sprintf("unknown OP [%c] at program index %d", ins.Op, m.pc))
		}

		m.InstructionCount++
		if max := m.Config.MaxInstructionExecutionCount; max > 0 && m.InstructionCount >= max {
			if m.pc < len(m.Program.Instructions) {
				return ErrMaxInstructionExecutionCountReached
			}
		}
	}

	return nil
}

// matchingClose and matchingOpen consult the jump table. A miss means the
// table no longer agrees with the validated program, which is a bug here,
// not a condition the caller can handle.

func (m *Machine) matchingClose(open int) int {
	closeIdx, ok := m.openToClose[open]
	if !ok {
		panic(fmt.Sprintf("jump table has no close for '[' at index %d", open))
	}
	return closeIdx
}

func (m *Machine) matchingOpen(close int) int {
	open, ok := m.closeToOpen[close]
	if !ok {
		panic(fmt.Sprintf("jump table has no open for ']' at index %d", close))
	}
	return open
}
