package brainfuck

import (
	"fmt"
)

// ErrKind names the ways a load, validation, or run can fail. Presentation
// stays the caller's concern; an Error carries the structured fields.
type ErrKind int

const (
	ErrUnmatchedOpen ErrKind = iota + 1
	ErrUnmatchedClose
	ErrPointerUnderflow
	ErrPointerOverflow
	ErrReadInput
	ErrWriteOutput
)

// An Error ties a failure to the instruction that caused it. Err holds the
// underlying I/O error for the read/write kinds and is nil otherwise.
type Error struct {
	Kind   ErrKind
	Source string
	Ins    Instruction
	Err    error
}

func (e *Error) Error() string {
	at := fmt.Sprintf("[%s:%d:%d]", e.Source, e.Ins.Row, e.Ins.Col)
	switch e.Kind {
	case ErrUnmatchedOpen:
		return fmt.Sprintf("%s found '[' with no matching ']'", at)
	case ErrUnmatchedClose:
		return fmt.Sprintf("%s found ']' with no matching '['", at)
	case ErrPointerUnderflow:
		return fmt.Sprintf("%s cannot move left, pointer already at cell 0", at)
	case ErrPointerOverflow:
		return fmt.Sprintf("%s cannot move right, pointer at the end of a fixed tape", at)
	case ErrReadInput:
		return fmt.Sprintf("%s cannot read input: %v", at, e.Err)
	case ErrWriteOutput:
		return fmt.Sprintf("%s cannot write output: %v", at, e.Err)
	}
	return fmt.Sprintf("%s unknown interpreter error", at)
}

func (e *Error) Unwrap() error {
	return e.Err
}
