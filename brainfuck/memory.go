package brainfuck

import (
	"errors"
	"fmt"
)

// DEFAULT_CELL_WIDTH is the classic 8-bit cell.
const DEFAULT_CELL_WIDTH = 8

// MAX_CELL_WIDTH is as wide as the uint32 backing store allows.
const MAX_CELL_WIDTH = 32

// Sentinel errors for the two pointer moves that can fail. The Machine wraps
// them with the source position of the failing instruction.
var (
	ErrAtLeftEdge  = errors.New("pointer at cell 0")
	ErrAtRightEdge = errors.New("pointer at the last cell of a fixed tape")
)

type MemoryConfig struct {
	CellCount uint
	CellWidth uint
	CanExtend bool
}

// Memory is the tape: wrapping cells of a runtime-selected fixed bit width
// and the pointer into them. Cells are backed by uint32 and masked to the
// configured width, so one Memory type serves every width in [1,32].
type Memory struct {
	Cells     []uint32
	Pointer   uint
	CellWidth uint
	CanExtend bool
	max       uint32
}

func NewMemoryFromConfig(mc *MemoryConfig) (*Memory, error) {
	if mc == nil {
		return nil, fmt.Errorf("MemoryConfig cannot be nil")
	}
	if mc.CellCount == 0 {
		return nil, fmt.Errorf("CellCount must be at least 1")
	}
	width := mc.CellWidth
	if width == 0 {
		width = DEFAULT_CELL_WIDTH
	}
	if width > MAX_CELL_WIDTH {
		return nil, fmt.Errorf("CellWidth [%d] out of bounds [1, %d]", width, MAX_CELL_WIDTH)
	}
	return &Memory{
		Cells:     make([]uint32, mc.CellCount),
		Pointer:   0,
		CellWidth: width,
		CanExtend: mc.CanExtend,
		max:       uint32(1)<<width - 1,
	}, nil
}

// Reset zeroes every cell and returns the pointer to cell 0. The tape keeps
// whatever length it has grown to.
func (m *Memory) Reset() {
	for i := range m.Cells {
		m.Cells[i] = 0
	}
	m.Pointer = 0
}

// MaxValue is the largest value a cell can hold, 2^CellWidth - 1.
func (m *Memory) MaxValue() uint32 {
	return m.max
}

func (m *Memory) MovePointerLeft() error {
	if m.Pointer == 0 {
		return ErrAtLeftEdge
	}
	m.Pointer--
	return nil
}

// MovePointerRight advances the pointer. At the right edge a fixed tape
// fails; an extensible one doubles its length first, new cells zeroed, so
// repeated growth stays amortized constant per move.
func (m *Memory) MovePointerRight() error {
	if m.Pointer == uint(len(m.Cells))-1 {
		if !m.CanExtend {
			return ErrAtRightEdge
		}
		m.Cells = append(m.Cells, make([]uint32, len(m.Cells))...)
	}
	m.Pointer++
	return nil
}

// Increment adds one to the current cell, wrapping past the width maximum
// back to zero. Never fails.
func (m *Memory) Increment() {
	if m.Cells[m.Pointer] == m.max {
		m.Cells[m.Pointer] = 0
	} else {
		m.Cells[m.Pointer]++
	}
}

// Decrement subtracts one from the current cell, wrapping past zero to the
// width maximum. Never fails.
func (m *Memory) Decrement() {
	if m.Cells[m.Pointer] == 0 {
		m.Cells[m.Pointer] = m.max
	} else {
		m.Cells[m.Pointer]--
	}
}

// SetValue stores an external byte into the current cell, masked to the
// cell width. Identity for the default 8-bit cells.
func (m *Memory) SetValue(value byte) {
	m.Cells[m.Pointer] = uint32(value) & m.max
}

// GetValue converts the current cell back to the external byte domain.
func (m *Memory) GetValue() byte {
	return byte(m.Cells[m.Pointer])
}
