package brainfuck

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewProgramSkipsComments(t *testing.T) {
	p := NewProgram("test.bf", "<>+some none bf comments!85\t\n()&\\-[],.")

	expected := []Op{
		OP_POINTER_LEFT,
		OP_POINTER_RIGHT,
		OP_INC,
		OP_DEC,
		OP_WHILE,
		OP_WHILE_END,
		OP_INPUT,
		OP_OUTPUT,
	}

	if len(p.Instructions) != len(expected) {
		t.Fatalf("Expected %d instructions, got %d", len(expected), len(p.Instructions))
	}
	for i, ins := range p.Instructions {
		if ins.Op != expected[i] {
			t.Errorf("Instruction %d: expected [%c], got [%c]", i, expected[i], ins.Op)
		}
	}
}

func TestNewProgramPositions(t *testing.T) {
	text := "<>\nsome comment\neven comment in another language\n中文+-"
	p := NewProgram("test.bf", text)

	expected := []Instruction{
		{Row: 1, Col: 1, Op: OP_POINTER_LEFT},
		{Row: 1, Col: 2, Op: OP_POINTER_RIGHT},
		{Row: 4, Col: 3, Op: OP_INC},
		{Row: 4, Col: 4, Op: OP_DEC},
	}

	if !reflect.DeepEqual(p.Instructions, expected) {
		t.Errorf("Parsed instructions %v don't match expected %v", p.Instructions, expected)
	}
}

func TestNewProgramEmpty(t *testing.T) {
	p := NewProgram("empty.bf", "")
	if len(p.Instructions) != 0 {
		t.Errorf("Empty source produced %d instructions", len(p.Instructions))
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Empty program failed validation: %v", err)
	}
}

func TestValidateUnmatchedClose(t *testing.T) {
	p := NewProgram("close.bf", "]")
	err := p.Validate()
	if err == nil {
		t.Fatalf("Expected validation failure for %q", "]")
	}

	var berr *Error
	if !errors.As(err, &berr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if berr.Kind != ErrUnmatchedClose {
		t.Errorf("Expected ErrUnmatchedClose, got kind %d", berr.Kind)
	}
	if berr.Source != "close.bf" {
		t.Errorf("Unexpected source: %q", berr.Source)
	}
	if berr.Ins != (Instruction{Row: 1, Col: 1, Op: OP_WHILE_END}) {
		t.Errorf("Unexpected instruction: %+v", berr.Ins)
	}
}

func TestValidateUnmatchedOpenReportsEarliest(t *testing.T) {
	p := NewProgram("open.bf", "[[[]")
	err := p.Validate()
	if err == nil {
		t.Fatalf("Expected validation failure for %q", "[[[]")
	}

	var berr *Error
	if !errors.As(err, &berr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if berr.Kind != ErrUnmatchedOpen {
		t.Errorf("Expected ErrUnmatchedOpen, got kind %d", berr.Kind)
	}
	if berr.Ins != (Instruction{Row: 1, Col: 1, Op: OP_WHILE}) {
		t.Errorf("Expected earliest unmatched open at 1:1, got %+v", berr.Ins)
	}
}

func TestValidateBalanced(t *testing.T) {
	for _, src := range []string{"[]", "[][[]]", "+[-]", "[[[][]]]"} {
		p := NewProgram("ok.bf", src)
		if err := p.Validate(); err != nil {
			t.Errorf("Expected %q to validate, got: %v", src, err)
		}
	}
	for _, src := range []string{"[", "]", "[]]", "][", "[[]"} {
		p := NewProgram("bad.bf", src)
		if err := p.Validate(); err == nil {
			t.Errorf("Expected %q to fail validation", src)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "three.bf")
	if err := os.WriteFile(path, []byte("+++."), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if p.Source != path {
		t.Errorf("Expected source %q, got %q", path, p.Source)
	}
	if len(p.Instructions) != 4 {
		t.Errorf("Expected 4 instructions, got %d", len(p.Instructions))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.bf")); err == nil {
		t.Errorf("Expected LoadFile to fail on a missing file")
	}
}
