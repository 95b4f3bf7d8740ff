package brainfuck

import (
	"testing"
)

func TestOpFromRune(t *testing.T) {
	for _, op := range OP_SET {
		got, ok := OpFromRune(rune(op))
		if !ok {
			t.Errorf("OpFromRune(%q) not recognized as an OP", rune(op))
		}
		if got != op {
			t.Errorf("OpFromRune(%q) returned [%c], expected [%c]", rune(op), got, op)
		}
	}
}

func TestOpFromRuneComments(t *testing.T) {
	for _, r := range "aZ0 \t()&\\#^*中" {
		if op, ok := OpFromRune(r); ok {
			t.Errorf("OpFromRune(%q) unexpectedly mapped to [%c]", r, op)
		}
	}
}

func TestOpString(t *testing.T) {
	for _, op := range OP_SET {
		if op.String() == "unknown op" {
			t.Errorf("Op [%c] has no description", op)
		}
	}
	if Op('#').String() != "unknown op" {
		t.Errorf("Expected unknown description for non-OP byte")
	}
}
