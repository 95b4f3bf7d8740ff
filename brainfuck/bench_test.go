package brainfuck

import (
	"io"
	"strings"
	"testing"
)

// BenchmarkRunLoopHeavy measures the interpreter on a nested countdown, the
// case the precomputed jump table exists for. Run with:
// go test -run=^$ -bench=BenchmarkRunLoopHeavy ./brainfuck
func BenchmarkRunLoopHeavy(b *testing.B) {
	// 255 iterations of an inner 255-step countdown.
	p := NewProgram("bench.bf", "-[>-[-]<-]")
	if err := p.Validate(); err != nil {
		b.Fatalf("Fixture failed validation: %v", err)
	}
	m, err := NewMachine(p, &MachineConfig{MemoryConfig: &MemoryConfig{CellCount: 2}})
	if err != nil {
		b.Fatalf("NewMachine failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Run(strings.NewReader(""), io.Discard); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

func BenchmarkLoadProgram(b *testing.B) {
	src := strings.Repeat("+[->+<] comment text that the scanner skips\n", 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewProgram("bench.bf", src)
	}
}
