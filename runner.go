package bfrun

import (
	"io"
	"log"
	"time"

	cp "github.com/jinzhu/copier"

	bf "nickandperla.net/bfrun/brainfuck"
)

// OUTPUT_CAPTURE_LIMIT caps how much program output a RunReport keeps.
// Everything still goes to the caller's sink; only the ledger copy is
// truncated.
const OUTPUT_CAPTURE_LIMIT = 1 << 16

// A RunReport is one row of the run ledger: what was run, with what tape,
// and how it ended. MachineError holds the error display text when a run
// failed and is nil otherwise.
type RunReport struct {
	ID                   uint
	ProgramPath          string
	CellCount            uint
	CellWidth            uint
	Extensible           bool
	InstructionCount     uint
	InstructionsExecuted uint
	Completed            byte
	MachineError         *string
	Output               []byte `gorm:"type:blob"`
	DurationNs           int64
	CreatedAt            time.Time
}

func (r *RunReport) Clone() *RunReport {
	clone := &RunReport{}
	cp.Copy(clone, r)
	return clone
}

// Runner turns programs plus streams into RunReports. It holds no per-run
// state, so one Runner may serve concurrent runs.
type Runner struct {
	Config *RunConfig
}

func NewRunner(rc *RunConfig) *Runner {
	return &Runner{Config: rc}
}

// Run validates and interprets program against input and output. The report
// is always returned, filled in as far as the run got; the error is the
// core's own, untouched, so callers can print it or inspect its fields.
func (r *Runner) Run(program *bf.Program, input io.Reader, output io.Writer) (*RunReport, error) {
	report := &RunReport{
		ProgramPath:      program.Source,
		CellCount:        r.Config.Cells,
		CellWidth:        r.Config.CellWidth,
		Extensible:       r.Config.Extensible,
		InstructionCount: uint(len(program.Instructions)),
	}

	if err := program.Validate(); err != nil {
		msg := err.Error()
		report.MachineError = &msg
		return report, err
	}

	machine, err := bf.NewMachine(program, r.Config.ToMachineConfig())
	if err != nil {
		msg := err.Error()
		report.MachineError = &msg
		return report, err
	}

	capture := newCaptureBuffer(OUTPUT_CAPTURE_LIMIT)
	started := time.Now()
	runErr := machine.Run(input, io.MultiWriter(output, capture))
	report.DurationNs = time.Since(started).Nanoseconds()
	report.InstructionsExecuted = machine.InstructionCount
	report.Output = capture.Bytes()

	if runErr != nil {
		msg := runErr.Error()
		report.MachineError = &msg
		return report, runErr
	}

	report.Completed = 1
	if DEBUG {
		log.Printf("Completed %q: %d instructions in %dns", program.Source, report.InstructionsExecuted, report.DurationNs)
	}
	return report, nil
}

// RunFile loads path and runs it.
func (r *Runner) RunFile(path string, input io.Reader, output io.Writer) (*RunReport, error) {
	program, err := bf.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return r.Run(program, input, output)
}

// captureBuffer keeps the first limit bytes and silently drops the rest, so
// it can sit inside a MultiWriter without ever failing a program's output.
type captureBuffer struct {
	buf   []byte
	limit int
}

func newCaptureBuffer(limit int) *captureBuffer {
	return &captureBuffer{limit: limit}
}

func (c *captureBuffer) Write(p []byte) (int, error) {
	if room := c.limit - len(c.buf); room > 0 {
		if len(p) <= room {
			c.buf = append(c.buf, p...)
		} else {
			c.buf = append(c.buf, p[:room]...)
		}
	}
	return len(p), nil
}

func (c *captureBuffer) Bytes() []byte {
	return c.buf
}
