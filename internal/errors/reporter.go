package errors

import (
	"fmt"

	"github.com/fatih/color"
)

// Fault represents an unrecoverable contract violation raised by the
// compiler or interpreter. The pipeline is built for a trusted,
// programmatic embedder (there is no source text and therefore no
// source position to attach): every Fault is raised with panic(fault)
// at the point the violation is detected.
type Fault struct {
	Code    string
	Message string
	Stage   string // "lower", "assemble", "interpret", "fixture"
}

func (f *Fault) Error() string {
	return fmt.Sprintf("[%s] %s: %s", f.Code, f.Stage, f.Message)
}

// Raise panics with a new Fault. It is the single entry point every
// pipeline stage uses to fail fast on a contract violation.
func Raise(stage, code, format string, args ...interface{}) {
	panic(&Fault{
		Code:    code,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}

// Reporter renders a Fault the way a human-facing tool (the demo
// driver, or a test harness dumping a recovered panic) would want it
// printed: colorized, with the fault's code description attached.
type Reporter struct{}

// NewReporter creates a Reporter. It holds no state; the constructor
// exists to match the rest of the codebase's NewX convention and to
// leave room for future configuration (e.g. color on/off).
func NewReporter() *Reporter {
	return &Reporter{}
}

// Format renders a fault as a colorized, multi-line diagnostic.
func (r *Reporter) Format(f *Fault) string {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	out := fmt.Sprintf("%s[%s]: %s\n", red("fault"), f.Code, bold(f.Message))
	out += fmt.Sprintf("  %s %s\n", dim("stage:"), f.Stage)
	out += fmt.Sprintf("  %s %s\n", dim("what:"), Describe(f.Code))
	return out
}

// Recover turns a recovered panic value into a *Fault if it is one,
// printing it through the reporter and returning it as an error.
// Non-Fault panics are re-panicked: they represent a programmer error
// in this codebase, not a contract violation in the embedder's input.
func (r *Reporter) Recover(recovered interface{}) error {
	if recovered == nil {
		return nil
	}
	f, ok := recovered.(*Fault)
	if !ok {
		panic(recovered)
	}
	fmt.Print(r.Format(f))
	return f
}
