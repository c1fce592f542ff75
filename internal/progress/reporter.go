package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Step names one completion call of a generate run.
type Step string

const (
	StepSlides Step = "slides"
	StepScript Step = "script"
)

// Reporter follows a generate run step by step. Begin and Done or Fail are
// called once per step, in order; Finish ends the run either way.
type Reporter interface {
	Start(steps []Step)
	Begin(step Step)
	Done(step Step, detail string)
	Fail(step Step, err error)
	Finish()
}

// NewReporter returns a CIReporter on CI runners and a TerminalReporter
// otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter spins a bar on stderr while the model works. A step
// takes tens of seconds, so the spinner is the only sign of life.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(steps []Step) {
	r.bar = progressbar.NewOptions(len(steps),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Begin(step Step) {
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf("Writing %s", step))
	}
}

func (r *TerminalReporter) Done(step Step, detail string) {
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf("%s: %s", step, detail))
		_ = r.bar.Add(1)
	}
}

func (r *TerminalReporter) Fail(step Step, err error) {
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf("%s failed", step))
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter writes one line per event with the time each step took.
type CIReporter struct {
	Out io.Writer
	// Now defaults to time.Now.
	Now func() time.Time

	steps   []Step
	done    int
	started time.Time
}

func (r *CIReporter) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *CIReporter) Start(steps []Step) {
	r.steps = steps
	r.done = 0
	fmt.Fprintf(r.Out, "slideai: %d model calls: %v\n", len(steps), steps)
}

func (r *CIReporter) Begin(step Step) {
	r.started = r.now()
	fmt.Fprintf(r.Out, "[%d/%d] %s ...\n", r.done+1, len(r.steps), step)
}

func (r *CIReporter) Done(step Step, detail string) {
	r.done++
	fmt.Fprintf(r.Out, "[%d/%d] %s %s in %s\n", r.done, len(r.steps), step, detail, r.elapsed())
}

func (r *CIReporter) Fail(step Step, err error) {
	fmt.Fprintf(r.Out, "[%d/%d] %s failed after %s: %v\n", r.done+1, len(r.steps), step, r.elapsed(), err)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.Out, "slideai: %d of %d steps done\n", r.done, len(r.steps))
}

func (r *CIReporter) elapsed() time.Duration {
	return r.now().Sub(r.started).Round(100 * time.Millisecond)
}
