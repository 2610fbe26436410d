// Package progress provides progress reporting for long per-molecule
// loops. Bars render on stderr so tables and logs on stdout stay clean;
// when stderr is not a terminal the reporter degrades to a no-op.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter counts completed items through a long loop. A total below
// zero means the count is unknown and a spinner renders instead.
type Reporter interface {
	Start(total int, description string)
	Add(n int)
	Finish()
}

// NewReporter returns a bar-drawing reporter when stderr is a terminal
// and a no-op otherwise.
func NewReporter() Reporter {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return NewCLIProgress(os.Stderr)
	}
	return NoOpProgress{}
}

// CLIProgress draws a progress bar for terminal sessions.
type CLIProgress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewCLIProgress creates a bar reporter writing to w.
func NewCLIProgress(w io.Writer) *CLIProgress {
	return &CLIProgress{w: w}
}

// Start initializes the bar with the item total and description.
func (p *CLIProgress) Start(total int, description string) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(p.w, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Add advances the bar by n items.
func (p *CLIProgress) Add(n int) {
	if p.bar != nil {
		_ = p.bar.Add(n)
	}
}

// Finish completes the bar. With an unknown total this stops the
// spinner; a known total renders as fully complete.
func (p *CLIProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// NoOpProgress silences progress reporting for non-terminal sessions.
type NoOpProgress struct{}

func (NoOpProgress) Start(total int, description string) {}
func (NoOpProgress) Add(n int)                           {}
func (NoOpProgress) Finish()                             {}
