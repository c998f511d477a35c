package output

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Progress prints numbered stages for multi-step operations. Like the
// Logger it writes to stderr, keeping stdout clean for the emitted plan.
type Progress struct {
	out      io.Writer
	total    int
	current  int
	jsonMode bool
}

// NewProgress creates a new Progress instance with the given total steps.
func NewProgress(total int) *Progress {
	return &Progress{
		out:   os.Stderr,
		total: total,
	}
}

// SetJSONMode enables JSON output mode (suppresses text output).
func (p *Progress) SetJSONMode(jsonMode bool) {
	p.jsonMode = jsonMode
}

// Stage prints a progress stage message in format [N/M] Description...
func (p *Progress) Stage(description string) {
	if p.jsonMode {
		return
	}
	p.current++
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(p.out, "[%d/%d] %s...\n", p.current, p.total, description)
}

// Done prints a completion message.
func (p *Progress) Done(message string) {
	if p.jsonMode {
		return
	}
	green := color.New(color.FgGreen)
	green.Fprintf(p.out, "✓ %s\n", message)
}
