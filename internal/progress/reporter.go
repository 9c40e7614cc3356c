package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while rule files are compiled.
type Reporter interface {
	Start(total int)
	Update(done int, path string)
	Finish()
}

// NewReporter returns a LineReporter when running under CI and a
// TerminalReporter otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{Out: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Compiling rules"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(done int, path string) {
	if r.bar != nil {
		r.bar.Describe(filepath.Base(path))
		_ = r.bar.Set(done)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints one line per file, suitable for CI logs.
type LineReporter struct {
	Out   io.Writer
	total int
}

func (r *LineReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.Out, "Compiling %d rule files\n", total)
}

func (r *LineReporter) Update(done int, path string) {
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", done, r.total, path)
}

func (r *LineReporter) Finish() {
	fmt.Fprintln(r.Out, "Rule compilation complete")
}
