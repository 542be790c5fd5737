// Package output handles console output for Retitle: verbose diagnostics,
// styled results and a progress indicator on terminals.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Enable verbose output
	Writer    io.Writer // Output destination (default: os.Stdout)
	ErrWriter io.Writer // Error output destination (default: os.Stderr)
	IsTTY     bool      // Whether output is a terminal
	NoColor   bool      // Disable styling even on a terminal
}

// Output handles formatted output with verbose and progress support.
type Output struct {
	config Config

	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	dim     lipgloss.Style

	progressActive  bool
	progressTotal   int
	progressCurrent int
	progressMu      sync.Mutex
}

// New creates a new Output instance with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}

	o := &Output{config: config}
	out := lipgloss.NewRenderer(config.Writer)
	errOut := lipgloss.NewRenderer(config.ErrWriter)
	o.success = out.NewStyle()
	o.dim = out.NewStyle()
	o.warn = errOut.NewStyle()
	o.fail = errOut.NewStyle()
	if config.IsTTY && !config.NoColor {
		o.success = o.success.Foreground(lipgloss.Color("2")).Bold(true)
		o.dim = o.dim.Faint(true)
		o.warn = o.warn.Foreground(lipgloss.Color("3"))
		o.fail = o.fail.Foreground(lipgloss.Color("1")).Bold(true)
	}
	return o
}

// DefaultConfig returns a Config for the standard streams with TTY detection.
// Styling honours the NO_COLOR convention.
func DefaultConfig() Config {
	return ConfigFor(os.Stdout, os.Stderr)
}

// ConfigFor returns a Config writing to stdout and stderr.
// Only a terminal *os.File counts as a TTY.
func ConfigFor(stdout, stderr io.Writer) Config {
	isTTY := false
	if f, ok := stdout.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return Config{
		Verbose:   false,
		Writer:    stdout,
		ErrWriter: stderr,
		IsTTY:     isTTY,
		NoColor:   os.Getenv("NO_COLOR") != "",
	}
}

func line(format string, args []interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}

func (o *Output) write(w io.Writer, style lipgloss.Style, format string, args []interface{}) {
	o.clearProgressLine()
	msg := line(format, args)
	fmt.Fprint(w, style.Render(strings.TrimSuffix(msg, "\n"))+"\n")
}

// Verbose prints a message only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	o.write(o.config.Writer, o.dim, format, args)
}

// Info prints an informational message (always shown).
func (o *Output) Info(format string, args ...interface{}) {
	o.clearProgressLine()
	fmt.Fprint(o.config.Writer, line(format, args))
}

// Success prints a completed action, such as a rename.
func (o *Output) Success(format string, args ...interface{}) {
	o.write(o.config.Writer, o.success, format, args)
}

// Warn prints a recoverable problem to stderr.
func (o *Output) Warn(format string, args ...interface{}) {
	o.write(o.config.ErrWriter, o.warn, format, args)
}

// Error prints an error message to stderr.
func (o *Output) Error(format string, args ...interface{}) {
	o.write(o.config.ErrWriter, o.fail, format, args)
}

// clearProgressLine clears the current progress line if active.
func (o *Output) clearProgressLine() {
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	if o.progressActive && o.config.IsTTY {
		fmt.Fprint(o.config.Writer, "\r"+strings.Repeat(" ", 60)+"\r")
	}
}

// StartProgress begins a progress indicator session.
func (o *Output) StartProgress(total int) {
	// Suppress progress when not TTY or when verbose mode is enabled
	if !o.config.IsTTY || o.config.Verbose {
		return
	}
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	o.progressActive = true
	o.progressTotal = total
	o.progressCurrent = 0
}

// UpdateProgress updates the progress indicator.
func (o *Output) UpdateProgress(current int, message string) {
	if !o.config.IsTTY || o.config.Verbose {
		return
	}
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	if !o.progressActive {
		return
	}
	o.progressCurrent = current
	if message == "" {
		message = "Matching title"
	}
	fmt.Fprintf(o.config.Writer, "\r%s %d/%d...", message, current, o.progressTotal)
}

// EndProgress clears the progress indicator.
func (o *Output) EndProgress() {
	if !o.config.IsTTY || o.config.Verbose {
		return
	}
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	if !o.progressActive {
		return
	}
	o.progressActive = false
	fmt.Fprint(o.config.Writer, "\r"+strings.Repeat(" ", 60)+"\r")
}

// IsVerbose returns whether verbose mode is enabled.
func (o *Output) IsVerbose() bool {
	return o.config.Verbose
}

// IsTTY returns whether the output is a terminal.
func (o *Output) IsTTY() bool {
	return o.config.IsTTY
}
