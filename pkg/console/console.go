// Package console implements Captain's status line output.
//
// The user-facing protocol is line oriented, with exact bracket prefixes
// that scripts and tests match against:
//
//	[OK] requirements.txt
//	[WARN] missing module: parser_foo
//	[ERR] Cannot read build.yaml: no such file or directory
//
// [OK] lines and the run banner go to the out stream (stdout by default);
// [WARN] and [ERR] lines go to the err stream (stderr). The bracket tags
// are tinted with lipgloss styles, which render as plain text when output
// is not a terminal, so piped output and tests see the exact bytes above.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - banner
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
)

var (
	styleBanner = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleOK     = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn   = lipgloss.NewStyle().Foreground(colorYellow)
	styleErr    = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Status Tags
// =============================================================================

const (
	tagOK   = "[OK]"
	tagWarn = "[WARN]"
	tagErr  = "[ERR]"
)

// =============================================================================
// Reporter
// =============================================================================

// Reporter writes status lines to a pair of streams.
// Methods are not safe for concurrent use; Captain runs single-threaded.
type Reporter struct {
	out io.Writer // [OK] lines and the banner
	err io.Writer // [WARN] and [ERR] lines
}

// New creates a reporter writing to the given streams.
func New(out, err io.Writer) *Reporter {
	return &Reporter{out: out, err: err}
}

// Default returns a reporter bound to os.Stdout and os.Stderr.
func Default() *Reporter {
	return New(os.Stdout, os.Stderr)
}

// Banner prints the program banner shown at the start of a run,
// e.g. "Captain 1.0-Beta".
func (r *Reporter) Banner(version string) {
	fmt.Fprintln(r.out, styleBanner.Render("Captain "+version))
}

// OK reports a produced artifact or a passed check.
func (r *Reporter) OK(msg string) {
	fmt.Fprintln(r.out, styleOK.Render(tagOK)+" "+msg)
}

// Warnf reports a non-fatal problem.
func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintln(r.err, styleWarn.Render(tagWarn)+" "+fmt.Sprintf(format, args...))
}

// Errorf reports a failed operation.
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintln(r.err, styleErr.Render(tagErr)+" "+fmt.Sprintf(format, args...))
}
