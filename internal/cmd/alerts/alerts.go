// Package alerts prints one-line status notes, such as a validation
// summary, beside a command's main output.
package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Alert is a status line with optional indented detail lines.
type Alert struct {
	Level   Level
	Message string
	Details []string
}

// NewWarning creates a warning alert.
func NewWarning(format string, args ...any) *Alert {
	return &Alert{Level: LevelWarning, Message: fmt.Sprintf(format, args...)}
}

// NewSuccess creates a success alert.
func NewSuccess(format string, args ...any) *Alert {
	return &Alert{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)}
}

// WithDetails appends detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

func (a *Alert) String() string {
	return a.Level.Icon() + " " + a.Message
}

// Writer prints alerts, colored when the destination is a terminal.
type Writer struct {
	w     io.Writer
	color bool
}

// NewWriter creates a Writer for w.
func NewWriter(w io.Writer) *Writer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{w: w, color: color}
}

// Write prints the alert and its details.
func (aw *Writer) Write(a *Alert) error {
	line := a.String()
	if aw.color {
		line = a.Level.Style().Render(line)
	}
	if _, err := fmt.Fprintln(aw.w, line); err != nil {
		return err
	}
	for _, d := range a.Details {
		if _, err := fmt.Fprintf(aw.w, "   %s\n", d); err != nil {
			return err
		}
	}
	return nil
}
