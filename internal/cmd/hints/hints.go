// Package hints provides actionable user guidance printed after a command
// whose result was empty or surprising.
package hints

import (
	"fmt"
	"strconv"

	"github.com/agentstation/ultrasearch/pkg/observations"
)

// Hint is a single piece of guidance.
type Hint struct {
	Message string // Human-readable guidance message
	Command string // Optional command to run next
}

// New creates a hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a hint with a specific command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// SearchContext describes a finished search.
type SearchContext struct {
	Instrument string
	Query      observations.Query
	Target     string // Set when the centre came from --target
	Matches    int
}

// ForSearch returns hints for a search. Searches that found something get
// none.
func ForSearch(sc SearchContext) []*Hint {
	if sc.Matches > 0 {
		return nil
	}

	centre := fmt.Sprintf("--ra %s --dec %s",
		strconv.FormatFloat(sc.Query.CenterRAHours, 'f', -1, 64),
		strconv.FormatFloat(sc.Query.CenterDecDeg, 'f', -1, 64))
	if sc.Target != "" {
		centre = "--target " + strconv.Quote(sc.Target)
	}
	base := "ultrasearch search " + centre
	if sc.Instrument != "" {
		base += " -i " + sc.Instrument
	}

	var out []*Hint
	if sc.Query.MinExposeMinutes > 0 {
		out = append(out, NewCommand("Short runs were excluded; drop the exposure limit", base+" --expose 0"))
	}
	wider := sc.Query.RadiusDeg * 10
	if wider <= 0 {
		wider = 1
	}
	out = append(out, NewCommand(
		fmt.Sprintf("No runs within %g°; try a wider radius", sc.Query.RadiusDeg),
		base+" --radius "+strconv.FormatFloat(wider, 'g', -1, 64)))
	return out
}

// ForTargets returns hints for a target listing filtered by term.
func ForTargets(term string, shown int) []*Hint {
	if shown > 0 || term == "" {
		return nil
	}
	return []*Hint{
		NewCommand(fmt.Sprintf("No target name or ID contains %q", term), "ultrasearch targets"),
		New("Spaces in names are matched loosely, so \"nn ser\" also finds \"NN  Ser\""),
	}
}

// ForValidate returns hints after validating catalogs with issues.
func ForValidate(issues int, strict bool) []*Hint {
	if issues == 0 || strict {
		return nil
	}
	return []*Hint{
		NewCommand("Records with issues never match a search; fail CI builds on them with", "ultrasearch validate --strict"),
	}
}
