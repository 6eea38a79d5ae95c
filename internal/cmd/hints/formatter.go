package hints

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/ultrasearch/internal/cmd/output"
)

// Formatter formats hints for different output types.
type Formatter struct {
	writer io.Writer
	format output.Format
	config FormatterConfig
}

// FormatterConfig configures hint formatting behavior.
type FormatterConfig struct {
	ShowIcons  bool // Whether to show emoji icons
	IndentSize int  // Indentation size for structured output
}

// NewFormatter creates a new hint formatter.
func NewFormatter(w io.Writer, format output.Format) *Formatter {
	return &Formatter{
		writer: w,
		format: format,
		config: FormatterConfig{
			ShowIcons:  true,
			IndentSize: 2,
		},
	}
}

// WithConfig sets the formatter configuration.
func (f *Formatter) WithConfig(config FormatterConfig) *Formatter {
	f.config = config
	return f
}

// FormatHints formats and writes hints.
func (f *Formatter) FormatHints(hints []*Hint) error {
	if len(hints) == 0 {
		return nil
	}

	switch f.format {
	case output.FormatJSON:
		return f.formatJSON(hints)
	case output.FormatYAML:
		return f.formatYAML(hints)
	default:
		return f.formatPlain(hints)
	}
}

// hintData represents hint data for structured output.
type hintData struct {
	Message string `json:"message" yaml:"message"`
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
}

func toHintData(hints []*Hint) []hintData {
	data := make([]hintData, len(hints))
	for i, hint := range hints {
		data[i] = hintData{Message: hint.Message, Command: hint.Command}
	}
	return data
}

func (f *Formatter) formatJSON(hints []*Hint) error {
	out := struct {
		Hints []hintData `json:"hints"`
	}{Hints: toHintData(hints)}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", strings.Repeat(" ", f.config.IndentSize))
	return encoder.Encode(out)
}

func (f *Formatter) formatYAML(hints []*Hint) error {
	out := struct {
		Hints []hintData `yaml:"hints"`
	}{Hints: toHintData(hints)}

	data, err := yaml.MarshalWithOptions(out,
		yaml.Indent(f.config.IndentSize),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = f.writer.Write(data)
	return err
}

// formatPlain writes hints the way gh does: a blank line, then one
// message per hint with its command indented below.
func (f *Formatter) formatPlain(hints []*Hint) error {
	icon := "💡"
	if !f.config.ShowIcons {
		icon = "Tip:"
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, hint := range hints {
		fmt.Fprintf(&b, "%s %s\n", icon, hint.Message)
		if hint.Command != "" {
			fmt.Fprintf(&b, "   Run: %s\n", hint.Command)
		}
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// Display formats and writes hints to w. Hints are guidance for people,
// so nothing is written for html output.
func Display(w io.Writer, format output.Format, hints []*Hint) error {
	if format == output.FormatHTML {
		return nil
	}
	return NewFormatter(w, format).FormatHints(hints)
}
