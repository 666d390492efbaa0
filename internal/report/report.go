// Package report renders statistics as tables, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for output formats other than table, json and yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects the output encoding
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name; empty means table
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Renderer writes reports to out
type Renderer struct {
	out     io.Writer
	format  Format
	noColor bool
	now     func() time.Time
}

// Option configures a Renderer
type Option func(*Renderer)

// WithNoColor disables ANSI colours regardless of the terminal
func WithNoColor(noColor bool) Option {
	return func(r *Renderer) { r.noColor = r.noColor || noColor }
}

// WithClock overrides the reference time for relative dates
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// New creates a renderer. Colour follows fatih/color's detection
// (NO_COLOR, non-terminal output) unless disabled by WithNoColor.
func New(out io.Writer, format string, opts ...Option) (*Renderer, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		out:     out,
		format:  f,
		noColor: color.NoColor,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Format returns the output format
func (r *Renderer) Format() Format {
	return r.format
}

// encode writes v as JSON or YAML; it reports false for the table format
func (r *Renderer) encode(v any) (bool, error) {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func (r *Renderer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func (r *Renderer) title(text string) {
	r.paint(color.Bold, color.FgCyan).Fprintln(r.out, text)
}

// Skipped lists blocks dropped under the skip policy
func Skipped(w io.Writer, errs []error) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(w, "Skipped %d malformed commit(s):\n", len(errs))
	for _, err := range errs {
		fmt.Fprintf(w, "  - %v\n", err)
	}
}
