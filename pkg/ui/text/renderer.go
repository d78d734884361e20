// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/cardinal/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a result as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.Result:
		if v.Table == nil {
			return nil
		}
		return r.renderTable(v.Table)
	case *display.Table:
		return r.renderTable(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderTable(t *display.Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(r.output, t.Title); err != nil {
			return err
		}
	}

	if len(t.Rows) > 0 {
		tw := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)
		if len(t.Headers) > 0 {
			if _, err := fmt.Fprintln(tw, strings.Join(t.Headers, "\t")); err != nil {
				return err
			}
		}
		for _, row := range t.Rows {
			if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if t.Footer != "" {
		if _, err := fmt.Fprintln(r.output, t.Footer); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
