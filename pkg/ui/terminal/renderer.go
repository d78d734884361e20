// Package terminal provides rich terminal output with colors and tables
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/cardinal/pkg/ui/display"
	"github.com/arthur-debert/cardinal/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer draws styled tables with pterm and lipgloss
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders a result with terminal styling
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
		if _, err := fmt.Fprintln(r.output, styles.Render("Header", t.Title)); err != nil {
			return err
		}
	}

	if len(t.Rows) > 0 {
		data := pterm.TableData{}
		hasHeader := len(t.Headers) > 0
		if hasHeader {
			data = append(data, t.Headers)
		}
		data = append(data, t.Rows...)

		err := pterm.DefaultTable.
			WithHasHeader(hasHeader).
			WithData(data).
			WithWriter(r.output).
			Render()
		if err != nil {
			return err
		}
	}

	if t.Footer != "" {
		if _, err := fmt.Fprintln(r.output, styles.Render("Footer", t.Footer)); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.Render("Error", "Error:")+" "+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render("Info", msg))
	return err
}
