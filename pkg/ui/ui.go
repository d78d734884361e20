// Package ui renders command results as terminal, plain text or JSON
// output.
package ui

import (
	"io"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/ui/json"
	"github.com/arthur-debert/cardinal/pkg/ui/terminal"
	"github.com/arthur-debert/cardinal/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a result, usually a *display.Result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format, resolving FormatAuto against
// output first.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format.Resolve(output) {
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
