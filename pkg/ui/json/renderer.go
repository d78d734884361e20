// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/ui/display"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderResult renders a result as JSON
func (r *Renderer) RenderResult(result interface{}) error {
	if res, ok := result.(*display.Result); ok {
		return r.encoder.Encode(res.Payload())
	}
	return r.encoder.Encode(result)
}

// RenderError renders an error as JSON, with its code and details when
// it carries them
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
		"code":  errors.GetErrorCode(err),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
