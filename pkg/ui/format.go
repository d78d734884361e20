package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how results are rendered. Its value is the name used in
// settings (output.format) and on the --format flag.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatTerminal Format = "term"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// formatNames maps every accepted spelling to its format.
var formatNames = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

// Formats returns the canonical format names.
func Formats() []string {
	return []string{string(FormatAuto), string(FormatTerminal), string(FormatText), string(FormatJSON)}
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat reads a format name, case-insensitively. Unknown names are
// INVALID_INPUT with the rejected value in the "format" detail.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown output format %q, want one of %s", s, strings.Join(Formats(), ", ")).
		WithDetail("format", s)
}

// Resolve replaces FormatAuto with what suits output: DetectFormat for
// files, plain text for anything else. Other formats are returned as is.
func (f Format) Resolve(output io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if file, ok := output.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}

// DetectFormat picks terminal output only for a colour-capable terminal
// with NO_COLOR unset.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
