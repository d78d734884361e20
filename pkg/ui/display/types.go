// Package display holds the renderer-neutral shapes commands produce.
package display

// Table is a titled grid of cells.
type Table struct {
	Title   string     `json:"title,omitempty"`
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
	Footer  string     `json:"footer,omitempty"`
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Result is what a command hands to a renderer. Human renderers draw
// Table; the JSON renderer encodes Data when it is set and Table
// otherwise.
type Result struct {
	Table *Table      `json:"table,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

// Payload returns the value machine-readable output should encode.
func (r *Result) Payload() interface{} {
	if r.Data != nil {
		return r.Data
	}
	return r.Table
}
