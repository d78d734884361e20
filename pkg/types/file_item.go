package types

// FileItem is one entry under `files` in the manifest.
type FileItem struct {
	// Path is where the source is materialized.
	Path string `json:"path"`

	// Source is the content to place at Path.
	Source string `json:"source"`
}

// NewFileItem creates a FileItem.
func NewFileItem(path, source string) FileItem {
	return FileItem{Path: path, Source: source}
}
