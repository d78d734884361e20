package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cardinal/pkg/types"
)

// FileTree represents a nested file structure for declarative test setup.
// A string value is file content; a FileTree value is a directory.
type FileTree map[string]interface{}

// File is a file with explicit permissions inside a FileTree.
type File struct {
	Content string
	Mode    uint32
}

// WriteTree creates tree under root, creating root if needed.
func WriteTree(t *testing.T, fsys types.FS, root string, tree FileTree) {
	t.Helper()

	if err := fsys.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", root, err)
	}

	for name, node := range tree {
		path := filepath.Join(root, name)
		switch v := node.(type) {
		case string:
			writeFile(t, fsys, path, v, 0644)
		case File:
			writeFile(t, fsys, path, v.Content, v.Mode)
		case FileTree:
			WriteTree(t, fsys, path, v)
		default:
			t.Fatalf("Unsupported FileTree node %T at %s", node, path)
		}
	}
}

// WriteFile writes a single file, creating parent directories.
func WriteFile(t *testing.T, fsys types.FS, path, content string) {
	t.Helper()
	writeFile(t, fsys, path, content, 0644)
}

func writeFile(t *testing.T, fsys types.FS, path, content string, mode uint32) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := fsys.WriteFile(path, []byte(content), modeOf(mode)); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func modeOf(mode uint32) os.FileMode {
	if mode == 0 {
		return 0644
	}
	return os.FileMode(mode)
}
