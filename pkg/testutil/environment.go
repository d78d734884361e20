package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cardinal/pkg/filesystem"
	"github.com/arthur-debert/cardinal/pkg/paths"
	"github.com/arthur-debert/cardinal/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // In-memory filesystem, no symlinks
	EnvIsolated                  // Real filesystem in a temp directory
)

func (e EnvType) String() string {
	if e == EnvIsolated {
		return "isolated"
	}
	return "memory"
}

// AllEnvTypes lists every environment, for tests that run against both.
var AllEnvTypes = []EnvType{EnvMemoryOnly, EnvIsolated}

// TestEnvironment provides an isolated filesystem and environment
type TestEnvironment struct {
	Root      string // work area for sources and manifests
	HomeDir   string
	DataDir   string
	ConfigDir string
	StateDir  string

	FS    types.FS
	Paths paths.Paths
	Type  EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. Environment variables
// always point at a real temp directory so that logging and settings never
// touch the user's files, even for in-memory environments.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{t: t, Type: envType}

	var base string
	switch envType {
	case EnvIsolated:
		base = tempDir
		env.FS = filesystem.NewOS()
	default:
		base = "/virtual"
		env.FS = filesystem.NewMemory()
	}

	env.Root = filepath.Join(base, "work")
	env.HomeDir = filepath.Join(base, "home")
	env.DataDir = filepath.Join(base, "data")
	env.ConfigDir = filepath.Join(base, "config")
	env.StateDir = filepath.Join(tempDir, "state")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	t.Setenv(paths.EnvDataDir, env.DataDir)
	t.Setenv(paths.EnvConfigDir, env.ConfigDir)

	for _, dir := range []string{env.Root, env.HomeDir, env.DataDir, env.ConfigDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	p, err := paths.New()
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p

	return env
}

// Path joins elem onto the work area.
func (env *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{env.Root}, elem...)...)
}

// WithFileTree writes tree under the work area.
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	WriteTree(env.t, env.FS, env.Root, tree)
}
