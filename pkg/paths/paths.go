package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/cardinal/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for cardinal
	EnvDataDir = "CARDINAL_DATA"

	// EnvConfigDir overrides the XDG config directory for cardinal
	EnvConfigDir = "CARDINAL_CONFIG_DIR"

	// EnvStateHome is the XDG state base directory
	EnvStateHome = "XDG_STATE_HOME"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the cardinal directories. These are not configurable.
const (
	// AppDirName is the directory name used under each XDG base
	AppDirName = "cardinal"

	// StoreDirName is the store directory under the data directory
	StoreDirName = "store"

	// SettingsFileName is the user settings file in the config directory
	SettingsFileName = "config.toml"

	// ManifestFileName is the default manifest file name
	ManifestFileName = "cardinal.toml"

	// LogFileName is the name of the log file
	LogFileName = "cardinal.log"
)

// Paths provides the directories cardinal reads from and writes to
type Paths interface {
	DataDir() string
	StoreDir() string
	ConfigDir() string
	StateDir() string
	SettingsPath() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	xdgData   string
	xdgConfig string
	xdgState  string
}

// New resolves the cardinal directories from the environment.
func New() (Paths, error) {
	p := &paths{}
	if err := p.setupXDGDirs(); err != nil {
		return nil, err
	}
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() error {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// xdg.StateHome is cached at package init, so read the variable directly
	// to pick up changes made after start-up.
	if stateDir := os.Getenv(EnvStateHome); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return err
		}
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}

	for _, dir := range []*string{&p.xdgData, &p.xdgConfig, &p.xdgState} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}

// ExpandHome expands a leading ~ or ~/ to the user's home directory
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrIO, "failed to get home directory")
	}
	return homeDir, nil
}

// DataDir returns the data directory
func (p *paths) DataDir() string {
	return p.xdgData
}

// StoreDir returns the default store root
func (p *paths) StoreDir() string {
	return filepath.Join(p.xdgData, StoreDirName)
}

// ConfigDir returns the config directory
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the state directory
func (p *paths) StateDir() string {
	return p.xdgState
}

// SettingsPath returns the path of the user settings file
func (p *paths) SettingsPath() string {
	return filepath.Join(p.xdgConfig, SettingsFileName)
}

// LogFilePath returns the path to the cardinal log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath expands home, makes the path absolute and cleans it
func (p *paths) NormalizePath(path string) (string, error) {
	return NormalizePath(path)
}

// NormalizePath expands home, makes the path absolute and cleans it
func NormalizePath(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for %s", path)
	}
	return filepath.Clean(abs), nil
}
