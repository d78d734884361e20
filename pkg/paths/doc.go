// Package paths provides centralized path handling for cardinal.
//
// It resolves the XDG base directories cardinal uses and exposes a few
// helpers for normalizing and validating paths.
//
// # Environment Variables
//
//   - CARDINAL_DATA: override the data directory (default: $XDG_DATA_HOME/cardinal)
//   - CARDINAL_CONFIG_DIR: override the config directory (default: $XDG_CONFIG_HOME/cardinal)
//   - XDG_STATE_HOME: base for the state directory holding the log file
//
// # Layout
//
//   - Data: the store lives in DataDir/store
//   - Config: ConfigDir/config.toml holds user settings
//   - State: StateDir/cardinal.log is the log file
//
// # Usage
//
//	p, err := paths.New()
//	if err != nil {
//	    return err
//	}
//	st := store.New(fs, p.StoreDir())
package paths
