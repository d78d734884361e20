package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/logging"
	"github.com/arthur-debert/cardinal/pkg/paths"
	"github.com/arthur-debert/cardinal/pkg/ui"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var log = logging.GetLogger("config")

// EnvPrefix is the prefix of environment variables mapped onto settings.
const EnvPrefix = "CARDINAL_"

// Realise modes
const (
	ModeSymlink = "symlink"
	ModeCopy    = "copy"
)

// Settings is cardinal's runtime configuration.
type Settings struct {
	Store   StoreSettings   `koanf:"store"`
	Realise RealiseSettings `koanf:"realise"`
	Output  OutputSettings  `koanf:"output"`
}

// StoreSettings configures the store location.
type StoreSettings struct {
	Dir string `koanf:"dir"`
}

// RealiseSettings configures how targets are materialized.
type RealiseSettings struct {
	Mode   string `koanf:"mode"`
	Backup bool   `koanf:"backup"`
}

// OutputSettings configures rendering.
type OutputSettings struct {
	Format string `koanf:"format"`
}

// StoreDir returns the configured store root, or the default one from p.
func (s *Settings) StoreDir(p paths.Paths) string {
	if s.Store.Dir != "" {
		return paths.ExpandHome(s.Store.Dir)
	}
	return p.StoreDir()
}

// LoadSettings builds Settings from defaults, the user settings file,
// the environment and overrides, in that order. Override keys use dotted
// paths such as "output.format".
func LoadSettings(p paths.Paths, overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default settings")
	}

	// 2. User settings file, if any
	if path, parser := settingsFile(p); path != "" {
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", path).
				WithDetail("path", path)
		}
		log.Debug().Str("path", path).Msg("Loaded user settings")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply setting overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks enumerated settings.
func (s *Settings) Validate() error {
	switch s.Realise.Mode {
	case ModeSymlink, ModeCopy:
	default:
		return errors.Newf(errors.ErrConfigValid, "realise.mode must be %q or %q, got %q", ModeSymlink, ModeCopy, s.Realise.Mode).
			WithDetail("key", "realise.mode")
	}

	if _, err := ui.ParseFormat(s.Output.Format); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output.format").
			WithDetail("key", "output.format")
	}
	return nil
}

// settingsFile finds the user settings file. TOML wins over YAML.
func settingsFile(p paths.Paths) (string, koanf.Parser) {
	if _, err := os.Stat(p.SettingsPath()); err == nil {
		return p.SettingsPath(), toml.Parser()
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(p.ConfigDir(), name)
		if _, err := os.Stat(path); err == nil {
			return path, yaml.Parser()
		}
	}
	return "", nil
}

// envKey maps CARDINAL_REALISE_MODE to realise.mode. Variables that name
// directories rather than settings are skipped.
func envKey(s string) string {
	switch s {
	case paths.EnvDataDir, paths.EnvConfigDir:
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}
