package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/paths"
	"github.com/arthur-debert/cardinal/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// Manifest is a parsed cardinal.toml.
type Manifest struct {
	Path  string
	Dir   string
	Items []types.FileItem
}

// LoadManifest reads and parses the manifest at path. Relative sources
// and targets are resolved against the manifest's directory.
func LoadManifest(fsys types.FS, path string) (*Manifest, error) {
	logger := log.With().Str("manifest", path).Logger()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to resolve %s", path)
	}

	data, err := fsys.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read manifest %s", path).
			WithDetail("path", abs)
	}

	m, err := ParseManifest(data, filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	m.Path = abs

	logger.Debug().Int("files", len(m.Items)).Msg("Manifest loaded")
	return m, nil
}

// ParseManifest parses manifest content. dir is used to resolve relative
// paths.
func ParseManifest(data []byte, dir string) (*Manifest, error) {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		cerr := errors.Wrap(err, errors.ErrConfigParse, "invalid TOML in manifest")
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			cerr = cerr.WithDetails(map[string]interface{}{"line": row, "column": col})
		}
		return nil, cerr
	}

	files, err := Table(raw).Table("files")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid manifest").
			WithDetail("key", "files")
	}

	m := &Manifest{Dir: dir, Items: make([]types.FileItem, 0, len(files))}
	for target, value := range files {
		key := fmt.Sprintf("files.%q", target)

		entry, ok := AsTable(value)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigValid, "%s must be a table, not a %s", key, KindOf(value)).
				WithDetail("key", key)
		}

		source, err := entry.String("source")
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid entry %s", key).
				WithDetail("key", key+".source")
		}

		if target == "" || source == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "%s needs a non-empty target and source", key).
				WithDetail("key", key)
		}

		m.Items = append(m.Items, types.NewFileItem(resolve(dir, target), resolve(dir, source)))
	}

	sort.Slice(m.Items, func(i, j int) bool {
		return m.Items[i].Path < m.Items[j].Path
	})
	return m, nil
}

func resolve(dir, path string) string {
	path = paths.ExpandHome(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return filepath.Clean(path)
}
