package realise

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/cardinal/pkg/config"
	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/filesystem"
	"github.com/arthur-debert/cardinal/pkg/hashing"
	"github.com/arthur-debert/cardinal/pkg/logging"
	"github.com/arthur-debert/cardinal/pkg/paths"
	"github.com/arthur-debert/cardinal/pkg/store"
	"github.com/arthur-debert/cardinal/pkg/types"
)

var log = logging.GetLogger("realise")

// BackupSuffix is appended to targets moved out of the way.
const BackupSuffix = ".cardinal-backup"

// Action is what happened, or would happen, to a target.
type Action string

const (
	ActionLink      Action = "link"
	ActionCopy      Action = "copy"
	ActionUnchanged Action = "unchanged"
	ActionFailed    Action = "failed"
)

// Options controls Realise.
type Options struct {
	Store  *store.Store
	FS     types.FS
	Mode   string // config.ModeSymlink or config.ModeCopy
	DryRun bool
	Force  bool
	Backup bool
}

// Outcome is the result for one item.
type Outcome struct {
	Item      types.FileItem `json:"item"`
	StorePath string         `json:"storePath,omitempty"`
	Action    Action         `json:"action"`
	Added     bool           `json:"added"`
	Replaced  bool           `json:"replaced"`
	BackupTo  string         `json:"backup,omitempty"`
	Err       error          `json:"-"`
	Error     string         `json:"error,omitempty"`
}

// Result collects the outcomes of a run.
type Result struct {
	Outcomes []Outcome `json:"outcomes"`
	DryRun   bool      `json:"dryRun"`
}

// Failed returns the number of failed items.
func (r *Result) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Realise materializes items. It always processes every item and returns
// a REALISE_FAILED error when at least one failed.
func Realise(items []types.FileItem, opts Options) (*Result, error) {
	if opts.Store == nil || opts.FS == nil {
		return nil, errors.New(errors.ErrInternal, "realise needs a store and a filesystem")
	}
	if opts.Mode == "" {
		opts.Mode = config.ModeSymlink
	}
	if opts.Mode != config.ModeSymlink && opts.Mode != config.ModeCopy {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown realise mode %q", opts.Mode)
	}

	done := logging.LogOperationStart(log, "realise")
	defer done()

	result := &Result{DryRun: opts.DryRun, Outcomes: make([]Outcome, 0, len(items))}
	for _, item := range items {
		outcome := realiseItem(item, opts)
		if outcome.Err != nil {
			outcome.Action = ActionFailed
			outcome.Error = outcome.Err.Error()
			log.Error().Err(outcome.Err).Str("target", item.Path).Msg("Failed to realise")
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	if failed := result.Failed(); failed > 0 {
		return result, errors.Newf(errors.ErrRealiseFailed, "%d of %d entries failed", failed, len(items)).
			WithDetails(map[string]interface{}{"failed": failed, "total": len(items)})
	}
	return result, nil
}

func realiseItem(item types.FileItem, opts Options) Outcome {
	out := Outcome{Item: item}
	logger := logging.WithFields(log, map[string]interface{}{
		"target": item.Path,
		"source": item.Source,
	})

	if paths.ContainsPath(opts.Store.Path(), item.Path) {
		out.Err = errors.Newf(errors.ErrInvalidInput, "target %s is inside the store", item.Path)
		return out
	}

	storePath, added, err := stored(item.Source, opts)
	if err != nil {
		out.Err = err
		return out
	}
	out.StorePath = storePath
	out.Added = added

	out.Action = ActionLink
	if opts.Mode == config.ModeCopy {
		out.Action = ActionCopy
	}

	info, err := opts.FS.Lstat(item.Path)
	switch {
	case err == nil:
		if upToDate(opts, item.Path, storePath, info) {
			out.Action = ActionUnchanged
			logger.Debug().Msg("Target is up to date")
			return out
		}
		if !opts.Force {
			out.Err = errors.Newf(errors.ErrTargetExists, "%s already exists", item.Path).
				WithDetail("path", item.Path)
			return out
		}
		out.Replaced = true
		if opts.Backup {
			out.BackupTo = item.Path + BackupSuffix
		}
		if !opts.DryRun {
			if err := moveAside(opts.FS, item.Path, out.BackupTo); err != nil {
				out.Err = err
				return out
			}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		out.Err = errors.Wrapf(err, errors.ErrIO, "failed to check %s", item.Path)
		return out
	}

	if opts.DryRun {
		logger.Info().Str("action", string(out.Action)).Msg("Would realise")
		return out
	}

	if err := opts.FS.MkdirAll(filepath.Dir(item.Path), 0755); err != nil {
		out.Err = errors.Wrapf(err, errors.ErrIO, "failed to create parent of %s", item.Path)
		return out
	}

	if opts.Mode == config.ModeCopy {
		if err := filesystem.CopyTree(opts.FS, storePath, item.Path); err != nil {
			out.Err = errors.Wrapf(err, errors.ErrCopyFailed, "failed to copy %s to %s", storePath, item.Path)
			return out
		}
	} else if err := opts.FS.Symlink(storePath, item.Path); err != nil {
		out.Err = errors.Wrapf(err, errors.ErrLinkCreate, "failed to link %s", item.Path).
			WithDetail("path", item.Path)
		return out
	}

	logger.Info().Str("action", string(out.Action)).Str("store", storePath).Msg("Realised")
	return out
}

// stored returns the store path for source, adding it unless this is a
// dry run. added reports whether a new entry was created or would be.
func stored(source string, opts Options) (string, bool, error) {
	if opts.DryRun {
		path, err := opts.Store.PathFor(source)
		if err != nil {
			return "", false, err
		}
		exists, err := opts.Store.Has(filepath.Base(path))
		if err != nil {
			return "", false, err
		}
		return path, !exists, nil
	}

	path, err := opts.Store.Add(source)
	if err == nil {
		return path, true, nil
	}
	if errors.IsErrorCode(err, errors.ErrConflict) {
		if existing, ok := errors.GetErrorDetails(err)["path"].(string); ok {
			return existing, false, nil
		}
	}
	return "", false, err
}

// upToDate reports whether target already reflects storePath: a symlink
// to it in symlink mode, or identical content in copy mode.
func upToDate(opts Options, target, storePath string, info fs.FileInfo) bool {
	if opts.Mode == config.ModeSymlink {
		if info.Mode()&fs.ModeSymlink == 0 {
			return false
		}
		dest, err := opts.FS.Readlink(target)
		return err == nil && dest == storePath
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		return false
	}
	entry, err := store.ParseEntryName(filepath.Base(storePath))
	if err != nil {
		return false
	}
	got, err := hashing.HashPath(opts.FS, target)
	return err == nil && got == entry.Digest
}

// moveAside moves target to backup, or removes it when backup is empty.
func moveAside(fsys types.FS, target, backup string) error {
	if backup == "" {
		if err := fsys.RemoveAll(target); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to remove %s", target)
		}
		return nil
	}

	if _, err := fsys.Lstat(backup); err == nil {
		return errors.Newf(errors.ErrTargetExists, "backup %s already exists", backup).
			WithDetail("path", backup)
	}
	if err := fsys.Rename(target, backup); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to back up %s", target).
			WithDetail("backup", backup)
	}
	return nil
}
