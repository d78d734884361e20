package cardinal

import (
	"fmt"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/hashing"
	"github.com/arthur-debert/cardinal/pkg/paths"
	"github.com/arthur-debert/cardinal/pkg/store"
	"github.com/arthur-debert/cardinal/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newStoreCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "store",
		Short:   MsgStoreShort,
		Long:    MsgStoreLong,
		Example: MsgStoreExample,
		GroupID: "core",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: MsgStoreInitShort,
		Args:  cobra.NoArgs,
		RunE: runWithApp(opts, func(a *app, args []string) error {
			if err := a.store.Create(); err != nil {
				return err
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgStoreCreated, a.store.Path()))
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgStoreListShort,
		Args:    cobra.NoArgs,
		RunE:    runWithApp(opts, runStoreList),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <path>...",
		Short: MsgStoreAddShort,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runWithApp(opts, runStoreAdd),
	})

	cmd.AddCommand(&cobra.Command{
		Use:               "rm <name>...",
		Aliases:           []string{"remove"},
		Short:             MsgStoreRmShort,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: entryNameCompletion(opts),
		RunE:              runWithApp(opts, runStoreRm),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: MsgStorePathShort,
		Args:  cobra.NoArgs,
		RunE: runWithApp(opts, func(a *app, args []string) error {
			return a.renderer.RenderMessage(a.store.Path())
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "verify [name]...",
		Short: MsgStoreVerifyShort,
		RunE:  runWithApp(opts, runStoreVerify),
	})

	return cmd
}

func runStoreList(a *app, args []string) error {
	entries, err := a.store.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return a.renderer.RenderMessage(MsgStoreEmpty)
	}

	table := &display.Table{
		Title:   fmt.Sprintf(MsgStoreListTitle, a.store.Path()),
		Headers: []string{"DIGEST", "NAME"},
		Footer:  fmt.Sprintf(MsgStoreListFooter, len(entries)),
	}
	for _, entry := range entries {
		table.AddRow(entry.Digest.String(), entry.Basename)
	}
	return a.renderer.RenderResult(&display.Result{Table: table, Data: entries})
}

// runStoreAdd adds every path. Content already in the store is reported,
// not treated as a failure.
func runStoreAdd(a *app, args []string) error {
	if err := a.store.Create(); err != nil {
		return err
	}

	table := &display.Table{Title: MsgStoreAddTitle, Headers: []string{"SOURCE", "ENTRY", "STATUS"}}
	for _, arg := range args {
		source, err := paths.NormalizePath(arg)
		if err != nil {
			return err
		}

		entry, err := a.store.Add(source)
		status := MsgAdded
		if errors.IsErrorCode(err, errors.ErrConflict) {
			existing, _ := errors.GetErrorDetails(err)["path"].(string)
			entry, status, err = existing, MsgExisting, nil
		}
		if err != nil {
			return err
		}
		table.AddRow(source, entry, status)
	}
	return a.renderer.RenderResult(&display.Result{Table: table})
}

func runStoreRm(a *app, args []string) error {
	for _, name := range args {
		if err := a.store.Delete(name); err != nil {
			return err
		}
		if err := a.renderer.RenderMessage(fmt.Sprintf(MsgStoreRemoved, name)); err != nil {
			return err
		}
	}
	return nil
}

// runStoreVerify re-hashes the named entries, or all of them.
func runStoreVerify(a *app, args []string) error {
	entries, err := a.store.Entries()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		entries, err = selectEntries(entries, args)
		if err != nil {
			return err
		}
	}

	table := &display.Table{Title: MsgStoreVerifyTitle, Headers: []string{"NAME", "STATUS"}}
	failed := 0
	for _, entry := range entries {
		status := MsgStoreVerifyOK
		if err := a.store.Verify(entry); err != nil {
			failed++
			status = err.Error()
			log.Warn().Err(err).Str("entry", entry.Name).Msg("Entry failed verification")
		}
		table.AddRow(entry.Name, status)
	}

	if err := a.renderer.RenderResult(&display.Result{Table: table}); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Newf(errors.ErrConflict, MsgErrVerifyFailed, failed, len(entries)).
			WithDetails(map[string]interface{}{"failed": failed, "total": len(entries)})
	}
	return nil
}

func selectEntries(entries []store.Entry, names []string) ([]store.Entry, error) {
	byName := make(map[string]store.Entry, len(entries))
	for _, entry := range entries {
		byName[entry.Name] = entry
	}

	selected := make([]store.Entry, 0, len(names))
	for _, name := range names {
		entry, ok := byName[name]
		if !ok {
			return nil, errors.Newf(errors.ErrNotFound, "no store entry named %s", name)
		}
		selected = append(selected, entry)
	}
	return selected, nil
}

// entryNameCompletion completes store entry names not already given.
func entryNameCompletion(opts *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a, err := newApp(cmd, opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		entries, err := a.store.Entries()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		given := make(map[string]bool, len(args))
		for _, arg := range args {
			given[arg] = true
		}

		var names []string
		for _, entry := range entries {
			if !given[entry.Name] {
				names = append(names, entry.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func newHashCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "hash <path>...",
		Short:   MsgHashShort,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: runWithApp(opts, func(a *app, args []string) error {
			table := &display.Table{Title: MsgHashTitle, Headers: []string{"DIGEST", "PATH"}}
			for _, arg := range args {
				path, err := paths.NormalizePath(arg)
				if err != nil {
					return err
				}
				digest, err := hashing.HashPath(a.fs, path)
				if err != nil {
					return err
				}
				table.AddRow(digest.String(), path)
			}
			return a.renderer.RenderResult(&display.Result{Table: table})
		}),
	}
}
