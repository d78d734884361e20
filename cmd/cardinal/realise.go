package cardinal

import (
	"fmt"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/hashing"
	"github.com/arthur-debert/cardinal/pkg/realise"
	"github.com/arthur-debert/cardinal/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRealiseCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "realise",
		Aliases: []string{"realize"},
		Short:   MsgRealiseShort,
		Long:    MsgRealiseLong,
		Example: MsgRealiseExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE:    runWithApp(opts, runRealise),
	}
}

func runRealise(a *app, args []string) error {
	manifest, err := a.loadManifest()
	if err != nil {
		return err
	}

	log.Info().
		Str("manifest", manifest.Path).
		Int("entries", len(manifest.Items)).
		Bool("dry_run", a.opts.dryRun).
		Bool("force", a.opts.force).
		Msg("Realising manifest")

	if !a.opts.dryRun {
		if err := a.store.Create(); err != nil {
			return err
		}
	}

	result, realiseErr := realise.Realise(manifest.Items, realise.Options{
		Store:  a.store,
		FS:     a.fs,
		Mode:   a.settings.Realise.Mode,
		DryRun: a.opts.dryRun,
		Force:  a.opts.force,
		Backup: a.settings.Realise.Backup,
	})
	if result == nil {
		return realiseErr
	}

	if err := a.renderer.RenderResult(realiseTable(result)); err != nil {
		return err
	}
	return realiseErr
}

func realiseTable(result *realise.Result) *display.Result {
	title := MsgRealiseTitle
	if result.DryRun {
		title = MsgRealiseDryTitle
	}

	table := &display.Table{
		Title:   title,
		Headers: []string{"TARGET", "ACTION", "STORE", "NOTE"},
		Footer:  fmt.Sprintf(MsgRealiseFooter, len(result.Outcomes), result.Failed()),
	}
	for _, o := range result.Outcomes {
		table.AddRow(o.Item.Path, string(o.Action), o.StorePath, outcomeNote(o))
	}
	return &display.Result{Table: table, Data: result}
}

func outcomeNote(o realise.Outcome) string {
	switch {
	case o.Err != nil:
		return o.Err.Error()
	case o.BackupTo != "":
		return "backup: " + o.BackupTo
	case o.Replaced:
		return "replaced"
	case o.Added:
		return MsgAdded
	case o.StorePath != "":
		return MsgExisting
	default:
		return ""
	}
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE:    runWithApp(opts, runCheck),
	}
}

func runCheck(a *app, args []string) error {
	manifest, err := a.loadManifest()
	if err != nil {
		return err
	}

	table := &display.Table{
		Title:   MsgCheckTitle,
		Headers: []string{"TARGET", "SOURCE", "DIGEST"},
	}
	failed := 0
	for _, item := range manifest.Items {
		digest, err := hashing.HashPath(a.fs, item.Source)
		if err != nil {
			failed++
			log.Warn().Err(err).Str("source", item.Source).Msg("Source failed check")
			table.AddRow(item.Path, item.Source, err.Error())
			continue
		}
		table.AddRow(item.Path, item.Source, digest.String())
	}
	table.Footer = fmt.Sprintf(MsgCheckFooter, len(manifest.Items), failed)

	if err := a.renderer.RenderResult(&display.Result{Table: table}); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Newf(errors.ErrHashingFailed, MsgErrCheckFailed, failed, len(manifest.Items)).
			WithDetails(map[string]interface{}{"failed": failed, "total": len(manifest.Items)})
	}
	return nil
}
