// Package cardinal holds the cardinal command line.
package cardinal

import (
	"github.com/arthur-debert/cardinal/internal/version"
	"github.com/arthur-debert/cardinal/pkg/config"
	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/filesystem"
	"github.com/arthur-debert/cardinal/pkg/logging"
	"github.com/arthur-debert/cardinal/pkg/paths"
	"github.com/arthur-debert/cardinal/pkg/store"
	"github.com/arthur-debert/cardinal/pkg/types"
	"github.com/arthur-debert/cardinal/pkg/ui"
	"github.com/arthur-debert/cardinal/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the values of the persistent flags.
type globalOptions struct {
	verbosity int
	format    string
	manifest  string
	dryRun    bool
	force     bool
}

// app is everything a command needs, built after flags are parsed.
type app struct {
	opts     *globalOptions
	paths    paths.Paths
	settings *config.Settings
	fs       types.FS
	store    *store.Store
	renderer ui.Renderer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "cardinal",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.format, "format", "", MsgFlagFormat)
	flags.StringVarP(&opts.manifest, "manifest", "f", paths.ManifestFileName, MsgFlagManifest)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.BoolVar(&opts.force, "force", false, MsgFlagForce)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetHelpCommandGroupID("misc")
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRealiseCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newStoreCmd(opts))
	rootCmd.AddCommand(newHashCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// newApp resolves paths and settings and picks the renderer. The --format
// flag is layered over the settings file and environment.
func newApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = opts.format
	}

	settings, err := config.LoadSettings(p, overrides)
	if err != nil {
		return nil, err
	}

	format, err := ui.ParseFormat(settings.Output.Format)
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	fsys := filesystem.NewOS()
	storeDir := settings.StoreDir(p)

	log.Debug().
		Str("store", storeDir).
		Str("format", format.String()).
		Str("mode", settings.Realise.Mode).
		Msg("Application configured")

	return &app{
		opts:     opts,
		paths:    p,
		settings: settings,
		fs:       fsys,
		store:    store.New(fsys, storeDir),
		renderer: renderer,
	}, nil
}

// runWithApp adapts a command body that needs an app to cobra's RunE.
func runWithApp(opts *globalOptions, run func(a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, opts)
		if err != nil {
			return err
		}
		return run(a, args)
	}
}

// loadManifest reads the manifest named by --manifest.
func (a *app) loadManifest() (*config.Manifest, error) {
	path, err := paths.NormalizePath(a.opts.manifest)
	if err != nil {
		return nil, err
	}
	return config.LoadManifest(a.fs, path)
}

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: runWithApp(opts, func(a *app, args []string) error {
			info := version.Get()
			table := &display.Table{Headers: []string{"FIELD", "VALUE"}}
			table.AddRow("version", info.Version)
			table.AddRow("commit", info.Commit)
			table.AddRow("built", info.Date)
			return a.renderer.RenderResult(&display.Result{Table: table, Data: info})
		}),
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return errors.Newf(errors.ErrInvalidInput, "unsupported shell %q", args[0])
		},
	}
}
