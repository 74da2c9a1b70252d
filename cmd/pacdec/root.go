package pacdec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/pacdec/internal/version"
	"github.com/arthur-debert/pacdec/pkg/config"
	"github.com/arthur-debert/pacdec/pkg/core"
	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/arthur-debert/pacdec/pkg/filesystem"
	"github.com/arthur-debert/pacdec/pkg/logging"
	"github.com/arthur-debert/pacdec/pkg/pacman"
	"github.com/arthur-debert/pacdec/pkg/paths"
	"github.com/arthur-debert/pacdec/pkg/picker"
	"github.com/arthur-debert/pacdec/pkg/types"
	"github.com/arthur-debert/pacdec/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	verbosity    int
	declFile     string
	settingsFile string
	logFile      string
	dryRun       bool
	showDiff     bool
	yes          bool
	format       string
}

// app carries what the persistent pre-run resolves to the subcommands.
// Nil collaborators are replaced by the real ones.
type app struct {
	opts      globalOptions
	cfg       *config.Config
	printer   *ui.Printer
	fs        types.FS
	manager   core.PackageManager
	picker    picker.Picker
	confirmer ui.Confirmer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "pacdec",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&a.opts.declFile, "config", "", MsgFlagConfig)
	flags.StringVar(&a.opts.settingsFile, "config-file", "", MsgFlagConfigFile)
	flags.StringVar(&a.opts.logFile, "log-file", "", MsgFlagLogFile)
	flags.BoolVarP(&a.opts.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	flags.BoolVar(&a.opts.showDiff, "diff", false, MsgFlagDiff)
	flags.BoolVarP(&a.opts.yes, "yes", "y", false, MsgFlagYes)
	flags.StringVar(&a.opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "packages", Title: "PACKAGES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "declarations", Title: "DECLARATIONS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newSyncCmd(a))
	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newUninstallCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newRevertCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newGenConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup configures logging, loads the settings and applies the flags that
// override them.
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetupLogger(a.opts.verbosity, a.opts.logFile)

	format, err := ui.ParseFormat(a.opts.format)
	if err != nil {
		return err
	}
	a.printer = ui.NewPrinter(cmd.OutOrStdout(), format)

	cfg, err := config.Load(config.LoadOptions{
		SettingsFile: a.opts.settingsFile,
		Required:     a.opts.settingsFile != "",
	})
	if err != nil {
		return err
	}
	if a.opts.logFile == "" && cfg.LogFile != logging.DefaultLogFile() {
		logging.SetupLogger(a.opts.verbosity, cfg.LogFile)
	}
	if a.opts.declFile != "" {
		abs, err := filepath.Abs(paths.ExpandHome(a.opts.declFile))
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "invalid declaration file %s", a.opts.declFile)
		}
		cfg.DeclarationFile = abs
	}
	a.cfg = cfg

	if a.fs == nil {
		a.fs = filesystem.NewOS()
	}
	if a.confirmer == nil {
		switch {
		case a.opts.yes:
			a.confirmer = ui.PromptConfirmer{AutoYes: true}
		case ui.IsInteractive(os.Stdin):
			a.confirmer = ui.PromptConfirmer{}
		default:
			// Nobody can answer; every question is declined.
			a.confirmer = ui.StaticConfirmer(false)
		}
	}

	log.Debug().
		Str("declarations", cfg.DeclarationFile).
		Str("format", a.printer.Format().String()).
		Bool("dry_run", a.opts.dryRun).
		Msg("Configuration resolved")
	return nil
}

// session builds the core session for a subcommand. The package manager and
// picker are created on first use.
func (a *app) session() *core.Session {
	if a.manager == nil {
		a.manager = pacman.New(a.cfg.PacmanOptions(), nil)
	}
	if a.picker == nil {
		a.picker = picker.New()
	}
	return &core.Session{
		Config:    a.cfg,
		FS:        a.fs,
		Manager:   a.manager,
		Picker:    a.picker,
		Confirmer: a.confirmer,
		Printer:   a.printer,
		DryRun:    a.opts.dryRun,
		ShowDiff:  a.opts.showDiff,
	}
}

// Execute runs the command tree and returns the process exit code.
// Cancelling a prompt is not a failure.
func Execute() int {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	return exitCode(rootCmd, err)
}

func exitCode(rootCmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}
	if errors.IsErrorCode(err, errors.ErrUserCancelled) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), MsgCancelled)
		return 0
	}
	ui.NewPrinter(rootCmd.ErrOrStderr(), ui.FormatAuto).Error(err)
	return 1
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:              "version",
		Short:            MsgVersionShort,
		GroupID:          "misc",
		Args:             cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		// Completion scripts need no settings or log file.
		PersistentPreRun:      func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
