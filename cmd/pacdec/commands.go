package pacdec

import (
	"fmt"

	"github.com/arthur-debert/pacdec/pkg/commands"
	"github.com/arthur-debert/pacdec/pkg/paths"
	"github.com/arthur-debert/pacdec/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		GroupID: "packages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Sync(cmd.Context(), commands.SyncOptions{Session: a.session()})
			return err
		},
	}
}

func newInstallCmd(a *app) *cobra.Command {
	var (
		category string
		revive   bool
	)
	cmd := &cobra.Command{
		Use:     "install [packages...]",
		Aliases: []string{"ins"},
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		GroupID: "packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Install(cmd.Context(), commands.InstallOptions{
				Session:  a.session(),
				Packages: args,
				Category: category,
				Revive:   revive,
			})
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", MsgFlagCategory)
	cmd.Flags().BoolVar(&revive, "revive", false, MsgFlagRevive)
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletion(a))
	return cmd
}

func newUninstallCmd(a *app) *cobra.Command {
	var del bool
	cmd := &cobra.Command{
		Use:               "uninstall [packages...]",
		Aliases:           []string{"unins"},
		Short:             MsgUninstallShort,
		Long:              MsgUninstallLong,
		GroupID:           "packages",
		ValidArgsFunction: declaredCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Uninstall(cmd.Context(), commands.UninstallOptions{
				Session:  a.session(),
				Packages: args,
				Delete:   del,
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&del, "delete", false, MsgFlagDelete)
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var opts commands.SearchOptions
	cmd := &cobra.Command{
		Use:     "search",
		Short:   MsgSearchShort,
		Long:    MsgSearchLong,
		GroupID: "packages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Session = a.session()
			result, err := commands.Search(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.printer.Lines(result.Packages)
		},
	}
	cmd.Flags().BoolVarP(&opts.Explicit, "explicit", "e", false, MsgFlagExplicit)
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, MsgFlagAll)
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", MsgFlagQuery)
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		category string
		del      bool
	)
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		GroupID: "declarations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Generate(cmd.Context(), commands.GenerateOptions{
				Session:  a.session(),
				Category: category,
				Delete:   del,
			})
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", MsgFlagCategory)
	cmd.Flags().BoolVar(&del, "delete", false, MsgFlagDelete)
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletion(a))
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var (
		category string
		revive   bool
	)
	cmd := &cobra.Command{
		Use:     "add [packages...]",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		GroupID: "declarations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Add(cmd.Context(), commands.AddOptions{
				Session:  a.session(),
				Packages: args,
				Category: category,
				Revive:   revive,
			})
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", MsgFlagCategory)
	cmd.Flags().BoolVar(&revive, "revive", false, MsgFlagRevive)
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletion(a))
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var del bool
	cmd := &cobra.Command{
		Use:               "remove [packages...]",
		Aliases:           []string{"rm"},
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		Example:           MsgRemoveExample,
		GroupID:           "declarations",
		ValidArgsFunction: declaredCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Remove(cmd.Context(), commands.RemoveOptions{
				Session:  a.session(),
				Packages: args,
				Delete:   del,
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&del, "delete", false, MsgFlagDelete)
	return cmd
}

func newRevertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "revert",
		Aliases: []string{"undo"},
		Short:   MsgRevertShort,
		Long:    MsgRevertLong,
		GroupID: "declarations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Revert(commands.RevertOptions{Session: a.session()})
			return err
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var categories bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "declarations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.List(commands.ListOptions{
				Session:    a.session(),
				Categories: categories,
			})
			if err != nil {
				return err
			}
			if a.printer.Format() == ui.FormatJSON {
				return a.printer.JSON(result)
			}
			if categories {
				return a.printer.Lines(result.Categories)
			}
			return a.printer.Lines(result.Packages)
		},
	}
	cmd.Flags().BoolVar(&categories, "categories", false, MsgFlagCategories)
	return cmd
}

func newGenConfigCmd(a *app) *cobra.Command {
	var (
		write   bool
		current bool
		output  string
	)
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.GenConfigOptions{FS: a.fs, Write: write}
			if current {
				opts.Current = a.cfg
			}
			if write {
				if output == "" {
					p, err := paths.New()
					if err != nil {
						return err
					}
					output = p.SettingsFile()
				}
				opts.Path = paths.ExpandHome(output)
			}

			result, err := commands.GenConfig(opts)
			if err != nil {
				return err
			}
			for _, path := range result.FilesWritten {
				a.printer.Success(fmt.Sprintf(MsgFileWritten, path))
			}
			if !write {
				a.printer.Print(result.ConfigContent)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&current, "current", false, MsgFlagCurrent)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	return cmd
}

// declaredCompletion completes the packages found in the declarations.
func declaredCompletion(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return listCompletion(a, cmd, args, false)
	}
}

// categoryCompletion completes declared category paths.
func categoryCompletion(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return listCompletion(a, cmd, nil, true)
	}
}

func listCompletion(a *app, cmd *cobra.Command, args []string, categories bool) ([]string, cobra.ShellCompDirective) {
	if a.cfg == nil {
		if err := a.setup(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}
	result, err := commands.List(commands.ListOptions{Session: a.session(), Categories: categories})
	if err != nil {
		log.Debug().Err(err).Msg("Completion failed")
		return nil, cobra.ShellCompDirectiveError
	}

	items := result.Packages
	if categories {
		items = result.Categories
	}
	taken := make(map[string]bool, len(args))
	for _, arg := range args {
		taken[arg] = true
	}
	var out []string
	for _, item := range items {
		if !taken[item] {
			out = append(out, item)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
