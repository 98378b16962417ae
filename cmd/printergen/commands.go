package printergen

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/printergen/internal/version"
	"github.com/arthur-debert/printergen/pkg/cobrax/topics"
	"github.com/arthur-debert/printergen/pkg/commands/genconfig"
	"github.com/arthur-debert/printergen/pkg/commands/generate"
	"github.com/arthur-debert/printergen/pkg/config"
	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
	"github.com/arthur-debert/printergen/pkg/output"
	"github.com/arthur-debert/printergen/pkg/printer"
)

// ProgramName prefixes error messages.
const ProgramName = "printergen"

var flagUsage = map[string]string{
	"printername":  MsgFlagPrinterName,
	"driver":       MsgFlagDriver,
	"address":      MsgFlagAddress,
	"location":     MsgFlagLocation,
	"displayname":  MsgFlagDisplayName,
	"desc":         MsgFlagDesc,
	"category":     MsgFlagCategory,
	"options":      MsgFlagOptions,
	"version":      MsgFlagVersion + " Defaults to " + printer.DefaultVersion + ".",
	"requires":     MsgFlagRequires,
	"icon":         MsgFlagIcon,
	"catalogs":     MsgFlagCatalogs,
	"subdirectory": MsgFlagSubdirectory,
	"munkiname":    MsgFlagMunkiName,
}

// generateFlags holds the flag values of the root command.
type generateFlags struct {
	fields   map[string]*string
	options  []string
	repo     string
	csv      string
	template string
}

func (f *generateFlags) bind(cmd *cobra.Command) {
	f.fields = make(map[string]*string, len(printer.Schema))
	for _, field := range printer.Schema {
		if field.Column == printer.ColOptions {
			cmd.Flags().StringArrayVar(&f.options, field.Flag, nil, flagUsage[field.Flag])
			continue
		}
		v := new(string)
		f.fields[field.Column] = v
		cmd.Flags().StringVar(v, field.Flag, "", flagUsage[field.Flag])
	}
	cmd.Flags().StringVar(&f.repo, "repo", "", MsgFlagRepo)
	cmd.Flags().StringVar(&f.csv, "csv", "", MsgFlagCSV)
	cmd.Flags().StringVar(&f.template, "template", "", MsgFlagTemplate)

	_ = cmd.MarkFlagFilename("csv", "csv", "txt")
	_ = cmd.MarkFlagFilename("template", "plist")
	_ = cmd.MarkFlagDirname("repo")
}

// values returns the printer values given on the command line. Positional
// KEY=VALUE arguments after --options are accepted as more options.
func (f *generateFlags) values(cmd *cobra.Command, args []string) (printer.Values, error) {
	options := append([]string(nil), f.options...)
	if len(args) > 0 {
		if !cmd.Flags().Changed("options") || !allOptions(args) {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrUnexpectedArgs, strings.Join(args, " "))
		}
		options = append(options, args...)
	}

	values := make(printer.Values, len(f.fields)+1)
	for column, v := range f.fields {
		if *v != "" {
			values[column] = *v
		}
	}
	if len(options) > 0 {
		values[printer.ColOptions] = strings.Join(options, " ")
	}
	return values, nil
}

func allOptions(args []string) bool {
	for _, a := range args {
		if !strings.Contains(a, "=") || strings.HasPrefix(a, "-") {
			return false
		}
	}
	return true
}

// printerFlagsSet lists the printer flags given together with --csv.
func printerFlagsSet(cmd *cobra.Command) []string {
	var set []string
	for _, field := range printer.Schema {
		if cmd.Flags().Changed(field.Flag) {
			set = append(set, "--"+field.Flag)
		}
	}
	return set
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		dryRun    bool
		flags     generateFlags
	)

	rootCmd := &cobra.Command{
		Use:     "printergen [flags]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.generate")

			values, err := flags.values(cmd, args)
			if err != nil {
				return err
			}

			prefs, err := config.Load(config.DefaultSources())
			if err != nil {
				return err
			}
			if err := output.LoadStylesFromFile(prefs.StylesPath); err != nil {
				return err
			}

			r, err := output.NewRenderer(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			if flags.csv != "" {
				if set := printerFlagsSet(cmd); len(set) > 0 {
					logger.Debug().Strs("flags", set).Msg("Ignoring printer flags in CSV mode")
					if err := r.RenderMessage("Warning", fmt.Sprintf(MsgWarnFlagsIgnored, strings.Join(set, " "))); err != nil {
						return err
					}
				}
			}

			result, err := generate.Generate(generate.GenerateOptions{
				Values:       values,
				CSVPath:      flags.csv,
				RepoRoot:     flags.repo,
				TemplatePath: flags.template,
				DryRun:       dryRun,
				Preferences:  prefs,
				Output:       cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			if flags.csv != "" || dryRun {
				return r.RenderSummary(result)
			}
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags.bind(rootCmd)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().SortFlags = false

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.New(errors.ErrInvalidInput, err.Error())
	})

	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "COMMANDS:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		if err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Debug().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version %s\n", ProgramName, version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	var write, effective bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := genconfig.GenConfigOptions{
				Write:     write,
				Effective: effective,
			}
			if effective {
				prefs, err := config.Load(config.DefaultSources())
				if err != nil {
					return err
				}
				opts.Preferences = prefs
			}

			result, err := genconfig.GenConfig(opts)
			if err != nil {
				return err
			}
			return printGenConfig(cmd.OutOrStdout(), cmd.ErrOrStderr(), write, result.ConfigContent, result.FilesWritten)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func printGenConfig(out, errOut io.Writer, write bool, content string, written []string) error {
	if !write {
		_, err := io.WriteString(out, content)
		return err
	}
	if len(written) == 0 {
		fmt.Fprintf(errOut, MsgConfigExists, config.UserConfigPath())
		return nil
	}
	for _, path := range written {
		fmt.Fprintf(out, MsgConfigWritten, path)
	}
	return nil
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			root.InitDefaultHelpCmd()
			helpCmd, _, err := root.Find([]string{"help"})
			if err != nil || helpCmd == nil || helpCmd.Run == nil {
				return errors.New(errors.ErrNotFound, "help command not found")
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
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
