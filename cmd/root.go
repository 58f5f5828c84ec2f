package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"fastcat.org/go/entab/instance"
	"fastcat.org/go/entab/internal"
	"fastcat.org/go/entab/rewrite"
)

func Root() *cobra.Command {
	var (
		cfg       rewrite.Config
		spaces    spacesValue
		showStats bool
		verbose   bool
	)
	format := statsFormatTable

	root := &cobra.Command{
		Use:   instance.AppName + " [FILE]",
		Short: "Entab a file.",
		Long: "Entab a file.\n\n" +
			"Replaces each run of N spaces in the leading whitespace of every line\n" +
			"with a tab. Reads FILE, or standard input when FILE is absent, and\n" +
			"writes to standard output unless --output or --overwrite is given.",
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       instance.Version(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cfg.Input = args[0]
			}
			cfg.Spaces = int(spaces)
			cfg.Stdin = cmd.InOrStdin()
			cfg.Stdout = cmd.OutOrStdout()
			cfg.Logger = newLogger(cmd, verbose)

			res, err := rewrite.Run(cfg)
			if err != nil {
				return err
			}
			if showStats {
				return writeStats(cmd.ErrOrStderr(), format, res)
			}
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return internal.WithExitCode(internal.ExitUsage, err)
	})

	f := root.Flags()
	f.SortFlags = false
	f.VarP(&spaces, "spaces", "n", "number of spaces per tab (required)")
	f.StringVarP(&cfg.Output, "output", "o", "", "file to output to instead of stdout")
	f.BoolVarP(&cfg.Overwrite, "overwrite", "w", false, "write the output back into FILE")
	f.BoolVar(&showStats, "stats", false, "print a summary to stderr when done")
	f.Var(&format, "stats-format", "summary format, one of: table, yaml")
	f.BoolVarP(&verbose, "verbose", "v", false, "log debug details to stderr")

	return root
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return internal.WithExitCode(internal.ExitUsage, err)
		}
		return nil
	}
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(
		slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: level,
		}),
	).With("app", instance.AppName)
}
