package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"smallsh/internal/config"
	"smallsh/internal/history"
	"smallsh/internal/logger"
	"smallsh/internal/shell"
	"smallsh/internal/term"
)

type flags struct {
	configPath string
	prompt     string
	verbose    bool
	noColor    bool
}

func main() {
	code := shell.CodeOk
	if err := newRootCmd(&code).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "smallsh: %v\n", err)
		os.Exit(shell.CodeFailure)
	}
	os.Exit(code)
}

func newRootCmd(code *int) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:               "smallsh",
		Short:             "A small interactive shell with background jobs and I/O redirection",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := run(cmd, f)
			*code = c
			return err
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "config file (default $SMALLSH_CONFIG or ~/.smallsh/config.yml)")
	cmd.Flags().StringVar(&f.prompt, "prompt", "", "prompt printed before each line")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "trace process and job activity on stderr")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable colored diagnostics")

	cmd.AddCommand(newExecChildCmd(code))
	return cmd
}

// newExecChildCmd is the child side of every launch. The shell re-executes
// its own binary with it so redirections are applied in the new process.
func newExecChildCmd(code *int) *cobra.Command {
	return &cobra.Command{
		Use:                shell.ChildCommand + " INPUT OUTPUT PROGRAM [ARG...]",
		Hidden:             true,
		DisableFlagParsing: true,
		Run: func(_ *cobra.Command, args []string) {
			*code = shell.ExecChild(args, os.Stderr)
		},
	}
}

func run(cmd *cobra.Command, f *flags) (int, error) {
	fsys := afero.NewOsFs()
	path := config.Path(f.configPath)

	cfg, err := config.Load(fsys, path)
	if err != nil {
		return shell.CodeFailure, fmt.Errorf("error loading config: %w", err)
	}
	if cmd.Flags().Changed("prompt") {
		cfg.Prompt = f.prompt
	}
	if f.verbose {
		cfg.Verbose = true
	}

	log := logger.New(cfg.Verbose, cfg.UseColor() && !f.noColor && term.IsInteractive(os.Stdin, os.Stdout))
	log.VerboseErrf(logger.Magenta, "smallsh: using config %s", path)

	hist, err := history.New(fsys, cfg.HistoryFile, cfg.HistorySize)
	if err != nil {
		return shell.CodeFailure, fmt.Errorf("error initializing history: %w", err)
	}

	rl, err := shell.NewLineEditor(cfg, hist)
	if err != nil {
		return shell.CodeFailure, err
	}

	return shell.New(cfg, hist, log, rl).Run(), nil
}
