// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"blockproj/internal/config"
	"blockproj/internal/logging"
	"blockproj/internal/version"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitNoOutput  = 1 // default, see no_match_exit_code
	ExitUsage     = 2 // bad flags, configuration or input data
	ExitIO        = 3 // output could not be written
	ExitCancelled = 130
)

// exitError carries the process exit code of a failed command. A nil err
// exits silently.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error { return &exitError{code: ExitUsage, err: err} }

func ioErr(err error) error { return &exitError{code: ExitIO, err: err} }

// globals are the flags shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string
	logJSON    bool
	quiet      bool
}

// NewRootCmd builds the blockproj command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "blockproj",
		Short: "Project intervals through pairwise alignments",
		Long: `blockproj maps BED blocks from one sequence onto the other through the
CIGAR strings of a PAF file, and links homologous blocks between contigs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageErr(fmt.Errorf("%w\nRun '%s --help' for usage.", err, c.CommandPath()))
	})

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&g.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.BoolVar(&g.logJSON, "log-json", false, "log as JSON lines")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(
		newProjectCmd(g, stdout, stderr),
		newRelationsCmd(g, stdout, stderr),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "blockproj version %s\n", version.Version)
				if err != nil {
					return ioErr(err)
				}
				return nil
			},
		},
	)
	return root
}

// loadConfig reads --config and applies the logging flags over its log
// section.
func (g *globals) loadConfig(cmd *cobra.Command) (config.File, error) {
	file, err := config.Load(g.configPath)
	if err != nil {
		return file, usageErr(err)
	}
	changed := cmd.Flags().Changed
	config.Override(changed, "log-level", &file.Log.Level, g.logLevel)
	config.Override(changed, "log-json", &file.Log.JSON, g.logJSON)
	if err := config.Validate(file.Log); err != nil {
		return file, usageErr(err)
	}
	return file, nil
}

func (g *globals) logger(cfg config.Log, stderr io.Writer) *slog.Logger {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(stderr, logging.Config{Level: level, JSON: cfg.JSON, Quiet: g.quiet})
}

// RunContext executes argv and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	if argv == nil {
		argv = []string{} // cobra falls back to os.Args on nil
	}
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(argv)
	return exitCode(ctx, root.ExecuteContext(ctx), stderr)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func exitCode(ctx context.Context, err error, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return ExitCancelled
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", ee.err)
		}
		return ee.code
	}
	// cobra reports unknown commands and argument errors unwrapped
	_, _ = fmt.Fprintln(stderr, "error:", err)
	return ExitUsage
}
