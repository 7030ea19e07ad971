// internal/app/project.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"blockproj-core/projection"
	"blockproj/internal/bed"
	"blockproj/internal/config"
	"blockproj/internal/paf"
	"blockproj/internal/pipeline"
	"blockproj/internal/writers"

	"github.com/spf13/cobra"
)

func newProjectCmd(g *globals, stdout, stderr io.Writer) *cobra.Command {
	var fv config.Project
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project BED blocks through alignments",
		Long: `project maps every block of --blocks lying on the source sequence of an
alignment onto its target. In asm2ref mode the source is the PAF query, in
ref2asm mode it is the PAF target.`,
		Example: `  blockproj project --alignments asm.paf.gz --blocks genes.bed --mode asm2ref \
    --projectable covered.bed --projection projected.bed
  blockproj project --alignments asm.paf --blocks genes.bed --mode ref2asm -o tsv --include-ending-indel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg := file.Project
			applyProjectFlags(cmd.Flags().Changed, &cfg, fv)
			if err := config.Validate(cfg); err != nil {
				return usageErr(err)
			}
			return runProject(cmd.Context(), cfg, g.logger(file.Log, stderr), stdout)
		},
	}

	d := config.Defaults().Project
	f := cmd.Flags()
	f.StringVarP(&fv.Alignments, "alignments", "a", "", "PAF file with cg:Z tags (.gz ok, - for stdin)")
	f.StringVarP(&fv.Blocks, "blocks", "b", "", "BED file of blocks to project (.gz ok)")
	f.StringVarP(&fv.Mode, "mode", "m", d.Mode, "projection direction: asm2ref or ref2asm")
	f.StringVar(&fv.Policy, "policy", "", "boundary policy: strict, adjacent-indel or trailing-run (instead of the two indel flags)")
	f.BoolVar(&fv.IncludeEndingIndel, "include-ending-indel", false, "keep target-only operations at the end of a block")
	f.BoolVar(&fv.IncludePostIndel, "include-post-indel", false, "also keep the target-only run right after a block (needs --include-ending-indel)")
	f.BoolVar(&fv.PrimaryOnly, "primary-only", false, "ignore alignments not tagged tp:A:P")
	f.IntVarP(&fv.Threads, "threads", "t", d.Threads, "worker goroutines (0 = all CPUs)")
	f.StringVarP(&fv.Output, "output", "o", d.Output, "output format: bed, tsv or jsonl")
	f.StringVar(&fv.Projectable, "projectable", "", "bed output: file for the covered part of each source block")
	f.StringVar(&fv.Projection, "projection", "", "file for projected blocks (default stdout)")
	f.BoolVar(&fv.Header, "header", false, "print a header line (tsv)")
	f.IntVar(&fv.NoMatchExitCode, "no-match-exit-code", d.NoMatchExitCode, "exit code when nothing was projected")
	return cmd
}

func applyProjectFlags(changed func(string) bool, cfg *config.Project, fv config.Project) {
	config.Override(changed, "alignments", &cfg.Alignments, fv.Alignments)
	config.Override(changed, "blocks", &cfg.Blocks, fv.Blocks)
	config.Override(changed, "mode", &cfg.Mode, fv.Mode)
	config.Override(changed, "policy", &cfg.Policy, fv.Policy)
	config.Override(changed, "include-ending-indel", &cfg.IncludeEndingIndel, fv.IncludeEndingIndel)
	config.Override(changed, "include-post-indel", &cfg.IncludePostIndel, fv.IncludePostIndel)
	config.Override(changed, "primary-only", &cfg.PrimaryOnly, fv.PrimaryOnly)
	config.Override(changed, "threads", &cfg.Threads, fv.Threads)
	config.Override(changed, "output", &cfg.Output, fv.Output)
	config.Override(changed, "projectable", &cfg.Projectable, fv.Projectable)
	config.Override(changed, "projection", &cfg.Projection, fv.Projection)
	config.Override(changed, "header", &cfg.Header, fv.Header)
	config.Override(changed, "no-match-exit-code", &cfg.NoMatchExitCode, fv.NoMatchExitCode)
}

func runProject(ctx context.Context, cfg config.Project, log *slog.Logger, stdout io.Writer) error {
	mode, err := projection.ParseMode(cfg.Mode)
	if err != nil {
		return usageErr(err)
	}
	policy, err := resolvePolicy(cfg)
	if err != nil {
		return usageErr(err)
	}
	threads := cfg.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	if cfg.Projectable != "" && cfg.Output != "bed" {
		log.Warn("--projectable is only written in bed format", "output", cfg.Output)
	}

	alns, err := paf.Load(ctx, cfg.Alignments, paf.Options{PrimaryOnly: cfg.PrimaryOnly}, log)
	if err != nil {
		return inputErr(ctx, fmt.Errorf("%s: %w", cfg.Alignments, err))
	}
	blocks, err := bed.Read(ctx, cfg.Blocks)
	if err != nil {
		return inputErr(ctx, fmt.Errorf("%s: %w", cfg.Blocks, err))
	}
	log.Info("loaded blocks", "path", cfg.Blocks, "sequences", len(blocks), "blocks", blocks.Len())

	outs := &outputs{stdout: stdout}
	defer outs.abort()
	var sinks writers.Sinks
	if sinks.Projection, err = outs.open(cfg.Projection); err != nil {
		return ioErr(err)
	}
	if cfg.Output == "bed" && cfg.Projectable != "" {
		if sinks.Projectable, err = outs.open(cfg.Projectable); err != nil {
			return ioErr(err)
		}
	}

	in, errCh := writers.StartProjectionWriter(sinks, cfg.Output, cfg.Header, 64)
	st, runErr := pipeline.Run(ctx, pipeline.Config{Threads: threads, Mode: mode, Policy: policy}, alns, blocks,
		func(p pipeline.Projection) error {
			select {
			case in <- p:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	close(in)
	werr := <-errCh
	if runErr != nil {
		return inputErr(ctx, runErr)
	}
	if werr != nil {
		return ioErr(werr)
	}
	if err := outs.close(); err != nil {
		return ioErr(err)
	}

	log.Info("projection finished",
		"mode", mode.String(), "policy", policy.String(),
		"alignments", st.Alignments, "touched", st.Touched, "projections", st.Projections)
	if st.Projections == 0 && cfg.NoMatchExitCode != ExitOK {
		return &exitError{code: cfg.NoMatchExitCode}
	}
	return nil
}

// resolvePolicy reads the policy name when one is set and the indel flags
// otherwise. Flags set next to a name must agree with it.
func resolvePolicy(cfg config.Project) (projection.Policy, error) {
	if cfg.Policy == "" {
		p, err := projection.PolicyFromFlags(cfg.IncludeEndingIndel, cfg.IncludePostIndel)
		if err != nil {
			return p, fmt.Errorf("--include-post-indel requires --include-ending-indel: %w", err)
		}
		return p, nil
	}
	p, err := projection.ParsePolicy(cfg.Policy)
	if err != nil {
		return p, err
	}
	if !cfg.IncludeEndingIndel && !cfg.IncludePostIndel {
		return p, nil
	}
	if ending, post := p.Flags(); ending != cfg.IncludeEndingIndel || post != cfg.IncludePostIndel {
		return p, fmt.Errorf("%w: policy %s conflicts with the indel flags (ending=%t, post=%t)",
			projection.ErrInvalidPolicy, p, cfg.IncludeEndingIndel, cfg.IncludePostIndel)
	}
	return p, nil
}

// inputErr classifies a load or projection failure; cancellation passes
// through untouched.
func inputErr(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return err
	}
	return usageErr(err)
}
