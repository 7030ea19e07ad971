// internal/app/relations.go
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"blockproj-core/homology"
	"blockproj/internal/config"
	"blockproj/internal/paf"
	"blockproj/internal/writers"

	"github.com/spf13/cobra"
)

func newRelationsCmd(g *globals, stdout, stderr io.Writer) *cobra.Command {
	var fv config.Relations
	cmd := &cobra.Command{
		Use:   "relations",
		Short: "Partition contigs at alignment boundaries and link homologous blocks",
		Long: `relations cuts every contig at the start and end of each alignment touching
it. A block covered by exactly one alignment is linked to the block that
alignment projects it onto; all other blocks are printed without a partner.`,
		Example: `  blockproj relations --alignments asm.paf --lengths asm.fa.fai --suffix _hap1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg := file.Relations
			changed := cmd.Flags().Changed
			config.Override(changed, "alignments", &cfg.Alignments, fv.Alignments)
			config.Override(changed, "lengths", &cfg.Lengths, fv.Lengths)
			config.Override(changed, "suffix", &cfg.Suffix, fv.Suffix)
			config.Override(changed, "primary-only", &cfg.PrimaryOnly, fv.PrimaryOnly)
			config.Override(changed, "output", &cfg.Output, fv.Output)
			config.Override(changed, "header", &cfg.Header, fv.Header)
			if err := config.Validate(cfg); err != nil {
				return usageErr(err)
			}
			return runRelations(cmd.Context(), cfg, g.logger(file.Log, stderr), stdout)
		},
	}

	d := config.Defaults().Relations
	f := cmd.Flags()
	f.StringVarP(&fv.Alignments, "alignments", "a", "", "PAF file with cg:Z tags (.gz ok, - for stdin)")
	f.StringVarP(&fv.Lengths, "lengths", "l", "", "contig lengths: name<TAB>length per line (a .fai works)")
	f.StringVar(&fv.Suffix, "suffix", d.Suffix, "appended to contig names to form block owners")
	f.BoolVar(&fv.PrimaryOnly, "primary-only", false, "ignore alignments not tagged tp:A:P")
	f.StringVarP(&fv.Output, "output", "o", d.Output, "output format: tsv or jsonl")
	f.BoolVar(&fv.Header, "header", false, "print a header line (tsv)")
	return cmd
}

func runRelations(ctx context.Context, cfg config.Relations, log *slog.Logger, stdout io.Writer) error {
	alns, err := paf.Load(ctx, cfg.Alignments, paf.Options{PrimaryOnly: cfg.PrimaryOnly}, log)
	if err != nil {
		return inputErr(ctx, fmt.Errorf("%s: %w", cfg.Alignments, err))
	}
	var lengths map[string]int
	if cfg.Lengths != "" {
		if lengths, err = paf.LoadLengths(ctx, cfg.Lengths); err != nil {
			return inputErr(ctx, fmt.Errorf("%s: %w", cfg.Lengths, err))
		}
	}

	rels, err := homology.CreateAllInclusiveRelations(alns, lengths, cfg.Suffix)
	if err != nil {
		return usageErr(err)
	}

	in, errCh := writers.StartRelationWriter(stdout, cfg.Output, cfg.Header, 64)
	n := 0
	for _, name := range rels.Contigs() {
		for _, r := range rels[name] {
			if ctx.Err() != nil {
				break
			}
			in <- r
			n++
		}
	}
	close(in)
	if err := <-errCh; err != nil {
		return ioErr(err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("relations finished", "contigs", len(rels), "blocks", n, "linked", rels.Linked())
	if n == 0 {
		return &exitError{code: ExitNoOutput}
	}
	return nil
}
