// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"blockproj-core/alignment"
	"blockproj-core/projection"
	"blockproj/internal/bed"

	"golang.org/x/sync/errgroup"
)

// Config controls a projection run.
type Config struct {
	Threads int // worker goroutines (>=1)
	Mode    projection.Mode
	Policy  projection.Policy
}

// Projection is one projected block and the alignment that carried it.
type Projection struct {
	projection.Result
	Alignment  int // index into the alignment slice
	SourceName string
	TargetName string
	Strand     alignment.Strand
}

// Stats summarizes a run.
type Stats struct {
	Alignments  int // alignments examined
	Touched     int // alignments with at least one projected block
	Projections int
}

// Run projects blocks through every alignment and calls visit for each
// projection, ordered by alignment and then by block. Each alignment's
// projections are handed to visit as soon as every earlier alignment is done,
// and at most cfg.Threads*2 alignments are in flight or waiting. The first
// error from a worker or from visit stops the run.
func Run(
	ctx context.Context,
	cfg Config,
	alns []*alignment.Alignment,
	blocks bed.Set,
	visit func(Projection) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	st := Stats{Alignments: len(alns)}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads + 1) // workers plus the feeder

	// pending holds one result slot per dispatched alignment, in input order.
	pending := make(chan chan []Projection, cfg.Threads*2)
	g.Go(func() error {
		defer close(pending)
		for i, a := range alns {
			i, a := i, a
			slot := make(chan []Projection, 1)
			select {
			case pending <- slot:
			case <-gctx.Done():
				return gctx.Err()
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				ps, err := projectOne(cfg, i, a, blocks)
				if err != nil {
					return err
				}
				slot <- ps
				return nil
			})
		}
		return nil
	})

	emitErr := emit(gctx, pending, visit, &st)
	if emitErr != nil {
		cancel()
	}
	werr := g.Wait()
	if emitErr != nil && !errors.Is(emitErr, context.Canceled) {
		return st, emitErr
	}
	if werr != nil {
		return st, werr
	}
	return st, emitErr
}

// emit drains the result slots in order.
func emit(ctx context.Context, pending <-chan chan []Projection, visit func(Projection) error, st *Stats) error {
	for slot := range pending {
		var ps []Projection
		select {
		case ps = <-slot:
		case <-ctx.Done():
			return ctx.Err()
		}
		if len(ps) > 0 {
			st.Touched++
		}
		for _, p := range ps {
			if err := visit(p); err != nil {
				return err
			}
			st.Projections++
		}
	}
	return ctx.Err()
}

func projectOne(cfg Config, i int, a *alignment.Alignment, blocks bed.Set) ([]Projection, error) {
	src, tgt, span := a.QueryName, a.RefName, a.QuerySpan()
	if cfg.Mode == projection.RefToAsm {
		src, tgt, span = a.RefName, a.QueryName, a.RefSpan()
	}
	in := blocks.Overlapping(src, span)
	if len(in) == 0 {
		return nil, nil
	}
	res, err := projection.ProjectAlignment(a, cfg.Mode, in, cfg.Policy)
	if err != nil {
		return nil, fmt.Errorf("alignment %d (%s:%s -> %s:%s): %w", i+1, a.QueryName, a.QuerySpan(), a.RefName, a.RefSpan(), err)
	}
	ps := make([]Projection, len(res))
	for k, r := range res {
		ps[k] = Projection{Result: r, Alignment: i, SourceName: src, TargetName: tgt, Strand: a.Strand}
	}
	return ps, nil
}
