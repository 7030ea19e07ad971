// core/projection/project.go
package projection

import (
	"fmt"
	"slices"

	"blockproj-core/alignment"

	"github.com/biogo/hts/sam"
)

// Frame is the part of an alignment the projector reads. Query and Ref are
// 1-based closed; Query is on the forward strand of the query sequence even
// when Strand is Reverse.
type Frame struct {
	Script      sam.Cigar
	RefLength   int
	Ref         alignment.Interval
	QueryLength int
	Query       alignment.Interval
	Strand      alignment.Strand
}

// FrameOf converts a PAF-style alignment into a projection frame.
func FrameOf(a *alignment.Alignment) Frame {
	return Frame{
		Script:      a.Cigar,
		RefLength:   a.RefLength,
		Ref:         a.RefSpan(),
		QueryLength: a.QueryLength,
		Query:       a.QuerySpan(),
		Strand:      a.Strand,
	}
}

// Block is a labelled 1-based closed interval on the source axis.
type Block struct {
	Start, End int
	Label      string
}

// Interval returns the block's coordinates.
func (b Block) Interval() alignment.Interval { return alignment.Interval{Start: b.Start, End: b.End} }

// Result is the projection of one input block.
type Result struct {
	Index  int    // position of the block in the input slice
	Label  string // copied from the block
	Source alignment.Interval
	Target alignment.Interval
	Script sam.Cigar
}

// orient maps one axis between forward-strand coordinates and walk
// coordinates, the direction the edit script advances along.
type orient struct {
	length int
	mirror bool
}

func (o orient) toWalk(iv alignment.Interval) alignment.Interval {
	if o.mirror {
		return iv.Mirror(o.length)
	}
	return iv
}

// fromWalk is its own inverse; kept separate for readability at call sites.
func (o orient) fromWalk(iv alignment.Interval) alignment.Interval { return o.toWalk(iv) }

// Options tune Project beyond the boundary policy.
type Options struct {
	Policy Policy
	// KeepLeadingRun attributes target-only operations that open the script
	// to a block starting at the first aligned source position. By default
	// they belong to no block.
	KeepLeadingRun bool
}

// Project maps blocks from the source axis selected by mode onto the other
// axis of the alignment described by f.
//
// Blocks must be strictly ascending and disjoint. A block with no aligned
// pair inside the alignment gets no Result, so the returned slice may be
// shorter than blocks; each Result records the index of its block and results
// are ordered by that index regardless of strand.
func Project(mode Mode, f Frame, blocks []Block, policy Policy) ([]Result, error) {
	return ProjectWith(mode, f, blocks, Options{Policy: policy})
}

// ProjectWith is Project with explicit options.
func ProjectWith(mode Mode, f Frame, blocks []Block, opts Options) ([]Result, error) {
	policy := opts.Policy
	if !mode.valid() {
		return nil, fmt.Errorf("%w %s", ErrInvalidMode, mode)
	}
	if !policy.valid() {
		return nil, fmt.Errorf("%w %s", ErrInvalidPolicy, policy)
	}
	if f.Strand != alignment.Forward && f.Strand != alignment.Reverse {
		return nil, fmt.Errorf("invalid strand %q", f.Strand.String())
	}
	if err := checkOrder(blocks); err != nil {
		return nil, err
	}
	ref, query := f.Script.Lengths()
	if ref != f.Ref.Len() || query != f.Query.Len() {
		return nil, fmt.Errorf("%w: script spans ref=%d query=%d, frame spans ref=%d query=%d",
			alignment.ErrScriptCoordinateMismatch, ref, query, f.Ref.Len(), f.Query.Len())
	}

	queryAxis := orient{length: f.QueryLength, mirror: f.Strand == alignment.Reverse}
	refAxis := orient{length: f.RefLength}
	srcAxis, tgtAxis := queryAxis, refAxis
	srcSpan, tgtSpan := f.Query, f.Ref
	if mode == RefToAsm {
		srcAxis, tgtAxis = refAxis, queryAxis
		srcSpan, tgtSpan = f.Ref, f.Query
	}
	srcWalk := srcAxis.toWalk(srcSpan)
	c := &cursor{
		script: f.Script,
		mode:   mode,
		src:    srcWalk.Start,
		tgt:    tgtAxis.toWalk(tgtSpan).Start,
	}

	results := make([]Result, 0, len(blocks))
	for n := range blocks {
		i := n
		if srcAxis.mirror {
			i = len(blocks) - 1 - n
		}
		wb := srcAxis.toWalk(blocks[i].Interval())
		clip, ok := wb.Intersect(srcWalk)
		if !ok {
			if wb.Start > srcWalk.End {
				break
			}
			continue
		}

		c.advance(clip.Start)
		if !opts.KeepLeadingRun || !c.atStart() {
			c.skipTargetOnly()
		}
		srcStart, tgtStart := c.src, c.tgt
		sub := c.take(clip.End)
		if policy == IncludeAdjacentIndelAndTrailingRun {
			sub = append(sub, c.takeTargetRun()...)
		}
		if policy == Strict {
			kept, leadSrc, leadTgt, ok := trimToAligned(sub, mode)
			if !ok {
				continue
			}
			sub = kept
			srcStart += leadSrc
			tgtStart += leadTgt
		} else if !hasAligned(sub) {
			continue
		}

		srcLen, tgtLen := span(sub, mode)
		results = append(results, Result{
			Index:  i,
			Label:  blocks[i].Label,
			Source: srcAxis.fromWalk(alignment.Interval{Start: srcStart, End: srcStart + srcLen - 1}),
			Target: tgtAxis.fromWalk(alignment.Interval{Start: tgtStart, End: tgtStart + tgtLen - 1}),
			Script: sub,
		})
	}
	if srcAxis.mirror {
		slices.Reverse(results)
	}
	return results, nil
}

// ProjectAlignment is Project over FrameOf(a).
func ProjectAlignment(a *alignment.Alignment, mode Mode, blocks []Block, policy Policy) ([]Result, error) {
	return Project(mode, FrameOf(a), blocks, policy)
}

func checkOrder(blocks []Block) error {
	for i, b := range blocks {
		if b.Start > b.End {
			return fmt.Errorf("%w: block %d has start %d after end %d", ErrInvalidBlockOrder, i, b.Start, b.End)
		}
		if i > 0 && b.Start <= blocks[i-1].End {
			return fmt.Errorf("%w: block %d (%d-%d) starts at or before the end of block %d (%d-%d)",
				ErrInvalidBlockOrder, i, b.Start, b.End, i-1, blocks[i-1].Start, blocks[i-1].End)
		}
	}
	return nil
}
