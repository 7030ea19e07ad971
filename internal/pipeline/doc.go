// Package pipeline fans block projection out over alignments and hands the
// results back in alignment order.
//
// Each alignment is one unit of work: the blocks overlapping its source-axis
// span are selected from the block set and projected through it. Work units
// share no mutable state, so the only coordination is the errgroup limit and
// the ordered hand-off to visit.
package pipeline
