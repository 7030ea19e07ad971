// core/homology/partition.go
package homology

import (
	"fmt"
	"slices"
	"sort"

	"blockproj-core/alignment"
)

// DetachedIndex marks a partner block that is not part of its contig's
// partition.
const DetachedIndex = -1

// Block is one tile of a contig. Blocks are always on the contig's own
// forward strand.
type Block struct {
	Contig string
	Start  int
	End    int
	Strand alignment.Strand
	Owner  string // contig name plus the caller's suffix
	Index  int
}

// Interval returns the block's coordinates.
func (b Block) Interval() alignment.Interval { return alignment.Interval{Start: b.Start, End: b.End} }

func (b Block) String() string {
	return fmt.Sprintf("%s:%d-%d#%d", b.Contig, b.Start, b.End, b.Index)
}

// Tile is a partition block together with the alignment footprint that covers
// it, if exactly one does.
type Tile struct {
	Block
	Span int // index into the spans given to Partition, -1 for a gap
}

// Aligned reports whether exactly one footprint covers the tile.
func (t Tile) Aligned() bool { return t.Span >= 0 }

// Partition cuts [1, length] at every footprint boundary in spans and returns
// the resulting tiles in order. Tiles never overlap and leave no gaps. A tile
// covered by no footprint, or by more than one, is a gap tile.
func Partition(contig string, length int, spans []alignment.Interval, owner string) []Tile {
	if length <= 0 {
		return nil
	}
	clamp := func(p int) int { return min(max(p, 1), length+1) }

	cuts := make([]int, 0, 2*len(spans)+2)
	cuts = append(cuts, 1, length+1)
	for _, s := range spans {
		cuts = append(cuts, clamp(s.Start), clamp(s.End+1))
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	tiles := make([]Tile, 0, len(cuts)-1)
	for k := 0; k+1 < len(cuts); k++ {
		tiles = append(tiles, Tile{
			Block: Block{
				Contig: contig,
				Start:  cuts[k],
				End:    cuts[k+1] - 1,
				Strand: alignment.Forward,
				Owner:  owner,
				Index:  k,
			},
			Span: -1,
		})
	}

	cover := make([]int, len(tiles))
	for i, s := range spans {
		lo, hi := clamp(s.Start), clamp(s.End+1)
		if lo >= hi {
			continue
		}
		first := sort.SearchInts(cuts, lo)
		last := sort.SearchInts(cuts, hi)
		for k := first; k < last; k++ {
			cover[k]++
			tiles[k].Span = i
		}
	}
	for k, n := range cover {
		if n != 1 {
			tiles[k].Span = -1
		}
	}
	return tiles
}

// findBlock returns the tile of tiles whose coordinates equal iv.
func findBlock(tiles []Tile, iv alignment.Interval) (Block, bool) {
	k := sort.Search(len(tiles), func(k int) bool { return tiles[k].Start >= iv.Start })
	if k < len(tiles) && tiles[k].Start == iv.Start && tiles[k].End == iv.End {
		return tiles[k].Block, true
	}
	return Block{}, false
}
