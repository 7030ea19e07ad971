// core/homology/link.go
package homology

import (
	"fmt"
	"sort"

	"blockproj-core/alignment"
	"blockproj-core/projection"

	"github.com/biogo/hts/sam"
)

// Relation ties a block to its homologous block on another contig. Partner,
// Script and Orientation are all unset for a gap block.
type Relation struct {
	Block       Block
	Partner     *Block
	Script      sam.Cigar
	Orientation alignment.Strand
}

// Linked reports whether the block has a partner.
func (r Relation) Linked() bool { return r.Partner != nil }

// Relations maps a contig name to its ordered relations.
type Relations map[string][]Relation

// Contigs returns the contig names in lexical order.
func (rs Relations) Contigs() []string {
	names := make([]string, 0, len(rs))
	for name := range rs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Linked counts the relations that have a partner.
func (rs Relations) Linked() int {
	n := 0
	for _, list := range rs {
		for _, r := range list {
			if r.Linked() {
				n++
			}
		}
	}
	return n
}

// footprint is where one alignment lands on one contig and the projection
// mode that carries blocks from there to the other side.
type footprint struct {
	span      alignment.Interval
	alignment int
	mode      projection.Mode
}

// CreateAllInclusiveRelations partitions every contig into tiles using the
// alignment boundaries and links each aligned tile to the block it projects
// onto. Contigs absent from contigLengths take their length from the
// alignments. suffix is appended to every contig name to form block owners.
func CreateAllInclusiveRelations(alignments []*alignment.Alignment, contigLengths map[string]int, suffix string) (Relations, error) {
	lengths := make(map[string]int, len(contigLengths))
	for name, n := range contigLengths {
		lengths[name] = n
	}
	prints := make(map[string][]footprint)
	for i, a := range alignments {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("alignment %d: %w", i, err)
		}
		mode := projection.AsmToRef
		sides := []struct {
			name   string
			length int
			span   alignment.Interval
			mode   projection.Mode
		}{
			{a.QueryName, a.QueryLength, a.QuerySpan(), mode},
			{a.RefName, a.RefLength, a.RefSpan(), mode.Reverse()},
		}
		for _, s := range sides {
			if n, ok := lengths[s.name]; !ok {
				lengths[s.name] = s.length
			} else if n != s.length {
				return nil, fmt.Errorf("alignment %d: %s has length %d, expected %d", i, s.name, s.length, n)
			}
			prints[s.name] = append(prints[s.name], footprint{span: s.span, alignment: i, mode: s.mode})
		}
	}

	tiles := make(map[string][]Tile, len(lengths))
	for name, n := range lengths {
		fps := prints[name]
		spans := make([]alignment.Interval, len(fps))
		for k, fp := range fps {
			spans[k] = fp.span
		}
		tiles[name] = Partition(name, n, spans, name+suffix)
	}

	out := make(Relations, len(tiles))
	for name, list := range tiles {
		rels := make([]Relation, 0, len(list))
		for _, t := range list {
			r, err := link(t, prints[name], alignments, tiles, suffix)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.Block, err)
			}
			rels = append(rels, r)
		}
		out[name] = rels
	}
	return out, nil
}

// link projects an aligned tile through its alignment and resolves the
// partner against the partner contig's partition. Indels at either end of the
// alignment go to the tile touching that end, so both sides of a link carry
// the same script.
func link(t Tile, fps []footprint, alignments []*alignment.Alignment, tiles map[string][]Tile, suffix string) (Relation, error) {
	if !t.Aligned() {
		return Relation{Block: t.Block}, nil
	}
	fp := fps[t.Span]
	a := alignments[fp.alignment]
	res, err := projection.ProjectWith(fp.mode, projection.FrameOf(a),
		[]projection.Block{{Start: t.Start, End: t.End, Label: t.Owner}},
		projection.Options{Policy: projection.IncludeAdjacentIndelAndTrailingRun, KeepLeadingRun: true})
	if err != nil {
		return Relation{}, err
	}
	if len(res) == 0 {
		return Relation{Block: t.Block}, nil
	}

	name := a.RefName
	if fp.mode == projection.RefToAsm {
		name = a.QueryName
	}
	partner, ok := findBlock(tiles[name], res[0].Target)
	if !ok {
		partner = Block{
			Contig: name,
			Start:  res[0].Target.Start,
			End:    res[0].Target.End,
			Strand: alignment.Forward,
			Owner:  name + suffix,
			Index:  DetachedIndex,
		}
	}
	return Relation{
		Block:       t.Block,
		Partner:     &partner,
		Script:      res[0].Script,
		Orientation: a.Strand,
	}, nil
}
