// internal/output/text.go
package output

import (
	"strconv"
	"strings"

	"blockproj-core/cigar"
	"blockproj-core/homology"
	"blockproj/internal/bed"
	"blockproj/internal/pipeline"
)

// ProjectableBED is the BED line of the part of the source block the
// alignment covers.
func ProjectableBED(p pipeline.Projection) string {
	return bed.Format(p.SourceName, p.Source, p.Label)
}

// ProjectedBED is the BED line of the projected interval.
func ProjectedBED(p pipeline.Projection) string {
	return bed.Format(p.TargetName, p.Target, p.Label)
}

// ProjectionTSV renders one projection row.
func ProjectionTSV(p pipeline.Projection) string {
	return strings.Join([]string{
		p.SourceName, itoa(p.Source.Start - 1), itoa(p.Source.End),
		p.TargetName, itoa(p.Target.Start - 1), itoa(p.Target.End),
		p.Strand.String(), orMissing(p.Label), orMissing(cigar.Format(p.Script)),
		itoa(p.Alignment + 1),
	}, "\t")
}

// RelationTSV renders one relation row. Partner columns of a gap block are
// filled with ".".
func RelationTSV(r homology.Relation) string {
	b := r.Block
	cols := []string{b.Contig, itoa(b.Start - 1), itoa(b.End), b.Owner, itoa(b.Index)}
	if !r.Linked() {
		cols = append(cols, missing, missing, missing, missing, missing, missing, missing)
		return strings.Join(cols, "\t")
	}
	p := r.Partner
	cols = append(cols,
		p.Contig, itoa(p.Start-1), itoa(p.End), p.Owner, itoa(p.Index),
		orMissing(cigar.Format(r.Script)), r.Orientation.String(),
	)
	return strings.Join(cols, "\t")
}

func itoa(n int) string { return strconv.Itoa(n) }

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}
