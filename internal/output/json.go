// internal/output/json.go
package output

import (
	"blockproj-core/cigar"
	"blockproj-core/homology"
	"blockproj/internal/pipeline"
	"blockproj/pkg/api"
)

// ToProjectionV1 converts a projection to its wire record.
func ToProjectionV1(p pipeline.Projection) api.ProjectionV1 {
	return api.ProjectionV1{
		Source:      p.SourceName,
		SourceStart: p.Source.Start,
		SourceEnd:   p.Source.End,
		Target:      p.TargetName,
		TargetStart: p.Target.Start,
		TargetEnd:   p.Target.End,
		Strand:      p.Strand.String(),
		Label:       p.Label,
		Cigar:       cigar.Format(p.Script),
		Alignment:   p.Alignment + 1,
	}
}

// ToRelationV1 converts a relation to its wire record.
func ToRelationV1(r homology.Relation) api.RelationV1 {
	out := api.RelationV1{Block: toBlockV1(r.Block)}
	if r.Linked() {
		p := toBlockV1(*r.Partner)
		out.Partner = &p
		out.Cigar = cigar.Format(r.Script)
		out.Orientation = r.Orientation.String()
	}
	return out
}

func toBlockV1(b homology.Block) api.BlockV1 {
	return api.BlockV1{
		Contig: b.Contig,
		Start:  b.Start,
		End:    b.End,
		Strand: b.Strand.String(),
		Owner:  b.Owner,
		Index:  b.Index,
	}
}
