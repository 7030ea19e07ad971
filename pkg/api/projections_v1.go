// pkg/api/projections_v1.go
package api

// Coordinates in every v1 type are 1-based and closed, as in the alignment
// and block models. BED and TSV outputs are the 0-based half-open ones.

// ProjectionV1 is the stable JSON/JSONL schema for one projected block.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ProjectionV1 struct {
	Source      string `json:"source"`
	SourceStart int    `json:"source_start"`
	SourceEnd   int    `json:"source_end"`
	Target      string `json:"target"`
	TargetStart int    `json:"target_start"`
	TargetEnd   int    `json:"target_end"`
	Strand      string `json:"strand"` // "+" | "-"
	Label       string `json:"label,omitempty"`
	Cigar       string `json:"cigar"`
	Alignment   int    `json:"alignment"` // 1-based record number in the PAF input
}

// BlockV1 is one tile of a contig partition. Index is -1 for a partner block
// that is not part of its contig's partition.
type BlockV1 struct {
	Contig string `json:"contig"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Strand string `json:"strand"`
	Owner  string `json:"owner"`
	Index  int    `json:"index"`
}

// RelationV1 is the stable schema for a block and its homologous partner.
// Gap blocks carry no partner, cigar or orientation.
type RelationV1 struct {
	Block       BlockV1  `json:"block"`
	Partner     *BlockV1 `json:"partner,omitempty"`
	Cigar       string   `json:"cigar,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
}
