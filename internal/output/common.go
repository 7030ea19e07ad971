// Package output renders projections and relations as text rows and as
// pkg/api wire records. Text rows use 0-based half-open coordinates like BED;
// wire records keep the 1-based closed ones.
package output

// ProjectionTSVHeader is the header row of the projection TSV output.
const ProjectionTSVHeader = "source\tsource_start\tsource_end\ttarget\ttarget_start\ttarget_end\tstrand\tlabel\tcigar\talignment"

// RelationTSVHeader is the header row of the relation TSV output.
const RelationTSVHeader = "contig\tstart\tend\towner\tindex\tpartner\tpartner_start\tpartner_end\tpartner_owner\tpartner_index\tcigar\torientation"

// missing fills text columns that have no value.
const missing = "."
