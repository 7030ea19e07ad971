// internal/writers/relation.go
package writers

import (
	"encoding/json"
	"io"

	"blockproj-core/homology"
	"blockproj/internal/jsonlutil"
	"blockproj/internal/output"
)

// StartRelationWriter spins up a writer goroutine for relations in "tsv" or
// "jsonl" format.
func StartRelationWriter(out io.Writer, format string, header bool, bufSize int) (chan<- homology.Relation, <-chan error) {
	switch format {
	case "tsv":
		var headers []string
		if header {
			headers = []string{output.RelationTSVHeader}
		}
		return startText([]io.Writer{out}, headers, bufSize,
			func(r homology.Relation) []string { return []string{output.RelationTSV(r)} })
	case "jsonl":
		return jsonlutil.Start(out, bufSize,
			func(enc *json.Encoder, r homology.Relation) error { return enc.Encode(output.ToRelationV1(r)) },
			IsBrokenPipe)
	}
	return unsupported[homology.Relation](format)
}
