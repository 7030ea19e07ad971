// internal/writers/projection.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"blockproj/internal/jsonlutil"
	"blockproj/internal/output"
	"blockproj/internal/pipeline"
)

// Sinks are the destinations of a projection run. Projectable only receives
// output in bed format and may be nil.
type Sinks struct {
	Projection  io.Writer
	Projectable io.Writer
}

// StartProjectionWriter spins up a writer goroutine for projections in the
// given format ("bed", "tsv" or "jsonl"). Close the returned channel and read
// the error channel once to finish.
func StartProjectionWriter(s Sinks, format string, header bool, bufSize int) (chan<- pipeline.Projection, <-chan error) {
	switch format {
	case "bed":
		return startText([]io.Writer{s.Projection, s.Projectable}, nil, bufSize,
			func(p pipeline.Projection) []string {
				return []string{output.ProjectedBED(p), output.ProjectableBED(p)}
			})
	case "tsv":
		var headers []string
		if header {
			headers = []string{output.ProjectionTSVHeader}
		}
		return startText([]io.Writer{s.Projection}, headers, bufSize,
			func(p pipeline.Projection) []string { return []string{output.ProjectionTSV(p)} })
	case "jsonl":
		return jsonlutil.Start(s.Projection, bufSize,
			func(enc *json.Encoder, p pipeline.Projection) error { return enc.Encode(output.ToProjectionV1(p)) },
			IsBrokenPipe)
	}
	return unsupported[pipeline.Projection](format)
}

func unsupported[T any](format string) (chan<- T, <-chan error) {
	in := make(chan T)
	errCh := make(chan error, 1)
	go func() {
		for range in {
		}
		errCh <- fmt.Errorf("unsupported output %q", format)
	}()
	return in, errCh
}
