package writers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"blockproj-core/alignment"
	"blockproj-core/cigar"
	"blockproj-core/homology"
	"blockproj-core/projection"
	"blockproj/internal/pipeline"
	"blockproj/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projections() []pipeline.Projection {
	mk := func(aln int, s, e, ts, te int, script string) pipeline.Projection {
		return pipeline.Projection{
			Result: projection.Result{
				Label:  fmt.Sprintf("b%d", s),
				Source: alignment.Interval{Start: s, End: e},
				Target: alignment.Interval{Start: ts, End: te},
				Script: cigar.MustParse(script),
			},
			Alignment:  aln,
			SourceName: "ctg",
			TargetName: "ref",
			Strand:     alignment.Forward,
		}
	}
	return []pipeline.Projection{
		mk(0, 101, 105, 11, 15, "4=1X"),
		mk(0, 111, 113, 29, 31, "1X2="),
	}
}

func writeAll[T any](in chan<- T, errCh <-chan error, items []T) error {
	for _, v := range items {
		in <- v
	}
	close(in)
	return <-errCh
}

func TestProjectionBED(t *testing.T) {
	var proj, able bytes.Buffer
	in, errCh := StartProjectionWriter(Sinks{Projection: &proj, Projectable: &able}, "bed", true, 0)
	require.NoError(t, writeAll(in, errCh, projections()))

	assert.Equal(t, "ref\t10\t15\tb101\nref\t28\t31\tb111\n", proj.String(), "bed output has no header")
	assert.Equal(t, "ctg\t100\t105\tb101\nctg\t110\t113\tb111\n", able.String())
}

func TestProjectionBEDWithoutProjectable(t *testing.T) {
	var proj bytes.Buffer
	in, errCh := StartProjectionWriter(Sinks{Projection: &proj}, "bed", false, 1)
	require.NoError(t, writeAll(in, errCh, projections()))
	assert.Equal(t, 2, strings.Count(proj.String(), "\n"))
}

func TestProjectionTSV(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartProjectionWriter(Sinks{Projection: &buf}, "tsv", true, 0)
	require.NoError(t, writeAll(in, errCh, projections()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "source\tsource_start"))
	assert.Equal(t, "ctg\t110\t113\tref\t28\t31\t+\tb111\t1X2=\t1", lines[2])
}

func TestProjectionJSONL(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartProjectionWriter(Sinks{Projection: &buf}, "jsonl", false, 0)
	require.NoError(t, writeAll(in, errCh, projections()))

	dec := json.NewDecoder(&buf)
	var got []api.ProjectionV1
	for dec.More() {
		var v api.ProjectionV1
		require.NoError(t, dec.Decode(&v))
		got = append(got, v)
	}
	require.Len(t, got, 2)
	assert.Equal(t, 101, got[0].SourceStart)
	assert.Equal(t, "1X2=", got[1].Cigar)
}

func TestUnsupported(t *testing.T) {
	in, errCh := StartProjectionWriter(Sinks{Projection: io.Discard}, "sam", false, 0)
	assert.EqualError(t, writeAll(in, errCh, projections()), `unsupported output "sam"`)

	rin, rerrCh := StartRelationWriter(io.Discard, "bed", false, 0)
	assert.Error(t, writeAll(rin, rerrCh, nil))
}

func TestRelationWriter(t *testing.T) {
	b := homology.Block{Contig: "ctg1", Start: 7, End: 15, Strand: alignment.Forward, Owner: "ctg1_f", Index: 1}
	p := homology.Block{Contig: "ctg2", Start: 9, End: 18, Strand: alignment.Forward, Owner: "ctg2_f", Index: 1}
	rels := []homology.Relation{
		{Block: homology.Block{Contig: "ctg1", Start: 1, End: 6, Strand: alignment.Forward, Owner: "ctg1_f"}},
		{Block: b, Partner: &p, Script: cigar.MustParse("1=1X2I3=1D3="), Orientation: alignment.Forward},
	}

	var buf bytes.Buffer
	in, errCh := StartRelationWriter(&buf, "tsv", false, 0)
	require.NoError(t, writeAll(in, errCh, rels))
	assert.Equal(t,
		"ctg1\t0\t6\tctg1_f\t0\t.\t.\t.\t.\t.\t.\t.\n"+
			"ctg1\t6\t15\tctg1_f\t1\tctg2\t8\t18\tctg2_f\t1\t1=1X2I3=1D3=\t+\n",
		buf.String())

	buf.Reset()
	in, errCh = StartRelationWriter(&buf, "jsonl", false, 0)
	require.NoError(t, writeAll(in, errCh, rels))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "partner")
	assert.Contains(t, lines[1], `"partner":{"contig":"ctg2","start":9,"end":18`)
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

func TestBrokenPipeIsNotAnError(t *testing.T) {
	in, errCh := StartProjectionWriter(Sinks{Projection: errWriter{syscall.EPIPE}}, "tsv", true, 0)
	assert.NoError(t, writeAll(in, errCh, projections()))

	in, errCh = StartProjectionWriter(Sinks{Projection: errWriter{io.ErrShortWrite}}, "tsv", true, 0)
	assert.ErrorIs(t, writeAll(in, errCh, projections()), io.ErrShortWrite)
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(io.EOF))
}
