package paf

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const records = "ctg2\t30\t8\t18\t+\tctg1\t30\t6\t15\t8\t9\t60\tcg:Z:1=1X2I3=1D3=\ttp:A:P\n" +
	"ctg2\t30\t21\t27\t-\tctg1\t30\t20\t27\t5\t7\tcg:Z:3=2D1X1I1=\ttp:A:S\n"

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	p := write(t, "a.paf", records)

	all, err := Load(context.Background(), p, Options{}, quiet)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	primary, err := Load(context.Background(), p, Options{PrimaryOnly: true}, quiet)
	require.NoError(t, err)
	require.Len(t, primary, 1)
	assert.Equal(t, 8, primary[0].QueryStart)
}

func TestLoadReportsLine(t *testing.T) {
	p := write(t, "bad.paf", records+"ctg\t10\t0\t10\t+\tref\t10\t0\t10\tcg:Z:9=\n")
	_, err := Load(context.Background(), p, Options{}, quiet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadLengths(t *testing.T) {
	p := write(t, "g.fai", "ctg1\t30\t6\t60\t61\nctg3\t10\n")
	m, err := LoadLengths(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ctg1": 30, "ctg3": 10}, m)

	_, err = LoadLengths(context.Background(), write(t, "bad.fai", "ctg1\tx\n"))
	assert.Error(t, err)
	_, err = LoadLengths(context.Background(), write(t, "dup.fai", "ctg1\t3\nctg1\t4\n"))
	assert.Error(t, err)
}
