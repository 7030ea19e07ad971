package textio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "# header\nchr1\t0\t10\n\nchr2\t5\t8\r\n"

func collect(t *testing.T, path string) ([]int, []string) {
	t.Helper()
	var nums []int
	var lines []string
	err := ForEachPathLine(context.Background(), path, func(n int, line string) error {
		nums = append(nums, n)
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	return nums, lines
}

func TestForEachPathLinePlainAndGzip(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.bed")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0o644))

	gz := filepath.Join(dir, "a.bed.gz")
	fh, err := os.Create(gz)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())

	for _, p := range []string{plain, gz} {
		nums, lines := collect(t, p)
		assert.Equal(t, []int{2, 4}, nums)
		assert.Equal(t, []string{"chr1\t0\t10", "chr2\t5\t8"}, lines)
	}
}

func TestForEachLineStops(t *testing.T) {
	calls := 0
	err := ForEachLine(context.Background(), strings.NewReader("a\nb\nc\n"), func(int, string) error {
		calls++
		return os.ErrInvalid
	})
	assert.ErrorIs(t, err, os.ErrInvalid)
	assert.Equal(t, 1, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = ForEachLine(ctx, strings.NewReader("a\n"), func(int, string) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.paf"))
	assert.Error(t, err)
}
