package paf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"blockproj/internal/textio"
)

// LoadLengths reads "name length" pairs, the first two columns of a
// samtools .fai index or any whitespace-separated table.
func LoadLengths(ctx context.Context, path string) (map[string]int, error) {
	m := make(map[string]int)
	err := textio.ForEachPathLine(ctx, path, func(n int, line string) error {
		f := strings.Fields(line)
		if len(f) < 2 {
			return fmt.Errorf("line %d: expected name and length", n)
		}
		v, err := strconv.Atoi(f[1])
		if err != nil || v <= 0 {
			return fmt.Errorf("line %d: bad length %q", n, f[1])
		}
		if prev, ok := m[f[0]]; ok && prev != v {
			return fmt.Errorf("line %d: %s listed with lengths %d and %d", n, f[0], prev, v)
		}
		m[f[0]] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
