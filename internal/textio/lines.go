package textio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// maxLine bounds a single record; PAF lines carrying long cg tags can be large.
const maxLine = 64 << 20

// ForEachLine calls fn with every non-blank line of r and its 1-based number.
// Lines starting with '#' are skipped. Cancellation is checked between lines.
func ForEachLine(ctx context.Context, r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	n := 0
	for sc.Scan() {
		n++
		if n&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("line %d: %w", n+1, err)
	}
	return ctx.Err()
}

// ForEachPathLine is ForEachLine over Open(path); errors carry the path.
func ForEachPathLine(ctx context.Context, path string, fn func(n int, line string) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := ForEachLine(ctx, rc, fn); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
