// internal/paf/paf.go
package paf

import (
	"context"
	"fmt"
	"log/slog"

	"blockproj-core/alignment"
	"blockproj/internal/textio"
)

// Options filters records while loading.
type Options struct {
	PrimaryOnly bool // keep only tp:A:P (or untagged) records
}

// Load reads every alignment in path. A malformed record aborts the load
// with its line number; filtered records are only logged.
func Load(ctx context.Context, path string, opt Options, log *slog.Logger) ([]*alignment.Alignment, error) {
	if log == nil {
		log = slog.Default()
	}
	var (
		out     []*alignment.Alignment
		skipped int
	)
	err := textio.ForEachPathLine(ctx, path, func(n int, line string) error {
		a, err := alignment.Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if opt.PrimaryOnly && !a.IsPrimary() {
			skipped++
			log.Debug("skipping non-primary alignment", "line", n, "query", a.QueryName, "ref", a.RefName, "type", string(a.Type))
			return nil
		}
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("loaded alignments", "path", path, "kept", len(out), "skipped", skipped)
	return out, nil
}
