// internal/bed/bed.go
//
// Package bed reads block files. On disk coordinates are 0-based half-open;
// in memory they are the 1-based closed projection.Block the core expects.
package bed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"blockproj-core/alignment"
	"blockproj-core/projection"
	"blockproj/internal/textio"
)

// ErrOverlap is returned when two blocks on one sequence overlap.
var ErrOverlap = errors.New("overlapping blocks")

// Set holds blocks grouped by sequence name, each list sorted and disjoint.
type Set map[string][]projection.Block

// Parse reads one BED line: name, start, end and an optional label.
func Parse(line string) (string, projection.Block, error) {
	f := strings.Fields(line)
	if len(f) < 3 {
		return "", projection.Block{}, fmt.Errorf("bed: expected at least 3 columns, got %d", len(f))
	}
	start, err := strconv.Atoi(f[1])
	if err != nil {
		return "", projection.Block{}, fmt.Errorf("bed: bad start %q", f[1])
	}
	end, err := strconv.Atoi(f[2])
	if err != nil {
		return "", projection.Block{}, fmt.Errorf("bed: bad end %q", f[2])
	}
	if start < 0 || end <= start {
		return "", projection.Block{}, fmt.Errorf("bed: empty or negative interval %d-%d", start, end)
	}
	b := projection.Block{Start: start + 1, End: end}
	if len(f) > 3 {
		b.Label = f[3]
	}
	return f[0], b, nil
}

// Read loads a BED file. Header lines (track, browser, #) are skipped.
func Read(ctx context.Context, path string) (Set, error) {
	set := make(Set)
	err := textio.ForEachPathLine(ctx, path, func(n int, line string) error {
		if strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			return nil
		}
		name, b, err := Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		set[name] = append(set[name], b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for name, list := range set {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Start < list[j].Start })
		for i := 1; i < len(list); i++ {
			if list[i].Start <= list[i-1].End {
				return nil, fmt.Errorf("%s: %w on %s: %d-%d and %d-%d", path, ErrOverlap, name,
					list[i-1].Start-1, list[i-1].End, list[i].Start-1, list[i].End)
			}
		}
	}
	return set, nil
}

// Names returns the sequence names in lexical order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len counts blocks over all sequences.
func (s Set) Len() int {
	n := 0
	for _, list := range s {
		n += len(list)
	}
	return n
}

// Overlapping returns the blocks on name that intersect iv. The result
// aliases the set and must not be modified.
func (s Set) Overlapping(name string, iv alignment.Interval) []projection.Block {
	list := s[name]
	lo := sort.Search(len(list), func(i int) bool { return list[i].End >= iv.Start })
	hi := lo
	for hi < len(list) && list[hi].Start <= iv.End {
		hi++
	}
	return list[lo:hi]
}

// Format renders a 1-based closed interval as a BED line without newline.
func Format(name string, iv alignment.Interval, label string) string {
	if label == "" {
		return fmt.Sprintf("%s\t%d\t%d", name, iv.Start-1, iv.End)
	}
	return fmt.Sprintf("%s\t%d\t%d\t%s", name, iv.Start-1, iv.End, label)
}
