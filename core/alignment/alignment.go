// core/alignment/alignment.go
package alignment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"blockproj-core/cigar"

	"github.com/biogo/hts/sam"
)

// ErrScriptCoordinateMismatch marks an alignment whose edit script does not
// reconcile with its declared query or reference span.
var ErrScriptCoordinateMismatch = errors.New("edit script does not match alignment span")

// MissingMapQ is the PAF convention for an unavailable mapping quality.
const MissingMapQ = 255

// Strand is an alignment orientation. The zero value means "absent".
type Strand byte

const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

func (s Strand) String() string {
	if s == 0 {
		return ""
	}
	return string(rune(s))
}

// ParseStrand accepts "+" or "-".
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Forward, nil
	case "-":
		return Reverse, nil
	}
	return 0, fmt.Errorf("invalid strand %q", s)
}

// Alignment is one pairwise alignment between a query (assembly contig) and a
// reference. Start/End pairs are 0-based half-open as recorded in PAF.
type Alignment struct {
	QueryName   string
	QueryLength int
	QueryStart  int
	QueryEnd    int
	Strand      Strand

	RefName   string
	RefLength int
	RefStart  int
	RefEnd    int

	Matches     int
	BlockLength int
	MapQ        int
	Type        byte // tp:A value (P, S, I, i), 0 when the tag is missing

	Cigar sam.Cigar
	Tags  map[string]string // remaining optional fields keyed by "xx:T"
}

// QuerySpan returns the aligned query interval, 1-based closed.
func (a *Alignment) QuerySpan() Interval { return Interval{Start: a.QueryStart + 1, End: a.QueryEnd} }

// RefSpan returns the aligned reference interval, 1-based closed.
func (a *Alignment) RefSpan() Interval { return Interval{Start: a.RefStart + 1, End: a.RefEnd} }

// IsPrimary reports whether the record is a primary alignment. Records
// without a tp tag count as primary.
func (a *Alignment) IsPrimary() bool { return a.Type == 0 || a.Type == 'P' }

// Validate checks coordinate sanity and that the edit script spans exactly the
// declared query and reference intervals.
func (a *Alignment) Validate() error {
	if !within(a.QuerySpan(), a.QueryLength) {
		return fmt.Errorf("%s: query interval [%d,%d) outside length %d", a.QueryName, a.QueryStart, a.QueryEnd, a.QueryLength)
	}
	if !within(a.RefSpan(), a.RefLength) {
		return fmt.Errorf("%s: reference interval [%d,%d) outside length %d", a.RefName, a.RefStart, a.RefEnd, a.RefLength)
	}
	if a.Strand != Forward && a.Strand != Reverse {
		return fmt.Errorf("%s: invalid strand %q", a.QueryName, a.Strand.String())
	}
	ref, query := cigar.Lengths(a.Cigar)
	if ref != a.RefEnd-a.RefStart || query != a.QueryEnd-a.QueryStart {
		return fmt.Errorf("%w: %s/%s script spans ref=%d query=%d, record spans ref=%d query=%d",
			ErrScriptCoordinateMismatch, a.QueryName, a.RefName,
			ref, query, a.RefEnd-a.RefStart, a.QueryEnd-a.QueryStart)
	}
	return nil
}

// within reports whether span is a well-formed, possibly empty, interval of a
// sequence of the given length.
func within(span Interval, length int) bool {
	return span.Start <= span.End+1 && Interval{Start: 1, End: length}.Contains(span)
}

// Parse reads one tab-separated PAF record. Columns 1-9 are required. The
// residue-match, block-length and mapping-quality columns are read when
// present; some producers drop the trailing ones, so the numeric run stops at
// the first SAM-style tag. The cg:Z tag is required.
func Parse(line string) (*Alignment, error) {
	f := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(f) < 9 {
		return nil, fmt.Errorf("paf: expected at least 9 columns, got %d", len(f))
	}
	a := &Alignment{QueryName: f[0], RefName: f[5], MapQ: MissingMapQ}

	ints := []struct {
		dst  *int
		name string
		col  int
	}{
		{&a.QueryLength, "query length", 1},
		{&a.QueryStart, "query start", 2},
		{&a.QueryEnd, "query end", 3},
		{&a.RefLength, "target length", 6},
		{&a.RefStart, "target start", 7},
		{&a.RefEnd, "target end", 8},
	}
	for _, it := range ints {
		v, err := strconv.Atoi(f[it.col])
		if err != nil {
			return nil, fmt.Errorf("paf: bad %s %q", it.name, f[it.col])
		}
		*it.dst = v
	}
	s, err := ParseStrand(f[4])
	if err != nil {
		return nil, fmt.Errorf("paf: %w", err)
	}
	a.Strand = s

	rest := f[9:]
	optional := []*int{&a.Matches, &a.BlockLength, &a.MapQ}
	for len(rest) > 0 && len(optional) > 0 && !isTag(rest[0]) {
		v, err := strconv.Atoi(rest[0])
		if err != nil {
			return nil, fmt.Errorf("paf: bad numeric column %q", rest[0])
		}
		*optional[0] = v
		optional, rest = optional[1:], rest[1:]
	}

	var script string
	for _, t := range rest {
		if !isTag(t) {
			return nil, fmt.Errorf("paf: malformed tag %q", t)
		}
		key, val := t[:4], t[5:]
		switch key {
		case "cg:Z":
			script = val
		case "tp:A":
			if len(val) == 1 {
				a.Type = val[0]
			}
		default:
			if a.Tags == nil {
				a.Tags = make(map[string]string)
			}
			a.Tags[key] = val
		}
	}
	if script == "" {
		return nil, fmt.Errorf("paf: %s/%s has no cg:Z tag", a.QueryName, a.RefName)
	}
	if a.Cigar, err = cigar.Parse(script); err != nil {
		return nil, fmt.Errorf("paf: %s/%s: %w", a.QueryName, a.RefName, err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("paf: %w", err)
	}
	return a, nil
}

// isTag matches "xx:T:value".
func isTag(s string) bool {
	return len(s) >= 5 && s[2] == ':' && s[4] == ':'
}
