package projection

import (
	"blockproj-core/cigar"

	"github.com/biogo/hts/sam"
)

// cursor walks an edit script once, tracking the next unconsumed position on
// the source and target axes. Positions are in walk coordinates, i.e. along
// the direction the script is stored in.
type cursor struct {
	script sam.Cigar
	mode   Mode
	op     int // index of the current operation
	off    int // units of script[op] already consumed
	src    int
	tgt    int
}

func (c *cursor) done() bool { return c.op >= len(c.script) }

func (c *cursor) remaining() int { return c.script[c.op].Len() - c.off }

// consumes reports which axes an operation advances under c.mode.
func (c *cursor) consumes(t sam.CigarOpType) (src, tgt bool) {
	con := t.Consumes()
	q, r := con.Query > 0, con.Reference > 0
	if c.mode == AsmToRef {
		return q, r
	}
	return r, q
}

func (c *cursor) step(n int, src, tgt bool) {
	if src {
		c.src += n
	}
	if tgt {
		c.tgt += n
	}
	c.off += n
	if c.off == c.script[c.op].Len() {
		c.op++
		c.off = 0
	}
}

// advance consumes everything before source position pos.
func (c *cursor) advance(pos int) {
	for !c.done() && c.src < pos {
		s, t := c.consumes(c.script[c.op].Type())
		n := c.remaining()
		if s && c.src+n > pos {
			n = pos - c.src
		}
		c.step(n, s, t)
	}
}

// atStart reports whether nothing has been consumed yet.
func (c *cursor) atStart() bool { return c.op == 0 && c.off == 0 }

// skipTargetOnly steps over operations that do not advance the source axis.
// After advance they belong to the gap before the cursor, not to whatever
// starts there.
func (c *cursor) skipTargetOnly() {
	for !c.done() {
		s, t := c.consumes(c.script[c.op].Type())
		if s {
			return
		}
		c.step(c.remaining(), s, t)
	}
}

// take consumes source positions up to and including end and returns the
// operations it walked, truncated at the boundaries. Target-only operations
// between two taken source positions are kept; one after end is not.
func (c *cursor) take(end int) sam.Cigar {
	var sub sam.Cigar
	for !c.done() && c.src <= end {
		co := c.script[c.op]
		s, t := c.consumes(co.Type())
		n := c.remaining()
		if s && c.src+n-1 > end {
			n = end - c.src + 1
		}
		sub = append(sub, sam.NewCigarOp(co.Type(), n))
		c.step(n, s, t)
	}
	return sub
}

// takeTargetRun consumes the run of target-only operations at the cursor. It
// is empty when the cursor sits inside a source-consuming operation.
func (c *cursor) takeTargetRun() sam.Cigar {
	var sub sam.Cigar
	for !c.done() {
		co := c.script[c.op]
		s, t := c.consumes(co.Type())
		if s {
			break
		}
		sub = append(sub, sam.NewCigarOp(co.Type(), c.remaining()))
		c.step(c.remaining(), s, t)
	}
	return sub
}

// span sums the source and target lengths of sub under mode.
func span(sub sam.Cigar, mode Mode) (src, tgt int) {
	ref, query := cigar.Lengths(sub)
	if mode == AsmToRef {
		return query, ref
	}
	return ref, query
}

// trimToAligned drops operations outside the outermost aligned pairs of sub
// and reports how far the leading cut moved each axis. ok is false when sub
// holds no aligned pair.
func trimToAligned(sub sam.Cigar, mode Mode) (kept sam.Cigar, leadSrc, leadTgt int, ok bool) {
	first, last := -1, -1
	for i, co := range sub {
		if cigar.IsAligned(co.Type()) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, 0, 0, false
	}
	leadSrc, leadTgt = span(sub[:first], mode)
	return sub[first : last+1], leadSrc, leadTgt, true
}

func hasAligned(sub sam.Cigar) bool {
	for _, co := range sub {
		if cigar.IsAligned(co.Type()) {
			return true
		}
	}
	return false
}
