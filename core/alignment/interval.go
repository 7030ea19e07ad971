package alignment

import "fmt"

// Interval is a 1-based closed coordinate range.
type Interval struct {
	Start, End int
}

// Len returns the number of positions in iv.
func (iv Interval) Len() int { return iv.End - iv.Start + 1 }

// Empty reports whether iv covers no position.
func (iv Interval) Empty() bool { return iv.End < iv.Start }

// Contains reports whether o lies entirely inside iv.
func (iv Interval) Contains(o Interval) bool { return iv.Start <= o.Start && o.End <= iv.End }

// Intersect returns the overlap of iv and o; ok is false when they are disjoint.
func (iv Interval) Intersect(o Interval) (Interval, bool) {
	r := Interval{Start: max(iv.Start, o.Start), End: min(iv.End, o.End)}
	return r, !r.Empty()
}

// Mirror maps iv onto the opposite strand of a sequence of the given length.
func (iv Interval) Mirror(length int) Interval {
	return Interval{Start: length + 1 - iv.End, End: length + 1 - iv.Start}
}

func (iv Interval) String() string { return fmt.Sprintf("%d-%d", iv.Start, iv.End) }
