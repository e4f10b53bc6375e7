package scheduling

// Interval is a half-open [Start, End) time range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// IsZeroLength reports whether the interval covers no time at all.
func (i Interval) IsZeroLength() bool {
	return i.End <= i.Start
}

// Overlaps is the sole overlap primitive: two half-open intervals [a,b) and
// [c,d) overlap iff a < d && b > c. Touching endpoints do not overlap.
// Both the slot calculator and the conflict detector use this test, so a slot
// reported as free can always be booked against the same data.
func Overlaps(a, b, c, d int) bool {
	return a < d && b > c
}

// overlapsAny reports whether [start,end) overlaps any non-empty interval.
// Zero-length intervals never block: no valid booking has zero length.
func overlapsAny(start, end int, busy []Interval) bool {
	for _, iv := range busy {
		if iv.IsZeroLength() {
			continue
		}
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
