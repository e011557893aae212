package diag

import (
	"cmp"
	"slices"

	"rnorm/internal/source"
)

// Bag collects the diagnostics of one file up to a limit. Diagnostics past
// the limit are counted, not stored.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0 keeps
// none.
func NewBag(limit int) *Bag {
	limit = max(limit, 0)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 16)), limit: limit}
}

// Add stores d unless the bag is full. It reports whether d was stored.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Limit returns the current capacity of the bag.
func (b *Bag) Limit() int { return b.limit }

// Dropped returns how many diagnostics were rejected by the limit.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the stored diagnostics. The slice aliases the bag.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool { return b.any(SevError) }

func (b *Bag) HasWarnings() bool { return b.any(SevWarning) }

func (b *Bag) any(atLeast Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= atLeast })
}

// Merge appends everything from other, growing the limit so nothing is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.limit = max(b.limit, len(b.items))
	b.dropped += other.dropped
}

// Sort orders diagnostics by file and position; at one position errors come
// before warnings, then by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		px, py := x.Primary, y.Primary
		if c := cmp.Compare(px.File, py.File); c != 0 {
			return c
		}
		if c := comparePos(px.Start.Line, px.Start.Col, py.Start.Line, py.Start.Col); c != 0 {
			return c
		}
		if c := comparePos(px.End.Line, px.End.Col, py.End.Line, py.End.Col); c != 0 {
			return c
		}
		if c := cmp.Compare(y.Severity, x.Severity); c != 0 {
			return c
		}
		return cmp.Compare(x.Code, y.Code)
	})
}

func comparePos(l1, c1, l2, c2 uint32) int {
	if c := cmp.Compare(l1, l2); c != 0 {
		return c
	}
	return cmp.Compare(c1, c2)
}

type dedupKey struct {
	code Code
	rng  source.Range
	msg  string
}

// Dedup drops repeats of the same code, range and message, keeping the first.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := dedupKey{d.Code, d.Primary, d.Message}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
