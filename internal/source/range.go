package source

import (
	"fmt"
)

// Range is an inclusive source region in R coordinates (line1:col1 .. line2:col2).
type Range struct {
	File  FileID
	Start Position
	End   Position
}

// RangeOf builds a range from the four attributes emitted by getParseData.
func RangeOf(file FileID, line1, col1, line2, col2 uint32) Range {
	return Range{
		File:  file,
		Start: Position{Line: line1, Col: col1},
		End:   Position{Line: line2, Col: col2},
	}
}

// IsZero reports whether the range carries no location at all.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line, r.Start.Col, r.End.Line, r.End.Col)
}

// Cover returns the smallest range enclosing both r and other.
// Ranges of different files are not merged.
func (r Range) Cover(other Range) Range {
	if other.IsZero() {
		return r
	}
	if r.IsZero() {
		return other
	}
	if r.File != other.File {
		return r
	}
	if other.Start.Before(r.Start) {
		r.Start = other.Start
	}
	if r.End.Before(other.End) {
		r.End = other.End
	}
	return r
}

// Contains reports whether pos lies inside r.
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.Start) && !r.End.Before(pos)
}
