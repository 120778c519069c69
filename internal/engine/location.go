// SPDX-License-Identifier: Apache-2.0

package engine

import "fmt"

// Mark is a reportable byte/line/column position, grounded on the teacher's
// own Mark type in internal/libyaml/yaml.go.
type Mark struct {
	Index  int // byte offset
	Line   int // 1-indexed
	Column int // 0-indexed internally, rendered 1-indexed by String
}

func (m Mark) String() string {
	if m.Line == 0 {
		return "<unknown position>"
	}
	return fmt.Sprintf("line %d, column %d", m.Line, m.Column+1)
}

// Location is a half-open byte range [Start, End) into a Source.
type Location struct {
	Source *Source
	Start  int
	End    int
}

// NewLocation builds a Location over [start, end) in src.
func NewLocation(src *Source, start, end int) Location {
	return Location{Source: src, Start: start, End: end}
}

// Point returns a zero-width Location at p.
func Point(src *Source, p int) Location {
	return Location{Source: src, Start: p, End: p}
}

// Join returns the smallest Location spanning both a and b. Both must share
// a Source.
func Join(a, b Location) Location {
	loc := a
	if b.Start < loc.Start {
		loc.Start = b.Start
	}
	if b.End > loc.End {
		loc.End = b.End
	}
	return loc
}

// Trim shrinks End so that trailing blank/comment-only lines are excluded.
func (l Location) Trim() Location {
	l.End = l.Source.Trim(l.End)
	if l.End < l.Start {
		l.End = l.Start
	}
	return l
}

// StartMark/EndMark report line/column positions for diagnostics.
func (l Location) StartMark() Mark { return l.Source.Mark(l.Start) }
func (l Location) EndMark() Mark   { return l.Source.Mark(l.End) }

// Text returns the raw source bytes spanned by the Location.
func (l Location) Text() []byte {
	return l.Source.Bytes[l.Start:l.End]
}

func (l Location) String() string {
	return fmt.Sprintf("%s-%d", l.StartMark(), l.End)
}
