// SPDX-License-Identifier: Apache-2.0

// Cursor is the backtracking primitive (spec §4.C): it holds the UTF-8
// input and the current byte position, and exposes match/peek/try so the
// grammar engine can attempt a production and cleanly undo it on failure.
package engine

import (
	"regexp"
	"strings"
)

// Cursor tracks the read position over a Source. Advancing the position is
// its only state change; everything else (match/check/peek/try) is a
// read-only probe unless it explicitly advances.
type Cursor struct {
	src *Source
	pos int

	// guardBoundary, when true, makes MatchString/CheckString/MatchRegexp
	// refuse to match at the start of a line beginning with "---" or "..."
	// followed by whitespace/EOF. It is set only through WithBoundaryGuard;
	// the grammar productions do not arm it and instead stop at document
	// boundaries by checking AtDocumentBoundary or the markers directly.
	guardBoundary bool
}

// NewCursor creates a cursor positioned at the start of src.
func NewCursor(src *Source) *Cursor {
	return &Cursor{src: src}
}

func (c *Cursor) Source() *Source { return c.src }
func (c *Cursor) Pos() int        { return c.pos }
func (c *Cursor) SetPos(p int)    { c.pos = p }
func (c *Cursor) Eof() bool       { return c.pos >= len(c.src.Bytes) }

// Loc returns a zero-width Location at the current position.
func (c *Cursor) Loc() Location { return Point(c.src, c.pos) }

// LocSince returns a Location spanning [start, current position).
func (c *Cursor) LocSince(start int) Location { return NewLocation(c.src, start, c.pos) }

func (c *Cursor) rest() []byte {
	return c.src.Bytes[c.pos:]
}

// PeekByte returns the byte at the current position, or (0, false) at EOF.
func (c *Cursor) PeekByte() (byte, bool) {
	if c.Eof() {
		return 0, false
	}
	return c.src.Bytes[c.pos], true
}

// PeekByteAt returns the byte offset bytes ahead of the current position.
func (c *Cursor) PeekByteAt(offset int) (byte, bool) {
	p := c.pos + offset
	if p < 0 || p >= len(c.src.Bytes) {
		return 0, false
	}
	return c.src.Bytes[p], true
}

// atDocumentBoundary reports whether the current position is the start of
// a line beginning with "---" or "..." followed by whitespace, a line
// break, or EOF.
func (c *Cursor) atDocumentBoundary() bool {
	if c.src.Column(c.pos) != 0 {
		return false
	}
	for _, marker := range [2]string{"---", "..."} {
		if !strings.HasPrefix(string(c.rest()), marker) {
			continue
		}
		after, ok := c.PeekByteAt(len(marker))
		if !ok || after == ' ' || after == '\t' || after == '\n' || after == '\r' {
			return true
		}
	}
	return false
}

// AtDocumentBoundary reports whether the current position is the start of a
// "---"/"..." marker line, regardless of whether the boundary guard is
// currently armed. Used by productions that need to stop at a document
// boundary even when they aren't scanning through MatchString/CheckString.
func (c *Cursor) AtDocumentBoundary() bool { return c.atDocumentBoundary() }

// WithBoundaryGuard runs f with the bare-document boundary guard set to on,
// restoring the previous value afterward.
func (c *Cursor) WithBoundaryGuard(on bool, f func() bool) bool {
	prev := c.guardBoundary
	c.guardBoundary = on
	defer func() { c.guardBoundary = prev }()
	return f()
}

// boundaryBlocksMatch reports whether the guard should refuse to advance
// past the current position.
func (c *Cursor) boundaryBlocksMatch() bool {
	return c.guardBoundary && c.atDocumentBoundary()
}

// MatchString advances past lit if the cursor is positioned at it.
func (c *Cursor) MatchString(lit string) bool {
	if c.boundaryBlocksMatch() {
		return false
	}
	if !strings.HasPrefix(string(c.rest()), lit) {
		return false
	}
	c.pos += len(lit)
	return true
}

// CheckString reports whether the cursor is positioned at lit, without
// advancing.
func (c *Cursor) CheckString(lit string) bool {
	if c.boundaryBlocksMatch() {
		return false
	}
	return strings.HasPrefix(string(c.rest()), lit)
}

// MatchRegexp advances past the match if re matches starting at the current
// position (re should be anchored with ^), returning the matched text.
func (c *Cursor) MatchRegexp(re *regexp.Regexp) (string, bool) {
	if c.boundaryBlocksMatch() {
		return "", false
	}
	loc := re.FindIndex(c.rest())
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	text := string(c.rest()[:loc[1]])
	c.pos += loc[1]
	return text, true
}

// CheckRegexp is MatchRegexp without advancing.
func (c *Cursor) CheckRegexp(re *regexp.Regexp) (string, bool) {
	save := c.pos
	text, ok := c.MatchRegexp(re)
	c.pos = save
	return text, ok
}

// Advance moves the cursor forward n bytes unconditionally (used once a
// production has already decided how much input a token consumes, e.g.
// after measuring a UTF-8 rune).
func (c *Cursor) Advance(n int) {
	c.pos += n
}

// Peek runs f and always restores the position afterward, returning
// whatever f returned.
func (c *Cursor) Peek(f func() bool) bool {
	save := c.pos
	defer func() { c.pos = save }()
	return f()
}

// Try runs f; if it returns false, the position is rolled back to where it
// was before f ran. This is the grammar engine's backtracking primitive.
// Try only rewinds the cursor: events f already emitted are not retracted.
func (c *Cursor) Try(f func() bool) bool {
	save := c.pos
	if !f() {
		c.pos = save
		return false
	}
	return true
}

// Star repeats f while it succeeds and the position keeps advancing,
// stopping (without failing) on the first non-advancing or failed
// iteration. Always returns true, matching the spec's star combinator.
func (c *Cursor) Star(f func() bool) bool {
	for {
		before := c.pos
		if !f() {
			break
		}
		if c.pos == before {
			break
		}
	}
	return true
}

// Plus is Star but requires at least one successful, advancing iteration.
func (c *Cursor) Plus(f func() bool) bool {
	before := c.pos
	if !f() || c.pos == before {
		c.pos = before
		return false
	}
	c.Star(f)
	return true
}
