// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"rdyaml.dev/yaml/internal/testutil/assert"
)

func TestSourceLineAndColumn(t *testing.T) {
	src := NewSource("f.yaml", []byte("ab\ncde\nf"))
	// Lines: "ab\n" (0-2), "cde\n" (3-6), "f" (7-7).
	assert.Equal(t, 3, src.LineCount())

	for _, tc := range []struct {
		pos        int
		line, col  int
	}{
		{0, 0, 0},
		{2, 0, 2}, // the '\n' itself
		{3, 1, 0},
		{6, 1, 3}, // the '\n' itself
		{7, 2, 0},
	} {
		assert.Equal(t, tc.line, src.Line(tc.pos))
		assert.Equal(t, tc.col, src.Column(tc.pos))
	}
}

func TestSourceTrimmableLines(t *testing.T) {
	src := NewSource("", []byte("a: 1\n\n# a comment\n  # indented comment\nb: 2\n"))
	// line0 "a: 1"      -> content
	// line1 ""           -> blank
	// line2 "# a comment"-> comment only
	// line3 "  # indented comment" -> comment only
	// line4 "b: 2"       -> content
	assert.False(t, src.IsTrimmableLine(0))
	assert.True(t, src.IsTrimmableLine(1))
	assert.True(t, src.IsTrimmableLine(2))
	assert.True(t, src.IsTrimmableLine(3))
	assert.False(t, src.IsTrimmableLine(4))
}

func TestSourceTrim(t *testing.T) {
	src := NewSource("", []byte("- a\n- b\n\n# trailing\n"))
	end := len(src.Bytes)
	trimmed := src.Trim(end)
	// Trim should walk back past the blank line and the comment line, to
	// the start of the blank line right after "- b\n".
	wantEnd := len("- a\n- b\n")
	assert.Equal(t, wantEnd, trimmed)
}
