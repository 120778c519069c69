// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"rdyaml.dev/yaml/internal/testutil/assert"
)

func TestLocationJoin(t *testing.T) {
	src := NewSource("", []byte("abcdef"))
	a := NewLocation(src, 2, 4)
	b := NewLocation(src, 1, 3)
	j := Join(a, b)
	assert.Equal(t, 1, j.Start)
	assert.Equal(t, 4, j.End)
}

func TestLocationTrim(t *testing.T) {
	src := NewSource("", []byte("- a\n\n"))
	loc := NewLocation(src, 0, len(src.Bytes))
	trimmed := loc.Trim()
	assert.Equal(t, len("- a\n"), trimmed.End)
	assert.Equal(t, loc.Start, trimmed.Start)
}

func TestMarkString(t *testing.T) {
	m := Mark{Index: 5, Line: 2, Column: 3}
	assert.Equal(t, "line 2, column 4", m.String())

	zero := Mark{}
	assert.Equal(t, "<unknown position>", zero.String())
}

func TestLocationText(t *testing.T) {
	src := NewSource("", []byte("hello world"))
	loc := NewLocation(src, 6, 11)
	assert.Equal(t, "world", string(loc.Text()))
}
