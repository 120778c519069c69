// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"strings"
	"testing"

	"rdyaml.dev/yaml/internal/testutil/assert"
)

// TestParseEventsScenarios exercises spec.md §8's concrete input/decoded
// scenarios at the event level, table-driven in the teacher's
// parser_events_test.go style.
func TestParseEventsScenarios(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		exp  string
	}{
		{
			name: "anchor and alias",
			in:   "- &a 1\n- *a\n",
			exp: join(
				"+STR",
				"+DOC",
				"+SEQ",
				"=VAL &a :1",
				"=ALI *a",
				"-SEQ",
				"-DOC",
				"-STR",
			),
		},
		{
			name: "implicit block mapping",
			in:   "a: 1",
			exp: join(
				"+STR",
				"+DOC",
				"+MAP",
				"=VAL :a",
				"=VAL :1",
				"-MAP",
				"-DOC",
				"-STR",
			),
		},
		{
			name: "flow mapping",
			in:   "{a: 1}",
			exp: join(
				"+STR",
				"+DOC",
				"+MAP {}",
				"=VAL :a",
				"=VAL :1",
				"-MAP",
				"-DOC",
				"-STR",
			),
		},
		{
			name: "bare integer scalar",
			in:   "1",
			exp: join(
				"+STR",
				"+DOC",
				"=VAL :1",
				"-DOC",
				"-STR",
			),
		},
		{
			name: "block sequence",
			in:   "- 1",
			exp: join(
				"+STR",
				"+DOC",
				"+SEQ",
				"=VAL :1",
				"-SEQ",
				"-DOC",
				"-STR",
			),
		},
		{
			name: "flow sequence",
			in:   "[1]",
			exp: join(
				"+STR",
				"+DOC",
				"+SEQ []",
				"=VAL :1",
				"-SEQ",
				"-DOC",
				"-STR",
			),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, trace(t, tc.in))
		})
	}
}

func join(lines ...string) string { return strings.Join(lines, "\n") }

func TestParseUnterminatedFlowSequenceFails(t *testing.T) {
	_, err := parseErr(t, "servers: [a, b")
	assert.NotNil(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
	assert.Truef(t, strings.Contains(synErr.Message, "flow sequence"), "message %q should mention flow sequence", synErr.Message)
}

func parseErr(t *testing.T, src string) (string, error) {
	t.Helper()
	h := &traceHandler{}
	err := ParseEvents("", []byte(src), h)
	return h.String(), err
}

func TestDocumentFraming(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		exp  string
	}{
		{
			name: "explicit markers",
			in:   "---\na: 1\n...\n",
			exp: join(
				"+STR",
				"+DOC ---",
				"+MAP",
				"=VAL :a",
				"=VAL :1",
				"-MAP",
				"-DOC ...",
				"-STR",
			),
		},
		{
			name: "two explicit documents",
			in:   "---\na: 1\n---\nb: 2\n",
			exp: join(
				"+STR",
				"+DOC ---",
				"+MAP",
				"=VAL :a",
				"=VAL :1",
				"-MAP",
				"-DOC",
				"+DOC ---",
				"+MAP",
				"=VAL :b",
				"=VAL :2",
				"-MAP",
				"-DOC",
				"-STR",
			),
		},
		{
			name: "empty document is implicit null",
			in:   "",
			exp: join(
				"+STR",
				"-STR",
			),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, trace(t, tc.in))
		})
	}
}

func TestPlainScalarFolding(t *testing.T) {
	// A single line break folds to a space; a blank line run of n breaks
	// folds to n-1 literal newlines (spec §3 invariant). Continuation lines
	// must be indented past the enclosing mapping entry's column.
	got := trace(t, "a: one\n    two\n\n    three\n")
	exp := join(
		"+STR",
		"+DOC",
		"+MAP",
		"=VAL :a",
		"=VAL :one two\nthree",
		"-MAP",
		"-DOC",
		"-STR",
	)
	assert.Equal(t, exp, got)
}

func TestChompingVariants(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{name: "clip", in: "a: |\n  x\n\n\n", want: "x\n"},
		{name: "strip", in: "a: |-\n  x\n\n\n", want: "x"},
		{name: "keep", in: "a: |+\n  x\n\n\n", want: "x\n\n\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			n := mustLoadOne(t, tc.in)
			val := n.Content[0].MapEntries()[0][1]
			assert.Equal(t, tc.want, val.Value)
		})
	}
}

// TestBlockScalarMoreIndentedContinuation covers spec §4.F's "read
// indented lines verbatim" (literal) and "indented lines keep their break"
// (folded) rules for a continuation line indented deeper than the block's
// detected content indent.
func TestBlockScalarMoreIndentedContinuation(t *testing.T) {
	const in = "a: |\n  x\n  y\n    z\n  w\n"
	n := mustLoadOne(t, in)
	val := n.Content[0].MapEntries()[0][1]
	assert.Equal(t, "x\ny\n  z\nw\n", val.Value)
}

func TestFoldedScalarMoreIndentedLineKeepsBreak(t *testing.T) {
	const in = "a: >\n  x\n  y\n    z\n  w\n"
	n := mustLoadOne(t, in)
	val := n.Content[0].MapEntries()[0][1]
	assert.Equal(t, "x y\n  z\nw\n", val.Value)
}

func TestImplicitKeyTooLong(t *testing.T) {
	longKey := strings.Repeat("x", implicitKeyLimit+1)
	_, err := parseErr(t, longKey+": 1\n")
	assert.NotNil(t, err)
}

func TestDoubleQuotedEscapes(t *testing.T) {
	n := mustLoadOne(t, `a: "x\ty\nA\x42"`+"\n")
	val := n.Content[0].MapEntries()[0][1]
	assert.Equal(t, "x\ty\nAB", val.Value)
}

func TestSingleQuotedEscape(t *testing.T) {
	n := mustLoadOne(t, "a: 'it''s'\n")
	val := n.Content[0].MapEntries()[0][1]
	assert.Equal(t, "it's", val.Value)
}

func TestTagDirectiveResolution(t *testing.T) {
	got := trace(t, "%TAG !e! tag:example.com,2000:\n---\n!e!foo bar\n")
	exp := join(
		"+STR",
		"+DOC ---",
		"=VAL <tag:example.com,2000:foo> :bar",
		"-DOC",
		"-STR",
	)
	assert.Equal(t, exp, got)
}

func TestSecondaryTagHandle(t *testing.T) {
	got := trace(t, "!!str foo\n")
	exp := join(
		"+STR",
		"+DOC",
		"=VAL <tag:yaml.org,2002:str> :foo",
		"-DOC",
		"-STR",
	)
	assert.Equal(t, exp, got)
}

func TestCommentBetweenDirectiveAndExplicitMarker(t *testing.T) {
	// Regression: a comment-only line between the last directive and an
	// explicit "---" must not make the parser lose track of the marker.
	got := trace(t, "%YAML 1.2\n# c\n---\n- a\n")
	exp := join(
		"+STR",
		"=COM # c",
		"+DOC ---",
		"+SEQ",
		"=VAL :a",
		"-SEQ",
		"-DOC",
		"-STR",
	)
	assert.Equal(t, exp, got)
}

func TestDuplicateYAMLDirectiveFails(t *testing.T) {
	_, err := parseErr(t, "%YAML 1.2\n%YAML 1.2\n---\na: 1\n")
	assert.NotNil(t, err)
}

func TestMaxDepthGuard(t *testing.T) {
	// Same-line nested block sequences ("- - - 1") recurse into
	// parseBlockNode once per "- ", so 50 of them comfortably exceeds a
	// maxDepth of 5.
	src := strings.Repeat("- ", 50) + "1\n"
	h := &traceHandler{}
	err := ParseEvents("", []byte(src), h, WithMaxDepth(5))
	assert.NotNil(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func mustLoadOne(t *testing.T, src string) *Node {
	t.Helper()
	docs, err := BuildDocuments("", []byte(src), nil, nil)
	assert.NoError(t, err)
	if len(docs) != 1 {
		t.Fatalf("got %d documents; want 1", len(docs))
	}
	return docs[0]
}
