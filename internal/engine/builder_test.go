// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rdyaml.dev/yaml/internal/testutil/assert"
)

// ignoreLocation drops Location from a Node comparison: it carries a
// *Source pointer and byte offsets that are irrelevant to whether two trees
// describe the same document shape, and including it would make cmp panic
// on Source's unexported fields.
var ignoreLocation = cmpopts.IgnoreFields(Node{}, "Location")

func TestBuilderAliasResolution(t *testing.T) {
	doc := mustLoadOne(t, "- &a 1\n- *a\n")
	seq := doc.Content[0]
	first, second := seq.Content[0], seq.Content[1]
	assert.Equal(t, ScalarNode, first.Kind)
	assert.Equal(t, "a", first.Anchor)
	assert.Equal(t, AliasNode, second.Kind)
	assert.Truef(t, second.Alias == first, "alias should resolve to the anchored node")
}

func TestBuilderWithoutAliasResolution(t *testing.T) {
	docs, err := BuildDocuments("", []byte("- &a 1\n- *a\n"), nil, []BuildOption{WithoutAliasResolution()})
	assert.NoError(t, err)
	seq := docs[0].Content[0]
	alias := seq.Content[1]
	assert.Equal(t, AliasNode, alias.Kind)
	assert.IsNil(t, alias.Alias)
	assert.Equal(t, "a", alias.AliasName)
}

func TestBuilderUndefinedAliasFails(t *testing.T) {
	_, err := BuildDocuments("", []byte("- *missing\n"), nil, nil)
	assert.NotNil(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func TestBuilderAnchorsResetAcrossDocuments(t *testing.T) {
	// An anchor defined in one document must not be visible to the next: the
	// builder clears its anchor table on every StartDocument (spec §4.H).
	src := "---\n- &a 1\n---\n- *a\n"
	_, err := BuildDocuments("", []byte(src), nil, nil)
	assert.NotNil(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
	assert.Truef(t, strings.Contains(synErr.Message, "undefined alias"), "message %q should mention undefined alias", synErr.Message)
}

func TestBuilderAnchorRebindingWithinDocument(t *testing.T) {
	// A later anchor with the same name shadows the earlier one for any
	// alias that follows it (last-write-wins, matching the event order).
	doc := mustLoadOne(t, "- &a 1\n- &a 2\n- *a\n")
	seq := doc.Content[0]
	second, alias := seq.Content[1], seq.Content[2]
	assert.Equal(t, "2", second.Value)
	assert.True(t, alias.Alias == second)
}

func TestBuilderAliasRatioGuardTrips(t *testing.T) {
	// A "billion laughs" shape: one small anchored value, referenced far more
	// times than the node count it sits in. The anchored value's own flow
	// sequence pads nodeCount past the guard floor (64) without itself
	// touching aliasCount, then a second flow sequence of bare aliases (each
	// Alias() call bumps aliasCount but never nodeCount) runs the ratio past
	// 1 well before it runs out of items.
	var sb strings.Builder
	sb.WriteString("a: &a [")
	for i := 0; i < 80; i++ {
		sb.WriteString("1, ")
	}
	sb.WriteString("1]\n")
	sb.WriteString("c: [")
	for i := 0; i < 150; i++ {
		sb.WriteString("*a, ")
	}
	sb.WriteString("*a]\n")
	_, err := BuildDocuments("", []byte(sb.String()), nil, []BuildOption{WithMaxAliasRatio(1)})
	assert.NotNil(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
	assert.Truef(t, strings.Contains(synErr.Message, "alias expansion ratio"), "message %q should mention the ratio guard", synErr.Message)
}

func TestBuilderAliasRatioGuardAllowsModestReuse(t *testing.T) {
	// A document that legitimately reuses one anchor a few times, well under
	// the default ratio, must build without error.
	doc := mustLoadOne(t, "- &a 1\n- *a\n- *a\n- *a\n")
	seq := doc.Content[0]
	assert.Equal(t, 4, len(seq.Content))
}

func TestBuilderTreeShapeDeepEqual(t *testing.T) {
	// A nested mapping/sequence/alias shape is painful to assert field by
	// field; cmp.Diff walks the whole tree at once and reports exactly where
	// it diverges from the hand-built expectation, Location aside.
	doc := mustLoadOne(t, "root:\n  - &a 1\n  - *a\n")
	mapping := doc.Content[0]
	key := &Node{Kind: ScalarNode, Value: "root", Style: PlainStyle}
	one := &Node{Kind: ScalarNode, Value: "1", Anchor: "a", Style: PlainStyle}
	want := &Node{
		Kind:  MappingNode,
		Style: BlockStyle,
		Content: []*Node{
			key,
			{
				Kind:  SequenceNode,
				Style: BlockStyle,
				Content: []*Node{
					one,
					{Kind: AliasNode, Alias: one, AliasName: "a"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, mapping, ignoreLocation); diff != "" {
		t.Fatalf("built tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderWithCommentsDisabled(t *testing.T) {
	docs, err := BuildDocuments("", []byte("# one\n- a\n"), nil, []BuildOption{WithComments(false)})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(docs[0].Content[0].Leading))
}

func TestBuilderCommentsScopedPerDocument(t *testing.T) {
	docs, err := BuildDocuments("", []byte("# one\n- a\n---\n# two\n- b\n"), nil, nil)
	assert.NoError(t, err)
	if len(docs) != 2 {
		t.Fatalf("got %d documents; want 2", len(docs))
	}
	assert.Equal(t, 1, len(docs[0].Content[0].Leading))
	assert.Equal(t, " one", docs[0].Content[0].Leading[0].Text)
	assert.Equal(t, 1, len(docs[1].Content[0].Leading))
	assert.Equal(t, " two", docs[1].Content[0].Leading[0].Text)
}
