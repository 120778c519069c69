// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"testing"

	"rdyaml.dev/yaml/internal/testutil/assert"
)

func TestLoadSimpleMapping(t *testing.T) {
	doc, err := Load([]byte("a: 1\nb: 2\n"))
	assert.NoError(t, err)
	assert.Equal(t, DocumentNode, doc.Kind)
	m := doc.Content[0]
	assert.Equal(t, MappingNode, m.Kind)
	pairs := m.MapEntries()
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs; want 2", len(pairs))
	}
	assert.Equal(t, "a", pairs[0][0].Value)
	assert.Equal(t, "1", pairs[0][1].Value)
	assert.Equal(t, "b", pairs[1][0].Value)
	assert.Equal(t, "2", pairs[1][1].Value)
}

func TestParseWithFilenameInError(t *testing.T) {
	_, err := Parse("config.yaml", []byte("[a, b"))
	assert.NotNil(t, err)
	assert.ErrorMatches(t, `^config\.yaml: `, err)
}

func TestLoadStreamMultipleDocuments(t *testing.T) {
	docs, err := LoadStream([]byte("---\na: 1\n---\nb: 2\n"))
	assert.NoError(t, err)
	if len(docs) != 2 {
		t.Fatalf("got %d documents; want 2", len(docs))
	}
	assert.Equal(t, "a", docs[0].Content[0].MapEntries()[0][0].Value)
	assert.Equal(t, "b", docs[1].Content[0].MapEntries()[0][0].Value)
}

func TestLoadEmptySourceYieldsEmptyDocumentNode(t *testing.T) {
	doc, err := Load([]byte(""))
	assert.NoError(t, err)
	assert.Equal(t, DocumentNode, doc.Kind)
	assert.Equal(t, 0, len(doc.Content))
}

func TestDumpThenLoadRoundTrip(t *testing.T) {
	doc, err := Load([]byte("name: example\ntags:\n  - a\n  - b\n"))
	assert.NoError(t, err)
	out, err := Dump(doc)
	assert.NoError(t, err)
	reloaded, err := Load(out)
	assert.NoError(t, err)
	assert.DeepEqual(t, doc.Content[0].MapEntries()[0][1].Value, reloaded.Content[0].MapEntries()[0][1].Value)
	assert.Equal(t, "example", reloaded.Content[0].MapEntries()[0][1].Value)
}

func TestWithoutAliasResolutionOption(t *testing.T) {
	doc, err := Load([]byte("- &a 1\n- *a\n"), WithoutAliasResolution())
	assert.NoError(t, err)
	seq := doc.Content[0]
	alias := seq.Content[1]
	assert.Equal(t, AliasNode, alias.Kind)
	assert.IsNil(t, alias.Alias)
}

func TestWithCommentsDisabledOption(t *testing.T) {
	doc, err := Load([]byte("# one\n- a\n"), WithComments(false))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(doc.Content[0].Leading))
}

func TestWithCompactSequenceIndentOption(t *testing.T) {
	doc, err := Load([]byte("a:\n  - 1\n  - 2\n"))
	assert.NoError(t, err)
	out, err := Dump(doc, WithCompactSequenceIndent())
	assert.NoError(t, err)
	assert.Equal(t, "a:\n- 1\n- 2\n", string(out))
}

func TestWithMaxDepthOptionRejectsDeepInput(t *testing.T) {
	src := []byte("[[[[[[[[[[1]]]]]]]]]]")
	_, err := Load(src, WithMaxDepth(3))
	assert.NotNil(t, err)
}

func TestParseEventsFacadeDrivesHandler(t *testing.T) {
	var kinds []string
	h := &recordingHandler{onScalar: func(value string) { kinds = append(kinds, value) }}
	err := ParseEvents("", []byte("- a\n- b\n"), h)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(kinds))
	assert.Equal(t, "a", kinds[0])
	assert.Equal(t, "b", kinds[1])
}

// recordingHandler implements Handler, forwarding only the Scalar event to
// a test callback; every other method is a no-op.
type recordingHandler struct {
	onScalar func(value string)
}

func (h *recordingHandler) StartStream(loc Location) {}
func (h *recordingHandler) EndStream(loc Location)   {}
func (h *recordingHandler) StartDocument(loc Location, version *VersionDirective, tags []TagDirective, implicit bool) {
}
func (h *recordingHandler) EndDocument(loc Location, implicit bool)                    {}
func (h *recordingHandler) StartMapping(loc Location, anchor, tag string, style Style) {}
func (h *recordingHandler) EndMapping(loc Location)                                    {}
func (h *recordingHandler) StartSequence(loc Location, anchor, tag string, style Style) {
}
func (h *recordingHandler) EndSequence(loc Location) {}
func (h *recordingHandler) Scalar(loc Location, value, anchor, tag string, plainImplicit, quotedImplicit bool, style Style) {
	h.onScalar(value)
}
func (h *recordingHandler) Alias(loc Location, name string) {}
func (h *recordingHandler) Comment(c Comment)                {}
