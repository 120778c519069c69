// SPDX-License-Identifier: Apache-2.0

// The value builder (spec §4.H): a Handler that turns an event stream into
// Node trees, one per document, maintaining a per-document anchor table and
// an alias/node ratio guard against anchor-amplification ("billion laughs")
// inputs. Grounded on the teacher's decoder.go (deleted; see DESIGN.md) for
// the anchor-table shape, generalized here to build an untyped tree instead
// of decoding into a reflect.Value.
package engine

// BuildOption configures a builder.
type BuildOption func(*builder)

// WithoutAliasResolution leaves Alias nodes unresolved (Alias field nil,
// AliasName populated) instead of pointing them at their anchor's Node.
func WithoutAliasResolution() BuildOption {
	return func(b *builder) { b.resolveAliases = false }
}

// WithMaxAliasRatio overrides the default alias/node ratio guard.
func WithMaxAliasRatio(ratio float64) BuildOption {
	return func(b *builder) { b.maxAliasRatio = ratio }
}

// WithComments toggles comment collection and attachment (spec §4.G). It
// is on by default; pass false to skip recording comments entirely for
// callers that only want the value tree, avoiding the attachment walk's
// binary search over every node for documents with no interest in them.
func WithComments(enabled bool) BuildOption {
	return func(b *builder) { b.collectComments = enabled }
}

const (
	defaultMaxAliasRatio = 100
	// aliasRatioGuardFloor keeps the guard from tripping on small documents
	// that legitimately reuse a handful of anchors.
	aliasRatioGuardFloor = 64
)

// builder implements Handler, accumulating one Node tree per document.
type builder struct {
	docs    []*Node
	stack   []*Node
	anchors map[string]*Node

	comments []*Comment

	resolveAliases  bool
	collectComments bool
	maxAliasRatio   float64
	aliasCount      int
	nodeCount       int
}

func newBuilder(opts ...BuildOption) *builder {
	b := &builder{
		anchors:         make(map[string]*Node),
		resolveAliases:  true,
		collectComments: true,
		maxAliasRatio:   defaultMaxAliasRatio,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildDocuments drives src through the grammar engine and returns one Node
// tree per document, with comments attached.
func BuildDocuments(filename string, src []byte, parseOpts []ParseOption, buildOpts []BuildOption) ([]*Node, error) {
	b := newBuilder(buildOpts...)
	if err := ParseEvents(filename, src, b, parseOpts...); err != nil {
		return nil, err
	}
	return b.Documents(), nil
}

func (b *builder) top() *Node { return b.stack[len(b.stack)-1] }

func (b *builder) push(n *Node) {
	b.append(n)
	b.stack = append(b.stack, n)
}

func (b *builder) pop(end Location) *Node {
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	n.Location = Join(n.Location, end)
	return n
}

func (b *builder) append(n *Node) {
	if len(b.stack) > 0 {
		b.top().Content = append(b.top().Content, n)
	}
}

func (b *builder) registerAnchor(n *Node) {
	if n.Anchor != "" {
		b.anchors[n.Anchor] = n
	}
}

func (b *builder) StartStream(loc Location) {}
func (b *builder) EndStream(loc Location)   {}

func (b *builder) StartDocument(loc Location, version *VersionDirective, tags []TagDirective, implicit bool) {
	// Anchors don't cross documents (spec §4.H).
	b.anchors = make(map[string]*Node)
	doc := &Node{Kind: DocumentNode, Location: loc}
	b.docs = append(b.docs, doc)
	b.stack = append(b.stack, doc)
}

func (b *builder) EndDocument(loc Location, implicit bool) {
	b.pop(loc)
}

func (b *builder) StartMapping(loc Location, anchor, tag string, style Style) {
	n := &Node{Kind: MappingNode, Anchor: anchor, Tag: tag, Style: style, Location: loc}
	b.nodeCount++
	b.registerAnchor(n)
	b.push(n)
}

func (b *builder) EndMapping(loc Location) { b.pop(loc) }

func (b *builder) StartSequence(loc Location, anchor, tag string, style Style) {
	n := &Node{Kind: SequenceNode, Anchor: anchor, Tag: tag, Style: style, Location: loc}
	b.nodeCount++
	b.registerAnchor(n)
	b.push(n)
}

func (b *builder) EndSequence(loc Location) { b.pop(loc) }

func (b *builder) Scalar(loc Location, value, anchor, tag string, plainImplicit, quotedImplicit bool, style Style) {
	n := &Node{Kind: ScalarNode, Value: value, Anchor: anchor, Tag: tag, Style: style, Location: loc}
	b.nodeCount++
	b.registerAnchor(n)
	b.append(n)
}

func (b *builder) Alias(loc Location, name string) {
	b.aliasCount++
	b.checkAliasRatio(loc)

	n := &Node{Kind: AliasNode, AliasName: name, Location: loc}
	if b.resolveAliases {
		target, ok := b.anchors[name]
		if !ok {
			panicSyntax(loc, "undefined alias %q", name)
		}
		n.Alias = target
	}
	b.append(n)
}

// checkAliasRatio guards against anchor-amplification inputs: a handful of
// anchors aliased a handful of times is normal; thousands of aliases over a
// barely-larger node count is the "billion laughs" shape.
func (b *builder) checkAliasRatio(loc Location) {
	if b.nodeCount < aliasRatioGuardFloor {
		return
	}
	if float64(b.aliasCount) > float64(b.nodeCount)*b.maxAliasRatio {
		panicSyntax(loc, "alias expansion ratio exceeds limit (%d aliases over %d nodes)", b.aliasCount, b.nodeCount)
	}
}

func (b *builder) Comment(c Comment) {
	if !b.collectComments {
		return
	}
	cc := c
	b.comments = append(b.comments, &cc)
}

// Documents returns the parsed document trees, with comments attached
// unless WithComments(false) was given.
func (b *builder) Documents() []*Node {
	if !b.collectComments {
		return b.docs
	}
	for i, doc := range b.docs {
		AttachComments(doc, b.commentsFor(i))
	}
	return b.docs
}

// commentsFor returns the comments belonging to document i: those starting
// at or after the previous document's end and before this document's end.
// Comments ahead of the first document go to the first; comments after the
// last document go to the last.
func (b *builder) commentsFor(i int) []*Comment {
	lo := 0
	if i > 0 {
		lo = b.docs[i-1].Location.End
	}
	last := i == len(b.docs)-1
	var out []*Comment
	for _, c := range b.comments {
		if c.Location.Start >= lo && (last || c.Location.Start < b.docs[i].Location.End) {
			out = append(out, c)
		}
	}
	return out
}
