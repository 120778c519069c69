// SPDX-License-Identifier: Apache-2.0

// The grammar engine (spec §4.F): a backtracking recursive-descent parser
// over the YAML 1.2 grammar, driven by Cursor's try/peek/star/plus and the
// six-value Context. This file holds the top-level stream/document loop,
// the block-node dispatcher, and property (anchor/tag) capture; the
// collection and scalar productions live in grammar_block.go,
// grammar_flow.go and grammar_scalar.go.
package engine

import (
	"regexp"
	"unicode/utf8"
)

const defaultMaxDepth = 10000

// parser is one parse of one Source; it owns exactly the shared state spec
// §5 calls out: one cursor, one event cache, one pending anchor/tag (held
// inside the cache), one directive table, one comment map.
type parser struct {
	cur      *Cursor
	cache    *eventCache
	comments *commentCollector

	tagDirectives []TagDirective
	version       *VersionDirective

	depth    int
	maxDepth int
}

// ParseOption configures a single Parse/ParseEvents call.
type ParseOption func(*parser)

// WithMaxDepth overrides the recursion-depth guard (spec §5 expansion).
func WithMaxDepth(n int) ParseOption {
	return func(p *parser) { p.maxDepth = n }
}

// ParseEvents drives src through the grammar engine, delivering events (and
// comments, via h.Comment) to h in document order. It returns ErrNotUTF8
// for input that is not valid UTF-8, and otherwise a *SyntaxError (or
// *InternalError) on failure; no partial result is
// observable by h beyond events already flushed to it, since speculative
// events never reach h until their branch is known to have succeeded.
func ParseEvents(filename string, src []byte, h Handler, opts ...ParseOption) (err error) {
	if !isValidUTF8(src) {
		return ErrNotUTF8
	}
	src = ensureTrailingNewline(src)

	p := &parser{
		cur:           NewCursor(NewSource(filename, src)),
		comments:      newCommentCollector(),
		tagDirectives: builtinTagDirectives(),
		maxDepth:      defaultMaxDepth,
	}
	p.cache = newEventCache(h)
	for _, opt := range opts {
		opt(p)
	}

	defer recoverFailure(&err)
	p.parseStream()
	if !p.cur.Eof() {
		panicSyntax(p.cur.Loc(), "parser finished before end of input")
	}
	return nil
}

func isValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}

func ensureTrailingNewline(src []byte) []byte {
	if len(src) == 0 || src[len(src)-1] != '\n' {
		out := make([]byte, len(src)+1)
		copy(out, src)
		out[len(src)] = '\n'
		return out
	}
	return src
}

func (p *parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		panicSyntax(p.cur.Loc(), "document nesting exceeds maximum depth %d", p.maxDepth)
	}
}

func (p *parser) leave() { p.depth-- }

// parseStream implements l-yaml-stream: zero or more documents, each
// optionally preceded by directives and an explicit "---", optionally
// followed by "...".
func (p *parser) parseStream() {
	start := p.cur.Loc()
	p.cache.Emit(Event{Type: StreamStartEvent, Location: start})

	p.skipBlankLines()
	for !p.cur.Eof() {
		p.parseDocument()
		p.skipBlankLines()
	}

	end := p.cur.Loc()
	p.cache.Emit(Event{Type: StreamEndEvent, Location: end})
}

func (p *parser) parseDocument() {
	docStart := p.cur.Pos()

	p.version = nil
	p.tagDirectives = builtinTagDirectives()
	p.parseDirectives()

	explicitStart := false
	if p.matchDocMarker("---") {
		explicitStart = true
	}

	loc := p.cur.LocSince(docStart)
	p.cache.Emit(Event{
		Type: DocumentStartEvent, Location: loc,
		Version: p.version, Tags: append([]TagDirective(nil), p.tagDirectives...),
		Implicit: !explicitStart,
	})

	// skipBlankLines, not skipInlineSpace: a comment can follow "---" on its
	// own line before the root node starts, and parseBlockNode's dispatch
	// never expects to see a stray '#'.
	p.skipBlankLines()
	if !p.atDocumentEndMarker() && !p.cur.Eof() {
		p.parseBlockNode(0, BlockOut)
	}
	p.skipBlankLines()

	explicitEnd := p.matchDocMarker("...")
	endLoc := p.cur.Loc()
	p.cache.Emit(Event{Type: DocumentEndEvent, Location: endLoc, Implicit: !explicitEnd})
}

func (p *parser) atDocumentEndMarker() bool {
	return p.cur.CheckString("---") || p.cur.CheckString("...")
}

var docMarkerEndRe = regexp.MustCompile(`^[ \t]*(#.*)?(\r?\n|$)`)

// matchDocMarker consumes "---"/"..." only when followed by whitespace, a
// comment, a line break, or EOF (spec §4.C's boundary rule, applied here on
// the consuming side rather than the refusing side).
func (p *parser) matchDocMarker(marker string) bool {
	ok := false
	p.cur.Try(func() bool {
		if !p.cur.MatchString(marker) {
			return false
		}
		if p.cur.Eof() {
			ok = true
			return true
		}
		b, _ := p.cur.PeekByte()
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '#' {
			ok = true
			return true
		}
		return false
	})
	return ok
}

// parseBlockNode is the central dispatcher: given the indent that governs
// this position and the context, decide which production applies and emit
// its events. indent is the minimum column content at this node may start
// at (block collections use it to detect their own deeper indent).
func (p *parser) parseBlockNode(indent int, ctx Context) {
	p.enter()
	defer p.leave()

	p.skipInlineSpace()
	anchor, tag, hadProps := p.parseProperties()
	if hadProps {
		p.cache.SetPendingAnchor(anchor)
		p.cache.SetPendingTag(tag)
		p.skipSeparation(ctx)
	}

	if p.cur.CheckString("*") {
		p.parseAlias()
		return
	}

	if !ctx.IsFlow() {
		if p.looksLikeBlockSequence() {
			p.parseBlockSequence(indent, ctx)
			return
		}
		if !ctx.IsKey() && p.looksLikeBlockMapping() {
			p.parseBlockMapping(indent)
			return
		}
	}

	switch {
	case p.cur.CheckString("["):
		p.parseFlowSequence(ctx)
	case p.cur.CheckString("{"):
		p.parseFlowMapping(ctx)
	case !ctx.IsFlow() && p.cur.CheckString("|"):
		p.parseBlockScalar(LiteralStyle, indent)
	case !ctx.IsFlow() && p.cur.CheckString(">"):
		p.parseBlockScalar(FoldedStyle, indent)
	case p.cur.CheckString("\""):
		p.parseDoubleQuotedScalar(ctx)
	case p.cur.CheckString("'"):
		p.parseSingleQuotedScalar(ctx)
	default:
		p.parsePlainScalar(indent, ctx)
	}
}

// parseProperties parses the optional anchor/tag properties in either
// order, each appearing at most once (spec §4.F "Anchors"/"Tags").
func (p *parser) parseProperties() (anchor, tag string, had bool) {
	for range [2]struct{}{} {
		p.skipInlineSpace()
		switch {
		case p.cur.CheckString("&") && anchor == "":
			anchor = p.parseAnchorName()
			had = true
		case p.cur.CheckString("!") && tag == "":
			tag = p.parseTagProperty()
			had = true
		default:
			return anchor, tag, had
		}
	}
	return anchor, tag, had
}

var anchorNameRe = regexp.MustCompile(`^[^ \t\r\n,\[\]{}]+`)

func (p *parser) parseAnchorName() string {
	start := p.cur.Pos()
	p.cur.MatchString("&")
	name, ok := p.cur.MatchRegexp(anchorNameRe)
	if !ok || name == "" {
		panicSyntax(p.cur.LocSince(start), "expected anchor name after '&'")
	}
	return name
}

func (p *parser) parseAlias() {
	start := p.cur.Pos()
	p.cur.MatchString("*")
	name, ok := p.cur.MatchRegexp(anchorNameRe)
	if !ok || name == "" {
		panicSyntax(p.cur.LocSince(start), "expected anchor name after '*'")
	}
	p.cache.Emit(Event{Type: AliasEvent, Location: p.cur.LocSince(start), Name: name})
}

// skipInlineSpace consumes spaces/tabs on the current line only.
func (p *parser) skipInlineSpace() {
	p.cur.Star(func() bool {
		b, ok := p.cur.PeekByte()
		if !ok || (b != ' ' && b != '\t') {
			return false
		}
		p.cur.Advance(1)
		return true
	})
}

// skipSeparation consumes the separation space allowed between tokens:
// same-line whitespace, plus (outside flow-key/block-key contexts) blank
// and comment lines.
func (p *parser) skipSeparation(ctx Context) {
	p.skipInlineSpace()
	if ctx.IsKey() {
		return
	}
	p.skipBlankLines()
}

// skipBlankLines consumes whole blank and comment-only lines, recording
// every comment it passes over, and leaves the cursor at the start of the
// next content line (or EOF).
func (p *parser) skipBlankLines() {
	p.cur.Star(func() bool {
		save := p.cur.Pos()
		p.skipInlineSpace()
		if p.tryParseComment() {
			return true
		}
		if p.cur.MatchString("\n") {
			return true
		}
		if p.cur.MatchString("\r\n") {
			return true
		}
		p.cur.SetPos(save)
		return false
	})
}

var commentLineRe = regexp.MustCompile(`^#[^\n]*`)

// tryParseComment records a "#..." sequence running to end-of-line, if one
// starts at the cursor, and consumes through the line break.
func (p *parser) tryParseComment() bool {
	if !p.cur.CheckString("#") {
		return false
	}
	start := p.cur.Pos()
	text, _ := p.cur.MatchRegexp(commentLineRe)
	inline := p.commentIsInline(start)
	loc := p.cur.LocSince(start)
	c, isNew := p.comments.Record(loc, text[1:], inline)
	if isNew {
		p.cache.Emit(Event{Type: CommentEvent, Location: loc, CommentRecord: c})
	}
	p.cur.MatchString("\r\n")
	p.cur.MatchString("\n")
	return true
}

func (p *parser) commentIsInline(commentStart int) bool {
	src := p.cur.Source()
	lineStart := src.LineStart(src.Line(commentStart))
	for i := lineStart; i < commentStart; i++ {
		b := src.Bytes[i]
		if b != ' ' && b != '\t' {
			return true
		}
	}
	return false
}

// currentIndent reports the column of the first non-space byte on the
// current line without consuming anything.
func (p *parser) currentIndent() int {
	var col int
	p.cur.Peek(func() bool {
		p.skipInlineSpace()
		col = p.cur.Source().Column(p.cur.Pos())
		return true
	})
	return col
}
