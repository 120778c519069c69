// SPDX-License-Identifier: Apache-2.0

// Block collection productions (spec §4.F "Flow vs block collections",
// block sequence/mapping halves) and the indentation detection they rely
// on.
package engine

const implicitKeyLimit = 1024

func (p *parser) atBoundaryOrFlowIndicator() bool {
	return p.cur.CheckString("---") || p.cur.CheckString("...")
}

func (p *parser) looksLikeBlockSequence() bool {
	b, ok := p.cur.PeekByte()
	if !ok || b != '-' {
		return false
	}
	if p.cur.CheckString("---") {
		return false
	}
	nb, ok2 := p.cur.PeekByteAt(1)
	if !ok2 {
		return true
	}
	return nb == ' ' || nb == '\t' || nb == '\n' || nb == '\r'
}

func (p *parser) looksLikeBlockMapping() bool {
	if b, ok := p.cur.PeekByte(); ok && b == '?' {
		if nb, ok2 := p.cur.PeekByteAt(1); !ok2 || nb == ' ' || nb == '\t' || nb == '\n' || nb == '\r' {
			return true
		}
	}
	return p.cur.Peek(p.scanForMappingColon)
}

// scanForMappingColon looks, on the current logical line (respecting quote
// and flow-indicator nesting), for a ':' that marks an implicit mapping
// key. It never runs past a raw newline outside any quote.
func (p *parser) scanForMappingColon() bool {
	depth := 0
	for {
		b, ok := p.cur.PeekByte()
		if !ok {
			return false
		}
		switch b {
		case '\'':
			p.cur.Advance(1)
			p.skipSingleQuotedBody()
		case '"':
			p.cur.Advance(1)
			p.skipDoubleQuotedBody()
		case '[', '{':
			depth++
			p.cur.Advance(1)
		case ']', '}':
			depth--
			p.cur.Advance(1)
		case '\n':
			return false
		case ':':
			if depth == 0 {
				nb, ok2 := p.cur.PeekByteAt(1)
				if !ok2 || nb == ' ' || nb == '\t' || nb == '\n' || nb == '\r' {
					return true
				}
			}
			p.cur.Advance(1)
		case '#':
			if depth == 0 {
				return false
			}
			p.cur.Advance(1)
		default:
			p.cur.Advance(1)
		}
	}
}

// skipSingleQuotedBody/skipDoubleQuotedBody advance past a quoted scalar's
// body (cursor already sits just past the opening quote), handling '' and
// backslash escapes respectively, without decoding.
func (p *parser) skipSingleQuotedBody() {
	for {
		b, ok := p.cur.PeekByte()
		if !ok {
			return
		}
		if b == '\'' {
			if nb, ok2 := p.cur.PeekByteAt(1); ok2 && nb == '\'' {
				p.cur.Advance(2)
				continue
			}
			p.cur.Advance(1)
			return
		}
		p.cur.Advance(1)
	}
}

func (p *parser) skipDoubleQuotedBody() {
	for {
		b, ok := p.cur.PeekByte()
		if !ok {
			return
		}
		if b == '\\' {
			p.cur.Advance(2)
			continue
		}
		if b == '"' {
			p.cur.Advance(1)
			return
		}
		p.cur.Advance(1)
	}
}

func (p *parser) atLineEnd() bool {
	b, ok := p.cur.PeekByte()
	return !ok || b == '\n' || b == '\r' || b == '#'
}

// parseValueAfterIndicator parses the value half of a sequence/mapping
// entry, given that the indicator ('-', ':') and following inline space
// have already been consumed. parentIndent is the indent of the entry
// itself, used to detect an empty (null) value when the value is pushed to
// following lines.
func (p *parser) parseValueAfterIndicator(parentIndent int) {
	if !p.atLineEnd() {
		// The value's governing indent is the entry's own indent, not the
		// column the value happens to start at: a multi-line plain scalar's
		// or block scalar's continuation lines only need to out-indent the
		// enclosing mapping/sequence entry, not the "key: " prefix on its
		// first line.
		p.parseBlockNode(parentIndent, BlockOut)
		return
	}
	p.tryParseComment()
	save := p.cur.Pos()
	p.skipBlankLines()
	nested := p.currentIndent()
	if nested <= parentIndent || p.cur.Eof() || p.atBoundaryOrFlowIndicator() {
		p.cur.SetPos(save)
		p.cache.Emit(Event{Type: ScalarEvent, Location: p.cur.Loc(), Style: PlainStyle, Implicit: true, QuotedImplicit: true})
		return
	}
	p.parseBlockNode(nested, BlockOut)
}

func (p *parser) parseBlockSequence(indent int, ctx Context) {
	itemIndent := p.currentIndent()
	start := p.cur.Pos()
	end := start
	p.cache.Emit(Event{Type: SequenceStartEvent, Location: Point(p.cur.Source(), start), Style: BlockStyle})

	for {
		save := p.cur.Pos()
		p.skipBlankLines()
		if p.cur.Eof() || p.atBoundaryOrFlowIndicator() {
			p.cur.SetPos(save)
			break
		}
		col := p.currentIndent()
		if col != itemIndent {
			p.cur.SetPos(save)
			break
		}
		p.skipInlineSpace()
		if !p.cur.MatchString("-") {
			p.cur.SetPos(save)
			break
		}
		if b, ok := p.cur.PeekByte(); ok && b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			panicSyntax(p.cur.Loc(), "expected space after '-' in block sequence entry")
		}
		p.skipInlineSpace()
		p.parseValueAfterIndicator(itemIndent)
		end = p.cur.Pos()
	}

	p.cache.Emit(Event{Type: SequenceEndEvent, Location: NewLocation(p.cur.Source(), start, end).Trim()})
}

func (p *parser) parseBlockMapping(indent int) {
	mapIndent := p.currentIndent()
	start := p.cur.Pos()
	end := start
	p.cache.Emit(Event{Type: MappingStartEvent, Location: Point(p.cur.Source(), start), Style: BlockStyle})

	for {
		save := p.cur.Pos()
		p.skipBlankLines()
		if p.cur.Eof() || p.atBoundaryOrFlowIndicator() {
			p.cur.SetPos(save)
			break
		}
		col := p.currentIndent()
		if col != mapIndent {
			p.cur.SetPos(save)
			break
		}
		p.skipInlineSpace()

		explicit := false
		if p.cur.CheckString("?") {
			if nb, ok := p.cur.PeekByteAt(1); !ok || nb == ' ' || nb == '\t' || nb == '\n' || nb == '\r' {
				explicit = true
				p.cur.MatchString("?")
				p.skipInlineSpace()
			}
		}

		if explicit {
			p.parseBlockNode(mapIndent+1, BlockKey)
			save2 := p.cur.Pos()
			p.skipBlankLines()
			if p.currentIndent() == mapIndent && p.cur.CheckString(":") {
				p.skipInlineSpace()
				p.cur.MatchString(":")
				p.skipInlineSpace()
				p.parseValueAfterIndicator(mapIndent)
			} else {
				p.cur.SetPos(save2)
				p.cache.Emit(Event{Type: ScalarEvent, Location: p.cur.Loc(), Style: PlainStyle, Implicit: true, QuotedImplicit: true})
			}
		} else {
			keyStart := p.cur.Pos()
			p.parseBlockNode(mapIndent, BlockKey)
			if p.cur.Pos()-keyStart > implicitKeyLimit {
				panicSyntax(NewLocation(p.cur.Source(), keyStart, p.cur.Pos()), "implicit mapping key exceeds %d bytes", implicitKeyLimit)
			}
			p.skipInlineSpace()
			if !p.cur.MatchString(":") {
				panicSyntax(p.cur.Loc(), "expected ':' after implicit mapping key")
			}
			p.skipInlineSpace()
			p.parseValueAfterIndicator(mapIndent)
		}
		end = p.cur.Pos()
	}

	p.cache.Emit(Event{Type: MappingEndEvent, Location: NewLocation(p.cur.Source(), start, end).Trim()})
}
