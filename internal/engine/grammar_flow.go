// SPDX-License-Identifier: Apache-2.0

// Flow collection productions (spec §4.F "Flow vs block collections",
// flow half): bracketed, comma-separated sequences/mappings, including the
// synthetic single-pair mapping a flow sequence entry like "a: b" emits.
package engine

func (p *parser) skipFlowSeparation() {
	p.skipBlankLines()
}

func (p *parser) atFlowValueEnd() bool {
	b, ok := p.cur.PeekByte()
	if !ok {
		return true
	}
	return b == ',' || b == ']' || b == '}'
}

func (p *parser) looksLikeFlowPairEntry() bool {
	return p.cur.Peek(p.scanForFlowColon)
}

// scanForFlowColon is scanForMappingColon's flow-aware sibling: it also
// stops (without finding a pair) at a depth-0 ',' or a closing bracket that
// would belong to the enclosing collection, and tolerates line breaks.
func (p *parser) scanForFlowColon() bool {
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
			if depth == 0 {
				return false
			}
			depth--
			p.cur.Advance(1)
		case ',':
			if depth == 0 {
				return false
			}
			p.cur.Advance(1)
		case ':':
			if depth == 0 {
				nb, ok2 := p.cur.PeekByteAt(1)
				if !ok2 || nb == ' ' || nb == '\t' || nb == '\n' || nb == '\r' || nb == ',' || nb == ']' || nb == '}' {
					return true
				}
			}
			p.cur.Advance(1)
		default:
			p.cur.Advance(1)
		}
	}
}

func (p *parser) parseFlowSequence(ctx Context) {
	start := p.cur.Pos()
	p.cur.MatchString("[")
	inner := ctx.InFlow()
	p.cache.Emit(Event{Type: SequenceStartEvent, Location: Point(p.cur.Source(), start), Style: FlowStyle})

	p.skipFlowSeparation()
	for first := true; ; {
		if p.cur.CheckString("]") {
			break
		}
		if !first {
			if !p.cur.MatchString(",") {
				break
			}
			p.skipFlowSeparation()
			if p.cur.CheckString("]") {
				break
			}
		}
		if p.looksLikeFlowPairEntry() {
			p.parseFlowPair(inner)
		} else {
			p.parseBlockNode(0, inner)
		}
		p.skipFlowSeparation()
		first = false
	}
	if !p.cur.MatchString("]") {
		panicSyntax(p.cur.Loc(), "expected ']' to close flow sequence")
	}
	p.cache.Emit(Event{Type: SequenceEndEvent, Location: NewLocation(p.cur.Source(), start, p.cur.Pos())})
}

func (p *parser) parseFlowMapping(ctx Context) {
	start := p.cur.Pos()
	p.cur.MatchString("{")
	inner := ctx.InFlow()
	p.cache.Emit(Event{Type: MappingStartEvent, Location: Point(p.cur.Source(), start), Style: FlowStyle})

	p.skipFlowSeparation()
	for first := true; ; {
		if p.cur.CheckString("}") {
			break
		}
		if !first {
			if !p.cur.MatchString(",") {
				break
			}
			p.skipFlowSeparation()
			if p.cur.CheckString("}") {
				break
			}
		}
		p.parseFlowMappingEntry(inner)
		p.skipFlowSeparation()
		first = false
	}
	if !p.cur.MatchString("}") {
		panicSyntax(p.cur.Loc(), "expected '}' to close flow mapping")
	}
	p.cache.Emit(Event{Type: MappingEndEvent, Location: NewLocation(p.cur.Source(), start, p.cur.Pos())})
}

func (p *parser) parseFlowMappingEntry(ctx Context) {
	if p.cur.CheckString("?") {
		if nb, ok := p.cur.PeekByteAt(1); !ok || nb == ' ' || nb == '\t' || nb == '\n' || nb == '\r' {
			p.cur.MatchString("?")
			p.skipFlowSeparation()
		}
	}
	p.parseBlockNode(0, FlowKey)
	p.skipFlowSeparation()
	if p.cur.MatchString(":") {
		p.skipFlowSeparation()
		if p.atFlowValueEnd() {
			p.cache.Emit(Event{Type: ScalarEvent, Location: p.cur.Loc(), Style: PlainStyle, Implicit: true, QuotedImplicit: true})
			return
		}
		p.parseBlockNode(0, ctx)
		return
	}
	p.cache.Emit(Event{Type: ScalarEvent, Location: p.cur.Loc(), Style: PlainStyle, Implicit: true, QuotedImplicit: true})
}

// parseFlowPair handles a bare "key: value" entry appearing directly
// inside a flow sequence, wrapping it in a synthetic one-pair mapping
// (spec §4.F).
func (p *parser) parseFlowPair(ctx Context) {
	start := p.cur.Pos()
	p.cache.Emit(Event{Type: MappingStartEvent, Location: Point(p.cur.Source(), start), Style: FlowStyle})
	p.parseFlowMappingEntry(ctx)
	p.cache.Emit(Event{Type: MappingEndEvent, Location: NewLocation(p.cur.Source(), start, p.cur.Pos())})
}
