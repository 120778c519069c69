// SPDX-License-Identifier: Apache-2.0

// Scalar productions (spec §4.F "Scalar decoding"): plain, single-quoted,
// double-quoted, literal and folded, each with their own folding/escaping/
// chomping rules.
package engine

import (
	"strconv"
	"strings"
)

// scanPlainLine reads a single physical line of plain-scalar content,
// stopping at the context-sensitive indicators spec §4.F names: a ':' not
// followed by a safe character, a '#' preceded by whitespace, and (in flow
// context) any of , [ ] { }.
func (p *parser) scanPlainLine(ctx Context) string {
	var sb strings.Builder
	prevSpace := false
	for {
		b, ok := p.cur.PeekByte()
		if !ok || b == '\n' || b == '\r' {
			break
		}
		if b == '#' && (prevSpace || sb.Len() == 0) {
			break
		}
		if b == ':' {
			nb, ok2 := p.cur.PeekByteAt(1)
			stop := !ok2 || nb == ' ' || nb == '\t' || nb == '\n' || nb == '\r'
			if !stop && ctx.IsFlow() && (nb == ',' || nb == ']' || nb == '}') {
				stop = true
			}
			if stop {
				break
			}
		}
		if ctx.IsFlow() && (b == ',' || b == '[' || b == ']' || b == '{' || b == '}') {
			break
		}
		sb.WriteByte(b)
		prevSpace = b == ' ' || b == '\t'
		p.cur.Advance(1)
	}
	return strings.TrimRight(sb.String(), " \t")
}

// tryContinuePlainLine attempts to extend a plain scalar onto the next
// line(s): it requires at least one line break, tolerates further blank
// lines, and only succeeds if the resulting content line is indented past
// indent and isn't a comment, EOF, or document boundary.
func (p *parser) tryContinuePlainLine(indent int, ctx Context) (line string, breaks int, ok bool) {
	save := p.cur.Pos()
	if !p.cur.MatchString("\r\n") && !p.cur.MatchString("\n") {
		return "", 0, false
	}
	breaks = 1
	for {
		p.skipInlineSpace()
		if p.cur.Eof() || p.cur.CheckString("#") || p.cur.AtDocumentBoundary() {
			p.cur.SetPos(save)
			return "", 0, false
		}
		if p.cur.MatchString("\r\n") || p.cur.MatchString("\n") {
			breaks++
			continue
		}
		break
	}
	if p.cur.Source().Column(p.cur.Pos()) <= indent {
		p.cur.SetPos(save)
		return "", 0, false
	}
	return p.scanPlainLine(ctx), breaks, true
}

func (p *parser) parsePlainScalar(indent int, ctx Context) {
	start := p.cur.Pos()
	var sb strings.Builder
	sb.WriteString(p.scanPlainLine(ctx))
	if !ctx.IsFlow() {
		for {
			line, breaks, ok := p.tryContinuePlainLine(indent, ctx)
			if !ok {
				break
			}
			if breaks <= 1 {
				sb.WriteString(" ")
			} else {
				sb.WriteString(strings.Repeat("\n", breaks-1))
			}
			sb.WriteString(line)
		}
	}
	p.cache.Emit(Event{
		Type: ScalarEvent, Location: p.cur.LocSince(start),
		Value: sb.String(), Style: PlainStyle, Implicit: true, QuotedImplicit: true,
	})
}

// foldLines applies the fold rule shared by plain and quoted scalars to a
// sequence of already leading/trailing-trimmed lines: a single line break
// between two content lines becomes a space; k consecutive breaks become
// k-1 literal newlines.
func foldLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(lines[0])
	i := 1
	for i < len(lines) {
		empties := 0
		for i < len(lines) && lines[i] == "" {
			empties++
			i++
		}
		if i >= len(lines) {
			break
		}
		if empties == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(strings.Repeat("\n", empties))
		}
		sb.WriteString(lines[i])
		i++
	}
	return sb.String()
}

// foldBlockLines is foldLines's folded-block-scalar sibling (spec §4.F
// "Folded >"): it folds exactly like foldLines except that a line either
// side of the break that is marked more-indented never folds into a space
// — a more-indented line always keeps its own break, the same way a blank
// line does.
func foldBlockLines(lines []string, moreIndented []bool) string {
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(lines[0])
	prev := 0
	i := 1
	for i < len(lines) {
		empties := 0
		for i < len(lines) && lines[i] == "" {
			empties++
			i++
		}
		if i >= len(lines) {
			break
		}
		switch {
		case moreIndented[prev] || moreIndented[i]:
			sb.WriteString(strings.Repeat("\n", empties+1))
		case empties == 0:
			sb.WriteString(" ")
		default:
			sb.WriteString(strings.Repeat("\n", empties))
		}
		sb.WriteString(lines[i])
		prev = i
		i++
	}
	return sb.String()
}

func splitQuotedLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
		if i > 0 {
			lines[i] = strings.TrimLeft(lines[i], " \t")
		}
	}
	return lines
}

func (p *parser) parseSingleQuotedScalar(ctx Context) {
	start := p.cur.Pos()
	p.cur.MatchString("'")
	var sb strings.Builder
	for {
		b, ok := p.cur.PeekByte()
		if !ok {
			panicSyntax(p.cur.Loc(), "unterminated single-quoted scalar")
		}
		if b == '\'' {
			if nb, ok2 := p.cur.PeekByteAt(1); ok2 && nb == '\'' {
				sb.WriteByte('\'')
				p.cur.Advance(2)
				continue
			}
			p.cur.Advance(1)
			break
		}
		sb.WriteByte(b)
		p.cur.Advance(1)
	}
	value := foldLines(splitQuotedLines(sb.String()))
	p.cache.Emit(Event{
		Type: ScalarEvent, Location: p.cur.LocSince(start),
		Value: value, Style: SingleQuotedStyle, Implicit: false, QuotedImplicit: true,
	})
}

func (p *parser) parseDoubleQuotedScalar(ctx Context) {
	start := p.cur.Pos()
	p.cur.MatchString("\"")

	var chunks []string
	var cur strings.Builder
	for {
		b, ok := p.cur.PeekByte()
		if !ok {
			panicSyntax(p.cur.Loc(), "unterminated double-quoted scalar")
		}
		switch {
		case b == '"':
			p.cur.Advance(1)
			chunks = append(chunks, cur.String())
			value := foldLines(chunks)
			p.cache.Emit(Event{
				Type: ScalarEvent, Location: p.cur.LocSince(start),
				Value: value, Style: DoubleQuotedStyle, Implicit: false, QuotedImplicit: true,
			})
			return
		case b == '\\':
			p.parseDoubleQuotedEscape(&cur)
		case b == '\r':
			p.cur.Advance(1)
		case b == '\n':
			p.cur.Advance(1)
			chunks = append(chunks, cur.String())
			cur.Reset()
			p.skipInlineSpace()
		default:
			cur.WriteByte(b)
			p.cur.Advance(1)
		}
	}
}

func (p *parser) parseDoubleQuotedEscape(out *strings.Builder) {
	escStart := p.cur.Pos()
	p.cur.Advance(1) // the backslash
	nb, ok := p.cur.PeekByte()
	if !ok {
		panicSyntax(p.cur.LocSince(escStart), "unterminated escape sequence")
	}
	if nb == '\n' || (nb == '\r') {
		// line-continuation: the break is eaten along with the following
		// line's indentation, contributing nothing to the value.
		p.cur.Advance(1)
		p.cur.MatchString("\n")
		p.skipInlineSpace()
		return
	}
	p.cur.Advance(1)
	switch nb {
	case '0':
		out.WriteByte(0)
	case 'a':
		out.WriteByte(7)
	case 'b':
		out.WriteByte(8)
	case 't':
		out.WriteByte('\t')
	case 'n':
		out.WriteByte('\n')
	case 'v':
		out.WriteByte(11)
	case 'f':
		out.WriteByte(12)
	case 'r':
		out.WriteByte('\r')
	case 'e':
		out.WriteByte(27)
	case '"':
		out.WriteByte('"')
	case '/':
		out.WriteByte('/')
	case '\\':
		out.WriteByte('\\')
	case ' ':
		out.WriteByte(' ')
	case 'N':
		out.WriteRune('')
	case '_':
		out.WriteRune(' ')
	case 'L':
		out.WriteRune(' ')
	case 'P':
		out.WriteRune(' ')
	case 'x':
		out.WriteRune(p.readHexEscape(escStart, 2))
	case 'u':
		out.WriteRune(p.readHexEscape(escStart, 4))
	case 'U':
		out.WriteRune(p.readHexEscape(escStart, 8))
	default:
		panicSyntax(p.cur.LocSince(escStart), "unknown escape sequence '\\%c'", nb)
	}
}

func (p *parser) readHexEscape(escStart int, n int) rune {
	digitsStart := p.cur.Pos()
	for i := 0; i < n; i++ {
		b, ok := p.cur.PeekByte()
		if !ok || !isHexDigit(b) {
			panicSyntax(p.cur.LocSince(escStart), "invalid \\x/\\u/\\U escape: expected %d hex digits", n)
		}
		p.cur.Advance(1)
	}
	text := string(p.cur.Source().Bytes[digitsStart:p.cur.Pos()])
	code, err := strconv.ParseInt(text, 16, 32)
	if err != nil {
		panicSyntax(p.cur.LocSince(escStart), "invalid hex escape %q", text)
	}
	return rune(code)
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// --- Literal/folded block scalars ---

func (p *parser) isBlankLineAhead() bool {
	return p.cur.Peek(func() bool {
		p.skipInlineSpace()
		b, ok := p.cur.PeekByte()
		return !ok || b == '\n' || b == '\r'
	})
}

func (p *parser) consumeBlankLine() {
	p.skipInlineSpace()
	if !p.cur.MatchString("\r\n") {
		p.cur.MatchString("\n")
	}
}

// consumeIndentColumns advances the cursor past exactly n columns of
// leading space/tab on the current line (the block scalar's own content
// indent), leaving any further leading whitespace on the line untouched so
// the caller can tell a "more-indented" continuation line from an ordinary
// one (spec §4.F: only the content indent itself is stripped).
func (p *parser) consumeIndentColumns(n int) {
	for i := 0; i < n; i++ {
		b, ok := p.cur.PeekByte()
		if !ok || (b != ' ' && b != '\t') {
			return
		}
		p.cur.Advance(1)
	}
}

func (p *parser) scanRestOfLine() string {
	start := p.cur.Pos()
	for {
		b, ok := p.cur.PeekByte()
		if !ok || b == '\n' {
			break
		}
		p.cur.Advance(1)
	}
	return strings.TrimRight(string(p.cur.Source().Bytes[start:p.cur.Pos()]), "\r")
}

// detectBlockScalarIndent implements spec §4.F's detect_indent for literal/
// folded headers without an explicit digit: the indentation of the first
// non-empty following line.
func (p *parser) detectBlockScalarIndent(parentIndent int) int {
	result := 0
	p.cur.Peek(func() bool {
		for !p.cur.Eof() {
			if p.isBlankLineAhead() {
				p.consumeBlankLine()
				continue
			}
			result = p.currentIndent()
			break
		}
		return true
	})
	if result <= parentIndent {
		return parentIndent + 1
	}
	return result
}

func chompTrailing(content string, chomp Chomping) string {
	switch chomp {
	case StripChomping:
		return strings.TrimRight(content, "\n")
	case KeepChomping:
		return content
	default:
		trimmed := strings.TrimRight(content, "\n")
		if trimmed == "" {
			return trimmed
		}
		return trimmed + "\n"
	}
}

func (p *parser) parseBlockScalar(style Style, parentIndent int) {
	start := p.cur.Pos()
	indicator := "|"
	if style == FoldedStyle {
		indicator = ">"
	}
	p.cur.MatchString(indicator)

	chomp := ClipChomping
	explicitIndent := 0
	for i := 0; i < 2; i++ {
		switch {
		case p.cur.MatchString("-"):
			chomp = StripChomping
		case p.cur.MatchString("+"):
			chomp = KeepChomping
		default:
			if b, ok := p.cur.PeekByte(); ok && b >= '1' && b <= '9' {
				explicitIndent = int(b - '0')
				p.cur.Advance(1)
				continue
			}
			i = 2
		}
	}

	p.skipInlineSpace()
	hadComment := p.tryParseComment()
	if !hadComment {
		if !p.cur.MatchString("\r\n") && !p.cur.MatchString("\n") && !p.cur.Eof() {
			panicSyntax(p.cur.Loc(), "expected end of line after block scalar header")
		}
	}

	contentIndent := explicitIndent + parentIndent
	if explicitIndent == 0 {
		contentIndent = p.detectBlockScalarIndent(parentIndent)
	}

	var rawLines []string
	var moreIndented []bool
	for {
		save := p.cur.Pos()
		if p.cur.Eof() {
			break
		}
		if p.isBlankLineAhead() {
			p.consumeBlankLine()
			rawLines = append(rawLines, "")
			moreIndented = append(moreIndented, false)
			continue
		}
		if p.currentIndent() < contentIndent {
			p.cur.SetPos(save)
			break
		}
		// Strip exactly the content indent, not every leading blank: a line
		// indented past contentIndent keeps its extra columns verbatim, and
		// is flagged so folding never collapses its break into a space.
		p.consumeIndentColumns(contentIndent)
		extra := false
		if b, ok := p.cur.PeekByte(); ok && (b == ' ' || b == '\t') {
			extra = true
		}
		rawLines = append(rawLines, p.scanRestOfLine())
		moreIndented = append(moreIndented, extra)
		if !p.cur.MatchString("\r\n") {
			p.cur.MatchString("\n")
		}
	}

	var body string
	if len(rawLines) > 0 {
		var joined string
		if style == FoldedStyle {
			joined = foldBlockLines(rawLines, moreIndented)
		} else {
			joined = strings.Join(rawLines, "\n")
		}
		body = chompTrailing(joined+"\n", chomp)
	}

	p.cache.Emit(Event{
		Type: ScalarEvent, Location: p.cur.LocSince(start),
		Value: body, Style: style, Implicit: false, QuotedImplicit: true,
	})
}
