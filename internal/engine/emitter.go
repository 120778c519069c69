// SPDX-License-Identifier: Apache-2.0

// The emitter (spec §4.I): walks a Node tree and renders YAML 1.2 text.
// Grounded on the teacher's dumper.go (deleted; see DESIGN.md) for the
// overall "walk the tree, track anchors by identity, fall back to
// double-quoting when plain would be ambiguous" shape, rebuilt here against
// Node instead of reflect.Value since this engine never decodes into Go
// structs.
package engine

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultLineWidth  = 79
	defaultIndentStep = 2
	maxEmitDepth       = 10000
)

// EmitOption configures a single Dump/DumpStream call.
type EmitOption func(*emitter)

// WithLineWidth overrides the column at which plain/folded scalars wrap.
// 0 disables wrapping.
func WithLineWidth(n int) EmitOption { return func(e *emitter) { e.lineWidth = n } }

// WithIndentSize overrides the per-level indent (default 2).
func WithIndentSize(n int) EmitOption { return func(e *emitter) { e.indentStep = n } }

// WithCompactSequenceIndent writes a block sequence's "- " entries at the
// same column as the mapping key (or parent entry) that introduces it,
// instead of indenting the whole sequence one more step past it:
//
//	key:            instead of   key:
//	- a                            - a
//	- b                            - b
func WithCompactSequenceIndent() EmitOption { return func(e *emitter) { e.compactSeqIndent = true } }

type emitter struct {
	buf        bytes.Buffer
	lineWidth  int
	indentStep int

	compactSeqIndent bool

	anchorNames map[*Node]string
	referenced  map[*Node]bool
	anchorSeq   int

	depth int
}

func newEmitter(opts ...EmitOption) *emitter {
	e := &emitter{
		lineWidth:   defaultLineWidth,
		indentStep:  defaultIndentStep,
		anchorNames: make(map[*Node]string),
		referenced:  make(map[*Node]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dump renders a single document tree.
func Dump(doc *Node, opts ...EmitOption) ([]byte, error) {
	return DumpStream([]*Node{doc}, opts...)
}

// DumpStream renders a sequence of document trees, separating them with
// "---" once there is more than one.
func DumpStream(docs []*Node, opts ...EmitOption) (out []byte, err error) {
	e := newEmitter(opts...)
	defer recoverFailure(&err)

	for _, doc := range docs {
		e.collectAnchors(doc)
	}
	multi := len(docs) > 1
	for _, doc := range docs {
		if multi {
			e.buf.WriteString("---\n")
		}
		e.emitDocument(doc)
	}
	return e.buf.Bytes(), nil
}

func (e *emitter) collectAnchors(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case DocumentNode, MappingNode, SequenceNode:
		for _, c := range n.Content {
			e.collectAnchors(c)
		}
	case AliasNode:
		if n.Alias != nil {
			e.referenced[n.Alias] = true
		}
	}
}

func (e *emitter) anchorFor(n *Node) (string, bool) {
	if n.Anchor != "" {
		return n.Anchor, true
	}
	if !e.referenced[n] {
		return "", false
	}
	if name, ok := e.anchorNames[n]; ok {
		return name, true
	}
	e.anchorSeq++
	name := fmt.Sprintf("a%d", e.anchorSeq)
	e.anchorNames[n] = name
	return name, true
}

func tagToken(tag string) string {
	const core = "tag:yaml.org,2002:"
	switch {
	case tag == "" || tag == "!":
		return ""
	case strings.HasPrefix(tag, core):
		return "!!" + tag[len(core):]
	default:
		return "!<" + tag + ">"
	}
}

// propsInline renders the " &anchor !!tag"-shaped property prefix, with its
// own leading space, or "" if there is nothing to print.
func (e *emitter) propsInline(n *Node) string {
	var parts []string
	if name, ok := e.anchorFor(n); ok {
		parts = append(parts, "&"+name)
	}
	if t := tagToken(n.Tag); t != "" {
		parts = append(parts, t)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func (e *emitter) writeIndent(indent int) {
	e.buf.WriteString(strings.Repeat(" ", indent))
}

func (e *emitter) emitLeading(n *Node, indent int) {
	for _, c := range n.Leading {
		e.writeIndent(indent)
		e.buf.WriteString("#")
		e.buf.WriteString(c.Text)
		e.buf.WriteString("\n")
	}
}

func (e *emitter) emitTrailing(n *Node, indent int) {
	for i, c := range n.Trailing {
		// The first trailing comment, if inline, shares the line the value
		// itself just ended: splice it onto that line in place of the
		// newline emitValue already wrote, rather than dropping it to its
		// own line and losing the distinction the Inline flag records.
		if i == 0 && c.Inline {
			if b := e.buf.Bytes(); len(b) > 0 && b[len(b)-1] == '\n' {
				e.buf.Truncate(e.buf.Len() - 1)
				e.buf.WriteString(" #")
				e.buf.WriteString(c.Text)
				e.buf.WriteString("\n")
				continue
			}
		}
		e.writeIndent(indent)
		e.buf.WriteString("#")
		e.buf.WriteString(c.Text)
		e.buf.WriteString("\n")
	}
}

func (e *emitter) emitDocument(doc *Node) {
	if len(doc.Content) == 0 {
		return
	}
	root := doc.Content[0]
	e.emitLeading(root, 0)
	// emitValue's MappingNode/SequenceNode cases indent their block body one
	// step past the indent they're called with, because that indent
	// normally belongs to the enclosing "key:"/"-" entry the value follows.
	// The document root isn't nested under any such entry, so its block
	// body is written at indent 0 directly rather than through emitValue.
	switch root.Kind {
	case MappingNode:
		e.emitCollectionValue(root, 0, "", func() { e.writeFlowMapping(root) }, func() { e.emitMappingBlock(root, 0) })
	case SequenceNode:
		e.emitCollectionValue(root, 0, "", func() { e.writeFlowSequence(root) }, func() { e.emitSequenceBlock(root, 0) })
	default:
		e.emitValue(root, 0, "")
	}
	e.emitTrailing(root, 0)
}

// emitValue renders n as the thing following either nothing (lead=="", used
// at document root) or a single already-written indicator ("key:", "-")
// whose trailing separator space is lead==" ". Block collections ignore
// lead and start their own line.
func (e *emitter) emitValue(n *Node, indent int, lead string) {
	switch n.Kind {
	case ScalarNode:
		e.emitScalarValue(n, indent, lead)
	case AliasNode:
		e.buf.WriteString(lead)
		e.buf.WriteString("*")
		e.buf.WriteString(n.AliasName)
		e.buf.WriteString("\n")
	case MappingNode:
		e.emitCollectionValue(n, indent, lead, func() { e.writeFlowMapping(n) }, func() { e.emitMappingBlock(n, indent+e.indentStep) })
	case SequenceNode:
		seqIndent := indent + e.indentStep
		if e.compactSeqIndent {
			seqIndent = indent
		}
		e.emitCollectionValue(n, indent, lead, func() { e.writeFlowSequence(n) }, func() { e.emitSequenceBlock(n, seqIndent) })
	}
}

func (e *emitter) emitCollectionValue(n *Node, indent int, lead string, writeFlow, writeBlock func()) {
	props := e.propsInline(n)
	if n.Style == FlowStyle || len(n.Content) == 0 {
		e.buf.WriteString(lead)
		if props != "" {
			e.buf.WriteString(strings.TrimPrefix(props, " "))
			e.buf.WriteString(" ")
		}
		writeFlow()
		e.buf.WriteString("\n")
		return
	}
	if props != "" {
		e.buf.WriteString(lead)
		e.buf.WriteString(strings.TrimPrefix(props, " "))
		e.buf.WriteString("\n")
	} else if lead != "" {
		e.buf.WriteString("\n")
	}
	writeBlock()
}

func (e *emitter) emitScalarValue(n *Node, indent int, lead string) {
	style := effectiveScalarStyle(n)
	props := e.propsInline(n)

	if style == LiteralStyle || style == FoldedStyle {
		if props != "" {
			e.buf.WriteString(lead)
			e.buf.WriteString(strings.TrimPrefix(props, " "))
			lead = " "
		}
		e.buf.WriteString(lead)
		header, body := e.blockScalarHeaderAndBody(n, style, indent+e.indentStep)
		e.buf.WriteString(header)
		e.buf.WriteString("\n")
		e.buf.WriteString(body)
		return
	}

	e.buf.WriteString(lead)
	if props != "" {
		e.buf.WriteString(strings.TrimPrefix(props, " "))
		e.buf.WriteString(" ")
	}
	e.buf.WriteString(e.renderInlineScalar(n, style, indent))
	e.buf.WriteString("\n")
}

func (e *emitter) writeInlineScalarWithProps(n *Node, indent int) {
	props := e.propsInline(n)
	if props != "" {
		e.buf.WriteString(strings.TrimPrefix(props, " "))
		e.buf.WriteString(" ")
	}
	style := effectiveScalarStyle(n)
	if style == LiteralStyle || style == FoldedStyle {
		style = DoubleQuotedStyle
	}
	e.buf.WriteString(e.renderInlineScalar(n, style, indent))
}

func (e *emitter) enterBlock(loc Location) func() {
	e.depth++
	if e.depth > maxEmitDepth {
		panicSyntax(loc, "node nesting exceeds maximum emit depth %d", maxEmitDepth)
	}
	return func() { e.depth-- }
}

func (e *emitter) emitMappingBlock(n *Node, indent int) {
	defer e.enterBlock(n.Location)()
	for _, kv := range n.MapEntries() {
		key, val := kv[0], kv[1]
		e.emitLeading(key, indent)
		e.writeIndent(indent)
		if key.Kind == ScalarNode {
			e.writeInlineScalarWithProps(key, indent)
			e.buf.WriteString(":")
		} else {
			e.buf.WriteString("?")
			e.emitValue(key, indent, " ")
			e.writeIndent(indent)
			e.buf.WriteString(":")
		}
		e.emitValue(val, indent, " ")
		e.emitTrailing(val, indent)
	}
}

func (e *emitter) emitSequenceBlock(n *Node, indent int) {
	defer e.enterBlock(n.Location)()
	for _, item := range n.Content {
		e.emitLeading(item, indent)
		e.writeIndent(indent)
		e.buf.WriteString("-")
		e.emitValue(item, indent, " ")
		e.emitTrailing(item, indent)
	}
}

func (e *emitter) writeFlowSequence(n *Node) {
	e.buf.WriteString("[")
	for i, c := range n.Content {
		if i > 0 {
			e.buf.WriteString(", ")
		}
		e.writeFlowChild(c)
	}
	e.buf.WriteString("]")
}

func (e *emitter) writeFlowMapping(n *Node) {
	e.buf.WriteString("{")
	for i, kv := range n.MapEntries() {
		if i > 0 {
			e.buf.WriteString(", ")
		}
		e.writeFlowChild(kv[0])
		e.buf.WriteString(": ")
		e.writeFlowChild(kv[1])
	}
	e.buf.WriteString("}")
}

func (e *emitter) writeFlowChild(n *Node) {
	switch n.Kind {
	case ScalarNode:
		e.writeInlineScalarWithProps(n, 0)
	case AliasNode:
		e.buf.WriteString("*")
		e.buf.WriteString(n.AliasName)
	case MappingNode:
		props := e.propsInline(n)
		e.buf.WriteString(strings.TrimPrefix(props, " "))
		if props != "" {
			e.buf.WriteString(" ")
		}
		e.writeFlowMapping(n)
	case SequenceNode:
		props := e.propsInline(n)
		e.buf.WriteString(strings.TrimPrefix(props, " "))
		if props != "" {
			e.buf.WriteString(" ")
		}
		e.writeFlowSequence(n)
	}
}

// effectiveScalarStyle picks a concrete rendering style for a scalar whose
// Node.Style wasn't explicitly set to one of the scalar styles (e.g. a
// programmatically constructed tree).
func effectiveScalarStyle(n *Node) Style {
	switch n.Style {
	case PlainStyle, SingleQuotedStyle, DoubleQuotedStyle, LiteralStyle, FoldedStyle:
		return n.Style
	default:
		if strings.Contains(n.Value, "\n") {
			return LiteralStyle
		}
		if isSafePlain(n.Value) {
			return PlainStyle
		}
		return DoubleQuotedStyle
	}
}

// isSafePlain reports whether value can round-trip as a plain scalar
// without risk of being read back as something else.
func isSafePlain(value string) bool {
	if value == "" || strings.Contains(value, "\n") {
		return false
	}
	if strings.TrimSpace(value) != value {
		return false
	}
	if strings.ContainsAny(value[:1], "-?:,[]{}#&*!|>'\"%@`") {
		return false
	}
	if strings.Contains(value, ": ") || strings.Contains(value, " #") || strings.HasSuffix(value, ":") {
		return false
	}
	switch value {
	case "null", "Null", "NULL", "~", "true", "True", "TRUE", "false", "False", "FALSE":
		return false
	}
	return !looksLikeNumber(value)
}

func looksLikeNumber(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' && r != 'e' && r != 'E' {
			return false
		}
	}
	return true
}

func (e *emitter) renderInlineScalar(n *Node, style Style, indent int) string {
	switch style {
	case SingleQuotedStyle:
		if strings.Contains(n.Value, "\n") {
			return quoteDouble(n.Value)
		}
		return quoteSingle(n.Value)
	case DoubleQuotedStyle:
		return quoteDouble(n.Value)
	default:
		if strings.Contains(n.Value, "\n") {
			return quoteDouble(n.Value)
		}
		if e.lineWidth > 0 && len(n.Value) > e.lineWidth {
			return wrapPlain(n.Value, indent, e.lineWidth)
		}
		return n.Value
	}
}

func quoteDouble(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\x%02X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func quoteSingle(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func wrapPlain(value string, indent, lineWidth int) string {
	contIndent := strings.Repeat(" ", indent+2)
	wrapped := wrapPlainPhysical(value, lineWidth-indent)
	return strings.ReplaceAll(wrapped, "\n", "\n"+contIndent)
}

func wrapPlainPhysical(s string, width int) string {
	words := strings.Fields(s)
	if width <= 0 || len(words) == 0 {
		return s
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > width {
			lines = append(lines, cur)
			cur = w
		} else {
			cur += " " + w
		}
	}
	lines = append(lines, cur)
	return strings.Join(lines, "\n")
}

func blockChompIndicator(value string) byte {
	trimmed := strings.TrimRight(value, "\n")
	switch len(value) - len(trimmed) {
	case 0:
		return '-'
	case 1:
		return 0
	default:
		return '+'
	}
}

// blockScalarHeaderAndBody renders the "|"/">" header token (with explicit
// indent digit when the first content line itself starts with whitespace,
// which would otherwise defeat auto-indent-detection on reparse) and the
// indented body.
func (e *emitter) blockScalarHeaderAndBody(n *Node, style Style, bodyIndent int) (string, string) {
	header := "|"
	if style == FoldedStyle {
		header = ">"
	}
	firstLine := n.Value
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	if len(firstLine) > 0 && (firstLine[0] == ' ' || firstLine[0] == '\t') {
		header += strconv.Itoa(e.indentStep)
	}
	if c := blockChompIndicator(n.Value); c != 0 {
		header += string(c)
	}

	var body string
	if style == FoldedStyle {
		body = writeFoldedBody(n.Value, bodyIndent, e.lineWidth)
	} else {
		body = indentLiteralBody(n.Value, bodyIndent)
	}
	return header, body
}

func indentLiteralBody(value string, indent int) string {
	pad := strings.Repeat(" ", indent)
	lines := strings.Split(value, "\n")
	var sb strings.Builder
	for i, l := range lines {
		if i == len(lines)-1 && l == "" {
			break
		}
		if l == "" {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(pad)
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeFoldedBody(value string, indent, lineWidth int) string {
	pad := strings.Repeat(" ", indent)
	segs := strings.Split(value, "\n")
	var sb strings.Builder
	for i, seg := range segs {
		if i == len(segs)-1 && seg == "" {
			break
		}
		if seg == "" {
			sb.WriteString("\n")
			continue
		}
		for _, wline := range strings.Split(wrapPlainPhysical(seg, lineWidth-indent), "\n") {
			sb.WriteString(pad)
			sb.WriteString(wline)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
