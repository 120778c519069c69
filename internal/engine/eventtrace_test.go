// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"strings"
)

// traceHandler renders an event stream into a compact textual trace, one
// line per event, in the style of the yaml-test-suite event format the
// teacher's own parser_events_test.go uses (+STR/+DOC/+MAP/=VAL/...). Kept
// intentionally terse: tests assert on this string rather than walking a
// tree of Event structs by hand.
type traceHandler struct {
	lines []string
}

func (h *traceHandler) add(s string) { h.lines = append(h.lines, s) }

func (h *traceHandler) String() string { return strings.Join(h.lines, "\n") }

func (h *traceHandler) StartStream(loc Location) { h.add("+STR") }
func (h *traceHandler) EndStream(loc Location)   { h.add("-STR") }

func (h *traceHandler) StartDocument(loc Location, version *VersionDirective, tags []TagDirective, implicit bool) {
	if implicit {
		h.add("+DOC")
	} else {
		h.add("+DOC ---")
	}
}

func (h *traceHandler) EndDocument(loc Location, implicit bool) {
	if implicit {
		h.add("-DOC")
	} else {
		h.add("-DOC ...")
	}
}

func styleTag(s Style) string {
	switch s {
	case SingleQuotedStyle:
		return "'"
	case DoubleQuotedStyle:
		return `"`
	case LiteralStyle:
		return "|"
	case FoldedStyle:
		return ">"
	default:
		return ":"
	}
}

func propsSuffix(anchor, tag string) string {
	var sb strings.Builder
	if anchor != "" {
		fmt.Fprintf(&sb, " &%s", anchor)
	}
	if tag != "" && tag != "!" {
		fmt.Fprintf(&sb, " <%s>", tag)
	}
	return sb.String()
}

func (h *traceHandler) StartMapping(loc Location, anchor, tag string, style Style) {
	suffix := propsSuffix(anchor, tag)
	if style == FlowStyle {
		h.add("+MAP {}" + suffix)
	} else {
		h.add("+MAP" + suffix)
	}
}

func (h *traceHandler) EndMapping(loc Location) { h.add("-MAP") }

func (h *traceHandler) StartSequence(loc Location, anchor, tag string, style Style) {
	suffix := propsSuffix(anchor, tag)
	if style == FlowStyle {
		h.add("+SEQ []" + suffix)
	} else {
		h.add("+SEQ" + suffix)
	}
}

func (h *traceHandler) EndSequence(loc Location) { h.add("-SEQ") }

func (h *traceHandler) Scalar(loc Location, value, anchor, tag string, plainImplicit, quotedImplicit bool, style Style) {
	h.add(fmt.Sprintf("=VAL%s %s%s", propsSuffix(anchor, tag), styleTag(style), value))
}

func (h *traceHandler) Alias(loc Location, name string) {
	h.add("=ALI *" + name)
}

func (h *traceHandler) Comment(c Comment) {
	inline := ""
	if c.Inline {
		inline = " inline"
	}
	h.add(fmt.Sprintf("=COM%s #%s", inline, c.Text))
}

// trace parses src and returns its compact event trace, failing the calling
// test on a parse error.
func trace(tb interface {
	Helper()
	Fatalf(string, ...any)
}, src string, opts ...ParseOption) string {
	tb.Helper()
	h := &traceHandler{}
	if err := ParseEvents("", []byte(src), h, opts...); err != nil {
		tb.Fatalf("ParseEvents(%q): unexpected error: %v", src, err)
	}
	return h.String()
}
