// SPDX-License-Identifier: Apache-2.0

// Directives (spec §4.F "Tags", "%YAML"/"%TAG") and the tag property
// production: verbatim "!<uri>", shorthand handle+suffix, and the
// non-specific bare "!".
package engine

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	directiveNameRe  = regexp.MustCompile(`^[^ \t\r\n]+`)
	yamlVersionRe    = regexp.MustCompile(`^[0-9]+\.[0-9]+`)
	tagHandleNameRe  = regexp.MustCompile(`^[A-Za-z0-9-]+`)
	tagPrefixRe      = regexp.MustCompile(`^[^ \t\r\n]+`)
	verbatimTagRe    = regexp.MustCompile(`^[^ \t\r\n,\[\]{}>]+`)
	tagSuffixRe      = regexp.MustCompile(`^[^ \t\r\n,\[\]{}]*`)
)

// parseDirectives consumes zero or more "%YAML"/"%TAG"/reserved directive
// lines, each on its own line, updating p.version and p.tagDirectives.
func (p *parser) parseDirectives() {
	for {
		// Leading blank/comment lines are insignificant separation whether
		// or not a directive follows, so skipBlankLines here never needs
		// undoing: rewinding past it would re-expose an already-consumed
		// comment line to whatever runs next (and once misdetect an
		// explicit "---" that the comment line was merely sitting in front
		// of).
		p.skipBlankLines()
		if !p.cur.CheckString("%") {
			return
		}
		p.parseOneDirective()
	}
}

func (p *parser) parseOneDirective() {
	start := p.cur.Pos()
	p.cur.MatchString("%")
	name, ok := p.cur.MatchRegexp(directiveNameRe)
	if !ok {
		panicSyntax(p.cur.LocSince(start), "expected directive name after '%%'")
	}
	p.skipInlineSpace()

	switch name {
	case "YAML":
		if p.version != nil {
			panicSyntax(p.cur.LocSince(start), "found duplicate %%YAML directive")
		}
		verText, ok := p.cur.MatchRegexp(yamlVersionRe)
		if !ok {
			panicSyntax(p.cur.Loc(), "expected MAJOR.MINOR after %%YAML")
		}
		major, minor := parseVersionText(verText)
		p.version = &VersionDirective{Major: major, Minor: minor}
	case "TAG":
		handle, ok := p.cur.MatchRegexp(tagHandleDirectiveRe)
		if !ok {
			panicSyntax(p.cur.Loc(), "expected tag handle after %%TAG")
		}
		p.skipInlineSpace()
		prefix, ok := p.cur.MatchRegexp(tagPrefixRe)
		if !ok || prefix == "" {
			panicSyntax(p.cur.Loc(), "expected tag prefix after %%TAG handle")
		}
		for _, d := range p.tagDirectives {
			if d.Handle == handle {
				panicSyntax(p.cur.LocSince(start), "found duplicate %%TAG handle %q", handle)
			}
		}
		p.tagDirectives = append(p.tagDirectives, TagDirective{Handle: handle, Prefix: decodeURIEscapes(prefix)})
	default:
		// Reserved/unknown directives are accepted and ignored, per the
		// grammar's l-directive production.
	}

	p.skipInlineSpace()
	if !p.tryParseComment() {
		if !p.cur.MatchString("\r\n") && !p.cur.MatchString("\n") && !p.cur.Eof() {
			panicSyntax(p.cur.Loc(), "expected end of line after %%%s directive", name)
		}
	}
}

var tagHandleDirectiveRe = regexp.MustCompile(`^!([A-Za-z0-9-]*!)?`)

func parseVersionText(s string) (int, int) {
	parts := strings.SplitN(s, ".", 2)
	major, _ := strconv.Atoi(parts[0])
	minor, _ := strconv.Atoi(parts[1])
	return major, minor
}

// parseTagProperty parses the "!..." tag property, cursor positioned at the
// leading '!'. Returns the resolved tag URI, or the literal "!" for the
// non-specific tag.
func (p *parser) parseTagProperty() string {
	start := p.cur.Pos()
	p.cur.MatchString("!")

	if p.cur.MatchString("<") {
		uri, ok := p.cur.MatchRegexp(verbatimTagRe)
		if !ok {
			panicSyntax(p.cur.LocSince(start), "expected URI inside '!<...>' tag")
		}
		if !p.cur.MatchString(">") {
			panicSyntax(p.cur.LocSince(start), "expected '>' to close verbatim tag")
		}
		return decodeURIEscapes(uri)
	}

	handle := "!"
	if b, ok := p.cur.PeekByte(); ok && b == '!' {
		p.cur.Advance(1)
		handle = "!!"
	} else if name, ok := p.cur.MatchRegexp(tagHandleNameRe); ok && name != "" {
		if p.cur.MatchString("!") {
			handle = "!" + name + "!"
		} else {
			p.cur.SetPos(start + 1)
		}
	}

	suffix, _ := p.cur.MatchRegexp(tagSuffixRe)
	suffix = decodeURIEscapes(suffix)

	if handle == "!" && suffix == "" {
		return "!"
	}
	return p.resolveTagHandle(start, handle) + suffix
}

func (p *parser) resolveTagHandle(start int, handle string) string {
	for _, d := range p.tagDirectives {
		if d.Handle == handle {
			return d.Prefix
		}
	}
	panicSyntax(p.cur.LocSince(start), "undefined tag handle %q", handle)
	return ""
}

// decodeURIEscapes resolves "%HH" percent-escapes in a tag URI/suffix.
func decodeURIEscapes(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			v, _ := strconv.ParseInt(s[i+1:i+3], 16, 32)
			sb.WriteByte(byte(v))
			i += 2
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
