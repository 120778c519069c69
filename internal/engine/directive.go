// SPDX-License-Identifier: Apache-2.0

package engine

// VersionDirective is a parsed %YAML directive. Grounded on the teacher's
// VersionDirective in internal/libyaml/yaml.go.
type VersionDirective struct {
	Major, Minor int
}

// TagDirective is a parsed %TAG directive: handle ("!", "!!", or "!name!")
// mapped to a URI prefix.
type TagDirective struct {
	Handle, Prefix string
}

// builtinTagDirectives is the pair every document starts with and resets
// to on DocumentEnd (spec §9 "Global tag-directive state").
func builtinTagDirectives() []TagDirective {
	return []TagDirective{
		{Handle: "!", Prefix: "!"},
		{Handle: "!!", Prefix: "tag:yaml.org,2002:"},
	}
}
