// SPDX-License-Identifier: Apache-2.0

package engine

// Style covers every presentation style an Event or Node can carry: scalar
// styles (plain/single/double/literal/folded) and collection styles
// (block/flow). Grounded on the teacher's split ScalarStyle/SequenceStyle/
// MappingStyle in internal/libyaml/yaml.go, merged into one enum since this
// engine's Event/Node types are not C-struct-layout constrained the way the
// teacher's port is.
type Style int

const (
	AnyStyle Style = iota
	PlainStyle
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
	BlockStyle
	FlowStyle
)

func (s Style) String() string {
	switch s {
	case PlainStyle:
		return "plain"
	case SingleQuotedStyle:
		return "single-quoted"
	case DoubleQuotedStyle:
		return "double-quoted"
	case LiteralStyle:
		return "literal"
	case FoldedStyle:
		return "folded"
	case BlockStyle:
		return "block"
	case FlowStyle:
		return "flow"
	default:
		return "any"
	}
}

// Chomping is the trailing-newline policy for literal/folded scalars.
type Chomping int

const (
	ClipChomping  Chomping = iota // default: exactly one trailing newline
	StripChomping                 // drop all trailing newlines
	KeepChomping                  // keep all trailing newlines
)
