// SPDX-License-Identifier: Apache-2.0

package yaml

import "rdyaml.dev/yaml/internal/engine"

// Node, and everything it's built from, is re-exported verbatim from
// internal/engine: the façade adds entry points, not a second type system.
type (
	Node             = engine.Node
	Kind             = engine.Kind
	Style            = engine.Style
	Location         = engine.Location
	Mark             = engine.Mark
	Comment          = engine.Comment
	VersionDirective = engine.VersionDirective
	TagDirective     = engine.TagDirective
	Handler          = engine.Handler
)

const (
	DocumentNode = engine.DocumentNode
	MappingNode  = engine.MappingNode
	SequenceNode = engine.SequenceNode
	ScalarNode   = engine.ScalarNode
	AliasNode    = engine.AliasNode
)

const (
	AnyStyle          = engine.AnyStyle
	PlainStyle        = engine.PlainStyle
	SingleQuotedStyle = engine.SingleQuotedStyle
	DoubleQuotedStyle = engine.DoubleQuotedStyle
	LiteralStyle      = engine.LiteralStyle
	FoldedStyle       = engine.FoldedStyle
	BlockStyle        = engine.BlockStyle
	FlowStyle         = engine.FlowStyle
)

// ParseEvents drives src through the grammar engine, delivering events (and
// comments) to h in document order, without building a Node tree. This is
// the seam a consumer plugs a typed-decode layer into instead of using
// Load/Parse.
func ParseEvents(filename string, src []byte, h Handler, opts ...ParseOption) error {
	cfg := newParseConfig(opts)
	return engine.ParseEvents(filename, src, h, cfg.engineParseOpts...)
}
