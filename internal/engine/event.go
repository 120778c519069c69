// SPDX-License-Identifier: Apache-2.0

// Event model (spec §4.D): a tagged record for every structural point in a
// YAML stream, annotated with a byte-precise Location. Grounded on the
// teacher's single wide Event struct (internal/libyaml/yaml.go) rather than
// a Go sum type via interfaces — the teacher's own port of libyaml keeps
// one struct with per-type-optional fields, and the tag-driven dispatch
// this module needs (Accept) is a thin addition on top of that shape.
package engine

type EventType int8

const (
	NoEvent EventType = iota
	StreamStartEvent
	StreamEndEvent
	DocumentStartEvent
	DocumentEndEvent
	MappingStartEvent
	MappingEndEvent
	SequenceStartEvent
	SequenceEndEvent
	ScalarEvent
	AliasEvent
	CommentEvent
)

func (t EventType) String() string {
	switch t {
	case StreamStartEvent:
		return "stream start"
	case StreamEndEvent:
		return "stream end"
	case DocumentStartEvent:
		return "document start"
	case DocumentEndEvent:
		return "document end"
	case MappingStartEvent:
		return "mapping start"
	case MappingEndEvent:
		return "mapping end"
	case SequenceStartEvent:
		return "sequence start"
	case SequenceEndEvent:
		return "sequence end"
	case ScalarEvent:
		return "scalar"
	case AliasEvent:
		return "alias"
	case CommentEvent:
		return "comment"
	default:
		return "none"
	}
}

// Event is the linear unit the grammar engine emits. Exactly one set of the
// optional fields below is meaningful, depending on Type.
type Event struct {
	Type     EventType
	Location Location

	// MappingStart/SequenceStart/Scalar.
	Anchor string
	// MappingStart/SequenceStart/Scalar.
	Tag string
	// Scalar: true for plain-style scalars (whether or not a tag was given),
	// false for quoted and block scalars. DocumentStart/DocumentEnd: true
	// when the document had no "---"/"...". Not set on MappingStart/
	// SequenceStart.
	Implicit bool
	// Scalar only: true when the tag would also be implicit under any
	// non-plain style (used by the emitter to decide whether re-quoting
	// changes meaning).
	QuotedImplicit bool

	Style Style

	// Scalar only: the decoded text.
	Value string

	// Alias only.
	Name string

	// DocumentStart only.
	Version *VersionDirective
	Tags    []TagDirective

	// CommentEvent only.
	CommentRecord *Comment
}

// Accept dispatches to the matching Handler callback, fulfilling spec
// §4.D's "each event has an accept(handler)".
func (e *Event) Accept(h Handler) {
	switch e.Type {
	case StreamStartEvent:
		h.StartStream(e.Location)
	case StreamEndEvent:
		h.EndStream(e.Location)
	case DocumentStartEvent:
		h.StartDocument(e.Location, e.Version, e.Tags, e.Implicit)
	case DocumentEndEvent:
		h.EndDocument(e.Location, e.Implicit)
	case MappingStartEvent:
		h.StartMapping(e.Location, e.Anchor, e.Tag, e.Style)
	case MappingEndEvent:
		h.EndMapping(e.Location)
	case SequenceStartEvent:
		h.StartSequence(e.Location, e.Anchor, e.Tag, e.Style)
	case SequenceEndEvent:
		h.EndSequence(e.Location)
	case ScalarEvent:
		h.Scalar(e.Location, e.Value, e.Anchor, e.Tag, e.Implicit, e.QuotedImplicit, e.Style)
	case AliasEvent:
		h.Alias(e.Location, e.Name)
	case CommentEvent:
		h.Comment(*e.CommentRecord)
	}
}

// Handler is the consumer contract (spec §6): the grammar engine calls
// exactly one of these per emitted Event, in emission order.
type Handler interface {
	StartStream(loc Location)
	EndStream(loc Location)
	StartDocument(loc Location, version *VersionDirective, tags []TagDirective, implicit bool)
	EndDocument(loc Location, implicit bool)
	StartMapping(loc Location, anchor, tag string, style Style)
	EndMapping(loc Location)
	StartSequence(loc Location, anchor, tag string, style Style)
	EndSequence(loc Location)
	Scalar(loc Location, value, anchor, tag string, plainImplicit, quotedImplicit bool, style Style)
	Alias(loc Location, name string)
	Comment(c Comment)
}
