// SPDX-License-Identifier: Apache-2.0

// Event cache (spec §4.E): the seam between the grammar engine and a
// Handler. Ambiguous constructs (block sequence vs. mapping vs. scalar,
// explicit vs. implicit key, flow entry shapes) are resolved by the cursor's
// own Try/Peek lookahead *before* a production commits to emitting anything,
// so no event the grammar emits is ever later retracted; this cache only
// needs to hold the two pieces of state that span several Emit calls:
// pending anchor/tag properties, and the queued-DocumentStart/armed-
// DocumentEnd bookkeeping that lets empty and implicit documents be framed
// correctly.
package engine

type eventCache struct {
	handler Handler

	pendingAnchor string
	pendingTag    string

	// queued DocumentStart not yet delivered to the handler, and whether a
	// DocumentEnd is armed to fire before the next DocumentStart/StreamEnd.
	pendingDocStart *Event
	docEndArmed     bool
}

func newEventCache(h Handler) *eventCache {
	return &eventCache{handler: h}
}

// SetPendingAnchor/SetPendingTag record a parsed property to be copied onto
// the next Scalar/MappingStart/SequenceStart event.
func (c *eventCache) SetPendingAnchor(name string) { c.pendingAnchor = name }
func (c *eventCache) SetPendingTag(tag string)     { c.pendingTag = tag }

func (c *eventCache) takeProperties(ev *Event) {
	if ev.Anchor == "" {
		ev.Anchor = c.pendingAnchor
	}
	if ev.Tag == "" {
		ev.Tag = c.pendingTag
	}
	c.pendingAnchor = ""
	c.pendingTag = ""
}

// Emit delivers ev to the handler, with document framing applied.
func (c *eventCache) Emit(ev Event) {
	switch ev.Type {
	case ScalarEvent, MappingStartEvent, SequenceStartEvent:
		c.takeProperties(&ev)
	}
	c.emit(ev)
}

// isContent reports whether ev is a content event that forces a queued
// DocumentStart to flush before it.
func isContent(t EventType) bool {
	switch t {
	case MappingStartEvent, SequenceStartEvent, ScalarEvent, AliasEvent:
		return true
	default:
		return false
	}
}

// emit is the direct-to-handler path, applying the queued-DocumentStart/
// armed-DocumentEnd framing.
func (c *eventCache) emit(ev Event) {
	switch ev.Type {
	case DocumentStartEvent:
		if c.docEndArmed {
			c.deliverImplicitDocumentEnd(ev.Location)
		}
		doc := ev
		c.pendingDocStart = &doc
		return
	case DocumentEndEvent:
		if c.pendingDocStart != nil {
			// Empty document: flush the queued start, then the end.
			start := *c.pendingDocStart
			c.pendingDocStart = nil
			start.Accept(c.handler)
		}
		c.docEndArmed = false
		ev.Accept(c.handler)
		return
	case StreamEndEvent:
		if c.docEndArmed {
			c.deliverImplicitDocumentEnd(ev.Location)
		}
		ev.Accept(c.handler)
		return
	}

	if isContent(ev.Type) && c.pendingDocStart != nil {
		start := *c.pendingDocStart
		c.pendingDocStart = nil
		start.Accept(c.handler)
		c.docEndArmed = true
	}
	ev.Accept(c.handler)
}

func (c *eventCache) deliverImplicitDocumentEnd(loc Location) {
	c.docEndArmed = false
	(&Event{Type: DocumentEndEvent, Location: Point(loc.Source, loc.Start), Implicit: true}).Accept(c.handler)
}
