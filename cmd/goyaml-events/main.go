// SPDX-License-Identifier: Apache-2.0

// This binary feeds a YAML file through the parser's event stream and
// prints one JSON line per event, for eyeballing the grammar engine during
// development. It is deliberately thin: it owns no parsing logic of its
// own, only a Handler that serializes what it's handed.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"rdyaml.dev/yaml"
)

func main() {
	maxDepth := flag.Int("max-depth", 0, "override the recursion-depth guard (0 = default)")
	flag.Parse()

	var src []byte
	var filename string
	var err error
	if args := flag.Args(); len(args) > 0 {
		filename = args[0]
		src, err = os.ReadFile(filename)
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("goyaml-events: %v", err)
	}

	var opts []yaml.ParseOption
	if *maxDepth > 0 {
		opts = append(opts, yaml.WithMaxDepth(*maxDepth))
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	h := &jsonHandler{enc: json.NewEncoder(w)}
	if err := yaml.ParseEvents(filename, src, h, opts...); err != nil {
		fmt.Fprintln(w, h.encodeErr(err))
		w.Flush()
		os.Exit(1)
	}
}

// jsonEvent is the wire shape printed for every event; fields are omitted
// by zero value so each line stays close to what that event actually
// carries.
type jsonEvent struct {
	Type     string `json:"type"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Anchor   string `json:"anchor,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Value    string `json:"value,omitempty"`
	Name     string `json:"name,omitempty"`
	Style    string `json:"style,omitempty"`
	Implicit bool   `json:"implicit,omitempty"`
	Comment  string `json:"comment,omitempty"`
	Error    string `json:"error,omitempty"`
}

type jsonHandler struct {
	enc *json.Encoder
}

func (h *jsonHandler) emit(typ string, loc yaml.Location, f func(*jsonEvent)) {
	ev := jsonEvent{Type: typ, Line: loc.StartMark().Line, Column: loc.StartMark().Column + 1}
	if f != nil {
		f(&ev)
	}
	h.enc.Encode(ev)
}

func (h *jsonHandler) encodeErr(err error) string {
	b, _ := json.Marshal(jsonEvent{Type: "error", Error: err.Error()})
	return string(b)
}

func (h *jsonHandler) StartStream(loc yaml.Location) { h.emit("stream_start", loc, nil) }
func (h *jsonHandler) EndStream(loc yaml.Location)   { h.emit("stream_end", loc, nil) }

func (h *jsonHandler) StartDocument(loc yaml.Location, version *yaml.VersionDirective, tags []yaml.TagDirective, implicit bool) {
	h.emit("document_start", loc, func(e *jsonEvent) { e.Implicit = implicit })
}

func (h *jsonHandler) EndDocument(loc yaml.Location, implicit bool) {
	h.emit("document_end", loc, func(e *jsonEvent) { e.Implicit = implicit })
}

func (h *jsonHandler) StartMapping(loc yaml.Location, anchor, tag string, style yaml.Style) {
	h.emit("mapping_start", loc, func(e *jsonEvent) { e.Anchor = anchor; e.Tag = tag; e.Style = style.String() })
}

func (h *jsonHandler) EndMapping(loc yaml.Location) { h.emit("mapping_end", loc, nil) }

func (h *jsonHandler) StartSequence(loc yaml.Location, anchor, tag string, style yaml.Style) {
	h.emit("sequence_start", loc, func(e *jsonEvent) { e.Anchor = anchor; e.Tag = tag; e.Style = style.String() })
}

func (h *jsonHandler) EndSequence(loc yaml.Location) { h.emit("sequence_end", loc, nil) }

func (h *jsonHandler) Scalar(loc yaml.Location, value, anchor, tag string, plainImplicit, quotedImplicit bool, style yaml.Style) {
	h.emit("scalar", loc, func(e *jsonEvent) {
		e.Value = value
		e.Anchor = anchor
		e.Tag = tag
		e.Style = style.String()
		e.Implicit = plainImplicit
	})
}

func (h *jsonHandler) Alias(loc yaml.Location, name string) {
	h.emit("alias", loc, func(e *jsonEvent) { e.Name = name })
}

func (h *jsonHandler) Comment(c yaml.Comment) {
	h.emit("comment", c.Location, func(e *jsonEvent) { e.Comment = c.Text })
}
