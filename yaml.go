// SPDX-License-Identifier: Apache-2.0

// Package yaml is a thin façade over internal/engine, providing the
// External Interfaces spec: Parse/Load/LoadStream for reading, Dump/
// DumpStream for writing, and the Handler/ParseEvents event-level seam for
// consumers that want to drive their own tagged-value layer instead of this
// module's untyped Node tree. Grounded on the teacher's own yaml.go, which
// plays the same role over internal/libyaml.
package yaml

import "rdyaml.dev/yaml/internal/engine"

// Parse parses src (named filename for error messages) into a single
// document tree. Aliases are resolved into the tree unless
// WithoutAliasResolution is given.
func Parse(filename string, src []byte, opts ...ParseOption) (*Node, error) {
	docs, err := parseDocuments(filename, src, opts)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return &Node{Kind: DocumentNode}, nil
	}
	return docs[0], nil
}

// Load is Parse without a filename, for the common single-document case.
func Load(src []byte, opts ...ParseOption) (*Node, error) {
	return Parse("", src, opts...)
}

// LoadStream parses every document in src.
func LoadStream(src []byte, opts ...ParseOption) ([]*Node, error) {
	return parseDocuments("", src, opts)
}

func parseDocuments(filename string, src []byte, opts []ParseOption) ([]*Node, error) {
	cfg := newParseConfig(opts)
	return engine.BuildDocuments(filename, src, cfg.engineParseOpts, cfg.engineBuildOpts)
}

// Dump renders a single document tree.
func Dump(n *Node, opts ...DumpOption) ([]byte, error) {
	return engine.Dump(n, newDumpConfig(opts).engineOpts...)
}

// DumpStream renders several document trees, separated by "---".
func DumpStream(docs []*Node, opts ...DumpOption) ([]byte, error) {
	return engine.DumpStream(docs, newDumpConfig(opts).engineOpts...)
}
