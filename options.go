// SPDX-License-Identifier: Apache-2.0

// Functional options for Parse/Load and Dump, grounded on the teacher's
// options.go (deleted; see DESIGN.md) which configures github.com/yaml's
// decoder/encoder the same way: a slice of closures collected into a config
// struct before the real work starts.
package yaml

import "rdyaml.dev/yaml/internal/engine"

// ParseOption configures Parse/Load/LoadStream/ParseEvents.
type ParseOption func(*parseConfig)

type parseConfig struct {
	engineParseOpts []engine.ParseOption
	engineBuildOpts []engine.BuildOption
}

func newParseConfig(opts []ParseOption) *parseConfig {
	cfg := &parseConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMaxDepth overrides the recursion-depth guard (default 10000).
func WithMaxDepth(n int) ParseOption {
	return func(c *parseConfig) {
		c.engineParseOpts = append(c.engineParseOpts, engine.WithMaxDepth(n))
	}
}

// WithoutAliasResolution leaves Alias nodes unresolved instead of pointing
// them at their anchor's Node ("unsafe_load" vs "safe_load" in spec.md §6
// terms; this module makes alias-following opt-out rather than opt-in,
// since there's no typed-decode layer here for an attacker-controlled tag
// to exploit).
func WithoutAliasResolution() ParseOption {
	return func(c *parseConfig) {
		c.engineBuildOpts = append(c.engineBuildOpts, engine.WithoutAliasResolution())
	}
}

// WithMaxAliasRatio overrides the alias/node amplification guard.
func WithMaxAliasRatio(ratio float64) ParseOption {
	return func(c *parseConfig) {
		c.engineBuildOpts = append(c.engineBuildOpts, engine.WithMaxAliasRatio(ratio))
	}
}

// WithComments toggles comment collection and attachment (on by default).
// Pass false for callers that only want the value tree and would rather
// skip the attachment walk entirely.
func WithComments(enabled bool) ParseOption {
	return func(c *parseConfig) {
		c.engineBuildOpts = append(c.engineBuildOpts, engine.WithComments(enabled))
	}
}

// DumpOption configures Dump/DumpStream.
type DumpOption func(*dumpConfig)

type dumpConfig struct {
	engineOpts []engine.EmitOption
}

func newDumpConfig(opts []DumpOption) *dumpConfig {
	cfg := &dumpConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLineWidth overrides the column at which plain/folded scalars wrap.
// 0 disables wrapping.
func WithLineWidth(n int) DumpOption {
	return func(c *dumpConfig) { c.engineOpts = append(c.engineOpts, engine.WithLineWidth(n)) }
}

// WithIndentSize overrides the per-level indent (default 2).
func WithIndentSize(n int) DumpOption {
	return func(c *dumpConfig) { c.engineOpts = append(c.engineOpts, engine.WithIndentSize(n)) }
}

// WithCompactSequenceIndent writes block sequence entries at the same
// column as the key/entry that introduces them instead of one indent step
// deeper.
func WithCompactSequenceIndent() DumpOption {
	return func(c *dumpConfig) { c.engineOpts = append(c.engineOpts, engine.WithCompactSequenceIndent()) }
}
