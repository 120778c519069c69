// SPDX-License-Identifier: Apache-2.0

package yaml

import "rdyaml.dev/yaml/internal/engine"

// Error types and sentinels, re-exported from internal/engine so callers
// never need to import the internal package directly to use errors.As/Is.
type (
	SyntaxError  = engine.SyntaxError
	EmitterError = engine.EmitterError
	InternalError = engine.InternalError
)

var (
	ErrNotUTF8           = engine.ErrNotUTF8
	ErrUnsupportedInput  = engine.ErrUnsupportedInput
	ErrAliasNotPermitted = engine.ErrAliasNotPermitted
	ErrUnfinishedParse   = engine.ErrUnfinishedParse
)
