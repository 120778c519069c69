// SPDX-License-Identifier: Apache-2.0

// Error types for the parser and emitter. Grounded on the teacher's
// internal/libyaml/errors.go: a Mark-carrying structured error for grammar
// failures, plus plain sentinel errors for "this input cannot be used at
// all" failures.
package engine

import (
	"errors"
	"fmt"
)

// SyntaxError is raised by the grammar engine at a known byte position.
type SyntaxError struct {
	Filename string
	Mark     Mark
	Message  string
}

func (e *SyntaxError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s: %s: %s", e.Filename, e.Mark, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Mark, e.Message)
}

// EmitterError is raised by the emitter (e.g. a disallowed alias).
type EmitterError struct {
	Message string
}

func (e *EmitterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Message)
}

// InternalError signals an asserted invariant violation: a bug in the
// engine, never part of the documented contract. Distinct from SyntaxError
// so callers can tell "bad input" from "bug in this library" apart.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("yaml: internal error: %s", e.Message)
}

// Sentinel errors for inputs the parser refuses outright.
var (
	ErrNotUTF8          = errors.New("yaml: input is not valid UTF-8")
	ErrUnsupportedInput  = errors.New("yaml: input is neither a string nor a byte slice")
	ErrAliasNotPermitted = errors.New("yaml: alias not permitted by this emitter")
	ErrUnfinishedParse   = errors.New("yaml: parser finished before end of input")
)

// failure is the panic payload used to unwind the recursive-descent engine
// to its single recover point in Parse/ParseEvents. try() only catches a
// plain bool return to false; it must never recover a failure panic — that
// always means "no alternative left anywhere in the grammar".
type failure struct {
	err error
}

func panicSyntax(loc Location, format string, args ...any) {
	panic(failure{&SyntaxError{
		Filename: loc.Source.Filename,
		Mark:     loc.StartMark(),
		Message:  fmt.Sprintf(format, args...),
	}})
}

func panicInternal(format string, args ...any) {
	panic(failure{&InternalError{Message: fmt.Sprintf(format, args...)}})
}

// recoverFailure turns a failure panic into an error return; any other
// panic value is re-raised, since it indicates a genuine bug rather than a
// reported failure.
func recoverFailure(errp *error) {
	if r := recover(); r != nil {
		if f, ok := r.(failure); ok {
			*errp = f.err
			return
		}
		panic(r)
	}
}
