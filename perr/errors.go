// Package perr implements the error taxonomy used by the sequence parser.
// It mirrors the teacher's ParserError (see base.go/error.go of flowdev/comb):
// a value carrying a message plus the bit position where it happened, with
// a dedicated type for every recoverability class instead of a single
// catch-all error.
package perr

import "fmt"

// ParseError is a recoverable failure: if a point of uncertainty is in
// effect and unresolved, the driver swallows it via PoU reset. Otherwise it
// surfaces as the sequence's overall failure.
type ParseError struct {
	Cause  string
	BitPos uint64
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (at bit %d)", e.Cause, e.BitPos)
}

// NewParseError creates a ParseError with the message and arguments at the
// given bit position.
func NewParseError(bitPos uint64, msg string, args ...interface{}) *ParseError {
	return &ParseError{Cause: fmt.Sprintf(msg, args...), BitPos: bitPos}
}

// TunableLimitExceeded is fatal: the array driver exceeded the static
// occurrence safety cap. It is never recoverable via a point of uncertainty.
type TunableLimitExceeded struct {
	Bound    uint64
	ArrayPos uint64
}

func (e *TunableLimitExceeded) Error() string {
	return fmt.Sprintf("tunable limit exceeded: arrayPos=%d > maxOccursBounds=%d", e.ArrayPos, e.Bound)
}

// InvariantViolation signals a programmer error: a collaborator broke a
// contract the driver relies on (e.g. the success/failure biconditional, or
// mis-nested points of uncertainty). Like the teacher's outright panics in
// parser.go for construction-time contract violations, this is raised with
// panic rather than returned, since it can never legitimately happen given a
// correctly compiled child-parser tree.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Msg
}

// Violate panics with an InvariantViolation. Callers use this instead of a
// plain panic so every driver-detected contract breach carries the same
// recognizable type.
func Violate(format string, args ...interface{}) {
	panic(&InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
