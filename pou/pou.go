// Package pou implements the point-of-uncertainty (PoU) checkpoint/rollback
// discipline the sequence driver uses for speculative child-parser
// attempts. It plays the role the teacher's SafeSpot (see parser.go) plays
// for forward error recovery, but inverted: SafeSpot marks a point *past*
// which the teacher's parser will never backtrack, while a PoU marks a
// point *from* which the driver can cheaply roll the whole mutable parse
// state back if the speculative attempt turns out not to match.
package pou

import "github.com/flowdev/seqparse/perr"

// Snapshot captures every piece of mutable state a PoU reset must restore.
// The driver's pstate.State builds one of these on Mark and feeds it back
// on Reset; the pou package itself stays agnostic of pstate's concrete
// type so that pstate can depend on pou without a cycle.
type Snapshot struct {
	BitPos0b          uint64
	InfosetLen        int
	ArrayPos          uint64
	GroupPos          uint64
	GroupIndexDepth   int
}

// Mark is a single checkpoint. Label and Context exist purely for
// diagnostics (PoU labeling per spec.md §4.2); Resolved records whether the
// child parser conclusively committed past this mark before later failing.
type Mark struct {
	Label    string
	Context  interface{}
	Snapshot Snapshot
	resolved bool
}

// IsResolved is true once the child parser has conclusively decided (e.g.
// consumed a discriminator) before failing, which forbids backtracking into
// the committed branch.
func (m *Mark) IsResolved() bool {
	return m.resolved
}

// Resolve marks the checkpoint as discriminated. Once resolved, a failure
// past this mark can no longer be masked by Reset; the driver instead
// rewrites the result to UnorderedSeqDiscriminatedFailure (see
// seqdriver.parseOneInstance).
func (m *Mark) Resolve() {
	m.resolved = true
}

// Stack is a LIFO stack of PoU marks. Only the top mark may be discarded or
// reset; any other access is a programmer error and panics with an
// perr.InvariantViolation, matching the teacher's posture on mis-nested
// internal contracts (parser.go panics outright for comparable
// construction-time violations).
type Stack struct {
	marks []*Mark
}

// NewStack returns an empty PoU stack.
func NewStack() *Stack {
	return &Stack{}
}

// Depth returns the number of currently open marks.
func (s *Stack) Depth() int {
	return len(s.marks)
}

// Mark pushes a new checkpoint snapshot onto the stack and returns it.
func (s *Stack) Mark(label string, context interface{}, snap Snapshot) *Mark {
	m := &Mark{Label: label, Context: context, Snapshot: snap}
	s.marks = append(s.marks, m)
	return m
}

// top panics unless the given mark is the top of the stack (mis-nested
// discard/reset is a programmer error per spec.md §4.1).
func (s *Stack) top(m *Mark) {
	if len(s.marks) == 0 || s.marks[len(s.marks)-1] != m {
		perr.Violate("PoU stack mis-nested: discard/reset called out of LIFO order")
	}
}

// Discard commits the mark: the snapshot is dropped and every side effect
// performed since Mark is retained.
func (s *Stack) Discard(m *Mark) {
	s.top(m)
	s.marks = s.marks[:len(s.marks)-1]
}

// Reset rolls back to the mark's snapshot and returns it so the caller
// (pstate.State) can restore bit position, infoset length, and counters
// from it. The PoU is popped either way.
func (s *Stack) Reset(m *Mark) Snapshot {
	s.top(m)
	s.marks = s.marks[:len(s.marks)-1]
	return m.Snapshot
}

// ResolveTop marks the innermost open checkpoint as discriminated, letting a
// child parser that just consumed its own discriminator forbid any later
// rollback past this point. A no-op when no PoU is open, so child parsers
// that may or may not run under a point of uncertainty can call it
// unconditionally.
func (s *Stack) ResolveTop() {
	if len(s.marks) == 0 {
		return
	}
	s.marks[len(s.marks)-1].Resolve()
}

// WithPointOfUncertainty is the scoped helper from spec.md §4.1: it
// guarantees the mark is released (discarded or reset) on every exit path
// of body, including a panic, mirroring the teacher's own discipline of
// wrapping a sub-parser call and always restoring state on the way back out
// (comb.SafeSpot wraps a parser the same way, just for the opposite
// purpose). The caller is still responsible for calling Discard or Reset
// from inside body when it knows the outcome; if body returns without
// having done so, the mark is discarded (treated as committed) by default.
func WithPointOfUncertainty(stack *Stack, label string, context interface{}, snap Snapshot, body func(*Mark)) {
	m := stack.Mark(label, context, snap)
	defer stack.releaseIfOpen(m)
	body(m)
}

// releaseIfOpen discards m if body left it on the stack, whether because it
// returned without deciding or because it panicked. Runs on every exit path
// via defer.
func (s *Stack) releaseIfOpen(m *Mark) {
	for _, open := range s.marks {
		if open == m {
			s.Discard(m)
			return
		}
	}
}
