// Package pstate implements ParseState: the mutable cursor over the
// bit-level input and its companion infoset tree that the sequence and
// array drivers operate on. It plays the same role the teacher's own
// State (base.go/state.go) plays for a comb parser, generalized from a
// byte/rune input cursor to the bit-addressed, infoset-carrying,
// PoU-aware cursor the sequence combinator needs — counters (arrayPos,
// groupPos) live here rather than on the driver because child parsers read
// them directly to decide separator handling, exactly as the teacher keeps
// its own position/line bookkeeping on State rather than on any one
// combinator.
package pstate

import (
	"github.com/flowdev/seqparse/infoset"
	"github.com/flowdev/seqparse/pou"
)

// Processor is the coarse-grained status the spec calls processorStatus.
type Processor int

const (
	Success Processor = iota
	Failure
)

// Tunables are the safety caps threaded immutably through a parse run,
// mirroring the teacher's ConstState.maxErrors: a single cap, read-only
// once a parse starts.
type Tunables struct {
	MaxOccursBounds uint64
}

// State is the mutable, single-owner cursor the sequence and array drivers
// advance. One State is exclusively owned by one driver invocation; there
// is no concurrent or re-entrant use within a single parse (spec.md §5).
type State struct {
	bitPos0b uint64
	proc     Processor
	cause    error

	root              *infoset.Complex
	infosetIndexStart int

	arrayPos uint64
	groupPos uint64

	groupIndexStack []uint64

	tunable Tunables
	pouMgr  *pou.Stack
}

// New creates a ParseState positioned at the start of input, with the
// given infoset parent and tunables, ready for a top-level sequence.
func New(root *infoset.Complex, tunable Tunables) *State {
	return &State{
		proc:    Success,
		root:    root,
		tunable: tunable,
		pouMgr:  pou.NewStack(),
	}
}

// ============================================================================
// Position
//

func (s *State) BitPos0b() uint64 {
	return s.bitPos0b
}

// SetBitPos0b forcibly repositions the cursor. Used by the driver to
// restore the pre-attempt position on AbsentRep (spec.md §4.4) and by PoU
// reset.
func (s *State) SetBitPos0b(pos uint64) {
	s.bitPos0b = pos
}

// MoveBy advances the cursor by n bits. Child parsers use this as they
// consume input; the driver itself only reads BitPos0b to detect forward
// progress.
func (s *State) MoveBy(n uint64) {
	s.bitPos0b += n
}

// ============================================================================
// Success/failure
//

func (s *State) IsSuccess() bool {
	return s.proc == Success
}

func (s *State) IsFailure() bool {
	return s.proc == Failure
}

// SetSuccess clears any failure cause and marks the state successful. Used
// by child parsers, by the driver's trailing-absent and unordered-masking
// exits, and by PoU reset recovering a soft failure.
func (s *State) SetSuccess() {
	s.proc = Success
	s.cause = nil
}

// SetFailure marks the state failed with the given cause.
func (s *State) SetFailure(cause error) {
	s.proc = Failure
	s.cause = cause
}

// Cause returns the current failure cause, or nil if the state is
// successful.
func (s *State) Cause() error {
	return s.cause
}

// ============================================================================
// Infoset
//

// Infoset returns the current sequence's parent complex node.
func (s *State) Infoset() *infoset.Complex {
	return s.root
}

// MarkInfosetIndexStart records the infoset child count at sequence entry,
// for later use by an unordered group's FlattenAndValidate.
func (s *State) MarkInfosetIndexStart() int {
	s.infosetIndexStart = s.root.Len()
	return s.infosetIndexStart
}

// InfosetIndexStart returns the value last recorded by
// MarkInfosetIndexStart.
func (s *State) InfosetIndexStart() int {
	return s.infosetIndexStart
}

// ============================================================================
// Counters
//

func (s *State) ArrayPos() uint64 {
	return s.arrayPos
}

func (s *State) SetArrayPos(n uint64) {
	s.arrayPos = n
}

func (s *State) GroupPos() uint64 {
	return s.groupPos
}

func (s *State) SetGroupPos(n uint64) {
	s.groupPos = n
}

func (s *State) Tunable() Tunables {
	return s.tunable
}

// ============================================================================
// Group index stack
//

// PushGroupIndex grows the group-index stack by one entry, as every
// sequence entry does regardless of outcome (spec.md §3 invariants).
func (s *State) PushGroupIndex(v uint64) {
	s.groupIndexStack = append(s.groupIndexStack, v)
}

// PopGroupIndex shrinks the group-index stack by one entry. Every
// SequenceDriver invocation must call this exactly once for each
// PushGroupIndex, regardless of success or failure.
func (s *State) PopGroupIndex() uint64 {
	n := len(s.groupIndexStack)
	v := s.groupIndexStack[n-1]
	s.groupIndexStack = s.groupIndexStack[:n-1]
	return v
}

// GroupIndexDepth returns the current depth of the group-index stack, used
// by property tests asserting GroupStack balance (spec.md §8, property 1).
func (s *State) GroupIndexDepth() int {
	return len(s.groupIndexStack)
}

// ============================================================================
// Points of uncertainty
//

// Mark snapshots every piece of mutable state a Reset must restore and
// pushes a new PoU checkpoint.
func (s *State) Mark(label string, context interface{}) *pou.Mark {
	snap := pou.Snapshot{
		BitPos0b:        s.bitPos0b,
		InfosetLen:      s.root.Len(),
		ArrayPos:        s.arrayPos,
		GroupPos:        s.groupPos,
		GroupIndexDepth: len(s.groupIndexStack),
	}
	return s.pouMgr.Mark(label, context, snap)
}

// Discard commits a mark: its snapshot is dropped and every side effect
// performed since Mark is retained.
func (s *State) Discard(m *pou.Mark) {
	s.pouMgr.Discard(m)
}

// Reset rolls the cursor, infoset, and counters back to the mark's
// snapshot and re-successes the processor status — a PoU recovers a soft
// failure, per spec.md §4.1.
func (s *State) Reset(m *pou.Mark) {
	snap := s.pouMgr.Reset(m)
	s.bitPos0b = snap.BitPos0b
	s.root.Truncate(snap.InfosetLen)
	s.arrayPos = snap.ArrayPos
	s.groupPos = snap.GroupPos
	if len(s.groupIndexStack) > snap.GroupIndexDepth {
		s.groupIndexStack = s.groupIndexStack[:snap.GroupIndexDepth]
	}
	s.SetSuccess()
}

// PoUDepth exposes the live PoU stack depth, used by property tests
// asserting PoU balance (spec.md §8, property 2).
func (s *State) PoUDepth() int {
	return s.pouMgr.Depth()
}

// ResolveTopPoU lets a child parser discriminate the point of uncertainty it
// is running under, once it has consumed enough input to conclusively commit
// to this alternative. A child that isn't wrapped in a PoU at all can still
// call this unconditionally; it does nothing in that case.
func (s *State) ResolveTopPoU() {
	s.pouMgr.ResolveTop()
}
