// Package term defines the ChildParser protocol the sequence driver
// dispatches over: the polymorphic {Scalar, Repeating, NonRepresented} set
// from spec.md §4.2, modeled as a small closed set of Go interfaces rather
// than a class hierarchy. This mirrors the teacher's own preference for an
// explicit, construction-time-fixed set of parser shapes (see prsr,
// brnchprsr, and lazyprsr in the teacher's parser.go) dispatched with an
// explicit switch on ChildKind instead of runtime instanceof checks.
package term

import (
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/status"
)

// TRD is the compiled runtime descriptor for a schema term: the static
// metadata a child parser carries regardless of its kind.
type TRD struct {
	Name           string
	PrefixedName   string
	IsArray        bool
	SchemaLocation string
}

// PState aliases the driver's mutable parse state. pstate.State doesn't
// reference this package, so there's no cycle in taking it by name here
// rather than hand-duplicating its method set as a narrower interface —
// every concrete child parser needs the full cursor/infoset/PoU surface to
// do its job, the same way the teacher's own sub-parsers take a *State
// rather than a trimmed-down view of one.
type PState = pstate.State

// ChildKind discriminates the three closed shapes a ChildParser can take.
// The sequence driver dispatches on this rather than a type switch, since
// NonRepresentedChildParser adds no method of its own to distinguish it at
// the type-system level — it is a marker for "no representation in the
// stream", not a capability.
type ChildKind int

const (
	ScalarKind ChildKind = iota
	RepeatingKind
	NonRepresentedKind
)

func (k ChildKind) String() string {
	switch k {
	case ScalarKind:
		return "Scalar"
	case RepeatingKind:
		return "Repeating"
	case NonRepresentedKind:
		return "NonRepresented"
	default:
		return "Unknown"
	}
}

// ChildParser is implemented by every kind of sequence child.
type ChildParser interface {
	// ParseOne attempts exactly one occurrence of this child at the
	// current parse position.
	ParseOne(pstate *PState, roStatus status.ArrayIndexStatus) status.ParseAttemptStatus

	// PoUStatus is a static (construction-time) property: does this child
	// need a point of uncertainty when attempted speculatively?
	PoUStatus() PoUStatus

	// Kind identifies which of the three ChildParser shapes this is, for
	// the driver's dispatch.
	Kind() ChildKind

	// Context is an opaque identity used for PoU labeling and diagnostics.
	Context() interface{}

	// TRD returns the compiled static metadata for this term.
	TRD() TRD

	// FinalChecks runs trailing validations once the sequence has decided
	// this was the last child attempted, given the last and the
	// second-to-last ParseAttemptStatus observed for it.
	FinalChecks(pstate *PState, lastResult, priorResult status.ParseAttemptStatus)
}

// PoUStatus is a static property of each child parser: whether a point of
// uncertainty is ever needed to attempt it speculatively.
type PoUStatus int

const (
	NoPoU PoUStatus = iota
	HasPoU
)

// Scalar is a ChildParser that always exposes a static required/optional
// status, since scalars (unlike array elements) don't need a per-iteration
// computation.
type Scalar interface {
	ChildParser
	MaybeStaticRequiredOptionalStatus() status.ArrayIndexStatus
}

// RepeatingChildParser is a ChildParser whose term may occur multiple
// times: an array or an optional element modeled as a 0..1 array.
type RepeatingChildParser interface {
	ChildParser
	MinRepeats(pstate *PState) uint64
	MaxRepeats(pstate *PState) uint64
	IsBoundedMax() bool
	IsPositional() bool
	StartArray(pstate *PState)
	EndArray(pstate *PState)
	ArrayIndexStatus(min, max uint64, pstate *PState) status.ArrayIndexStatus
}

// NonRepresentedChildParser is a ChildParser with no syntax of its own: it
// runs for its side effects (e.g. a compiled assert or a newVariableInstance
// action) and is never consulted for a result, nor does it advance groupPos.
type NonRepresentedChildParser interface {
	ChildParser
}
