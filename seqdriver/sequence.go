package seqdriver

import (
	"github.com/flowdev/seqparse/perr"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/status"
	"github.com/flowdev/seqparse/term"
)

// Parse is the single exported entry point for this package: run children
// against state as one group, either in declared order (ordered=true) or
// as an unordered/choice group (ordered=false), and return state mutated in
// place to reflect the outcome. It mirrors the teacher's own top-level
// RunOnState entry points (parser.go) that wrap an internal combinator tree
// with the one piece of bookkeeping every caller needs regardless of which
// combinator ran: converting a fatal, non-recoverable condition into an
// ordinary failed state instead of letting it escape as a panic.
func Parse(state *pstate.State, children []term.ChildParser, ordered bool) (out *pstate.State) {
	out = state
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		tle, ok := r.(*perr.TunableLimitExceeded)
		if !ok {
			panic(r)
		}
		state.SetFailure(tle)
	}()

	sequenceDriver(state, children, ordered)
	return state
}

// sequenceDriver implements spec.md §4.5: the outer loop over an ordered or
// unordered group's children, balancing the group-index stack, delegating
// each child to arrayDriver or a direct parseOneInstance depending on its
// kind, ending early in Success when a scalar reports AbsentRep (or, in an
// unordered group, a missing or failed item), running FinalChecks on the
// last child attempted, and — for
// unordered groups only — flattening the infoset into compiled order once
// a discriminator has resolved which children actually appeared.
func sequenceDriver(state *pstate.State, children []term.ChildParser, ordered bool) {
	state.PushGroupIndex(0)
	defer state.PopGroupIndex()

	startLen := state.MarkInfosetIndexStart()
	state.SetGroupPos(1)

	var lastResult, priorResult status.ParseAttemptStatus
	var lastChild term.ChildParser
	isDone := false

	for _, child := range children {
		if state.IsFailure() {
			break
		}

		switch child.Kind() {
		case term.RepeatingKind:
			rc, ok := child.(term.RepeatingChildParser)
			if !ok {
				perr.Violate("child %s reports RepeatingKind but does not implement RepeatingChildParser", child.TRD().Name)
			}
			lastResult, priorResult = arrayDriver(state, ordered, rc)
			lastChild = child

		case term.NonRepresentedKind:
			child.ParseOne(state, status.ArrayRequired)
			// result intentionally not consulted; groupPos does not advance.

		case term.ScalarKind:
			sc, ok := child.(term.Scalar)
			if !ok {
				perr.Violate("child %s reports ScalarKind but does not implement Scalar", child.TRD().Name)
			}
			ro := sc.MaybeStaticRequiredOptionalStatus()
			priorResult = lastResult
			_, lastResult = parseOneInstance(state, ordered, sc, ro, ro)
			lastChild = child
			if lastResult.IsSuccess() || (lastResult.IsAbsent() && state.IsSuccess()) {
				state.SetGroupPos(state.GroupPos() + 1)
			}
			// Trailing-absent exit, and an unordered group's masked failure:
			// the sequence ends here in Success.
			if lastResult.IsAbsent() || (!ordered && (lastResult == status.MissingItem ||
				lastResult == status.MissingSeparator || lastResult == status.FailureUnspecified)) {
				state.SetSuccess()
				isDone = true
			}

		default:
			perr.Violate("unknown ChildKind %s for %s", child.Kind(), child.TRD().Name)
		}

		if !ordered && lastResult == status.UnorderedSeqDiscriminatedFailure {
			break
		}
		if isDone {
			break
		}
	}

	if lastChild != nil {
		lastChild.FinalChecks(state, lastResult, priorResult)
	}

	if !ordered {
		state.Infoset().FlattenAndValidate(startLen)
		return
	}

	// Ordered sequences need no trailing-absent pass of their own: an
	// optional scalar's AbsentRep never appends an infoset node (each
	// concrete child parser is responsible for that), so a sequence that
	// finishes in Success already has exactly the nodes its present
	// children produced, in the order they were attempted.
	if state.IsSuccess() && state.Infoset().Len() < startLen {
		perr.Violate("infoset shrank below sequence entry length without a PoU reset")
	}
}
