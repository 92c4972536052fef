// Package seqdriver implements the sequence combinator parser: the
// SequenceDriver outer loop, the ArrayDriver inner loop for repeating
// children, and the parseOneInstance speculative-attempt wrapper that ties
// both to the PoU discipline in package pou. The shape is grounded in the
// teacher's own combinator wiring — pcb/sequence.go's "run each sub-parser
// against remaining state, bail on first failure" Sequence, and
// pcb/manymn.go's SeparatedMN occurrence loop with its atLeast/atMost
// bounds and forward-progress guard — generalized from a flat list of
// homogeneous sub-parsers to the polymorphic, speculative, PoU-rolling-back
// sequence this engine's domain requires.
package seqdriver

import (
	"github.com/flowdev/seqparse/perr"
	"github.com/flowdev/seqparse/pou"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/status"
	"github.com/flowdev/seqparse/term"
)

// needsPoU implements spec.md §4.4: ordered sequences wrap a speculative
// attempt in a point of uncertainty only when the child itself declares it
// needs one and the attempt isn't already required at this position.
// Unordered sequences defer PoU to the choice layer above this driver.
func needsPoU(isOrdered bool, p term.ChildParser, roStatus status.ArrayIndexStatus) bool {
	return isOrdered && p.PoUStatus() == term.HasPoU && !roStatus.IsRequired()
}

// parseOneInstance attempts exactly one occurrence of p, wrapping it in a
// point of uncertainty when needed. It returns the (possibly forced-Done)
// array index status and the ParseAttemptStatus observed.
func parseOneInstance(
	state *pstate.State,
	isOrdered bool,
	p term.ChildParser,
	roStatus status.ArrayIndexStatus,
	ais status.ArrayIndexStatus,
) (status.ArrayIndexStatus, status.ParseAttemptStatus) {
	if !needsPoU(isOrdered, p, roStatus) {
		return parseOneInstanceWithMaybePoU(state, p, roStatus, ais, nil)
	}

	mark := state.Mark(describeLabel(p), p.Context())
	depth := state.PoUDepth()
	defer func() {
		// Release the mark on any path that left it open (a panic such as
		// checkN's, or a MissingSeparator result) by discarding it.
		if state.PoUDepth() == depth {
			state.Discard(mark)
		}
	}()
	return parseOneInstanceWithMaybePoU(state, p, roStatus, ais, mark)
}

func describeLabel(p term.ChildParser) string {
	trd := p.TRD()
	if trd.PrefixedName != "" {
		return trd.PrefixedName
	}
	return trd.Name
}

// parseOneInstanceWithMaybePoU implements the dispatch table of spec.md
// §4.4. mark is nil when this attempt doesn't need a point of uncertainty
// (required positions, or unordered sequences which handle PoU at the
// choice layer above this driver).
func parseOneInstanceWithMaybePoU(
	state *pstate.State,
	p term.ChildParser,
	roStatus status.ArrayIndexStatus,
	ais status.ArrayIndexStatus,
	mark *pou.Mark,
) (status.ArrayIndexStatus, status.ParseAttemptStatus) {
	checkN(state)

	priorPos := state.BitPos0b()
	result := p.ParseOne(state, roStatus)
	currPos := state.BitPos0b()

	resolved := mark == nil || mark.IsResolved()

	assertStatusBiconditional(state, result)

	switch {
	case result.IsSuccess():
		if mark != nil {
			state.Discard(mark)
		}
		return ais, result

	case result.IsAbsent():
		if mark != nil {
			if resolved {
				perr.Violate("resolved PoU must not yield AbsentRep")
			}
			state.Reset(mark)
			return ais, status.AbsentRep
		}
		state.SetBitPos0b(priorPos)
		return ais, status.AbsentRep

	case result.IsMissingSeparator() && state.IsSuccess():
		return status.ArrayDone, result

	case result.IsFailed():
		if !state.IsFailure() {
			perr.Violate("failed ParseAttemptStatus with successful processorStatus")
		}
		if mark != nil && !resolved && roStatus.IsOptional() {
			state.Reset(mark)
			return status.ArrayDone, status.AbsentRep
		}
		if mark != nil && resolved {
			state.Discard(mark)
			state.SetFailure(perr.NewParseError(currPos, "discriminated failure in %s", describeLabel(p)))
			return status.ArrayDone, status.UnorderedSeqDiscriminatedFailure
		}
		if p.TRD().IsArray {
			cause := state.Cause()
			causeMsg := "unknown cause"
			if cause != nil {
				causeMsg = cause.Error()
			}
			state.SetFailure(perr.NewParseError(currPos, "Failed to populate %s[%d]. Cause: %s",
				describeLabel(p), state.ArrayPos(), causeMsg))
		}
		return status.ArrayDone, result

	default:
		perr.Violate("parseOneInstanceWithMaybePoU: unreachable ParseAttemptStatus %s", result)
		return status.ArrayDone, result // unreachable
	}
}

// checkN enforces the occurrence-limit safety cap (spec.md §4.3). It panics
// with *perr.TunableLimitExceeded — a fatal, non-PoU-recoverable condition —
// caught only by the top-level Parse entry point, so it unwinds past any
// open PoU (released by their own deferred cleanup) without ever being
// mistaken for an ordinary recoverable ParseError.
func checkN(state *pstate.State) {
	bound := state.Tunable().MaxOccursBounds
	if bound > 0 && state.ArrayPos() > bound {
		panic(&perr.TunableLimitExceeded{Bound: bound, ArrayPos: state.ArrayPos()})
	}
}

// assertStatusBiconditional enforces spec.md §3's biconditional: a failure
// implies Failure processor status and a failed attempt status; a success
// implies Success processor status and a success-or-absent attempt status.
// MissingSeparator is exempt: a child reports it with either processor
// status, and the dispatch handles both.
func assertStatusBiconditional(state *pstate.State, result status.ParseAttemptStatus) {
	if result.IsMissingSeparator() {
		return
	}
	successLike := result.IsSuccess() || result.IsAbsent()
	if state.IsSuccess() != successLike {
		perr.Violate(
			"status biconditional violated: processorStatus.isSuccess=%v but result=%s",
			state.IsSuccess(), result,
		)
	}
}
