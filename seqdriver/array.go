package seqdriver

import (
	"github.com/flowdev/seqparse/perr"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/status"
	"github.com/flowdev/seqparse/term"
)

// arrayDriver runs the occurrence loop for a single RepeatingChildParser:
// spec.md §4.3. It is the direct generalization of the teacher's
// pcb/manymn.go SeparatedMN loop — atLeast/atMost bounds, a running parse
// count, and a "no progress since last successful iteration" safety
// valve — except here each iteration is a full speculative attempt that may
// open and resolve its own point of uncertainty, and the loop tracks two
// independent counters (arrayPos for this array's own occurrence count,
// groupPos for the enclosing sequence's positional slot) rather than one.
//
// It returns the last and second-to-last ParseAttemptStatus observed, for
// the caller to hand to FinalChecks exactly as a scalar child's own attempt
// would be.
func arrayDriver(state *pstate.State, isOrdered bool, p term.RepeatingChildParser) (last, prior status.ParseAttemptStatus) {
	p.StartArray(state)
	defer p.EndArray(state)

	state.SetArrayPos(0)
	last, prior = status.Uninitialized, status.Uninitialized

	min := p.MinRepeats(state)
	max := p.MaxRepeats(state)

	for {
		ais := p.ArrayIndexStatus(min, max, state)
		if state.IsFailure() || ais.IsDone() {
			break
		}

		priorPos := state.BitPos0b()
		priorGroupPos := state.GroupPos()

		var result status.ParseAttemptStatus
		ais, result = parseOneInstance(state, isOrdered, p, ais, ais)
		prior, last = last, result

		currPos := state.BitPos0b()

		if state.IsSuccess() && !p.IsBoundedMax() && (result.IsSuccess() || result.IsAbsent()) {
			ais = checkForwardProgress(state, currPos, priorPos, ais)
		}

		advancesGroupPos := currPos > priorPos ||
			result.IsSuccess() ||
			(result.IsAbsent() && state.IsSuccess() && p.IsPositional())
		if advancesGroupPos {
			state.SetGroupPos(priorGroupPos + 1)
		}

		if ais.IsDone() {
			break
		}
		state.SetArrayPos(state.ArrayPos() + 1)
	}

	return last, prior
}

// checkForwardProgress implements spec.md §4.3's safety valve: an
// unbounded-max array that consumes no input and appends nothing on a
// successful or absent attempt, after already having advanced once, is
// stuck — force the array Done and surface a ParseError rather than loop
// forever. Grounded in multi.go's Many0/Many1 "parser consumed no input"
// guard.
func checkForwardProgress(state *pstate.State, currPos, priorPos uint64, ais status.ArrayIndexStatus) status.ArrayIndexStatus {
	if currPos == priorPos && state.GroupPos() > 1 {
		state.SetFailure(perr.NewParseError(currPos, "no forward progress in unbounded array"))
		return status.ArrayDone
	}
	return ais
}
