// Package status implements the closed status algebra the sequence driver
// reasons about: ParseAttemptStatus and ArrayIndexStatus. Both are modeled
// as small integer sum types with predicate methods, the same shape the
// teacher uses for its own State.mode (see the parsingMode-style enum
// referenced from flowdev/comb's State and its ParsingMode counterpart in
// the sibling ole108/parcomb state.go) rather than a class hierarchy with
// runtime type assertions.
package status

// ParseAttemptStatus is the outcome of a single child-parser attempt.
type ParseAttemptStatus int

const (
	Uninitialized ParseAttemptStatus = iota

	// Success* family (SuccessParseAttemptStatus).
	SuccessNormal
	SuccessEmptyRep

	AbsentRep
	MissingItem
	MissingSeparator
	UnorderedSeqDiscriminatedFailure
	FailureUnspecified
)

func (s ParseAttemptStatus) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case SuccessNormal:
		return "SuccessNormal"
	case SuccessEmptyRep:
		return "SuccessEmptyRep"
	case AbsentRep:
		return "AbsentRep"
	case MissingItem:
		return "MissingItem"
	case MissingSeparator:
		return "MissingSeparator"
	case UnorderedSeqDiscriminatedFailure:
		return "UnorderedSeqDiscriminatedFailure"
	case FailureUnspecified:
		return "FailureUnspecified"
	default:
		return "Unknown"
	}
}

// IsSuccess is true for any member of the SuccessParseAttemptStatus family.
func (s ParseAttemptStatus) IsSuccess() bool {
	return s == SuccessNormal || s == SuccessEmptyRep
}

// IsAbsent is true iff the child decided it was not present.
func (s ParseAttemptStatus) IsAbsent() bool {
	return s == AbsentRep
}

// IsMissingSeparator is true iff the attempt failed specifically because an
// expected separator was missing while the surrounding state is otherwise
// successful.
func (s ParseAttemptStatus) IsMissingSeparator() bool {
	return s == MissingSeparator
}

// IsFailed is any non-success, non-absent variant.
func (s ParseAttemptStatus) IsFailed() bool {
	return !s.IsSuccess() && !s.IsAbsent()
}

// ArrayIndexStatus is the per-iteration status the array driver computes
// from (min, max, currentOccurrence) plus speculative context.
type ArrayIndexStatus int

const (
	ArrayUninitialized ArrayIndexStatus = iota
	ArrayRequired
	ArrayOptional
	ArrayDone
)

func (a ArrayIndexStatus) String() string {
	switch a {
	case ArrayUninitialized:
		return "Uninitialized"
	case ArrayRequired:
		return "Required"
	case ArrayOptional:
		return "Optional"
	case ArrayDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// IsDone is true once the array driver should stop iterating.
func (a ArrayIndexStatus) IsDone() bool {
	return a == ArrayDone
}

// IsRequired implements RequiredOptionalStatus for the Required member.
func (a ArrayIndexStatus) IsRequired() bool {
	return a == ArrayRequired
}

// IsOptional implements RequiredOptionalStatus for the Optional member.
func (a ArrayIndexStatus) IsOptional() bool {
	return a == ArrayOptional
}

// RequiredOptionalStatus computes the occurrence-boundedness of the current
// iteration from the compiled min/max occurs and the 1-based occurrence
// number being attempted.
func RequiredOptionalStatus(min, max, occurrence uint64) ArrayIndexStatus {
	if occurrence <= min {
		return ArrayRequired
	}
	if max == 0 || occurrence <= max {
		return ArrayOptional
	}
	return ArrayDone
}
