package childparsers

import (
	"github.com/flowdev/seqparse/infoset"
	"github.com/flowdev/seqparse/perr"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/status"
	"github.com/flowdev/seqparse/term"
)

// SeparatedField is a RepeatingChildParser over tokens split by Separator,
// the byte-level counterpart to the teacher's SeparatedMN (pcb/separatedmn.go):
// elements and a separator are attempted in strict alternation, and reaching
// the end without a separator before the next element ends the array rather
// than failing it, exactly as SeparatedMN "succeeds if the separator parser
// fails to match at the end".
type SeparatedField struct {
	Input          []byte
	Name           string
	Separator      byte
	SchemaLocation string
	MinOccurs      uint64
	MaxOccurs      uint64
	Positional     bool
	NeedsPoU       bool

	// CompiledIndex is this array's position among its sequence siblings as
	// compiled; see Field.CompiledIndex.
	CompiledIndex int
}

var _ term.RepeatingChildParser = (*SeparatedField)(nil)

func (s *SeparatedField) TRD() term.TRD {
	return term.TRD{Name: s.Name, IsArray: true, SchemaLocation: s.SchemaLocation}
}

func (s *SeparatedField) Context() interface{} { return s }

func (s *SeparatedField) Kind() term.ChildKind { return term.RepeatingKind }

func (s *SeparatedField) PoUStatus() term.PoUStatus {
	if s.NeedsPoU {
		return term.HasPoU
	}
	return term.NoPoU
}

func (s *SeparatedField) MinRepeats(_ *pstate.State) uint64 { return s.MinOccurs }
func (s *SeparatedField) MaxRepeats(_ *pstate.State) uint64 { return s.MaxOccurs }
func (s *SeparatedField) IsBoundedMax() bool                { return s.MaxOccurs > 0 }
func (s *SeparatedField) IsPositional() bool                { return s.Positional }

func (s *SeparatedField) StartArray(_ *pstate.State) {}
func (s *SeparatedField) EndArray(_ *pstate.State)   {}

func (s *SeparatedField) ArrayIndexStatus(min, max uint64, ps *pstate.State) status.ArrayIndexStatus {
	return status.RequiredOptionalStatus(min, max, ps.ArrayPos()+1)
}

// ParseOne reads one token. For every occurrence after the first, a
// Separator byte must precede the token; its absence ends the array with
// MissingSeparator rather than failing the element outright, since the
// surrounding processor state stays successful (spec.md's
// "MissingSeparator while processorStatus is Success" case).
func (s *SeparatedField) ParseOne(ps *pstate.State, roStatus status.ArrayIndexStatus) status.ParseAttemptStatus {
	startByte := int(ps.BitPos0b() / 8)

	if ps.ArrayPos() > 0 {
		if startByte >= len(s.Input) || s.Input[startByte] != s.Separator {
			ps.SetSuccess()
			return status.MissingSeparator
		}
		startByte++
	}

	end := startByte
	for end < len(s.Input) && s.Input[end] != s.Separator {
		end++
	}

	if end == startByte {
		if roStatus.IsOptional() {
			ps.SetSuccess()
			return status.AbsentRep
		}
		ps.SetFailure(perr.NewParseError(ps.BitPos0b(), "%s[%d]: empty token, no input remains", s.Name, ps.ArrayPos()))
		return status.MissingItem
	}

	value := append([]byte(nil), s.Input[startByte:end]...)
	ps.Infoset().Append(infoset.NewSimple(s.Name, value, s.CompiledIndex))
	ps.SetBitPos0b(uint64(end) * 8)
	ps.SetSuccess()
	return status.SuccessNormal
}

// FinalChecks has nothing of its own to validate once the array driver has
// run the occurrence loop to completion.
func (s *SeparatedField) FinalChecks(_ *pstate.State, _, _ status.ParseAttemptStatus) {}
