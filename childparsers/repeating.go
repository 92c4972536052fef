package childparsers

import (
	"github.com/flowdev/seqparse/infoset"
	"github.com/flowdev/seqparse/perr"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/status"
	"github.com/flowdev/seqparse/term"
)

// RepeatingField is a fixed-width element attempted between MinOccurs and
// MaxOccurs times, the array-driver counterpart to Field. MaxOccurs of 0
// means unbounded, mirroring the teacher's pcb.SeparatedMN treatment of an
// atMost of 0 as "no upper bound".
type RepeatingField struct {
	Input          []byte
	Name           string
	PrefixedName   string
	WidthBytes     int
	SchemaLocation string
	MinOccurs      uint64
	MaxOccurs      uint64
	Positional     bool
	NeedsPoU       bool

	// CompiledIndex is this array's own position among its sequence
	// siblings as compiled; every element it produces carries it, so an
	// unordered group's FlattenAndValidate keeps the whole array contiguous
	// relative to its other siblings regardless of attempt order.
	CompiledIndex int
}

var _ term.RepeatingChildParser = (*RepeatingField)(nil)

func (r *RepeatingField) TRD() term.TRD {
	return term.TRD{Name: r.Name, PrefixedName: r.PrefixedName, IsArray: true, SchemaLocation: r.SchemaLocation}
}

func (r *RepeatingField) Context() interface{} { return r }

func (r *RepeatingField) Kind() term.ChildKind { return term.RepeatingKind }

func (r *RepeatingField) PoUStatus() term.PoUStatus {
	if r.NeedsPoU {
		return term.HasPoU
	}
	return term.NoPoU
}

func (r *RepeatingField) MinRepeats(_ *pstate.State) uint64 { return r.MinOccurs }
func (r *RepeatingField) MaxRepeats(_ *pstate.State) uint64 { return r.MaxOccurs }
func (r *RepeatingField) IsBoundedMax() bool                { return r.MaxOccurs > 0 }
func (r *RepeatingField) IsPositional() bool                { return r.Positional }

// StartArray and EndArray have no bookkeeping of their own: the array has
// no infoset node distinct from its elements, which append directly to the
// enclosing sequence's complex node.
func (r *RepeatingField) StartArray(_ *pstate.State) {}
func (r *RepeatingField) EndArray(_ *pstate.State)   {}

func (r *RepeatingField) ArrayIndexStatus(min, max uint64, ps *pstate.State) status.ArrayIndexStatus {
	return status.RequiredOptionalStatus(min, max, ps.ArrayPos()+1)
}

// ParseOne reads one occurrence exactly like Field, tagging the resulting
// infoset node with this array's own compiled index so the whole array
// sorts as one contiguous run under FlattenAndValidate.
func (r *RepeatingField) ParseOne(ps *pstate.State, roStatus status.ArrayIndexStatus) status.ParseAttemptStatus {
	startByte := ps.BitPos0b() / 8
	end := startByte + uint64(r.WidthBytes)

	if end > uint64(len(r.Input)) {
		if roStatus.IsOptional() {
			ps.SetSuccess()
			return status.AbsentRep
		}
		ps.SetFailure(perr.NewParseError(ps.BitPos0b(), "%s[%d]: need %d bytes, only %d remain",
			r.Name, ps.ArrayPos(), r.WidthBytes, uint64(len(r.Input))-startByte))
		return status.MissingItem
	}

	value := append([]byte(nil), r.Input[startByte:end]...)
	ps.Infoset().Append(infoset.NewSimple(r.Name, value, r.CompiledIndex))
	ps.MoveBy(uint64(r.WidthBytes) * 8)
	ps.SetSuccess()
	return status.SuccessNormal
}

// FinalChecks has nothing of its own to validate once the array driver has
// already run the occurrence loop to completion.
func (r *RepeatingField) FinalChecks(_ *pstate.State, _, _ status.ParseAttemptStatus) {}
