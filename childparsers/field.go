// Package childparsers provides concrete ChildParser implementations that
// exercise package seqdriver end to end: Field (a fixed-width scalar),
// RepeatingField (Field repeated within min/max occurs bounds), and Marker
// (a non-represented side-effecting step). They play the same role the
// teacher's characters.go and bytes.go combinators play for gomme/comb —
// small, concrete leaves that a combinator tree is built out of — adapted
// from "parse this shape of rune/byte run" to "populate this one infoset
// node from a fixed-width byte-aligned slice of the input."
package childparsers

import (
	"github.com/flowdev/seqparse/infoset"
	"github.com/flowdev/seqparse/perr"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/status"
	"github.com/flowdev/seqparse/term"
)

// Field is a fixed-width, byte-aligned scalar child parser: the simplest
// possible Scalar, grounded in the teacher's Bytes (bytes.go) which reads a
// fixed count of bytes off the front of the remaining input.
type Field struct {
	Input          []byte
	Name           string
	PrefixedName   string
	WidthBytes     int
	SchemaLocation string
	Required       bool
	NeedsPoU       bool

	// CompiledIndex is this field's position among its sequence siblings as
	// compiled, used to tag its infoset node for FlattenAndValidate. It is
	// independent of attempt order, which in an unordered group need not
	// match compiled order.
	CompiledIndex int
}

var _ term.Scalar = (*Field)(nil)

func (f *Field) TRD() term.TRD {
	return term.TRD{Name: f.Name, PrefixedName: f.PrefixedName, IsArray: false, SchemaLocation: f.SchemaLocation}
}

func (f *Field) Context() interface{} { return f }

func (f *Field) Kind() term.ChildKind { return term.ScalarKind }

func (f *Field) PoUStatus() term.PoUStatus {
	if f.NeedsPoU {
		return term.HasPoU
	}
	return term.NoPoU
}

func (f *Field) MaybeStaticRequiredOptionalStatus() status.ArrayIndexStatus {
	if f.Required {
		return status.ArrayRequired
	}
	return status.ArrayOptional
}

// ParseOne reads WidthBytes bytes starting at the current byte-aligned
// cursor. Running off the end of Input is a MissingItem when required, an
// AbsentRep when optional — the same required/optional fork the teacher's
// pcb.Optional wraps around an inner parser's failure.
func (f *Field) ParseOne(ps *pstate.State, roStatus status.ArrayIndexStatus) status.ParseAttemptStatus {
	startByte := ps.BitPos0b() / 8
	end := startByte + uint64(f.WidthBytes)

	if end > uint64(len(f.Input)) {
		if roStatus.IsOptional() {
			ps.SetSuccess()
			return status.AbsentRep
		}
		ps.SetFailure(perr.NewParseError(ps.BitPos0b(), "field %s: need %d bytes, only %d remain", f.Name, f.WidthBytes, uint64(len(f.Input))-startByte))
		return status.MissingItem
	}

	value := append([]byte(nil), f.Input[startByte:end]...)
	ps.Infoset().Append(infoset.NewSimple(f.Name, value, f.CompiledIndex))
	ps.MoveBy(uint64(f.WidthBytes) * 8)
	ps.SetSuccess()
	return status.SuccessNormal
}

// FinalChecks has nothing to validate for a plain fixed-width field.
func (f *Field) FinalChecks(_ *pstate.State, _, _ status.ParseAttemptStatus) {}
