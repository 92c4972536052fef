package childparsers

import (
	"bytes"

	"github.com/flowdev/seqparse/infoset"
	"github.com/flowdev/seqparse/perr"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/status"
	"github.com/flowdev/seqparse/term"
)

// DiscriminatedField is a Scalar that reads a fixed-byte discriminator tag
// ahead of a fixed-width payload, the way a DFDL choice branch consumes its
// own initiator before the driver is allowed to give up on the branch. A tag
// mismatch is an ordinary AbsentRep, letting the point of uncertainty it ran
// under roll back cleanly. A tag match resolves that point of uncertainty
// before the payload is read, so a truncated payload becomes a discriminated
// failure instead of being silently swallowed.
type DiscriminatedField struct {
	Input          []byte
	Name           string
	PrefixedName   string
	Tag            []byte
	WidthBytes     int
	SchemaLocation string
	NeedsPoU       bool

	CompiledIndex int
}

var _ term.Scalar = (*DiscriminatedField)(nil)

func (d *DiscriminatedField) TRD() term.TRD {
	return term.TRD{Name: d.Name, PrefixedName: d.PrefixedName, IsArray: false, SchemaLocation: d.SchemaLocation}
}

func (d *DiscriminatedField) Context() interface{} { return d }

func (d *DiscriminatedField) Kind() term.ChildKind { return term.ScalarKind }

func (d *DiscriminatedField) PoUStatus() term.PoUStatus {
	if d.NeedsPoU {
		return term.HasPoU
	}
	return term.NoPoU
}

// MaybeStaticRequiredOptionalStatus is always optional: a discriminated
// alternative is by nature a speculative attempt among choices, never a
// position the driver can statically require.
func (d *DiscriminatedField) MaybeStaticRequiredOptionalStatus() status.ArrayIndexStatus {
	return status.ArrayOptional
}

// ParseOne matches Tag at the current byte-aligned cursor. A mismatch (or a
// short read) is AbsentRep: this alternative simply wasn't chosen. A match
// resolves the active point of uncertainty and then reads WidthBytes of
// payload; running out of input past that point is a discriminated failure,
// not a quiet rollback.
func (d *DiscriminatedField) ParseOne(ps *pstate.State, roStatus status.ArrayIndexStatus) status.ParseAttemptStatus {
	startByte := ps.BitPos0b() / 8
	tagEnd := startByte + uint64(len(d.Tag))

	if tagEnd > uint64(len(d.Input)) || !bytes.Equal(d.Input[startByte:tagEnd], d.Tag) {
		ps.SetSuccess()
		return status.AbsentRep
	}

	ps.ResolveTopPoU()

	payloadStart := tagEnd
	payloadEnd := payloadStart + uint64(d.WidthBytes)
	if payloadEnd > uint64(len(d.Input)) {
		ps.SetFailure(perr.NewParseError(ps.BitPos0b(), "field %s: matched tag but need %d payload bytes, only %d remain",
			d.Name, d.WidthBytes, uint64(len(d.Input))-payloadStart))
		return status.MissingItem
	}

	value := append([]byte(nil), d.Input[payloadStart:payloadEnd]...)
	ps.Infoset().Append(infoset.NewSimple(d.Name, value, d.CompiledIndex))
	ps.SetBitPos0b(payloadEnd * 8)
	ps.SetSuccess()
	return status.SuccessNormal
}

// FinalChecks has nothing to validate for a discriminated field.
func (d *DiscriminatedField) FinalChecks(_ *pstate.State, _, _ status.ParseAttemptStatus) {}
