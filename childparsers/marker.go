package childparsers

import (
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/status"
	"github.com/flowdev/seqparse/term"
)

// Marker is a NonRepresentedChildParser: it has no syntax of its own and
// runs purely for a side effect, the way a compiled dfdl:setVariable or
// dfdl:assert action sits in a sequence's child list without ever
// consuming input or producing an infoset node. Effect is called once,
// unconditionally, whenever the sequence driver reaches this child.
type Marker struct {
	Name           string
	SchemaLocation string
	Effect         func(ps *pstate.State)
}

var _ term.NonRepresentedChildParser = (*Marker)(nil)

func (m *Marker) TRD() term.TRD {
	return term.TRD{Name: m.Name, IsArray: false, SchemaLocation: m.SchemaLocation}
}

func (m *Marker) Context() interface{} { return m }

func (m *Marker) Kind() term.ChildKind { return term.NonRepresentedKind }

// PoUStatus is always NoPoU: a non-represented step is never attempted
// speculatively, since its result is never consulted by the driver.
func (m *Marker) PoUStatus() term.PoUStatus { return term.NoPoU }

// ParseOne runs Effect and always reports success; the driver never
// consults this return value for a NonRepresentedChildParser.
func (m *Marker) ParseOne(ps *pstate.State, _ status.ArrayIndexStatus) status.ParseAttemptStatus {
	if m.Effect != nil {
		m.Effect(ps)
	}
	return status.SuccessNormal
}

// FinalChecks is a no-op: a marker is never the child FinalChecks is run
// against, since the driver only calls FinalChecks on the last Scalar or
// RepeatingChildParser attempted.
func (m *Marker) FinalChecks(_ *pstate.State, _, _ status.ParseAttemptStatus) {}
