package seqdriver_test

import (
	"testing"

	"github.com/flowdev/seqparse/childparsers"
	"github.com/flowdev/seqparse/infoset"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/seqdriver"
	"github.com/flowdev/seqparse/status"
	"github.com/flowdev/seqparse/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredFieldNeverOpensAPoU(t *testing.T) {
	t.Parallel()

	f := &childparsers.Field{Input: []byte{1}, Name: "a", WidthBytes: 1, Required: true, NeedsPoU: true}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{f}, true)

	require.True(t, out.IsSuccess())
	assert.Equal(t, 0, out.PoUDepth())
}

func TestOptionalFieldWithoutPoUStillAbsentsCleanly(t *testing.T) {
	t.Parallel()

	f := &childparsers.Field{Input: []byte{}, Name: "a", WidthBytes: 1, Required: false, NeedsPoU: false}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{f}, true)

	require.True(t, out.IsSuccess())
	assert.Equal(t, 0, out.Infoset().Len())
	assert.Equal(t, 0, out.PoUDepth())
}

func TestStatusBiconditionalViolationPanics(t *testing.T) {
	t.Parallel()

	bad := &lyingChildParser{}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	assert.Panics(t, func() {
		seqdriver.Parse(state, []term.ChildParser{bad}, true)
	})
}

// lyingChildParser reports SuccessNormal while leaving the processor state
// in Failure, violating spec.md's status biconditional on purpose to
// exercise the driver's own self-check.
type lyingChildParser struct{}

func (l *lyingChildParser) ParseOne(ps *pstate.State, _ status.ArrayIndexStatus) status.ParseAttemptStatus {
	ps.SetFailure(assertionError{})
	return status.SuccessNormal
}
func (l *lyingChildParser) PoUStatus() term.PoUStatus { return term.NoPoU }
func (l *lyingChildParser) Kind() term.ChildKind      { return term.ScalarKind }
func (l *lyingChildParser) Context() interface{}      { return l }
func (l *lyingChildParser) TRD() term.TRD             { return term.TRD{Name: "lying"} }
func (l *lyingChildParser) FinalChecks(*pstate.State, status.ParseAttemptStatus, status.ParseAttemptStatus) {
}
func (l *lyingChildParser) MaybeStaticRequiredOptionalStatus() status.ArrayIndexStatus {
	return status.ArrayRequired
}

type assertionError struct{}

func (assertionError) Error() string { return "forced failure" }

var _ term.Scalar = (*lyingChildParser)(nil)
