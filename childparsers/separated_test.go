package childparsers_test

import (
	"testing"

	"github.com/flowdev/seqparse/childparsers"
	"github.com/flowdev/seqparse/infoset"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/seqdriver"
	"github.com/flowdev/seqparse/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeparatedFieldReadsCommaDelimitedTokens(t *testing.T) {
	t.Parallel()

	s := &childparsers.SeparatedField{Input: []byte("aa,bb,cc"), Name: "tok", Separator: ',', MinOccurs: 0, MaxOccurs: 0}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{s}, true)

	require.True(t, out.IsSuccess())
	require.Equal(t, 3, out.Infoset().Len())
	first := out.Infoset().Children()[0].(*infoset.Simple)
	assert.Equal(t, "aa", string(first.Value.([]byte)))
	last := out.Infoset().Children()[2].(*infoset.Simple)
	assert.Equal(t, "cc", string(last.Value.([]byte)))
}

func TestSeparatedFieldEndsArrayOnMissingSeparatorWithoutFailing(t *testing.T) {
	t.Parallel()

	// No trailing separator after "bb": the array simply ends there.
	s := &childparsers.SeparatedField{Input: []byte("aa,bb"), Name: "tok", Separator: ',', MinOccurs: 0, MaxOccurs: 0}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{s}, true)

	require.True(t, out.IsSuccess())
	assert.Equal(t, 2, out.Infoset().Len())
	assert.Equal(t, uint64(5*8), out.BitPos0b())
}

func TestSeparatedFieldFailsWhenRequiredTokenMissing(t *testing.T) {
	t.Parallel()

	s := &childparsers.SeparatedField{Input: []byte(""), Name: "tok", Separator: ',', MinOccurs: 1, MaxOccurs: 0}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{s}, true)

	assert.True(t, out.IsFailure())
}
