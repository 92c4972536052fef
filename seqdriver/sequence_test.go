package seqdriver_test

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

func TestOrderedSequenceOfRequiredFieldsSucceeds(t *testing.T) {
	t.Parallel()

	input := []byte{0xAA, 0xBB, 0xCC}
	a := &childparsers.Field{Input: input, Name: "a", WidthBytes: 1, Required: true}
	b := &childparsers.Field{Input: input, Name: "b", WidthBytes: 2, Required: true}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{a, b}, true)

	require.True(t, out.IsSuccess())
	assert.Equal(t, 2, out.Infoset().Len())
	assert.Equal(t, uint64(24), out.BitPos0b())
	assert.Equal(t, 0, out.GroupIndexDepth())
}

func TestOrderedSequenceRequiredMissingFails(t *testing.T) {
	t.Parallel()

	input := []byte{0x01}
	a := &childparsers.Field{Input: input, Name: "a", WidthBytes: 1, Required: true}
	b := &childparsers.Field{Input: input, Name: "b", WidthBytes: 4, Required: true}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{a, b}, true)

	assert.True(t, out.IsFailure())
	assert.Equal(t, 0, out.GroupIndexDepth())
}

func TestOrderedSequenceTrailingOptionalAbsentStillSucceeds(t *testing.T) {
	t.Parallel()

	input := []byte{0x01}
	a := &childparsers.Field{Input: input, Name: "a", WidthBytes: 1, Required: true}
	b := &childparsers.Field{Input: input, Name: "b", WidthBytes: 4, Required: false}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{a, b}, true)

	require.True(t, out.IsSuccess())
	assert.Equal(t, 1, out.Infoset().Len())
}

func TestOptionalFieldWithPoURollsBackOnFailure(t *testing.T) {
	t.Parallel()

	input := []byte{0x01}
	a := &childparsers.Field{Input: input, Name: "a", WidthBytes: 1, Required: true}
	b := &childparsers.Field{Input: input, Name: "b", WidthBytes: 4, Required: false, NeedsPoU: true}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{a, b}, true)

	require.True(t, out.IsSuccess())
	assert.Equal(t, uint64(8), out.BitPos0b())
	assert.Equal(t, 1, out.Infoset().Len())
}

func TestMarkerRunsWithoutAdvancingGroupPosOrInfoset(t *testing.T) {
	t.Parallel()

	input := []byte{0x01, 0x02}
	a := &childparsers.Field{Input: input, Name: "a", WidthBytes: 1, Required: true}
	var sawEffect bool
	m := &childparsers.Marker{Name: "effect", Effect: func(_ *pstate.State) { sawEffect = true }}
	b := &childparsers.Field{Input: input, Name: "b", WidthBytes: 1, Required: true}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{a, m, b}, true)

	require.True(t, out.IsSuccess())
	assert.True(t, sawEffect)
	assert.Equal(t, 2, out.Infoset().Len())
	// groupPos starts at 1; a and b each advance it, the marker does not.
	assert.Equal(t, uint64(3), out.GroupPos())
}

func TestUnorderedGroupFlattensToCompiledOrderRegardlessOfAttemptOrder(t *testing.T) {
	t.Parallel()

	// "second" is attempted first but compiled second; the unordered group
	// must still flatten the infoset back to compiled (childIndex) order.
	input := []byte{0x02, 0x01}
	second := &childparsers.Field{Input: input, Name: "second", WidthBytes: 1, Required: false, NeedsPoU: true, CompiledIndex: 1}
	first := &childparsers.Field{Input: input, Name: "first", WidthBytes: 1, Required: false, NeedsPoU: true, CompiledIndex: 0}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 10})

	out := seqdriver.Parse(state, []term.ChildParser{second, first}, false)

	require.True(t, out.IsSuccess())
	require.Equal(t, 2, out.Infoset().Len())
	simple0, ok := out.Infoset().Children()[0].(*infoset.Simple)
	require.True(t, ok)
	assert.Equal(t, "first", simple0.Name)
}
