package seqdriver_test

import (
	"testing"
	"time"

	"github.com/flowdev/seqparse/childparsers"
	"github.com/flowdev/seqparse/infoset"
	"github.com/flowdev/seqparse/pstate"
	"github.com/flowdev/seqparse/seqdriver"
	"github.com/flowdev/seqparse/term"
	"github.com/stretchr/testify/assert"
)

func newArrayState() *pstate.State {
	return pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 50})
}

func TestArrayDriverStopsAtBoundedMaxWithTrailingAbsent(t *testing.T) {
	t.Parallel()

	r := &childparsers.RepeatingField{Input: []byte{1, 2}, Name: "e", WidthBytes: 1, MinOccurs: 1, MaxOccurs: 3}
	state := newArrayState()

	out := seqdriver.Parse(state, []term.ChildParser{r}, true)

	assert.True(t, out.IsSuccess())
	assert.Equal(t, 2, out.Infoset().Len())
	assert.Equal(t, uint64(16), out.BitPos0b())
}

func TestArrayDriverFailsWhenRequiredOccurrenceMissing(t *testing.T) {
	t.Parallel()

	r := &childparsers.RepeatingField{Input: []byte{}, Name: "e", WidthBytes: 1, MinOccurs: 2, MaxOccurs: 3}
	state := newArrayState()

	out := seqdriver.Parse(state, []term.ChildParser{r}, true)

	assert.True(t, out.IsFailure())
}

func TestArrayDriverUnboundedNoProgressTerminatesWithFailure(t *testing.T) {
	t.Parallel()

	r := &childparsers.RepeatingField{
		Input: []byte{}, Name: "e", WidthBytes: 1,
		MinOccurs: 0, MaxOccurs: 0, Positional: true,
	}
	state := newArrayState()

	done := make(chan *pstate.State, 1)
	go func() { done <- seqdriver.Parse(state, []term.ChildParser{r}, true) }()

	select {
	case out := <-done:
		assert.True(t, out.IsFailure())
		assert.Equal(t, 0, out.Infoset().Len())
	case <-time.After(time.Second):
		t.Fatal("arrayDriver did not terminate on a stuck unbounded array")
	}
}

func TestArrayDriverOccurrenceLimitIsFatalNotRecoverable(t *testing.T) {
	t.Parallel()

	input := make([]byte, 200)
	r := &childparsers.RepeatingField{Input: input, Name: "e", WidthBytes: 1, MinOccurs: 0, MaxOccurs: 0}
	state := pstate.New(infoset.NewComplex("root"), pstate.Tunables{MaxOccursBounds: 5})

	out := seqdriver.Parse(state, []term.ChildParser{r}, true)

	assert.True(t, out.IsFailure())
	assert.Equal(t, 0, out.PoUDepth())
	assert.Equal(t, 0, out.GroupIndexDepth())
}
