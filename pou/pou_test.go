package pou_test

import (
	"testing"

	"github.com/flowdev/seqparse/perr"
	"github.com/flowdev/seqparse/pou"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkDiscardBalancesStack(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	m := s.Mark("elem", nil, pou.Snapshot{BitPos0b: 8})
	assert.Equal(t, 1, s.Depth())

	s.Discard(m)
	assert.Equal(t, 0, s.Depth())
}

func TestResetReturnsSnapshotAndPops(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	snap := pou.Snapshot{BitPos0b: 40, InfosetLen: 3, ArrayPos: 2, GroupPos: 1, GroupIndexDepth: 2}
	m := s.Mark("elem", nil, snap)

	got := s.Reset(m)
	assert.Equal(t, snap, got)
	assert.Equal(t, 0, s.Depth())
}

func TestResolveMarksAsDiscriminated(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	m := s.Mark("elem", nil, pou.Snapshot{})
	assert.False(t, m.IsResolved())

	m.Resolve()
	assert.True(t, m.IsResolved())

	s.Discard(m)
}

func TestResolveTopResolvesInnermostMark(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	outer := s.Mark("outer", nil, pou.Snapshot{})
	inner := s.Mark("inner", nil, pou.Snapshot{})

	s.ResolveTop()

	assert.True(t, inner.IsResolved())
	assert.False(t, outer.IsResolved())

	s.Discard(inner)
	s.Discard(outer)
}

func TestResolveTopOnEmptyStackIsNoop(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	assert.NotPanics(t, s.ResolveTop)
}

func TestMisNestedDiscardPanics(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	m1 := s.Mark("outer", nil, pou.Snapshot{})
	m2 := s.Mark("inner", nil, pou.Snapshot{})
	_ = m2

	require.Panics(t, func() {
		s.Discard(m1) // m2 is on top; discarding m1 out of order is a bug
	})
}

func TestDiscardUnknownMarkPanicsWithInvariantViolation(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	stray := &pou.Mark{}

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*perr.InvariantViolation)
		assert.True(t, ok)
	}()
	s.Discard(stray)
}

func TestWithPointOfUncertaintyReleasesOnNormalReturnWithoutDecision(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	pou.WithPointOfUncertainty(s, "elem", nil, pou.Snapshot{}, func(m *pou.Mark) {
		// body forgets to discard/reset explicitly
	})
	assert.Equal(t, 0, s.Depth())
}

func TestWithPointOfUncertaintyHonorsExplicitDiscard(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	var sawMark *pou.Mark
	pou.WithPointOfUncertainty(s, "elem", nil, pou.Snapshot{}, func(m *pou.Mark) {
		sawMark = m
		s.Discard(m)
	})
	assert.Equal(t, 0, s.Depth())
	assert.NotNil(t, sawMark)
}

func TestWithPointOfUncertaintyReleasesOnPanic(t *testing.T) {
	t.Parallel()

	s := pou.NewStack()
	func() {
		defer func() { _ = recover() }()
		pou.WithPointOfUncertainty(s, "elem", nil, pou.Snapshot{}, func(m *pou.Mark) {
			panic("child parser blew up")
		})
	}()
	assert.Equal(t, 0, s.Depth())
}
