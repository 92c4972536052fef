package perr_test

import (
	"testing"

	"github.com/flowdev/seqparse/perr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()

	err := perr.NewParseError(42, "missing %s", "separator")
	assert.Equal(t, "missing separator (at bit 42)", err.Error())
	assert.Equal(t, uint64(42), err.BitPos)
}

func TestTunableLimitExceededMessage(t *testing.T) {
	t.Parallel()

	err := &perr.TunableLimitExceeded{Bound: 10, ArrayPos: 11}
	assert.Contains(t, err.Error(), "arrayPos=11")
	assert.Contains(t, err.Error(), "maxOccursBounds=10")
}

func TestViolatePanics(t *testing.T) {
	t.Parallel()

	require.PanicsWithValue(t, &perr.InvariantViolation{Msg: "group stack unbalanced"}, func() {
		perr.Violate("group stack unbalanced")
	})
}
