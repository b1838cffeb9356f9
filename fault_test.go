package petalcluster

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatch_ReturnsFault(t *testing.T) {
	cause := errors.New("bad input")
	err := Catch(func() { fault(FaultShape, cause) })
	require.Error(t, err)

	var f *Fault
	require.True(t, errors.As(err, &f))
	assert.Equal(t, FaultShape, f.Kind)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "shape fault")
	assert.Contains(t, err.Error(), "bad input")
}

func TestCatch_NoPanic(t *testing.T) {
	ran := false
	assert.NoError(t, Catch(func() { ran = true }))
	assert.True(t, ran)
}

func TestCatch_RepanicsOtherPanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_ = Catch(func() { panic("boom") })
	})
}

func TestIsFault(t *testing.T) {
	err := Catch(func() { fault(FaultMetric, errors.New("x")) })
	assert.True(t, IsFault(err, FaultMetric))
	assert.False(t, IsFault(err, FaultShape))
	assert.False(t, IsFault(errors.New("plain"), FaultMetric))
	assert.True(t, IsFault(errors.Wrap(err, "context"), FaultMetric))
}

func TestFaultKind_String(t *testing.T) {
	assert.Equal(t, "label name", FaultLabelName.String())
	assert.Equal(t, "FaultKind(42)", FaultKind(42).String())
}
