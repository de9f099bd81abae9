package ringbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoundsUpToPageSize(t *testing.T) {
	r := New(10)
	assert.GreaterOrEqual(t, r.Capacity(), 10)
	assert.Equal(t, r.Capacity(), pageSize())
}

func TestWriteReadRoundTrip(t *testing.T) {
	r := New(64)
	require.Equal(t, r.Capacity(), r.Writable())
	require.Equal(t, 0, r.Readable())

	dst := r.WriteSlice(4)
	copy(dst, []byte{1, 2, 3, 4})
	r.AdvanceWrite(4)

	assert.Equal(t, 4, r.Readable())
	assert.Equal(t, r.Capacity()-4, r.Writable())

	src := r.ReadSlice(4)
	assert.Equal(t, []byte{1, 2, 3, 4}, src)
	r.AdvanceRead(4)

	assert.Equal(t, 0, r.Readable())
	assert.Equal(t, r.Capacity(), r.Writable())
}

func TestWraparoundSplitsIntoTwoSlices(t *testing.T) {
	r := New(16) // rounds up to page size, but mask logic is size-independent
	cap := r.Capacity()

	// push the write cursor to one byte before the wrap point
	r.AdvanceWrite(cap - 1)
	r.AdvanceRead(cap - 1)

	first := r.WriteSlice(r.Writable())
	require.Len(t, first, 1) // only one byte until the backing array wraps
	r.AdvanceWrite(1)

	second := r.WriteSlice(r.Writable())
	require.True(t, len(second) > 0)
}

func TestAdvanceBeyondAvailabilityPanics(t *testing.T) {
	r := New(16)
	assert.Panics(t, func() { r.AdvanceWrite(r.Capacity() + 1) })
	assert.Panics(t, func() { r.AdvanceRead(1) })
}

func TestResetClearsCounters(t *testing.T) {
	r := New(16)
	r.AdvanceWrite(4)
	r.AdvanceRead(2)
	r.Reset()
	assert.Equal(t, 0, r.Readable())
	assert.Equal(t, r.Capacity(), r.Writable())
}
