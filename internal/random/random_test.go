package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_Deterministic(t *testing.T) {
	assert := assert.New(t)

	a, b := New(42), New(42)
	for range 64 {
		assert.Equal(a.Byte(), b.Byte())
	}
	assert.Equal(uint64(42), a.Seed())
}

func TestRandom_Reseed(t *testing.T) {
	assert := assert.New(t)

	r := New(7)
	first := make([]byte, 16)
	for i := range first {
		first[i] = r.Byte()
	}
	r.Reseed(7)
	for i := range first {
		assert.Equal(first[i], r.Byte(), "byte %d", i)
	}
}

func TestRandom_CoversByteRange(t *testing.T) {
	r := New(1)
	var seen [256]bool
	for range 1 << 14 {
		seen[r.Byte()] = true
	}
	for v, ok := range seen {
		assert.True(t, ok, "value %d never produced", v)
	}
}

func TestRandom_MarshalRoundTrip(t *testing.T) {
	require := require.New(t)

	r := New(99)
	r.Byte()
	r.Byte()
	state, err := r.MarshalBinary()
	require.NoError(err)

	want := []byte{r.Byte(), r.Byte(), r.Byte()}

	other := New(0)
	require.NoError(other.UnmarshalBinary(state))
	got := []byte{other.Byte(), other.Byte(), other.Byte()}
	require.Equal(want, got)
}
