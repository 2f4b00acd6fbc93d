package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoundsUpToPowerOfTwo(t *testing.T) {
	s := New(100)
	assert.Equal(t, 128, s.Width())
}

func TestFrequencyStartsAtZero(t *testing.T) {
	s := New(64)
	assert.Equal(t, 0, s.Frequency(12345))
}

func TestFrequencyRange(t *testing.T) {
	s := New(64)
	for i := 0; i < 50; i++ {
		s.RecordAccess(uint32(i))
	}
	for i := 0; i < 50; i++ {
		f := s.Frequency(uint32(i))
		assert.GreaterOrEqual(t, f, 0)
		assert.LessOrEqual(t, f, 15)
	}
}

func TestRecordAccessIncreasesFrequency(t *testing.T) {
	s := New(64)
	key := uint32(7)
	before := s.Frequency(key)
	s.RecordAccess(key)
	after := s.Frequency(key)
	assert.Greater(t, after, before)
}

func TestCounterSaturatesAtFifteen(t *testing.T) {
	s := New(16) // narrow table, few distinct counters, forces saturation quickly
	key := uint32(1)
	for i := 0; i < 30; i++ {
		s.RecordAccess(key)
	}
	assert.Equal(t, 15, s.Frequency(key))
}

func TestChangeCapacityResetsTableAndSize(t *testing.T) {
	s := New(16)
	s.RecordAccess(1)
	require.Greater(t, s.Frequency(1), 0)

	s.ChangeCapacity(64)

	assert.Equal(t, 64, s.Width())
	assert.Equal(t, 0, s.Frequency(1))
}

func TestChangeCapacityPanicsOnNonPositive(t *testing.T) {
	s := New(16)
	assert.Panics(t, func() { s.ChangeCapacity(0) })
	assert.Panics(t, func() { s.ChangeCapacity(-1) })
}

// TestSketchAging reproduces S4: with W = 16 (sampling threshold 160),
// saturate key X to 15, then drive exactly 145 more successful
// increments on distinct keys so the running sample count hits the
// threshold exactly on the 160th successful increment. Reset should
// fire at that point and halve X's counters from 15 to 7.
func TestSketchAging(t *testing.T) {
	s := New(16)
	require.Equal(t, 16, s.Width())
	require.Equal(t, 160, s.samplingThreshold())

	x := uint32(99)
	for s.Frequency(x) < 15 {
		s.RecordAccess(x)
	}
	require.Equal(t, 15, s.Frequency(x))
	require.Less(t, s.size, 160)

	// Drive distinct-key accesses until the sample counter reaches the
	// threshold and Reset fires, which halves s.size back below it.
	next := uint32(1000)
	for {
		before := s.size
		s.RecordAccess(next)
		next++
		if s.size < before {
			break
		}
	}

	assert.Equal(t, 7, s.Frequency(x))
}

func TestResetHalvesCounters(t *testing.T) {
	s := New(16)
	key := uint32(5)
	for i := 0; i < 10; i++ {
		s.RecordAccess(key)
	}
	before := s.Frequency(key)
	require.Greater(t, before, 0)

	s.Reset()

	assert.Equal(t, before/2, s.Frequency(key))
}
