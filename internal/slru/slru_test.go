package slru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvcache/wtinylfu/internal/segment"
)

func TestNewSplitsEightyTwenty(t *testing.T) {
	// 99 is the main cache's capacity under a total cache capacity of
	// 100 (window takes the other 1): floor(0.8*99) = 79, leaving 20
	// for Probationary.
	s := New[string, int](99)
	assert.Equal(t, 79, s.ProtectedCap())
	assert.Equal(t, 20, s.ProbationaryCap())
}

func TestNewGivesResidueToProbationary(t *testing.T) {
	// capacity 3 (the S3 scenario's main cache): floor(0.8*3) = 2,
	// leaving the one-slot residue to Probationary.
	s := New[string, int](3)
	assert.Equal(t, 2, s.ProtectedCap())
	assert.Equal(t, 1, s.ProbationaryCap())
}

func TestAdmitFromWindowLandsInProbationary(t *testing.T) {
	window := segment.New[string, int](1)
	pos := window.InsertMRU("a", 1)

	s := New[string, int](10)
	s.AdmitFromWindow(pos, window)

	assert.Equal(t, 0, window.Size())
	assert.Equal(t, 1, s.ProbationarySize())
	assert.Equal(t, "a", pos.Key())
}

func TestOnHitPromotesProbationaryWithoutOverflow(t *testing.T) {
	s := New[string, int](10) // protected cap 8, probation cap 2
	window := segment.New[string, int](1)

	pos := window.InsertMRU("a", 1)
	s.AdmitFromWindow(pos, window)

	demoted, didDemote := s.OnHit(pos, Probationary)

	assert.False(t, didDemote)
	assert.Nil(t, demoted)
	assert.Equal(t, 1, s.ProtectedSize())
	assert.Equal(t, 0, s.ProbationarySize())
}

func TestOnHitDemotesWhenProtectedOverflows(t *testing.T) {
	// capacity 2: protectedCap = 1, probationCap = 1; forced down to 1
	// explicitly below regardless, to exercise the overflow path.
	s := New[string, int](2)
	window := segment.New[string, int](1)

	posA := window.InsertMRU("a", 1)
	s.AdmitFromWindow(posA, window)
	posB := window.InsertMRU("b", 2)
	s.AdmitFromWindow(posB, window)

	// Promote "a" first; Protected is still empty, so no overflow yet.
	demoted, didDemote := s.OnHit(posA, Probationary)
	assert.False(t, didDemote)
	assert.Nil(t, demoted)

	// Now force Protected's capacity down to 1 so the next promotion
	// overflows it and must demote a:
	s.protected.SetCapacity(1)
	demoted, didDemote = s.OnHit(posB, Probationary)

	require.True(t, didDemote)
	assert.Equal(t, "a", demoted.Key())
	assert.Equal(t, 1, s.ProtectedSize())
	assert.Equal(t, 1, s.ProbationarySize())
}

func TestOnHitProtectedJustPromotes(t *testing.T) {
	s := New[string, int](10)
	window := segment.New[string, int](2)

	posA := window.InsertMRU("a", 1)
	s.AdmitFromWindow(posA, window)
	s.OnHit(posA, Probationary) // now in Protected

	demoted, didDemote := s.OnHit(posA, Protected)
	assert.False(t, didDemote)
	assert.Nil(t, demoted)
	assert.Equal(t, 1, s.ProtectedSize())
}

func TestEvictTargetsProbationary(t *testing.T) {
	s := New[string, int](10)
	window := segment.New[string, int](2)

	pos := window.InsertMRU("a", 1)
	s.AdmitFromWindow(pos, window)

	victim := s.Evict()
	require.NotNil(t, victim)
	assert.Equal(t, "a", victim.Key())
	assert.Equal(t, 0, s.Size())
}

func TestEvictOverflowFallsBackToProtected(t *testing.T) {
	s := New[string, int](2) // protectedCap 1, probationCap 1
	window := segment.New[string, int](1)

	posA := window.InsertMRU("a", 1)
	s.AdmitFromWindow(posA, window)
	s.OnHit(posA, Probationary) // promotes into Protected, which has room (size 1, cap 1)

	require.Equal(t, 0, s.ProbationarySize())
	require.Equal(t, 1, s.ProtectedSize())

	victim, slot := s.EvictOverflow()
	require.NotNil(t, victim)
	assert.Equal(t, Protected, slot)
	assert.Equal(t, "a", victim.Key())
}

func TestSetCapacityRecomputesSplit(t *testing.T) {
	s := New[string, int](100)
	s.SetCapacity(10)

	assert.Equal(t, 8, s.ProtectedCap())
	assert.Equal(t, 2, s.ProbationaryCap())
}
