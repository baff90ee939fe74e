package searchscheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidConnectivity(t *testing.T) {
	valid := [][]int{{0, 1, 2}, {1, 0, 2}, {1, 2, 0}, {2, 1, 0}}
	for _, pi := range valid {
		s := Search{Pi: pi, L: []int{0, 0, 0}, U: []int{1, 1, 1}}
		assert.True(t, IsValid(s), "pi=%v", pi)
	}

	invalid := [][]int{{0, 2, 1}, {2, 0, 1}, {0, 0, 2}}
	for _, pi := range invalid {
		s := Search{Pi: pi, L: []int{0, 0, 0}, U: []int{1, 1, 1}}
		assert.False(t, IsValid(s), "pi=%v", pi)
	}
}

func TestIsValidBoundsMonotonicity(t *testing.T) {
	assert.True(t, IsValid(Search{Pi: []int{0, 1}, L: []int{0, 0}, U: []int{0, 1}}))
	assert.False(t, IsValid(Search{Pi: []int{0, 1}, L: []int{1, 0}, U: []int{1, 1}}))
	assert.False(t, IsValid(Search{Pi: []int{0, 1}, L: []int{0, 0}, U: []int{1, 0}}))
	assert.False(t, IsValid(Search{Pi: []int{0, 1}, L: []int{1, 0}, U: []int{0, 1}}))
}

func TestExpandSplitsEachPieceIntoContiguousSubPieces(t *testing.T) {
	s := Search{Pi: []int{0, 1}, L: []int{0, 0}, U: []int{0, 1}}
	got, err := ExpandSearch(s, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, got.Pi)
	assert.Equal(t, []int{0, 0, 0, 0}, got.L)
	assert.Equal(t, []int{0, 0, 1, 1}, got.U)
}

func TestExpandPreservesTraversalOrderOfOriginalPieces(t *testing.T) {
	s := Search{Pi: []int{1, 0}, L: []int{0, 0}, U: []int{0, 1}}
	got, err := ExpandSearch(s, 4)
	require.NoError(t, err)
	// original piece 1 (new indices 2,3) is visited first, then piece 0
	// (new indices 0,1); each sub-piece inherits its parent's u bound.
	assert.Equal(t, []int{2, 3, 0, 1}, got.Pi)
	assert.Equal(t, []int{0, 0, 0, 0}, got.L)
	assert.Equal(t, []int{0, 0, 1, 1}, got.U)
}

func TestExpandRejectsSmallerTarget(t *testing.T) {
	s := Search{Pi: []int{0, 1}, L: []int{0, 0}, U: []int{0, 1}}
	_, err := ExpandSearch(s, 1)
	assert.Error(t, err)
}

func TestExpandNoOpWhenAlreadyAtTarget(t *testing.T) {
	s := Search{Pi: []int{0, 1}, L: []int{0, 0}, U: []int{0, 1}}
	got, err := ExpandSearch(s, 2)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func backtrackingScheme(N, minK, maxK int) Search {
	pi := make([]int, N)
	l := make([]int, N)
	u := make([]int, N)
	for k := 0; k < N; k++ {
		pi[k] = k
		// l only reaches minK at the final piece; holding it there from
		// k=0 would reject any pattern that defers its errors to a later
		// piece.
		if k == N-1 {
			l[k] = minK
		}
		u[k] = maxK
	}
	return Search{Pi: pi, L: l, U: u}
}

func TestNodeCountMatchesKnownSchemeSizes(t *testing.T) {
	const sigma = 4
	cases := []struct {
		N, minK, maxK, want int
	}{
		{1, 0, 1, 4},
		{2, 0, 1, 11},
		{3, 0, 1, 21},
		{2, 0, 2, 20},
	}
	for _, c := range cases {
		scheme := Scheme{backtrackingScheme(c.N, c.minK, c.maxK)}
		got := NodeCount(scheme, sigma, false)
		assert.Equal(t, c.want, got, "N=%d minK=%d maxK=%d", c.N, c.minK, c.maxK)
	}
}

func TestNodeCountZeroErrorIsLinearInN(t *testing.T) {
	const sigma = 4
	for n := 1; n < 40; n++ {
		scheme := Scheme{backtrackingScheme(n, 0, 0)}
		assert.Equal(t, n, NodeCount(scheme, sigma, false), "n=%d", n)
	}
}

func TestWeightedNodeCountMatchesExactBelowDamping(t *testing.T) {
	const sigma = 4
	const textLen = 1000000000
	cases := []struct {
		N, minK, maxK, want int
	}{
		{1, 0, 1, 4},
		{2, 0, 1, 11},
		{3, 0, 1, 21},
		{2, 0, 2, 20},
	}
	for _, c := range cases {
		scheme := Scheme{backtrackingScheme(c.N, c.minK, c.maxK)}
		got := WeightedNodeCount(scheme, sigma, textLen, false)
		assert.Equal(t, c.want, got, "N=%d minK=%d maxK=%d", c.N, c.minK, c.maxK)
	}

	for n := 1; n < 14; n++ {
		scheme := Scheme{backtrackingScheme(n, 0, 0)}
		assert.Equal(t, n, WeightedNodeCount(scheme, sigma, textLen, false), "n=%d", n)
	}
}

func TestWeightedNodeCountDampsForLargeSchemes(t *testing.T) {
	const sigma = 4
	const textLen = 1000000000
	for _, n := range []int{15, 100, 999} {
		scheme := Scheme{backtrackingScheme(n, 0, 0)}
		assert.Less(t, WeightedNodeCount(scheme, sigma, textLen, false), 16, "n=%d", n)
	}
}

func TestIsCompleteCoversFullErrorRange(t *testing.T) {
	// A single search over 2 pieces admitting 0 or 1 total errors is
	// complete for minK=0,maxK=1 only if both pieces individually allow
	// up to 1 error; the uniform backtracking scheme always is.
	scheme := Scheme{backtrackingScheme(2, 0, 1)}
	assert.True(t, IsComplete(scheme, 0, 1))
	assert.False(t, IsComplete(scheme, 0, 2))
}

func TestIsCompleteCoversFullErrorRangeWithPositiveMinK(t *testing.T) {
	// Backtracking(2,1,1) builds Pi=[0,1], L=[0,1], U=[1,1]: an error
	// pattern that places its single error on the second piece (e=(0,1))
	// must still be covered, even though the cumulative minimum of 1
	// only binds at the final piece.
	scheme := Scheme{backtrackingScheme(2, 1, 1)}
	assert.True(t, IsComplete(scheme, 1, 1))
}
