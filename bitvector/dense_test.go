package bitvector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func naiveRank1(bits []bool, i int) int {
	c := 0
	for j := 0; j < i && j < len(bits); j++ {
		if bits[j] {
			c++
		}
	}
	return c
}

func TestDenseRank1MatchesNaive(t *testing.T) {
	pattern := []bool{true, false, true, true, false, false, true, false, true, true, false, true}
	n := 0
	for i := 0; i < 600; i++ {
		n++
	}
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = pattern[i%len(pattern)]
	}

	d := NewDense(n, func(i int) bool { return bits[i] })

	for i := 0; i <= n; i += 7 {
		assert.Equal(t, naiveRank1(bits, i), d.Rank1(i), "rank1 mismatch at %d", i)
	}
	assert.Equal(t, naiveRank1(bits, n), d.Rank1(n))
}

func TestDenseSymbol(t *testing.T) {
	bits := []bool{true, false, false, true, true}
	d := NewDense(len(bits), func(i int) bool { return bits[i] })
	for i, b := range bits {
		want := 0
		if b {
			want = 1
		}
		assert.Equal(t, want, d.Symbol(i))
	}
}

func TestDenseSelect1RoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true, false, true, true, false, true, true}
	d := NewDense(len(bits), func(i int) bool { return bits[i] })

	rank := 0
	for i, b := range bits {
		if !b {
			continue
		}
		pos := d.Select1(rank)
		assert.Equal(t, i, pos)
		rank++
	}
	assert.Equal(t, -1, d.Select1(rank))
}

func TestDenseAcrossSuperblocks(t *testing.T) {
	n := _SUPERBLOCK_BITS*2 + 37
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = i%3 == 0
	}
	d := NewDense(n, func(i int) bool { return bits[i] })

	for i := 0; i <= n; i += 131 {
		assert.Equal(t, naiveRank1(bits, i), d.Rank1(i))
	}
}
