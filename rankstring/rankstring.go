// Package rankstring implements the occurrence-table contract of
// spec component B: a family of interchangeable encodings over a string
// drawn from an alphabet of size sigma <= 256, each answering symbol(i),
// rank(i,c), prefix_rank(i,c) and their bulk variants in O(1)-ish time.
//
// The layouts mirror the teacher's word-at-a-time bit buffering
// (bitstream.DefaultInputBitStream/DefaultOutputBitStream) and its
// cumulative LOG2 lookup-table style (internal.Global's LOG2/LOG2_4096
// tables) generalized from byte-oriented entropy coding to small-alphabet
// occurrence counting.
package rankstring

// RankString is the capability every occurrence-table encoding
// implements. package fmindex holds its encoding through this interface,
// so every rank query issued by construction, search and locate loops is
// an interface method call; no loop is specialized to a concrete type.
type RankString interface {
	// Size returns n, the length of the encoded string.
	Size() int

	// Sigma returns the alphabet size this encoding was built for.
	Sigma() int

	// Symbol returns the symbol at position i, for i in [0,n).
	Symbol(i int) int

	// Rank returns |{j<i : S[j]=c}|, for i in [0,n], c in [0,sigma).
	Rank(i, c int) int

	// PrefixRank returns |{j<i : S[j]<c}| (strict-less; PrefixRank(_,0)=0).
	PrefixRank(i, c int) int

	// AllRanks returns [Rank(i,0), ..., Rank(i,sigma-1)].
	AllRanks(i int) []int

	// AllRanksAndPrefixRanks returns (AllRanks(i), [PrefixRank(i,0), ...,
	// PrefixRank(i,sigma-1)]).
	AllRanksAndPrefixRanks(i int) ([]int, []int)

	// Prefetch is a speculative hint with no correctness effect.
	Prefetch(i int)
}

// naiveAllRanks computes AllRanks by sigma calls to Rank. WaveletTree uses
// it; MultiBitvector, Interleaved, InterleavedPrefix and EPR implement
// AllRanks themselves.
func naiveAllRanks(r RankString, i int) []int {
	sigma := r.Sigma()
	out := make([]int, sigma)
	for c := 0; c < sigma; c++ {
		out[c] = r.Rank(i, c)
	}
	return out
}

func naiveAllRanksAndPrefixRanks(r RankString, i int) ([]int, []int) {
	sigma := r.Sigma()
	ranks := r.AllRanks(i)
	prefix := make([]int, sigma)
	sum := 0
	for c := 0; c < sigma; c++ {
		prefix[c] = sum
		sum += ranks[c]
	}
	return ranks, prefix
}
