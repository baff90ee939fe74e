// Package suffixarray provides the external primitive spec.md treats as
// opaque: SA = buildSuffixArray(text). The teacher's own suffix array
// builder (transform.SA_IS, a from-scratch SA-IS port) is the closest
// in-pack analogue of this primitive; this package keeps its bucket-sort
// helper naming (getCounts/getBuckets) but implements the construction
// itself via prefix doubling, which is far easier to verify for
// correctness without a compiler in the loop than a hand-ported induced
// sort and is still the standard O(n log n log n) general-purpose
// algorithm for this role.
package suffixarray

import "sort"

// Build returns the suffix array of text: a permutation of [0,len(text))
// ordering every suffix of text lexicographically. text must not be
// empty; by convention the caller appends sentinel(s) before calling so
// the sentinel, being the smallest symbol, naturally sorts first.
func Build(text []uint8) []int32 {
	n := len(text)
	if n == 0 {
		return nil
	}

	sa := make([]int32, n)
	rank := make([]int, n)
	tmp := make([]int, n)

	for i := 0; i < n; i++ {
		sa[i] = int32(i)
		rank[i] = int(text[i])
	}

	for k := 1; k < n; k *= 2 {
		cmp := func(a, b int32) bool {
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			ra, rb := -1, -1
			if int(a)+k < n {
				ra = rank[a+int32(k)]
			}
			if int(b)+k < n {
				rb = rank[b+int32(k)]
			}
			return ra < rb
		}

		sort.Slice(sa, func(i, j int) bool { return cmp(sa[i], sa[j]) })

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if cmp(sa[i-1], sa[i]) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if rank[sa[n-1]] == n-1 {
			break
		}
	}

	return sa
}

// BWT derives the Burrows-Wheeler transform of text from its already-built
// suffix array: BWT[i] = text[(sa[i]-1) mod n].
func BWT(text []uint8, sa []int32) []uint8 {
	n := len(text)
	bwt := make([]uint8, n)
	for i, s := range sa {
		pos := int(s) - 1
		if pos < 0 {
			pos += n
		}
		bwt[i] = text[pos]
	}
	return bwt
}

// getCounts tallies, for each symbol in [0,k), how many times it occurs in
// src. Named after transform.SA_IS's own bucket-sort helper in the
// teacher, since construction of the count array (spec.md §3's C[c])
// reuses the identical counting-sort primitive.
func getCounts(src []uint8, k int) []int {
	counts := make([]int, k)
	for _, s := range src {
		counts[s]++
	}
	return counts
}

// getBuckets turns counts into either bucket-start offsets (end=false) or
// bucket-end offsets (end=true), again named after transform.SA_IS's
// helper of the same shape.
func getBuckets(counts []int, end bool) []int {
	buckets := make([]int, len(counts))
	sum := 0
	for i, c := range counts {
		if end {
			sum += c
			buckets[i] = sum
		} else {
			buckets[i] = sum
			sum += c
		}
	}
	return buckets
}

// CountArray builds the C[0..sigma] count array from text: C[c] = |{j :
// text[j] < c}|, the cumulative form getBuckets(_, false) produces padded
// with a trailing total.
func CountArray(text []uint8, sigma int) []int {
	counts := getCounts(text, sigma)
	starts := getBuckets(counts, false)
	c := make([]int, sigma+1)
	copy(c, starts)
	c[sigma] = len(text)
	return c
}
