package fmindex

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SGSSGene/fmindex-collection-sub003/archive"
	"github.com/SGSSGene/fmindex-collection-sub003/csa"
	"github.com/SGSSGene/fmindex-collection-sub003/flog"
	"github.com/SGSSGene/fmindex-collection-sub003/rankstring"
	"github.com/SGSSGene/fmindex-collection-sub003/sequence"
	"github.com/SGSSGene/fmindex-collection-sub003/workerpool"
)

func multiBitvectorBuilder(s []uint8, sigma int) rankstring.RankString {
	return rankstring.NewMultiBitvector(s, sigma)
}

func naiveCount(seqs [][]uint8, query []uint8) int {
	count := 0
	for _, s := range seqs {
		for i := 0; i+len(query) <= len(s); i++ {
			if bytes.Equal(s[i:i+len(query)], query) {
				count++
			}
		}
	}
	return count
}

func naiveLocate(seqs [][]uint8, query []uint8) []csa.Location {
	var out []csa.Location
	for seqID, s := range seqs {
		for i := 0; i+len(query) <= len(s); i++ {
			if bytes.Equal(s[i:i+len(query)], query) {
				out = append(out, csa.Location{SeqID: seqID, Offset: i})
			}
		}
	}
	return out
}

func helloWorldCollection(t *testing.T) *sequence.Collection {
	// "Hello" / "World" over a byte alphabet; sentinel 0 is reserved so
	// shift every byte up by one to keep 0 free for the collection.
	encode := func(s string) []uint8 {
		out := make([]uint8, len(s))
		for i := range s {
			out[i] = s[i] + 1
		}
		return out
	}
	coll, err := sequence.NewCollection([][]uint8{encode("Hello"), encode("World")}, 256)
	require.NoError(t, err)
	return coll
}

func TestIndexCountAndLocateMinimalScenario(t *testing.T) {
	coll := helloWorldCollection(t)
	idx, err := NewIndex(coll, multiBitvectorBuilder, 1, csa.SampleByTextPosition)
	require.NoError(t, err)

	query := []uint8{'l' + 1}
	assert.Equal(t, 3, idx.Count(query))

	locs := idx.Locate(query)
	sortLocations(locs)
	want := []csa.Location{{SeqID: 0, Offset: 2}, {SeqID: 0, Offset: 3}, {SeqID: 1, Offset: 3}}
	assert.Equal(t, want, locs)
}

func TestIndexLocateFMTreeMatchesLinear(t *testing.T) {
	coll := helloWorldCollection(t)
	idx, err := NewIndex(coll, multiBitvectorBuilder, 3, csa.SampleByTextPosition)
	require.NoError(t, err)

	for _, q := range [][]uint8{{'l' + 1}, {'o' + 1}, {'l' + 1, 'l' + 1}} {
		linear := idx.Locate(q)
		tree := idx.LocateFMTree(q, 2)
		sortLocations(linear)
		sortLocations(tree)
		assert.Equal(t, linear, tree, "query %v", q)
	}
}

func randomSeqs(sigma int, lens []int, seedStep int) [][]uint8 {
	seqs := make([][]uint8, len(lens))
	x := 1
	for i, l := range lens {
		s := make([]uint8, l)
		for j := 0; j < l; j++ {
			x = (x*1103515245 + 12345) & 0x7fffffff
			s[j] = uint8(1 + x%(sigma-1))
			x += seedStep
		}
		seqs[i] = s
	}
	return seqs
}

func TestIndexCountMatchesNaiveAcrossQueries(t *testing.T) {
	sigma := 5
	seqs := randomSeqs(sigma, []int{40, 55, 30}, 7)
	coll, err := sequence.NewCollection(seqs, sigma)
	require.NoError(t, err)

	idx, err := NewIndex(coll, multiBitvectorBuilder, 4, csa.SampleByTextPosition)
	require.NoError(t, err)

	for _, q := range [][]uint8{{1}, {2, 3}, {1, 2, 3, 4}, {4, 4}} {
		assert.Equal(t, naiveCount(seqs, q), idx.Count(q), "query %v", q)

		got := idx.Locate(q)
		want := naiveLocate(seqs, q)
		sortLocations(got)
		sortLocations(want)
		assert.Equal(t, want, got, "query %v", q)
	}
}

func TestBiFMIndexExtendRightThenLeftMatchesTwoSidedSubstring(t *testing.T) {
	seqs := [][]uint8{
		{1, 1, 1, 2, 2, 2, 3, 2, 4, 1, 1, 1},
		{1, 2, 1, 2, 3, 4, 3},
	}
	coll, err := sequence.NewCollection(seqs, 5)
	require.NoError(t, err)

	idx, err := NewBiFMIndex(coll, multiBitvectorBuilder, 1, csa.SampleByTextPosition)
	require.NoError(t, err)

	cur := idx.FullCursor()
	cur = idx.ExtendRight(cur, 3)
	require.False(t, cur.Empty())
	cur = idx.ExtendLeft(cur, 2)
	require.False(t, cur.Empty())

	assert.Equal(t, naiveCount(seqs, []uint8{2, 3}), cur.Count())

	got := idx.Locate(cur)
	want := naiveLocate(seqs, []uint8{2, 3})
	sortLocations(got)
	sortLocations(want)
	assert.Equal(t, want, got)
}

func TestBiFMIndexCountMatchesBackwardSearch(t *testing.T) {
	sigma := 6
	seqs := randomSeqs(sigma, []int{50, 35}, 11)
	coll, err := sequence.NewCollection(seqs, sigma)
	require.NoError(t, err)

	idx, err := NewBiFMIndex(coll, multiBitvectorBuilder, 2, csa.SampleByTextPosition)
	require.NoError(t, err)

	for _, q := range [][]uint8{{1, 2}, {3}, {2, 3, 4}} {
		assert.Equal(t, naiveCount(seqs, q), idx.Count(q), "query %v", q)
	}
}

func TestIndexSerializeRoundTrip(t *testing.T) {
	sigma := 5
	seqs := randomSeqs(sigma, []int{30, 25}, 3)
	coll, err := sequence.NewCollection(seqs, sigma)
	require.NoError(t, err)

	idx, err := NewIndex(coll, multiBitvectorBuilder, 2, csa.SampleByTextPosition)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := archive.NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, idx.Serialize(w))

	r, err := archive.NewReader(&buf)
	require.NoError(t, err)
	loaded, err := Load(r, multiBitvectorBuilder)
	require.NoError(t, err)

	for _, q := range [][]uint8{{1}, {2, 3}, {4, 4}} {
		assert.Equal(t, idx.Count(q), loaded.Count(q))

		got := loaded.Locate(q)
		want := idx.Locate(q)
		sortLocations(got)
		sortLocations(want)
		assert.Equal(t, want, got)
	}
}

// recordingListener collects every event it receives; safe for
// concurrent use since NewBiFMIndexWithPool emits from both the
// forward and reverse construction goroutines.
type recordingListener struct {
	mu     sync.Mutex
	stages []flog.Stage
}

func (l *recordingListener) ProcessEvent(evt flog.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stages = append(l.stages, evt.Stage())
}

func TestNewBiFMIndexWithPoolMatchesSequentialAndReportsProgress(t *testing.T) {
	sigma := 5
	seqs := randomSeqs(sigma, []int{40, 33}, 5)
	coll, err := sequence.NewCollection(seqs, sigma)
	require.NoError(t, err)

	want, err := NewBiFMIndex(coll, multiBitvectorBuilder, 2, csa.SampleByTextPosition)
	require.NoError(t, err)

	listener := &recordingListener{}
	got, err := NewBiFMIndexWithPool(coll, multiBitvectorBuilder, 2, csa.SampleByTextPosition, workerpool.New(2), listener)
	require.NoError(t, err)

	for _, q := range [][]uint8{{1}, {2, 3}, {4, 4, 1}} {
		assert.Equal(t, want.Count(q), got.Count(q), "query %v", q)
	}

	listener.mu.Lock()
	defer listener.mu.Unlock()
	assert.Contains(t, listener.stages, flog.StageCollectionBuilt)
	assert.Contains(t, listener.stages, flog.StageIndexBuilt)
	// one suffix-array/BWT/CSA/rank-string milestone per direction
	count := func(s flog.Stage) int {
		n := 0
		for _, got := range listener.stages {
			if got == s {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 2, count(flog.StageSuffixArrayBuilt))
	assert.Equal(t, 2, count(flog.StageBWTBuilt))
	assert.Equal(t, 2, count(flog.StageCSABuilt))
	assert.Equal(t, 2, count(flog.StageRankStringBuilt))
}
