package memorymatch

import "math/rand/v2"

// Shuffler permutes n elements through swap, the same contract as
// rand.Shuffle.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// RandShuffler is an unbiased Fisher-Yates shuffle. The zero value uses
// the global math/rand/v2 source.
type RandShuffler struct {
	r *rand.Rand
}

// NewSeededShuffler returns a reproducible shuffler.
func NewSeededShuffler(seed uint64) *RandShuffler {
	return &RandShuffler{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandShuffler) Shuffle(n int, swap func(i, j int)) {
	if s == nil || s.r == nil {
		rand.Shuffle(n, swap)
		return
	}
	s.r.Shuffle(n, swap)
}

// FixedShuffler applies preset permutations, one per call, in order.
// Perms[c][i] is the original index that ends up at position i after
// call c. Calls beyond len(Perms), or with a permutation of the wrong
// length, leave the order unchanged.
type FixedShuffler struct {
	Perms [][]int
	calls int
}

func (f *FixedShuffler) Shuffle(n int, swap func(i, j int)) {
	c := f.calls
	f.calls++
	if c >= len(f.Perms) || len(f.Perms[c]) != n {
		return
	}
	perm := f.Perms[c]

	// cur[i] is the original index currently sitting at position i.
	cur := make([]int, n)
	pos := make([]int, n)
	for i := range cur {
		cur[i] = i
		pos[i] = i
	}
	for i, want := range perm {
		if want < 0 || want >= n {
			return
		}
		j := pos[want]
		if j == i {
			continue
		}
		swap(i, j)
		cur[i], cur[j] = cur[j], cur[i]
		pos[cur[i]] = i
		pos[cur[j]] = j
	}
}

// NoShuffle keeps the catalog order.
type NoShuffle struct{}

func (NoShuffle) Shuffle(int, func(i, j int)) {}
