package dragonfly

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// CombinationCacheSize is the number of (n, k) combination lists kept in
// memory. Routers of a Dragonfly mostly share the same number of global
// partners so only a few entries are ever used.
const CombinationCacheSize = 16

// combinations generates the size-k subsets of {0, ..., n-1} in lexicographic
// order. Results are memoized by (n, k) and shared between callers, they must
// not be modified.
type combinations struct {
	cache *lru.Cache // map [2]int{n, k}:[][]int
}

// newCombinations panics if size is not positive.
func newCombinations(size int) *combinations {
	cache, err := lru.New(size)
	if err != nil {
		panic(fmt.Sprintf("combination cache of size %d: %s", size, err))
	}
	return &combinations{cache: cache}
}

// Of returns all the size-k subsets of {0, ..., n-1}.
func (c *combinations) Of(n int, k int) [][]int {
	key := [2]int{n, k}
	if v, ok := c.cache.Get(key); ok {
		return v.([][]int)
	}
	combos := Combinations(n, k)
	c.cache.Add(key, combos)
	return combos
}

// Combinations returns all the size-k subsets of {0, ..., n-1} in
// lexicographic order. It returns nil if k is negative or greater than n.
func Combinations(n int, k int) [][]int {
	if k < 0 || n < k {
		return nil
	}

	var combos [][]int
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}

	for {
		combos = append(combos, append([]int(nil), combo...))

		// Find the rightmost element that can still be incremented.
		i := k - 1
		for i >= 0 && combo[i] == n-k+i {
			i--
		}
		if i < 0 {
			return combos
		}
		combo[i]++
		for j := i + 1; j < k; j++ {
			combo[j] = combo[j-1] + 1
		}
	}
}
