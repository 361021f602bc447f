package traffic

import (
	"fmt"
	"math"
	"math/rand"
)

// Wheel draws elements of [0, n) with probabilities proportional to fixed
// weights.
type Wheel struct {
	// tree is a binary heap of partial sums: the weight of element i is at
	// tree[n+i] and each internal node i in [1, n) holds tree[2i]+tree[2i+1].
	// tree[1] is the total weight when n > 0.
	tree []float64
}

// NewWheel returns a wheel over the elements of weights. Weights must be
// finite and non-negative.
func NewWheel(weights []float64) (*Wheel, error) {
	n := len(weights)
	tree := make([]float64, 2*n)
	for i, wt := range weights {
		if wt < 0 || math.IsNaN(wt) || math.IsInf(wt, 0) {
			return nil, fmt.Errorf("invalid weight %f for element %d", wt, i)
		}
		tree[n+i] = wt
	}
	for i := n - 1; i > 0; i-- {
		tree[i] = tree[2*i] + tree[2*i+1]
	}
	return &Wheel{tree: tree}, nil
}

// Len returns the number of elements of w.
func (w *Wheel) Len() int {
	return len(w.tree) / 2
}

// Weight returns the weight of elem.
func (w *Wheel) Weight(elem int) float64 {
	return w.tree[w.Len()+elem]
}

// Total returns the sum of the weights.
func (w *Wheel) Total() float64 {
	if w.Len() == 0 {
		return 0
	}
	return w.tree[1]
}

// Pick draws an element using rng. It returns -1 if the total weight is 0.
func (w *Wheel) Pick(rng *rand.Rand) int {
	return w.at(rng.Float64())
}

// at returns the element whose share of the total weight covers the fraction
// x in [0, 1).
func (w *Wheel) at(x float64) int {
	if x < 0 || 1 <= x {
		panic(fmt.Sprintf("fraction must be in [0, 1), got: %f", x))
	}
	n := w.Len()
	if w.Total() == 0 {
		return -1
	}

	x *= w.tree[1]
	i := 1
	for i < n {
		if l := 2 * i; x < w.tree[l] {
			i = l
		} else {
			i = l + 1
			x -= w.tree[l]
		}
	}
	return i - n
}
