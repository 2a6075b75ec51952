// Package topk implements top-K sparsification of portfolio weight vectors.
//
// Given a vector of non-negative weights (typically a softmax output on the
// probability simplex), the package zeroes every entry outside the K largest,
// optionally renormalizing the survivors so they sum to 1 again. This is the
// selection step of a fixed-size portfolio: of N candidate assets, keep K.
package topk

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidArgument is returned for malformed inputs: an empty weight
// vector, or K outside [1, N].
var ErrInvalidArgument = errors.New("topk: invalid argument")

// Config holds the construction-time configuration of a selector.
//
// K is the number of entries to retain. Renormalize controls whether the
// retained entries are rescaled to sum to 1; when false, survivors keep
// their original magnitudes.
type Config struct {
	K           int
	Renormalize bool
}

// Indices returns the indices of the k largest entries of weights, in
// ascending index order.
//
// Ranking is deterministic: entries are compared by value descending, and
// ties at the K-th boundary are broken by lowest index. Two calls with the
// same input always select the same set.
func Indices(weights []float32, k int) ([]int, error) {
	if err := validate(weights, k); err != nil {
		return nil, err
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	// Value descending, index ascending on ties.
	sort.Slice(order, func(a, b int) bool {
		if weights[order[a]] != weights[order[b]] {
			return weights[order[a]] > weights[order[b]]
		}
		return order[a] < order[b]
	})

	selected := append([]int(nil), order[:k]...)
	sort.Ints(selected)
	return selected, nil
}

// Mask returns a boolean selection mask: true at the k indices holding the
// largest entries of weights, false elsewhere. The mask is derived fresh on
// every call and shares no state with previous calls.
func Mask(weights []float32, k int) ([]bool, error) {
	selected, err := Indices(weights, k)
	if err != nil {
		return nil, err
	}

	mask := make([]bool, len(weights))
	for _, idx := range selected {
		mask[idx] = true
	}
	return mask, nil
}

// Select returns a copy of weights with every entry outside the cfg.K
// largest set to zero. With cfg.Renormalize, the retained entries are
// rescaled to sum to 1 (a no-op rescale when they already do, e.g. K == N
// on a simplex input); otherwise they keep their original magnitudes.
//
// Select is a pure function: it never modifies its input and holds no state
// across calls, so it is safe to call concurrently.
func Select(weights []float32, cfg Config) ([]float32, error) {
	mask, err := Mask(weights, cfg.K)
	if err != nil {
		return nil, err
	}

	out := make([]float32, len(weights))
	var retained float32
	for i, keep := range mask {
		if keep {
			out[i] = weights[i]
			retained += weights[i]
		}
	}

	if cfg.Renormalize && retained > 0 {
		for i := range out {
			out[i] /= retained
		}
	}
	return out, nil
}

func validate(weights []float32, k int) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: empty weight vector", ErrInvalidArgument)
	}
	if k < 1 || k > len(weights) {
		return fmt.Errorf("%w: k=%d out of range [1, %d]", ErrInvalidArgument, k, len(weights))
	}
	return nil
}
