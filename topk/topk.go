// Copyright 2026 Folio ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package topk provides the public API for top-K weight sparsification.
//
// Given a vector of non-negative weights summing to one, Select zeroes every
// entry outside the K largest, optionally renormalizing the survivors:
//
//	sparse, err := topk.Select(weights, topk.Config{K: 3})
//
// Selection is deterministic: ties at the K-th boundary resolve to the
// lowest index.
package topk

import (
	"github.com/folio-ml/folio/internal/topk"
)

// ErrInvalidArgument is returned for an empty weight vector or K outside [1, N].
var ErrInvalidArgument = topk.ErrInvalidArgument

// Config holds the construction-time configuration of a selector:
// the number of entries K to retain, and whether to renormalize them.
type Config = topk.Config

// Select returns a copy of weights with every entry outside the cfg.K
// largest set to zero. Pure and safe for concurrent use.
func Select(weights []float32, cfg Config) ([]float32, error) {
	return topk.Select(weights, cfg)
}

// Mask returns a boolean selection mask: true at the k indices holding the
// largest entries of weights.
func Mask(weights []float32, k int) ([]bool, error) {
	return topk.Mask(weights, k)
}

// Indices returns the indices of the k largest entries, in ascending order.
func Indices(weights []float32, k int) ([]int, error) {
	return topk.Indices(weights, k)
}
