// Copyright 2026 Folio ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor values in Folio.
//
// The package re-exports the core types used throughout the library:
//   - Tensor: dense float32 tensor with row-major layout
//   - Shape: tensor dimensions
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{0.1, 0.6, 0.3}, tensor.Shape{1, 3})
package tensor

import (
	"math/rand"

	"github.com/folio-ml/folio/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{32, 8} represents a batch of 32 rows of 8 assets.
type Shape = tensor.Shape

// Tensor is a dense float32 tensor with row-major layout.
type Tensor = tensor.Tensor

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float32) *Tensor {
	return tensor.Full(shape, value)
}

// Randn creates a tensor filled with values from the standard normal
// distribution, drawn from the supplied generator.
func Randn(shape Shape, rng *rand.Rand) *Tensor {
	return tensor.Randn(shape, rng)
}
