// Copyright 2026 Folio ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers of a sparse portfolio-selection model.
//
// # Overview
//
// This package contains:
//   - Layers: Dense, Softmax, SparseSelect
//   - Portfolio nodes: PortfolioReturn, SharpeLoss
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier, Zeros
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/folio-ml/folio/nn"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(42))
//
//	    // Score assets, map onto the simplex, keep the top 3.
//	    model := nn.NewSequential(
//	        nn.NewDense(8, 8, rng),
//	        nn.NewSoftmax(),
//	        nn.NewSparseSelect(3, false),
//	    )
//
//	    weights := model.Forward(features)
//	}
package nn

import (
	"math/rand"

	"github.com/folio-ml/folio/internal/nn"
	"github.com/folio-ml/folio/internal/tensor"
)

// Module is the base interface for all model layers.
type Module = nn.Module

// Parameter represents a trainable parameter of a layer.
type Parameter = nn.Parameter

// Dense is a fully connected scoring layer: y = x @ W.T + b.
type Dense = nn.Dense

// Softmax maps each row of raw scores onto the probability simplex.
type Softmax = nn.Softmax

// SparseSelect zeroes all but the K largest entries of each weight row.
type SparseSelect = nn.SparseSelect

// PortfolioReturn computes the per-step weight/return dot product.
type PortfolioReturn = nn.PortfolioReturn

// SharpeLoss is the negative Sharpe ratio training objective.
type SharpeLoss = nn.SharpeLoss

// Sequential is a container module that chains layers together.
type Sequential = nn.Sequential

// NewParameter creates a new trainable parameter.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// NewDense creates a Dense layer with Xavier-initialized weights.
func NewDense(inFeatures, outFeatures int, rng *rand.Rand) *Dense {
	return nn.NewDense(inFeatures, outFeatures, rng)
}

// NewSoftmax creates a row-wise Softmax layer.
func NewSoftmax() *Softmax {
	return nn.NewSoftmax()
}

// NewSparseSelect creates a selector retaining the k largest entries per row,
// optionally renormalizing them to sum to 1.
func NewSparseSelect(k int, renormalize bool) *SparseSelect {
	return nn.NewSparseSelect(k, renormalize)
}

// NewPortfolioReturn creates a new portfolio return node.
func NewPortfolioReturn() *PortfolioReturn {
	return nn.NewPortfolioReturn()
}

// NewSharpeLoss creates a Sharpe-ratio loss with the given risk-free rate.
func NewSharpeLoss(riskFree float64) *SharpeLoss {
	return nn.NewSharpeLoss(riskFree)
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Sharpe computes the Sharpe ratio of a return series.
func Sharpe(returns []float32, riskFree float64) float64 {
	return nn.Sharpe(returns, riskFree)
}

// Xavier initializes a tensor with Xavier/Glorot uniform values.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	return nn.Xavier(fanIn, fanOut, shape, rng)
}
