// Package nn implements the layers of a sparse portfolio-selection model.
//
// This package provides building blocks for allocation models:
//   - Module interface: Base interface for all layers
//   - Parameter: Trainable parameters with gradient slots
//   - Dense: Fully connected scoring layer
//   - Softmax: Maps scores onto the probability simplex
//   - SparseSelect: Top-K sparsification of simplex weights
//   - PortfolioReturn: Weight/return dot product per time step
//   - SharpeLoss: Negative Sharpe ratio training objective
//   - Sequential: Container for stacking layers
//
// Layers train without a recording tape: every Module exposes an explicit
// Backward that consumes the gradient of the loss with respect to its output
// and returns the gradient with respect to its input, accumulating parameter
// gradients along the way.
package nn

import (
	"github.com/folio-ml/folio/internal/tensor"
)

// Module is the base interface for all model layers.
//
// Modules can be composed to build allocation models:
//
//	model := nn.NewSequential(
//	    nn.NewDense(16, 8, rng),
//	    nn.NewSoftmax(),
//	    nn.NewSparseSelect(3, false),
//	)
//
// Backward must be called after Forward: layers cache whatever their
// backward pass needs during the forward pass.
type Module interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Dense expects [batch_size, in_features].
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Backward propagates the gradient of the loss with respect to this
	// module's output back to its input, accumulating gradients on any
	// trainable parameters as a side effect.
	Backward(grad *tensor.Tensor) *tensor.Tensor

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters
	// (e.g., Softmax, SparseSelect).
	Parameters() []*Parameter
}
