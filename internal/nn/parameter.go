package nn

import (
	"github.com/folio-ml/folio/internal/tensor"
)

// Parameter represents a trainable parameter of a layer.
//
// Parameters are tensors with an associated gradient slot filled in during
// the backward pass. They typically represent weights and biases.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
//	grad := weight.Grad() // available after a backward pass
type Parameter struct {
	name   string         // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor // The parameter tensor
	grad   *tensor.Tensor // Gradient tensor (accumulated during backward passes)
}

// NewParameter creates a new trainable parameter.
//
// The parameter tensor should be initialized before creating the Parameter.
// The gradient is allocated lazily on the first backward pass.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t,
		grad:   nil,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}

// Grad returns the gradient tensor.
//
// Returns nil if no gradient has been accumulated yet (before backward pass).
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// AccumulateGrad adds g element-wise into the parameter's gradient,
// allocating the gradient tensor on first use.
func (p *Parameter) AccumulateGrad(g *tensor.Tensor) {
	if !g.Shape().Equal(p.tensor.Shape()) {
		panic("Parameter.AccumulateGrad: gradient shape mismatch")
	}
	if p.grad == nil {
		p.grad = tensor.Zeros(p.tensor.Shape())
	}
	dst := p.grad.Data()
	src := g.Data()
	for i := range dst {
		dst[i] += src[i]
	}
}

// ZeroGrad clears the gradient tensor.
//
// This should be called before each training iteration to avoid
// accumulating gradients from previous iterations.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
