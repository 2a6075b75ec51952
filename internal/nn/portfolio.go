package nn

import (
	"fmt"

	"github.com/folio-ml/folio/internal/tensor"
)

// PortfolioReturn combines sparse allocation weights with realized asset
// returns into one portfolio return per time step:
//
//	r_portfolio[t] = sum_i weights[t, i] * returns[t, i]
//
// It is not a Module: it takes two inputs, and gradient only flows back to
// the weights. The returns are observed market data, not model output.
type PortfolioReturn struct {
	lastReturns *tensor.Tensor // cached for backward
}

// NewPortfolioReturn creates a new portfolio return node.
func NewPortfolioReturn() *PortfolioReturn {
	return &PortfolioReturn{}
}

// Forward computes the per-step portfolio return.
//
// weights and returns must both have shape [steps, n_assets]; the result
// has shape [steps].
func (p *PortfolioReturn) Forward(weights, returns *tensor.Tensor) *tensor.Tensor {
	wShape := weights.Shape()
	if len(wShape) != 2 {
		panic(fmt.Sprintf("PortfolioReturn.Forward: expected 2D weights [steps, assets], got shape %v", wShape))
	}
	if !wShape.Equal(returns.Shape()) {
		panic(fmt.Sprintf("PortfolioReturn.Forward: weights shape %v does not match returns shape %v",
			wShape, returns.Shape()))
	}

	p.lastReturns = returns

	out := tensor.Zeros(tensor.Shape{wShape[0]})
	data := out.Data()
	for t := 0; t < wShape[0]; t++ {
		w := weights.Row(t)
		r := returns.Row(t)
		var sum float32
		for i := range w {
			sum += w[i] * r[i]
		}
		data[t] = sum
	}
	return out
}

// Backward propagates a [steps] gradient back to the weights:
//
//	dW[t, i] = g[t] * returns[t, i]
func (p *PortfolioReturn) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if p.lastReturns == nil {
		panic("PortfolioReturn.Backward: called before Forward")
	}
	shape := p.lastReturns.Shape()
	gradShape := grad.Shape()
	if len(gradShape) != 1 || gradShape[0] != shape[0] {
		panic(fmt.Sprintf("PortfolioReturn.Backward: expected gradient shape [%d], got %v", shape[0], gradShape))
	}

	g := grad.Data()
	gradW := tensor.Zeros(shape)
	for t := 0; t < shape[0]; t++ {
		r := p.lastReturns.Row(t)
		gw := gradW.Row(t)
		for i := range r {
			gw[i] = g[t] * r[i]
		}
	}
	return gradW
}
