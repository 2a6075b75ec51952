package nn

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/folio-ml/folio/internal/tensor"
)

// sharpeEps keeps the loss finite when the return series has zero volatility.
const sharpeEps = 1e-8

// Sharpe computes the Sharpe ratio of a return series: mean excess return
// over the risk-free rate, divided by the sample standard deviation.
func Sharpe(returns []float32, riskFree float64) float64 {
	r := toFloat64(returns)
	mean := stat.Mean(r, nil)
	std := stat.StdDev(r, nil)
	return (mean - riskFree) / (std + sharpeEps)
}

// SharpeLoss is the training objective of the allocation model: the negative
// Sharpe ratio of the portfolio return series. Minimizing it maximizes mean
// return relative to volatility.
type SharpeLoss struct {
	riskFree float64

	lastReturns *tensor.Tensor // cached for backward
}

// NewSharpeLoss creates a Sharpe-ratio loss with the given per-step
// risk-free rate (use 0 for raw returns).
func NewSharpeLoss(riskFree float64) *SharpeLoss {
	return &SharpeLoss{riskFree: riskFree}
}

// Forward computes loss = -(mean(r) - riskFree) / stddev(r) for a [steps]
// return series. At least two observations are required for the standard
// deviation to be defined.
func (l *SharpeLoss) Forward(returns *tensor.Tensor) float32 {
	shape := returns.Shape()
	if len(shape) != 1 {
		panic(fmt.Sprintf("SharpeLoss.Forward: expected 1D return series, got shape %v", shape))
	}
	if shape[0] < 2 {
		panic("SharpeLoss.Forward: need at least 2 return observations")
	}

	l.lastReturns = returns
	return float32(-Sharpe(returns.Data(), l.riskFree))
}

// Backward returns the gradient of the loss with respect to each return.
//
// With m = mean(r), s = sample stddev(r), d = s + eps and T observations:
//
//	dL/dr_t = -((1/T)*d - (m - riskFree) * (r_t - m) / ((T-1)*s)) / d^2
//
// When s is zero the stddev term has no defined direction and is dropped.
func (l *SharpeLoss) Backward() *tensor.Tensor {
	if l.lastReturns == nil {
		panic("SharpeLoss.Backward: called before Forward")
	}

	r := toFloat64(l.lastReturns.Data())
	n := float64(len(r))
	mean := stat.Mean(r, nil)
	std := stat.StdDev(r, nil)
	denom := std + sharpeEps

	grad := tensor.Zeros(l.lastReturns.Shape())
	g := grad.Data()
	for t, rt := range r {
		var dStd float64
		if std > 0 {
			dStd = (rt - mean) / ((n - 1) * std)
		}
		g[t] = float32(-((1/n)*denom - (mean-l.riskFree)*dStd) / (denom * denom))
	}
	return grad
}

func toFloat64(xs []float32) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
