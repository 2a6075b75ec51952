package nn

import (
	"fmt"
	"math"

	"github.com/folio-ml/folio/internal/tensor"
)

// Softmax maps each row of raw asset scores onto the probability simplex:
// non-negative entries summing to 1.
//
// The maximum of each row is subtracted before exponentiation for numerical
// stability, which leaves the result unchanged.
type Softmax struct {
	lastOutput *tensor.Tensor // cached for backward
}

// NewSoftmax creates a new row-wise Softmax layer.
func NewSoftmax() *Softmax {
	return &Softmax{}
}

// Forward applies softmax along the last dimension of a [batch, n] input.
func (s *Softmax) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Softmax.Forward: expected 2D input [batch, n], got shape %v", shape))
	}

	output := tensor.Zeros(shape)
	for i := 0; i < shape[0]; i++ {
		row := input.Row(i)
		out := output.Row(i)

		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}

		var sum float32
		for j, v := range row {
			e := float32(math.Exp(float64(v - maxVal)))
			out[j] = e
			sum += e
		}
		for j := range out {
			out[j] /= sum
		}
	}

	s.lastOutput = output
	return output
}

// Backward computes the softmax vector-Jacobian product row-wise:
//
//	dx_i = y_i * (g_i - sum_j g_j * y_j)
func (s *Softmax) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if s.lastOutput == nil {
		panic("Softmax.Backward: called before Forward")
	}
	if !grad.Shape().Equal(s.lastOutput.Shape()) {
		panic(fmt.Sprintf("Softmax.Backward: gradient shape %v does not match output shape %v",
			grad.Shape(), s.lastOutput.Shape()))
	}

	shape := grad.Shape()
	gradIn := tensor.Zeros(shape)
	for i := 0; i < shape[0]; i++ {
		g := grad.Row(i)
		y := s.lastOutput.Row(i)
		gx := gradIn.Row(i)

		var dot float32
		for j := range g {
			dot += g[j] * y[j]
		}
		for j := range g {
			gx[j] = y[j] * (g[j] - dot)
		}
	}
	return gradIn
}

// Parameters returns an empty slice (Softmax has no trainable parameters).
func (s *Softmax) Parameters() []*Parameter {
	return nil
}
