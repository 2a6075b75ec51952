package nn

import (
	"fmt"
	"math/rand"

	"github.com/folio-ml/folio/internal/tensor"
)

// Dense implements a fully connected scoring layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// In an allocation model Dense produces one raw score per candidate asset;
// Softmax then turns the scores into simplex weights.
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
type Dense struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]

	lastInput *tensor.Tensor // cached for backward
}

// NewDense creates a new Dense layer.
//
// Weights are drawn from the Xavier/Glorot uniform distribution using the
// supplied generator; biases start at zero.
func NewDense(inFeatures, outFeatures int, rng *rand.Rand) *Dense {
	weightShape := tensor.Shape{outFeatures, inFeatures}
	weight := NewParameter("weight", Xavier(inFeatures, outFeatures, weightShape, rng))
	bias := NewParameter("bias", Zeros(tensor.Shape{outFeatures}))

	return &Dense{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// Forward computes y = x @ W.T + b.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (d *Dense) Forward(input *tensor.Tensor) *tensor.Tensor {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Dense.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != d.inFeatures {
		panic(fmt.Sprintf("Dense.Forward: expected input with %d features, got %d", d.inFeatures, inputShape[1]))
	}

	d.lastInput = input

	batch := inputShape[0]
	w := d.weight.Tensor().Data() // [out, in] row-major
	b := d.bias.Tensor().Data()   // [out]

	output := tensor.Zeros(tensor.Shape{batch, d.outFeatures})
	for i := 0; i < batch; i++ {
		row := input.Row(i)
		out := output.Row(i)
		for o := 0; o < d.outFeatures; o++ {
			sum := b[o]
			wRow := w[o*d.inFeatures : (o+1)*d.inFeatures]
			for j, x := range row {
				sum += x * wRow[j]
			}
			out[o] = sum
		}
	}
	return output
}

// Backward propagates grad [batch, out_features] to the input, accumulating
// weight and bias gradients:
//
//	dW = g.T @ x    db = sum over batch of g    dx = g @ W
func (d *Dense) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if d.lastInput == nil {
		panic("Dense.Backward: called before Forward")
	}
	gradShape := grad.Shape()
	batch := d.lastInput.Shape()[0]
	if len(gradShape) != 2 || gradShape[0] != batch || gradShape[1] != d.outFeatures {
		panic(fmt.Sprintf("Dense.Backward: expected gradient shape [%d, %d], got %v", batch, d.outFeatures, gradShape))
	}

	w := d.weight.Tensor().Data()
	gradW := tensor.Zeros(tensor.Shape{d.outFeatures, d.inFeatures})
	gradB := tensor.Zeros(tensor.Shape{d.outFeatures})
	gradIn := tensor.Zeros(tensor.Shape{batch, d.inFeatures})

	gw := gradW.Data()
	gb := gradB.Data()
	for i := 0; i < batch; i++ {
		g := grad.Row(i)
		x := d.lastInput.Row(i)
		gx := gradIn.Row(i)
		for o := 0; o < d.outFeatures; o++ {
			gb[o] += g[o]
			wRow := w[o*d.inFeatures : (o+1)*d.inFeatures]
			gwRow := gw[o*d.inFeatures : (o+1)*d.inFeatures]
			for j := range x {
				gwRow[j] += g[o] * x[j]
				gx[j] += g[o] * wRow[j]
			}
		}
	}

	d.weight.AccumulateGrad(gradW)
	d.bias.AccumulateGrad(gradB)
	return gradIn
}

// Parameters returns the trainable parameters of this layer.
func (d *Dense) Parameters() []*Parameter {
	return []*Parameter{d.weight, d.bias}
}

// Weight returns the weight parameter.
func (d *Dense) Weight() *Parameter {
	return d.weight
}

// Bias returns the bias parameter.
func (d *Dense) Bias() *Parameter {
	return d.bias
}

// InFeatures returns the number of input features.
func (d *Dense) InFeatures() int {
	return d.inFeatures
}

// OutFeatures returns the number of output features.
func (d *Dense) OutFeatures() int {
	return d.outFeatures
}
