package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-ml/folio/internal/tensor"
)

// TestModel_EndToEnd wires the full allocation pipeline and checks that a
// plain gradient-descent loop improves the Sharpe objective.
func TestModel_EndToEnd(t *testing.T) {
	const (
		nAssets = 6
		steps   = 40
		topK    = 3
	)

	rng := rand.New(rand.NewSource(7))

	// Synthetic market: asset 0 has positive drift and low noise, the rest
	// are zero-drift noise. Concentrating weight on asset 0 raises the
	// Sharpe ratio, so training has a clear direction.
	features := tensor.Randn(tensor.Shape{steps, nAssets}, rng)
	returns := tensor.Zeros(tensor.Shape{steps, nAssets})
	for s := 0; s < steps; s++ {
		row := returns.Row(s)
		row[0] = 0.01 + 0.002*float32(rng.NormFloat64())
		for i := 1; i < nAssets; i++ {
			row[i] = 0.01 * float32(rng.NormFloat64())
		}
	}

	model := NewSequential(
		NewDense(nAssets, nAssets, rng),
		NewSoftmax(),
		NewSparseSelect(topK, false),
	)
	portfolio := NewPortfolioReturn()
	loss := NewSharpeLoss(0)

	step := func(update bool) float32 {
		for _, p := range model.Parameters() {
			p.ZeroGrad()
		}

		weights := model.Forward(features)
		series := portfolio.Forward(weights, returns)
		l := loss.Forward(series)

		model.Backward(portfolio.Backward(loss.Backward()))

		if update {
			const lr = 0.01
			for _, p := range model.Parameters() {
				g := p.Grad()
				require.NotNil(t, g)
				data := p.Tensor().Data()
				gd := g.Data()
				for i := range data {
					data[i] -= lr * gd[i]
				}
			}
		}
		return l
	}

	initial := step(true)
	var final float32
	for i := 0; i < 100; i++ {
		final = step(true)
	}

	assert.LessOrEqual(t, final, initial+1e-4,
		"gradient descent must not worsen the Sharpe objective (initial %v, final %v)", initial, final)

	// Every weight row stays a valid sparse selection: topK non-zero
	// entries, all non-negative.
	weights := model.Forward(features)
	for s := 0; s < steps; s++ {
		nonZero := 0
		for _, w := range weights.Row(s) {
			assert.GreaterOrEqual(t, w, float32(0))
			if w != 0 {
				nonZero++
			}
		}
		assert.Equal(t, topK, nonZero, "step %d", s)
	}
}

// TestSequential_BackwardOrder verifies Backward visits modules in reverse,
// producing an input gradient of the input's shape.
func TestSequential_BackwardOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	model := NewSequential(
		NewDense(4, 4, rng),
		NewSoftmax(),
		NewSparseSelect(2, false),
	)

	input := tensor.Randn(tensor.Shape{5, 4}, rng)
	output := model.Forward(input)
	require.True(t, output.Shape().Equal(tensor.Shape{5, 4}))

	gradIn := model.Backward(tensor.Full(tensor.Shape{5, 4}, 0.5))
	assert.True(t, gradIn.Shape().Equal(input.Shape()))

	assert.Len(t, model.Parameters(), 2, "dense weight and bias only")
	assert.Equal(t, 3, model.Len())
}
