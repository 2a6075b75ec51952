package nn

import (
	"fmt"

	"github.com/folio-ml/folio/internal/tensor"
	"github.com/folio-ml/folio/internal/topk"
)

// SparseSelect zeroes all but the K largest entries of each weight row,
// turning dense simplex weights into a fixed-size portfolio selection.
//
// Input rows are expected to lie on the probability simplex (the upstream
// Softmax guarantees this; SparseSelect does not re-enforce it). With
// renormalize the K survivors are rescaled to sum to 1; without it they keep
// their original magnitudes and the row sum drops to the retained mass.
//
// The selection mask is recomputed on every forward pass and treated as a
// constant by the backward pass: gradient flows only through the retained
// entries, zeroed positions receive exactly zero gradient.
//
// K and renormalize are fixed at construction for the lifetime of the layer.
type SparseSelect struct {
	k           int
	renormalize bool

	lastMasks  [][]bool       // per-row selection masks
	lastSums   []float32      // per-row retained mass (pre-renormalization)
	lastOutput *tensor.Tensor // cached for renormalized backward
}

// NewSparseSelect creates a selector retaining the k largest entries per row.
func NewSparseSelect(k int, renormalize bool) *SparseSelect {
	return &SparseSelect{k: k, renormalize: renormalize}
}

// Forward sparsifies a [batch, n] weight tensor row by row.
//
// Panics if k is outside [1, n]; the layer sits inside a model whose widths
// are fixed at construction, so a mismatch is a programmer error.
func (s *SparseSelect) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("SparseSelect.Forward: expected 2D input [batch, n], got shape %v", shape))
	}

	batch := shape[0]
	output := tensor.Zeros(shape)
	s.lastMasks = make([][]bool, batch)
	s.lastSums = make([]float32, batch)

	for i := 0; i < batch; i++ {
		row := input.Row(i)
		mask, err := topk.Mask(row, s.k)
		if err != nil {
			panic(fmt.Sprintf("SparseSelect.Forward: %v", err))
		}

		out := output.Row(i)
		var retained float32
		for j, keep := range mask {
			if keep {
				out[j] = row[j]
				retained += row[j]
			}
		}
		if s.renormalize && retained > 0 {
			for j := range out {
				out[j] /= retained
			}
		}

		s.lastMasks[i] = mask
		s.lastSums[i] = retained
	}

	s.lastOutput = output
	return output
}

// Backward propagates the gradient through the retained entries only.
//
// Without renormalization the mask acts as an identity on the survivors:
//
//	dx_j = m_j * g_j
//
// With renormalization y_j = m_j * x_j / s, so:
//
//	dx_j = m_j * (g_j - sum_i g_i * y_i) / s
func (s *SparseSelect) Backward(grad *tensor.Tensor) *tensor.Tensor {
	if s.lastMasks == nil {
		panic("SparseSelect.Backward: called before Forward")
	}
	if !grad.Shape().Equal(s.lastOutput.Shape()) {
		panic(fmt.Sprintf("SparseSelect.Backward: gradient shape %v does not match output shape %v",
			grad.Shape(), s.lastOutput.Shape()))
	}

	shape := grad.Shape()
	gradIn := tensor.Zeros(shape)
	for i := 0; i < shape[0]; i++ {
		g := grad.Row(i)
		gx := gradIn.Row(i)
		mask := s.lastMasks[i]

		if !s.renormalize || s.lastSums[i] == 0 {
			for j, keep := range mask {
				if keep {
					gx[j] = g[j]
				}
			}
			continue
		}

		y := s.lastOutput.Row(i)
		var dot float32
		for j := range g {
			dot += g[j] * y[j]
		}
		for j, keep := range mask {
			if keep {
				gx[j] = (g[j] - dot) / s.lastSums[i]
			}
		}
	}
	return gradIn
}

// Parameters returns an empty slice (SparseSelect has no trainable parameters).
func (s *SparseSelect) Parameters() []*Parameter {
	return nil
}

// K returns the number of entries retained per row.
func (s *SparseSelect) K() int {
	return s.k
}

// Renormalize reports whether retained entries are rescaled to sum to 1.
func (s *SparseSelect) Renormalize() bool {
	return s.renormalize
}
