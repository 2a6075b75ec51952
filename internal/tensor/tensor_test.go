package tensor

import (
	"math/rand"
	"testing"
)

// TestShapeBasics covers NumElements, Equal, Clone and stride computation.
func TestShapeBasics(t *testing.T) {
	s := Shape{2, 3}

	if s.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", s.NumElements())
	}
	if !s.Equal(Shape{2, 3}) {
		t.Error("Equal() = false for identical shapes")
	}
	if s.Equal(Shape{3, 2}) {
		t.Error("Equal() = true for different shapes")
	}

	clone := s.Clone()
	clone[0] = 9
	if s[0] != 2 {
		t.Error("Clone() must not share backing storage")
	}

	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i, w := range want {
		if strides[i] != w {
			t.Errorf("stride[%d] = %d, want %d", i, strides[i], w)
		}
	}
}

// TestShapeValidate rejects non-positive dimensions.
func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate() = %v for valid shape", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate() = nil for zero dimension")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("Validate() = nil for negative dimension")
	}
}

// TestFromSlice verifies element layout and length checking.
func TestFromSlice(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6}

	x, err := FromSlice(data, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if x.At(0, 0) != 1 || x.At(0, 2) != 3 || x.At(1, 0) != 4 {
		t.Errorf("row-major layout broken: got %v", x.Data())
	}

	// Copy semantics: mutating the source must not change the tensor.
	data[0] = 99
	if x.At(0, 0) != 1 {
		t.Error("FromSlice must copy its input")
	}

	if _, err := FromSlice(data, Shape{2, 2}); err == nil {
		t.Error("expected error for mismatched length")
	}
}

// TestRow verifies zero-copy row access.
func TestRow(t *testing.T) {
	x, err := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	row := x.Row(1)
	if row[0] != 3 || row[1] != 4 {
		t.Errorf("Row(1) = %v, want [3 4]", row)
	}

	row[0] = 30
	if x.At(1, 0) != 30 {
		t.Error("Row() must be a zero-copy view")
	}
}

// TestCloneIndependent verifies deep copies.
func TestCloneIndependent(t *testing.T) {
	x := Full(Shape{3}, 1.5)
	y := x.Clone()
	y.Set(9, 0)

	if x.At(0) != 1.5 {
		t.Error("Clone() must not share backing storage")
	}
}

// TestRandnSeeded verifies explicit generators make creation reproducible.
func TestRandnSeeded(t *testing.T) {
	a := Randn(Shape{4}, rand.New(rand.NewSource(11)))
	b := Randn(Shape{4}, rand.New(rand.NewSource(11)))

	for i := range a.Data() {
		if a.At(i) != b.At(i) {
			t.Errorf("same seed must give same values at %d", i)
		}
	}
}

// TestItem covers the scalar accessor.
func TestItem(t *testing.T) {
	x := Full(Shape{1}, 2.5)
	if x.Item() != 2.5 {
		t.Errorf("Item() = %v, want 2.5", x.Item())
	}

	defer func() {
		if recover() == nil {
			t.Error("Item() must panic for multi-element tensors")
		}
	}()
	Full(Shape{2}, 1).Item()
}

// TestInvalidShape verifies New rejects invalid shapes and Zeros panics.
func TestInvalidShape(t *testing.T) {
	if _, err := New(Shape{0}); err == nil {
		t.Error("New must reject zero dimensions")
	}

	defer func() {
		if recover() == nil {
			t.Error("Zeros must panic on invalid shape")
		}
	}()
	Zeros(Shape{-1})
}
