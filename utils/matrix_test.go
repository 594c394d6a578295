package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, A.RawMatrix().Data, []float64{1, 4, 2, 5, 3, 6})
	}
	// SetRange, including negative indices counting back from the end
	{
		M := NewMatrix(3, 4)
		M.SetRange(0, -1, 0, -1, 1)
		assert.Equal(t, 12., sum(M.DataP))
		M.SetRange(1, 1, 1, -2, 0)
		assert.Equal(t, 10., sum(M.DataP))
		assert.Equal(t, 1., M.At(1, 3))
	}
	// Chained mutators share the backing store
	{
		M := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		M.Scale(2).AddScalar(1)
		assert.Equal(t, []float64{3, 5, 7, 9}, M.DataP)
		A := M.Copy().POW(2)
		assert.Equal(t, []float64{9, 25, 49, 81}, A.DataP)
		assert.Equal(t, []float64{3, 5, 7, 9}, M.DataP)
	}
	// Apply2 / Apply3 with multiple operand matrices
	{
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := NewMatrix(2, 2, []float64{10, 20, 30, 40})
		C := NewMatrix(2, 2, []float64{1, 1, 2, 2})
		R := A.Copy().Apply2(func(a, b float64) float64 { return a + b }, B)
		assert.Equal(t, []float64{11, 22, 33, 44}, R.DataP)
		R = A.Copy().Apply3(func(a, b, c float64) float64 { return a*c + b }, B, C)
		assert.Equal(t, []float64{11, 22, 36, 48}, R.DataP)
	}
	// Elementwise arithmetic between matrices
	{
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := NewMatrix(2, 2, []float64{10, 20, 30, 40})
		R := B.Copy().Subtract(A)
		assert.Equal(t, []float64{9, 18, 27, 36}, R.DataP)
		R = A.Copy().ElMul(B)
		assert.Equal(t, []float64{10, 40, 90, 160}, R.DataP)
	}
	// Row and Col extraction
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		r := M.Row(1)
		assert.Equal(t, []float64{4, 5, 6}, r.DataP)
		c := M.Col(2)
		assert.Equal(t, []float64{3, 6}, c.DataP)
		assert.Equal(t, 1., M.Min())
		assert.Equal(t, 6., M.Max())
	}
}

func TestVector(t *testing.T) {
	// Linspace
	{
		v := NewVectorLinspace(-1, 1, 2)
		assert.Equal(t, -1., v.AtVec(0))
		assert.Equal(t, 1., v.AtVec(1))
		v = NewVectorLinspace(-1, 1, 3)
		assert.Equal(t, -1., v.AtVec(0))
		assert.Equal(t, 0., v.AtVec(1))
		assert.Equal(t, 1., v.AtVec(2))
	}
	// Negative index counts back from the end
	{
		v := NewVector(3, []float64{5, 6, 7})
		assert.Equal(t, 7., v.AtVec(-1))
		assert.Equal(t, 6., v.AtVec(-2))
	}
	// Scalar ops
	{
		v := NewVectorConstant(4, 2)
		v.Scale(3).AddScalar(-1)
		assert.Equal(t, []float64{5, 5, 5, 5}, v.DataP)
		assert.Equal(t, 5., v.Min())
		assert.Equal(t, 5., v.Max())
	}
	// Copy detaches the backing store
	{
		v := NewVector(3, []float64{1, 2, 3})
		w := v.Copy().Apply(func(x float64) float64 { return -x })
		assert.Equal(t, []float64{-1, -2, -3}, w.DataP)
		assert.Equal(t, []float64{1, 2, 3}, v.DataP)
	}
}

func TestSparse(t *testing.T) {
	// DOK assembly, CSR multiply against a raw vector
	{
		d := NewDOK(2, 3)
		d.Set(0, 0, 1).Set(0, 2, 2)
		d.Set(1, 1, 3)
		c := d.ToCSR()
		x := []float64{1, 2, 3}
		y := make([]float64, 2)
		c.MulRawVec(x, y)
		assert.Equal(t, []float64{7, 6}, y)
	}
}

func sum(data []float64) (s float64) {
	for _, val := range data {
		s += val
	}
	return
}
