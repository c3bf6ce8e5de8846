package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestArithmetic(t *testing.T) {
	a := New(3, 4)
	b := New(1, -2)

	assert.Equal(t, New(4, 2), a.Add(b))
	assert.Equal(t, New(2, 6), a.Sub(b))
	assert.Equal(t, New(6, 8), a.Scale(2))
	assert.Equal(t, New(1.5, 2), a.Div(2))
	assert.Equal(t, New(-3, -4), a.Neg())
	assert.Equal(t, 5.0, a.Len())
	assert.InDelta(t, math.Sqrt(40), a.Dist(b), 1e-12)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Zero, Zero.Normalize())
	n := New(0, -7).Normalize()
	assert.Equal(t, New(0, -1), n)
	assert.Equal(t, New(1, 0), New(9, 5).Sub(New(2, 5)).Normalize())
}

func TestLerpClampsFactor(t *testing.T) {
	from := New(0, 0)
	to := New(10, -10)

	tests := []struct {
		factor float64
		want   Vec2
	}{
		{-1, New(0, 0)},
		{0, New(0, 0)},
		{0.25, New(2.5, -2.5)},
		{1, to},
		{math.Inf(1), to},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, from.Lerp(to, tt.factor), "factor %v", tt.factor)
	}
}

func TestClamp(t *testing.T) {
	limit := New(5, 5)
	assert.Equal(t, New(5, -5), New(12, -80).Clamp(limit))
	assert.Equal(t, New(1, 2), New(1, 2).Clamp(limit))
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Zero, Centroid(nil))
	assert.Equal(t, New(2, 1), Centroid([]Vec2{New(0, 0), New(4, 0), New(2, 3)}))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, New(1, 2).IsFinite())
	assert.False(t, New(math.NaN(), 0).IsFinite())
	assert.False(t, New(0, math.Inf(-1)).IsFinite())
}

func TestConvertsToR2(t *testing.T) {
	v := New(3, 4)
	assert.Equal(t, r2.Vec{X: 3, Y: 4}, r2.Vec(v))
	assert.Equal(t, r2.Norm(r2.Vec(v)), v.Len())
	assert.Equal(t, Vec2(r2.Add(r2.Vec(v), r2.Vec{X: 1, Y: 1})), v.Add(New(1, 1)))
}
