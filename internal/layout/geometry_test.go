package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleNeverBelowOne(t *testing.T) {
	for min := -50; min <= 60; min += 7 {
		for max := min; max <= 60; max += 5 {
			for _, h := range []int{0, 1, 10, 120, 160, 1000} {
				assert.GreaterOrEqual(t, Scale(min, max, h), 1, "min=%d max=%d h=%d", min, max, h)
			}
		}
	}
}

func TestScaleInvertedRange(t *testing.T) {
	assert.Equal(t, 1, Scale(40, -40, 120))
	assert.Equal(t, 1, Scale(10, 0, 120))
}

func TestScaleFlatSeries(t *testing.T) {
	assert.Equal(t, 12, Scale(7, 7, 120))
}

func TestNewRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		height   int
		base     int
		want     Range
	}{
		{"negative minimum", -5, 15, 120, 25, Range{Scale: 4, Offset: 65}},
		{"formula scenario", -5, 20, 120, 25, Range{Scale: 3, Offset: 55}},
		{"positive minimum", 5, 25, 120, 25, Range{Scale: 4, Offset: 25}},
		{"zero minimum", 0, 10, 160, 80, Range{Scale: 8, Offset: 80}},
		{"wide range clamps", -40, 50, 20, 0, Range{Scale: 1, Offset: 45}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRange(tt.min, tt.max, tt.height, tt.base))
		})
	}
}

func TestPosY(t *testing.T) {
	r := NewRange(-5, 15, 120, 25)
	require.Equal(t, Range{Scale: 4, Offset: 65}, r)

	assert.Equal(t, -65, r.PosY(0))
	assert.Equal(t, -25, r.PosY(-10))
	assert.Equal(t, -145, r.PosY(20))
	// rounds half away from zero
	assert.Equal(t, -77, r.PosY(2.5))
	assert.Equal(t, -53, r.PosY(-2.5))
	assert.Equal(t, -69, r.PosY(1.4))
}

func TestPosYNonIncreasing(t *testing.T) {
	for _, r := range []Range{
		NewRange(-5, 20, 120, 25),
		NewRange(-30, 40, 160, 80),
		NewRange(10, 12, 120, 0),
		NewRange(30, -30, 120, 25),
	} {
		prev := r.PosY(-50)
		for temp := -49.75; temp <= 60; temp += 0.25 {
			y := r.PosY(temp)
			assert.LessOrEqual(t, y, prev, "range %+v temp %.2f", r, temp)
			prev = y
		}
	}
}

func TestPosXStrictlyIncreasing(t *testing.T) {
	for _, mul := range []int{1, 10, 18, 20} {
		prev := -1
		seen := map[int]int{}
		for day := 0; day < MaxDays; day++ {
			for slot := 0; slot < SlotsPerDay; slot++ {
				x := PosX(day, slot, mul)
				assert.Greater(t, x, prev)
				idx := day*SlotsPerDay + slot
				if other, ok := seen[idx]; ok {
					assert.Equal(t, other, x)
				}
				seen[idx] = x
				prev = x
			}
		}
	}
}

func TestPosXCombinedIndex(t *testing.T) {
	// slot 8 of day 0 is slot 0 of day 1
	assert.Equal(t, PosX(1, 0, 10), PosX(0, 8, 10))
	assert.Equal(t, 320, PosX(3, 8, 10))
	assert.Equal(t, 40, PosX(0, 4, 10))
}

func TestGridlines(t *testing.T) {
	assert.Equal(t, []int{-10, 0, 10, 20}, Gridlines(-5, 20, -30, 50, 10))
	assert.Equal(t, []int{-20, -10, 0, 10, 20, 30, 40}, Gridlines(-40, 60, -20, 40, 10))
	assert.Equal(t, []int{10}, Gridlines(7, 7, -30, 50, 10))
	assert.Empty(t, Gridlines(80, 90, -30, 50, 10))
	assert.Nil(t, Gridlines(-5, 20, -30, 50, 0))
}
