package render

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-epaper/internal/display"
	"github.com/i474232898/weather-epaper/internal/layout"
	"github.com/i474232898/weather-epaper/internal/weather"
)

func variant(t *testing.T, name string) layout.Variant {
	t.Helper()
	v, err := layout.Lookup(name, nil)
	require.NoError(t, err)
	return v
}

func samples(n int, temps func(i int) float64) []weather.Sample {
	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	out := make([]weather.Sample, n)
	for i := range out {
		t := temps(i)
		out[i] = weather.Sample{
			Time:    start.Add(time.Duration(i) * 3 * time.Hour),
			Temp:    t,
			TempMin: t - 1,
			TempMax: t + 1,
			Code:    800,
		}
	}
	return out
}

// aggregation spanning exactly -5..15 once the current reading is included
func scenario(t *testing.T) weather.Aggregation {
	agg, err := weather.Aggregate(samples(32, func(i int) float64 { return float64(i%10) - 4 }), 4, 15, time.UTC)
	require.NoError(t, err)
	require.Equal(t, -5.0, agg.Min)
	require.Equal(t, 15.0, agg.Max)
	return agg
}

func TestDrawGraph(t *testing.T) {
	v := variant(t, "epd4in2")
	agg := scenario(t)
	rec := newRecorder(v.Width, v.Height)

	rep, err := DrawGraph(rec, v, agg)
	require.NoError(t, err)
	r := rep.Range
	assert.Equal(t, layout.Range{Scale: 4, Offset: 65}, r)
	assert.Equal(t, []int{-10, 0, 10, 20}, rep.Gridlines)
	assert.False(t, rep.Clipped())

	rects := rec.ops("rect")
	require.Len(t, rects, 1)
	assert.Equal(t, image.Pt(0, 155), rects[0].a)
	assert.Equal(t, image.Pt(399, 275), rects[0].b)

	curve := rec.ops("line")[:32]
	// first segment starts at the current reading
	assert.Equal(t, image.Pt(35, 300+r.PosY(15)), curve[0].a)
	assert.Equal(t, image.Pt(45, 300+r.PosY(agg.Series[0])), curve[0].b)
	for i := 1; i < len(curve); i++ {
		assert.Equal(t, curve[i-1].b, curve[i].a, "segments must join")
		assert.Equal(t, 10, curve[i].b.X-curve[i].a.X, "uniform spacing across days")
	}
	assert.Equal(t, 35+320, curve[31].b.X)

	labels := rec.ops("text")
	require.Len(t, labels, 4)
	assert.Equal(t, "-10C", labels[0].text)
	assert.Equal(t, "  0C", labels[1].text)
	assert.Equal(t, image.Pt(0, 300-65), labels[1].a, "0°C sits at pos_y(0) = -65")

	grid := rec.ops("line")[32:]
	require.Len(t, grid, 4)
	for i, g := range grid {
		assert.Equal(t, 35, g.a.X)
		assert.Equal(t, 355, g.b.X)
		assert.Equal(t, labels[i].a.Y, g.a.Y)
	}
	// the lowest gridline lies on the frame's bottom edge
	assert.Equal(t, 275, grid[0].a.Y)
}

func TestDrawGraphCurvePlane(t *testing.T) {
	v := variant(t, "epd7in5bc")
	rec := newRecorder(v.Width, v.Height)

	_, err := DrawGraph(rec, v, scenario(t))
	require.NoError(t, err)
	for _, c := range rec.ops("line")[:32] {
		assert.Equal(t, display.Chromatic, c.plane)
	}
	assert.Equal(t, display.Black, rec.ops("rect")[0].plane)
}

func TestDrawGraphOnCanvas(t *testing.T) {
	for _, name := range []string{"epd4in2", "epd7in5bc"} {
		t.Run(name, func(t *testing.T) {
			v := variant(t, name)
			c := display.NewCanvas(v.Width, v.Height, v.Chromatic)
			_, err := DrawGraph(c, v, scenario(t))
			require.NoError(t, err)
			tl, br := v.GraphRect()
			assert.True(t, c.Ink(display.Black, tl.X, tl.Y))
			assert.True(t, c.Ink(display.Black, br.X, br.Y))
		})
	}
}

func TestDrawGraphPropagatesSurfaceErrors(t *testing.T) {
	errWrite := errors.New("frame buffer write failed")
	v := variant(t, "epd4in2")
	rec := newRecorder(v.Width, v.Height)
	rec.failOn = func(c call) error {
		if c.op == "line" {
			return errWrite
		}
		return nil
	}
	_, err := DrawGraph(rec, v, scenario(t))
	assert.ErrorIs(t, err, errWrite)
}

func TestDrawGraphRecordsClippedLines(t *testing.T) {
	v := variant(t, "epd4in2")
	rec := newRecorder(v.Width, v.Height)
	rec.failOn = func(c call) error {
		if c.op == "line" || c.op == "text" {
			return display.ErrOutOfBounds
		}
		return nil
	}
	rep, err := DrawGraph(rec, v, scenario(t))
	require.NoError(t, err)
	assert.True(t, rep.Clipped())
	assert.Equal(t, 32, rep.ClippedSegments)
	assert.Equal(t, []int{-10, 0, 10, 20}, rep.ClippedGridlines)
	assert.Empty(t, rep.Gridlines)
}

// warm readings put the top of the scale above the first row
func TestDrawGraphHotRangeSkipsTopGridline(t *testing.T) {
	v := variant(t, "epd7in5bc")
	agg, err := weather.Aggregate(samples(32, func(i int) float64 { return float64(29 + i%7) }), 4, 31, time.UTC)
	require.NoError(t, err)
	lo, hi := agg.IntBounds()
	require.Equal(t, 28, lo)
	require.Equal(t, 36, hi)

	c := display.NewCanvas(v.Width, v.Height, v.Chromatic)
	rep, err := DrawGraph(c, v, agg)
	require.NoError(t, err)
	assert.Equal(t, layout.Range{Scale: 8, Offset: 80}, rep.Range)
	assert.Equal(t, []int{30}, rep.Gridlines)
	assert.Equal(t, []int{40}, rep.ClippedGridlines)
	assert.Zero(t, rep.ClippedSegments)

	// the 30C gridline still spans the graph
	y := v.Height + rep.Range.PosY(30)
	assert.True(t, c.Ink(display.Black, v.HorizontalAnchor+10, y))
}

func TestDrawForecastAcrossRanges(t *testing.T) {
	ranges := []struct {
		name    string
		temp    func(i int) float64
		current float64
	}{
		{"warm", func(i int) float64 { return float64(16 + i%9) }, 20},
		{"hot", func(i int) float64 { return float64(29 + i%7) }, 31},
		{"very hot", func(i int) float64 { return float64(38 + i%7) }, 44},
		{"freezing", func(i int) float64 { return float64(-24 + i%9) }, -20},
		{"flat", func(int) float64 { return 7 }, 7},
		{"around zero", func(i int) float64 { return float64(i%5) - 2 }, 0},
	}
	for _, name := range []string{"epd4in2", "epd7in5bc"} {
		v := variant(t, name)
		for _, tc := range ranges {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				agg, err := weather.Aggregate(samples(32, tc.temp), 4, tc.current, time.UTC)
				require.NoError(t, err)

				c := display.NewCanvas(v.Width, v.Height, v.Chromatic)
				rep, err := DrawForecast(c, v, agg, stubIcons{}, true)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, rep.Range.Scale, 1)
				assert.Empty(t, rep.IconErrors)

				lo, hi := agg.IntBounds()
				assert.ElementsMatch(t, v.Gridlines(lo, hi), append(append([]int{}, rep.Gridlines...), rep.ClippedGridlines...))
				for _, g := range rep.Gridlines {
					y := v.Height + rep.Range.PosY(float64(g))
					assert.True(t, image.Pt(0, y).In(c.Bounds()), "gridline %d at y=%d", g, y)
				}
			})
		}
	}
}

func TestDrawForecastReport(t *testing.T) {
	v := variant(t, "epd4in2")
	rec := newRecorder(v.Width, v.Height)

	rep, err := DrawForecast(rec, v, scenario(t), stubIcons{}, false)
	require.NoError(t, err)
	assert.Equal(t, []int{-10, 0, 10, 20}, rep.Gridlines)
	assert.Empty(t, rep.IconErrors)
	assert.Len(t, rec.ops("bitmap"), 4)
}
