package render

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-epaper/internal/display"
	"github.com/i474232898/weather-epaper/internal/icons"
	"github.com/i474232898/weather-epaper/internal/weather"
)

func days(codes ...int) []weather.DaySummary {
	out := make([]weather.DaySummary, len(codes))
	for i, c := range codes {
		out[i] = weather.DaySummary{
			Weekday: time.Weekday((1 + i) % 7),
			Min:     float64(-i),
			Max:     float64(10 + i),
			Code:    c,
		}
	}
	return out
}

func TestAnnotatePositions(t *testing.T) {
	v := variant(t, "epd4in2")
	rec := newRecorder(v.Width, v.Height)

	skipped, err := Annotate(rec, v, days(800, 500, 600, 804), stubIcons{}, false)
	require.NoError(t, err)
	assert.Empty(t, skipped)

	texts := rec.ops("text")
	bitmaps := rec.ops("bitmap")
	require.Len(t, texts, 4)
	require.Len(t, bitmaps, 4)
	for d := 0; d < 4; d++ {
		mid := v.PosX(d, 4)
		assert.Equal(t, image.Pt(mid, v.Height).Add(v.TextOffset), texts[d].a)
		assert.Equal(t, image.Pt(mid, v.Height).Add(v.IconOffset), bitmaps[d].a)
	}
	assert.Equal(t, "0/10C", texts[0].text)
	assert.Equal(t, "-3/13C", texts[3].text)
}

func TestAnnotateWeekday(t *testing.T) {
	v := variant(t, "epd7in5bc")
	rec := newRecorder(v.Width, v.Height)

	_, err := Annotate(rec, v, days(800, 801), stubIcons{}, false)
	require.NoError(t, err)

	texts := rec.ops("text")
	require.Len(t, texts, 4)
	assert.Equal(t, "Mon", texts[0].text)
	assert.Equal(t, display.Chromatic, texts[0].plane)
	assert.Equal(t, display.FontMedium, texts[0].font)
	assert.Equal(t, "0C\n10C", texts[1].text)
	assert.Equal(t, "Tue", texts[2].text)
}

func TestAnnotateMissingIconSkipsOnlyThatDay(t *testing.T) {
	v := variant(t, "epd4in2")
	rec := newRecorder(v.Width, v.Height)

	skipped, err := Annotate(rec, v, days(800, 999, 500, 804), stubIcons{missing: map[int]bool{999: true}}, false)
	require.NoError(t, err)

	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Day)
	assert.Equal(t, 999, skipped[0].Code)
	assert.ErrorIs(t, &skipped[0], errStubUnknown)

	assert.Len(t, rec.ops("bitmap"), 3)
	assert.Len(t, rec.ops("text"), 4, "the day without an icon still shows its text")
}

func TestAnnotateWithRealIconTable(t *testing.T) {
	v := variant(t, "epd4in2")
	tbl, err := icons.NewTable(v.IconSize)
	require.NoError(t, err)
	c := display.NewCanvas(v.Width, v.Height, v.Chromatic)

	skipped, err := Annotate(c, v, days(800, 999, 500, 804), tbl, false)
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, &skipped[0], icons.ErrUnknownCode)
}

func TestAnnotateStrict(t *testing.T) {
	v := variant(t, "epd4in2")
	rec := newRecorder(v.Width, v.Height)

	_, err := Annotate(rec, v, days(800, 999, 500), stubIcons{missing: map[int]bool{999: true}}, true)
	var derr *DayError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, derr.Day)
	assert.Len(t, rec.ops("bitmap"), 1, "nothing after the failing day is drawn")
}

func TestAnnotateUnknownColourIsIconFailure(t *testing.T) {
	v := variant(t, "epd4in2")
	rec := newRecorder(v.Width, v.Height)

	skipped, err := Annotate(rec, v, days(800, 500), stubIcons{grey: map[int]bool{500: true}}, false)
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, &skipped[0], display.ErrUnknownColor)
}

func TestAnnotateSurfaceErrorAborts(t *testing.T) {
	v := variant(t, "epd4in2")
	rec := newRecorder(v.Width, v.Height)
	rec.failOn = func(c call) error {
		if c.op == "text" {
			return display.ErrOutOfBounds
		}
		return nil
	}
	_, err := Annotate(rec, v, days(800), stubIcons{}, false)
	assert.ErrorIs(t, err, display.ErrOutOfBounds)
}

func TestAnnotateCapsAtFourDays(t *testing.T) {
	v := variant(t, "epd4in2")
	rec := newRecorder(v.Width, v.Height)

	_, err := Annotate(rec, v, days(800, 800, 800, 800, 800), stubIcons{}, false)
	require.NoError(t, err)
	assert.Len(t, rec.ops("bitmap"), 4)
}
