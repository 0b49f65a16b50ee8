package icons

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

// ErrUnknownCode is returned for condition ids outside the table.
var ErrUnknownCode = errors.New("unknown weather condition code")

// Palette is the two-colour palette every icon is quantised to.
var Palette = color.Palette{color.White, color.Black}

// SunIconSize is the edge length of the sunrise/sunset markers.
const SunIconSize = 16

var glyphSources = map[Glyph][]byte{
	Thunderstorm: icons.ImageFlashOn,
	Lightning:    icons.ImageFlashOn,
	StormShowers: icons.ImageFlashOn,
	Sprinkle:     icons.ImageGrain,
	Hail:         icons.ImageGrain,
	Rain:         icons.ActionInvertColors,
	Showers:      icons.ActionInvertColors,
	RainMix:      icons.ActionOpacity,
	Sleet:        icons.ActionOpacity,
	Snow:         icons.PlacesACUnit,
	Cold:         icons.PlacesACUnit,
	Smoke:        icons.ImageBlurOn,
	Haze:         icons.ImageBlurOn,
	Dust:         icons.ImageBlurOn,
	Fog:          icons.ImageBlurOn,
	Tornado:      icons.AlertWarning,
	Hurricane:    icons.AlertWarning,
	Sunny:        icons.ImageWBSunny,
	CloudyGusts:  icons.ImageFilterDrama,
	Cloudy:       icons.ImageWBCloudy,
	Hot:          icons.SocialWhatsHot,
	Windy:        icons.HardwareToys,
	StrongWind:   icons.HardwareToys,
}

// Table is an immutable condition-code to bitmap lookup. It is safe for
// concurrent use once built.
type Table struct {
	size    int
	byCode  map[int]*image.Paletted
	sunrise *image.Paletted
	sunset  *image.Paletted
}

// NewTable rasterises every glyph at size x size pixels.
func NewTable(size int) (*Table, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icon size must be positive, got %d", size)
	}

	byGlyph := make(map[Glyph]*image.Paletted, len(glyphSources))
	for g, src := range glyphSources {
		img, err := rasterize(src, size)
		if err != nil {
			return nil, fmt.Errorf("glyph %s: %w", g, err)
		}
		byGlyph[g] = img
	}

	t := &Table{size: size, byCode: make(map[int]*image.Paletted, len(codeGlyphs))}
	for code, g := range codeGlyphs {
		t.byCode[code] = byGlyph[g]
	}

	var err error
	if t.sunrise, err = rasterize(icons.NavigationArrowUpward, SunIconSize); err != nil {
		return nil, fmt.Errorf("sunrise glyph: %w", err)
	}
	if t.sunset, err = rasterize(icons.NavigationArrowDownward, SunIconSize); err != nil {
		return nil, fmt.Errorf("sunset glyph: %w", err)
	}
	return t, nil
}

// Size is the edge length of the weather icons.
func (t *Table) Size() int { return t.size }

// Resolve returns the bitmap for an OpenWeather condition id.
func (t *Table) Resolve(code int) (image.Image, error) {
	img, ok := t.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}
	return img, nil
}

func (t *Table) Sunrise() image.Image { return t.sunrise }
func (t *Table) Sunset() image.Image  { return t.sunset }

// Codes lists every known condition id in ascending order.
func (t *Table) Codes() []int {
	out := make([]int, 0, len(t.byCode))
	for c := range t.byCode {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

// rasterize renders an IconVG glyph in black on white and thresholds the
// anti-aliased result to the two-colour palette.
func rasterize(src []byte, size int) (*image.Paletted, error) {
	r := image.Rect(0, 0, size, size)
	rgba := image.NewRGBA(r)
	draw.Draw(rgba, r, image.White, image.Point{}, draw.Src)

	var z iconvg.Rasterizer
	z.SetDstImage(rgba, r, draw.Over)
	if err := iconvg.Decode(&z, src, nil); err != nil {
		return nil, err
	}

	out := image.NewPaletted(r, Palette)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := rgba.RGBAAt(x, y)
			lum := (299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000
			if lum < 0x80 {
				out.SetColorIndex(x, y, 1)
			}
		}
	}
	return out, nil
}
