package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/i474232898/weather-epaper/internal/display"
)

type call struct {
	op    string
	plane display.Plane
	a, b  image.Point
	font  display.Font
	text  string
}

// recorder is a Surface that remembers every call and optionally fails.
type recorder struct {
	bounds image.Rectangle
	calls  []call
	failOn func(c call) error
}

func newRecorder(w, h int) *recorder {
	return &recorder{bounds: image.Rect(0, 0, w, h)}
}

func (r *recorder) Bounds() image.Rectangle { return r.bounds }

func (r *recorder) record(c call) error {
	r.calls = append(r.calls, c)
	if r.failOn != nil {
		return r.failOn(c)
	}
	return nil
}

func (r *recorder) DrawLine(p display.Plane, from, to image.Point) error {
	return r.record(call{op: "line", plane: p, a: from, b: to})
}

func (r *recorder) DrawRect(p display.Plane, min, max image.Point) error {
	return r.record(call{op: "rect", plane: p, a: min, b: max})
}

func (r *recorder) DrawText(p display.Plane, at image.Point, f display.Font, s string) error {
	return r.record(call{op: "text", plane: p, a: at, font: f, text: s})
}

func (r *recorder) DrawBitmap(p display.Plane, at image.Point, src image.Image) error {
	if _, err := display.Remap(src); err != nil {
		return err
	}
	return r.record(call{op: "bitmap", plane: p, a: at})
}

func (r *recorder) ops(op string) []call {
	var out []call
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

// stubIcons resolves every code to a small black square except missing ones.
type stubIcons struct {
	missing map[int]bool
	grey    map[int]bool
}

var errStubUnknown = errors.New("unknown code")

func (s stubIcons) Resolve(code int) (image.Image, error) {
	if s.missing[code] {
		return nil, fmt.Errorf("%w: %d", errStubUnknown, code)
	}
	img := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{color.White, color.Black, color.Gray{Y: 0x80}})
	img.SetColorIndex(2, 2, 1)
	if s.grey[code] {
		img.SetColorIndex(3, 3, 2)
	}
	return img, nil
}

func (s stubIcons) Sunrise() image.Image { return image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.White}) }
func (s stubIcons) Sunset() image.Image  { return image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.White}) }
