// Package preview turns rendered frames into PNG images for debugging and
// for the HTTP API.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/i474232898/weather-epaper/internal/display"
)

// MaxScale bounds the upscale factor.
const MaxScale = 8

const captionHeight = 18

// Upscale returns the canvas composite enlarged scale times with
// nearest-neighbour sampling, so single pixels stay crisp.
func Upscale(c *display.Canvas, scale int) *image.RGBA {
	src := c.Image()
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// EncodePNG writes the canvas as PNG. A non-empty caption is written in a
// strip below the panel image.
func EncodePNG(w io.Writer, c *display.Canvas, scale int, caption string) error {
	if scale < 1 || scale > MaxScale {
		return fmt.Errorf("scale %d outside 1..%d", scale, MaxScale)
	}
	img := Upscale(c, scale)
	b := img.Bounds()

	height := b.Dy()
	if caption != "" {
		height += captionHeight
	}
	dc := gg.NewContext(b.Dx(), height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(img, 0, 0)

	if caption != "" {
		dc.SetColor(color.Gray{Y: 0x60})
		dc.DrawLine(0, float64(b.Dy())+0.5, float64(b.Dx()), float64(b.Dy())+0.5)
		dc.SetLineWidth(1)
		dc.Stroke()
		dc.DrawStringAnchored(caption, 4, float64(b.Dy())+captionHeight/2, 0, 0.5)
	}
	return dc.EncodePNG(w)
}
