package display

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

type face interface {
	// drawLine renders one line of text with its top-left corner at (x, y).
	drawLine(p *plane, x, y int, s string)
	lineHeight() int
}

var faces = map[Font]face{
	FontSmall:  basicFace{face: basicfont.Face7x13},
	FontMedium: tinyFace{font: &freemono.Bold9pt7b, ascent: 13},
	FontLarge:  tinyFace{font: &freemono.Bold18pt7b, ascent: 25},
}

// TextWidth returns the advance of the widest line of s in font f.
func TextWidth(f Font, s string) int {
	switch fc := faces[f].(type) {
	case basicFace:
		return font.MeasureString(fc.face, s).Ceil()
	case tinyFace:
		_, w := tinyfont.LineWidth(fc.font, s)
		return int(w)
	}
	return 0
}

// LineHeight returns the distance between baselines of font f, or zero for an
// unknown font.
func LineHeight(f Font) int {
	if fc, ok := faces[f]; ok {
		return fc.lineHeight()
	}
	return 0
}

type basicFace struct {
	face *basicfont.Face
}

func (f basicFace) drawLine(p *plane, x, y int, s string) {
	d := font.Drawer{
		Dst:  planeImage{p},
		Src:  image.NewUniform(inkColor),
		Face: f.face,
		Dot:  fixed.P(x, y+f.face.Ascent),
	}
	d.DrawString(s)
}

func (f basicFace) lineHeight() int { return f.face.Height }

type tinyFace struct {
	font   tinyfont.Fonter
	ascent int
}

func (f tinyFace) drawLine(p *plane, x, y int, s string) {
	tinyfont.WriteLine(planeDisplayer{p}, f.font, int16(x), int16(y+f.ascent), s, inkColor)
}

func (f tinyFace) lineHeight() int { return int(f.font.GetYAdvance()) }

// planeImage lets font.Drawer composite glyph masks onto a bit plane.
type planeImage struct {
	p *plane
}

var _ draw.Image = planeImage{}

// glyphs outside the plane still reach Set so that clipping is counted
var unclipped = image.Rect(-1<<15, -1<<15, 1<<15, 1<<15)

func (i planeImage) ColorModel() color.Model { return color.RGBAModel }
func (i planeImage) Bounds() image.Rectangle { return unclipped }
func (i planeImage) At(x, y int) color.Color {
	if (image.Point{X: x, Y: y}).In(i.p.bits.Rect) && i.p.bits.BitAt(x, y) == image1bit.On {
		return inkColor
	}
	return paperColor
}

func (i planeImage) Set(x, y int, c color.Color) {
	if isInk(c) {
		i.p.set(x, y)
	}
}

// planeDisplayer adapts a bit plane to the tinygo display interface.
type planeDisplayer struct {
	p *plane
}

var _ drivers.Displayer = planeDisplayer{}

func (d planeDisplayer) Size() (int16, int16) {
	return int16(d.p.bits.Rect.Dx()), int16(d.p.bits.Rect.Dy())
}

func (d planeDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if isInk(c) {
		d.p.set(int(x), int(y))
	}
}

func (d planeDisplayer) Display() error { return nil }

func isInk(c color.Color) bool {
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return false
	}
	lum := (299*r + 587*g + 114*b) / 1000
	return lum < 0x8000
}
