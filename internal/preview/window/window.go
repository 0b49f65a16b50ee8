// Package window shows rendered frames in a desktop window while developing
// layouts. It needs a display server and is kept apart from package preview
// so headless builds do not link ebiten.
package window

import (
	"context"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/i474232898/weather-epaper/internal/dashboard"
	"github.com/i474232898/weather-epaper/internal/preview"
)

// Window is a dashboard.Sink that displays the latest frame.
type Window struct {
	scale int
	w, h  int

	mu    sync.Mutex
	img   *image.RGBA
	dirty bool

	screen *ebiten.Image
}

// New creates a window sized for a w×h panel enlarged scale times.
func New(w, h, scale int) *Window {
	if scale < 1 {
		scale = 1
	}
	return &Window{w: w, h: h, scale: scale}
}

func (win *Window) Name() string { return "window" }

// Present queues the frame for the next Draw.
func (win *Window) Present(ctx context.Context, f dashboard.Frame) error {
	img := preview.Upscale(f.Canvas, win.scale)
	win.mu.Lock()
	defer win.mu.Unlock()
	win.img = img
	win.dirty = true
	return nil
}

// Run opens the window and blocks until it is closed.
func (win *Window) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(win.w*win.scale, win.h*win.scale)
	ebiten.SetTPS(10)
	return ebiten.RunGame(win)
}

func (win *Window) Update() error { return nil }

func (win *Window) Draw(screen *ebiten.Image) {
	win.mu.Lock()
	if win.dirty && win.img != nil {
		b := win.img.Bounds()
		if win.screen == nil || win.screen.Bounds().Dx() != b.Dx() || win.screen.Bounds().Dy() != b.Dy() {
			if win.screen != nil {
				win.screen.Deallocate()
			}
			win.screen = ebiten.NewImage(b.Dx(), b.Dy())
		}
		win.screen.WritePixels(win.img.Pix)
		win.dirty = false
	}
	win.mu.Unlock()

	if win.screen != nil {
		screen.DrawImage(win.screen, nil)
	}
}

func (win *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return win.w * win.scale, win.h * win.scale
}
