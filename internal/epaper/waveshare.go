// Package epaper pushes frames to a physical e-paper panel.
package epaper

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"

	"github.com/i474232898/weather-epaper/internal/dashboard"
	"github.com/i474232898/weather-epaper/internal/display"
)

// DeviceWaveshare2in13v4 names the supported HAT.
const DeviceWaveshare2in13v4 = "waveshare2in13v4"

var (
	ErrUnknownDevice = errors.New("unknown e-paper device")
	ErrSizeMismatch  = errors.New("frame does not fit panel")
)

// Panel is the subset of a periph.io e-paper driver used here.
type Panel interface {
	Init() error
	Clear(c color.Color) error
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Sleep() error
	Halt() error
}

// Waveshare is a dashboard.Sink driving a panel over SPI. The panel sleeps
// between frames and is woken before each draw.
type Waveshare struct {
	mu       sync.Mutex
	panel    Panel
	port     spi.PortCloser
	sleeping bool
	log      *logrus.Entry
}

// Open initialises the periph.io host, opens the SPI port (empty for the
// first one) and clears the panel.
func Open(device, port string, log *logrus.Entry) (*Waveshare, error) {
	if device != DeviceWaveshare2in13v4 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, device)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", port, err)
	}
	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(p, &opts)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	w, err := New(dev, log)
	if err != nil {
		p.Close()
		return nil, err
	}
	w.port = p
	return w, nil
}

// New wraps an already opened panel.
func New(panel Panel, log *logrus.Entry) (*Waveshare, error) {
	if log == nil {
		log = logrus.WithField("component", "epaper")
	}
	if err := panel.Init(); err != nil {
		return nil, fmt.Errorf("panel init: %w", err)
	}
	if err := panel.Clear(color.White); err != nil {
		return nil, fmt.Errorf("panel clear: %w", err)
	}
	return &Waveshare{panel: panel, log: log}, nil
}

func (w *Waveshare) Name() string { return "epaper" }

// Present draws the frame and puts the panel to sleep.
func (w *Waveshare) Present(ctx context.Context, f dashboard.Frame) error {
	img, err := PanelImage(f.Canvas, w.panel.Bounds())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sleeping {
		if err := w.panel.Init(); err != nil {
			return fmt.Errorf("panel wake: %w", err)
		}
		w.sleeping = false
	}
	if err := w.panel.Draw(w.panel.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("panel draw: %w", err)
	}
	if err := w.panel.Sleep(); err != nil {
		w.log.WithError(err).Warn("panel sleep failed")
		return nil
	}
	w.sleeping = true
	return nil
}

// Close halts the panel and releases the SPI port.
func (w *Waveshare) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.panel.Halt()
	if w.port != nil {
		err = errors.Join(err, w.port.Close())
	}
	return err
}

// PanelImage converts a canvas to the panel's 1-bit format, where a set bit
// is white paper. Both planes become black ink. A landscape canvas is turned
// 90° clockwise onto a portrait panel.
func PanelImage(c *display.Canvas, bounds image.Rectangle) (*image1bit.VerticalLSB, error) {
	cb := c.Bounds()
	dst := image1bit.NewVerticalLSB(bounds)
	ink := func(x, y int) bool {
		return c.Ink(display.Black, x, y) || (c.Chromatic() && c.Ink(display.Chromatic, x, y))
	}

	switch {
	case cb.Dx() == bounds.Dx() && cb.Dy() == bounds.Dy():
		for y := 0; y < cb.Dy(); y++ {
			for x := 0; x < cb.Dx(); x++ {
				dst.SetBit(bounds.Min.X+x, bounds.Min.Y+y, image1bit.Bit(!ink(cb.Min.X+x, cb.Min.Y+y)))
			}
		}
	case cb.Dx() == bounds.Dy() && cb.Dy() == bounds.Dx():
		h := cb.Dy()
		for y := 0; y < bounds.Dy(); y++ {
			for x := 0; x < bounds.Dx(); x++ {
				dst.SetBit(bounds.Min.X+x, bounds.Min.Y+y, image1bit.Bit(!ink(cb.Min.X+y, cb.Min.Y+h-1-x)))
			}
		}
	default:
		return nil, fmt.Errorf("%w: frame %dx%d, panel %dx%d", ErrSizeMismatch, cb.Dx(), cb.Dy(), bounds.Dx(), bounds.Dy())
	}
	return dst, nil
}
