package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/i474232898/weather-epaper/internal/dashboard"
)

// FileSink writes every frame to one PNG file, replacing it atomically.
type FileSink struct {
	path  string
	scale int
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string, scale int) *FileSink {
	if scale < 1 {
		scale = 1
	}
	return &FileSink{path: path, scale: scale}
}

func (s *FileSink) Name() string { return "png:" + s.path }

// Present encodes the frame to a temporary file next to the target and
// renames it into place.
func (s *FileSink) Present(ctx context.Context, f dashboard.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".frame-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodePNG(tmp, f.Canvas, s.scale, Caption(f)); err != nil {
		tmp.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Caption describes a frame in one line.
func Caption(f dashboard.Frame) string {
	s := fmt.Sprintf("%s  %s  %s", f.Variant, f.Location.Key(), f.RenderedAt.Format(time.RFC3339))
	if f.ForecastSkipped {
		s += "  (no forecast)"
	}
	return s
}
