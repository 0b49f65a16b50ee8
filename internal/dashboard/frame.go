package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-epaper/internal/display"
	"github.com/i474232898/weather-epaper/internal/layout"
	"github.com/i474232898/weather-epaper/internal/weather"
)

// Frame is one rendered display update.
type Frame struct {
	ID         uuid.UUID        `json:"id"`
	Variant    string           `json:"variant"`
	RenderedAt time.Time        `json:"renderedAt"`
	Location   weather.Location `json:"location"`
	Canvas     *display.Canvas  `json:"-"`

	Current   weather.Current      `json:"current"`
	Days      []weather.DaySummary `json:"days,omitempty"`
	Range     *layout.Range        `json:"range,omitempty"`
	Gridlines []int                `json:"gridlines,omitempty"`

	// ForecastSkipped is set when the forecast could not be retrieved and
	// only the current conditions were drawn.
	ForecastSkipped bool     `json:"forecastSkipped"`
	Warnings        []string `json:"warnings,omitempty"`
}

// FrameStore keeps rendered frames.
type FrameStore interface {
	SaveFrame(f Frame)
}

// Sink receives every frame that rendered successfully, e.g. a panel driver
// or a PNG writer.
type Sink interface {
	Name() string
	Present(ctx context.Context, f Frame) error
}

// Recorder receives render metrics.
type Recorder interface {
	ObserveRender(variant, outcome string, d time.Duration)
	ForecastUnavailable(variant string)
	IconFailure(code int)
}

// Fetcher retrieves weather for a location.
type Fetcher interface {
	Fetch(ctx context.Context, loc weather.Location) (weather.Report, error)
}

// Render outcomes reported to the Recorder.
const (
	OutcomeOK          = "ok"
	OutcomeFetchError  = "fetch_error"
	OutcomeRenderError = "render_error"
	OutcomeSinkError   = "sink_error"
)

type nopRecorder struct{}

func (nopRecorder) ObserveRender(string, string, time.Duration) {}
func (nopRecorder) ForecastUnavailable(string)                  {}
func (nopRecorder) IconFailure(int)                             {}
