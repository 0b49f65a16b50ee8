package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-epaper/internal/display"
	"github.com/i474232898/weather-epaper/internal/layout"
	"github.com/i474232898/weather-epaper/internal/render"
	"github.com/i474232898/weather-epaper/internal/weather"
)

// Config selects what a Dashboard draws.
type Config struct {
	Variant  layout.Variant
	Location weather.Location
	Timezone *time.Location
	// StrictIcons turns a missing or malformed icon into a failed render.
	StrictIcons bool
}

// Dashboard runs refresh cycles: fetch, draw, store, present.
type Dashboard struct {
	cfg     Config
	fetcher Fetcher
	icons   render.IconResolver
	store   FrameStore
	sinks   []Sink
	rec     Recorder
	log     *logrus.Entry
	now     func() time.Time

	mu sync.Mutex
}

// Option customises a Dashboard.
type Option func(*Dashboard)

// WithStore keeps every rendered frame in s.
func WithStore(s FrameStore) Option {
	return func(d *Dashboard) { d.store = s }
}

// WithSinks adds presentation targets.
func WithSinks(s ...Sink) Option {
	return func(d *Dashboard) { d.sinks = append(d.sinks, s...) }
}

func WithRecorder(r Recorder) Option {
	return func(d *Dashboard) { d.rec = r }
}

func WithLogger(l *logrus.Entry) Option {
	return func(d *Dashboard) { d.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// New creates a Dashboard. The icon resolver is shared read-only between
// refreshes.
func New(cfg Config, fetcher Fetcher, icons render.IconResolver, opts ...Option) *Dashboard {
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	d := &Dashboard{
		cfg:     cfg,
		fetcher: fetcher,
		icons:   icons,
		rec:     nopRecorder{},
		now:     time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		d.log = logrus.WithField("component", "dashboard")
	}
	d.log = d.log.WithField("variant", cfg.Variant.Name)
	return d
}

// AddSink registers another presentation target for later refreshes.
func (d *Dashboard) AddSink(s Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks = append(d.sinks, s)
}

// Variant returns the active layout.
func (d *Dashboard) Variant() layout.Variant { return d.cfg.Variant }

// Refresh runs one full cycle. Refreshes are serialised. A forecast that
// cannot be retrieved is skipped and the frame still renders; sink errors are
// joined into the returned error after every sink has been tried.
func (d *Dashboard) Refresh(ctx context.Context) (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := d.now()
	v := d.cfg.Variant

	report, err := d.fetcher.Fetch(ctx, d.cfg.Location)
	if err != nil {
		d.rec.ObserveRender(v.Name, OutcomeFetchError, d.now().Sub(start))
		return Frame{}, fmt.Errorf("fetch weather: %w", err)
	}

	frame := Frame{
		ID:       uuid.New(),
		Variant:  v.Name,
		Location: report.Location,
		Current:  report.Current,
		Canvas:   display.NewCanvas(v.Width, v.Height, v.Chromatic),
	}
	log := d.log.WithField("frame", frame.ID.String())

	if err := d.draw(log, &frame, report); err != nil {
		d.rec.ObserveRender(v.Name, OutcomeRenderError, d.now().Sub(start))
		return Frame{}, err
	}
	frame.RenderedAt = d.now().UTC()

	if d.store != nil {
		d.store.SaveFrame(frame)
	}

	var errs []error
	for _, s := range d.sinks {
		if err := s.Present(ctx, frame); err != nil {
			log.WithError(err).Errorf("sink %s failed", s.Name())
			errs = append(errs, fmt.Errorf("sink %s: %w", s.Name(), err))
		}
	}

	outcome := OutcomeOK
	if len(errs) > 0 {
		outcome = OutcomeSinkError
	}
	d.rec.ObserveRender(v.Name, outcome, d.now().Sub(start))
	log.Infof("rendered %s for %s: %.1f°C, %d forecast days", v.Name, report.Location.Key(), report.Current.Temp, len(frame.Days))
	return frame, errors.Join(errs...)
}

func (d *Dashboard) draw(log *logrus.Entry, frame *Frame, report weather.Report) error {
	v := d.cfg.Variant

	skipped, err := render.DrawCurrent(frame.Canvas, v, report.Current, d.cfg.Timezone, d.icons, d.cfg.StrictIcons)
	d.noteIcons(log, frame, skipped)
	if err != nil {
		return fmt.Errorf("draw current conditions: %w", err)
	}

	if !v.Forecast {
		return nil
	}
	if report.ForecastErr != nil {
		d.skipForecast(log, frame, report.ForecastErr)
		return nil
	}

	agg, err := weather.Aggregate(report.Samples, layout.MaxDays, report.Current.Temp, d.cfg.Timezone)
	if err != nil {
		d.skipForecast(log, frame, err)
		return nil
	}

	rep, err := render.DrawForecast(frame.Canvas, v, agg, d.icons, d.cfg.StrictIcons)
	d.noteIcons(log, frame, rep.IconErrors)
	if err != nil {
		return fmt.Errorf("draw forecast: %w", err)
	}
	frame.Days = agg.Days
	frame.Range = &rep.Range
	frame.Gridlines = rep.Gridlines
	if rep.Clipped() {
		d.noteClipped(log, frame, rep)
	}
	log.Debugf("forecast range %d..%d scale %d offset %d", int(agg.Min), int(agg.Max), rep.Range.Scale, rep.Range.Offset)
	return nil
}

func (d *Dashboard) skipForecast(log *logrus.Entry, frame *Frame, err error) {
	log.WithError(err).Warn("forecast unavailable, drawing current conditions only")
	d.rec.ForecastUnavailable(d.cfg.Variant.Name)
	frame.ForecastSkipped = true
	frame.Warnings = append(frame.Warnings, err.Error())
}

func (d *Dashboard) noteClipped(log *logrus.Entry, frame *Frame, rep render.Report) {
	msg := fmt.Sprintf("graph clipped: gridlines %v off panel, %d curve segments off panel", rep.ClippedGridlines, rep.ClippedSegments)
	log.WithFields(logrus.Fields{
		"clipped_gridlines": rep.ClippedGridlines,
		"clipped_segments":  rep.ClippedSegments,
	}).Warn("forecast graph exceeds the panel, clipping")
	frame.Warnings = append(frame.Warnings, msg)
}

func (d *Dashboard) noteIcons(log *logrus.Entry, frame *Frame, skipped []render.DayError) {
	for _, e := range skipped {
		log.WithError(e.Err).Warnf("icon skipped for code %d", e.Code)
		d.rec.IconFailure(e.Code)
		frame.Warnings = append(frame.Warnings, e.Error())
	}
}
