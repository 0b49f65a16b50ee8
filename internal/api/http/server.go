package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-epaper/internal/dashboard"
	"github.com/i474232898/weather-epaper/internal/layout"
)

const serviceName = "weather-epaper"

// FrameReader reads rendered frames.
type FrameReader interface {
	GetLatest(variant string) (dashboard.Frame, error)
	GetRange(variant string, from, to time.Time) ([]dashboard.Frame, error)
}

// Refresher runs a display update on demand.
type Refresher interface {
	Refresh(ctx context.Context) (dashboard.Frame, error)
	Variant() layout.Variant
}

// Deps is everything the HTTP layer reads from.
type Deps struct {
	Frames    FrameReader
	Dashboard Refresher
	// Variants are the layout overrides on top of the builtin catalogue.
	Variants     map[string]layout.Variant
	DefaultScale int
	Gatherer     prometheus.Gatherer
	Log          *logrus.Entry
}

// NewApp builds the Fiber app with middleware, health, metrics and API
// routes.
func NewApp(deps Deps) *fiber.App {
	if deps.DefaultScale < 1 {
		deps.DefaultScale = 1
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if deps.Log == nil {
		deps.Log = logrus.WithField("component", "http")
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				deps.Log.WithError(err).Errorf("%s %s", c.Method(), c.Path())
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New(logger.Config{Output: deps.Log.Writer()}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
			"variant": deps.Dashboard.Variant().Name,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	RegisterRoutes(app, deps)
	return app
}
