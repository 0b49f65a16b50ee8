package httpapi

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-epaper/internal/dashboard"
	"github.com/i474232898/weather-epaper/internal/layout"
	"github.com/i474232898/weather-epaper/internal/preview"
	"github.com/i474232898/weather-epaper/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the API handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/frame.png", func(c *fiber.Ctx) error {
		q := frameQuery{Scale: deps.DefaultScale, Caption: c.QueryBool("caption")}
		if raw := c.Query("scale"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "scale must be an integer")
			}
			q.Scale = n
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		frame, err := latest(deps)
		if err != nil {
			return err
		}
		caption := ""
		if q.Caption {
			caption = preview.Caption(frame)
		}
		var buf bytes.Buffer
		if err := preview.EncodePNG(&buf, frame.Canvas, q.Scale, caption); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to encode frame")
		}
		c.Set(fiber.HeaderContentType, "image/png")
		c.Set("X-Frame-Id", frame.ID.String())
		return c.Send(buf.Bytes())
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		frame, err := latest(deps)
		if err != nil {
			return err
		}
		return c.JSON(frame)
	})

	v1.Get("/frames", func(c *fiber.Ctx) error {
		var req rangeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		variant := deps.Dashboard.Variant().Name
		frames, err := deps.Frames.GetRange(variant, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no frames for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read frames")
		}

		return c.JSON(fiber.Map{
			"variant": variant,
			"from":    req.From,
			"to":      req.To,
			"frames":  frames,
		})
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		frame, err := deps.Dashboard.Refresh(c.UserContext())
		if err != nil && frame.ID == uuid.Nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		resp := fiber.Map{"frame": frame}
		if err != nil {
			// rendered, but at least one sink failed
			resp["sinkError"] = err.Error()
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	})

	v1.Get("/variants", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"active":   deps.Dashboard.Variant().Name,
			"names":    layout.Names(deps.Variants),
			"variants": layout.Catalog(deps.Variants),
		})
	})
}

func latest(deps Deps) (dashboard.Frame, error) {
	frame, err := deps.Frames.GetLatest(deps.Dashboard.Variant().Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dashboard.Frame{}, fiber.NewError(fiber.StatusNotFound, "no frame rendered yet")
		}
		return dashboard.Frame{}, fiber.NewError(fiber.StatusInternalServerError, "failed to read frame")
	}
	return frame, nil
}

type frameQuery struct {
	Scale   int `validate:"gte=1,lte=8"`
	Caption bool
}

// rangeQuery holds query parameters for the frames endpoint.
type rangeQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (r *rangeQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	r.From = from
	r.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
