package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/armstrongwx/weather-duel/internal/store"
	"github.com/armstrongwx/weather-duel/internal/weather"
)

var validate = validator.New()

// refreshTimeout bounds a manually triggered refresh cycle.
const refreshTimeout = 30 * time.Second

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/comparison", func(c *fiber.Ctx) error {
		view, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no comparison data yet; trigger a refresh")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load comparison data")
		}
		return c.JSON(view)
	})

	v1.Get("/battle", func(c *fiber.Ctx) error {
		view, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no comparison data yet; trigger a refresh")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load battle verdict")
		}
		return c.JSON(view.Battle)
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		view, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast data yet; trigger a refresh")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load forecast data")
		}

		return c.JSON(fiber.Map{
			"days":  req.Days,
			"city1": sideForecast(view.Primary, req.Days),
			"city2": sideForecast(view.Secondary, req.Days),
		})
	})

	v1.Get("/hourly", func(c *fiber.Ctx) error {
		view, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no hourly data yet; trigger a refresh")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load hourly data")
		}

		// Per-day detail when a date is given, otherwise the next 24
		// hours anchored at the current hour.
		if date := c.Query("date"); date != "" {
			return c.JSON(fiber.Map{
				"date":  date,
				"city1": weather.HoursForDate(view.Primary.Snapshot, date),
				"city2": weather.HoursForDate(view.Secondary.Snapshot, date),
			})
		}

		return c.JSON(fiber.Map{
			"city1": weather.HourlyWindow(view.Primary.Snapshot, view.Primary.HourIndex, 24),
			"city2": weather.HourlyWindow(view.Secondary.Snapshot, view.Secondary.HourIndex, 24),
		})
	})

	v1.Get("/streaks", func(c *fiber.Ctx) error {
		return c.JSON(service.Streaks())
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		views, err := service.Range(req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no stored views for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load view history")
		}

		return c.JSON(fiber.Map{
			"from":  req.From,
			"to":    req.To,
			"views": views,
		})
	})

	v1.Get("/settings", func(c *fiber.Ctx) error {
		return c.JSON(service.CurrentSettings())
	})

	v1.Put("/settings", func(c *fiber.Ctx) error {
		var settings weather.Settings
		if err := c.BodyParser(&settings); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid settings payload")
		}
		if err := validate.Struct(settings); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := service.ApplySettings(settings); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to apply settings")
		}

		// New pair means the old view is stale; refresh before replying.
		ctx, cancel := context.WithTimeout(c.Context(), refreshTimeout)
		defer cancel()

		view, err := service.Refresh(ctx)
		if err != nil {
			if errors.Is(err, weather.ErrSuperseded) {
				return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
					"message": "settings applied; a newer refresh is in flight",
				})
			}
			return fiber.NewError(fiber.StatusBadGateway, "settings applied but refresh failed: "+err.Error())
		}
		return c.JSON(view)
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), refreshTimeout)
		defer cancel()

		view, err := service.Refresh(ctx)
		if err != nil {
			if errors.Is(err, weather.ErrSuperseded) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"message": "refresh superseded by a newer request",
				})
			}
			return fiber.NewError(fiber.StatusBadGateway, "refresh failed: "+err.Error())
		}
		return c.JSON(view)
	})
}

func sideForecast(side weather.SideView, days int) fiber.Map {
	return fiber.Map{
		"city": side.Location.Name,
		"days": weather.ForecastWindow(side.Snapshot, side.TodayIndex, days),
	}
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Days int `validate:"required,min=1,max=7"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	daysStr := c.Query("days")
	if daysStr == "" {
		return errors.New("days query parameter is required")
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return errors.New("days must be an integer")
	}
	f.Days = days
	return nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
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

	h.From = from
	h.To = to
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
