package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/export"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/logger"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/store"
)

const serviceName = "water-quality-viz"

var validate = validator.New()

// ErrorHandler turns handler errors into a JSON body. Errors that are not a
// *fiber.Error become 500 responses carrying the error text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *quality.Service, log logger.Logger) {
	log = log.WithField("component", "http")

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"service": serviceName,
		}
		if probe, err := service.LatestProbe(); err == nil {
			body["upstream"] = probe
		}
		return c.JSON(body)
	})

	app.Get("/health/upstream", func(c *fiber.Ctx) error {
		history, err := service.ProbeHistory(time.Time{}, time.Now().UTC())
		if err != nil {
			if errors.Is(err, quality.ErrNoProbeStore) {
				return fiber.NewError(fiber.StatusNotFound, "upstream probing is disabled")
			}
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no upstream probe recorded yet")
			}
			return err
		}
		return c.JSON(fiber.Map{
			"probes": history,
		})
	})

	app.Get("/visualizations/:kind", func(c *fiber.Ctx) error {
		req := visualizationRequest{Kind: c.Params("kind")}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "unknown visualization: "+req.Kind)
		}

		img, err := service.Render(c.UserContext(), quality.ChartKind(req.Kind))
		if err != nil {
			log.Errorf("%s visualization failed: %v", req.Kind, err)
			return err
		}

		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(img)
	})

	app.Get("/exports/table.xlsx", func(c *fiber.Ctx) error {
		table, err := service.Table(c.UserContext())
		if err != nil {
			log.Errorf("table export failed: %v", err)
			return err
		}

		data, err := export.WriteXLSX(table)
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, export.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="table.xlsx"`)
		return c.Send(data)
	})
}

// visualizationRequest holds the path parameter of the visualization route.
type visualizationRequest struct {
	Kind string `validate:"required,oneof=temporal comparative geographical"`
}
