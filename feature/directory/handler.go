package directory

import (
	"errors"

	"license-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the client directory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the directory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/directory")
	group.Get("/resolve", h.HandleResolve)
}

// HandleResolve resolves a customer name against the client directory.
// @Summary Resolve Customer Name
// @Description Look up a customer name in the client directory using the same normalization as enrichment and backfill.
// @Tags directory
// @Produce json
// @Param name query string true "Customer name (e.g. ' Acme Corp ')"
// @Success 200 {object} map[string]interface{} "Resolution"
// @Failure 400 {object} map[string]interface{} "Unkeyable name"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /directory/resolve [get]
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Query("name")

	res, err := h.service.Resolve(c.UserContext(), name)
	if errors.Is(err, ErrUnkeyable) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}
	if err != nil {
		l.Error("Directory resolve failed", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"name":    res.Name,
		"key":     res.Key,
		"matched": res.Matched,
		"client":  res.Client,
		"urls":    res.URLs,
	})
}
