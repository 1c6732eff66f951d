package integrity

import (
	"license-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/archive", h.HandleArchiveCheck)
}

// HandleIntegrityCheck runs every check.
// @Summary Run All Integrity Checks
// @Description Runs the schema and archive checks. A failing check is reported in place, the request still succeeds.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if archive, err := h.service.CheckArchive(c.UserContext()); err != nil {
		report["archive"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["archive"] = archive
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the license details table.
// @Summary Check Schema
// @Description Compares the API_REPORT_LICENSE_DETAILS columns with the expected model (missing columns, type mismatches).
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Schema mismatch detected",
			zap.Strings("missing", report.MissingColumns),
			zap.Strings("type_mismatches", report.TypeMismatches),
		)
	}

	return c.JSON(report)
}

// HandleArchiveCheck checks the report archive bucket.
// @Summary Check Archive
// @Description Reports whether the archive bucket exists and how many reports it holds.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ArchiveReport "Archive Report"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /integrity/archive [get]
func (h *Handler) HandleArchiveCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckArchive(c.UserContext())
	if err != nil {
		l.Error("Archive check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	return c.JSON(report)
}
