package license

import (
	"encoding/json"
	"fmt"
	"math"

	"license-sync/core/logger"
	"license-sync/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stored license data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the license routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/license")
	group.Get("/customers", h.HandleListCustomers)
	group.Post("/details", h.HandleQueryDetails)
}

// HandleListCustomers lists the distinct customer names in the license table.
// @Summary List Customers
// @Description Distinct, non-null customer names of the stored license details, in order.
// @Tags license
// @Produce json
// @Success 200 {object} map[string]interface{} "Customers"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /license/customers [get]
func (h *Handler) HandleListCustomers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	customers, err := h.service.ListCustomers(c.UserContext())
	if err != nil {
		l.Error("Customer list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true, "customers": customers})
}

type detailsRequest struct {
	DateFrom     any `json:"date_from"`
	DateTo       any `json:"date_to"`
	Page         any `json:"page"`
	CustomerName any `json:"customer_name"`
}

// HandleQueryDetails returns one page of stored license details.
// @Summary Query License Details
// @Description Filter stored license details by license period and customer. Pages hold 100 rows.
// @Tags license
// @Accept json
// @Produce json
// @Param request body object false "Filters: date_from, date_to (YYYY-MM-DD), page (default 1), customer_name"
// @Success 200 {object} map[string]interface{} "License details"
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /license/details [post]
func (h *Handler) HandleQueryDetails(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	q, err := parseDetailsQuery(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}
	l.Debug("License details request",
		zap.String("date_from", q.DateFrom),
		zap.String("date_to", q.DateTo),
		zap.Int("page", q.Page),
		zap.String("customer_name", q.CustomerName),
	)

	rows, err := h.service.QueryDetails(c.UserContext(), q)
	if err != nil {
		l.Error("License details query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true, "license": rows})
}

// maxPage keeps the row offset of a page within int.
const maxPage = math.MaxInt / PageSize

func parseDetailsQuery(body []byte) (DetailsQuery, error) {
	q := DetailsQuery{Page: 1}
	if len(body) == 0 {
		return q, nil
	}

	var req detailsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return q, fmt.Errorf("invalid request body: %w", err)
	}

	q.DateFrom = utils.ToString(req.DateFrom)
	q.DateTo = utils.ToString(req.DateTo)
	q.CustomerName = utils.ToString(req.CustomerName)

	if req.Page != nil {
		page, err := utils.ToInt(req.Page)
		if err != nil {
			return q, fmt.Errorf("invalid page: %w", err)
		}
		if page < 1 || page > maxPage {
			return q, fmt.Errorf("invalid page: %d", page)
		}
		q.Page = page
	}
	return q, nil
}
