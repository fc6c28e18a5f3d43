package handlers

import (
	"errors"

	"raftwatch/internal/app"
	alertController "raftwatch/internal/controllers/alerts"
	"raftwatch/internal/logger"
	"raftwatch/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AlertHandler struct {
	Handler
	alertController alertController.AlertControllerInterface
}

func NewAlertHandler(app app.App, router fiber.Router) *AlertHandler {
	log := logger.New("handlers").File("alert_handler")
	return &AlertHandler{
		alertController: app.Controllers.Alert,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AlertHandler) Register() {
	alerts := h.router.Group("/alerts")

	alerts.Get("", h.listAlerts)
	alerts.Get("/summary", h.getSummary)
	alerts.Post("/evaluate", h.triggerEvaluation)
	alerts.Patch("/:id/read", h.markRead)
	alerts.Delete("/:id", h.dismiss)
}

func (h *AlertHandler) listAlerts(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("alert_handler").
		Function("listAlerts")

	var req alertController.ListAlertsRequest
	if err := c.QueryParser(&req); err != nil {
		log.Warn("Invalid query parameters", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query parameters",
		})
	}

	response, err := h.alertController.ListAlerts(c.Context(), &req)
	if err != nil {
		if err.Error() == "invalid severity filter" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("Failed to list alerts", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list alerts",
		})
	}

	return c.JSON(response)
}

func (h *AlertHandler) getSummary(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("alert_handler").
		Function("getSummary")

	summary, err := h.alertController.Summary(c.Context())
	if err != nil {
		_ = log.Err("Failed to build alert summary", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build alert summary",
		})
	}

	return c.JSON(summary)
}

func (h *AlertHandler) triggerEvaluation(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("alert_handler").
		Function("triggerEvaluation")

	result, err := h.alertController.TriggerEvaluation(c.Context())
	if err != nil {
		_ = log.Err("Evaluation pass failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Evaluation pass failed",
		})
	}

	return c.JSON(result)
}

func (h *AlertHandler) markRead(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("alert_handler").
		Function("markRead")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid alert ID",
		})
	}

	if err := h.alertController.MarkRead(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Alert not found",
			})
		}
		_ = log.Err("Failed to mark alert read", err, "alertID", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark alert read",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *AlertHandler) dismiss(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("alert_handler").
		Function("dismiss")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid alert ID",
		})
	}

	if err := h.alertController.Dismiss(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Alert not found",
			})
		}
		_ = log.Err("Failed to dismiss alert", err, "alertID", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to dismiss alert",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
