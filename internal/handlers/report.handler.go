package handlers

import (
	"errors"

	"raftwatch/internal/app"
	reportController "raftwatch/internal/controllers/reports"
	"raftwatch/internal/logger"
	"raftwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Handler
	reportController reportController.ReportControllerInterface
}

func NewReportHandler(app app.App, router fiber.Router) *ReportHandler {
	log := logger.New("handlers").File("report_handler")
	return &ReportHandler{
		reportController: app.Controllers.Report,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReportHandler) Register() {
	reports := h.router.Group("/reports")

	reports.Get("/trend", h.getMonthlyTrend)
	reports.Get("/summary", h.getSummary)
}

func (h *ReportHandler) getMonthlyTrend(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("report_handler").
		Function("getMonthlyTrend")

	var req reportController.TrendRequest
	if err := c.QueryParser(&req); err != nil {
		log.Warn("Invalid query parameters", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query parameters",
		})
	}

	buckets, err := h.reportController.MonthlyTrend(c.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrAmbiguousEquipmentRef) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("Failed to build monthly trend", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build monthly trend",
		})
	}

	return c.JSON(fiber.Map{"months": buckets})
}

func (h *ReportHandler) getSummary(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("report_handler").
		Function("getSummary")

	var req reportController.SummaryRequest
	if err := c.QueryParser(&req); err != nil {
		log.Warn("Invalid query parameters", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query parameters",
		})
	}

	summary, err := h.reportController.Summary(c.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrAmbiguousEquipmentRef) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("Failed to build statistics summary", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build statistics summary",
		})
	}

	return c.JSON(summary)
}
