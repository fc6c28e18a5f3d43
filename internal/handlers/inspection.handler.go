package handlers

import (
	"errors"

	"raftwatch/internal/app"
	inspectionController "raftwatch/internal/controllers/inspections"
	"raftwatch/internal/logger"
	"raftwatch/internal/models"
	"raftwatch/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InspectionHandler struct {
	Handler
	inspectionController inspectionController.InspectionControllerInterface
}

func NewInspectionHandler(app app.App, router fiber.Router) *InspectionHandler {
	log := logger.New("handlers").File("inspection_handler")
	return &InspectionHandler{
		inspectionController: app.Controllers.Inspection,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *InspectionHandler) Register() {
	inspections := h.router.Group("/inspections")

	inspections.Post("", h.recordInspection)
	inspections.Get("/:id", h.getInspection)
	inspections.Patch("/:id/cancel", h.cancelInspection)
	inspections.Get("/:id/history", h.getHistory)
	inspections.Post("/:id/costs", h.addCost)
	inspections.Get("/:id/costs", h.getCosts)
}

func (h *InspectionHandler) recordInspection(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("inspection_handler").
		Function("recordInspection")

	var req inspectionController.RecordInspectionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	record, err := h.inspectionController.RecordInspection(c.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrAmbiguousEquipmentRef) ||
			err.Error() == "kind and technician are required" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("Failed to record inspection", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record inspection",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *InspectionHandler) getInspection(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("inspection_handler").
		Function("getInspection")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid inspection ID",
		})
	}

	record, err := h.inspectionController.GetInspection(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Inspection not found",
			})
		}
		_ = log.Err("Failed to get inspection", err, "inspectionID", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get inspection",
		})
	}

	return c.JSON(record)
}

func (h *InspectionHandler) cancelInspection(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("inspection_handler").
		Function("cancelInspection")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid inspection ID",
		})
	}

	if err := h.inspectionController.CancelInspection(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Inspection not found",
			})
		}
		_ = log.Err("Failed to cancel inspection", err, "inspectionID", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel inspection",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *InspectionHandler) getHistory(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("inspection_handler").
		Function("getHistory")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid inspection ID",
		})
	}

	history, err := h.inspectionController.GetHistory(c.Context(), id)
	if err != nil {
		_ = log.Err("Failed to get history", err, "inspectionID", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get history",
		})
	}

	return c.JSON(fiber.Map{"history": history})
}

func (h *InspectionHandler) addCost(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("inspection_handler").
		Function("addCost")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid inspection ID",
		})
	}

	var req inspectionController.AddCostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.inspectionController.AddCost(c.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Inspection not found",
			})
		case err.Error() == "category is required",
			err.Error() == "unitValue must not be negative":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("Failed to add cost", err, "inspectionID", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add cost",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

func (h *InspectionHandler) getCosts(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("inspection_handler").
		Function("getCosts")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid inspection ID",
		})
	}

	response, err := h.inspectionController.GetCosts(c.Context(), id)
	if err != nil {
		_ = log.Err("Failed to get costs", err, "inspectionID", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get costs",
		})
	}

	return c.JSON(response)
}
