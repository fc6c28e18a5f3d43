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

type ScheduleHandler struct {
	Handler
	inspectionController inspectionController.InspectionControllerInterface
}

func NewScheduleHandler(app app.App, router fiber.Router) *ScheduleHandler {
	log := logger.New("handlers").File("schedule_handler")
	return &ScheduleHandler{
		inspectionController: app.Controllers.Inspection,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ScheduleHandler) Register() {
	schedules := h.router.Group("/schedules")

	schedules.Post("", h.createSchedule)
	schedules.Get("/upcoming", h.listUpcoming)
	schedules.Get("/overdue", h.listOverdue)
	schedules.Patch("/:id/complete", h.completeSchedule)
}

func (h *ScheduleHandler) listOverdue(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("schedule_handler").
		Function("listOverdue")

	schedules, err := h.inspectionController.ListOverdueSchedules(c.Context())
	if err != nil {
		_ = log.Err("Failed to list overdue schedules", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list overdue schedules",
		})
	}

	return c.JSON(fiber.Map{"schedules": schedules})
}

func (h *ScheduleHandler) listUpcoming(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("schedule_handler").
		Function("listUpcoming")

	days := c.QueryInt("days")

	schedules, err := h.inspectionController.ListUpcomingSchedules(c.Context(), days)
	if err != nil {
		_ = log.Err("Failed to list upcoming schedules", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list upcoming schedules",
		})
	}

	return c.JSON(fiber.Map{"schedules": schedules})
}

func (h *ScheduleHandler) createSchedule(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("schedule_handler").
		Function("createSchedule")

	var req inspectionController.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	schedule, err := h.inspectionController.CreateSchedule(c.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrAmbiguousEquipmentRef) ||
			err.Error() == "title and kind are required" ||
			err.Error() == "nextDueAt is required" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("Failed to create schedule", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create schedule",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func (h *ScheduleHandler) completeSchedule(c *fiber.Ctx) error {
	log := logger.New("handlers").
		TraceFromContext(c.UserContext()).
		File("schedule_handler").
		Function("completeSchedule")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule ID",
		})
	}

	response, err := h.inspectionController.CompleteSchedule(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Schedule not found",
			})
		}
		_ = log.Err("Failed to complete schedule", err, "scheduleID", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to complete schedule",
		})
	}

	return c.JSON(response)
}
