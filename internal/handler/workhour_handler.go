package handler

import (
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type WorkHourHandler struct {
	repo repository.WorkHourRepository
}

func NewWorkHourHandler(repo repository.WorkHourRepository) *WorkHourHandler {
	return &WorkHourHandler{repo: repo}
}

type WorkHourRequest struct {
	TeacherID   uint   `json:"teacher_id" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	FixedHours  string `json:"fixed_hours" validate:"required"`
	TaughtHours string `json:"taught_hours" validate:"required"`
	Lateness    string `json:"lateness"`
}

func (h *WorkHourHandler) Create(c *fiber.Ctx) error {
	var req WorkHourRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	wh := model.WorkHour{
		TeacherID:   req.TeacherID,
		Date:        req.Date,
		FixedHours:  req.FixedHours,
		TaughtHours: req.TaughtHours,
		Lateness:    req.Lateness,
		Status:      model.StatusPending,
	}

	if err := h.repo.Create(&wh); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create work-hour record"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Work-hour record created", "data": wh})
}

func (h *WorkHourHandler) GetAll(c *fiber.Ctx) error {
	month := c.Query("month")
	year := c.Query("year")
	teacherID := uint(c.QueryInt("teacher_id"))

	if len(month) == 1 {
		month = "0" + month
	}

	list, err := h.repo.GetAll(month, year, teacherID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load work-hours"})
	}
	return c.JSON(fiber.Map{"message": "Work-hours loaded", "data": list})
}

func (h *WorkHourHandler) GetByTeacher(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("teacherId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	// Teachers can only read their own records
	if c.Locals("role").(string) == model.RoleTeacher {
		own := uint(c.Locals("teacher_id").(float64))
		if own != uint(teacherID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
	}

	list, err := h.repo.GetByTeacherID(uint(teacherID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load work-hours"})
	}
	return c.JSON(fiber.Map{"message": "Work-hours loaded", "data": list})
}

func (h *WorkHourHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	wh, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Work-hour record not found"})
	}

	var req struct {
		Date        string `json:"date"`
		FixedHours  string `json:"fixed_hours"`
		TaughtHours string `json:"taught_hours"`
		Lateness    string `json:"lateness"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}

	if req.Date != "" {
		wh.Date = req.Date
	}
	if req.FixedHours != "" {
		wh.FixedHours = req.FixedHours
	}
	if req.TaughtHours != "" {
		wh.TaughtHours = req.TaughtHours
	}
	if req.Lateness != "" {
		wh.Lateness = req.Lateness
	}

	if err := h.repo.Update(wh); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update work-hour record"})
	}

	return c.JSON(fiber.Map{"message": "Work-hour record updated", "data": wh})
}

func (h *WorkHourHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete work-hour record"})
	}
	return c.JSON(fiber.Map{"message": "Work-hour record deleted"})
}

// StatusRequest keeps the legacy wire field name; it is the published
// contract of the mobile and web clients.
type StatusRequest struct {
	Estado string `json:"estado" validate:"required,oneof=PENDING ACCEPTED REJECTED"`
}

// UpdateStatus drives the approval state machine. Teachers may only
// act on their own records; invalid transitions are refused with 409
// so concurrent viewers cannot push a record backwards.
func (h *WorkHourHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	wh, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Work-hour record not found"})
	}

	if c.Locals("role").(string) == model.RoleTeacher {
		own := uint(c.Locals("teacher_id").(float64))
		if wh.TeacherID != own {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
	}

	if !model.CanTransition(wh.Status, req.Estado, wh.Claim != nil) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Invalid status transition " + wh.Status + " -> " + req.Estado,
		})
	}

	wh.Status = req.Estado
	if err := h.repo.Update(wh); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update status"})
	}

	return c.JSON(fiber.Map{"message": "Status updated", "data": wh})
}
