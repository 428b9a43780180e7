package handler

import (
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type TeacherHandler struct {
	repo repository.TeacherRepository
}

func NewTeacherHandler(repo repository.TeacherRepository) *TeacherHandler {
	return &TeacherHandler{repo: repo}
}

type TeacherRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Document  string `json:"document" validate:"required"`
	Specialty string `json:"specialty"`
}

func (h *TeacherHandler) Create(c *fiber.Ctx) error {
	var req TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacher := model.Teacher{
		Name:      req.Name,
		Email:     req.Email,
		Document:  req.Document,
		Specialty: req.Specialty,
		IsActive:  true,
	}

	if err := h.repo.Create(&teacher); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Teacher created", "data": teacher})
}

func (h *TeacherHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.repo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load teachers"})
	}
	return c.JSON(fiber.Map{"message": "Teachers loaded", "data": list})
}

func (h *TeacherHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	teacher, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	return c.JSON(fiber.Map{"message": "Teacher loaded", "data": teacher})
}

func (h *TeacherHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	teacher, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var req struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Specialty string `json:"specialty"`
		IsActive  *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}

	if req.Name != "" {
		teacher.Name = req.Name
	}
	if req.Email != "" {
		teacher.Email = req.Email
	}
	if req.Specialty != "" {
		teacher.Specialty = req.Specialty
	}
	if req.IsActive != nil {
		teacher.IsActive = *req.IsActive
	}

	if err := h.repo.Update(teacher); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update teacher"})
	}

	return c.JSON(fiber.Map{"message": "Teacher updated", "data": teacher})
}

func (h *TeacherHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete teacher"})
	}
	return c.JSON(fiber.Map{"message": "Teacher deleted"})
}
