package handler

import (
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	repo repository.SettingRepository
}

func NewSettingHandler(repo repository.SettingRepository) *SettingHandler {
	return &SettingHandler{repo: repo}
}

func (h *SettingHandler) Get(c *fiber.Ctx) error {
	setting, err := h.repo.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load settings"})
	}
	return c.JSON(fiber.Map{"message": "Settings loaded", "data": setting})
}

type SettingRequest struct {
	AutoApproveAmount int    `json:"autoApproveAmount" validate:"required,min=1"`
	AutoApproveUnit   string `json:"autoApproveUnit" validate:"required,oneof=MINUTES HOURS DAYS"`
}

func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var req SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	setting, err := h.repo.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load settings"})
	}

	setting.AutoApproveAmount = req.AutoApproveAmount
	setting.AutoApproveUnit = req.AutoApproveUnit

	if err := h.repo.Update(setting); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update settings"})
	}

	return c.JSON(fiber.Map{"message": "Settings updated", "data": setting})
}
