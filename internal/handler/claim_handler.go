package handler

import (
	"errors"

	"timeclass-backend/internal/mailer"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"
	"timeclass-backend/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClaimHandler struct {
	claims    repository.ClaimRepository
	comments  repository.CommentRepository
	teachers  repository.TeacherRepository
	workhours repository.WorkHourRepository
	hub       *ws.Hub
	mail      *mailer.Mailer
}

func NewClaimHandler(
	claims repository.ClaimRepository,
	comments repository.CommentRepository,
	teachers repository.TeacherRepository,
	workhours repository.WorkHourRepository,
	hub *ws.Hub,
	mail *mailer.Mailer,
) *ClaimHandler {
	return &ClaimHandler{
		claims:    claims,
		comments:  comments,
		teachers:  teachers,
		workhours: workhours,
		hub:       hub,
		mail:      mail,
	}
}

type ClaimRequest struct {
	TeacherID   uint   `json:"teacher_id" validate:"required"`
	WorkHourID  uint   `json:"work_hour_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Status      string `json:"status"` // accepted for contract compatibility, ignored
}

// Create files a dispute. The claim insert and the PENDING->REJECTED
// flip happen in one transaction so the record and its claim can
// never disagree.
func (h *ClaimHandler) Create(c *fiber.Ctx) error {
	var req ClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := h.workhours.GetByID(req.WorkHourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Work-hour record not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load record"})
	}

	// Teachers can only dispute their own records. Ownership comes
	// from the stored record, not from the request body.
	if c.Locals("role").(string) == model.RoleTeacher {
		own := uint(c.Locals("teacher_id").(float64))
		if record.TeacherID != own {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
	}

	if existing, err := h.claims.GetByWorkHourID(req.WorkHourID); err == nil && existing.ID != 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Record already has a claim"})
	}

	claim := model.Claim{
		WorkHourID:  req.WorkHourID,
		TeacherID:   record.TeacherID,
		Title:       req.Title,
		Description: req.Description,
	}

	wh, err := h.claims.CreateWithRejection(&claim)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Work-hour record not found"})
		}
		if errors.Is(err, repository.ErrRecordNotDisputable) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Record can no longer be disputed"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create claim"})
	}

	if teacher, err := h.teachers.GetByID(claim.TeacherID); err == nil {
		go h.mail.ClaimFiled(&claim, teacher)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Claim created",
		"data":      claim,
		"work_hour": wh,
	})
}

func (h *ClaimHandler) GetByWorkHour(c *fiber.Ctx) error {
	workHourID, err := c.ParamsInt("workHourId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid work-hour id"})
	}

	claim, err := h.claims.GetByWorkHourID(uint(workHourID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No claim for this record"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load claim"})
	}

	return c.JSON(fiber.Map{"message": "Claim loaded", "data": claim})
}

func (h *ClaimHandler) GetComments(c *fiber.Ctx) error {
	claimID, err := c.ParamsInt("claimId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid claim id"})
	}

	list, err := h.comments.GetByClaimID(uint(claimID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load comments"})
	}

	return c.JSON(fiber.Map{"message": "Comments loaded", "data": list})
}

type CommentRequest struct {
	ClaimID  uint   `json:"claim_id" validate:"required"`
	Content  string `json:"content" validate:"required"`
	AuthorID uint   `json:"author_id"` // accepted for contract compatibility; identity comes from the token
	UUID     string `json:"uuid" validate:"omitempty,uuid4"`
}

// CreateComment is the durable half of the two comment paths. The
// client-generated UUID makes it idempotent, and a freshly stored
// comment is fanned out to the claim room so REST-only writers still
// reach live viewers.
func (h *ClaimHandler) CreateComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := h.claims.GetByID(req.ClaimID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Claim not found"})
	}

	if req.UUID == "" {
		req.UUID = uuid.NewString()
	}

	comment := model.Comment{
		UUID:       req.UUID,
		ClaimID:    req.ClaimID,
		AuthorID:   uint(c.Locals("user_id").(float64)),
		AuthorName: c.Locals("name").(string),
		AuthorRole: c.Locals("role").(string),
		Content:    req.Content,
	}

	stored, created, err := h.comments.Create(&comment)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store comment"})
	}

	if created {
		h.hub.BroadcastComment(stored.ClaimID, stored)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Comment stored", "data": stored})
}
