package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/phyn2-2/veritas-phase1/internal/config"
	"github.com/phyn2-2/veritas-phase1/internal/dto"
	"github.com/phyn2-2/veritas-phase1/internal/middleware"
	"github.com/phyn2-2/veritas-phase1/internal/services"
)

type AdminHandler struct {
	submissionService   *services.SubmissionService
	verificationService *services.VerificationService
	cfg                 *config.Config
}

func NewAdminHandler(
	submissionService *services.SubmissionService,
	verificationService *services.VerificationService,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{
		submissionService:   submissionService,
		verificationService: verificationService,
		cfg:                 cfg,
	}
}

// ListPending returns the review queue, oldest submissions first.
func (h *AdminHandler) ListPending(c *fiber.Ctx) error {
	page, limit, err := parsePagination(c, h.cfg)
	if err != nil {
		return err
	}

	submissions, total, err := h.submissionService.ListPending(page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch pending submissions",
		})
	}

	return c.JSON(dto.PageResponse{Items: submissions, Page: page, Limit: limit, Total: total})
}

// Verify applies an admin decision to a pending submission.
func (h *AdminHandler) Verify(c *fiber.Ctx) error {
	admin, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrSubmissionNotFound.Error(),
		})
	}

	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	submission, err := h.verificationService.Decide(id, admin.ID, &req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Error: true, Message: verr.Message,
			})
		case errors.Is(err, services.ErrSubmissionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAlreadyDecided):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAdminRequired):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(submission)
}
