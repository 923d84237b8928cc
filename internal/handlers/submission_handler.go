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

type SubmissionHandler struct {
	submissionService *services.SubmissionService
	cfg               *config.Config
}

func NewSubmissionHandler(submissionService *services.SubmissionService, cfg *config.Config) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, cfg: cfg}
}

func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	submission, err := h.submissionService.Create(user.ID, &req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Error: true, Message: verr.Message,
			})
		case errors.Is(err, services.ErrQuotaExceeded), errors.Is(err, services.ErrGlobalCapReached):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(submission)
}

func (h *SubmissionHandler) ListMine(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page, limit, err := parsePagination(c, h.cfg)
	if err != nil {
		return err
	}

	submissions, total, err := h.submissionService.ListMine(user.ID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch submissions",
		})
	}

	return c.JSON(dto.PageResponse{Items: submissions, Page: page, Limit: limit, Total: total})
}

func (h *SubmissionHandler) Get(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		// An unparseable id cannot name an existing submission.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrSubmissionNotFound.Error(),
		})
	}

	submission, err := h.submissionService.Get(id, user)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(submission)
}
