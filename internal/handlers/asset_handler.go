package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/phyn2-2/veritas-phase1/internal/config"
	"github.com/phyn2-2/veritas-phase1/internal/dto"
	"github.com/phyn2-2/veritas-phase1/internal/services"
)

// AssetHandler serves the public catalog of verified submissions.
type AssetHandler struct {
	catalogService *services.CatalogService
	cfg            *config.Config
}

func NewAssetHandler(catalogService *services.CatalogService, cfg *config.Config) *AssetHandler {
	return &AssetHandler{catalogService: catalogService, cfg: cfg}
}

func (h *AssetHandler) ListVerified(c *fiber.Ctx) error {
	page, limit, err := parsePagination(c, h.cfg)
	if err != nil {
		return err
	}

	assets, total, err := h.catalogService.ListVerified(page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch assets",
		})
	}

	return c.JSON(dto.PageResponse{Items: assets, Page: page, Limit: limit, Total: total})
}
