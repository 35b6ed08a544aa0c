package handlers

import (
	"carebridge/internal/dto"
	"carebridge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type KnowledgeHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewKnowledgeHandler(catalogService *service.CatalogService, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List returns the current knowledge catalog.
func (h *KnowledgeHandler) List(c *fiber.Ctx) error {
	if err := h.catalogService.Initialize(c.Context()); err != nil {
		h.logger.Error("Catalog initialization failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Knowledge catalog unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"items": h.catalogService.Items(),
	})
}

// Ingest appends a batch of knowledge items to the catalog.
func (h *KnowledgeHandler) Ingest(c *fiber.Ctx) error {
	var req dto.IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one item is required",
		})
	}
	for _, item := range req.Items {
		if item.Content == "" || item.Category == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Every item needs content and category",
			})
		}
	}

	if err := h.catalogService.Ingest(c.Context(), req.Items); err != nil {
		h.logger.Error("Knowledge ingestion failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Knowledge catalog unavailable",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.IngestResponse{
		Ingested: len(req.Items),
		Total:    len(h.catalogService.Items()),
	})
}
