package handlers

import (
	"errors"

	"carebridge/internal/dto"
	"carebridge/internal/repository"
	"carebridge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageHandler struct {
	messageService *service.MessageService
	logger         *zap.Logger
}

func NewMessageHandler(messageService *service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		logger:         logger,
	}
}

// Create stores a caregiver message; the analysis result is computed on the
// way in and embedded in the stored record.
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	msg, err := h.messageService.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message body is required",
			})
		}
		h.logger.Error("Message creation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessageHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message id",
		})
	}

	msg, err := h.messageService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Message not found",
			})
		}
		h.logger.Error("Message lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load message",
		})
	}

	return c.JSON(msg)
}

// ListByStudent returns a student's message timeline in insertion order.
func (h *MessageHandler) ListByStudent(c *fiber.Ctx) error {
	studentID := c.Params("studentID")
	if studentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Student id is required",
		})
	}

	messages, err := h.messageService.ListByStudent(c.Context(), studentID)
	if err != nil {
		h.logger.Error("Message listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list messages",
		})
	}

	return c.JSON(fiber.Map{
		"student_id": studentID,
		"messages":   messages,
	})
}
