package http

import (
	"errors"
	"strings"

	"github.com/cyoai/chatguard/pkg/app/chat"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type chatHandler struct {
	logger      *logrus.Logger
	chatService *chat.Service
}

func NewChatHandler(logger *logrus.Logger, chatService *chat.Service) Handler {
	return &chatHandler{
		logger:      logger,
		chatService: chatService,
	}
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

func (s *chatHandler) Handle(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("Failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt field is required"})
	}

	answer, err := s.chatService.Ask(c.Context(), prompt)
	if err != nil {
		if errors.Is(err, chat.ErrGenerationFailed) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Model generation failed"})
		}
		s.logger.WithError(err).Error("chat request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	if answer.Refused {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"id":     answer.ID,
			"answer": answer.Answer,
		})
	}

	return c.Status(fiber.StatusOK).JSON(answer)
}
