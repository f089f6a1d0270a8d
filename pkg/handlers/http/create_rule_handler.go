package http

import (
	"errors"
	"regexp/syntax"

	appRule "github.com/cyoai/chatguard/pkg/app/rule"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createRuleHandler struct {
	logger      *logrus.Logger
	ruleService *appRule.Service
}

func NewCreateRuleHandler(logger *logrus.Logger, ruleService *appRule.Service) Handler {
	return &createRuleHandler{
		logger:      logger,
		ruleService: ruleService,
	}
}

type createRuleRequest struct {
	Pattern string `json:"pattern"`
}

func (s *createRuleHandler) Handle(c *fiber.Ctx) error {
	var req createRuleRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("Failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	set, err := s.ruleService.Add(c.Context(), req.Pattern)
	if err != nil {
		if errors.Is(err, appRule.ErrEmptyPattern) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "pattern field is required"})
		}
		var syntaxErr *syntax.Error
		if errors.As(err, &syntaxErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.WithError(err).Error("Failed to add rule")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add rule"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"count": len(set),
		"rules": set,
	})
}
