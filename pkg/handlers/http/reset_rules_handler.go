package http

import (
	appRule "github.com/cyoai/chatguard/pkg/app/rule"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type resetRulesHandler struct {
	logger      *logrus.Logger
	ruleService *appRule.Service
}

func NewResetRulesHandler(logger *logrus.Logger, ruleService *appRule.Service) Handler {
	return &resetRulesHandler{
		logger:      logger,
		ruleService: ruleService,
	}
}

func (s *resetRulesHandler) Handle(c *fiber.Ctx) error {
	set, err := s.ruleService.Reset(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to reset rules")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reset rules"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": len(set),
		"rules": set,
	})
}
