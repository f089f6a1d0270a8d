package http

import (
	appRule "github.com/cyoai/chatguard/pkg/app/rule"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listRulesHandler struct {
	logger      *logrus.Logger
	ruleService *appRule.Service
}

func NewListRulesHandler(logger *logrus.Logger, ruleService *appRule.Service) Handler {
	return &listRulesHandler{
		logger:      logger,
		ruleService: ruleService,
	}
}

func (s *listRulesHandler) Handle(c *fiber.Ctx) error {
	set, err := s.ruleService.List(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list rules")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list rules"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": len(set),
		"rules": set,
	})
}
