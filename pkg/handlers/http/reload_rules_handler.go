package http

import (
	appRule "github.com/cyoai/chatguard/pkg/app/rule"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type reloadRulesHandler struct {
	logger      *logrus.Logger
	ruleService *appRule.Service
}

func NewReloadRulesHandler(logger *logrus.Logger, ruleService *appRule.Service) Handler {
	return &reloadRulesHandler{
		logger:      logger,
		ruleService: ruleService,
	}
}

func (s *reloadRulesHandler) Handle(c *fiber.Ctx) error {
	set, err := s.ruleService.Reload(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to reload rules")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reload rules"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": len(set),
		"rules": set,
	})
}
