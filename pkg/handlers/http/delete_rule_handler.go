package http

import (
	"errors"
	"strconv"

	appRule "github.com/cyoai/chatguard/pkg/app/rule"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type deleteRuleHandler struct {
	logger      *logrus.Logger
	ruleService *appRule.Service
}

func NewDeleteRuleHandler(logger *logrus.Logger, ruleService *appRule.Service) Handler {
	return &deleteRuleHandler{
		logger:      logger,
		ruleService: ruleService,
	}
}

func (s *deleteRuleHandler) Handle(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "index must be an integer"})
	}

	set, removed, err := s.ruleService.Remove(c.Context(), index)
	if err != nil {
		if errors.Is(err, appRule.ErrIndexOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "rule index out of range"})
		}
		s.logger.WithError(err).Error("Failed to remove rule")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove rule"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"removed": removed,
		"count":   len(set),
		"rules":   set,
	})
}
