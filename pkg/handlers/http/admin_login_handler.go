package http

import (
	"crypto/subtle"

	"github.com/cyoai/chatguard/pkg/config"
	"github.com/cyoai/chatguard/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type adminLoginHandler struct {
	logger     *logrus.Logger
	cfg        *config.AdminConfig
	jwtManager jwt.Manager
}

func NewAdminLoginHandler(
	logger *logrus.Logger,
	cfg *config.AdminConfig,
	jwtManager jwt.Manager,
) Handler {
	return &adminLoginHandler{
		logger:     logger,
		cfg:        cfg,
		jwtManager: jwtManager,
	}
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (s *adminLoginHandler) Handle(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("Failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.Password)) != 1 {
		s.logger.Warn("admin login rejected")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect password"})
	}

	token, err := s.jwtManager.CreateToken()
	if err != nil {
		s.logger.WithError(err).Error("failed to create admin token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": token})
}
