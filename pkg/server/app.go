package server

import (
	"fmt"

	"github.com/cyoai/chatguard/pkg/config"
	handlers "github.com/cyoai/chatguard/pkg/handlers/http"
	"github.com/cyoai/chatguard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	AppServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	AppServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewAppServer(di AppServerDI) *AppServer {
	return &AppServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *AppServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("Starting server")
	return s.router.Listen(addr)
}

func (s *AppServer) setupRoutes() {
	s.router.Post("/chat", s.handlerTransport.ChatHandler.Handle)

	s.addAdminRoutes(s.router.Group(""))
}

func (s *AppServer) addAdminRoutes(router fiber.Router) {
	router.Post("/admin/login", s.handlerTransport.AdminLoginHandler.Handle)

	v1 := router.Group("/api/v1", s.middlewareTransport.AdminAuthMiddleware.Middleware())
	{
		rules := v1.Group("/rules")
		{
			rules.Get("", s.handlerTransport.ListRulesHandler.Handle)
			rules.Post("", s.handlerTransport.CreateRuleHandler.Handle)
			rules.Delete("/:index", s.handlerTransport.DeleteRuleHandler.Handle)
			rules.Post("/reload", s.handlerTransport.ReloadRulesHandler.Handle)
			rules.Post("/reset", s.handlerTransport.ResetRulesHandler.Handle)
		}
	}
}

func (s *AppServer) Shutdown() error {
	return s.router.Shutdown()
}
