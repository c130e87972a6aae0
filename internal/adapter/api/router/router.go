package router

import (
	"github.com/labstack/echo/v4"

	"parley/internal/adapter/api/handler"
	"parley/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, conversationHandler *handler.ConversationHandler, healthHandler *handler.HealthHandler, authMiddleware *middleware.AuthMiddleware) {
	SetupConversationRouter(e, conversationHandler, authMiddleware)
	SetupHealthRouter(e, healthHandler)
}
