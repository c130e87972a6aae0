package router

import (
	"github.com/labstack/echo/v4"

	"parley/internal/adapter/api/handler"
	"parley/internal/adapter/api/middleware"
)

// SetupConversationRouter wires all conversation routes; every endpoint
// requires an authenticated caller.
func SetupConversationRouter(e *echo.Echo, conversationHandler *handler.ConversationHandler, authMiddleware *middleware.AuthMiddleware) {
	group := e.Group("/v1/conversations")
	group.Use(authMiddleware.Authenticate)

	group.POST("", conversationHandler.CreateConversation) // creates, or reuses an existing dialogue
	group.GET("", conversationHandler.GetConversationsAttended)
	group.GET("/updated/count", conversationHandler.CountUpdated)
	group.GET("/:id", conversationHandler.GetConversation)
	group.POST("/:id/messages", conversationHandler.AddMessage)
	group.POST("/:id/participants", conversationHandler.AddParticipants) // may promote a dialogue to a conference
	group.DELETE("/:id/participants/:participantId", conversationHandler.RemoveParticipant)
	group.PUT("/:id/name", conversationHandler.Rename)
	group.PUT("/:id/read", conversationHandler.MarkAsRead)
}
