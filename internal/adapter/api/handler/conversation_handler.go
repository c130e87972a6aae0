package handler

import (
	"github.com/labstack/echo/v4"

	"parley/internal/usecase"
	"parley/pkg/response"
	"parley/pkg/utils"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
	queryUseCase        *usecase.ConversationQueryUseCase
	readTracker         *usecase.ReadTracker
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase, queryUseCase *usecase.ConversationQueryUseCase, readTracker *usecase.ReadTracker) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
		queryUseCase:        queryUseCase,
		readTracker:         readTracker,
	}
}

type createConversationRequest struct {
	ReceiverIDs []string `json:"receiver_ids" validate:"required,min=1"`
	Name        string   `json:"name"`
	Text        string   `json:"text" validate:"required"`
}

type addMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type addParticipantsRequest struct {
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type markReadRequest struct {
	MessageIDs []string `json:"message_ids" validate:"required,min=1"`
}

func (h *ConversationHandler) CreateConversation(c echo.Context) error {
	var req createConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	view, err := h.conversationUseCase.Create(c.Request().Context(), callerFrom(c), usecase.CreateConversationInput{
		ReceiverIDs: req.ReceiverIDs,
		Name:        req.Name,
		Text:        req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, view)
}

func (h *ConversationHandler) GetConversation(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	view, total, err := h.queryUseCase.GetConversation(c.Request().Context(), callerFrom(c), c.Param("id"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, view, total, params.Page, params.PageSize)
}

func (h *ConversationHandler) GetConversationsAttended(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	summaries, total, err := h.queryUseCase.GetConversationsAttended(c.Request().Context(), callerFrom(c), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, summaries, total, params.Page, params.PageSize)
}

func (h *ConversationHandler) AddMessage(c echo.Context) error {
	var req addMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	view, err := h.conversationUseCase.AddMessage(c.Request().Context(), callerFrom(c), c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, view)
}

func (h *ConversationHandler) AddParticipants(c echo.Context) error {
	var req addParticipantsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	view, err := h.conversationUseCase.AddParticipants(c.Request().Context(), callerFrom(c), c.Param("id"), req.ParticipantIDs)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *ConversationHandler) RemoveParticipant(c echo.Context) error {
	view, err := h.conversationUseCase.RemoveParticipant(c.Request().Context(), callerFrom(c), c.Param("id"), c.Param("participantId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *ConversationHandler) Rename(c echo.Context) error {
	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	view, err := h.conversationUseCase.Rename(c.Request().Context(), callerFrom(c), c.Param("id"), req.Name)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *ConversationHandler) MarkAsRead(c echo.Context) error {
	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.readTracker.MarkMessagesAsRead(c.Request().Context(), callerFrom(c), c.Param("id"), req.MessageIDs); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}

func (h *ConversationHandler) CountUpdated(c echo.Context) error {
	count, err := h.queryUseCase.CountUpdated(c.Request().Context(), callerFrom(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{"count": count})
}

func callerFrom(c echo.Context) usecase.Caller {
	caller := usecase.Caller{}
	if uid, ok := c.Get("uid").(string); ok {
		caller.ParticipantID = uid
	}
	if locale, ok := c.Get("locale").(string); ok {
		caller.Locale = locale
	}
	if timezone, ok := c.Get("timezone").(string); ok {
		caller.Timezone = timezone
	}
	return caller
}
