package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relayhq/relay/internal/message"
)

// MessagesHandler exposes chat-scoped message endpoints. Creating a
// message through it is what feeds the enrichment pipeline.
type MessagesHandler struct {
	service *message.Service
	logger  *slog.Logger
}

func NewMessagesHandler(log *slog.Logger, service *message.Service) *MessagesHandler {
	return &MessagesHandler{
		service: service,
		logger:  log.With(slog.String("handler", "messages")),
	}
}

func (h *MessagesHandler) Register(e *echo.Echo) {
	group := e.Group("/chats/:chat_id/messages")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
}

// Create stores a new message and kicks off its enrichment.
func (h *MessagesHandler) Create(c echo.Context) error {
	chatID := c.Param("chat_id")
	if chatID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "chat_id is required")
	}

	var req message.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.service.Create(c.Request().Context(), chatID, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, m)
}

// List returns a chat's messages in creation order.
func (h *MessagesHandler) List(c echo.Context) error {
	chatID := c.Param("chat_id")
	if chatID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "chat_id is required")
	}

	msgs, err := h.service.ListByChat(c.Request().Context(), chatID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, msgs)
}

// Get returns a single message, enrichment fields included once the
// pipeline has run.
func (h *MessagesHandler) Get(c echo.Context) error {
	chatID := c.Param("chat_id")
	id := c.Param("id")
	if chatID == "" || id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "chat_id and id are required")
	}

	m, err := h.service.Get(c.Request().Context(), chatID, id)
	if err != nil {
		if errors.Is(err, message.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, m)
}
