package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/chat"
	apperrors "github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/errors"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/session"
)

// ChatHandler relays prompts to the hosted model.
type ChatHandler struct {
	chatClient chat.Client
	sessions   session.Store
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatClient chat.Client, sessions session.Store) *ChatHandler {
	return &ChatHandler{chatClient: chatClient, sessions: sessions}
}

// ChatRequest represents a chat prompt, accepted as JSON or form data.
type ChatRequest struct {
	UserInput string `json:"user_input" form:"user_input"`
}

// ChatPage renders the chat UI.
func (h *ChatHandler) ChatPage(c echo.Context) error {
	return c.Render(http.StatusOK, "chatai", pageData(c, h.sessions, nil))
}

// Chat relays a non-empty prompt and returns the model's reply verbatim.
// An empty prompt never reaches the upstream model.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Empty prompt"})
	}
	if strings.TrimSpace(req.UserInput) == "" {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Empty prompt"})
	}

	reply, err := h.chatClient.Ask(c.Request().Context(), req.UserInput)
	if err != nil {
		c.Logger().Errorf("chat relay: %v", err)
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}
