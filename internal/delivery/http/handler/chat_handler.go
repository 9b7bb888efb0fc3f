package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/usecase/chat"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

func NewChatHandler(chatUseCase *chat.ChatUseCase, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:      logger,
	}
}

// MessagesResponse is the ordered chat history of a match.
type MessagesResponse struct {
	Messages []*domain.Message `json:"messages"`
}

// ListMessages handles GET /matches/:id/messages
// @Summary Chat history
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MessagesResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	messages, err := h.chatUseCase.ListOrdered(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessagesResponse{Messages: messages})
}

// SendMessage handles POST /matches/:id/messages
// @Summary Send a chat message
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body chat.SendMessageRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.chatUseCase.Send(c.Request.Context(), c.Param("id"), identity.UserID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// Stream handles GET /matches/:id/messages/ws. Every frame sent to the
// client is the full ordered history. Client frames are ignored except for
// close and pong control frames.
func (h *ChatHandler) Stream(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	matchID := c.Param("id")

	// Check access before upgrading so failures are plain HTTP errors.
	if _, err := h.chatUseCase.ListOrdered(c.Request.Context(), matchID, identity.UserID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates := make(chan []*domain.Message, 1)
	unsubscribe, err := h.chatUseCase.Subscribe(c.Request.Context(), matchID, identity.UserID, func(msgs []*domain.Message) {
		// Keep only the latest snapshot if the writer falls behind.
		select {
		case <-updates:
		default:
		}
		updates <- msgs
	})
	if err != nil {
		h.logger.Warn("chat subscribe failed", zap.String("match_id", matchID), zap.Error(err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscribe failed"),
			time.Now().Add(wsWriteWait))
		return
	}
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case msgs := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(MessagesResponse{Messages: msgs}); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
