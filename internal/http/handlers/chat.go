package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/agrovet-backend/internal/http/response"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// GET /api/chat/contacts
func (ch *ChatHandler) Contacts(c *gin.Context) {
	users, err := ch.chatService.Contacts(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contacts": users})
}

// GET /api/chat/messages?peer=<userId>
// Without peer the general channel is returned.
func (ch *ChatHandler) Messages(c *gin.Context) {
	msgs, err := ch.chatService.Conversation(c.Request.Context(), c.Query("peer"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}

// POST /api/chat/messages
// body: { "receiverId"?, "content" }
func (ch *ChatHandler) Send(c *gin.Context) {
	var req services.SendMessageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, fmt.Errorf("%w: %v", perrors.ErrInvalidArgument, err))
		return
	}
	msg, err := ch.chatService.Send(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": msg})
}
