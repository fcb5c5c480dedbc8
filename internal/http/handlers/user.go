package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/agrovet-backend/internal/http/response"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/services"
)

type UserHandler struct {
	userService   services.UserService
	chatService   services.ChatService
	avatarService services.AvatarService
}

func NewUserHandler(userService services.UserService, chatService services.ChatService, avatarService services.AvatarService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		chatService:   chatService,
		avatarService: avatarService,
	}
}

// GET /api/users
func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.userService.Directory(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"users": users})
}

// DELETE /api/users/:id
func (uh *UserHandler) Delete(c *gin.Context) {
	found, err := uh.userService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if !found {
		response.RespondErr(c, perrors.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/users/:id/mute
func (uh *UserHandler) ToggleMute(c *gin.Context) {
	u, err := uh.chatService.ToggleMute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": u})
}

// GET /api/users/:id/avatar.png?size=128
func (uh *UserHandler) Avatar(c *gin.Context) {
	if uh.avatarService == nil {
		response.RespondErr(c, perrors.ErrNotConfigured)
		return
	}
	u, err := uh.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "128"))
	png, err := uh.avatarService.RenderPNG(c.Request.Context(), u, size)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", png)
}
