package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/agrovet-backend/internal/http/response"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/auth/register
// body: { "name", "email", "role": "student"|"professor", "specialization"? }
func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, fmt.Errorf("%w: %v", perrors.ErrInvalidArgument, err))
		return
	}
	u, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user": u})
}

// POST /api/auth/login
// body: { "email" }
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, fmt.Errorf("%w: %v", perrors.ErrInvalidArgument, err))
		return
	}
	u, err := ah.authService.Login(c.Request.Context(), req.Email)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": u})
}

// POST /api/auth/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/auth/me
func (ah *AuthHandler) Me(c *gin.Context) {
	u, err := ah.authService.Current(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": u})
}
