package handler

import (
	"piggy-bank/internal/adapter/http/dto"
	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"
	"piggy-bank/pkg/apperror"
	"piggy-bank/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	authSvc  ports.AuthService
	auditSvc ports.AuditService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService, auditSvc ports.AuditService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, auditSvc: auditSvc}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(&req.Username)

	result, err := h.authSvc.Register(c.Request.Context(), ports.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditSvc.Log(c.Request.Context(), &domain.AuditLog{
		UserID:       &result.UserID,
		Action:       domain.AuditActionRegister,
		ResourceType: "user",
		ResourceID:   result.UserID.String(),
		IPAddress:    c.ClientIP(),
	})

	response.Created(c, dto.RegisterResponse{
		UserID:   result.UserID,
		Username: result.Username,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, expiresAt, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditSvc.Log(c.Request.Context(), &domain.AuditLog{
		Action:       domain.AuditActionLogin,
		ResourceType: "user",
		Details:      `{"username":"` + req.Username + `"}`,
		IPAddress:    c.ClientIP(),
	})

	response.OK(c, dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}
