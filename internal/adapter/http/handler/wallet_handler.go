package handler

import (
	"piggy-bank/internal/adapter/http/dto"
	"piggy-bank/internal/adapter/http/middleware"
	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"
	"piggy-bank/pkg/apperror"
	"piggy-bank/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler serves wallet CRUD and aggregate views.
type WalletHandler struct {
	walletSvc ports.WalletService
	auditSvc  ports.AuditService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, auditSvc ports.AuditService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, auditSvc: auditSvc}
}

// pathID parses the :id path parameter as a UUID.
func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid id in path")
	}
	return id, nil
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(&req.Name, req.Description)

	wallet, err := h.walletSvc.Create(c.Request.Context(), ports.CreateWalletRequest{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditSvc.Log(c.Request.Context(), &domain.AuditLog{
		UserID:       &ownerID,
		Action:       domain.AuditActionCreateWallet,
		ResourceType: domain.EntityWallet,
		ResourceID:   wallet.ID.String(),
		IPAddress:    c.ClientIP(),
	})

	response.Created(c, dto.NewWalletResponse(wallet))
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	summaries, err := h.walletSvc.List(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.WalletSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp, err := dto.NewWalletSummaryResponse(s)
		if err != nil {
			response.Error(c, apperror.Internal(err))
			return
		}
		out = append(out, resp)
	}
	response.OK(c, out)
}

// GetDetail handles GET /api/v1/wallets/:id.
func (h *WalletHandler) GetDetail(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	walletID, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.walletSvc.GetDetail(c.Request.Context(), ownerID, walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := dto.NewWalletDetailResponse(detail)
	if err != nil {
		response.Error(c, apperror.Internal(err))
		return
	}
	response.OK(c, resp)
}

// Update handles PATCH /api/v1/wallets/:id.
func (h *WalletHandler) Update(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	walletID, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(req.Name, req.Description)

	wallet, err := h.walletSvc.Update(c.Request.Context(), ports.UpdateWalletRequest{
		OwnerID:     ownerID,
		WalletID:    walletID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditSvc.Log(c.Request.Context(), &domain.AuditLog{
		UserID:       &ownerID,
		Action:       domain.AuditActionUpdateWallet,
		ResourceType: domain.EntityWallet,
		ResourceID:   walletID.String(),
		IPAddress:    c.ClientIP(),
	})

	response.OK(c, dto.NewWalletResponse(wallet))
}

// Delete handles DELETE /api/v1/wallets/:id.
func (h *WalletHandler) Delete(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	walletID, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.walletSvc.SoftDelete(c.Request.Context(), ownerID, walletID); err != nil {
		response.Error(c, err)
		return
	}

	h.auditSvc.Log(c.Request.Context(), &domain.AuditLog{
		UserID:       &ownerID,
		Action:       domain.AuditActionDeleteWallet,
		ResourceType: domain.EntityWallet,
		ResourceID:   walletID.String(),
		IPAddress:    c.ClientIP(),
	})

	response.NoContent(c)
}
