package handler

import (
	"piggy-bank/internal/adapter/http/dto"
	"piggy-bank/internal/adapter/http/middleware"
	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"
	"piggy-bank/pkg/apperror"
	"piggy-bank/pkg/response"

	"github.com/gin-gonic/gin"
)

// InstrumentHandler serves instrument CRUD and value-change history.
type InstrumentHandler struct {
	instSvc  ports.InstrumentService
	auditSvc ports.AuditService
}

// NewInstrumentHandler creates a new InstrumentHandler.
func NewInstrumentHandler(instSvc ports.InstrumentService, auditSvc ports.AuditService) *InstrumentHandler {
	return &InstrumentHandler{instSvc: instSvc, auditSvc: auditSvc}
}

// Create handles POST /api/v1/wallets/:id/instruments.
func (h *InstrumentHandler) Create(c *gin.Context) {
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

	var req dto.CreateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(&req.Name, req.Description)

	inst, err := h.instSvc.Create(c.Request.Context(), ports.CreateInstrumentRequest{
		OwnerID:       ownerID,
		WalletID:      walletID,
		Type:          domain.InstrumentType(req.Type),
		Name:          req.Name,
		Description:   req.Description,
		InvestedMoney: req.InvestedMoney,
		CurrentValue:  req.CurrentValue,
		Goal:          req.Goal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditSvc.Log(c.Request.Context(), &domain.AuditLog{
		UserID:       &ownerID,
		Action:       domain.AuditActionCreateInstrument,
		ResourceType: domain.EntityInstrument,
		ResourceID:   inst.ID.String(),
		IPAddress:    c.ClientIP(),
	})

	resp, err := dto.NewInstrumentResponse(inst)
	if err != nil {
		response.Error(c, apperror.Internal(err))
		return
	}
	response.Created(c, resp)
}

// Get handles GET /api/v1/instruments/:id.
func (h *InstrumentHandler) Get(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	instrumentID, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	inst, err := h.instSvc.Get(c.Request.Context(), ownerID, instrumentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := dto.NewInstrumentResponse(inst)
	if err != nil {
		response.Error(c, apperror.Internal(err))
		return
	}
	response.OK(c, resp)
}

// Update handles PATCH /api/v1/instruments/:id.
func (h *InstrumentHandler) Update(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	instrumentID, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(req.Name, req.Description)

	update := ports.UpdateInstrumentRequest{
		OwnerID:       ownerID,
		InstrumentID:  instrumentID,
		Name:          req.Name,
		Description:   req.Description,
		InvestedMoney: req.InvestedMoney,
		CurrentValue:  req.CurrentValue,
		Goal:          req.Goal,
	}
	if req.Type != nil {
		t := domain.InstrumentType(*req.Type)
		update.Type = &t
	}

	inst, err := h.instSvc.Update(c.Request.Context(), update)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditSvc.Log(c.Request.Context(), &domain.AuditLog{
		UserID:       &ownerID,
		Action:       domain.AuditActionUpdateInstrument,
		ResourceType: domain.EntityInstrument,
		ResourceID:   instrumentID.String(),
		IPAddress:    c.ClientIP(),
	})

	resp, err := dto.NewInstrumentResponse(inst)
	if err != nil {
		response.Error(c, apperror.Internal(err))
		return
	}
	response.OK(c, resp)
}

// Delete handles DELETE /api/v1/instruments/:id.
func (h *InstrumentHandler) Delete(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	instrumentID, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.instSvc.SoftDelete(c.Request.Context(), ownerID, instrumentID); err != nil {
		response.Error(c, err)
		return
	}

	h.auditSvc.Log(c.Request.Context(), &domain.AuditLog{
		UserID:       &ownerID,
		Action:       domain.AuditActionDeleteInstrument,
		ResourceType: domain.EntityInstrument,
		ResourceID:   instrumentID.String(),
		IPAddress:    c.ClientIP(),
	})

	response.NoContent(c)
}

// History handles GET /api/v1/instruments/:id/history.
func (h *InstrumentHandler) History(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	instrumentID, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	changes, err := h.instSvc.History(c.Request.Context(), ownerID, instrumentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.ValueChangeResponse, 0, len(changes))
	for i := range changes {
		resp, err := dto.NewValueChangeResponse(&changes[i])
		if err != nil {
			response.Error(c, apperror.Internal(err))
			return
		}
		out = append(out, resp)
	}
	response.OK(c, out)
}
