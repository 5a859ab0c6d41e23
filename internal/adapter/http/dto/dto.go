package dto

import (
	"time"

	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"
	"piggy-bank/pkg/money"

	"github.com/google/uuid"
)

// --- Auth ---

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// --- Wallets ---

type CreateWalletRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// UpdateWalletRequest carries optional fields; nil means "leave unchanged".
type UpdateWalletRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

type WalletResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WalletAggregatesResponse renders each sum both in grosze and as a
// formatted PLN string, plus the two rounded ratios.
type WalletAggregatesResponse struct {
	TargetGrosze       int64   `json:"target_grosze"`
	TargetPLN          string  `json:"target_pln"`
	CurrentValueGrosze int64   `json:"current_value_grosze"`
	CurrentValuePLN    string  `json:"current_value_pln"`
	InvestedSumGrosze  int64   `json:"invested_sum_grosze"`
	InvestedSumPLN     string  `json:"invested_sum_pln"`
	ProgressPercent    float64 `json:"progress_percent"`
	PerformancePercent float64 `json:"performance_percent"`
}

type WalletSummaryResponse struct {
	WalletResponse
	InstrumentCount int64                    `json:"instrument_count"`
	Aggregates      WalletAggregatesResponse `json:"aggregates"`
}

type WalletDetailResponse struct {
	WalletResponse
	Instruments []InstrumentResponse     `json:"instruments"`
	Aggregates  WalletAggregatesResponse `json:"aggregates"`
}

// --- Instruments ---

type CreateInstrumentRequest struct {
	Type          string  `json:"type" binding:"required,instrument_type"`
	Name          string  `json:"name" binding:"required,min=1,max=255"`
	Description   *string `json:"description" binding:"omitempty,max=1000"`
	InvestedMoney string  `json:"invested_money" binding:"required,pln_amount"`
	CurrentValue  string  `json:"current_value" binding:"required,pln_amount"`
	Goal          *string `json:"goal" binding:"omitempty,pln_amount"`
}

type UpdateInstrumentRequest struct {
	Type          *string `json:"type" binding:"omitempty,instrument_type"`
	Name          *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string `json:"description" binding:"omitempty,max=1000"`
	InvestedMoney *string `json:"invested_money" binding:"omitempty,pln_amount"`
	CurrentValue  *string `json:"current_value" binding:"omitempty,pln_amount"`
	Goal          *string `json:"goal" binding:"omitempty,pln_amount"`
}

type InstrumentResponse struct {
	ID                  uuid.UUID `json:"id"`
	WalletID            uuid.UUID `json:"wallet_id"`
	Type                string    `json:"type"`
	Name                string    `json:"name"`
	Description         *string   `json:"description,omitempty"`
	InvestedMoneyGrosze int64     `json:"invested_money_grosze"`
	InvestedMoneyPLN    string    `json:"invested_money_pln"`
	CurrentValueGrosze  int64     `json:"current_value_grosze"`
	CurrentValuePLN     string    `json:"current_value_pln"`
	GoalGrosze          *int64    `json:"goal_grosze,omitempty"`
	GoalPLN             *string   `json:"goal_pln,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ValueChangeResponse struct {
	ID           uuid.UUID `json:"id"`
	BeforeGrosze int64     `json:"before_grosze"`
	BeforePLN    string    `json:"before_pln"`
	AfterGrosze  int64     `json:"after_grosze"`
	AfterPLN     string    `json:"after_pln"`
	DeltaGrosze  int64     `json:"delta_grosze"`
	Direction    string    `json:"direction"`
	CreatedAt    time.Time `json:"created_at"`
}

// --- Health ---

type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// --- Mappers ---

func NewWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func NewAggregatesResponse(a ports.WalletAggregates) (WalletAggregatesResponse, error) {
	targetPLN, err := money.Format(a.TargetGrosze)
	if err != nil {
		return WalletAggregatesResponse{}, err
	}
	currentPLN, err := money.Format(a.CurrentValueGrosze)
	if err != nil {
		return WalletAggregatesResponse{}, err
	}
	investedPLN, err := money.Format(a.InvestedSumGrosze)
	if err != nil {
		return WalletAggregatesResponse{}, err
	}
	return WalletAggregatesResponse{
		TargetGrosze:       a.TargetGrosze,
		TargetPLN:          targetPLN,
		CurrentValueGrosze: a.CurrentValueGrosze,
		CurrentValuePLN:    currentPLN,
		InvestedSumGrosze:  a.InvestedSumGrosze,
		InvestedSumPLN:     investedPLN,
		ProgressPercent:    a.ProgressPercent,
		PerformancePercent: a.PerformancePercent,
	}, nil
}

func NewWalletSummaryResponse(s ports.WalletSummary) (WalletSummaryResponse, error) {
	agg, err := NewAggregatesResponse(s.Aggregates)
	if err != nil {
		return WalletSummaryResponse{}, err
	}
	return WalletSummaryResponse{
		WalletResponse:  NewWalletResponse(&s.Wallet),
		InstrumentCount: s.InstrumentCount,
		Aggregates:      agg,
	}, nil
}

func NewWalletDetailResponse(d *ports.WalletDetail) (WalletDetailResponse, error) {
	agg, err := NewAggregatesResponse(d.Aggregates)
	if err != nil {
		return WalletDetailResponse{}, err
	}
	instruments := make([]InstrumentResponse, 0, len(d.Instruments))
	for i := range d.Instruments {
		ir, err := NewInstrumentResponse(&d.Instruments[i])
		if err != nil {
			return WalletDetailResponse{}, err
		}
		instruments = append(instruments, ir)
	}
	return WalletDetailResponse{
		WalletResponse: NewWalletResponse(&d.Wallet),
		Instruments:    instruments,
		Aggregates:     agg,
	}, nil
}

func NewInstrumentResponse(i *domain.Instrument) (InstrumentResponse, error) {
	investedPLN, err := money.Format(i.InvestedMoneyGrosze)
	if err != nil {
		return InstrumentResponse{}, err
	}
	currentPLN, err := money.Format(i.CurrentValueGrosze)
	if err != nil {
		return InstrumentResponse{}, err
	}
	goalPLN, err := money.FormatOptional(i.GoalGrosze)
	if err != nil {
		return InstrumentResponse{}, err
	}
	return InstrumentResponse{
		ID:                  i.ID,
		WalletID:            i.WalletID,
		Type:                string(i.Type),
		Name:                i.Name,
		Description:         i.Description,
		InvestedMoneyGrosze: i.InvestedMoneyGrosze,
		InvestedMoneyPLN:    investedPLN,
		CurrentValueGrosze:  i.CurrentValueGrosze,
		CurrentValuePLN:     currentPLN,
		GoalGrosze:          i.GoalGrosze,
		GoalPLN:             goalPLN,
		CreatedAt:           i.CreatedAt,
		UpdatedAt:           i.UpdatedAt,
	}, nil
}

func NewValueChangeResponse(v *domain.ValueChange) (ValueChangeResponse, error) {
	beforePLN, err := money.Format(v.BeforeGrosze)
	if err != nil {
		return ValueChangeResponse{}, err
	}
	afterPLN, err := money.Format(v.AfterGrosze)
	if err != nil {
		return ValueChangeResponse{}, err
	}
	return ValueChangeResponse{
		ID:           v.ID,
		BeforeGrosze: v.BeforeGrosze,
		BeforePLN:    beforePLN,
		AfterGrosze:  v.AfterGrosze,
		AfterPLN:     afterPLN,
		DeltaGrosze:  v.Delta(),
		Direction:    string(v.Direction()),
		CreatedAt:    v.CreatedAt,
	}, nil
}
