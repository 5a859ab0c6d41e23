package ports

import (
	"context"
	"time"

	"piggy-bank/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID, username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
}

// --- Service Ports (Business Logic) ---

// AuthService defines authentication business logic.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds input for user registration.
type RegisterRequest struct {
	Username string
	Password string
}

// RegisterResponse holds the registration result.
type RegisterResponse struct {
	UserID   uuid.UUID
	Username string
}

// WalletService defines wallet CRUD and aggregate reads. Every method takes
// the authenticated owner id and applies the ownership guard.
type WalletService interface {
	Create(ctx context.Context, req CreateWalletRequest) (*domain.Wallet, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]WalletSummary, error)
	GetDetail(ctx context.Context, ownerID, walletID uuid.UUID) (*WalletDetail, error)
	Update(ctx context.Context, req UpdateWalletRequest) (*domain.Wallet, error)
	SoftDelete(ctx context.Context, ownerID, walletID uuid.UUID) error
}

// CreateWalletRequest holds validated input for wallet creation.
type CreateWalletRequest struct {
	OwnerID     uuid.UUID
	Name        string
	Description *string
}

// UpdateWalletRequest holds the optional fields of a wallet update.
// nil means the field is absent from the request.
type UpdateWalletRequest struct {
	OwnerID     uuid.UUID
	WalletID    uuid.UUID
	Name        *string
	Description *string
}

// WalletAggregates holds the computed sums and ratios over a wallet's live
// instruments. Sums are exact grosze; percents are display values rounded
// to two decimals.
type WalletAggregates struct {
	TargetGrosze       int64
	CurrentValueGrosze int64
	InvestedSumGrosze  int64
	ProgressPercent    float64
	PerformancePercent float64
}

// WalletSummary is a wallet row plus its aggregates, used by list views.
type WalletSummary struct {
	Wallet          domain.Wallet
	InstrumentCount int64
	Aggregates      WalletAggregates
}

// WalletDetail is the full wallet view: the row, its live instruments and
// the aggregates computed over them.
type WalletDetail struct {
	Wallet      domain.Wallet
	Instruments []domain.Instrument
	Aggregates  WalletAggregates
}

// InstrumentService defines instrument CRUD and history reads.
type InstrumentService interface {
	Create(ctx context.Context, req CreateInstrumentRequest) (*domain.Instrument, error)
	Get(ctx context.Context, ownerID, instrumentID uuid.UUID) (*domain.Instrument, error)
	Update(ctx context.Context, req UpdateInstrumentRequest) (*domain.Instrument, error)
	SoftDelete(ctx context.Context, ownerID, instrumentID uuid.UUID) error
	History(ctx context.Context, ownerID, instrumentID uuid.UUID) ([]domain.ValueChange, error)
}

// CreateInstrumentRequest holds input for instrument creation. Monetary
// fields are decimal PLN strings, converted to grosze by the service.
type CreateInstrumentRequest struct {
	OwnerID       uuid.UUID
	WalletID      uuid.UUID
	Type          domain.InstrumentType
	Name          string
	Description   *string
	InvestedMoney string
	CurrentValue  string
	Goal          *string
}

// UpdateInstrumentRequest holds the optional fields of an instrument
// update. nil means the field is absent from the request.
type UpdateInstrumentRequest struct {
	OwnerID       uuid.UUID
	InstrumentID  uuid.UUID
	Type          *domain.InstrumentType
	Name          *string
	Description   *string
	InvestedMoney *string
	CurrentValue  *string
	Goal          *string
}

// AuditService records audited actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
