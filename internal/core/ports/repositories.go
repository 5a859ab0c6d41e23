package ports

import (
	"context"
	"errors"

	"piggy-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrUniqueViolation is returned by repositories when an insert or update
// hits a uniqueness constraint. Services map it to the business-level
// conflict for the entity involved.
var ErrUniqueViolation = errors.New("unique constraint violation")

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// WalletRepository defines persistence operations for wallets.
// GetByID returns soft-deleted rows as well: the guard decides how a
// deleted row is reported. List and existence checks see live rows only.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error)
	NameExists(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
	// Update persists name/description changes. The statement is conditional
	// on the row still being live; zero affected rows returns ErrStaleRow.
	Update(ctx context.Context, wallet *domain.Wallet) error
	// SoftDelete stamps deleted_at if and only if the row is still live.
	// Returns false when the row was already deleted (or missing).
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ErrStaleRow is returned by conditional updates whose row filter no
// longer holds at write time.
var ErrStaleRow = errors.New("row changed since read")

// InstrumentRepository defines persistence operations for instruments.
// Methods accepting pgx.Tx run inside the update transaction that also
// records the value change.
type InstrumentRepository interface {
	Create(ctx context.Context, instrument *domain.Instrument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Instrument, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Instrument, error)
	// NameTaken checks live siblings in a wallet for a name collision.
	// foldCase selects case-insensitive comparison; excludeID skips the
	// instrument being renamed.
	NameTaken(ctx context.Context, walletID uuid.UUID, name string, foldCase bool, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, tx pgx.Tx, instrument *domain.Instrument) error
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
	// SumByWallet aggregates goal/current/invested over live instruments.
	SumByWallet(ctx context.Context, walletID uuid.UUID) (*WalletSums, error)
}

// WalletSums holds the raw grosze sums over a wallet's live instruments.
type WalletSums struct {
	TargetGrosze    int64
	CurrentGrosze   int64
	InvestedGrosze  int64
	InstrumentCount int64
}

// ValueChangeRepository defines persistence for value-change history.
// Rows are append-only; Create participates in the instrument update
// transaction.
type ValueChangeRepository interface {
	Create(ctx context.Context, tx pgx.Tx, change *domain.ValueChange) error
	ListByInstrument(ctx context.Context, instrumentID uuid.UUID) ([]domain.ValueChange, error)
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
