package postgres

import (
	"context"
	"errors"
	"fmt"

	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	db Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(db Pool) *WalletRepo {
	return &WalletRepo{db: db}
}

const walletColumns = `id, owner_id, name, description, created_at, updated_at, deleted_at`

func (r *WalletRepo) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		wallet.ID, wallet.OwnerID, wallet.Name, wallet.Description,
		wallet.CreatedAt, wallet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", mapConstraintErr(err))
	}
	return nil
}

// GetByID returns the wallet regardless of its deleted state. Callers
// inspect DeletedAt themselves.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	var w domain.Wallet
	err := r.db.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.OwnerID, &w.Name, &w.Description,
		&w.CreatedAt, &w.UpdatedAt, &w.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return &w, nil
}

func (r *WalletRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := make([]domain.Wallet, 0)
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(
			&w.ID, &w.OwnerID, &w.Name, &w.Description,
			&w.CreatedAt, &w.UpdatedAt, &w.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// NameExists checks live wallets of the owner for an exact name match.
func (r *WalletRepo) NameExists(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM wallets
			WHERE owner_id = $1 AND name = $2 AND deleted_at IS NULL
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, ownerID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wallet name: %w", err)
	}
	return exists, nil
}

// Update writes name and description, conditional on the row still being
// live. Zero affected rows means the wallet was deleted since it was read.
func (r *WalletRepo) Update(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		UPDATE wallets
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query,
		wallet.ID, wallet.Name, wallet.Description, wallet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update wallet: %w", mapConstraintErr(err))
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrStaleRow
	}
	return nil
}

// SoftDelete stamps deleted_at on a live row. Returns false when no live
// row matched, so a repeated delete is distinguishable from a successful one.
func (r *WalletRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE wallets
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("soft delete wallet: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
