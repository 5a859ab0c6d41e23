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

// InstrumentRepo implements ports.InstrumentRepository.
type InstrumentRepo struct {
	db Pool
}

// NewInstrumentRepo creates a new InstrumentRepo.
func NewInstrumentRepo(db Pool) *InstrumentRepo {
	return &InstrumentRepo{db: db}
}

const instrumentColumns = `id, wallet_id, owner_id, type, name, description,
		invested_money_grosze, current_value_grosze, goal_grosze,
		created_at, updated_at, deleted_at`

func scanInstrument(row pgx.Row) (*domain.Instrument, error) {
	var i domain.Instrument
	err := row.Scan(
		&i.ID, &i.WalletID, &i.OwnerID, &i.Type, &i.Name, &i.Description,
		&i.InvestedMoneyGrosze, &i.CurrentValueGrosze, &i.GoalGrosze,
		&i.CreatedAt, &i.UpdatedAt, &i.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InstrumentRepo) Create(ctx context.Context, inst *domain.Instrument) error {
	query := `
		INSERT INTO instruments (
			id, wallet_id, owner_id, type, name, description,
			invested_money_grosze, current_value_grosze, goal_grosze,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		inst.ID, inst.WalletID, inst.OwnerID, inst.Type, inst.Name, inst.Description,
		inst.InvestedMoneyGrosze, inst.CurrentValueGrosze, inst.GoalGrosze,
		inst.CreatedAt, inst.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert instrument: %w", mapConstraintErr(err))
	}
	return nil
}

// GetByID returns the instrument regardless of its deleted state.
func (r *InstrumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instruments WHERE id = $1`

	inst, err := scanInstrument(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan instrument: %w", err)
	}
	return inst, nil
}

func (r *InstrumentRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Instrument, error) {
	query := `
		SELECT ` + instrumentColumns + `
		FROM instruments
		WHERE wallet_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
	}
	defer rows.Close()

	instruments := make([]domain.Instrument, 0)
	for rows.Next() {
		inst, err := scanInstrument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan instrument row: %w", err)
		}
		instruments = append(instruments, *inst)
	}
	return instruments, rows.Err()
}

// NameTaken checks live siblings in the wallet for a name collision.
// foldCase compares case-insensitively; excludeID skips the given row.
func (r *InstrumentRepo) NameTaken(ctx context.Context, walletID uuid.UUID, name string, foldCase bool, excludeID *uuid.UUID) (bool, error) {
	cmp := "name = $2"
	if foldCase {
		cmp = "lower(name) = lower($2)"
	}
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM instruments
			WHERE wallet_id = $1 AND %s AND deleted_at IS NULL
			AND ($3::uuid IS NULL OR id <> $3)
		)`, cmp)

	var taken bool
	if err := r.db.QueryRow(ctx, query, walletID, name, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check instrument name: %w", err)
	}
	return taken, nil
}

// Update writes all mutable columns inside the caller's transaction,
// conditional on the row still being live.
func (r *InstrumentRepo) Update(ctx context.Context, tx pgx.Tx, inst *domain.Instrument) error {
	query := `
		UPDATE instruments
		SET type = $2, name = $3, description = $4,
			invested_money_grosze = $5, current_value_grosze = $6, goal_grosze = $7,
			updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := tx.Exec(ctx, query,
		inst.ID, inst.Type, inst.Name, inst.Description,
		inst.InvestedMoneyGrosze, inst.CurrentValueGrosze, inst.GoalGrosze,
		inst.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update instrument: %w", mapConstraintErr(err))
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrStaleRow
	}
	return nil
}

func (r *InstrumentRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE instruments
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("soft delete instrument: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SumByWallet aggregates the monetary columns over live instruments.
// Absent goals count as zero toward the target.
func (r *InstrumentRepo) SumByWallet(ctx context.Context, walletID uuid.UUID) (*ports.WalletSums, error) {
	query := `
		SELECT
			COALESCE(SUM(goal_grosze), 0),
			COALESCE(SUM(current_value_grosze), 0),
			COALESCE(SUM(invested_money_grosze), 0),
			COUNT(*)
		FROM instruments
		WHERE wallet_id = $1 AND deleted_at IS NULL`

	var sums ports.WalletSums
	err := r.db.QueryRow(ctx, query, walletID).Scan(
		&sums.TargetGrosze, &sums.CurrentGrosze, &sums.InvestedGrosze, &sums.InstrumentCount)
	if err != nil {
		return nil, fmt.Errorf("sum instruments: %w", err)
	}
	return &sums, nil
}
