package postgres

import (
	"context"
	"fmt"

	"piggy-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ValueChangeRepo implements ports.ValueChangeRepository. Rows are
// append-only history; there is no update or delete path.
type ValueChangeRepo struct {
	db Pool
}

// NewValueChangeRepo creates a new ValueChangeRepo.
func NewValueChangeRepo(db Pool) *ValueChangeRepo {
	return &ValueChangeRepo{db: db}
}

// Create inserts a value-change row inside the instrument update transaction.
func (r *ValueChangeRepo) Create(ctx context.Context, tx pgx.Tx, change *domain.ValueChange) error {
	query := `
		INSERT INTO value_changes (id, instrument_id, before_grosze, after_grosze, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query,
		change.ID, change.InstrumentID, change.BeforeGrosze, change.AfterGrosze, change.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert value change: %w", err)
	}
	return nil
}

// ListByInstrument returns the full history, newest first.
func (r *ValueChangeRepo) ListByInstrument(ctx context.Context, instrumentID uuid.UUID) ([]domain.ValueChange, error) {
	query := `
		SELECT id, instrument_id, before_grosze, after_grosze, created_at
		FROM value_changes
		WHERE instrument_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, instrumentID)
	if err != nil {
		return nil, fmt.Errorf("list value changes: %w", err)
	}
	defer rows.Close()

	changes := make([]domain.ValueChange, 0)
	for rows.Next() {
		var vc domain.ValueChange
		if err := rows.Scan(&vc.ID, &vc.InstrumentID, &vc.BeforeGrosze, &vc.AfterGrosze, &vc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan value change: %w", err)
		}
		changes = append(changes, vc)
	}
	return changes, rows.Err()
}
