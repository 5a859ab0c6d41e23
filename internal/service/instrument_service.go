package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"
	"piggy-bank/pkg/apperror"
	"piggy-bank/pkg/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type instrumentService struct {
	instRepo   ports.InstrumentRepository
	walletRepo ports.WalletRepository
	vcRepo     ports.ValueChangeRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewInstrumentService creates the instrument CRUD/history service.
func NewInstrumentService(
	instRepo ports.InstrumentRepository,
	walletRepo ports.WalletRepository,
	vcRepo ports.ValueChangeRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) ports.InstrumentService {
	return &instrumentService{
		instRepo:   instRepo,
		walletRepo: walletRepo,
		vcRepo:     vcRepo,
		transactor: transactor,
		log:        log,
	}
}

// Create adds an instrument to a live wallet owned by the caller.
// The sibling name check at create time is case-sensitive; renames are
// checked case-insensitively. That asymmetry is the documented rule,
// mirrored by the case-sensitive unique index on (wallet_id, name).
func (s *instrumentService) Create(ctx context.Context, req ports.CreateInstrumentRequest) (*domain.Instrument, error) {
	if !req.Type.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown instrument type %q", req.Type))
	}

	if _, err := guardOwned(ctx, domain.EntityWallet, req.WalletID, req.OwnerID, guardMutate, s.walletRepo.GetByID, walletMeta); err != nil {
		return nil, err
	}

	taken, err := s.instRepo.NameTaken(ctx, req.WalletID, req.Name, false, nil)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("check instrument name: %w", err))
	}
	if taken {
		return nil, apperror.ErrNameConflict(domain.EntityInstrument, req.Name)
	}

	invested, err := money.Parse(req.InvestedMoney)
	if err != nil {
		return nil, err
	}
	current, err := money.Parse(req.CurrentValue)
	if err != nil {
		return nil, err
	}
	goal, err := money.ParseOptional(req.Goal)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inst := &domain.Instrument{
		ID:                  uuid.New(),
		WalletID:            req.WalletID,
		OwnerID:             req.OwnerID,
		Type:                req.Type,
		Name:                req.Name,
		Description:         req.Description,
		InvestedMoneyGrosze: invested,
		CurrentValueGrosze:  current,
		GoalGrosze:          goal,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.instRepo.Create(ctx, inst); err != nil {
		if errors.Is(err, ports.ErrUniqueViolation) {
			return nil, apperror.ErrNameConflict(domain.EntityInstrument, req.Name)
		}
		return nil, apperror.Internal(fmt.Errorf("create instrument: %w", err))
	}

	s.log.Info().
		Str("instrument_id", inst.ID.String()).
		Str("wallet_id", req.WalletID.String()).
		Str("type", string(req.Type)).
		Msg("instrument created")

	return inst, nil
}

// Get returns one live instrument owned by the caller.
func (s *instrumentService) Get(ctx context.Context, ownerID, instrumentID uuid.UUID) (*domain.Instrument, error) {
	return guardOwned(ctx, domain.EntityInstrument, instrumentID, ownerID, guardRead, s.instRepo.GetByID, instrumentMeta)
}

// Update applies a field diff. Only fields present in the request and
// actually different from the stored value are written; if the diff is
// empty the stored row is returned with no write at all. A change of
// current value records a history row in the same transaction.
func (s *instrumentService) Update(ctx context.Context, req ports.UpdateInstrumentRequest) (*domain.Instrument, error) {
	inst, err := guardOwned(ctx, domain.EntityInstrument, req.InstrumentID, req.OwnerID, guardMutate, s.instRepo.GetByID, instrumentMeta)
	if err != nil {
		return nil, err
	}
	if _, err := guardOwned(ctx, domain.EntityWallet, inst.WalletID, req.OwnerID, guardParent, s.walletRepo.GetByID, walletMeta); err != nil {
		return nil, err
	}

	updated := *inst
	changed := false
	var valueBefore, valueAfter int64
	valueChanged := false

	if req.Type != nil && *req.Type != inst.Type {
		if !req.Type.Valid() {
			return nil, apperror.Validation(fmt.Sprintf("unknown instrument type %q", *req.Type))
		}
		updated.Type = *req.Type
		changed = true
	}

	if req.Name != nil && *req.Name != inst.Name {
		taken, err := s.instRepo.NameTaken(ctx, inst.WalletID, *req.Name, true, &inst.ID)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("check instrument name: %w", err))
		}
		if taken {
			return nil, apperror.ErrNameConflict(domain.EntityInstrument, *req.Name)
		}
		updated.Name = *req.Name
		changed = true
	}

	if req.Description != nil && !equalOptString(req.Description, inst.Description) {
		updated.Description = req.Description
		changed = true
	}

	if req.InvestedMoney != nil {
		v, err := money.Parse(*req.InvestedMoney)
		if err != nil {
			return nil, err
		}
		if v != inst.InvestedMoneyGrosze {
			updated.InvestedMoneyGrosze = v
			changed = true
		}
	}

	if req.CurrentValue != nil {
		v, err := money.Parse(*req.CurrentValue)
		if err != nil {
			return nil, err
		}
		if v != inst.CurrentValueGrosze {
			valueBefore, valueAfter = inst.CurrentValueGrosze, v
			valueChanged = true
			updated.CurrentValueGrosze = v
			changed = true
		}
	}

	if req.Goal != nil {
		v, err := money.Parse(*req.Goal)
		if err != nil {
			return nil, err
		}
		if !equalOptInt64(&v, inst.GoalGrosze) {
			updated.GoalGrosze = &v
			changed = true
		}
	}

	if !changed {
		return inst, nil
	}

	updated.UpdatedAt = time.Now().UTC()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.instRepo.Update(ctx, dbTx, &updated); err != nil {
		switch {
		case errors.Is(err, ports.ErrUniqueViolation):
			return nil, apperror.ErrNameConflict(domain.EntityInstrument, updated.Name)
		case errors.Is(err, ports.ErrStaleRow):
			return nil, apperror.ErrSoftDeleted(domain.EntityInstrument, req.InstrumentID.String())
		}
		return nil, apperror.Internal(fmt.Errorf("update instrument: %w", err))
	}

	if valueChanged {
		change := &domain.ValueChange{
			ID:           uuid.New(),
			InstrumentID: inst.ID,
			BeforeGrosze: valueBefore,
			AfterGrosze:  valueAfter,
			CreatedAt:    updated.UpdatedAt,
		}
		if err := s.vcRepo.Create(ctx, dbTx, change); err != nil {
			return nil, apperror.Internal(fmt.Errorf("record value change: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.Internal(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("instrument_id", req.InstrumentID.String()).
		Bool("value_changed", valueChanged).
		Msg("instrument updated")

	return &updated, nil
}

// SoftDelete stamps the instrument deleted. Re-deleting is a distinct
// conflict, and the conditional write keeps concurrent deletes honest.
func (s *instrumentService) SoftDelete(ctx context.Context, ownerID, instrumentID uuid.UUID) error {
	inst, err := guardOwned(ctx, domain.EntityInstrument, instrumentID, ownerID, guardDelete, s.instRepo.GetByID, instrumentMeta)
	if err != nil {
		return err
	}
	if _, err := guardOwned(ctx, domain.EntityWallet, inst.WalletID, ownerID, guardParent, s.walletRepo.GetByID, walletMeta); err != nil {
		return err
	}

	deleted, err := s.instRepo.SoftDelete(ctx, instrumentID)
	if err != nil {
		return apperror.Internal(fmt.Errorf("soft delete instrument: %w", err))
	}
	if !deleted {
		return apperror.ErrAlreadyDeleted(domain.EntityInstrument, instrumentID.String())
	}

	s.log.Info().
		Str("instrument_id", instrumentID.String()).
		Msg("instrument soft-deleted")

	return nil
}

// History returns the instrument's value changes, newest first.
func (s *instrumentService) History(ctx context.Context, ownerID, instrumentID uuid.UUID) ([]domain.ValueChange, error) {
	if _, err := guardOwned(ctx, domain.EntityInstrument, instrumentID, ownerID, guardRead, s.instRepo.GetByID, instrumentMeta); err != nil {
		return nil, err
	}

	changes, err := s.vcRepo.ListByInstrument(ctx, instrumentID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list value changes: %w", err))
	}
	return changes, nil
}
