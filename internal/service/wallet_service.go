package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"
	"piggy-bank/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type walletService struct {
	walletRepo ports.WalletRepository
	instRepo   ports.InstrumentRepository
	log        zerolog.Logger
}

// NewWalletService creates the wallet CRUD/aggregation service.
func NewWalletService(
	walletRepo ports.WalletRepository,
	instRepo ports.InstrumentRepository,
	log zerolog.Logger,
) ports.WalletService {
	return &walletService{
		walletRepo: walletRepo,
		instRepo:   instRepo,
		log:        log,
	}
}

// Create stores a new wallet. The name must be unique among the owner's
// live wallets; the partial unique index catches races the precheck misses.
func (s *walletService) Create(ctx context.Context, req ports.CreateWalletRequest) (*domain.Wallet, error) {
	taken, err := s.walletRepo.NameExists(ctx, req.OwnerID, req.Name)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("check wallet name: %w", err))
	}
	if taken {
		return nil, apperror.ErrNameConflict(domain.EntityWallet, req.Name)
	}

	now := time.Now().UTC()
	w := &domain.Wallet{
		ID:          uuid.New(),
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.walletRepo.Create(ctx, w); err != nil {
		if errors.Is(err, ports.ErrUniqueViolation) {
			return nil, apperror.ErrNameConflict(domain.EntityWallet, req.Name)
		}
		return nil, apperror.Internal(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", w.ID.String()).
		Str("owner_id", req.OwnerID.String()).
		Msg("wallet created")

	return w, nil
}

// List returns the owner's live wallets, each with aggregates summed in
// the store over its live instruments.
func (s *walletService) List(ctx context.Context, ownerID uuid.UUID) ([]ports.WalletSummary, error) {
	wallets, err := s.walletRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list wallets: %w", err))
	}

	summaries := make([]ports.WalletSummary, 0, len(wallets))
	for _, w := range wallets {
		sums, err := s.instRepo.SumByWallet(ctx, w.ID)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("sum wallet %s: %w", w.ID, err))
		}
		summaries = append(summaries, ports.WalletSummary{
			Wallet:          w,
			InstrumentCount: sums.InstrumentCount,
			Aggregates:      aggregatesFromSums(*sums),
		})
	}
	return summaries, nil
}

// GetDetail returns one wallet with its live instruments and aggregates
// computed over them.
func (s *walletService) GetDetail(ctx context.Context, ownerID, walletID uuid.UUID) (*ports.WalletDetail, error) {
	w, err := guardOwned(ctx, domain.EntityWallet, walletID, ownerID, guardRead, s.walletRepo.GetByID, walletMeta)
	if err != nil {
		return nil, err
	}

	instruments, err := s.instRepo.ListByWallet(ctx, walletID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list instruments: %w", err))
	}

	return &ports.WalletDetail{
		Wallet:      *w,
		Instruments: instruments,
		Aggregates:  aggregatesFromSums(sumInstruments(instruments)),
	}, nil
}

// Update applies name/description changes. Fields absent from the request
// are left alone; if nothing actually changes the stored row is returned
// without a write.
func (s *walletService) Update(ctx context.Context, req ports.UpdateWalletRequest) (*domain.Wallet, error) {
	w, err := guardOwned(ctx, domain.EntityWallet, req.WalletID, req.OwnerID, guardMutate, s.walletRepo.GetByID, walletMeta)
	if err != nil {
		return nil, err
	}

	updated := *w
	changed := false

	if req.Name != nil && *req.Name != w.Name {
		taken, err := s.walletRepo.NameExists(ctx, req.OwnerID, *req.Name)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("check wallet name: %w", err))
		}
		if taken {
			return nil, apperror.ErrNameConflict(domain.EntityWallet, *req.Name)
		}
		updated.Name = *req.Name
		changed = true
	}

	if req.Description != nil && !equalOptString(req.Description, w.Description) {
		updated.Description = req.Description
		changed = true
	}

	if !changed {
		return w, nil
	}

	updated.UpdatedAt = time.Now().UTC()
	if err := s.walletRepo.Update(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, ports.ErrUniqueViolation):
			return nil, apperror.ErrNameConflict(domain.EntityWallet, updated.Name)
		case errors.Is(err, ports.ErrStaleRow):
			// Deleted between guard and write.
			return nil, apperror.ErrSoftDeleted(domain.EntityWallet, req.WalletID.String())
		}
		return nil, apperror.Internal(fmt.Errorf("update wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", req.WalletID.String()).
		Msg("wallet updated")

	return &updated, nil
}

// SoftDelete stamps the wallet deleted. The write succeeds only if the
// row is still live, so concurrent deletes cannot both win.
func (s *walletService) SoftDelete(ctx context.Context, ownerID, walletID uuid.UUID) error {
	if _, err := guardOwned(ctx, domain.EntityWallet, walletID, ownerID, guardDelete, s.walletRepo.GetByID, walletMeta); err != nil {
		return err
	}

	deleted, err := s.walletRepo.SoftDelete(ctx, walletID)
	if err != nil {
		return apperror.Internal(fmt.Errorf("soft delete wallet: %w", err))
	}
	if !deleted {
		// Lost the race against another delete.
		return apperror.ErrAlreadyDeleted(domain.EntityWallet, walletID.String())
	}

	s.log.Info().
		Str("wallet_id", walletID.String()).
		Str("owner_id", ownerID.String()).
		Msg("wallet soft-deleted")

	return nil
}

// equalOptString compares two nullable strings with nil == nil.
func equalOptString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// equalOptInt64 compares two nullable amounts with nil == nil.
func equalOptInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
