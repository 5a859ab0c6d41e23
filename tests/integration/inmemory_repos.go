package integration

import (
	"context"
	"strings"
	"sync"
	"time"

	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore backs the in-memory repositories used by the API tests. A
// single mutex covers all tables, mirroring snapshot semantics closely
// enough for the scenarios exercised here.
type memStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]domain.User
	wallets     map[uuid.UUID]domain.Wallet
	instruments map[uuid.UUID]domain.Instrument
	changes     []domain.ValueChange
	audits      []domain.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uuid.UUID]domain.User),
		wallets:     make(map[uuid.UUID]domain.Wallet),
		instruments: make(map[uuid.UUID]domain.Instrument),
	}
}

// memTx satisfies pgx.Tx for the commit/rollback calls the services make.
type memTx struct {
	pgx.Tx
}

func (t *memTx) Commit(ctx context.Context) error   { return nil }
func (t *memTx) Rollback(ctx context.Context) error { return nil }

type memTransactor struct{}

func (memTransactor) Begin(ctx context.Context) (pgx.Tx, error) { return &memTx{}, nil }

// --- users ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return ports.ErrUniqueViolation
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// --- wallets ---

type memWalletRepo struct{ s *memStore }

func (r *memWalletRepo) Create(ctx context.Context, wallet *domain.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.wallets {
		if w.OwnerID == wallet.OwnerID && w.Name == wallet.Name && w.DeletedAt == nil {
			return ports.ErrUniqueViolation
		}
	}
	r.s.wallets[wallet.ID] = *wallet
	return nil
}

func (r *memWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.wallets[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *memWalletRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Wallet, 0)
	for _, w := range r.s.wallets {
		if w.OwnerID == ownerID && w.DeletedAt == nil {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memWalletRepo) NameExists(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.wallets {
		if w.OwnerID == ownerID && w.Name == name && w.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (r *memWalletRepo) Update(ctx context.Context, wallet *domain.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.wallets[wallet.ID]
	if !ok || cur.DeletedAt != nil {
		return ports.ErrStaleRow
	}
	r.s.wallets[wallet.ID] = *wallet
	return nil
}

func (r *memWalletRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.wallets[id]
	if !ok || w.DeletedAt != nil {
		return false, nil
	}
	now := time.Now().UTC()
	w.DeletedAt = &now
	w.UpdatedAt = now
	r.s.wallets[id] = w
	return true, nil
}

// --- instruments ---

type memInstrumentRepo struct{ s *memStore }

func (r *memInstrumentRepo) Create(ctx context.Context, inst *domain.Instrument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, i := range r.s.instruments {
		if i.WalletID == inst.WalletID && i.Name == inst.Name && i.DeletedAt == nil {
			return ports.ErrUniqueViolation
		}
	}
	r.s.instruments[inst.ID] = *inst
	return nil
}

func (r *memInstrumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Instrument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i, ok := r.s.instruments[id]; ok {
		return &i, nil
	}
	return nil, nil
}

func (r *memInstrumentRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Instrument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Instrument, 0)
	for _, i := range r.s.instruments {
		if i.WalletID == walletID && i.DeletedAt == nil {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memInstrumentRepo) NameTaken(ctx context.Context, walletID uuid.UUID, name string, foldCase bool, excludeID *uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, i := range r.s.instruments {
		if i.WalletID != walletID || i.DeletedAt != nil {
			continue
		}
		if excludeID != nil && i.ID == *excludeID {
			continue
		}
		if foldCase {
			if strings.EqualFold(i.Name, name) {
				return true, nil
			}
		} else if i.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memInstrumentRepo) Update(ctx context.Context, tx pgx.Tx, inst *domain.Instrument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.instruments[inst.ID]
	if !ok || cur.DeletedAt != nil {
		return ports.ErrStaleRow
	}
	r.s.instruments[inst.ID] = *inst
	return nil
}

func (r *memInstrumentRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.instruments[id]
	if !ok || i.DeletedAt != nil {
		return false, nil
	}
	now := time.Now().UTC()
	i.DeletedAt = &now
	i.UpdatedAt = now
	r.s.instruments[id] = i
	return true, nil
}

func (r *memInstrumentRepo) SumByWallet(ctx context.Context, walletID uuid.UUID) (*ports.WalletSums, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sums ports.WalletSums
	for _, i := range r.s.instruments {
		if i.WalletID != walletID || i.DeletedAt != nil {
			continue
		}
		if i.GoalGrosze != nil {
			sums.TargetGrosze += *i.GoalGrosze
		}
		sums.CurrentGrosze += i.CurrentValueGrosze
		sums.InvestedGrosze += i.InvestedMoneyGrosze
		sums.InstrumentCount++
	}
	return &sums, nil
}

// --- value changes ---

type memValueChangeRepo struct{ s *memStore }

func (r *memValueChangeRepo) Create(ctx context.Context, tx pgx.Tx, change *domain.ValueChange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.changes = append(r.s.changes, *change)
	return nil
}

func (r *memValueChangeRepo) ListByInstrument(ctx context.Context, instrumentID uuid.UUID) ([]domain.ValueChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.ValueChange, 0)
	// Newest first.
	for i := len(r.s.changes) - 1; i >= 0; i-- {
		if r.s.changes[i].InstrumentID == instrumentID {
			out = append(out, r.s.changes[i])
		}
	}
	return out, nil
}

// --- audit ---

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audits = append(r.s.audits, *log)
	return nil
}
