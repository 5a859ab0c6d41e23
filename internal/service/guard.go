package service

import (
	"context"
	"time"

	"piggy-bank/internal/core/domain"
	"piggy-bank/pkg/apperror"

	"github.com/google/uuid"
)

// guardPolicy selects how the soft-delete branch of the guard is reported.
// The check order itself is fixed for every entity operation:
// existence, then soft-delete, then ownership.
type guardPolicy int

const (
	guardRead   guardPolicy = iota // soft-deleted reads as missing
	guardMutate                    // soft-deleted blocks the mutation
	guardDelete                    // soft-deleted means deleted twice
	guardParent                    // soft-deleted parent blocks the child
)

// guardOwned loads an entity through fetch and applies the shared access
// policy. fetch returns nil when no row exists; meta extracts the owner id
// and soft-delete stamp. On success the loaded entity is returned so
// callers do not fetch twice.
func guardOwned[E any](
	ctx context.Context,
	kind string,
	id uuid.UUID,
	callerID uuid.UUID,
	policy guardPolicy,
	fetch func(context.Context, uuid.UUID) (*E, error),
	meta func(*E) (uuid.UUID, *time.Time),
) (*E, error) {
	ent, err := fetch(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if ent == nil {
		return nil, apperror.ErrNotFound(kind, id.String())
	}

	owner, deletedAt := meta(ent)
	if deletedAt != nil {
		switch policy {
		case guardRead:
			return nil, apperror.ErrNotFound(kind, id.String())
		case guardDelete:
			return nil, apperror.ErrAlreadyDeleted(kind, id.String())
		case guardParent:
			return nil, apperror.ErrParentSoftDeleted(kind, id.String())
		default:
			return nil, apperror.ErrSoftDeleted(kind, id.String())
		}
	}

	if owner != callerID {
		return nil, apperror.ErrForbidden(kind, id.String())
	}
	return ent, nil
}

func walletMeta(w *domain.Wallet) (uuid.UUID, *time.Time) {
	return w.OwnerID, w.DeletedAt
}

func instrumentMeta(i *domain.Instrument) (uuid.UUID, *time.Time) {
	return i.OwnerID, i.DeletedAt
}
