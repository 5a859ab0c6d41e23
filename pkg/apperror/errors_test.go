package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := ErrNotFound("wallet", "abc")
	assert.Contains(t, e.Error(), "ENT_001")
	assert.Contains(t, e.Error(), "wallet not found")

	wrapped := Internal(errors.New("connection refused"))
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	e := Internal(fmt.Errorf("query: %w", cause))
	assert.True(t, errors.Is(e, cause))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", ErrNotFound("wallet", "id"), KindNotFound},
		{"forbidden", ErrForbidden("instrument", "id"), KindForbidden},
		{"soft deleted", ErrSoftDeleted("wallet", "id"), KindSoftDeleted},
		{"already deleted", ErrAlreadyDeleted("instrument", "id"), KindAlreadyDeleted},
		{"parent soft deleted", ErrParentSoftDeleted("wallet", "id"), KindParentSoftDeleted},
		{"name conflict", ErrNameConflict("instrument", "ETF A"), KindNameConflict},
		{"amount format", ErrAmountFormat("1,50"), KindValidation},
		{"amount range", ErrAmountRange("90071992547409.92"), KindValidation},
		{"plain error", errors.New("whatever"), KindService},
		{"wrapped app error", fmt.Errorf("outer: %w", ErrForbidden("wallet", "id")), KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrNotFound("wallet", "id").HTTPStatus)
	assert.Equal(t, http.StatusForbidden, ErrForbidden("wallet", "id").HTTPStatus)
	assert.Equal(t, http.StatusConflict, ErrAlreadyDeleted("wallet", "id").HTTPStatus)
	assert.Equal(t, http.StatusConflict, ErrNameConflict("wallet", "x").HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, ErrAmountFormat("x").HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidToken().HTTPStatus)
	assert.Equal(t, http.StatusTooManyRequests, ErrRateLimitExceeded().HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("x")).HTTPStatus)
}

func TestEntityPayload(t *testing.T) {
	e := ErrForbidden("instrument", "8e3f")
	assert.Equal(t, "instrument", e.Entity)
	assert.Equal(t, "8e3f", e.EntityID)
}
