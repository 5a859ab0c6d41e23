package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"piggy-bank/internal/adapter/http/dto"
	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"
	"piggy-bank/internal/core/ports/mocks"
	"piggy-bank/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type routerFixture struct {
	authSvc   *mocks.MockAuthService
	walletSvc *mocks.MockWalletService
	instSvc   *mocks.MockInstrumentService
	tokenSvc  *mocks.MockTokenService
	router    *gin.Engine
	userID    uuid.UUID
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &routerFixture{
		authSvc:   mocks.NewMockAuthService(ctrl),
		walletSvc: mocks.NewMockWalletService(ctrl),
		instSvc:   mocks.NewMockInstrumentService(ctrl),
		tokenSvc:  mocks.NewMockTokenService(ctrl),
		userID:    uuid.New(),
	}

	auditSvc := mocks.NewMockAuditService(ctrl)
	auditSvc.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()

	f.router = NewRouter(RouterDeps{
		AuthHandler:       NewAuthHandler(f.authSvc, auditSvc),
		WalletHandler:     NewWalletHandler(f.walletSvc, auditSvc),
		InstrumentHandler: NewInstrumentHandler(f.instSvc, auditSvc),
		HealthHandler:     NewHealthHandler(),
		TokenService:      f.tokenSvc,
		MaxBodyBytes:      1 << 20,
		Logger:            zerolog.Nop(),
	})
	return f
}

// do performs a request; authed requests go through the mocked token check.
func (f *routerFixture) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		f.tokenSvc.EXPECT().
			Validate("valid-token").
			Return(&ports.TokenClaims{UserID: f.userID, Username: "alice"}, nil)
		req.Header.Set("Authorization", "Bearer valid-token")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRegister_Created(t *testing.T) {
	f := newRouterFixture(t)
	userID := uuid.New()

	f.authSvc.EXPECT().
		Register(gomock.Any(), ports.RegisterRequest{Username: "alice", Password: "s3cret-password"}).
		Return(&ports.RegisterResponse{UserID: userID, Username: "alice"}, nil)

	w := f.do(http.MethodPost, "/api/v1/auth/register",
		gin.H{"username": "alice", "password": "s3cret-password"}, false)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestRegister_ShortPassword(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodPost, "/api/v1/auth/register",
		gin.H{"username": "alice", "password": "short"}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newRouterFixture(t)

	f.authSvc.EXPECT().
		Login(gomock.Any(), "alice", "wrong-password").
		Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := f.do(http.MethodPost, "/api/v1/auth/login",
		gin.H{"username": "alice", "password": "wrong-password"}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}

func TestWallets_RequireAuth(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/api/v1/wallets", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateWallet_Created(t *testing.T) {
	f := newRouterFixture(t)

	f.walletSvc.EXPECT().
		Create(gomock.Any(), ports.CreateWalletRequest{OwnerID: f.userID, Name: "Savings"}).
		Return(&domain.Wallet{ID: uuid.New(), OwnerID: f.userID, Name: "Savings"}, nil)

	w := f.do(http.MethodPost, "/api/v1/wallets", gin.H{"name": "Savings"}, true)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetWallet_NotFound(t *testing.T) {
	f := newRouterFixture(t)
	walletID := uuid.New()

	f.walletSvc.EXPECT().
		GetDetail(gomock.Any(), f.userID, walletID).
		Return(nil, apperror.ErrNotFound(domain.EntityWallet, walletID.String()))

	w := f.do(http.MethodGet, "/api/v1/wallets/"+walletID.String(), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ENT_001")
}

func TestGetWallet_BadID(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/api/v1/wallets/not-a-uuid", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteWallet_NoContent(t *testing.T) {
	f := newRouterFixture(t)
	walletID := uuid.New()

	f.walletSvc.EXPECT().
		SoftDelete(gomock.Any(), f.userID, walletID).
		Return(nil)

	w := f.do(http.MethodDelete, "/api/v1/wallets/"+walletID.String(), nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteWallet_AlreadyDeleted(t *testing.T) {
	f := newRouterFixture(t)
	walletID := uuid.New()

	f.walletSvc.EXPECT().
		SoftDelete(gomock.Any(), f.userID, walletID).
		Return(apperror.ErrAlreadyDeleted(domain.EntityWallet, walletID.String()))

	w := f.do(http.MethodDelete, "/api/v1/wallets/"+walletID.String(), nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ENT_004")
}

func TestCreateInstrument_BadAmountRejectedAtBinding(t *testing.T) {
	f := newRouterFixture(t)
	walletID := uuid.New()

	w := f.do(http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/instruments", gin.H{
		"type":           "etf",
		"name":           "SP500",
		"invested_money": "1.234",
		"current_value":  "100.00",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateInstrument_UnknownTypeRejectedAtBinding(t *testing.T) {
	f := newRouterFixture(t)
	walletID := uuid.New()

	w := f.do(http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/instruments", gin.H{
		"type":           "crypto",
		"name":           "BTC",
		"invested_money": "100.00",
		"current_value":  "100.00",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateInstrument_Created(t *testing.T) {
	f := newRouterFixture(t)
	walletID := uuid.New()

	f.instSvc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req ports.CreateInstrumentRequest) (*domain.Instrument, error) {
			assert.Equal(t, walletID, req.WalletID)
			assert.Equal(t, domain.InstrumentTypeBonds, req.Type)
			return &domain.Instrument{
				ID:                  uuid.New(),
				WalletID:            walletID,
				OwnerID:             f.userID,
				Type:                req.Type,
				Name:                req.Name,
				InvestedMoneyGrosze: 10000,
				CurrentValueGrosze:  10000,
			}, nil
		})

	w := f.do(http.MethodPost, "/api/v1/wallets/"+walletID.String()+"/instruments", gin.H{
		"type":           "bonds",
		"name":           "EDO0635",
		"invested_money": "100.00",
		"current_value":  "100.00",
	}, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"invested_money_pln":"100.00"`)
}

func TestInstrumentHistory_OK(t *testing.T) {
	f := newRouterFixture(t)
	instID := uuid.New()

	f.instSvc.EXPECT().
		History(gomock.Any(), f.userID, instID).
		Return([]domain.ValueChange{
			{ID: uuid.New(), InstrumentID: instID, BeforeGrosze: 10000, AfterGrosze: 12000},
		}, nil)

	w := f.do(http.MethodGet, "/api/v1/instruments/"+instID.String()+"/history", nil, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"direction":"increase"`)
	assert.Contains(t, w.Body.String(), `"delta_grosze":2000`)
}

func TestHealth_NoCheckersIsOK(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}
