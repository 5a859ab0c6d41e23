package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"piggy-bank/internal/adapter/http/dto"
	"piggy-bank/internal/adapter/http/handler"
	"piggy-bank/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newTestAPI wires real services over in-memory repositories behind the
// production router.
func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	store := newMemStore()
	log := zerolog.Nop()

	userRepo := &memUserRepo{s: store}
	walletRepo := &memWalletRepo{s: store}
	instRepo := &memInstrumentRepo{s: store}
	vcRepo := &memValueChangeRepo{s: store}
	auditRepo := &memAuditRepo{s: store}

	hashSvc := service.NewHashService()
	tokenSvc := service.NewTokenService("integration-secret", time.Hour, "piggy-bank")
	authSvc := service.NewAuthService(userRepo, hashSvc, tokenSvc)
	auditSvc := service.NewAuditService(auditRepo, log)
	walletSvc := service.NewWalletService(walletRepo, instRepo, log)
	instSvc := service.NewInstrumentService(instRepo, walletRepo, vcRepo, memTransactor{}, log)

	return handler.NewRouter(handler.RouterDeps{
		AuthHandler:       handler.NewAuthHandler(authSvc, auditSvc),
		WalletHandler:     handler.NewWalletHandler(walletSvc, auditSvc),
		InstrumentHandler: handler.NewInstrumentHandler(instSvc, auditSvc),
		HealthHandler:     handler.NewHealthHandler(),
		TokenService:      tokenSvc,
		MaxBodyBytes:      1 << 20,
		Logger:            log,
	})
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *apiClient) data(w *httptest.ResponseRecorder) map[string]any {
	c.t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func (c *apiClient) dataList(w *httptest.ResponseRecorder) []map[string]any {
	c.t.Helper()
	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

// signUp registers and logs a user in, storing the bearer token.
func (c *apiClient) signUp(username string) {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/v1/auth/register",
		gin.H{"username": username, "password": "s3cret-password"})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/api/v1/auth/login",
		gin.H{"username": username, "password": "s3cret-password"})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	c.token = c.data(w)["token"].(string)
}

func TestAPI_FullScenario(t *testing.T) {
	c := &apiClient{t: t, router: newTestAPI(t)}
	c.signUp("alice")

	// Create a wallet.
	w := c.do(http.MethodPost, "/api/v1/wallets",
		gin.H{"name": "Retirement", "description": "long horizon"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	walletID := c.data(w)["id"].(string)

	// Duplicate wallet name conflicts.
	w = c.do(http.MethodPost, "/api/v1/wallets", gin.H{"name": "Retirement"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Add an instrument: invested 100.00, value 100.00, goal 200.00.
	w = c.do(http.MethodPost, "/api/v1/wallets/"+walletID+"/instruments", gin.H{
		"type":           "bonds",
		"name":           "EDO0635",
		"invested_money": "100.00",
		"current_value":  "100.00",
		"goal":           "200.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	instID := c.data(w)["id"].(string)
	assert.Equal(t, float64(10000), c.data(w)["invested_money_grosze"])

	// Exact duplicate name in the same wallet conflicts at create.
	w = c.do(http.MethodPost, "/api/v1/wallets/"+walletID+"/instruments", gin.H{
		"type":           "bonds",
		"name":           "EDO0635",
		"invested_money": "1.00",
		"current_value":  "1.00",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Same name different case passes the create check.
	w = c.do(http.MethodPost, "/api/v1/wallets/"+walletID+"/instruments", gin.H{
		"type":           "etf",
		"name":           "edo0635",
		"invested_money": "50.00",
		"current_value":  "55.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	secondID := c.data(w)["id"].(string)

	// But renaming onto a sibling is checked case-insensitively.
	w = c.do(http.MethodPatch, "/api/v1/instruments/"+secondID,
		gin.H{"name": "Edo0635"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Value rises 100.00 -> 120.00; a history row is recorded.
	w = c.do(http.MethodPatch, "/api/v1/instruments/"+instID,
		gin.H{"current_value": "120.00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "120.00", c.data(w)["current_value_pln"])

	// Idempotent update: same value again adds no history.
	w = c.do(http.MethodPatch, "/api/v1/instruments/"+instID,
		gin.H{"current_value": "120.00"})
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/api/v1/instruments/"+instID+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := c.dataList(w)
	require.Len(t, history, 1)
	assert.Equal(t, float64(10000), history[0]["before_grosze"])
	assert.Equal(t, float64(12000), history[0]["after_grosze"])
	assert.Equal(t, "increase", history[0]["direction"])

	// Wallet detail aggregates: invested 150.00, value 175.00, goal 200.00.
	w = c.do(http.MethodGet, "/api/v1/wallets/"+walletID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	agg := c.data(w)["aggregates"].(map[string]any)
	assert.Equal(t, float64(20000), agg["target_grosze"])
	assert.Equal(t, float64(17500), agg["current_value_grosze"])
	assert.Equal(t, float64(15000), agg["invested_sum_grosze"])
	assert.InDelta(t, 87.5, agg["progress_percent"].(float64), 0.001)
	assert.InDelta(t, 16.67, agg["performance_percent"].(float64), 0.001)

	// Delete an instrument, then again: second delete conflicts.
	w = c.do(http.MethodDelete, "/api/v1/instruments/"+secondID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do(http.MethodDelete, "/api/v1/instruments/"+secondID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Deleted instrument reads as missing.
	w = c.do(http.MethodGet, "/api/v1/instruments/"+secondID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete the wallet; reads now 404, mutations of children conflict.
	w = c.do(http.MethodDelete, "/api/v1/wallets/"+walletID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = c.do(http.MethodGet, "/api/v1/wallets/"+walletID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = c.do(http.MethodPatch, "/api/v1/instruments/"+instID,
		gin.H{"current_value": "130.00"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The freed name can be reused.
	w = c.do(http.MethodPost, "/api/v1/wallets", gin.H{"name": "Retirement"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAPI_OwnershipIsolation(t *testing.T) {
	router := newTestAPI(t)

	alice := &apiClient{t: t, router: router}
	alice.signUp("alice")
	bob := &apiClient{t: t, router: router}
	bob.signUp("bob")

	w := alice.do(http.MethodPost, "/api/v1/wallets", gin.H{"name": "Private"})
	require.Equal(t, http.StatusCreated, w.Code)
	walletID := alice.data(w)["id"].(string)

	// Bob sees a live foreign wallet as forbidden, not missing.
	w = bob.do(http.MethodGet, "/api/v1/wallets/"+walletID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Both users may use the same wallet name.
	w = bob.do(http.MethodPost, "/api/v1/wallets", gin.H{"name": "Private"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Once Alice deletes it, Bob's probe reads as missing.
	w = alice.do(http.MethodDelete, "/api/v1/wallets/"+walletID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = bob.do(http.MethodGet, "/api/v1/wallets/"+walletID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Concurrent deletes of the same wallet: exactly one wins.
func TestAPI_ConcurrentDeleteSingleWinner(t *testing.T) {
	c := &apiClient{t: t, router: newTestAPI(t)}
	c.signUp("alice")

	w := c.do(http.MethodPost, "/api/v1/wallets", gin.H{"name": "Contested"})
	require.Equal(t, http.StatusCreated, w.Code)
	walletID := c.data(w)["id"].(string)

	const workers = 8
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			resp := c.do(http.MethodDelete, "/api/v1/wallets/"+walletID, nil)
			codes[slot] = resp.Code
		}(i)
	}
	wg.Wait()

	var deleted, conflicted int
	for _, code := range codes {
		switch code {
		case http.StatusNoContent:
			deleted++
		case http.StatusConflict:
			conflicted++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, deleted)
	assert.Equal(t, workers-1, conflicted)
}
