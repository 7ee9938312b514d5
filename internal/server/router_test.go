package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"buildmart/internal/auth"
	"buildmart/internal/domain"
)

const testSecret = "router-secret"

func doAuthedRequest(t *testing.T, handler http.Handler, method, path string, role domain.Role) *httptest.ResponseRecorder {
	t.Helper()

	token, err := auth.IssueToken(testSecret, 1, role, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_OrderStatusIsAdminOnly(t *testing.T) {
	router := NewRouter(Controllers{}, testSecret, zap.NewNop())

	rec := doAuthedRequest(t, router, http.MethodPut, "/api/orders/1/status", domain.RoleDealer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doAuthedRequest(t, router, http.MethodPut, "/api/orders/1/status", domain.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_DealerOnlyOrderViews(t *testing.T) {
	router := NewRouter(Controllers{}, testSecret, zap.NewNop())

	rec := doAuthedRequest(t, router, http.MethodGet, "/api/orders/pending", domain.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doAuthedRequest(t, router, http.MethodPut, "/api/orders/1/confirm-dealer", domain.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_UnauthenticatedOrderAccess(t *testing.T) {
	router := NewRouter(Controllers{}, testSecret, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
