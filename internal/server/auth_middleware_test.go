package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/server/authctx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func accessToken(t *testing.T, role domain.UserRole) string {
	return signToken(t, jwt.MapClaims{
		"sub":        "42",
		"email":      "manager@example.com",
		"role":       string(role),
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	})
}

func TestAuthMiddleware_ValidToken_SetsCurrentUser(t *testing.T) {
	var seen *authctx.CurrentUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = authctx.FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, domain.RoleManager))
	rec := httptest.NewRecorder()

	AuthMiddleware(testSecret)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(42), seen.ID)
	assert.Equal(t, domain.RoleManager, seen.Role)
}

func TestAuthMiddleware_OutletClaim_Propagated(t *testing.T) {
	// Tokens for outlet-bound users carry an outlet_id claim; the middleware
	// surfaces it on the request-scoped user for tenancy scoping.
	token := signToken(t, jwt.MapClaims{
		"sub":        "42",
		"email":      "staff@example.com",
		"role":       string(domain.RoleStaff),
		"outlet_id":  3,
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	})

	var seen *authctx.CurrentUser
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = authctx.FromContext(r.Context())
	})).ServeHTTP(rec, req)

	require.NotNil(t, seen)
	require.NotNil(t, seen.OutletID)
	assert.Equal(t, int64(3), *seen.OutletID)
}

func TestAuthMiddleware_NoOutletClaim_UnboundUser(t *testing.T) {
	var seen *authctx.CurrentUser
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, domain.RoleAdmin))
	rec := httptest.NewRecorder()

	AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = authctx.FromContext(r.Context())
	})).ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.Nil(t, seen.OutletID)
}

func TestAuthMiddleware_MissingToken_Unauthorized(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()

	AuthMiddleware(testSecret)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	// Refresh tokens cannot be used against protected endpoints.
	token := signToken(t, jwt.MapClaims{
		"sub":        "42",
		"token_type": "refresh",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WrongSecret_Unauthorized(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        "42",
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_Gating(t *testing.T) {
	handler := AuthMiddleware(testSecret)(
		RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))

	// Staff role is rejected by the admin gate.
	req := httptest.NewRequest(http.MethodDelete, "/packages/1", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, domain.RoleStaff))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin passes through.
	req = httptest.NewRequest(http.MethodDelete, "/packages/1", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, domain.RoleAdmin))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
