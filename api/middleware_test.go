package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, subject string, expiresAt time.Time, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var gotAdminID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdminID, _ = ctxGetAdminID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/api/projects/create", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	newAuthMiddleware(testSecret).authenticate(next).ServeHTTP(rec, req)
	return rec, gotAdminID
}

func TestAuthenticateMissingHeader(t *testing.T) {
	rec, _ := runAuth(t, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateNonBearerHeader(t *testing.T) {
	rec, _ := runAuth(t, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	rec, _ := runAuth(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	token := signedToken(t, "admin-1", time.Now().Add(-time.Hour), testSecret)
	rec, _ := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	token := signedToken(t, "admin-1", time.Now().Add(time.Hour), "other-secret")
	rec, _ := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	token := signedToken(t, "admin-1", time.Now().Add(time.Hour), testSecret)
	rec, adminID := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1", adminID)
}

func TestAuditLogAttributesAdmin(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := ctxWithAdminID(context.Background(), "admin-1")
	auditLog(ctx, logger, "Project deleted", "42")

	assert.Contains(t, buf.String(), `"adminID":"admin-1"`)
	assert.Contains(t, buf.String(), `"entityID":"42"`)
	assert.Contains(t, buf.String(), "Project deleted")
}

func TestRecoverPanics(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest("GET", "/api/projects", nil)
	rec := httptest.NewRecorder()
	RecoverPanics(panicking).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
