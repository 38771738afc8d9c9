package adminauth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	h := NewPasswordHasher()
	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	ok, err := h.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenIssueAndValidate(t *testing.T) {
	tm := NewTokenManager([]byte("test-signing-key-at-least-32-bytes!!"))
	token, err := tm.Issue("admin")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}

func TestTokenValidateRejectsGarbage(t *testing.T) {
	tm := NewTokenManager([]byte("test-signing-key-at-least-32-bytes!!"))
	_, err := tm.Validate("not-a-jwt")
	assert.Error(t, err)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	tm := NewTokenManager([]byte("key"))
	handler := Middleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	tm := NewTokenManager([]byte("key"))
	token, err := tm.Issue("admin")
	require.NoError(t, err)

	var gotSubject string
	handler := Middleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", gotSubject)
}
