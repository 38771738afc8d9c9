package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantgen-backend/internal/adminauth"
)

func TestLoginHandlerSuccess(t *testing.T) {
	hasher := adminauth.NewPasswordHasher()
	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	tokens := adminauth.NewTokenManager([]byte("test-signing-key-at-least-32-bytes!!"))

	h := NewAuthHandler(hasher, tokens, hash)

	body, _ := json.Marshal(loginRequestDTO{Password: "correct horse battery staple"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got loginResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Token)

	claims, err := tokens.Validate(got.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}

func TestLoginHandlerRejectsWrongPassword(t *testing.T) {
	hasher := adminauth.NewPasswordHasher()
	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	tokens := adminauth.NewTokenManager([]byte("key"))

	h := NewAuthHandler(hasher, tokens, hash)

	body, _ := json.Marshal(loginRequestDTO{Password: "wrong password"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandlerRejectsMalformedBody(t *testing.T) {
	hasher := adminauth.NewPasswordHasher()
	tokens := adminauth.NewTokenManager([]byte("key"))
	h := NewAuthHandler(hasher, tokens, "irrelevant")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
