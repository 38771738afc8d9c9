package api

import (
	"encoding/json"
	"net/http"

	"plantgen-backend/internal/adminauth"
	"plantgen-backend/internal/logging"
)

// AuthHandler issues admin session tokens. There is exactly one admin
// account (an operator, not an end user), configured at startup by its
// argon2id hash rather than backed by a user table.
type AuthHandler struct {
	hasher       *adminauth.PasswordHasher
	tokens       *adminauth.TokenManager
	passwordHash string
}

func NewAuthHandler(hasher *adminauth.PasswordHasher, tokens *adminauth.TokenManager, passwordHash string) *AuthHandler {
	return &AuthHandler{hasher: hasher, tokens: tokens, passwordHash: passwordHash}
}

type loginRequestDTO struct {
	Password string `json:"password"`
}

type loginResponseDTO struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var dto loginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	logger := logging.FromContext(r.Context())

	ok, err := h.hasher.Verify(dto.Password, h.passwordHash)
	if err != nil {
		logger.Error().Err(err).Msg("cluster-service: admin password verification failed")
		respondError(w, http.StatusInternalServerError, "failed to verify credentials")
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue("admin")
	if err != nil {
		logger.Error().Err(err).Msg("cluster-service: failed to issue admin token")
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, loginResponseDTO{Token: token})
}
