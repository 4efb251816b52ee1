package rest

import (
	"net/http"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port/usecases_port"
)

type AuthHandler struct {
	authUC usecases_port.AuthUseCase
}

func NewAuthHandler(authUC usecases_port.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req LoginRequest
	if !decodeValidatedBody(w, r, "login", &req) {
		return
	}

	token, user, err := h.authUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondUseCaseError(w, logger, err, "Login failed")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  userToResponse(*user),
	})
}

// Me обрабатывает GET /api/auth/me - профиль текущего пользователя.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	authUser, ok := contextkeys.UserFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	user, err := h.authUC.GetUser(r.Context(), authUser.UserID)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to load current user")
		return
	}
	RespondWithJSON(w, http.StatusOK, userToResponse(*user))
}

// --- Управление пользователями (только admin, проверяется в роутере) ---

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	users, err := h.authUC.ListUsers(r.Context())
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to list users")
		return
	}
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = userToResponse(u)
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": out,
	})
}

func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := h.authUC.GetUser(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to get user")
		return
	}
	RespondWithJSON(w, http.StatusOK, userToResponse(*user))
}

func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req UserRequest
	if !decodeValidatedBody(w, r, "user", &req) {
		return
	}
	// Схема допускает отсутствие пароля (нужно для PUT), при создании
	// он обязателен.
	if req.Password == "" {
		WriteValidationErrors(w, []string{"password: required for new users"})
		return
	}

	created, err := h.authUC.CreateUser(r.Context(), &domain.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}, req.Password)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to create user")
		return
	}
	RespondWithJSON(w, http.StatusCreated, userToResponse(*created))
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UserRequest
	if !decodeValidatedBody(w, r, "user", &req) {
		return
	}

	updated, err := h.authUC.UpdateUser(r.Context(), &domain.User{
		ID:        id,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}, req.Password)
	if err != nil {
		respondUseCaseError(w, logger, err, "Failed to update user")
		return
	}
	RespondWithJSON(w, http.StatusOK, userToResponse(*updated))
}

func (h *AuthHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, false)
}

func (h *AuthHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, true)
}

func (h *AuthHandler) setUserActive(w http.ResponseWriter, r *http.Request, active bool) {
	logger := contextkeys.LoggerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.authUC.SetUserActive(r.Context(), id, active); err != nil {
		respondUseCaseError(w, logger, err, "Failed to change user state")
		return
	}
	if active {
		respondOK(w, "activated")
		return
	}
	respondOK(w, "deactivated")
}
