package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCaseImpl - вход по email/паролю с JWT и управление
// пользователями. Пароли хранятся только в виде bcrypt-хешей.
type AuthUseCaseImpl struct {
	storage  port.UserStoragePort
	secret   []byte
	tokenTTL time.Duration
	// now подменяется в тестах, по умолчанию time.Now
	now func() time.Time
}

func NewAuthUseCase(storage port.UserStoragePort, secret string, tokenTTL time.Duration) *AuthUseCaseImpl {
	return &AuthUseCaseImpl{
		storage:  storage,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Login проверяет пароль и выдает подписанный HS256-токен. Несуществующий
// email, неверный пароль и деактивированный пользователь неразличимы
// для клиента.
func (uc *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	user, err := uc.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Login attempt for unknown email", port.Fields{"email": email})
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive {
		logger.Warn("Login attempt for deactivated user", port.Fields{"user_id": user.ID})
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login attempt with wrong password", port.Fields{"user_id": user.ID})
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := uc.signToken(user)
	if err != nil {
		logger.Error("Failed to sign token", err, port.Fields{"user_id": user.ID})
		return "", nil, err
	}

	logger.Info("User logged in", port.Fields{"user_id": user.ID, "role": user.Role})
	return token, user, nil
}

func (uc *AuthUseCaseImpl) signToken(user *domain.User) (string, error) {
	now := uc.now()
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", user.ID),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(uc.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.secret)
	if err != nil {
		return "", fmt.Errorf("unable to sign token: %w", err)
	}
	return signed, nil
}

func (uc *AuthUseCaseImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return uc.storage.GetByID(ctx, id)
}

func (uc *AuthUseCaseImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.storage.List(ctx)
}

func (uc *AuthUseCaseImpl) CreateUser(ctx context.Context, u *domain.User, password string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("unable to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	if u.Role == "" {
		u.Role = domain.RoleAgent
	}
	u.IsActive = true

	created, err := uc.storage.Create(ctx, u)
	if err != nil {
		logger.Error("Failed to create user", err, port.Fields{"email": u.Email})
		return nil, err
	}
	logger.Info("User created", port.Fields{"user_id": created.ID, "role": created.Role})
	return created, nil
}

// UpdateUser обновляет профиль; пароль меняется только если передан
// непустой password.
func (uc *AuthUseCaseImpl) UpdateUser(ctx context.Context, u *domain.User, password string) (*domain.User, error) {
	existing, err := uc.storage.GetByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = existing.PasswordHash
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("unable to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	return uc.storage.Update(ctx, u)
}

func (uc *AuthUseCaseImpl) SetUserActive(ctx context.Context, id int64, active bool) error {
	logger := contextkeys.LoggerFromContext(ctx)
	if err := uc.storage.SetActive(ctx, id, active); err != nil {
		return err
	}
	logger.Info("User active flag changed", port.Fields{"user_id": id, "is_active": active})
	return nil
}
