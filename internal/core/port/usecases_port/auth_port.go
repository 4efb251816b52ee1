package usecases_port

import (
	"context"

	"crm-service/internal/core/domain"
)

// AuthUseCase - вход по email/паролю и управление пользователями
// (последнее доступно только администраторам, это решает REST-слой).
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, u *domain.User, password string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User, password string) (*domain.User, error)
	SetUserActive(ctx context.Context, id int64, active bool) error
}
