package port

import (
	"context"

	"crm-service/internal/core/domain"
)

// UserStoragePort - хранилище пользователей CRM.
type UserStoragePort interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
