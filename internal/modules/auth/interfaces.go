package auth

import (
	"context"

	"gearbook/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, o *domain.Organization) error
}
