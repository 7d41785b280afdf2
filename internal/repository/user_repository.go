package repository

import (
	"context"

	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Upsert(ctx context.Context, user *entity.User) error
}
