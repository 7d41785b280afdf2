package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
	"github.com/yamanekazuki/hr-qa-assistant/internal/repository"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
