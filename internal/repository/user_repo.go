package repository

import (
	"context"

	"argenbiz/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the authentication identity store. It runs on the
// elevated handle: the users table has row-level security enabled with
// no policies for the application role, so nothing in the request path
// can read it directly.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(adminDB *gorm.DB) UserRepository { return &userRepo{db: adminDB} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}
