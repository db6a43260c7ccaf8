package repository

import (
	"context"

	"github.com/avolkov/goshop/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	// Create stores the user and its empty profile together; every account
	// has a profile from the moment it exists.
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Profile(ctx context.Context, userID uint64) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, p *model.UserProfile) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		profile := model.UserProfile{UserID: u.ID}
		return tx.Create(&profile).Error
	})
}

func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Profile(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	var p model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) SaveProfile(ctx context.Context, p *model.UserProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
