package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clipnote-be/internal/model"
	"clipnote-be/internal/repository/contract"
	"clipnote-be/internal/repository/specification"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepository{db: db}
}

func applySpecifications(db *gorm.DB, specs []specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*model.User, error) {
	var user model.User
	db := applySpecifications(r.db.WithContext(ctx), specs)
	if err := db.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	db := applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs)
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) CreateRefreshToken(ctx context.Context, token *model.UserRefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *userRepository) FindRefreshToken(ctx context.Context, specs ...specification.Specification) (*model.UserRefreshToken, error) {
	var token model.UserRefreshToken
	db := applySpecifications(r.db.WithContext(ctx), specs)
	if err := db.First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *userRepository) RevokeAllRefreshTokens(ctx context.Context, specs ...specification.Specification) error {
	db := applySpecifications(r.db.WithContext(ctx).Model(&model.UserRefreshToken{}), specs)
	return db.Update("revoked", true).Error
}

func (r *userRepository) SaveUserProvider(ctx context.Context, provider *model.UserProvider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

func (r *userRepository) FindUserProvider(ctx context.Context, specs ...specification.Specification) (*model.UserProvider, error) {
	var provider model.UserProvider
	db := applySpecifications(r.db.WithContext(ctx), specs)
	if err := db.First(&provider).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}
