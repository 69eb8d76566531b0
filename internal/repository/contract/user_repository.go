package contract

import (
	"context"

	"clipnote-be/internal/model"
	"clipnote-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*model.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateRefreshToken(ctx context.Context, token *model.UserRefreshToken) error
	FindRefreshToken(ctx context.Context, specs ...specification.Specification) (*model.UserRefreshToken, error)
	RevokeAllRefreshTokens(ctx context.Context, specs ...specification.Specification) error

	SaveUserProvider(ctx context.Context, provider *model.UserProvider) error
	FindUserProvider(ctx context.Context, specs ...specification.Specification) (*model.UserProvider, error)
}
