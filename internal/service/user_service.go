package service

import (
	"context"

	"github.com/google/uuid"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/pkg/logger"
	"clipnote-be/internal/repository/memory"
	"clipnote-be/internal/repository/specification"
	"clipnote-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.UnitOfWorkFactory
	sessions   *memory.SessionRepository
	logger     logger.ILogger
}

func NewUserService(
	uowFactory unitofwork.UnitOfWorkFactory,
	sessions *memory.SessionRepository,
	logger logger.ILogger,
) IUserService {
	return &userService{
		uowFactory: uowFactory,
		sessions:   sessions,
		logger:     logger,
	}
}

// GetProfile resolves the current identity. Serving this endpoint also
// refreshes the user's in-memory session so an active tab keeps the
// session alive.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileResponse, error) {
	repos := s.uowFactory.Repositories()
	user, err := repos.UserRepository().FindOne(ctx, specification.ByID(userID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	s.sessions.Touch(userID)

	return &dto.UserProfileResponse{
		Id:          user.Id,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	repos := s.uowFactory.Repositories()
	user, err := repos.UserRepository().FindOne(ctx, specification.ByID(userID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.DisplayName = req.DisplayName
	if err := repos.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		Id:          user.Id,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}, nil
}
