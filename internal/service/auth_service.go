package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/model"
	"clipnote-be/internal/pkg/logger"
	"clipnote-be/internal/pkg/mailer"
	"clipnote-be/internal/pkg/serverutils"
	"clipnote-be/internal/repository/memory"
	"clipnote-be/internal/repository/specification"
	"clipnote-be/internal/repository/unitofwork"
	"clipnote-be/pkg/events"
)

const (
	accessTokenTTL       = 24 * time.Hour
	refreshTokenTTL      = 30 * 24 * time.Hour
	shortRefreshTokenTTL = 24 * time.Hour
)

// SubscriptionCloser tears down a user's live connections. Logout
// calls it synchronously so no frame is delivered after the identity
// is gone.
type SubscriptionCloser interface {
	CloseUser(userID uuid.UUID)
}

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	uowFactory unitofwork.UnitOfWorkFactory
	sessions   *memory.SessionRepository
	closer     SubscriptionCloser
	email      mailer.IEmailService
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.UnitOfWorkFactory,
	sessions *memory.SessionRepository,
	closer SubscriptionCloser,
	email mailer.IEmailService,
	publisher IPublisherService,
	logger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		sessions:   sessions,
		closer:     closer,
		email:      email,
		publisher:  publisher,
		logger:     logger,
	}
}

// Register creates the account only. The caller still has to log in;
// registration never issues tokens.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Id:          uuid.New(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
	}
	hashStr := string(hash)
	user.PasswordHash = &hashStr

	uow := s.uowFactory.New()
	err = uow.Do(ctx, func(factory unitofwork.RepositoryFactory) error {
		existing, err := factory.UserRepository().FindOne(ctx, specification.ByEmail(req.Email))
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailTaken
		}
		return factory.UserRepository().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("auth", "user registered", map[string]interface{}{
		"user_id": user.Id.String(),
		"email":   user.Email,
	})

	if s.email != nil {
		go func(to string) {
			if err := s.email.SendWelcome(to); err != nil {
				s.logger.Warn("auth", "welcome email failed", map[string]interface{}{
					"email": to,
					"error": err.Error(),
				})
			}
		}(user.Email)
	}

	_ = s.publisher.PublishEvent(ctx, events.NewBaseEvent(events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.Id.String(),
		"email":   user.Email,
	}))

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

// Login verifies credentials and issues tokens. A missing account and
// a wrong password both come back as ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	repos := s.uowFactory.Repositories()
	user, err := repos.UserRepository().FindOne(ctx, specification.ByEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	ttl := shortRefreshTokenTTL
	if req.RememberMe {
		ttl = refreshTokenTTL
	}
	rawRefresh, err := issueRefreshToken(ctx, repos, user.Id, ttl, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	s.sessions.Put(&memory.Session{
		UserId:    user.Id,
		Email:     user.Email,
		LoginAt:   time.Now(),
		IpAddress: ipAddress,
		UserAgent: userAgent,
	})

	_ = s.publisher.PublishEvent(ctx, events.NewBaseEvent(events.TypeUserLogin, map[string]interface{}{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"ip":      ipAddress,
	}))

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		User: dto.UserDTO{
			Id:          user.Id,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			CreatedAt:   user.CreatedAt,
		},
	}, nil
}

// Refresh exchanges a live refresh token for a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	repos := s.uowFactory.Repositories()
	token, err := repos.UserRepository().FindRefreshToken(ctx,
		specification.ByTokenHash(hashToken(refreshToken)),
	)
	if err != nil {
		return nil, err
	}
	if token == nil || token.Revoked || time.Now().After(token.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := repos.UserRepository().FindOne(ctx, specification.ByID(token.UserId))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	accessToken, err := generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshTokenResponse{AccessToken: accessToken}, nil
}

// Logout revokes every refresh token the user holds, drops the
// session and closes the user's live connections before returning.
// Ordering matters: the connections must be gone before the client
// treats itself as signed out.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	repos := s.uowFactory.Repositories()
	if err := repos.UserRepository().RevokeAllRefreshTokens(ctx, specification.OwnedBy(userID)); err != nil {
		s.logger.Warn("auth", "refresh token revoke failed", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}

	if s.closer != nil {
		s.closer.CloseUser(userID)
	}
	s.sessions.Delete(userID)

	_ = s.publisher.PublishEvent(ctx, events.NewBaseEvent(events.TypeUserLogout, map[string]interface{}{
		"user_id": userID.String(),
	}))

	s.logger.Info("auth", "user logged out", map[string]interface{}{
		"user_id": userID.String(),
	})
	return nil
}

func generateAccessToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(serverutils.JwtSecret())
}

func issueRefreshToken(
	ctx context.Context,
	repos unitofwork.RepositoryFactory,
	userID uuid.UUID,
	ttl time.Duration,
	ipAddress, userAgent string,
) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	rawToken := hex.EncodeToString(raw)

	record := &model.UserRefreshToken{
		Id:        uuid.New(),
		UserId:    userID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(ttl),
		IpAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := repos.UserRepository().CreateRefreshToken(ctx, record); err != nil {
		return "", err
	}
	return rawToken, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
