package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/model"
	"clipnote-be/internal/pkg/logger"
	"clipnote-be/internal/repository/memory"
	"clipnote-be/internal/repository/specification"
	"clipnote-be/internal/repository/unitofwork"
	"clipnote-be/pkg/events"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type IOAuthService interface {
	GetLoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (*dto.LoginResponse, error)
}

type googleUserInfo struct {
	Id      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type oauthService struct {
	uowFactory unitofwork.UnitOfWorkFactory
	sessions   *memory.SessionRepository
	publisher  IPublisherService
	config     *oauth2.Config
	logger     logger.ILogger
}

func NewOAuthService(
	uowFactory unitofwork.UnitOfWorkFactory,
	sessions *memory.SessionRepository,
	publisher IPublisherService,
	clientID, clientSecret, redirectURL string,
	logger logger.ILogger,
) IOAuthService {
	return &oauthService{
		uowFactory: uowFactory,
		sessions:   sessions,
		publisher:  publisher,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		logger: logger,
	}
}

func (s *oauthService) GetLoginURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// HandleCallback exchanges the authorization code, upserts the user
// and provider link, and issues the same token pair a password login
// would.
func (s *oauthService) HandleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, ErrInvalidCredentials
	}

	var user *model.User
	uow := s.uowFactory.New()
	err = uow.Do(ctx, func(factory unitofwork.RepositoryFactory) error {
		existing, err := factory.UserRepository().FindOne(ctx, specification.ByEmail(info.Email))
		if err != nil {
			return err
		}
		if existing == nil {
			existing = &model.User{
				Id:          uuid.New(),
				Email:       info.Email,
				DisplayName: info.Name,
			}
			if err := factory.UserRepository().Create(ctx, existing); err != nil {
				return err
			}
		}
		user = existing

		provider, err := factory.UserRepository().FindUserProvider(ctx,
			specification.ByProvider("google", info.Id),
		)
		if err != nil {
			return err
		}
		if provider == nil {
			provider = &model.UserProvider{
				Id:             uuid.New(),
				UserId:         user.Id,
				ProviderName:   "google",
				ProviderUserId: info.Id,
			}
		}
		provider.AvatarURL = info.Picture
		return factory.UserRepository().SaveUserProvider(ctx, provider)
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	rawRefresh, err := issueRefreshToken(ctx, s.uowFactory.Repositories(), user.Id, refreshTokenTTL, "", "")
	if err != nil {
		return nil, err
	}

	s.sessions.Put(&memory.Session{
		UserId:  user.Id,
		Email:   user.Email,
		LoginAt: time.Now(),
	})

	_ = s.publisher.PublishEvent(ctx, events.NewBaseEvent(events.TypeUserLogin, map[string]interface{}{
		"user_id":  user.Id.String(),
		"email":    user.Email,
		"provider": "google",
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

func (s *oauthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.config.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}
