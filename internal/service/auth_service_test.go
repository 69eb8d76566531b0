package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/model"
	"clipnote-be/internal/pkg/serverutils"
	"clipnote-be/internal/repository/contract"
	"clipnote-be/internal/repository/memory"
	"clipnote-be/internal/repository/specification"
	"clipnote-be/internal/repository/unitofwork"
)

type fakeUserRepo struct {
	users         map[uuid.UUID]*model.User
	refreshTokens map[string]*model.UserRefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         make(map[uuid.UUID]*model.User),
		refreshTokens: make(map[string]*model.UserRefreshToken),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.users[user.Id] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.users[user.Id] = user
	return nil
}

func (f *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*model.User, error) {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByEmailSpecification:
			for _, u := range f.users {
				if u.Email == sp.Email {
					return u, nil
				}
			}
			return nil, nil
		case specification.ByIDSpecification:
			return f.users[sp.ID], nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CreateRefreshToken(_ context.Context, token *model.UserRefreshToken) error {
	f.refreshTokens[token.TokenHash] = token
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(_ context.Context, specs ...specification.Specification) (*model.UserRefreshToken, error) {
	for _, s := range specs {
		if sp, ok := s.(specification.ByTokenHashSpecification); ok {
			return f.refreshTokens[sp.TokenHash], nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) RevokeAllRefreshTokens(_ context.Context, specs ...specification.Specification) error {
	for _, t := range f.refreshTokens {
		revoke := true
		for _, s := range specs {
			if sp, ok := s.(specification.OwnedBySpecification); ok && t.UserId != sp.UserID {
				revoke = false
			}
		}
		if revoke {
			t.Revoked = true
		}
	}
	return nil
}

func (f *fakeUserRepo) SaveUserProvider(context.Context, *model.UserProvider) error { return nil }

func (f *fakeUserRepo) FindUserProvider(context.Context, ...specification.Specification) (*model.UserProvider, error) {
	return nil, nil
}

type fakeAuthRepoFactory struct {
	users *fakeUserRepo
}

func (f *fakeAuthRepoFactory) UserRepository() contract.UserRepository         { return f.users }
func (f *fakeAuthRepoFactory) NoteRepository() contract.NoteRepository         { return nil }
func (f *fakeAuthRepoFactory) ClipRepository() contract.ClipRepository         { return nil }
func (f *fakeAuthRepoFactory) ActivityRepository() contract.ActivityRepository { return nil }

type fakeCloser struct {
	closed []uuid.UUID
}

func (f *fakeCloser) CloseUser(userID uuid.UUID) {
	f.closed = append(f.closed, userID)
}

func newAuthServiceForTest() (IAuthService, *fakeUserRepo, *fakeCloser, *memory.SessionRepository) {
	repo := newFakeUserRepo()
	closer := &fakeCloser{}
	sessions := memory.NewSessionRepository(time.Hour)
	var factory unitofwork.RepositoryFactory = &fakeAuthRepoFactory{users: repo}
	svc := NewAuthService(
		&fakeUOWFactory{factory: factory},
		sessions,
		closer,
		nil,
		&fakePublisher{},
		noopLogger{},
	)
	return svc, repo, closer, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _, sessions := newAuthServiceForTest()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "user@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", resp.Email)

	// Registration creates the account without signing the user in.
	_, active := sessions.Get(resp.Id)
	assert.False(t, active)

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "correct horse",
	}, "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, resp.Id, login.User.Id)

	userID, err := serverutils.ParseToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Id, userID)

	_, active = sessions.Get(resp.Id)
	assert.True(t, active)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginFailuresAreIndistinct(t *testing.T) {
	svc, _, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "user@example.com", Password: "right password"})
	require.NoError(t, err)

	// Unknown account and wrong password yield the same error so a
	// caller cannot enumerate which emails exist.
	_, errUnknown := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"}, "", "")
	_, errWrongPw := svc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "wrong password"}, "", "")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
}

func TestRefreshTokenFlow(t *testing.T) {
	svc, repo, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "user@example.com", Password: "password1"})
	require.NoError(t, err)

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:      "user@example.com",
		Password:   "password1",
		RememberMe: true,
	}, "", "")
	require.NoError(t, err)
	require.NotEmpty(t, login.RefreshToken)

	// Only the hash is stored.
	_, rawStored := repo.refreshTokens[login.RefreshToken]
	assert.False(t, rawStored)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(ctx, "bogus-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutClosesConnectionsAndSession(t *testing.T) {
	svc, repo, closer, sessions := newAuthServiceForTest()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "user@example.com", Password: "password1"})
	require.NoError(t, err)

	// Two logins, as from two devices. Logout must revoke both
	// refresh tokens, mirroring the close-all-connections teardown.
	first, err := svc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "password1", RememberMe: true}, "", "")
	require.NoError(t, err)
	second, err := svc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "password1", RememberMe: true}, "", "")
	require.NoError(t, err)
	require.Len(t, repo.refreshTokens, 2)

	require.NoError(t, svc.Logout(ctx, reg.Id))

	assert.Equal(t, []uuid.UUID{reg.Id}, closer.closed)
	_, active := sessions.Get(reg.Id)
	assert.False(t, active)

	for _, tok := range repo.refreshTokens {
		assert.True(t, tok.Revoked)
	}

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
