package service

import (
	"context"
	"testing"
	"time"

	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"
	"piggy-bank/internal/core/ports/mocks"
	"piggy-bank/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authServiceFixture struct {
	userRepo *mocks.MockUserRepository
	hashSvc  *mocks.MockHashService
	tokenSvc *mocks.MockTokenService
	svc      *AuthServiceImpl
}

func newAuthServiceFixture(t *testing.T) *authServiceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &authServiceFixture{
		userRepo: mocks.NewMockUserRepository(ctrl),
		hashSvc:  mocks.NewMockHashService(ctrl),
		tokenSvc: mocks.NewMockTokenService(ctrl),
	}
	f.svc = NewAuthService(f.userRepo, f.hashSvc, f.tokenSvc)
	return f
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthServiceFixture(t)

	f.userRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
	f.hashSvc.EXPECT().Hash("s3cret-password").Return("$argon2id$...", nil)
	f.userRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *domain.User) error {
			assert.Equal(t, "alice", u.Username)
			assert.Equal(t, "$argon2id$...", u.PasswordHash)
			return nil
		})

	resp, err := f.svc.Register(context.Background(), ports.RegisterRequest{
		Username: "alice",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEqual(t, uuid.Nil, resp.UserID)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	f := newAuthServiceFixture(t)

	f.userRepo.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(&domain.User{ID: uuid.New(), Username: "alice"}, nil)

	_, err := f.svc.Register(context.Background(), ports.RegisterRequest{
		Username: "alice",
		Password: "s3cret-password",
	})
	assert.Equal(t, apperror.KindNameConflict, apperror.KindOf(err))
}

func TestAuthService_Register_RaceMapsUniqueViolation(t *testing.T) {
	f := newAuthServiceFixture(t)

	f.userRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
	f.hashSvc.EXPECT().Hash(gomock.Any()).Return("$argon2id$...", nil)
	f.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ports.ErrUniqueViolation)

	_, err := f.svc.Register(context.Background(), ports.RegisterRequest{
		Username: "alice",
		Password: "s3cret-password",
	})
	assert.Equal(t, apperror.KindNameConflict, apperror.KindOf(err))
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthServiceFixture(t)
	user := &domain.User{ID: uuid.New(), Username: "alice", PasswordHash: "$argon2id$..."}
	expiry := time.Now().Add(time.Hour)

	f.userRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
	f.hashSvc.EXPECT().Verify("s3cret-password", user.PasswordHash).Return(true, nil)
	f.tokenSvc.EXPECT().Generate(user.ID, "alice").Return("token", expiry, nil)

	token, expiresAt, err := f.svc.Login(context.Background(), "alice", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, "token", token)
	assert.Equal(t, expiry, expiresAt)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	f := newAuthServiceFixture(t)

	f.userRepo.EXPECT().GetByUsername(gomock.Any(), "nobody").Return(nil, nil)

	_, _, err := f.svc.Login(context.Background(), "nobody", "whatever-pass")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthServiceFixture(t)
	user := &domain.User{ID: uuid.New(), Username: "alice", PasswordHash: "$argon2id$..."}

	f.userRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
	f.hashSvc.EXPECT().Verify("wrong-password", user.PasswordHash).Return(false, nil)

	_, _, err := f.svc.Login(context.Background(), "alice", "wrong-password")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}
