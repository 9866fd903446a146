package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/testutil"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

type fixture struct {
	sessions *testutil.MemorySessions
	jwt      *jwt.Manager
	register *appuser.RegisterUseCase
	login    *appuser.LoginUseCase
	logout   *appuser.LogoutUseCase
	profile  *appuser.ProfileUseCase
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	log := zap.NewNop()
	svc := user.NewService(database.NewUserRepository(db))

	f := &fixture{
		sessions: testutil.NewMemorySessions(),
		jwt:      jwt.NewManager("test-secret", time.Hour),
	}
	f.register = appuser.NewRegisterUseCase(svc, f.jwt, f.sessions, log)
	f.login = appuser.NewLoginUseCase(svc, f.jwt, f.sessions, log)
	f.logout = appuser.NewLogoutUseCase(f.jwt, f.sessions)
	f.profile = appuser.NewProfileUseCase(svc, log)
	return f
}

func TestRegister_LogsInImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.register.Execute(ctx, appuser.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123", ClientIP: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := f.jwt.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	session := f.sessions.Sessions[resp.User.ID]
	require.NotNil(t, session)
	assert.Equal(t, "10.0.0.1", session["ip"])

	_, err = f.register.Execute(ctx, appuser.RegisterRequest{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameDuplicate)
}

func TestRegister_WeakPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.register.Execute(context.Background(), appuser.RegisterRequest{Username: "bob", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	assert.Empty(t, f.sessions.Sessions)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.register.Execute(ctx, appuser.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.login.Execute(ctx, appuser.LoginRequest{Username: "alice", Password: "wrong123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = f.login.Execute(ctx, appuser.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	resp, err := f.login.Execute(ctx, appuser.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_SessionFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.register.Execute(ctx, appuser.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	f.sessions.SaveErr = testutil.ErrSessionDown
	resp, err := f.login.Execute(ctx, appuser.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogout_BlacklistsToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.register.Execute(ctx, appuser.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, f.logout.Execute(ctx, resp.User.ID, resp.AccessToken))

	blacklisted, err := f.sessions.IsInBlacklist(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, blacklisted)
	assert.InDelta(t, time.Hour.Seconds(), f.sessions.Blacklist[resp.AccessToken].Seconds(), 5)
	assert.NotContains(t, f.sessions.Sessions, resp.User.ID)
}

func TestLogout_InvalidTokenOnlyClearsSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.logout.Execute(context.Background(), 7, "garbage"))
	assert.Empty(t, f.sessions.Blacklist)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, err := f.register.Execute(ctx, appuser.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	_, err = f.register.Execute(ctx, appuser.RegisterRequest{Username: "bob", Password: "secret123"})
	require.NoError(t, err)

	info, err := f.profile.Update(ctx, appuser.UpdateProfileRequest{
		UserID: alice.User.ID, Username: "alice2", FirstName: " Alice ", LastName: "Liddell", Email: "a@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", info.FullName)

	got, err := f.profile.Get(ctx, alice.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = f.profile.Update(ctx, appuser.UpdateProfileRequest{UserID: alice.User.ID, Username: "bob"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameDuplicate)

	_, err = f.profile.Get(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
