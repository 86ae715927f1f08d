package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/app/services"
	"github.com/foodnest/foodnest/pkg/apperr"
	"github.com/foodnest/foodnest/pkg/auth"
)

// seedUser inserts a user with a real bcrypt hash, bypassing the service.
func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	u := &models.User{Email: email, Password: hash, Role: role, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestRegisterDefaultsToRetailer(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewAuthService(repo)

	payload, err := svc.Register(context.Background(), services.RegisterInput{
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payload.ID)
	assert.NotEmpty(t, payload.AccessToken)
	assert.NotEmpty(t, payload.RefreshToken)

	stored, err := repo.FindByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleRetailer, stored.Role)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "secret123", stored.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewAuthService(repo)
	seedUser(t, repo, "taken@example.com", "secret123", models.RoleRetailer)

	_, err := svc.Register(context.Background(), services.RegisterInput{
		Email:    "taken@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewAuthService(repo)
	seedUser(t, repo, "buyer@example.com", "secret123", models.RoleRetailer)

	payload, err := svc.Login(context.Background(), services.LoginInput{
		Email:    "buyer@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", payload.Email)
	assert.True(t, repo.updatedKeys()["last_login"], "successful login should stamp last_login")
}

func TestLoginWrongPasswordLeavesLastLoginUntouched(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewAuthService(repo)
	seedUser(t, repo, "buyer@example.com", "secret123", models.RoleRetailer)

	_, err := svc.Login(context.Background(), services.LoginInput{
		Email:    "buyer@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Empty(t, repo.updates, "failed login must not write anything")
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewAuthService(repo)

	_, err := svc.Login(context.Background(), services.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})
	// Unknown account and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

func TestRefreshExchangesTokenPair(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewAuthService(repo)
	seedUser(t, repo, "buyer@example.com", "secret123", models.RoleRetailer)

	refresh, err := auth.IssueRefreshToken("buyer@example.com")
	require.NoError(t, err)

	payload, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, payload.AccessToken)
	assert.NotEmpty(t, payload.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewAuthService(repo)
	seedUser(t, repo, "buyer@example.com", "secret123", models.RoleRetailer)

	access, err := auth.IssueAccessToken("buyer@example.com")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestResolveUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewAuthService(repo)
	seeded := seedUser(t, repo, "buyer@example.com", "secret123", models.RoleRetailer)

	access, err := auth.IssueAccessToken("buyer@example.com")
	require.NoError(t, err)

	user, err := svc.ResolveUser(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)

	// A refresh token is not a valid credential for requests.
	refresh, err := auth.IssueRefreshToken("buyer@example.com")
	require.NoError(t, err)
	_, err = svc.ResolveUser(context.Background(), refresh)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.ResolveUser(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestResolveUserVanishedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewAuthService(repo)
	seeded := seedUser(t, repo, "gone@example.com", "secret123", models.RoleRetailer)

	access, err := auth.IssueAccessToken("gone@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(context.Background(), seeded.ID))

	_, err = svc.ResolveUser(context.Background(), access)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
