package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	registered, err := f.svc.Auth.Register(f.ctx, &dto.RegisterRequest{
		Name: "Ada", Email: "Ada@Uni.edu", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, registered.User.Role)
	assert.Equal(t, "ada@uni.edu", registered.User.Email)
	assert.NotEmpty(t, registered.Token)

	_, err = f.svc.Auth.Register(f.ctx, &dto.RegisterRequest{
		Name: "Ada", Email: "ada@uni.edu", Password: "another-pass",
	})
	requireKind(t, err, apperrors.ErrConflict, "User already exists")

	loggedIn, err := f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "ada@uni.edu", Password: "correct-horse"})
	require.NoError(t, err)

	user, err := f.svc.Auth.Authenticate(f.ctx, loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Auth.Register(f.ctx, &dto.RegisterRequest{
		Name: "Ada", Email: "ada@uni.edu", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "ada@uni.edu", Password: "wrong-horse"})
	requireKind(t, err, apperrors.ErrUnauthorized, "Invalid email or password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "nobody@uni.edu", Password: "correct-horse"})
	requireKind(t, err, apperrors.ErrUnauthorized, "Invalid email or password")
}

func TestUpdateRole(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "u@uni.edu")

	updated, err := f.svc.Auth.UpdateRole(f.ctx, user.ID, models.RoleFaculty)
	require.NoError(t, err)
	assert.Equal(t, models.RoleFaculty, updated.Role)

	_, err = f.svc.Auth.UpdateRole(f.ctx, 999, models.RoleFaculty)
	requireKind(t, err, apperrors.ErrResourceNotFound, "User not found")

	_, err = f.svc.Auth.UpdateRole(f.ctx, user.ID, models.RoleType("root"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAuthenticateRejectsMalformedToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Auth.Authenticate(f.ctx, "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
