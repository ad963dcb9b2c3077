package services

import (
	"testing"
	"time"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/config"
	"bearinmind/backend/dto"
	"bearinmind/backend/models"
	"bearinmind/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTLifetimeMinutes: 30,
		ApplicationLocale:  appLocale,
	}
}

func newAuthService(e *env, now Clock) *AuthService {
	return NewAuthService(e.store, e.users, testConfig(), now, zap.NewNop())
}

func TestSignUpAndLogIn(t *testing.T) {
	e := newEnv(t)
	auth := newAuthService(e, time.Now)

	req := signUpRequest("ada@example.com")
	req.MiddleName = ptr("King")
	signedUp, err := auth.SignUp(e.ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Ada King Lovelace", signedUp.Response.UserFullName)
	assert.Equal(t, []string{"ROLE_STUDENT"}, signedUp.Response.Authorities)

	session, err := auth.LogIn(e.ctx, dto.Credentials{Username: "ada@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, signedUp.Response.UserID, session.Response.UserID)
	assert.Nil(t, session.Response.UserImage)

	identity, err := auth.Authenticate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Response.UserID, identity.UserID)
	assert.Equal(t, appLocale, identity.Locale)
	assert.True(t, identity.HasRole(models.UserRoleStudent))
	assert.False(t, identity.HasRole(models.UserRoleTeacher))
}

func TestLogIn_IncorrectCredentials(t *testing.T) {
	e := newEnv(t)
	auth := newAuthService(e, time.Now)
	_, err := auth.SignUp(e.ctx, signUpRequest("ada@example.com"))
	require.NoError(t, err)

	tests := []dto.Credentials{
		{Username: "ada@example.com", Password: "wrong"},
		{Username: "nobody@example.com", Password: "s3cret"},
	}
	for _, creds := range tests {
		_, err := auth.LogIn(e.ctx, creds)
		assert.True(t, apperrors.HasCode(err, apperrors.INCORRECT_CREDENTIALS), creds.Username)
		assert.True(t, apperrors.IsUnauthorized(err))
	}
}

func TestAuthenticate_TeacherAuthoritiesAndExpiry(t *testing.T) {
	e := newEnv(t)
	teacher := e.user("teacher", models.UserRoleTeacher)

	cfg := testConfig()
	issued := time.Now().Add(-time.Hour)
	token, err := utils.GenerateToken(cfg, "teacher@example.com", teacher.UserID, "pl", models.UserRoleTeacher.AuthorityNames(), issued)
	require.NoError(t, err)

	auth := newAuthService(e, time.Now)
	_, err = auth.Authenticate(token)
	assert.Error(t, err, "token issued an hour ago outlives a 30 minute lifetime")

	token, err = utils.GenerateToken(cfg, "teacher@example.com", teacher.UserID, "pl", models.UserRoleTeacher.AuthorityNames(), time.Now())
	require.NoError(t, err)
	identity, err := auth.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "pl", identity.Locale)
	assert.True(t, identity.HasRole(models.UserRoleTeacher))
	assert.True(t, identity.HasRole(models.UserRoleStudent))

	_, err = auth.Authenticate("not-a-token")
	assert.Error(t, err)
}

func TestIdentityFromClaims_IgnoresUnknownAuthorities(t *testing.T) {
	identity := IdentityFromClaims(&utils.Claims{
		UserID:      7,
		Locale:      "en",
		Authorities: []string{"ROLE_TEACHER", "ROLE_ROOT", "SCOPE_read"},
	})
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, []models.UserRole{models.UserRoleTeacher}, identity.Roles)
}
