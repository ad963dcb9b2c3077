package services

import (
	"context"
	"errors"
	"fmt"

	"bearinmind/backend/apperrors"
	"bearinmind/backend/config"
	"bearinmind/backend/dto"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories"
	"bearinmind/backend/utils"

	"go.uber.org/zap"
)

// Session is a signed token together with the login response body.
type Session struct {
	Token    string
	Response dto.LoginResponse
}

type AuthService struct {
	store  repositories.Store
	users  *UserService
	cfg    *config.Config
	now    Clock
	logger *zap.Logger
}

func NewAuthService(store repositories.Store, users *UserService, cfg *config.Config, now Clock, logger *zap.Logger) *AuthService {
	return &AuthService{store: store, users: users, cfg: cfg, now: now, logger: logger}
}

// LogIn checks the credentials of an active user and issues a token.
func (s *AuthService) LogIn(ctx context.Context, creds dto.Credentials) (*Session, error) {
	user, err := s.store.Users().FindActiveByUsername(ctx, creds.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, incorrectCredentials(creds.Username)
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", creds.Username, err)
	}
	if !utils.CheckPassword(user.Credentials.Password, creds.Password) {
		return nil, incorrectCredentials(creds.Username)
	}

	return s.session(user.ID, user.Credentials.Username, user.FullName(), user.Credentials.Role, user.Locale, user.Image)
}

// SignUp registers a user and logs them in.
func (s *AuthService) SignUp(ctx context.Context, req dto.CreateUser) (*Session, error) {
	user, err := s.users.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	fullName := models.FullName(user.FirstName, user.MiddleName, user.LastName)
	return s.session(user.ID, user.Username, fullName, user.Role, user.Locale, user.Image)
}

func (s *AuthService) session(userID int64, username, fullName string, role models.UserRole, locale string, image *string) (*Session, error) {
	authorities := role.AuthorityNames()
	token, err := utils.GenerateToken(s.cfg, username, userID, locale, authorities, s.now())
	if err != nil {
		return nil, fmt.Errorf("sign token for user %d: %w", userID, err)
	}

	s.logger.Info("user logged in", zap.Int64("userId", userID))
	return &Session{
		Token: token,
		Response: dto.LoginResponse{
			UserID:       userID,
			UserFullName: fullName,
			UserImage:    image,
			Authorities:  authorities,
		},
	}, nil
}

// Authenticate turns a token into the caller identity.
func (s *AuthService) Authenticate(token string) (Identity, error) {
	claims, err := utils.ParseToken(s.cfg, token)
	if err != nil {
		return Identity{}, err
	}
	return IdentityFromClaims(claims), nil
}

func IdentityFromClaims(claims *utils.Claims) Identity {
	id := Identity{UserID: claims.UserID, Locale: claims.Locale}
	for _, authority := range claims.Authorities {
		if role, ok := models.UserRoleFromAuthority(authority); ok {
			id.Roles = append(id.Roles, role)
		}
	}
	return id
}

func incorrectCredentials(username string) error {
	return apperrors.Unauthorized(userResource, apperrors.INCORRECT_CREDENTIALS).With("username", username)
}
