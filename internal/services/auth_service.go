package services

import (
	"context"

	"github.com/baharkarakas/legion/internal/apperr"
	"github.com/baharkarakas/legion/internal/auth"
	"github.com/baharkarakas/legion/internal/models"
)

const msgBadCredentials = "Invalid email or password"

// Session is what register, login and refresh hand back to the client.
type Session struct {
	User         models.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
}

type AuthService struct {
	users  *UserService
	tokens *auth.TokenManager
}

func NewAuthService(users *UserService, tm *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tm}
}

// Register creates the user and signs them in. Admins can only be created by
// another admin through the users endpoints.
func (s *AuthService) Register(ctx context.Context, in models.NewUser) (Session, error) {
	if in.Role == models.RoleAdmin {
		return Session{}, apperr.Forbidden("You do not have permission to perform this action")
	}
	u, err := s.users.Create(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return s.issue(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	u, ok, err := s.users.byEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if !ok || u.PasswordHash == "" || s.users.hasher.Verify(password, u.PasswordHash) != nil {
		return Session{}, apperr.Unauthorized(msgBadCredentials)
	}
	return s.issue(u)
}

// Refresh swaps a valid refresh token for a new pair. The role is reread
// from the store so a demoted user does not keep the old role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return Session{}, apperr.Unauthorized("invalid refresh token")
	}
	u, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return Session{}, apperr.Unauthorized("invalid refresh token")
		}
		return Session{}, err
	}
	return s.issue(u)
}

func (s *AuthService) issue(u models.User) (Session, error) {
	pair, err := s.tokens.GeneratePair(u.ID, u.Role)
	if err != nil {
		return Session{}, apperr.Store(err)
	}
	return Session{User: u, Token: pair.Access, RefreshToken: pair.Refresh}, nil
}
