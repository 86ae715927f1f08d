// Package services implements the business rules. Services depend on the
// repository interfaces and return apperr-tagged errors; they never touch
// HTTP concerns.
package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/app/repositories"
	"github.com/foodnest/foodnest/pkg/apperr"
	"github.com/foodnest/foodnest/pkg/auth"
	"github.com/foodnest/foodnest/pkg/metrics"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email      string      `json:"email" validate:"required,email"`
	Password   string      `json:"password" validate:"required,min=8"`
	FirstName  string      `json:"first_name" validate:"nullable,max=100"`
	MiddleName string      `json:"middle_name" validate:"nullable,max=100"`
	LastName   string      `json:"last_name" validate:"nullable,max=100"`
	Phone      string      `json:"phone" validate:"nullable,max=30"`
	Address    string      `json:"address" validate:"nullable,max=255"`
	Role       models.Role `json:"role" validate:"nullable,in=admin,wholesaler,retailer,dispatch"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthPayload is returned by register, login and refresh.
type AuthPayload struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService verifies credentials, issues tokens and resolves the current
// user from a bearer token.
type AuthService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account. Email uniqueness is enforced with a pre-insert
// lookup (the unique index backs it up under concurrent registration).
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthPayload, error) {
	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, apperr.Conflict("email already registered")
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleRetailer
	}

	now := time.Now()
	user := &models.User{
		Email:      in.Email,
		Password:   hash,
		FirstName:  in.FirstName,
		MiddleName: in.MiddleName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		Address:    in.Address,
		Role:       role,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	metrics.UsersRegistered.WithLabelValues(string(role)).Inc()

	return s.payloadFor(user)
}

// Login verifies the credentials and issues a token pair. The last-login
// timestamp is written only after the password verifies.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthPayload, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			metrics.LoginFailures.Inc()
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		metrics.LoginFailures.Inc()
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if err := s.users.UpdateFields(ctx, user.ID, bson.M{"last_login": time.Now()}); err != nil {
		return nil, err
	}

	return s.payloadFor(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthPayload, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil || claims.Kind != auth.KindRefresh {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid refresh token")
		}
		return nil, err
	}

	return s.payloadFor(user)
}

// ResolveUser decodes and verifies a bearer token, then loads the user the
// embedded email claim points at. Invalid or expired tokens are Unauthorized;
// a valid token for a vanished user is NotFound.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ValidateToken(token)
	if err != nil || claims.Kind != auth.KindAccess {
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) payloadFor(user *models.User) (*AuthPayload, error) {
	access, err := auth.IssueAccessToken(user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.IssueRefreshToken(user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthPayload{
		ID:           user.ID.Hex(),
		Email:        user.Email,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
