package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"mediavault/internal/access"
	"mediavault/internal/config"
	"mediavault/internal/model"
	"mediavault/internal/repository"
)

// RegisterInput carries a new account's fields.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// AuthResult bundles a signed token with the authenticated user.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// UserService defines account registration and login.
type UserService interface {
	// Register creates an account; taken username or email yields ErrConflict.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Me returns the account behind a caller ID.
	Me(ctx context.Context, callerID string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
	auth config.AuthConfig
}

// NewUserService constructs a UserService.
func NewUserService(repo repository.UserRepository, auth config.AuthConfig) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Username == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, ErrValidation
	}
	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}
	hash, err := access.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, u)
}

func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if !access.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrUnauthorized
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.auth.TokenTTLHours) * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.auth.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *userService) Me(ctx context.Context, callerID string) (*model.User, error) {
	if err := parseID(callerID); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, callerID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return u, nil
}
