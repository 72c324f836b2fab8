package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/auth"
	apperrors "github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/errors"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/model"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/repository"
)

// AuthService handles registration and both login paths.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	LoginWithIDToken(ctx context.Context, idToken string) (*model.User, string, error)
}

type authService struct {
	users    repository.UserRepository
	verifier auth.IdentityVerifier
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, verifier auth.IdentityVerifier) AuthService {
	return &authService{users: users, verifier: verifier}
}

// Register creates a new user with an scrypt password hash. The
// lookup-before-insert gives the friendly duplicate error; the unique index
// on email backstops the race between the two calls.
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates by email and password. Absent users and wrong
// passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// LoginWithIDToken verifies a federated identity token and returns the
// matching user, auto-provisioning one on first login. The provisioned
// account stores a sentinel the password path can never verify.
func (s *authService) LoginWithIDToken(ctx context.Context, idToken string) (*model.User, string, error) {
	claims, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if claims.Email == "" {
		return nil, "", fmt.Errorf("%w: no email in token", apperrors.ErrInvalidToken)
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err == nil {
		return user, claims.Email, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("look up user: %w", err)
	}

	user = &model.User{
		Email:        claims.Email,
		PasswordHash: auth.FederatedSentinel(claims.UID),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("provision user: %w", err)
	}
	return user, claims.Email, nil
}
