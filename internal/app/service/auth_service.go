package service

import (
	"context"
	"errors"
	"fmt"

	"brain_arcade/internal/common"
	"brain_arcade/internal/common/security"
	"brain_arcade/internal/domain/model"
	"brain_arcade/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		HashedPassword: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateUser) {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = ""
	return user, nil
}

// Signin verifies the credentials and mints a token. An unknown username
// and a wrong password return the exact same error value so the two cases
// are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (string, *model.User, error) {
	if req.Username == "" || req.Password == "" {
		return "", nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return "", nil, common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return token, user, nil
}

// Profile returns the user without the password hash.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}
