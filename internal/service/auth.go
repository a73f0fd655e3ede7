package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/logger"
	"leaseo-backend/internal/repository"
	"leaseo-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	emailSvc EmailService
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, emailSvc EmailService, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		emailSvc: emailSvc,
		tokens:   tokens,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: name and a valid email are required", domain.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	if role != domain.RoleCustomer && role != domain.RoleVendor {
		return nil, fmt.Errorf("%w: role must be CUSTOMER or VENDOR", domain.ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrValidation)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		Verified:          false,
		VerificationToken: uuid.NewString(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Registration is the one flow where a failed email rolls the
	// mutation back: the account is removed so signup can be retried.
	if err := s.emailSvc.SendVerificationEmail(ctx, user.Email, user.Name, user.VerificationToken); err != nil {
		logger.Error("verification email failed, rolling back signup", "email", user.Email, "error", err)
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			logger.Error("signup rollback failed", "user_id", user.ID, "error", delErr)
		}
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	return user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: verification token is required", domain.ErrValidation)
	}
	user, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	user.Verified = true
	user.VerificationToken = ""
	return s.userRepo.Update(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if !user.Verified {
		return "", "", fmt.Errorf("%w: email not verified", domain.ErrUnauthorized)
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
