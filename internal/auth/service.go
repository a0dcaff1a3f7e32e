package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"carbontrack/carbontrack-backend/internal/users"
	"carbontrack/carbontrack-backend/pkg/apperrors"
)

// Service issues tokens after verifying password hashes. Passwords are only
// ever compared through bcrypt and never logged.
type Service struct {
	users      users.Repository
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewService(repo users.Repository, secret string, tokenTTL time.Duration, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:      repo,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// RegisterInput carries a new account submission.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Profile  *users.Profile
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*users.User, string, error) {
	if len(input.Username) < 3 {
		return nil, "", apperrors.Validation("username must be at least 3 characters")
	}
	if len(input.Username) > 30 {
		return nil, "", apperrors.Validation("username must be less than 30 characters")
	}
	if !users.ValidEmail(input.Email) {
		return nil, "", apperrors.Validation("please provide a valid email")
	}
	if len(input.Password) < 8 {
		return nil, "", apperrors.Validation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := users.New(input.Username, input.Email, string(hash))
	if input.Profile != nil {
		user.Profile = *input.Profile
	}
	user.Stats.LastActive = s.now()

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*users.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := s.users.TouchLastActive(ctx, user.ID, s.now()); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ChangePassword verifies the current password before storing a new hash and
// returns a fresh token.
func (s *Service) ChangePassword(ctx context.Context, userID, current, updated string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if len(updated) < 8 {
		return "", apperrors.Validation("new password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), s.bcryptCost)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return "", err
	}
	return s.signToken(userID)
}

func (s *Service) signToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
