package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rakaadi/storefront/internal/identity/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

type Service struct {
	repo     UserRepo
	secret   []byte
	tokenTTL time.Duration
}

func NewService(repo UserRepo, secret []byte, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *Service) Register(ctx context.Context, email, name, password string) (domain.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if email == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	return s.repo.Create(ctx, u)
}

// Login verifies the credentials and issues a session token. The user's
// identity key for the rest of the system is the email.
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.User{}, ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.User{}, err
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := generateToken(u.ID, u.Email, s.secret, s.tokenTTL)
	if err != nil {
		return "", domain.User{}, err
	}

	return token, u, nil
}

// Verify resolves a session token to the user's identity key (email).
func (s *Service) Verify(tokenString string) (string, error) {
	claims, err := parseToken(tokenString, s.secret)
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
