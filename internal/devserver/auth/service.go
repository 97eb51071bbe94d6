// Package auth implements registration, login and role upgrades for the
// reference backend: bcrypt password hashes and HS256 tokens.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/storefront/internal/core/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("role must be user or seller")
)

// Account is a stored user with its password hash.
type Account struct {
	domain.User
	PasswordHash string
	CreatedAt    time.Time
}

// Repository persists accounts.
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) (*Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)
	FindAccountByID(ctx context.Context, id string) (*Account, error)
	SetRole(ctx context.Context, id string, role domain.Role) (*Account, error)
}

// Service implements registration and login.
type Service struct {
	repo      Repository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates an account and returns a token for it. An empty role
// means user; admins cannot self-register.
func (s *Service) Register(ctx context.Context, name, email, password string, role domain.Role) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleSeller {
		return "", nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	created, err := s.repo.CreateAccount(ctx, &Account{
		User:         domain.User{Name: name, Email: email, Role: role},
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(&created.User)
	if err != nil {
		return "", nil, err
	}
	user := created.User
	return token, &user, nil
}

// Login checks the password and issues a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	acct, err := s.repo.FindAccountByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(&acct.User)
	if err != nil {
		return "", nil, err
	}
	user := acct.User
	return token, &user, nil
}

// BecomeSeller upgrades a user to seller. Sellers and admins keep their role.
// No new token is issued; the role is re-read from the store per request.
func (s *Service) BecomeSeller(ctx context.Context, userID string) (*domain.User, error) {
	acct, err := s.repo.FindAccountByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acct.Role != domain.RoleUser {
		user := acct.User
		return &user, nil
	}
	acct, err = s.repo.SetRole(ctx, userID, domain.RoleSeller)
	if err != nil {
		return nil, err
	}
	user := acct.User
	return &user, nil
}

// Resolve returns the current profile for a token subject.
func (s *Service) Resolve(ctx context.Context, userID string) (*domain.User, error) {
	acct, err := s.repo.FindAccountByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := acct.User
	return &user, nil
}

func (s *Service) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
