package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailInUse is returned when a register or profile update targets an
	// email already owned by another account.
	ErrEmailInUse = errors.New("auth: email already in use")

	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike, so login failures don't reveal which one it was.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUserNotFound is returned when a token references a deleted or
	// unknown account.
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims is the identity carried by a verified token.
type Claims struct {
	UserID int
	Email  string
	Role   Role
}

// Service issues and verifies tokens and manages accounts.
type Service struct {
	store  UserStore
	secret []byte
	expiry time.Duration
}

// NewService wires the auth service. secret signs tokens (HS256); expiry
// bounds their lifetime.
func NewService(store UserStore, secret []byte, expiry time.Duration) *Service {
	return &Service{store: store, secret: secret, expiry: expiry}
}

// SeedAdmin returns the built-in admin account for NewMemoryUserStore.
// The hash is bcrypt("password") — development seed data only.
func SeedAdmin() *User {
	return &User{
		ID:           1,
		Name:         "Admin Holy Street",
		Email:        "admin@holystreet.com",
		PasswordHash: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi",
		Role:         RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
}

// Register creates an account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, string, error) {
	existing, err := s.store.ByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("auth: register: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("auth: hash password: %w", err)
	}

	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Add(ctx, u); err != nil {
		return nil, "", fmt.Errorf("auth: store user: %w", err)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and returns the account with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.store.ByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("auth: login: %w", err)
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Profile returns the account behind a verified token.
func (s *Service) Profile(ctx context.Context, userID int) (*User, error) {
	u, err := s.store.ByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth: profile: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile changes name and/or email; empty fields are left untouched.
// A new email must not belong to another account.
func (s *Service) UpdateProfile(ctx context.Context, userID int, name, email string) (*User, error) {
	u, err := s.store.ByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth: update profile: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if email != "" && email != u.Email {
		owner, err := s.store.ByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("auth: update profile: %w", err)
		}
		if owner != nil && owner.ID != userID {
			return nil, ErrEmailInUse
		}
		u.Email = email
	}
	if name != "" {
		u.Name = name
	}

	if err := s.store.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("auth: update profile: %w", err)
	}
	return u, nil
}

func (s *Service) issueToken(u *User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"role":  string(u.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token, returning its claims.
func (s *Service) VerifyToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Claims{UserID: int(id), Email: email, Role: Role(role)}, nil
}
