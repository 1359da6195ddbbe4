// Package auth implements user accounts and token-based authentication:
// bcrypt-hashed passwords over an in-memory user list, JWT issuance and
// verification.
package auth

import (
	"context"
	"sync"
	"time"
)

// Role separates the seeded admin from regular storefront users.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account record. PasswordHash never leaves the package through
// JSON.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserStore is the port for user storage.
type UserStore interface {
	// ByEmail returns the user with the given email, or (nil, nil) when no
	// such user exists.
	ByEmail(ctx context.Context, email string) (*User, error)
	// ByID returns the user with the given ID, or (nil, nil).
	ByID(ctx context.Context, id int) (*User, error)
	// Add stores a new user, assigning the next ID.
	Add(ctx context.Context, u *User) error
	// Update overwrites an existing user.
	Update(ctx context.Context, u *User) error
}

type memoryUserStore struct {
	mu     sync.RWMutex
	users  map[int]*User
	nextID int
}

// NewMemoryUserStore returns an in-process UserStore seeded with the given
// users. Seed IDs are kept; new users get IDs above the highest seed.
func NewMemoryUserStore(seed ...*User) UserStore {
	s := &memoryUserStore{users: make(map[int]*User)}
	for _, u := range seed {
		cp := *u
		s.users[u.ID] = &cp
		if u.ID > s.nextID {
			s.nextID = u.ID
		}
	}
	return s
}

func (s *memoryUserStore) ByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryUserStore) ByID(ctx context.Context, id int) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memoryUserStore) Add(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memoryUserStore) Update(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *u
	s.users[u.ID] = &cp
	return nil
}
