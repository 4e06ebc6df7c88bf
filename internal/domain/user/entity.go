package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	id        uuid.UUID
	name      string
	email     Email
	role      Role
	createdAt time.Time
}

func NewUser(name string, email Email, role Role, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		role:      role,
		createdAt: now,
	}, nil
}

func ReconstructUser(id uuid.UUID, name string, email Email, role Role, createdAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		role:      role,
		createdAt: createdAt,
	}
}

func (u *User) Clone() *User {
	c := *u
	return &c
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) IsAdmin() bool        { return u.role == RoleAdmin }
func (u *User) CreatedAt() time.Time { return u.createdAt }
