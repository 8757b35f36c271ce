package user

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDuplicateEmail = errors.New("email already registered")

// Role is an ordered privilege level; a higher role includes every lower one.
type Role int

const (
	RoleUser      Role = 0
	RoleModerator Role = 1
	RoleAdmin     Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

func (r Role) Valid() bool {
	return r >= RoleUser && r <= RoleAdmin
}

// User is a registered account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email is required")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("unknown user role %d", int(u.Role))
	}
	return nil
}

func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID int64
	Role   Role
}

func (p Principal) HasRole(min Role) bool {
	return p.Role >= min
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
