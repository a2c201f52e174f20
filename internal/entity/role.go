package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// IsValid reports whether r is one of the known roles. Unknown roles are still
// accepted from the user store and are treated as RoleUser by BuildMatrix.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}

	return false
}

// ParseRole maps a stored role string onto a known role, falling back to RoleUser.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.IsValid() {
		return RoleUser
	}

	return r
}

type UserRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Employee struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Department *string   `json:"department,omitempty"`
	Position   *string   `json:"position,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
