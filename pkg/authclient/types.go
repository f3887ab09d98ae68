package authclient

import (
	"time"
)

// Role is the role claim carried by a token.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleInstructor Role = "INSTRUCTOR"
	RoleParent     Role = "PARENT"
	RoleStudent    Role = "STUDENT"
)

// Roles returns every role the service may assign.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleInstructor, RoleParent, RoleStudent}
}

// DecodedToken is the claim set returned by Verify.
type DecodedToken struct {
	// ID is the 24 character user identifier.
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	// Iat and Exp are Unix timestamps in seconds.
	Iat int64 `json:"iat"`
	Exp int64 `json:"exp"`
}

// IssuedAt returns Iat as a time.
func (d DecodedToken) IssuedAt() time.Time {
	return time.Unix(d.Iat, 0).UTC()
}

// ExpiresAt returns Exp as a time.
func (d DecodedToken) ExpiresAt() time.Time {
	return time.Unix(d.Exp, 0).UTC()
}
