package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the assignable roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User mirrors the identity provider's role claim into the store. It is
// keyed by the provider uid and carries nothing else; profile data lives
// with the identity provider.
type User struct {
	UID       string    `json:"uid" bson:"_id"`
	Role      Role      `json:"role" bson:"role"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
