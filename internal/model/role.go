package model

import "github.com/google/uuid"

// Role claims supplied by the external identity provider
const (
	RoleUser   = "USER"
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

// Caller is the per-request identity the auth middleware resolves from the
// token. A zero Caller means the request is unauthenticated.
type Caller struct {
	ID   uuid.UUID
	Role string
}

func (c Caller) Authenticated() bool {
	return c.ID != uuid.Nil
}
