package service

import (
	"go-catalog-ws/internal/model"
	"go-catalog-ws/pkg/apperr"
)

// requireRole is the single authorization gate every mutating operation
// runs before touching the datastore. Authentication and role failures are
// raised here, so no partial side effects can occur past this point.
func requireRole(caller model.Caller, role string) error {
	if !caller.Authenticated() {
		return apperr.ErrUnauthenticated
	}
	if caller.Role != role {
		return apperr.Unauthorized("requires " + role + " role")
	}
	return nil
}
