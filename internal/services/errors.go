package services

import "errors"

// Service-level failures handlers map onto the HTTP taxonomy. Vehicle
// lookup failures are deliberately client errors: they stem from a
// caller-supplied (possibly stale) vehicle id.
var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrVehicleInactive = errors.New("vehicle is not active")

	ErrInvalidRolePayload = errors.New("invalid payload, expected uid and role")
	ErrBootstrapForbidden = errors.New("invalid bootstrap secret")
	ErrAdminExists        = errors.New("admin already exists")
)
