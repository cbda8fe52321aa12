package tenant

import "errors"

var (
	// ErrTenantNotFound means the principal has no accepted membership yet
	// (onboarding incomplete). Not an infrastructure failure.
	ErrTenantNotFound = errors.New("tenant.errors.not_found")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("tenant.errors.not_in_context")

	// ErrInactiveTenant is returned when trying to use a deactivated tenant.
	ErrInactiveTenant = errors.New("tenant.errors.inactive")

	// ErrFailedToLookupTenant wraps storage failures during resolution.
	ErrFailedToLookupTenant = errors.New("tenant.errors.lookup_failed")
)
