package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an organization with the minimal information needed for
// request-scoped operations and UI display.
type Tenant struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Settings  map[string]any `json:"settings,omitempty"`
	Active    bool           `json:"active"`
	CreatedAt time.Time      `json:"created_at"`
}

// Provider loads the tenant an authenticated principal belongs to.
// A principal belongs to at most one tenant; the membership row is the
// binding.
type Provider interface {
	// TenantForPrincipal returns the tenant bound to the principal via an
	// accepted membership. Returns ErrTenantNotFound when the principal has
	// not completed onboarding; any other error is an infrastructure
	// failure and must be kept distinct.
	TenantForPrincipal(ctx context.Context, principalID uuid.UUID) (*Tenant, error)
}
