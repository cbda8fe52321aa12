package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store defines subscription persistence as read by the quota subsystem.
// Writes (status transitions, plan changes) belong to the billing
// collaborator and are out of scope here.
type Store interface {
	// InForce retrieves the tenant's subscription with status active or
	// trialing. Historical rows for the same tenant are ignored; among
	// in-force rows the newest wins. Returns ErrSubscriptionNotFound when
	// the tenant has no in-force subscription.
	InForce(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)
}
