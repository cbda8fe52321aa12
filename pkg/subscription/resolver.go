package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/terravia/quotakit/pkg/quota"
)

// NewLimitsResolver bridges the subscription store and plan catalog into the
// quota checker. The returned resolver fails closed: a tenant without an
// in-force subscription yields quota.ErrNoActiveSubscription, never an
// unlimited plan. A subscription referencing a plan missing from the catalog
// is treated the same way — a billing outage or a stale plan id must not
// grant access.
//
// The catalog is loaded once at construction; plans are reference data and
// a process restart picks up catalog changes.
func NewLimitsResolver(ctx context.Context, store Store, catalog Catalog) (quota.LimitsResolver, error) {
	plans, err := catalog.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	return func(ctx context.Context, tenantID uuid.UUID) (*quota.PlanLimits, error) {
		sub, err := store.InForce(ctx, tenantID)
		if err != nil {
			if errors.Is(err, ErrSubscriptionNotFound) {
				return nil, quota.ErrNoActiveSubscription
			}
			return nil, err
		}

		plan, ok := plans[sub.PlanID]
		if !ok {
			return nil, errors.Join(quota.ErrNoActiveSubscription, ErrPlanNotFound)
		}

		return plan.LimitsView(sub.Status), nil
	}, nil
}
