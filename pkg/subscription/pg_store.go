package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/terravia/quotakit/pkg/pg"
)

// Querier is the subset of pgxpool.Pool the store needs, kept narrow so
// tests can substitute a fake and callers can pass a transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgStore reads subscriptions from Postgres.
type pgStore struct {
	db Querier
}

// NewPgStore returns a Store backed by Postgres.
func NewPgStore(db Querier) Store {
	return &pgStore{db: db}
}

// inForceQuery deliberately filters by status instead of assuming one row
// per tenant: cancelled and expired rows accumulate over time, and
// uniqueness only holds among in-force rows.
const inForceQuery = `
SELECT id, tenant_id, plan_id, status, period_start, period_end,
       trial_ends_at, created_at, updated_at, cancelled_at
FROM subscriptions
WHERE tenant_id = $1 AND status = ANY($2)
ORDER BY created_at DESC
LIMIT 1`

func (s *pgStore) InForce(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	var sub Subscription
	err := s.db.QueryRow(ctx, inForceQuery, tenantID, InForceStatuses).Scan(
		&sub.ID,
		&sub.TenantID,
		&sub.PlanID,
		&sub.Status,
		&sub.PeriodStart,
		&sub.PeriodEnd,
		&sub.TrialEndsAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
		&sub.CancelledAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, errors.Join(ErrFailedToQueryStore, err)
	}
	return &sub, nil
}
