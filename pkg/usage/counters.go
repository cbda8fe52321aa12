package usage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/terravia/quotakit/pkg/quota"
)

// Querier is the subset of pgxpool.Pool the counters need. pgx.Tx satisfies
// it too, so the same counters run inside GuardedInsert's transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Every query below carries an explicit tenant_id predicate. The database
// also enforces row-level security, but the counters do not rely on it:
// a misconfigured policy must not turn into cross-tenant counts.
// All queries are count-only; no rows are materialized.
const (
	membersCountQuery = `SELECT count(*) FROM tenant_members WHERE tenant_id = $1`

	// An invitation reserves a seat until it is accepted or expires.
	// Accepted invites are represented by their membership row instead.
	pendingInvitesCountQuery = `
SELECT count(*) FROM tenant_invites
WHERE tenant_id = $1 AND accepted_at IS NULL AND expires_at > now()`

	propertiesCountQuery = `SELECT count(*) FROM properties WHERE tenant_id = $1`

	clientsCountQuery = `SELECT count(*) FROM clients WHERE tenant_id = $1`
)

func countOne(ctx context.Context, db Querier, query string, tenantID uuid.UUID) (int64, error) {
	var n int64
	if err := db.QueryRow(ctx, query, tenantID).Scan(&n); err != nil {
		return 0, errors.Join(quota.ErrFailedToCountUsage, err)
	}
	return n, nil
}

// CountUsers returns the tenant's seat usage: accepted memberships plus
// pending, unexpired invitations.
func CountUsers(ctx context.Context, db Querier, tenantID uuid.UUID) (int64, error) {
	members, err := countOne(ctx, db, membersCountQuery, tenantID)
	if err != nil {
		return 0, err
	}
	invites, err := countOne(ctx, db, pendingInvitesCountQuery, tenantID)
	if err != nil {
		return 0, err
	}
	return members + invites, nil
}

// CountProperties returns the number of property records owned by the tenant.
func CountProperties(ctx context.Context, db Querier, tenantID uuid.UUID) (int64, error) {
	return countOne(ctx, db, propertiesCountQuery, tenantID)
}

// CountClients returns the number of client records owned by the tenant.
func CountClients(ctx context.Context, db Querier, tenantID uuid.UUID) (int64, error) {
	return countOne(ctx, db, clientsCountQuery, tenantID)
}

// Counters returns a registry with a counter for every quota resource,
// ready to hand to quota.NewService.
func Counters(db Querier) quota.CounterRegistry {
	registry := quota.NewRegistry()
	registry.Register(quota.ResourceUsers, func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		return CountUsers(ctx, db, tenantID)
	})
	registry.Register(quota.ResourceProperties, func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		return CountProperties(ctx, db, tenantID)
	})
	registry.Register(quota.ResourceClients, func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		return CountClients(ctx, db, tenantID)
	})
	return registry
}

func counterFor(res quota.Resource) (func(context.Context, Querier, uuid.UUID) (int64, error), bool) {
	switch res {
	case quota.ResourceUsers:
		return CountUsers, true
	case quota.ResourceProperties:
		return CountProperties, true
	case quota.ResourceClients:
		return CountClients, true
	default:
		return nil, false
	}
}
