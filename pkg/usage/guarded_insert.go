package usage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/terravia/quotakit/pkg/quota"
)

// DB is the subset of pgxpool.Pool needed to run a guarded transaction.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// advisoryLockQuery serializes creates per tenant and resource for the
// duration of the transaction. hashtextextended folds the composite key into
// the bigint the advisory-lock machinery expects.
const advisoryLockQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

// GuardedInsert is the strengthened variant of the advisory quota check:
// it re-counts inside a transaction while holding a per-tenant-per-resource
// advisory lock, so two concurrent creates cannot both claim the last slot.
// The allow/deny boundary is the same strict count < limit comparison the
// advisory path uses.
//
// Use this only where an overrun is unacceptable; the advisory
// quota.Execute path remains the default and avoids the serialization.
func GuardedInsert(ctx context.Context, db DB, tenantID uuid.UUID, res quota.Resource, limit int64, op func(ctx context.Context, tx pgx.Tx) error) error {
	if op == nil {
		return quota.ErrOperationNotProvided
	}

	count, ok := counterFor(res)
	if !ok {
		return quota.ErrInvalidResource
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.Join(quota.ErrFailedToCountUsage, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lockKey := tenantID.String() + ":" + string(res)
	if _, err := tx.Exec(ctx, advisoryLockQuery, lockKey); err != nil {
		return errors.Join(quota.ErrFailedToCountUsage, err)
	}

	if limit != quota.Unlimited {
		current, err := count(ctx, tx, tenantID)
		if err != nil {
			return err
		}
		if current >= limit {
			return quota.ErrLimitReached
		}
	}

	if err := op(ctx, tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
