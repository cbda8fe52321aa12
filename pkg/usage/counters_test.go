package usage_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravia/quotakit/pkg/quota"
	"github.com/terravia/quotakit/pkg/usage"
)

type fakeRow struct {
	n   int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.n
	return nil
}

// fakeDB simulates the per-tenant tables with in-memory counts and records
// every query it receives.
type fakeDB struct {
	members    map[uuid.UUID]int64
	invites    map[uuid.UUID]int64
	properties map[uuid.UUID]int64
	clients    map[uuid.UUID]int64
	err        error
	queries    []string
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.queries = append(db.queries, sql)
	if db.err != nil {
		return fakeRow{err: db.err}
	}

	tenantID := args[0].(uuid.UUID)
	switch {
	case strings.Contains(sql, "tenant_members"):
		return fakeRow{n: db.members[tenantID]}
	case strings.Contains(sql, "tenant_invites"):
		return fakeRow{n: db.invites[tenantID]}
	case strings.Contains(sql, "properties"):
		return fakeRow{n: db.properties[tenantID]}
	case strings.Contains(sql, "clients"):
		return fakeRow{n: db.clients[tenantID]}
	default:
		return fakeRow{err: errors.New("unexpected query: " + sql)}
	}
}

func TestCountUsers(t *testing.T) {
	t.Parallel()

	t.Run("sums memberships and pending invites", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		db := &fakeDB{
			members: map[uuid.UUID]int64{tenantID: 2},
			invites: map[uuid.UUID]int64{tenantID: 1},
		}

		n, err := usage.CountUsers(context.Background(), db, tenantID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
	})

	t.Run("invite query excludes accepted and expired invites", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{}
		_, err := usage.CountUsers(context.Background(), db, uuid.New())
		require.NoError(t, err)

		require.Len(t, db.queries, 2)
		inviteQuery := db.queries[1]
		assert.Contains(t, inviteQuery, "accepted_at IS NULL")
		assert.Contains(t, inviteQuery, "expires_at > now()")
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		t.Parallel()

		storageDown := errors.New("connection refused")
		db := &fakeDB{err: storageDown}

		_, err := usage.CountUsers(context.Background(), db, uuid.New())
		require.ErrorIs(t, err, quota.ErrFailedToCountUsage)
		require.ErrorIs(t, err, storageDown)
	})
}

func TestCounters(t *testing.T) {
	t.Parallel()

	t.Run("registers every resource", func(t *testing.T) {
		t.Parallel()

		registry := usage.Counters(&fakeDB{})
		for _, res := range []quota.Resource{quota.ResourceUsers, quota.ResourceProperties, quota.ResourceClients} {
			assert.Contains(t, registry, res)
		}
	})

	t.Run("counts are scoped per tenant", func(t *testing.T) {
		t.Parallel()

		tenantA := uuid.New()
		tenantB := uuid.New()
		db := &fakeDB{
			clients: map[uuid.UUID]int64{tenantA: 40, tenantB: 2},
		}
		registry := usage.Counters(db)

		a, err := registry[quota.ResourceClients](context.Background(), tenantA)
		require.NoError(t, err)
		b, err := registry[quota.ResourceClients](context.Background(), tenantB)
		require.NoError(t, err)

		assert.EqualValues(t, 40, a)
		assert.EqualValues(t, 2, b, "tenant A records must not change tenant B counts")
	})

	t.Run("every query carries an explicit tenant predicate", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{}
		registry := usage.Counters(db)
		tenantID := uuid.New()

		for res := range registry {
			_, err := registry[res](context.Background(), tenantID)
			require.NoError(t, err)
		}

		require.NotEmpty(t, db.queries)
		for _, q := range db.queries {
			assert.Contains(t, q, "tenant_id = $1", "query must filter by tenant: %s", q)
			assert.Contains(t, q, "count(*)", "query must be count-only: %s", q)
		}
	})
}

func TestCountProperties(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	db := &fakeDB{properties: map[uuid.UUID]int64{tenantID: 7}}

	n, err := usage.CountProperties(context.Background(), db, tenantID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
}

func TestCountClients(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	db := &fakeDB{clients: map[uuid.UUID]int64{tenantID: 12}}

	n, err := usage.CountClients(context.Background(), db, tenantID)
	require.NoError(t, err)
	assert.EqualValues(t, 12, n)
}
