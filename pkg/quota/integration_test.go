package quota_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravia/quotakit/pkg/quota"
	"github.com/terravia/quotakit/pkg/subscription"
)

type memoryStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*subscription.Subscription
}

func (s *memoryStore) InForce(ctx context.Context, tenantID uuid.UUID) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[tenantID]
	if !ok || !sub.InForce() {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return sub, nil
}

// tenantRecords simulates the record store behind the counters.
type tenantRecords struct {
	mu      sync.Mutex
	members map[uuid.UUID]int64
	invites map[uuid.UUID]int64
	clients map[uuid.UUID]int64
}

func (d *tenantRecords) counters() quota.CounterRegistry {
	registry := quota.NewRegistry()
	registry.Register(quota.ResourceUsers, func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.members[tenantID] + d.invites[tenantID], nil
	})
	registry.Register(quota.ResourceClients, func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.clients[tenantID], nil
	})
	registry.Register(quota.ResourceProperties, func(ctx context.Context, tenantID uuid.UUID) (int64, error) {
		return 0, nil
	})
	return registry
}

func (d *tenantRecords) addClient(tenantID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clients[tenantID]++
}

func TestQuotaWorkflow(t *testing.T) {
	t.Parallel()

	catalog := subscription.NewInMemCatalog(map[string]subscription.Plan{
		"starter": {
			ID:   "starter",
			Name: "Starter",
			Limits: map[quota.Resource]int64{
				quota.ResourceUsers:      3,
				quota.ResourceProperties: 5,
				quota.ResourceClients:    10,
			},
		},
	})

	newService := func(t *testing.T, store subscription.Store, records *tenantRecords) *quota.Service {
		t.Helper()
		resolve, err := subscription.NewLimitsResolver(context.Background(), store, catalog)
		require.NoError(t, err)
		svc, err := quota.NewService(resolve, records.counters())
		require.NoError(t, err)
		return svc
	}

	t.Run("create clients until the ceiling", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		store := &memoryStore{subs: map[uuid.UUID]*subscription.Subscription{
			tenantID: {TenantID: tenantID, PlanID: "starter", Status: subscription.StatusActive},
		}}
		records := &tenantRecords{
			members: map[uuid.UUID]int64{},
			invites: map[uuid.UUID]int64{},
			clients: map[uuid.UUID]int64{tenantID: 9},
		}
		svc := newService(t, store, records)

		// The 10th client fits.
		result, err := quota.Execute(context.Background(), svc, tenantID, quota.ResourceClients,
			func(ctx context.Context) (uuid.UUID, error) {
				records.addClient(tenantID)
				return uuid.New(), nil
			})
		require.NoError(t, err)
		require.True(t, result.Success)

		// The 11th does not.
		result, err = quota.Execute(context.Background(), svc, tenantID, quota.ResourceClients,
			func(ctx context.Context) (uuid.UUID, error) {
				t.Fatal("insert must not run past the ceiling")
				return uuid.Nil, nil
			})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "10/10")
	})

	t.Run("pending invites consume seats", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		store := &memoryStore{subs: map[uuid.UUID]*subscription.Subscription{
			tenantID: {TenantID: tenantID, PlanID: "starter", Status: subscription.StatusTrialing},
		}}
		records := &tenantRecords{
			members: map[uuid.UUID]int64{tenantID: 2},
			invites: map[uuid.UUID]int64{tenantID: 1},
			clients: map[uuid.UUID]int64{},
		}
		svc := newService(t, store, records)

		used, limit, err := svc.GetUsage(context.Background(), tenantID, quota.ResourceUsers)
		require.NoError(t, err)
		assert.EqualValues(t, 3, used, "2 members + 1 pending invite")
		assert.EqualValues(t, 3, limit)

		err = svc.CanCreate(context.Background(), tenantID, quota.ResourceUsers)
		assert.ErrorIs(t, err, quota.ErrLimitReached)
	})

	t.Run("cancelled subscription denies everything", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		store := &memoryStore{subs: map[uuid.UUID]*subscription.Subscription{
			tenantID: {TenantID: tenantID, PlanID: "starter", Status: subscription.StatusCancelled},
		}}
		records := &tenantRecords{
			members: map[uuid.UUID]int64{},
			invites: map[uuid.UUID]int64{},
			clients: map[uuid.UUID]int64{},
		}
		svc := newService(t, store, records)

		for _, res := range []quota.Resource{quota.ResourceUsers, quota.ResourceProperties, quota.ResourceClients} {
			result, err := svc.CheckLimit(context.Background(), tenantID, res)
			require.NoError(t, err)
			assert.False(t, result.Allowed, "resource %s must deny with zero usage and no in-force subscription", res)
		}
	})

	t.Run("tenant isolation", func(t *testing.T) {
		t.Parallel()

		tenantA := uuid.New()
		tenantB := uuid.New()
		store := &memoryStore{subs: map[uuid.UUID]*subscription.Subscription{
			tenantA: {TenantID: tenantA, PlanID: "starter", Status: subscription.StatusActive},
			tenantB: {TenantID: tenantB, PlanID: "starter", Status: subscription.StatusActive},
		}}
		records := &tenantRecords{
			members: map[uuid.UUID]int64{},
			invites: map[uuid.UUID]int64{},
			clients: map[uuid.UUID]int64{},
		}
		svc := newService(t, store, records)

		for range 10 {
			records.addClient(tenantA)
		}

		used, _, err := svc.GetUsage(context.Background(), tenantB, quota.ResourceClients)
		require.NoError(t, err)
		assert.Zero(t, used, "tenant A records must not count for tenant B")

		assert.NoError(t, svc.CanCreate(context.Background(), tenantB, quota.ResourceClients))
		assert.ErrorIs(t, svc.CanCreate(context.Background(), tenantA, quota.ResourceClients), quota.ErrLimitReached)
	})
}
