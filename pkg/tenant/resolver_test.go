package tenant_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravia/quotakit/pkg/tenant"
)

type fakeProvider struct {
	tenants map[uuid.UUID]*tenant.Tenant
	err     error
	calls   atomic.Int64
}

func (p *fakeProvider) TenantForPrincipal(ctx context.Context, principalID uuid.UUID) (*tenant.Tenant, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	t, ok := p.tenants[principalID]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func activeTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:        uuid.New(),
		Name:      "Topo Andrade Agrimensura",
		Slug:      "topo-andrade",
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestNewResolver(t *testing.T) {
	t.Parallel()

	t.Run("requires provider", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewResolver(nil)
		require.Error(t, err)
	})
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("resolves and caches per principal", func(t *testing.T) {
		t.Parallel()

		principalID := uuid.New()
		want := activeTenant()
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{principalID: want}}

		r, err := tenant.NewResolver(provider)
		require.NoError(t, err)
		defer r.Close()

		for range 3 {
			got, err := r.Resolve(context.Background(), principalID)
			require.NoError(t, err)
			assert.Equal(t, want.ID, got.ID)
		}
		assert.EqualValues(t, 1, provider.calls.Load(), "repeated lookups must hit the provider once")
	})

	t.Run("no membership means no tenant", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{}}
		r, err := tenant.NewResolver(provider)
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Resolve(context.Background(), uuid.New())
		require.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.NotErrorIs(t, err, tenant.ErrFailedToLookupTenant)
	})

	t.Run("negative results are not cached", func(t *testing.T) {
		t.Parallel()

		principalID := uuid.New()
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{}}
		r, err := tenant.NewResolver(provider)
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Resolve(context.Background(), principalID)
		require.ErrorIs(t, err, tenant.ErrTenantNotFound)

		// Onboarding completes between calls.
		provider.tenants[principalID] = activeTenant()

		got, err := r.Resolve(context.Background(), principalID)
		require.NoError(t, err)
		assert.True(t, got.Active)
	})

	t.Run("storage failure is distinct from no tenant", func(t *testing.T) {
		t.Parallel()

		storageDown := errors.New("connection refused")
		provider := &fakeProvider{err: storageDown}
		r, err := tenant.NewResolver(provider)
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Resolve(context.Background(), uuid.New())
		require.ErrorIs(t, err, tenant.ErrFailedToLookupTenant)
		require.ErrorIs(t, err, storageDown)
		assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("inactive tenant is rejected", func(t *testing.T) {
		t.Parallel()

		principalID := uuid.New()
		deactivated := activeTenant()
		deactivated.Active = false
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{principalID: deactivated}}

		r, err := tenant.NewResolver(provider)
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Resolve(context.Background(), principalID)
		require.ErrorIs(t, err, tenant.ErrInactiveTenant)
	})

	t.Run("nil principal", func(t *testing.T) {
		t.Parallel()

		r, err := tenant.NewResolver(&fakeProvider{})
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Resolve(context.Background(), uuid.Nil)
		require.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestResolver_SignOut(t *testing.T) {
	t.Parallel()

	t.Run("invalidates the cached entry synchronously", func(t *testing.T) {
		t.Parallel()

		principalID := uuid.New()
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{principalID: activeTenant()}}

		r, err := tenant.NewResolver(provider)
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Resolve(context.Background(), principalID)
		require.NoError(t, err)
		require.EqualValues(t, 1, provider.calls.Load())

		r.SignOut(context.Background(), principalID)

		_, err = r.Resolve(context.Background(), principalID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, provider.calls.Load(), "resolution after sign-out must re-read storage")
	})

	t.Run("identity does not bleed across sessions", func(t *testing.T) {
		t.Parallel()

		principalID := uuid.New()
		first := activeTenant()
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{principalID: first}}

		r, err := tenant.NewResolver(provider)
		require.NoError(t, err)
		defer r.Close()

		got, err := r.ResolveID(context.Background(), principalID)
		require.NoError(t, err)
		require.Equal(t, first.ID, got)

		// The same client process signs out and a different membership is
		// created (support moved the user to another organization).
		r.SignOut(context.Background(), principalID)
		second := activeTenant()
		provider.tenants[principalID] = second

		got, err = r.ResolveID(context.Background(), principalID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got)
	})
}

func TestResolver_CacheTTL(t *testing.T) {
	t.Parallel()

	principalID := uuid.New()
	provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{principalID: activeTenant()}}

	r, err := tenant.NewResolver(provider, tenant.WithCacheTTL(10*time.Millisecond))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Resolve(context.Background(), principalID)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = r.Resolve(context.Background(), principalID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, provider.calls.Load())
}
