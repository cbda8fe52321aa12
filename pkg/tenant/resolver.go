package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultCacheTTL bounds how long a resolved tenant may be served without
// re-reading the membership row.
const DefaultCacheTTL = 5 * time.Minute

// Resolver resolves the tenant an authenticated principal belongs to,
// caching the result per principal for the duration of a session.
type Resolver struct {
	provider Provider
	cache    Cache
	ttl      time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache replaces the default in-memory cache.
func WithCache(cache Cache) ResolverOption {
	return func(r *Resolver) {
		if cache != nil {
			r.cache = cache
		}
	}
}

// WithCacheTTL overrides the cache entry lifetime.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// NewResolver creates a Resolver over the given membership provider.
func NewResolver(provider Provider, opts ...ResolverOption) (*Resolver, error) {
	if provider == nil {
		return nil, errors.New("tenant: provider is required")
	}

	r := &Resolver{
		provider: provider,
		ttl:      DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewInMemoryCache()
	}
	return r, nil
}

// Resolve returns the tenant the principal belongs to.
// ErrTenantNotFound means onboarding is incomplete; storage failures come
// back wrapped in ErrFailedToLookupTenant so callers never mistake an
// outage for "no tenant".
func (r *Resolver) Resolve(ctx context.Context, principalID uuid.UUID) (*Tenant, error) {
	if principalID == uuid.Nil {
		return nil, ErrTenantNotFound
	}

	key := principalID.String()
	if t, ok := r.cache.Get(ctx, key); ok {
		return t, nil
	}

	t, err := r.provider.TenantForPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			// Negative results are not cached: the principal may complete
			// onboarding at any moment.
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrFailedToLookupTenant, err)
	}

	if !t.Active {
		return nil, ErrInactiveTenant
	}

	r.cache.Set(ctx, key, t, r.ttl)
	return t, nil
}

// ResolveID is the id-only convenience form of Resolve.
func (r *Resolver) ResolveID(ctx context.Context, principalID uuid.UUID) (uuid.UUID, error) {
	t, err := r.Resolve(ctx, principalID)
	if err != nil {
		return uuid.Nil, err
	}
	return t.ID, nil
}

// SignOut clears the cached tenant for the principal. It must run
// synchronously in the sign-out path, before any further tenant-scoped call,
// so a stale tenant id cannot bleed into the next session on the same
// client process.
func (r *Resolver) SignOut(ctx context.Context, principalID uuid.UUID) {
	if principalID == uuid.Nil {
		return
	}
	r.cache.Delete(ctx, principalID.String())
}

// Close releases the resolver's cache resources.
func (r *Resolver) Close() error {
	return r.cache.Close()
}
