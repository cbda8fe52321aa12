// Package tenant resolves the organization an authenticated principal
// belongs to. The tenant id is the sole data-partitioning key of the
// application, so every downstream query is scoped by the value this
// package produces.
//
// Resolution is a pure read of the membership binding, cached per principal
// for the session. The cache has an explicit sign-out hook: SignOut must be
// called synchronously when a session ends so a stale tenant id cannot leak
// into a subsequent session on a shared client.
//
//	resolver, err := tenant.NewResolver(tenant.NewPgProvider(pool))
//	if err != nil {
//	    return err
//	}
//	defer resolver.Close()
//
//	t, err := resolver.Resolve(ctx, principalID)
//	switch {
//	case errors.Is(err, tenant.ErrTenantNotFound):
//	    // onboarding incomplete
//	case err != nil:
//	    // infrastructure failure, retryable
//	}
//
// For deployments with several application instances, NewRedisCache makes
// invalidation visible across all of them.
package tenant
