// Package quota enforces plan-based resource quotas for a multi-tenant
// application. It compares a tenant's current usage (seats, properties,
// clients) against the ceilings of the tenant's in-force subscription plan
// and gates create-operations on the outcome.
//
// Key concepts:
//
//   - Resource: a countable tenant resource (users, properties, clients)
//   - PlanLimits: the resolved ceilings and feature flags of a plan
//   - LimitsResolver: loads PlanLimits for a tenant, failing closed when no
//     in-force subscription exists
//   - CounterFunc: counts current usage of one resource for one tenant
//   - Execute: the guarded wrapper that runs a create-operation only when
//     the quota check allows it
//
// Basic usage:
//
//	counters := quota.NewRegistry()
//	counters.Register(quota.ResourceClients, clientCounter)
//
//	svc, err := quota.NewService(limitsResolver, counters)
//	if err != nil {
//	    return err
//	}
//
//	res, err := quota.Execute(ctx, svc, tenantID, quota.ResourceClients,
//	    func(ctx context.Context) (Client, error) {
//	        return store.InsertClient(ctx, tenantID, draft)
//	    })
//	if err != nil {
//	    return err // check infrastructure failure, not a denial
//	}
//	if !res.Success {
//	    // res.Error carries the localized "7/10 clients" style message
//	}
//
// The check-then-act sequence is advisory: it is not transactional against
// the record store, and two concurrent requests can both pass when one slot
// remains. The usage package provides a conditional-insert variant for
// callers that need a hard guarantee.
package quota
